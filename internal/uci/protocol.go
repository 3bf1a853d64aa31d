// Package uci implements the text protocol loop: it reads UCI commands from
// an input stream, drives internal/chess + internal/search + internal/book
// through them, and formats internal/search.Event values back out as UCI
// output lines.
//
// Grounded on Oliverans-GooseEngine's uci.go scanner-over-stdin dispatch
// loop (bufio.Scanner + strings.Fields + a command switch), restructured
// around a long-lived search.Driver instead of a per-`go` goroutine spawn,
// and around the exclusivity rule spec.md §5 states explicitly: the
// protocol thread must request cancellation and wait for the worker's
// acknowledgment (a bestmove event) before mutating the board out from
// under a running search.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/oliverans/chessengine/internal/book"
	"github.com/oliverans/chessengine/internal/chess"
	"github.com/oliverans/chessengine/internal/diagram"
	"github.com/oliverans/chessengine/internal/search"
)

const (
	engineName   = "chessengine"
	engineAuthor = "the chessengine project"
)

// Options is the engine's entire configuration surface (spec.md §6):
// everything is set via `setoption`, never via flags or a config file.
type Options struct {
	HashMB int
	Ponder bool
}

// DefaultOptions returns the options in effect before any `setoption`.
func DefaultOptions() Options {
	return Options{HashMB: search.DefaultTableMB, Ponder: true}
}

// Protocol owns the board, the search driver, and the opening book, and
// runs the read-dispatch-respond loop described in spec.md §6.
type Protocol struct {
	in  *bufio.Scanner
	out io.Writer
	log *log.Logger

	board   *chess.Board
	driver  *search.Driver
	tt      *search.Table
	opts    Options
	rng     *rand.Rand
	useBook bool

	searching   atomic.Bool
	bestmoveAck chan struct{}
	pendingPlan search.GoParams // saved think-time budget, for ponderhit
}

// New builds a Protocol reading from r and writing UCI output to w.
// Diagnostics (never UCI-wire data) go to errLog.
func New(r io.Reader, w io.Writer, errLog *log.Logger) *Protocol {
	tt := search.NewTable(search.DefaultTableMB)
	p := &Protocol{
		in:          bufio.NewScanner(r),
		out:         w,
		log:         errLog,
		board:       newStartBoard(),
		tt:          tt,
		driver:      search.NewDriver(tt, 64),
		opts:        DefaultOptions(),
		rng:         rand.New(rand.NewSource(1)),
		useBook:     true,
		bestmoveAck: make(chan struct{}, 1),
	}
	p.in.Buffer(make([]byte, 0, 64*1024), 1<<20)
	go p.drainEvents()
	return p
}

func newStartBoard() *chess.Board {
	b := chess.NewEmptyBoard()
	_ = b.LoadFEN(chess.StartFEN)
	return b
}

// Run reads commands until EOF or `quit`. It returns the process exit code
// spec.md §6 specifies: 0 on clean quit, non-zero on a read error.
func (p *Protocol) Run() int {
	for p.in.Scan() {
		line := strings.TrimSpace(p.in.Text())
		if line == "" {
			continue
		}
		if p.dispatch(line) {
			return 0
		}
	}
	if err := p.in.Err(); err != nil {
		p.log.Println("input read error:", err)
		return 1
	}
	return 0
}

// dispatch handles one input line; returns true if the protocol should
// terminate (a `quit` was received).
func (p *Protocol) dispatch(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "uci":
		p.handleUCI()
	case "isready":
		p.println("readyok")
	case "ucinewgame":
		p.awaitIdle()
		p.driver.NewGame()
		p.board = newStartBoard()
	case "position":
		p.awaitIdle()
		p.handlePosition(args)
	case "go":
		p.handleGo(args)
	case "ponderhit":
		p.handlePonderHit()
	case "stop":
		p.driver.Stop()
	case "setoption":
		p.handleSetOption(args)
	case "d":
		p.handleDiagram()
	case "quit":
		p.driver.Stop()
		return true
	default:
		p.infoString("Unknown command: " + fields[0])
	}
	return false
}

func (p *Protocol) handleUCI() {
	p.printf("id name %s\n", engineName)
	p.printf("id author %s\n", engineAuthor)
	p.printf("option name Hash type spin default %d min 1 max 4096\n", search.DefaultTableMB)
	p.println("option name Ponder type check default true")
	p.println("option name OwnBook type check default true")
	p.println("uciok")
}

// awaitIdle requests cancellation of any in-flight search and blocks until
// the worker has acknowledged it with a bestmove, per spec.md §5's
// exclusivity rule: the protocol thread must not mutate the board while
// the worker owns it.
func (p *Protocol) awaitIdle() {
	if !p.searching.Load() {
		return
	}
	p.driver.Stop()
	<-p.bestmoveAck
}

func (p *Protocol) handlePosition(args []string) {
	if len(args) == 0 {
		p.infoString("Malformed position command")
		return
	}
	idx := 0
	var b *chess.Board
	switch strings.ToLower(args[0]) {
	case "startpos":
		b = newStartBoard()
		idx = 1
	case "fen":
		idx = 1
		start := idx
		for idx < len(args) && strings.ToLower(args[idx]) != "moves" {
			idx++
		}
		fen := strings.Join(args[start:idx], " ")
		b = chess.NewEmptyBoard()
		if err := b.LoadFEN(fen); err != nil {
			p.infoString("Invalid fen position: " + err.Error())
			return
		}
	default:
		p.infoString("Invalid position subcommand")
		return
	}

	if idx < len(args) && strings.ToLower(args[idx]) == "moves" {
		idx++
		for ; idx < len(args); idx++ {
			m, ok := b.ParseUCIMove(strings.ToLower(args[idx]))
			if !ok {
				p.infoString("Could not parse move " + args[idx])
				break
			}
			b.MakeMove(m)
		}
	}
	p.board = b
	p.driver.SetPosition(b)
}

func (p *Protocol) handleGo(args []string) {
	p.awaitIdle()

	params, ponder := parseGoParams(args)
	p.pendingPlan = params

	if !ponder {
		if mv, ok := p.tryBookMove(); ok {
			p.println("bestmove " + mv.String())
			return
		}
	}

	p.driver.SetPosition(p.board)
	p.searching.Store(true)
	p.driver.Go(params, ponder)
}

func (p *Protocol) tryBookMove() (chess.Move, bool) {
	if !p.useBook {
		return 0, false
	}
	entries := book.Lookup(p.board)
	return book.Pick(p.board, entries, p.rng)
}

func (p *Protocol) handlePonderHit() {
	if !p.searching.Load() {
		return
	}
	p.driver.PonderHit(p.pendingPlan)
}

func (p *Protocol) handleSetOption(args []string) {
	name, value, ok := parseSetOption(args)
	if !ok {
		p.infoString("Malformed setoption command")
		return
	}
	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil {
			p.infoString("Invalid Hash value: " + value)
			return
		}
		p.awaitIdle()
		p.opts.HashMB = mb
		p.tt.Resize(mb)
	case "ponder":
		p.opts.Ponder = strings.EqualFold(value, "true")
	case "ownbook":
		p.useBook = strings.EqualFold(value, "true")
	default:
		p.infoString("Unknown option: " + name)
	}
}

func (p *Protocol) handleDiagram() {
	p.print(diagram.Render(p.board))
}

// drainEvents runs for the protocol's lifetime, formatting every event the
// search worker emits to the UCI output stream, and acknowledging bestmove
// so awaitIdle can unblock a waiting protocol-thread mutation.
func (p *Protocol) drainEvents() {
	for ev := range p.driver.Events() {
		switch ev.Kind {
		case search.EventInfo:
			p.println(formatInfo(ev))
		case search.EventInfoString:
			p.infoString(ev.Text)
		case search.EventBestMove:
			p.searching.Store(false)
			p.println(formatBestMove(ev))
			select {
			case p.bestmoveAck <- struct{}{}:
			default:
			}
		}
	}
}

func formatBestMove(ev search.Event) string {
	if ev.BestMove.IsNull() {
		return "bestmove 0000"
	}
	if !ev.PonderMove.IsNull() {
		return fmt.Sprintf("bestmove %s ponder %s", ev.BestMove, ev.PonderMove)
	}
	return "bestmove " + ev.BestMove.String()
}

func formatInfo(ev search.Event) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "info depth %d", ev.Depth)
	if ev.SelDepth > 0 {
		fmt.Fprintf(&sb, " seldepth %d", ev.SelDepth)
	}
	fmt.Fprintf(&sb, " time %d nodes %d", ev.Elapsed.Milliseconds(), ev.Nodes)
	nps := uint64(0)
	if ev.Elapsed > 0 {
		nps = uint64(float64(ev.Nodes) / ev.Elapsed.Seconds())
	}
	fmt.Fprintf(&sb, " nps %d", nps)
	if ev.Mate != 0 {
		fmt.Fprintf(&sb, " score mate %d", ev.Mate)
	} else {
		fmt.Fprintf(&sb, " score cp %d", ev.Score)
	}
	fmt.Fprintf(&sb, " hashfull %d", ev.HashFull)
	if len(ev.PV) > 0 {
		sb.WriteString(" pv")
		for _, m := range ev.PV {
			sb.WriteByte(' ')
			sb.WriteString(m.String())
		}
	}
	return sb.String()
}

func (p *Protocol) println(s string)          { fmt.Fprintln(p.out, s) }
func (p *Protocol) print(s string)            { fmt.Fprint(p.out, s) }
func (p *Protocol) printf(f string, a ...any) { fmt.Fprintf(p.out, f, a...) }
func (p *Protocol) infoString(s string)       { fmt.Fprintln(p.out, "info string "+s) }
