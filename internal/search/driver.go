package search

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/oliverans/chessengine/internal/chess"
)

// EventKind distinguishes the shapes of events the driver emits on its
// output channel (spec §6: `info`, `info string`, `bestmove`).
type EventKind int

const (
	EventInfo EventKind = iota
	EventInfoString
	EventBestMove
)

// Event is one message from the search worker to the UCI layer. Only the
// fields relevant to Kind are populated.
type Event struct {
	Kind EventKind

	Depth    int
	SelDepth int
	Score    int32
	Mate     int // non-zero moves-to-mate (negative when being mated), set alongside Score when |Score| > MateBound and printed in its place
	Nodes    uint64
	NPS      uint64
	Elapsed  time.Duration
	PV       []chess.Move
	HashFull int

	Text string // EventInfoString payload

	BestMove   chess.Move
	PonderMove chess.Move
}

// goRequest is what SetPosition/Go hand off to the worker goroutine.
type goRequest struct {
	board      *chess.Board
	params     GoParams
	ponder     bool
	generation uint64
}

// Driver is the long-lived search worker described in spec §5/§9: a single
// goroutine that blocks on a wake signal, a mutex guarding the handoff of
// board/request state, an atomic cancellation flag the searcher polls, and
// a generation counter so a stale `stop`/timer from a superseded search can
// never be mistaken for belonging to the current one.
//
// Grounded on GooseEngine's cmd/main.go + engine/search.go goroutine/channel
// wiring, restructured around the single always-running worker plus wake
// channel the spec names instead of the teacher's per-search goroutine spawn.
type Driver struct {
	mu       sync.Mutex
	board    *chess.Board
	tt       *Table
	pending  *goRequest
	ponderAt *chess.Board // position searched under ponder, for PonderHit to resume from

	wake   chan struct{}
	events chan Event

	generation atomic.Uint64
	cancel     atomic.Bool

	searcher *Searcher
}

// NewDriver starts the worker goroutine and returns a Driver ready to
// accept SetPosition/Go/Stop calls. eventBuf sizes the output channel.
func NewDriver(tt *Table, eventBuf int) *Driver {
	d := &Driver{
		tt:       tt,
		wake:     make(chan struct{}, 1),
		events:   make(chan Event, eventBuf),
		searcher: NewSearcher(),
	}
	go d.run()
	return d
}

// Events returns the channel the UCI layer should drain for info/bestmove
// output.
func (d *Driver) Events() <-chan Event { return d.events }

// SetPosition installs the board the next Go call will search from.
func (d *Driver) SetPosition(b *chess.Board) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.board = b
}

// Go starts a new search, canceling and superseding any search already in
// flight. ponder marks this as a ponder search: infinite budget until
// PonderHit or Stop arrives.
func (d *Driver) Go(params GoParams, ponder bool) {
	d.mu.Lock()
	board := d.board
	gen := d.generation.Add(1)
	d.cancel.Store(false)
	if ponder {
		d.ponderAt = board
	}
	d.pending = &goRequest{board: board.Clone(), params: params, ponder: ponder, generation: gen}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// PonderHit converts the in-flight ponder search into a normally timed one:
// the position being searched was already the one reached after the
// predicted opponent move, so the only change is that a deadline now
// applies (spec §4.9's pondering rule: "on ponderhit reload FEN+replay+
// timed search"). Since the worker already holds that exact position, this
// degrades to re-issuing Go with real time controls on the same board.
func (d *Driver) PonderHit(params GoParams) {
	d.mu.Lock()
	board := d.ponderAt
	if board == nil {
		board = d.board
	}
	d.mu.Unlock()
	if board == nil {
		return
	}
	d.Stop()
	d.mu.Lock()
	d.board = board
	d.mu.Unlock()
	d.Go(params, false)
}

// Stop cancels whatever search is running. Safe to call with no search in
// flight.
func (d *Driver) Stop() {
	d.cancel.Store(true)
}

// NewGame clears the transposition table and the killer/history ordering
// state (spec §6's `ucinewgame`: "clear transposition/killer/history
// tables"). Must only be called while no search is in flight.
func (d *Driver) NewGame() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tt.Clear()
	d.searcher.Killers.Clear()
	d.searcher.History.Clear()
}

// run is the worker loop: block for a wake signal, pull the most recent
// request, run iterative deepening, emit info/bestmove, repeat.
func (d *Driver) run() {
	for range d.wake {
		d.mu.Lock()
		req := d.pending
		d.pending = nil
		d.mu.Unlock()
		if req == nil {
			continue
		}
		d.runSearch(req)
	}
}

func (d *Driver) runSearch(req *goRequest) {
	rep := NewRepetitionTable(req.board.RepetitionKeys())
	d.searcher.NewIteration(d.tt, rep)

	start := time.Now()
	plan := PlanTime(start, req.board.SideToMove() == chess.White, req.params)
	if req.ponder {
		plan = Plan{NoLimit: true}
	}

	generation := req.generation
	d.searcher.Cancel = func() bool {
		if d.cancel.Load() {
			return true
		}
		if d.generation.Load() != generation {
			return true
		}
		if !plan.NoLimit && !plan.Deadline.IsZero() && time.Now().After(plan.Deadline) {
			return true
		}
		return false
	}

	maxDepth := plan.Depth
	if maxDepth <= 0 {
		maxDepth = 256
	}

	var bestMove chess.Move
	var lastScore int32
	const aspirationWindow int32 = 50

	for depth := 1; depth <= maxDepth; depth++ {
		if d.searcher.Cancel() {
			break
		}
		alpha, beta := -Mate, Mate
		if depth >= 2 {
			alpha = lastScore - aspirationWindow
			beta = lastScore + aspirationWindow
		}

		var score int32
		window := aspirationWindow
		for {
			score = d.searcher.Search(req.board, depth, alpha, beta)
			if d.searcher.Cancel() {
				break
			}
			if score <= alpha {
				alpha -= window
				window *= 4
				if alpha < -Mate {
					alpha = -Mate
				}
				continue
			}
			if score >= beta {
				beta += window
				window *= 4
				if beta > Mate {
					beta = Mate
				}
				continue
			}
			break
		}
		if d.searcher.Cancel() {
			break
		}

		lastScore = score
		pv := d.searcher.PV()
		if len(pv) > 0 {
			bestMove = pv[0]
		}

		ev := Event{
			Kind:     EventInfo,
			Depth:    depth,
			SelDepth: d.searcher.SelDepth,
			Score:    score,
			Nodes:    d.searcher.Nodes,
			Elapsed:  time.Since(start),
			PV:       pv,
			HashFull: d.tt.HashfullPermille(),
		}
		if score > MateBound {
			ev.Mate = int((Mate - score + 1) / 2)
		} else if score < -MateBound {
			ev.Mate = -int((Mate + score + 1) / 2)
		}
		d.emit(ev)
	}

	var ponderMove chess.Move
	if len(d.searcher.PV()) > 1 {
		ponderMove = d.searcher.PV()[1]
	}
	if bestMove.IsNull() {
		// Cancelled before depth 1 finished (zero-time go, or an immediate
		// stop): spec §5 still requires a legal move, not the null move.
		buf := make([]chess.Move, 0, chess.MaxMoves)
		if moves := req.board.GenerateMoves(buf, chess.GenAll); len(moves) > 0 {
			bestMove = moves[0]
		}
	}
	if d.generation.Load() != generation {
		// Superseded by a newer Go (e.g. PonderHit): that search replies.
		return
	}
	d.emit(Event{Kind: EventBestMove, BestMove: bestMove, PonderMove: ponderMove})
}

func (d *Driver) emit(ev Event) {
	select {
	case d.events <- ev:
	default:
		// Output channel full: drop rather than block the search thread.
		// A slow UCI reader loses an intermediate info line, never bestmove
		// correctness, since bestmove is always attempted with a blocking
		// send below.
		if ev.Kind == EventBestMove {
			d.events <- ev
		}
	}
}
