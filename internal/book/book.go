// Package book implements a tiny static opening book: a table of known
// positions (keyed by Zobrist hash) mapping to one or more weighted reply
// moves, looked up before the searcher is ever invoked.
//
// Grounded on GooseEngine's engine/opening_book.go (a CSV-driven book,
// loaded from disk at a hardcoded relative path); this package keeps the
// same "position -> candidate replies" shape but compiles the table in
// directly rather than shipping a data file, and replaces the teacher's
// linear CSV scan with a binary search over a sorted slice via
// golang.org/x/exp/slices, the pack's sorted-lookup idiom.
package book

import (
	"math/rand"

	"golang.org/x/exp/slices"

	"github.com/oliverans/chessengine/internal/chess"
)

// Entry is one book reply: a UCI move string and a relative weight used to
// bias random selection among several known-good replies.
type Entry struct {
	Key    uint64
	Move   string
	Weight int
}

// rawEntry is the book's source form, keyed by the FEN of the position the
// move answers rather than by Zobrist hash — FENs stay readable in source,
// and the Zobrist keys are derived once at init time by actually loading
// each FEN, so they can never drift from the chess package's hashing scheme.
type rawEntry struct {
	fen    string
	move   string
	weight int
}

// Populated with a handful of well-known main-line openings; not meant to
// be exhaustive.
var rawBook = []rawEntry{
	// Starting position: 1.e4, 1.d4, 1.Nf3, 1.c4.
	{chess.StartFEN, "e2e4", 40},
	{chess.StartFEN, "d2d4", 35},
	{chess.StartFEN, "g1f3", 15},
	{chess.StartFEN, "c2c4", 10},

	// After 1.e4: Sicilian, e5, French, Caro-Kann.
	{"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", "c7c5", 30},
	{"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", "e7e5", 30},
	{"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", "e7e6", 20},
	{"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", "c7c6", 20},

	// After 1.d4: Nf6 (Indian systems) or d5 (Queen's Gambit).
	{"rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 1", "g8f6", 50},
	{"rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 1", "d7d5", 50},
}

// book is sorted by Key ascending so Lookup can binary search it; entries
// sharing a Key are the candidate replies for that position. Built once at
// init from rawBook, by actually loading each FEN through the chess package
// so the derived Zobrist keys are always consistent with its hashing scheme.
var book []Entry

func init() {
	book = make([]Entry, 0, len(rawBook))
	for _, r := range rawBook {
		b := chess.NewEmptyBoard()
		if err := b.LoadFEN(r.fen); err != nil {
			continue
		}
		book = append(book, Entry{Key: b.Zobrist(), Move: r.move, Weight: r.weight})
	}
	slices.SortFunc(book, func(a, b Entry) bool { return a.Key < b.Key })
}

// Lookup returns every book reply known for the position's current Zobrist
// key, or nil if the position isn't in the book.
func Lookup(b *chess.Board) []Entry {
	key := b.Zobrist()
	i, ok := slices.BinarySearchFunc(book, Entry{Key: key}, func(a, b Entry) int {
		switch {
		case a.Key < b.Key:
			return -1
		case a.Key > b.Key:
			return 1
		default:
			return 0
		}
	})
	if !ok {
		return nil
	}
	lo, hi := i, i+1
	for lo > 0 && book[lo-1].Key == key {
		lo--
	}
	for hi < len(book) && book[hi].Key == key {
		hi++
	}
	return book[lo:hi]
}

// Pick weighted-randomly selects one reply from a Lookup result, parsed
// against b so the caller gets a ready-to-play chess.Move. Returns false if
// entries is empty or no entry parses.
func Pick(b *chess.Board, entries []Entry, rng *rand.Rand) (chess.Move, bool) {
	if len(entries) == 0 {
		return 0, false
	}
	total := 0
	for _, e := range entries {
		total += e.Weight
	}
	if total <= 0 {
		return 0, false
	}
	pick := rng.Intn(total)
	for _, e := range entries {
		if pick < e.Weight {
			return b.ParseUCIMove(e.Move)
		}
		pick -= e.Weight
	}
	return b.ParseUCIMove(entries[len(entries)-1].Move)
}
