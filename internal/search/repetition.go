// Package search implements the alpha-beta searcher, its support tables
// (transposition, repetition, move ordering), classical evaluation, and the
// long-lived search driver that the UCI layer talks to.
package search

// RepetitionTable is the sliding window of spec §4.8: a stack of Zobrist
// keys plus a parallel "reset index" per entry. An irreversible move
// (capture or pawn move) starts a new window by resetting the index to its
// own position; Contains only ever looks back as far as the current
// window, matching the source's single-repeat-counts-as-draw behavior
// (spec §9's Open Question: preserved verbatim, not strict threefold).
//
// Grounded on GooseEngine's engine/state_stack.go repetition-window idiom,
// generalized to the exact Push/TryPop/Contains API spec §4.8 names.
type RepetitionTable struct {
	keys   []uint64
	resets []int
}

// NewRepetitionTable returns an empty table, optionally seeded with the
// keys already on the board's persistent repetition history (spec §3) so
// a search started mid-game still detects repetitions against moves
// played before the search began.
func NewRepetitionTable(seed []uint64) *RepetitionTable {
	rt := &RepetitionTable{
		keys:   make([]uint64, 0, len(seed)+64),
		resets: make([]int, 0, len(seed)+64),
	}
	for _, k := range seed {
		rt.Push(k, false)
	}
	return rt
}

// Push appends key. If reset, the new entry starts a fresh window (its own
// reset index); otherwise it inherits the window start of the entry below it.
func (rt *RepetitionTable) Push(key uint64, reset bool) {
	idx := len(rt.keys)
	rt.keys = append(rt.keys, key)
	if reset || idx == 0 {
		rt.resets = append(rt.resets, idx)
	} else {
		rt.resets = append(rt.resets, rt.resets[idx-1])
	}
}

// TryPop removes the most recently pushed key, floor-clamped at zero keys.
func (rt *RepetitionTable) TryPop() {
	if len(rt.keys) == 0 {
		return
	}
	rt.keys = rt.keys[:len(rt.keys)-1]
	rt.resets = rt.resets[:len(rt.resets)-1]
}

// Contains reports whether key occurs anywhere in the current window,
// strictly below the top of the stack (the position just reached is never
// compared against itself).
func (rt *RepetitionTable) Contains(key uint64) bool {
	if len(rt.keys) == 0 {
		return false
	}
	top := len(rt.keys) - 1
	start := rt.resets[top]
	for i := start; i < top; i++ {
		if rt.keys[i] == key {
			return true
		}
	}
	return false
}

// Len reports the number of keys currently in the window.
func (rt *RepetitionTable) Len() int { return len(rt.keys) }
