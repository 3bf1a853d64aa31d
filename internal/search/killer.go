package search

import "github.com/oliverans/chessengine/internal/chess"

const maxPly = 128

// killerTable holds two quiet-move slots per ply (spec §4.7): a beta-cutoff
// quiet move is promoted to slot 0, bumping whatever was there to slot 1.
// Grounded on GooseEngine's engine/killer.go KillerStruct. Killers are
// cleared only by Clear (on `ucinewgame`); they carry over between
// iterative-deepening iterations and between searches (spec §9's Open
// Question: history is cleared per search, killers are kept).
type killerTable struct {
	moves [maxPly][2]chess.Move
}

// Add records a quiet beta-cutoff move at ply, promoting it to the primary
// slot unless it is already there.
func (k *killerTable) Add(ply int, m chess.Move) {
	if ply < 0 || ply >= maxPly {
		return
	}
	if k.moves[ply][0] == m {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

// IsKiller reports whether m occupies either slot at ply, and which one.
func (k *killerTable) IsKiller(ply int, m chess.Move) (slot int, ok bool) {
	if ply < 0 || ply >= maxPly {
		return 0, false
	}
	if k.moves[ply][0] == m {
		return 0, true
	}
	if k.moves[ply][1] == m {
		return 1, true
	}
	return 0, false
}

// Clear empties every slot (spec §6's `ucinewgame`).
func (k *killerTable) Clear() {
	for ply := range k.moves {
		k.moves[ply][0] = chess.Move(0)
		k.moves[ply][1] = chess.Move(0)
	}
}
