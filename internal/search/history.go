package search

import "github.com/oliverans/chessengine/internal/chess"

// historyMaxVal caps the history table before it would start outscoring
// the capture/killer bands in scoreMove; crossing it halves the whole
// table instead of saturating at the cap (spec §4.7: "incremented by
// depth^2 on beta-cutoff"). Grounded on GooseEngine's engine/searchutil.go
// incrementHistoryScore/historyMaxVal, simplified from its per-move aging
// variants to a single halving step.
const historyMaxVal = 10000

// historyTable is the quiet-move history heuristic, indexed by side to
// move, origin, and destination square.
type historyTable struct {
	scores [2][64][64]int
}

// Add increments the score for a quiet move that caused a beta cutoff at
// the given depth, halving the whole table if the increment would
// overflow historyMaxVal.
func (h *historyTable) Add(side chess.Color, m chess.Move, depth int) {
	s := &h.scores[side][m.Start()][m.Target()]
	*s += depth * depth
	if *s >= historyMaxVal {
		for f := 0; f < 64; f++ {
			for t := 0; t < 64; t++ {
				h.scores[side][f][t] /= 2
			}
		}
	}
}

// Score returns the current history value for a quiet move.
func (h *historyTable) Score(side chess.Color, m chess.Move) int {
	return h.scores[side][m.Start()][m.Target()]
}

// Clear zeroes the whole table (spec §4.9: history is cleared at the start
// of every search, unlike killers).
func (h *historyTable) Clear() {
	h.scores = [2][64][64]int{}
}
