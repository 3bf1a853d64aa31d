package chess

// PieceList is an ordered collection of the squares occupied by one
// (piece type, color), with constant-time add/remove/move via a parallel
// square -> index map. Used to accelerate evaluation and distance queries
// that would otherwise have to scan a bitboard.
type PieceList struct {
	squares [10]Square // a side can have at most 10 of one piece type (2 originals + 8 promoted pawns)
	index   [64]int8   // index[sq] = position of sq within squares, or -1
	count   int8
}

func newPieceList() PieceList {
	pl := PieceList{}
	for i := range pl.index {
		pl.index[i] = -1
	}
	return pl
}

// Len returns the number of squares currently tracked.
func (pl *PieceList) Len() int { return int(pl.count) }

// Squares returns the occupied squares in unspecified but stable order.
func (pl *PieceList) Squares() []Square { return pl.squares[:pl.count] }

// Add appends a square to the list.
func (pl *PieceList) Add(sq Square) {
	pl.index[sq] = pl.count
	pl.squares[pl.count] = sq
	pl.count++
}

// Remove removes a square from the list in O(1) by swapping in the last entry.
func (pl *PieceList) Remove(sq Square) {
	i := pl.index[sq]
	if i < 0 {
		return
	}
	last := pl.count - 1
	lastSq := pl.squares[last]
	pl.squares[i] = lastSq
	pl.index[lastSq] = i
	pl.index[sq] = -1
	pl.count = last
}

// Move relocates a tracked piece from one square to another in O(1).
func (pl *PieceList) Move(from, to Square) {
	i := pl.index[from]
	if i < 0 {
		return
	}
	pl.squares[i] = to
	pl.index[to] = i
	pl.index[from] = -1
}

// Contains reports whether sq is tracked by this list.
func (pl *PieceList) Contains(sq Square) bool { return pl.index[sq] >= 0 }
