package chess

import "math/bits"

// GameState is the immutable snapshot pushed on make and popped on unmake
// (spec §3): everything needed to undo a move that Board does not already
// restore incrementally.
type GameState struct {
	CapturedType  PieceType
	EnPassantFile int // 0 = none, else 1..8
	Castling      CastlingRights
	HalfmoveClock int
	Zobrist       uint64
}

// Board is the mutable position: piece arrays, bitboards, piece lists,
// state stack, and repetition history (spec §3). It is created empty,
// loaded once from a FEN, and thereafter mutated only by make/unmake.
type Board struct {
	pieces [64]Piece

	pieceBB [2][7]uint64 // pieceBB[color][PieceType], PieceTypeNone unused
	colorBB [2]uint64
	allBB   uint64

	// Convenience slider bitboards, rebuilt on every make/unmake per spec.
	orthogonalSliders [2]uint64 // rooks | queens, per color
	diagonalSliders   [2]uint64 // bishops | queens, per color

	pieceList [2][7]PieceList

	kingSquare [2]Square

	sideToMove     Color
	castlingRights CastlingRights
	enPassantFile  int // 0 = none, else 1..8
	halfmoveClock  int
	fullmoveNumber int
	zobristKey     uint64
	ply            int

	// Repetition-relevant keys since the last irreversible move, and the
	// full game-move history (spec §3's "list of repetition-relevant
	// Zobrist keys" and "full game-move history").
	repetitionKeys      []uint64
	repetitionSnapshots [][]uint64 // pre-move copies, for UnmakeMove (not MakeSearchMove)
	moveHistory         []Move

	checkCache       checkInfo
	checkCacheValid  bool
}

type checkInfo struct {
	inCheck bool
}

// NewEmptyBoard returns a zero-value board; callers must load a position
// via LoadFEN before using it.
func NewEmptyBoard() *Board {
	b := &Board{enPassantFile: 0}
	for c := 0; c < 2; c++ {
		for pt := 0; pt < 7; pt++ {
			b.pieceList[c][pt] = newPieceList()
		}
	}
	b.kingSquare[White] = NoSquare
	b.kingSquare[Black] = NoSquare
	return b
}

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// Zobrist returns the current incrementally maintained Zobrist key.
func (b *Board) Zobrist() uint64 { return b.zobristKey }

// Ply returns the number of half-moves made since the board was loaded.
func (b *Board) Ply() int { return b.ply }

// HalfmoveClock returns the fifty-move-rule counter (half-moves).
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the full-move counter.
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// CastlingRights returns the current castling-rights mask.
func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }

// EnPassantSquare returns the current en-passant target square, or NoSquare.
func (b *Board) EnPassantSquare() Square {
	if b.enPassantFile == 0 {
		return NoSquare
	}
	// The target rank depends on who just moved: White just moved places
	// the target on rank 3 (index 2); Black just moved places it on rank 6
	// (index 5). Side to move now is the opponent of whoever just moved.
	rank := 5
	if b.sideToMove == Black {
		rank = 2
	}
	return squareOf(rank, b.enPassantFile-1)
}

// PieceAt returns the piece occupying a square (NoPiece if empty).
func (b *Board) PieceAt(sq Square) Piece { return b.pieces[sq] }

// KingSquare returns the square of the given color's king.
func (b *Board) KingSquare(c Color) Square { return b.kingSquare[c] }

// PieceBB returns the bitboard for one (color, type).
func (b *Board) PieceBB(c Color, pt PieceType) uint64 { return b.pieceBB[c][pt] }

// ColorBB returns the aggregate occupancy bitboard for one color.
func (b *Board) ColorBB(c Color) uint64 { return b.colorBB[c] }

// AllBB returns the aggregate occupancy of both colors.
func (b *Board) AllBB() uint64 { return b.allBB }

// OrthogonalSliders returns rooks|queens for a color.
func (b *Board) OrthogonalSliders(c Color) uint64 { return b.orthogonalSliders[c] }

// DiagonalSliders returns bishops|queens for a color.
func (b *Board) DiagonalSliders(c Color) uint64 { return b.diagonalSliders[c] }

// PieceList returns the tracked squares for one (color, type).
func (b *Board) PieceList(c Color, pt PieceType) *PieceList { return &b.pieceList[c][pt] }

// RepetitionKeys returns the Zobrist history since the last irreversible
// move (capture or pawn move).
func (b *Board) RepetitionKeys() []uint64 { return b.repetitionKeys }

// MoveHistory returns every move made since the board was loaded.
func (b *Board) MoveHistory() []Move { return b.moveHistory }

func (b *Board) rebuildAggregates() {
	b.colorBB[White] = b.pieceBB[White][1] | b.pieceBB[White][2] | b.pieceBB[White][3] |
		b.pieceBB[White][4] | b.pieceBB[White][5] | b.pieceBB[White][6]
	b.colorBB[Black] = b.pieceBB[Black][1] | b.pieceBB[Black][2] | b.pieceBB[Black][3] |
		b.pieceBB[Black][4] | b.pieceBB[Black][5] | b.pieceBB[Black][6]
	b.allBB = b.colorBB[White] | b.colorBB[Black]
	b.orthogonalSliders[White] = b.pieceBB[White][int(PieceTypeRook)] | b.pieceBB[White][int(PieceTypeQueen)]
	b.orthogonalSliders[Black] = b.pieceBB[Black][int(PieceTypeRook)] | b.pieceBB[Black][int(PieceTypeQueen)]
	b.diagonalSliders[White] = b.pieceBB[White][int(PieceTypeBishop)] | b.pieceBB[White][int(PieceTypeQueen)]
	b.diagonalSliders[Black] = b.pieceBB[Black][int(PieceTypeBishop)] | b.pieceBB[Black][int(PieceTypeQueen)]
}

// placePiece puts p on an empty square, updating bitboards, piece list, and
// Zobrist, but not aggregates (callers rebuild aggregates once per move).
func (b *Board) placePiece(sq Square, p Piece) {
	b.pieces[sq] = p
	c := p.Color()
	pt := p.Type()
	b.pieceBB[c][pt] |= 1 << uint(sq)
	b.pieceList[c][pt].Add(sq)
	b.zobristKey ^= zobristPieceSquare[p][sq]
	if pt == PieceTypeKing {
		b.kingSquare[c] = sq
	}
}

// removePiece takes whatever piece is on sq off the board (must be occupied).
func (b *Board) removePiece(sq Square) Piece {
	p := b.pieces[sq]
	c := p.Color()
	pt := p.Type()
	b.pieces[sq] = NoPiece
	b.pieceBB[c][pt] &^= 1 << uint(sq)
	b.pieceList[c][pt].Remove(sq)
	b.zobristKey ^= zobristPieceSquare[p][sq]
	return p
}

// IsInCheck reports whether side's king is attacked, using the ply-scoped
// memoized result (spec §4.3 check cache); it is invalidated on every
// make/unmake.
func (b *Board) IsInCheck(side Color) bool {
	if side == b.sideToMove && b.checkCacheValid {
		return b.checkCache.inCheck
	}
	result := b.isSquareAttacked(b.kingSquare[side], side.Opponent(), b.allBB)
	if side == b.sideToMove {
		b.checkCache = checkInfo{inCheck: result}
		b.checkCacheValid = true
	}
	return result
}

// IsSquareAttacked reports whether sq is attacked by `by` under the current
// occupancy. Exported for move-ordering use (spec §4.7's attacked-square
// penalties and recapture test), alongside the check/castling logic that
// calls the unexported form directly with a locally adjusted occupancy.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.isSquareAttacked(sq, by, b.allBB)
}

// IsSquareAttackedWithOcc is IsSquareAttacked against a caller-supplied
// occupancy, used when testing a hypothetical post-move board without
// actually making the move (e.g. scoring a capture's recapture risk).
func (b *Board) IsSquareAttackedWithOcc(sq Square, by Color, occ uint64) bool {
	return b.isSquareAttacked(sq, by, occ)
}

// isSquareAttacked reports whether sq is attacked by `by` given occupancy occ.
func (b *Board) isSquareAttacked(sq Square, by Color, occ uint64) bool {
	if pawnAttacks[by.Opponent()][sq]&b.pieceBB[by][PieceTypePawn] != 0 {
		return true
	}
	if knightAttacks[sq]&b.pieceBB[by][PieceTypeKnight] != 0 {
		return true
	}
	if kingAttacks[sq]&b.pieceBB[by][PieceTypeKing] != 0 {
		return true
	}
	if BishopAttacks(sq, occ)&b.diagonalSliders[by] != 0 {
		return true
	}
	if RookAttacks(sq, occ)&b.orthogonalSliders[by] != 0 {
		return true
	}
	return false
}

// Clone returns an independent copy of the board. MakeSearchMove/
// UnmakeSearchMove never mutate RepetitionKeys/MoveHistory in place (they
// only read them at search start), so sharing those slices' backing arrays
// between the original and the clone is safe; everything else that make/
// unmake touches is a fixed-size array and copies by value. Used by the
// search driver to hand the worker goroutine a board it can mutate freely
// while the protocol thread's own board is untouched (spec §5).
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Validate cross-checks pieces[]/bitboards/piece-lists/Zobrist consistency
// (spec §3 invariants); used by tests and by the fatal-error path (§7) when
// an internal invariant violation is suspected.
func (b *Board) Validate() bool {
	var pieceBB [2][7]uint64
	for sq := 0; sq < 64; sq++ {
		p := b.pieces[sq]
		if p == NoPiece {
			continue
		}
		pieceBB[p.Color()][p.Type()] |= 1 << uint(sq)
		if !b.pieceList[p.Color()][p.Type()].Contains(Square(sq)) {
			return false
		}
	}
	if pieceBB != b.pieceBB {
		return false
	}
	for c := Color(0); c < 2; c++ {
		if bits.OnesCount64(b.pieceBB[c][PieceTypeKing]) != 1 {
			return false
		}
		if b.kingSquare[c] != Square(bits.TrailingZeros64(b.pieceBB[c][PieceTypeKing])) {
			return false
		}
	}
	if b.zobristKey != b.ComputeZobristFromScratch() {
		return false
	}
	return true
}
