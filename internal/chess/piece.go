// Package chess implements the board representation, move generation, and
// make/unmake core of the engine: bitboards, piece lists, Zobrist hashing,
// magic-bitboard sliding attacks, and FEN loading.
package chess

// Piece encodes a piece's type in the low three bits and color in bit 3.
// Zero (NoPiece) means the square is empty.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is the colorless type of a piece, used for table lookups.
type PieceType uint8

const (
	PieceTypeNone PieceType = iota
	PieceTypePawn
	PieceTypeKnight
	PieceTypeBishop
	PieceTypeRook
	PieceTypeQueen
	PieceTypeKing
)

// PieceValue gives the classical material value used by move ordering and
// evaluation (centipawns).
var PieceValue = [7]int{0, 100, 300, 320, 500, 900, 0}

// Type strips the color bit, returning the colorless piece type.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece reports White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// IsNone reports whether the square holding this value is empty.
func (p Piece) IsNone() bool { return p == NoPiece }

// PieceFromType combines a colorless type with a side.
func PieceFromType(c Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	if c == White {
		return Piece(pt)
	}
	return Piece(pt) | 8
}

// Color is the side to move: White or Black.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Opponent returns the other color.
func (c Color) Opponent() Color { return c ^ 1 }

// CastlingRights is a 4-bit mask of the four castling privileges.
type CastlingRights uint8

const (
	CastlingWhiteK CastlingRights = 1 << iota
	CastlingWhiteQ
	CastlingBlackK
	CastlingBlackQ
)

// Square is a board index 0..63, file-major: index = rank*8 + file, a1=0, h8=63.
type Square int8

const NoSquare Square = -1

// File returns 0..7 (a..h).
func (s Square) File() int { return int(s) & 7 }

// Rank returns 0..7 (1..8).
func (s Square) Rank() int { return int(s) >> 3 }

func squareOf(rank, file int) Square { return Square(rank*8 + file) }

var squareNames = buildSquareNames()

func buildSquareNames() [64]string {
	var names [64]string
	for sq := 0; sq < 64; sq++ {
		file := byte('a' + sq%8)
		rank := byte('1' + sq/8)
		names[sq] = string([]byte{file, rank})
	}
	return names
}

// String renders the square in algebraic notation, e.g. "e4".
func (s Square) String() string {
	if s < 0 || s > 63 {
		return "-"
	}
	return squareNames[s]
}

// ParseSquare decodes algebraic notation ("e4") into a Square.
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 {
		return NoSquare, false
	}
	file := s[0]
	rank := s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, false
	}
	return squareOf(int(rank-'1'), int(file-'a')), true
}
