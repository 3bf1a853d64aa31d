package chess

import "strings"

// Move is a 16-bit encoded move: start(6) | target(6) | flag(4). The
// all-zero value is the null move (a1a1, flag None): it never occurs as a
// legal move since no piece can move to its own square.
//
// Moved/captured piece identity is not carried in the move; callers derive
// it from the board at the point of use, as spec'd for MakeMove.
type Move uint16

const (
	moveStartShift  = 0
	moveTargetShift = 6
	moveFlagShift   = 12

	moveSquareMask = 0x3F
	moveFlagMask   = 0xF
)

// MoveFlag distinguishes the handful of moves that need special handling
// during make/unmake and move generation.
type MoveFlag uint8

const (
	FlagNone MoveFlag = iota
	FlagEnPassantCapture
	FlagCastle
	FlagPawnTwoUp
	FlagPromoteToQueen
	FlagPromoteToKnight
	FlagPromoteToRook
	FlagPromoteToBishop
)

// NewMove packs a start/target/flag triple into a Move.
func NewMove(start, target Square, flag MoveFlag) Move {
	return Move(uint16(start&moveSquareMask)<<moveStartShift |
		uint16(target&moveSquareMask)<<moveTargetShift |
		uint16(flag&moveFlagMask)<<moveFlagShift)
}

// Start returns the origin square.
func (m Move) Start() Square { return Square((m >> moveStartShift) & moveSquareMask) }

// Target returns the destination square.
func (m Move) Target() Square { return Square((m >> moveTargetShift) & moveSquareMask) }

// Flag returns the move's special-case flag.
func (m Move) Flag() MoveFlag { return MoveFlag((m >> moveFlagShift) & moveFlagMask) }

// IsNull reports whether m is the reserved all-zero null move.
func (m Move) IsNull() bool { return m == 0 }

// IsPromotion reports whether the flag falls in the promotion range. The
// four promotion flags are contiguous and numerically greater than every
// other flag, so this is a single range test.
func (f MoveFlag) IsPromotion() bool { return f >= FlagPromoteToQueen }

// PromotionType returns the colorless piece type a promotion flag produces.
// Only valid when IsPromotion() is true.
func (f MoveFlag) PromotionType() PieceType {
	switch f {
	case FlagPromoteToQueen:
		return PieceTypeQueen
	case FlagPromoteToKnight:
		return PieceTypeKnight
	case FlagPromoteToRook:
		return PieceTypeRook
	case FlagPromoteToBishop:
		return PieceTypeBishop
	default:
		return PieceTypeNone
	}
}

var promotionFlagChar = map[MoveFlag]byte{
	FlagPromoteToQueen:  'q',
	FlagPromoteToKnight: 'n',
	FlagPromoteToRook:   'r',
	FlagPromoteToBishop: 'b',
}

var promotionCharFlag = map[byte]MoveFlag{
	'q': FlagPromoteToQueen,
	'n': FlagPromoteToKnight,
	'r': FlagPromoteToRook,
	'b': FlagPromoteToBishop,
}

// String renders the move in UCI long algebraic form, e.g. "e2e4", "e7e8q".
func (m Move) String() string {
	var sb strings.Builder
	sb.WriteString(m.Start().String())
	sb.WriteString(m.Target().String())
	if ch, ok := promotionFlagChar[m.Flag()]; ok {
		sb.WriteByte(ch)
	}
	return sb.String()
}

// ParseUCIMove decodes a UCI move string against the current position,
// geometrically: it trusts the host for legality and only needs to pick the
// right flag (castle, en passant, double push, promotion) by inspecting the
// board. It returns false if the string cannot even be decoded geometrically.
func (b *Board) ParseUCIMove(s string) (Move, bool) {
	if len(s) < 4 || len(s) > 5 {
		return 0, false
	}
	start, ok := ParseSquare(s[0:2])
	if !ok {
		return 0, false
	}
	target, ok := ParseSquare(s[2:4])
	if !ok {
		return 0, false
	}
	flag := FlagNone
	if len(s) == 5 {
		pf, ok := promotionCharFlag[s[4]]
		if !ok {
			return 0, false
		}
		flag = pf
	} else {
		moved := b.PieceAt(start)
		switch moved.Type() {
		case PieceTypeKing:
			if start == e1 && (target == g1 || target == c1) {
				flag = FlagCastle
			} else if start == e8 && (target == g8 || target == c8) {
				flag = FlagCastle
			}
		case PieceTypePawn:
			if target == b.EnPassantSquare() && target.File() != start.File() {
				flag = FlagEnPassantCapture
			} else if abs(target.Rank()-start.Rank()) == 2 {
				flag = FlagPawnTwoUp
			}
		}
	}
	return NewMove(start, target, flag), true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

const (
	e1 Square = 4
	g1 Square = 6
	c1 Square = 2
	e8 Square = 60
	g8 Square = 62
	c8 Square = 58
)
