package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenPieceChar = map[byte]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop, 'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop, 'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

var pieceFenChar = map[Piece]byte{
	WhitePawn: 'P', WhiteKnight: 'N', WhiteBishop: 'B', WhiteRook: 'R', WhiteQueen: 'Q', WhiteKing: 'K',
	BlackPawn: 'p', BlackKnight: 'n', BlackBishop: 'b', BlackRook: 'r', BlackQueen: 'q', BlackKing: 'k',
}

// LoadFEN parses a FEN string (spec §6's move/FEN format) into b, replacing
// its entire contents. Grounded on goosemg/fen.go's ParseFEN, adapted to
// this package's bitboard/piece-list/Zobrist incremental-update machinery:
// rather than assigning fields directly, it drives the board through
// placePiece so every derived structure (piece lists, per-color bitboards,
// king squares, Zobrist key) comes out consistent without a second pass.
func (b *Board) LoadFEN(fen string) error {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return fmt.Errorf("chess: FEN %q: need at least 4 fields, got %d", fen, len(fields))
	}

	*b = *NewEmptyBoard()

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return fmt.Errorf("chess: FEN %q: expected 8 ranks, got %d", fen, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range []byte(rankStr) {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p, ok := fenPieceChar[ch]
			if !ok {
				return fmt.Errorf("chess: FEN %q: invalid piece char %q", fen, ch)
			}
			if file > 7 {
				return fmt.Errorf("chess: FEN %q: rank %d overflows", fen, i)
			}
			b.placePiece(squareOf(rank, file), p)
			file++
		}
		if file != 8 {
			return fmt.Errorf("chess: FEN %q: rank %d has %d files, want 8", fen, i, file)
		}
	}

	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return fmt.Errorf("chess: FEN %q: invalid side to move %q", fen, fields[1])
	}

	var cr CastlingRights
	if fields[2] != "-" {
		for _, ch := range []byte(fields[2]) {
			switch ch {
			case 'K':
				cr |= CastlingWhiteK
			case 'Q':
				cr |= CastlingWhiteQ
			case 'k':
				cr |= CastlingBlackK
			case 'q':
				cr |= CastlingBlackQ
			default:
				return fmt.Errorf("chess: FEN %q: invalid castling char %q", fen, ch)
			}
		}
	}
	b.castlingRights = cr

	if fields[3] != "-" {
		sq, ok := ParseSquare(fields[3])
		if !ok {
			return fmt.Errorf("chess: FEN %q: invalid en passant square %q", fen, fields[3])
		}
		b.enPassantFile = sq.File() + 1
	}

	b.halfmoveClock = 0
	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return fmt.Errorf("chess: FEN %q: invalid halfmove clock %q", fen, fields[4])
		}
		b.halfmoveClock = n
	}
	b.fullmoveNumber = 1
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return fmt.Errorf("chess: FEN %q: invalid fullmove number %q", fen, fields[5])
		}
		b.fullmoveNumber = n
	}

	b.rebuildAggregates()
	b.zobristKey = b.ComputeZobristFromScratch()
	b.repetitionKeys = []uint64{b.zobristKey}
	b.checkCacheValid = false

	if b.kingSquare[White] == NoSquare || b.kingSquare[Black] == NoSquare {
		return fmt.Errorf("chess: FEN %q: missing a king", fen)
	}
	return nil
}

// ToFEN serializes the current position to FEN, the inverse of LoadFEN.
func (b *Board) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.pieces[squareOf(rank, file)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceFenChar[p])
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if b.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if b.castlingRights&CastlingWhiteK != 0 {
			sb.WriteByte('K')
		}
		if b.castlingRights&CastlingWhiteQ != 0 {
			sb.WriteByte('Q')
		}
		if b.castlingRights&CastlingBlackK != 0 {
			sb.WriteByte('k')
		}
		if b.castlingRights&CastlingBlackQ != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.EnPassantSquare().String())

	fmt.Fprintf(&sb, " %d %d", b.halfmoveClock, b.fullmoveNumber)
	return sb.String()
}
