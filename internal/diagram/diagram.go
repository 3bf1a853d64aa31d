// Package diagram renders an ASCII board diagram for the UCI `d`
// command and for fatal-error dumps (spec.md §3 supplemented feature;
// §7's "emit ... board diagram" fatal-error path).
//
// Grounded on ChizhovVadim-CounterGo's shell/chessconsole.go
// (PrintPosition's rank-major Unicode-glyph board walk), adapted to print
// file/rank labels and the position's FEN/Zobrist/state line the way
// Oliverans-GooseEngine's diagnostic output does, and cross-checked against
// github.com/dylhunn/dragontoothmg's own board layout (a1 bottom-left,
// a8h8 the printed top rank) so the two engines' `d` output agree on
// orientation.
package diagram

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"

	"github.com/oliverans/chessengine/internal/chess"
)

var pieceGlyph = [2][7]string{
	{".", "P", "N", "B", "R", "Q", "K"},
	{".", "p", "n", "b", "r", "q", "k"},
}

// Render returns a multi-line human-readable dump of b: an 8x8 board with
// rank/file labels, then the FEN, Zobrist key, side to move, castling
// rights, en-passant square, and halfmove clock.
func Render(b *chess.Board) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sq := chess.Square(rank*8 + file)
			p := b.PieceAt(sq)
			if p.IsNone() {
				sb.WriteString(". ")
				continue
			}
			sb.WriteString(pieceGlyph[p.Color()][p.Type()])
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h\n\n")

	fmt.Fprintf(&sb, "Fen: %s\n", b.ToFEN())
	fmt.Fprintf(&sb, "Key: %016x\n", b.Zobrist())
	side := "white"
	if b.SideToMove() == chess.Black {
		side = "black"
	}
	fmt.Fprintf(&sb, "Side to move: %s\n", side)
	fmt.Fprintf(&sb, "Castling: %s\n", castlingString(b.CastlingRights()))
	ep := "-"
	if b.EnPassantSquare() != chess.NoSquare {
		ep = b.EnPassantSquare().String()
	}
	fmt.Fprintf(&sb, "En passant: %s\n", ep)
	fmt.Fprintf(&sb, "Halfmove clock: %d\n", b.HalfmoveClock())
	return sb.String()
}

func castlingString(cr chess.CastlingRights) string {
	s := ""
	if cr&chess.CastlingWhiteK != 0 {
		s += "K"
	}
	if cr&chess.CastlingWhiteQ != 0 {
		s += "Q"
	}
	if cr&chess.CastlingBlackK != 0 {
		s += "k"
	}
	if cr&chess.CastlingBlackQ != 0 {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// CrossCheckLegalMoveCount loads fen into dragontoothmg independently and
// returns its depth-1 legal move count, used by internal/chess's perft
// cross-check test as an oracle outside our own move generator.
func CrossCheckLegalMoveCount(fen string) int {
	board := dragontoothmg.ParseFen(fen)
	return len(board.GenerateLegalMoves())
}
