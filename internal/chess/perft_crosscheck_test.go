package chess_test

import (
	"testing"

	"github.com/oliverans/chessengine/internal/chess"
	"github.com/oliverans/chessengine/internal/diagram"
	"github.com/stretchr/testify/require"
)

// A handful of standard perft positions (SPEC_FULL.md §2's domain-stack
// wiring: dragontoothmg as an independent oracle, not the production move
// generator). For each, this asserts our depth-1 legal move count matches
// dragontoothmg's, an oracle the teacher itself leaned on for the same
// purpose (goosemg/compat.go exists purely to interoperate with it).
func TestLegalMoveCountMatchesDragontoothmgOracle(t *testing.T) {
	positions := []string{
		chess.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	}

	b := chess.NewEmptyBoard()
	for _, fen := range positions {
		require.NoError(t, b.LoadFEN(fen))
		buf := make([]chess.Move, 0, chess.MaxMoves)
		ours := len(b.GenerateMoves(buf, chess.GenAll))
		theirs := diagram.CrossCheckLegalMoveCount(fen)
		require.Equal(t, theirs, ours, "legal move count mismatch for %s", fen)
	}
}
