package search

import (
	"testing"

	"github.com/oliverans/chessengine/internal/chess"
	"github.com/stretchr/testify/require"
)

func TestHashMoveSortsFirst(t *testing.T) {
	b := mustLoad(t, chess.StartFEN)
	var killers killerTable
	var history historyTable

	buf := make([]chess.Move, 0, chess.MaxMoves)
	moves := b.GenerateMoves(buf, chess.GenAll)
	require.NotEmpty(t, moves)

	hash := moves[len(moves)-1]
	Sort(b, moves, hash, &killers, &history, 0)
	require.Equal(t, hash, moves[0])
}

func TestWinningCaptureOutranksQuietMove(t *testing.T) {
	// White to move: Rxe5 (winning a pawn) must outrank a quiet king shuffle.
	b := mustLoad(t, "4k3/8/8/4p3/8/8/8/4R1K1 w - - 0 1")
	buf := make([]chess.Move, 0, chess.MaxMoves)
	moves := b.GenerateMoves(buf, chess.GenAll)
	var killers killerTable
	var history historyTable
	Sort(b, moves, 0, &killers, &history, 0)

	first := moves[0]
	require.True(t, !b.PieceAt(first.Target()).IsNone() || first.Flag().IsPromotion(),
		"the highest-scored move in a position with a free capture should be a capture")
}

func TestKillerOutranksPlainQuietMove(t *testing.T) {
	b := mustLoad(t, chess.StartFEN)
	buf := make([]chess.Move, 0, chess.MaxMoves)
	moves := b.GenerateMoves(buf, chess.GenQuiets)
	require.NotEmpty(t, moves)

	var killers killerTable
	var history historyTable
	killerMove := moves[len(moves)-1]
	killers.Add(0, killerMove)

	Sort(b, moves, 0, &killers, &history, 0)
	require.Equal(t, killerMove, moves[0])
}
