package search

import (
	"testing"

	"github.com/oliverans/chessengine/internal/chess"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, fen string) *chess.Board {
	t.Helper()
	b := chess.NewEmptyBoard()
	require.NoError(t, b.LoadFEN(fen))
	return b
}

func TestEvaluateStartPositionIsRoughlySymmetric(t *testing.T) {
	b := mustLoad(t, chess.StartFEN)
	score := Evaluate(b)
	require.InDelta(t, 0, score, 40, "start position should be close to equal from either side's view")
}

func TestEvaluateFavorsMaterialAdvantage(t *testing.T) {
	b := mustLoad(t, "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	score := Evaluate(b)
	require.Greater(t, score, int32(0), "a lone extra rook must score as a clear advantage")
}

func TestEvaluateSignFlipsWithSideToMove(t *testing.T) {
	white := mustLoad(t, "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	black := mustLoad(t, "4k3/8/8/8/8/8/8/R3K3 b - - 0 1")
	require.Equal(t, Evaluate(white), -Evaluate(black))
}

func TestPassedPawnOutscoresBlockedPawn(t *testing.T) {
	passed := mustLoad(t, "4k3/8/8/8/8/8/P7/4K3 w - - 0 1")
	blocked := mustLoad(t, "4k3/8/8/8/8/p7/P7/4K3 w - - 0 1")
	require.Greater(t, Evaluate(passed), Evaluate(blocked))
}
