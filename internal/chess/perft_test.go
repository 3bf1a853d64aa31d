package chess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPerftStartingPosition(t *testing.T) {
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN(StartFEN))

	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}
	for _, c := range cases {
		require.Equal(t, c.nodes, b.Perft(c.depth), "depth %d", c.depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"))

	require.Equal(t, uint64(48), b.Perft(1))
	require.Equal(t, uint64(2039), b.Perft(2))
}

func TestPerftPosition3(t *testing.T) {
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"))

	require.Equal(t, uint64(14), b.Perft(1))
	require.Equal(t, uint64(191), b.Perft(2))
	require.Equal(t, uint64(2812), b.Perft(3))
}

func TestPerftPromotionPosition(t *testing.T) {
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN("r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"))

	require.Equal(t, uint64(6), b.Perft(1))
	require.Equal(t, uint64(264), b.Perft(2))
}

func TestPerftDoesNotMutateMoveHistory(t *testing.T) {
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN(StartFEN))
	b.Perft(3)
	require.Empty(t, b.MoveHistory(), "perft must only use MakeSearchMove, never touching persistent history")
}
