package chess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K2R w K - 3 20",
	}
	for _, fen := range fens {
		b := NewEmptyBoard()
		require.NoError(t, b.LoadFEN(fen))
		require.Equal(t, fen, b.ToFEN(), "round trip for %q", fen)
	}
}

func TestZobristMatchesFromScratchAfterLoad(t *testing.T) {
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN(StartFEN))
	require.Equal(t, b.ComputeZobristFromScratch(), b.Zobrist())
}

func TestZobristIncrementalMatchesFromScratchThroughGame(t *testing.T) {
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN(StartFEN))

	uciMoves := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6"}
	for _, s := range uciMoves {
		m, ok := b.ParseUCIMove(s)
		require.True(t, ok, "parse %s", s)
		b.MakeMove(m)
		require.Equal(t, b.ComputeZobristFromScratch(), b.Zobrist(), "after %s", s)
		require.True(t, b.Validate())
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"))

	before := b.ToFEN()
	beforeZobrist := b.Zobrist()

	buf := make([]Move, 0, MaxMoves)
	moves := b.GenerateMoves(buf, GenAll)
	require.NotEmpty(t, moves)

	for _, m := range moves {
		st := b.MakeMove(m)
		require.True(t, b.Validate(), "invalid board after %s", m)
		b.UnmakeMove(m, st)
		require.Equal(t, before, b.ToFEN(), "FEN mismatch after make/unmake %s", m)
		require.Equal(t, beforeZobrist, b.Zobrist(), "zobrist mismatch after make/unmake %s", m)
	}
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"))

	m, ok := b.ParseUCIMove("a1a8")
	require.True(t, ok)
	b.MakeMove(m)
	require.Equal(t, CastlingBlackK, b.CastlingRights()&CastlingBlackK)
	require.Zero(t, b.CastlingRights()&CastlingBlackQ, "capturing a8 rook must clear black's queenside right")
}

func TestEnPassantSquareTracking(t *testing.T) {
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN(StartFEN))

	m, ok := b.ParseUCIMove("e2e4")
	require.True(t, ok)
	require.Equal(t, FlagPawnTwoUp, m.Flag())
	b.MakeMove(m)

	ep, ok := ParseSquare("e3")
	require.True(t, ok)
	require.Equal(t, ep, b.EnPassantSquare())
}
