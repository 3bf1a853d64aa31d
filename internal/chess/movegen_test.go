package chess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func moveStrings(moves []Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

func TestDoubleCheckOnlyAllowsKingMoves(t *testing.T) {
	// White king on e1 double-checked by a rook on e8 and a knight on d3.
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN("k3r3/8/8/8/8/3n4/8/4K3 w - - 0 1"))
	require.True(t, b.IsInCheck(White))

	buf := make([]Move, 0, MaxMoves)
	moves := b.GenerateMoves(buf, GenAll)
	for _, m := range moves {
		require.Equal(t, Square(4), m.Start(), "only the king (e1) may move under double check, got %s", m)
	}
}

func TestPinnedBishopCannotLeaveLine(t *testing.T) {
	// White king e1, white bishop d2 pinned by black bishop on a5 along the
	// a5-e1 diagonal; the pinned bishop may only move along that diagonal.
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN("4k3/8/8/b7/8/8/3B4/4K3 w - - 0 1"))

	buf := make([]Move, 0, MaxMoves)
	moves := b.GenerateMoves(buf, GenAll)
	d2, _ := ParseSquare("d2")
	for _, m := range moves {
		if m.Start() != d2 {
			continue
		}
		onDiagonal := alignMask[e1][d2]&(1<<uint(m.Target())) != 0
		require.True(t, onDiagonal, "pinned bishop moved off the pin line: %s", m)
	}
}

func TestEnPassantPinnedRankIsIllegal(t *testing.T) {
	// Classic discovered-check-through-en-passant position: white king h5,
	// white pawn e5 can capture the f5 pawn en passant, black rook a5 would
	// then see through the cleared rank to the king.
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN("k7/8/8/r3Pp1K/8/8/8/8 w - f6 0 1"))

	buf := make([]Move, 0, MaxMoves)
	moves := b.GenerateMoves(buf, GenAll)
	for _, m := range moves {
		require.NotEqual(t, FlagEnPassantCapture, m.Flag(), "en passant must be illegal: exposes king on rank 5")
	}
}

func TestCastlingBlockedByAttackedTransitSquare(t *testing.T) {
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN("4kr2/8/8/8/8/8/8/4K2R w K - 0 1"))

	buf := make([]Move, 0, MaxMoves)
	moves := b.GenerateMoves(buf, GenAll)
	for _, m := range moves {
		require.NotEqual(t, FlagCastle, m.Flag(), "black rook on f8 attacks f1, kingside castling must be excluded")
	}
}

func TestStalemateHasNoLegalMoves(t *testing.T) {
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN("k7/8/1Q6/8/8/8/8/7K b - - 0 1"))
	require.False(t, b.IsInCheck(Black))
	require.False(t, b.HasLegalMoves())
}

func TestCheckmateHasNoLegalMoves(t *testing.T) {
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"))
	require.True(t, b.IsInCheck(White))
	require.False(t, b.HasLegalMoves())
}
