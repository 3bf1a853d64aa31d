package chess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoveEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		start, target Square
		flag          MoveFlag
	}{
		{4, 6, FlagCastle},
		{12, 28, FlagPawnTwoUp},
		{52, 61, FlagPromoteToKnight},
		{0, 63, FlagNone},
	}
	for _, c := range cases {
		m := NewMove(c.start, c.target, c.flag)
		require.Equal(t, c.start, m.Start())
		require.Equal(t, c.target, m.Target())
		require.Equal(t, c.flag, m.Flag())
		require.False(t, m.IsNull())
	}
}

func TestNullMoveIsAllZero(t *testing.T) {
	var m Move
	require.True(t, m.IsNull())
	require.Equal(t, Square(0), m.Start())
	require.Equal(t, Square(0), m.Target())
}

func TestPromotionFlagsAreContiguousAndGreatest(t *testing.T) {
	nonPromo := []MoveFlag{FlagNone, FlagEnPassantCapture, FlagCastle, FlagPawnTwoUp}
	promo := []MoveFlag{FlagPromoteToQueen, FlagPromoteToKnight, FlagPromoteToRook, FlagPromoteToBishop}
	for _, f := range nonPromo {
		require.False(t, f.IsPromotion())
	}
	for _, f := range promo {
		require.True(t, f.IsPromotion())
	}
}

func TestUCIMoveStringRoundTrip(t *testing.T) {
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN(StartFEN))

	m, ok := b.ParseUCIMove("e2e4")
	require.True(t, ok)
	require.Equal(t, "e2e4", m.String())

	m2, ok := b.ParseUCIMove("e7e8q")
	require.True(t, ok)
	require.Equal(t, "e7e8q", m2.String())
}

func TestParseUCIMoveInfersCastleFlag(t *testing.T) {
	b := NewEmptyBoard()
	require.NoError(t, b.LoadFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"))

	m, ok := b.ParseUCIMove("e1g1")
	require.True(t, ok)
	require.Equal(t, FlagCastle, m.Flag())
}
