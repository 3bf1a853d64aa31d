package book

import (
	"math/rand"
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

func TestLookupFindsStartPositionReplies(t *testing.T) {
	b := mustLoad(t, chess.StartFEN)
	entries := Lookup(b)
	require.Len(t, entries, 4)
	for _, e := range entries {
		require.Equal(t, b.Zobrist(), e.Key)
	}
}

func TestLookupReturnsNilForUnknownPosition(t *testing.T) {
	b := mustLoad(t, "8/8/8/4k3/8/8/4K3/8 w - - 0 1")
	require.Nil(t, Lookup(b))
}

func TestPickAlwaysReturnsAKnownLegalMove(t *testing.T) {
	b := mustLoad(t, chess.StartFEN)
	entries := Lookup(b)
	require.NotEmpty(t, entries)

	rng := rand.New(rand.NewSource(1))
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		m, ok := Pick(b, entries, rng)
		require.True(t, ok)
		seen[m.String()] = true
	}
	require.Contains(t, seen, "e2e4")
}

func TestPickOnEmptyEntriesFails(t *testing.T) {
	b := mustLoad(t, chess.StartFEN)
	_, ok := Pick(b, nil, rand.New(rand.NewSource(1)))
	require.False(t, ok)
}

func TestDistinctOpeningsHashToDistinctBookKeys(t *testing.T) {
	afterE4 := mustLoad(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	afterD4 := mustLoad(t, "rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 1")

	e4Entries := Lookup(afterE4)
	d4Entries := Lookup(afterD4)
	require.NotEmpty(t, e4Entries)
	require.NotEmpty(t, d4Entries)
	require.NotEqual(t, e4Entries[0].Key, d4Entries[0].Key)
}
