package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableStoreProbeRoundTrip(t *testing.T) {
	tt := NewTable(1)
	tt.Store(12345, 6, 2, 0x1234, 77, BoundExact)

	move, score, usable, ok := tt.Probe(12345, 6, 2, -Mate, Mate)
	require.True(t, ok)
	require.True(t, usable)
	require.Equal(t, int32(77), score)
	require.Equal(t, uint16(0x1234), move)
}

func TestTableMissReportsNotOK(t *testing.T) {
	tt := NewTable(1)
	_, _, _, ok := tt.Probe(999, 1, 0, -Mate, Mate)
	require.False(t, ok)
}

func TestMateScoreNormalizationRoundTrips(t *testing.T) {
	// A root-relative mate score found 5 plies into the search must be
	// stored normalized to "from this node" and denormalized back to the
	// same root-relative value on retrieval at the same ply.
	tt := NewTable(1)
	const plyFromRoot = 5
	foundScore := Mate - 3

	tt.Store(555, 4, plyFromRoot, 0, foundScore, BoundExact)
	_, score, usable, ok := tt.Probe(555, 4, plyFromRoot, -Mate, Mate)
	require.True(t, ok)
	require.True(t, usable)
	require.Equal(t, foundScore, score)
}

func TestMateScoreDiffersAcrossPly(t *testing.T) {
	// The same logical mate stored at one ply and probed at a different
	// ply must NOT collide: the raw stored value is node-relative, so
	// denormalizing at the wrong ply changes the apparent distance.
	tt := NewTable(1)
	tt.Store(777, 4, 2, 0, Mate-3, BoundExact)
	_, scoreAtSamePly, _, _ := tt.Probe(777, 4, 2, -Mate, Mate)
	_, scoreAtOtherPly, _, _ := tt.Probe(777, 4, 9, -Mate, Mate)
	require.Equal(t, Mate-3, scoreAtSamePly)
	require.NotEqual(t, scoreAtSamePly, scoreAtOtherPly)
}

func TestShallowerStoredDepthIsUnusable(t *testing.T) {
	tt := NewTable(1)
	tt.Store(1, 2, 0, 0, 10, BoundExact)
	_, _, usable, ok := tt.Probe(1, 5, 0, -Mate, Mate)
	require.True(t, ok) // move is still reported for ordering
	require.False(t, usable)
}

func TestHashfullGrowsAsEntriesFill(t *testing.T) {
	tt := NewTable(1)
	require.Equal(t, 0, tt.HashfullPermille())
	for i := 0; i < len(tt.entries)/10; i++ {
		tt.Store(uint64(i), 1, 0, 0, 0, BoundExact)
	}
	require.Greater(t, tt.HashfullPermille(), 0)
}

func TestResizeClearsTable(t *testing.T) {
	tt := NewTable(1)
	tt.Store(42, 1, 0, 0, 0, BoundExact)
	tt.Resize(2)
	_, _, _, ok := tt.Probe(42, 1, 0, -Mate, Mate)
	require.False(t, ok)
}
