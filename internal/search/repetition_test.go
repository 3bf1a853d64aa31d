package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRepetitionTableDetectsRepeatWithinWindow(t *testing.T) {
	rt := NewRepetitionTable(nil)
	rt.Push(1, true)
	rt.Push(2, false)
	rt.Push(1, false) // repeats key 1, which is still in the window
	require.True(t, rt.Contains(1))
}

func TestRepetitionTableResetStartsFreshWindow(t *testing.T) {
	rt := NewRepetitionTable(nil)
	rt.Push(1, true)
	rt.Push(2, false)
	rt.Push(3, true) // irreversible move: key 1/2 fall out of the window
	require.False(t, rt.Contains(1))
	require.False(t, rt.Contains(2))
}

func TestRepetitionTableTryPopIsFloorClamped(t *testing.T) {
	rt := NewRepetitionTable(nil)
	rt.TryPop()
	rt.TryPop()
	require.Equal(t, 0, rt.Len())
	rt.Push(1, true)
	rt.TryPop()
	require.Equal(t, 0, rt.Len())
}

func TestRepetitionTableSeedsFromExistingKeys(t *testing.T) {
	rt := NewRepetitionTable([]uint64{10, 20, 30})
	require.Equal(t, 3, rt.Len())
	rt.Push(10, false)
	require.True(t, rt.Contains(10))
}

func TestRepetitionTableContainsExcludesTopItself(t *testing.T) {
	rt := NewRepetitionTable(nil)
	rt.Push(5, true)
	// The single entry just pushed is the top of the stack; it must never
	// report itself as a repeat.
	require.False(t, rt.Contains(5))
}
