package search

import (
	"testing"

	"github.com/oliverans/chessengine/internal/chess"
	"github.com/stretchr/testify/require"
)

func newSearcherFor(b *chess.Board) (*Searcher, *Table) {
	tt := NewTable(1)
	s := NewSearcher()
	s.NewIteration(tt, NewRepetitionTable(b.RepetitionKeys()))
	return s, tt
}

func TestFindsBackRankMateInOne(t *testing.T) {
	// White rook delivers mate on the back rank: Rd8#.
	b := mustLoad(t, "6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1")
	s, _ := newSearcherFor(b)

	score := s.Search(b, 3, -Mate, Mate)
	require.Greater(t, score, MateBound)
	pv := s.PV()
	require.NotEmpty(t, pv)
	require.Equal(t, "d1d8", pv[0].String())
}

func TestFoolsMateIsFoundForBlack(t *testing.T) {
	// 1.f3 e5 2.g4 -- Qh4# is forced for Black to deliver mate in one.
	b := mustLoad(t, "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2")
	s, _ := newSearcherFor(b)

	score := s.Search(b, 3, -Mate, Mate)
	require.Greater(t, score, MateBound)
	pv := s.PV()
	require.NotEmpty(t, pv)
	require.Equal(t, "d8h4", pv[0].String())
}

func TestStalemateScoresAsDraw(t *testing.T) {
	b := mustLoad(t, "k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	require.False(t, b.HasLegalMoves())
	s, _ := newSearcherFor(b)
	score := s.Search(b, 2, -Mate, Mate)
	require.Equal(t, Draw, score)
}

func TestIterativeDeepeningConvergesOnForcedMate(t *testing.T) {
	b := mustLoad(t, "6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1")
	s, tt := newSearcherFor(b)

	var lastScore int32
	for depth := 1; depth <= 4; depth++ {
		lastScore = s.Search(b, depth, -Mate, Mate)
		s.NewIteration(tt, NewRepetitionTable(b.RepetitionKeys()))
	}
	require.Greater(t, lastScore, MateBound)
}

func TestCancellationReturnsImmediatelyWithoutCorruptingBoard(t *testing.T) {
	b := mustLoad(t, chess.StartFEN)
	s, _ := newSearcherFor(b)
	s.Cancel = func() bool { return true }

	before := b.Zobrist()
	score := s.Search(b, 5, -Mate, Mate)
	require.Equal(t, int32(0), score)
	require.Equal(t, before, b.Zobrist(), "a canceled search must leave the board exactly as it found it")
}

func TestThreefoldRepetitionWindowDetectsReturnToSamePosition(t *testing.T) {
	b := mustLoad(t, chess.StartFEN)
	rt := NewRepetitionTable(b.RepetitionKeys())

	moves := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for i, mv := range moves {
		m, ok := b.ParseUCIMove(mv)
		require.True(t, ok)
		movedType := b.PieceAt(m.Start()).Type()
		wasCapture := !b.PieceAt(m.Target()).IsNone()
		b.MakeMove(m)
		reset := wasCapture || movedType == chess.PieceTypePawn
		rt.Push(b.Zobrist(), reset)
		if i == len(moves)-1 {
			require.True(t, rt.Contains(b.Zobrist()), "returning to the start position must be detected")
		}
	}
}
