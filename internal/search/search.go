package search

import "github.com/oliverans/chessengine/internal/chess"

// maxExtensionPly caps the total check/pawn-push extensions applied along
// any one path from the root (spec §4.9: "extensions... capped at 16").
const maxExtensionPly = 16

// qsearchMoveCap bounds the quiescence move buffer (spec §9's stack
// allocation budget: "128 quiescence" versus "218 interior").
const qsearchMoveCap = 128

// Searcher holds everything one alpha-beta search needs beyond the board
// itself: the shared transposition table, the search-local repetition
// window, killer/history ordering state, per-ply move buffers, and the
// triangular PV table. One Searcher is reused across iterative-deepening
// iterations and across searches (NewIteration resets per-search state).
//
// Grounded on GooseEngine's engine/search.go alpha-beta, restructured to
// the spec's literal ten-step node algorithm: the teacher's reverse
// futility pruning, null-move pruning, singular extensions, internal
// iterative deepening/reduction, late-move pruning, and full static-
// exchange evaluation are all dropped (see DESIGN.md) since none of them
// are named by that algorithm and carrying them forward would silently
// change its documented behavior.
type Searcher struct {
	TT         *Table
	Repetition *RepetitionTable
	Killers    killerTable
	History    historyTable

	Cancel func() bool // returns true once the search must stop; nil means never.

	Nodes    uint64
	SelDepth int

	moveBuf [maxPly][]chess.Move
	qBuf    [maxPly][]chess.Move

	pvTable  [maxPly][maxPly]chess.Move
	pvLength [maxPly]int
}

// NewSearcher allocates a Searcher with its per-ply move buffers preallocated.
func NewSearcher() *Searcher {
	s := &Searcher{}
	for i := range s.moveBuf {
		s.moveBuf[i] = make([]chess.Move, 0, chess.MaxMoves)
	}
	for i := range s.qBuf {
		s.qBuf[i] = make([]chess.Move, 0, qsearchMoveCap)
	}
	return s
}

// NewIteration resets per-search node/PV state and the history table, but
// deliberately leaves killers untouched (spec §9's Open Question, preserved
// verbatim: "history is cleared but killers are kept" across a fresh search).
func (s *Searcher) NewIteration(tt *Table, rep *RepetitionTable) {
	s.TT = tt
	s.Repetition = rep
	s.History.Clear()
	s.Nodes = 0
	s.SelDepth = 0
}

// PV returns the principal variation found by the most recent search from
// the root.
func (s *Searcher) PV() []chess.Move {
	return append([]chess.Move(nil), s.pvTable[0][:s.pvLength[0]]...)
}

func (s *Searcher) canceled() bool {
	return s.Cancel != nil && s.Cancel()
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// Search runs a fixed-depth alpha-beta search from the root within the
// caller's (alpha, beta) window, recording the PV and returning the score. Callers building
// iterative deepening on top supply successively larger depth values and
// may narrow alpha/beta themselves for aspiration windows.
func (s *Searcher) Search(b *chess.Board, depth int, alpha, beta int32) int32 {
	return s.alphaBeta(b, depth, 0, alpha, beta, 0)
}

// alphaBeta implements spec §4.9's node algorithm: cancellation check, draw
// detection and mate-distance pruning (ply > 0), transposition probe,
// quiescence handoff at depth 0, move generation with stalemate/checkmate
// handling, repetition-window maintenance, per-move extension/LMR/make/
// unmake, and cutoff/alpha-improvement bookkeeping with a final TT store.
func (s *Searcher) alphaBeta(b *chess.Board, depth, ply int, alpha, beta int32, extTotal int) int32 {
	s.pvLength[ply] = ply
	if s.canceled() {
		return 0
	}
	if ply >= maxPly-1 {
		return Evaluate(b)
	}
	s.Nodes++
	if ply > s.SelDepth {
		s.SelDepth = ply
	}

	if ply > 0 {
		if b.HalfmoveClock() >= 100 || s.Repetition.Contains(b.Zobrist()) {
			return Draw
		}
		alpha = max32(alpha, -Mate+int32(ply))
		beta = min32(beta, Mate-int32(ply))
		if alpha >= beta {
			return alpha
		}
	}

	if depth <= 0 {
		return s.quiescence(b, ply, alpha, beta)
	}

	origAlpha := alpha
	var hashMove chess.Move
	if s.TT != nil {
		if mv, score, usable, ok := s.TT.Probe(b.Zobrist(), depth, ply, alpha, beta); ok {
			hashMove = chess.Move(mv)
			if usable {
				return score
			}
		}
	}

	moves := s.moveBuf[ply][:0]
	moves = b.GenerateMoves(moves, chess.GenAll)
	if len(moves) == 0 {
		if b.IsInCheck(b.SideToMove()) {
			return -Mate + int32(ply)
		}
		return Draw
	}

	Sort(b, moves, hashMove, &s.Killers, &s.History, ply)

	us := b.SideToMove()
	var bestMove chess.Move
	bestScore := -Mate - 1

	for i, m := range moves {
		isCapture := isCaptureMove(b, m)
		givesCheck := b.GivesCheck(m)
		movedType := b.PieceAt(m.Start()).Type()

		ext := 0
		if extTotal < maxExtensionPly {
			if givesCheck {
				ext = 1
			} else if movedType == chess.PieceTypePawn && isPawnNearPromotion(b.SideToMove(), m) {
				ext = 1
			}
		}
		childExtTotal := extTotal + ext

		st := b.MakeSearchMove(m)
		reset := isCapture || movedType == chess.PieceTypePawn
		s.Repetition.Push(b.Zobrist(), reset)

		var score int32
		newDepth := depth - 1 + ext
		if i >= 3 && !isCapture && ext == 0 && depth >= 3 && !givesCheck {
			score = -s.alphaBeta(b, newDepth-1, ply+1, -alpha-1, -alpha, childExtTotal)
			if score > alpha {
				score = -s.alphaBeta(b, newDepth, ply+1, -beta, -alpha, childExtTotal)
			}
		} else {
			score = -s.alphaBeta(b, newDepth, ply+1, -beta, -alpha, childExtTotal)
		}

		s.Repetition.TryPop()
		b.UnmakeSearchMove(m, st)

		if s.canceled() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				s.pvTable[ply][ply] = m
				copy(s.pvTable[ply][ply+1:], s.pvTable[ply+1][ply+1:s.pvLength[ply+1]])
				s.pvLength[ply] = s.pvLength[ply+1]
				if s.pvLength[ply] > maxPly {
					s.pvLength[ply] = maxPly
				}
			}
		}

		if alpha >= beta {
			if !isCapture {
				s.Killers.Add(ply, m)
				s.History.Add(us, m, depth)
			}
			break
		}
	}

	bound := BoundExact
	switch {
	case bestScore >= beta:
		bound = BoundLower
	case bestScore <= origAlpha:
		bound = BoundUpper
	}
	if s.TT != nil {
		s.TT.Store(b.Zobrist(), depth, ply, uint16(bestMove), bestScore, bound)
	}
	return bestScore
}

// quiescence extends the search along captures and queen/knight promotions
// only, with a stand-pat floor and no transposition probing, extensions, or
// reductions (spec §4.9).
func (s *Searcher) quiescence(b *chess.Board, ply int, alpha, beta int32) int32 {
	if s.canceled() {
		return 0
	}
	if ply >= maxPly-1 {
		return Evaluate(b)
	}
	s.Nodes++
	if ply > s.SelDepth {
		s.SelDepth = ply
	}

	standPat := Evaluate(b)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	all := s.qBuf[ply][:0]
	all = b.GenerateMoves(all, chess.GenAll)

	moves := all[:0]
	for _, m := range all {
		if isCaptureMove(b, m) || m.Flag() == chess.FlagPromoteToQueen || m.Flag() == chess.FlagPromoteToKnight {
			moves = append(moves, m)
		}
	}

	Sort(b, moves, 0, &s.Killers, &s.History, ply)

	for _, m := range moves {
		st := b.MakeSearchMove(m)
		score := -s.quiescence(b, ply+1, -beta, -alpha)
		b.UnmakeSearchMove(m, st)

		if s.canceled() {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// isCaptureMove reports whether m removes an enemy piece, including en
// passant (whose target square is empty; the captured pawn sits elsewhere).
func isCaptureMove(b *chess.Board, m chess.Move) bool {
	return !b.PieceAt(m.Target()).IsNone() || m.Flag() == chess.FlagEnPassantCapture
}

// isPawnNearPromotion reports whether a pawn move lands one step from
// promoting: rank 7 for White, rank 2 for Black (spec §4.9's extension
// trigger "pawn-to-2nd/7th-rank").
func isPawnNearPromotion(us chess.Color, m chess.Move) bool {
	r := m.Target().Rank()
	if us == chess.White {
		return r == 6
	}
	return r == 1
}
