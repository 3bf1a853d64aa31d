package search

import "github.com/oliverans/chessengine/internal/chess"

// Move-ordering priority bands (spec §4.7), highest first: hash move,
// winning captures, promotion, killers, quiet history moves, losing
// captures. Bands are spaced widely enough that no within-band score
// (MVV-LVA delta, history count, PST delta) can cross into the next band.
//
// Grounded on GooseEngine's engine/moveordering.go scoreMovesList, whose
// pvOffset/promotionOffset/captureOffset/killerOffset ladder this
// reproduces with the spec's literal band ordering (promotions above
// killers, a single losing-captures band at the bottom) in place of the
// teacher's counter-move band, which the spec does not describe.
const (
	bandHashMove        = 900_000
	bandWinningCapture  = 700_000
	bandPromotion       = 600_000
	bandKillerPrimary   = 500_000
	bandKillerSecondary = 490_000
	bandQuiet           = 0
	bandLosingCapture   = -700_000
)

// mvvLvaScore orders captures of different victims/attackers within a band:
// value of what is taken first, value of what is risked second.
func mvvLvaScore(victim, attacker chess.PieceType) int {
	return chess.PieceValue[victim]*16 - chess.PieceValue[attacker]
}

// ScoreMove assigns one sortable ordering key to m (spec §4.7). hashMove is
// the transposition-table move for this node, if any; ply indexes the
// killer table; history is keyed by the side making the move.
func ScoreMove(b *chess.Board, m chess.Move, hashMove chess.Move, killers *killerTable, history *historyTable, ply int) int {
	if !hashMove.IsNull() && m == hashMove {
		return bandHashMove
	}

	moved := b.PieceAt(m.Start())
	movedType := moved.Type()
	us := moved.Color()
	them := us.Opponent()

	victimType := b.PieceAt(m.Target()).Type()
	isCapture := victimType != chess.PieceTypeNone
	if m.Flag() == chess.FlagEnPassantCapture {
		victimType = chess.PieceTypePawn
		isCapture = true
	}

	if isCapture {
		score := bandWinningCapture + mvvLvaScore(victimType, movedType)
		if recapturable(b, m, us, them) {
			score = bandLosingCapture + mvvLvaScore(victimType, movedType)
		}
		return score
	}

	// Spec §9's Open Question (preserved verbatim): the promotion bonus
	// applies only to queen promotions that are not captures.
	if m.Flag() == chess.FlagPromoteToQueen {
		return bandPromotion + chess.PieceValue[chess.PieceTypeQueen]
	}

	if slot, ok := killers.IsKiller(ply, m); ok {
		if slot == 0 {
			return bandKillerPrimary
		}
		return bandKillerSecondary
	}

	score := bandQuiet + history.Score(us, m)
	score += pstValue(&pstMG, movedType, us, m.Target()) - pstValue(&pstMG, movedType, us, m.Start())
	if b.IsSquareAttacked(m.Target(), them) {
		if movedType == chess.PieceTypePawn {
			score -= 50
		} else {
			score -= 25
		}
	}
	return score
}

// recapturable reports whether, after m is played, an enemy piece could
// immediately retake on the destination square — a cheap stand-in for full
// static-exchange evaluation (spec §4.7: "reduced one band if recapturable").
func recapturable(b *chess.Board, m chess.Move, us, them chess.Color) bool {
	occ := (b.AllBB() &^ (uint64(1) << uint(m.Start()))) | (uint64(1) << uint(m.Target()))
	return b.IsSquareAttackedWithOcc(m.Target(), them, occ)
}

// Sort orders moves in place from highest score to lowest (insertion sort:
// move lists are short enough — at most MaxMoves — that this beats the
// overhead of sort.Slice, and it matches the teacher's own
// select-best-remaining approach in spirit).
func Sort(b *chess.Board, moves []chess.Move, hashMove chess.Move, killers *killerTable, history *historyTable, ply int) {
	scores := make([]int, len(moves))
	for i, m := range moves {
		scores[i] = ScoreMove(b, m, hashMove, killers, history, ply)
	}
	for i := 1; i < len(moves); i++ {
		m, s := moves[i], scores[i]
		j := i - 1
		for j >= 0 && scores[j] < s {
			moves[j+1] = moves[j]
			scores[j+1] = scores[j]
			j--
		}
		moves[j+1] = m
		scores[j+1] = s
	}
}
