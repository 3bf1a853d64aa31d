package search

import (
	"math/bits"

	"github.com/oliverans/chessengine/internal/chess"
)

// Game-phase weights for the tapered midgame/endgame blend (spec §4.5:
// "interpolated by endgame transition T"). Grounded on GooseEngine's
// engine/evaluation.go GetPiecePhase/TotalPhase scheme, simplified to the
// non-pawn-material phase count the spec describes.
const (
	knightPhaseWeight = 1
	bishopPhaseWeight = 1
	rookPhaseWeight   = 2
	queenPhaseWeight  = 4
	totalPhase        = knightPhaseWeight*4 + bishopPhaseWeight*4 + rookPhaseWeight*4 + queenPhaseWeight*2
)

// Pawn-structure and king-safety weights (spec §4.5).
const (
	isolatedPawnPenaltyMG   = 12
	isolatedPawnPenaltyEG   = 16
	kingShieldPenaltyUnit   = 9
	kingOpenFilePenalty     = 22
	kingSemiOpenFilePenalty = 11
	mopUpDistanceWeight     = 6
	mopUpCenterWeight       = 4
	mopUpMinAdvantage       = 200 // centipawns; roughly two pawns ahead
)

var fileMask = [8]uint64{
	0x0101010101010101, 0x0202020202020202, 0x0404040404040404, 0x0808080808080808,
	0x1010101010101010, 0x2020202020202020, 0x4040404040404040, 0x8080808080808080,
}

// adjacentFileMask[f] unions the files directly beside f, excluding f itself.
var adjacentFileMask = func() [8]uint64 {
	var m [8]uint64
	for f := 0; f < 8; f++ {
		if f > 0 {
			m[f] |= fileMask[f-1]
		}
		if f < 7 {
			m[f] |= fileMask[f+1]
		}
	}
	return m
}()

// aboveRank(r) is every square on a rank strictly greater than r (toward
// White's promotion rank); belowRank(r) is the mirror for Black.
func aboveRank(r int) uint64 {
	if r >= 7 {
		return 0
	}
	return ^uint64(0) << uint((r+1)*8)
}

func belowRank(r int) uint64 {
	if r <= 0 {
		return 0
	}
	return (uint64(1) << uint(r*8)) - 1
}

// Evaluate returns the static score of the position from the side-to-move's
// perspective, in centipawns (spec §4.5): material, tapered piece-square
// tables, passed/isolated pawn terms, king pawn-shield and open-file-toward-
// king penalties, and a mop-up term that rewards cornering the enemy king
// once one side is comfortably ahead in the endgame.
func Evaluate(b *chess.Board) int32 {
	phase := 0
	phase += bits.OnesCount64(b.PieceBB(chess.White, chess.PieceTypeKnight)|b.PieceBB(chess.Black, chess.PieceTypeKnight)) * knightPhaseWeight
	phase += bits.OnesCount64(b.PieceBB(chess.White, chess.PieceTypeBishop)|b.PieceBB(chess.Black, chess.PieceTypeBishop)) * bishopPhaseWeight
	phase += bits.OnesCount64(b.PieceBB(chess.White, chess.PieceTypeRook)|b.PieceBB(chess.Black, chess.PieceTypeRook)) * rookPhaseWeight
	phase += bits.OnesCount64(b.PieceBB(chess.White, chess.PieceTypeQueen)|b.PieceBB(chess.Black, chess.PieceTypeQueen)) * queenPhaseWeight
	if phase > totalPhase {
		phase = totalPhase
	}
	egWeight := totalPhase - phase

	var mg, eg int
	for c := chess.White; c <= chess.Black; c++ {
		sign := 1
		if c == chess.Black {
			sign = -1
		}
		for pt := chess.PieceTypePawn; pt <= chess.PieceTypeKing; pt++ {
			bb := b.PieceBB(c, pt)
			for bb != 0 {
				sq := chess.Square(bits.TrailingZeros64(bb))
				bb &= bb - 1
				mg += sign * (chess.PieceValue[pt] + pstValue(&pstMG, pt, c, sq))
				eg += sign * (chess.PieceValue[pt] + pstValue(&pstEG, pt, c, sq))
			}
		}
	}

	pmg, peg := evaluatePawnStructure(b)
	mg += pmg
	eg += peg

	mg += evaluateKingSafety(b)

	score := (mg*phase + eg*egWeight) / totalPhase
	score += evaluateMopUp(b, phase)

	if b.SideToMove() == chess.Black {
		score = -score
	}
	return int32(score)
}

// evaluatePawnStructure scores passed and isolated pawns for both sides,
// returning the White-minus-Black contribution for midgame and endgame.
func evaluatePawnStructure(b *chess.Board) (mg, eg int) {
	whitePawns := b.PieceBB(chess.White, chess.PieceTypePawn)
	blackPawns := b.PieceBB(chess.Black, chess.PieceTypePawn)

	for bb := whitePawns; bb != 0; bb &= bb - 1 {
		sq := chess.Square(bits.TrailingZeros64(bb))
		f, r := sq.File(), sq.Rank()
		span := (fileMask[f] | adjacentFileMask[f]) & aboveRank(r)
		if span&blackPawns == 0 {
			mg += passedPawnBonus(&passedPawnMG, chess.White, sq)
			eg += passedPawnBonus(&passedPawnEG, chess.White, sq)
		}
		if adjacentFileMask[f]&whitePawns == 0 {
			mg -= isolatedPawnPenaltyMG
			eg -= isolatedPawnPenaltyEG
		}
	}
	for bb := blackPawns; bb != 0; bb &= bb - 1 {
		sq := chess.Square(bits.TrailingZeros64(bb))
		f, r := sq.File(), sq.Rank()
		span := (fileMask[f] | adjacentFileMask[f]) & belowRank(r)
		if span&whitePawns == 0 {
			mg -= passedPawnBonus(&passedPawnMG, chess.Black, sq)
			eg -= passedPawnBonus(&passedPawnEG, chess.Black, sq)
		}
		if adjacentFileMask[f]&blackPawns == 0 {
			mg += isolatedPawnPenaltyMG
			eg += isolatedPawnPenaltyEG
		}
	}
	return mg, eg
}

// evaluateKingSafety scores the pawn shield on each king's file and the
// adjacent files (squared penalty per shield file holding no own pawn,
// wherever on the file that pawn stands) and open/semi-open files
// running at the king when the enemy still has a rook or queen to exploit
// them. Midgame-only: king safety fades in importance once major pieces are
// traded off, which the tapered blend already expresses via mg/eg weighting.
func evaluateKingSafety(b *chess.Board) int {
	return kingSafetyFor(b, chess.White) - kingSafetyFor(b, chess.Black)
}

func kingSafetyFor(b *chess.Board, us chess.Color) int {
	them := us.Opponent()
	ksq := b.KingSquare(us)
	f := ksq.File()

	shieldFiles := []int{f}
	if f > 0 {
		shieldFiles = append(shieldFiles, f-1)
	}
	if f < 7 {
		shieldFiles = append(shieldFiles, f+1)
	}

	ourPawns := b.PieceBB(us, chess.PieceTypePawn)
	theirPawns := b.PieceBB(them, chess.PieceTypePawn)
	enemyHasHeavy := b.PieceBB(them, chess.PieceTypeRook) != 0 || b.PieceBB(them, chess.PieceTypeQueen) != 0

	missing := 0
	penalty := 0
	for _, sf := range shieldFiles {
		if fileMask[sf]&ourPawns == 0 {
			missing++
			if enemyHasHeavy {
				if fileMask[sf]&theirPawns == 0 {
					penalty -= kingOpenFilePenalty
				} else {
					penalty -= kingSemiOpenFilePenalty
				}
			}
		}
	}
	penalty -= missing * missing * kingShieldPenaltyUnit
	return penalty
}

// evaluateMopUp rewards driving the losing king toward the board edge and
// the winning king toward the losing king, once one side is ahead by
// roughly two pawns in a near-empty endgame (spec §4.5's "mop-up term").
// It returns zero whenever phase exceeds a quarter of totalPhase, so it
// never fires in the middlegame.
func evaluateMopUp(b *chess.Board, phase int) int {
	if phase > totalPhase/4 {
		return 0
	}
	material := materialOnly(b)
	if material == 0 {
		return 0
	}
	stronger, weaker := chess.White, chess.Black
	if material < 0 {
		stronger, weaker = chess.Black, chess.White
		material = -material
	}
	if material < mopUpMinAdvantage {
		return 0
	}
	weakKing := b.KingSquare(weaker)
	strongKing := b.KingSquare(stronger)

	bonus := mopUpCenterWeight * chess.CenterManhattanDistance(weakKing)
	bonus += mopUpDistanceWeight * (14 - chess.ChebyshevDistance(weakKing, strongKing))

	if stronger == chess.Black {
		bonus = -bonus
	}
	return bonus
}

func materialOnly(b *chess.Board) int {
	total := 0
	for pt := chess.PieceTypePawn; pt <= chess.PieceTypeQueen; pt++ {
		total += bits.OnesCount64(b.PieceBB(chess.White, pt)) * chess.PieceValue[pt]
		total -= bits.OnesCount64(b.PieceBB(chess.Black, pt)) * chess.PieceValue[pt]
	}
	return total
}

