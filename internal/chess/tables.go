package chess

import "math/bits"

// Precomputed, startup-built attack and geometry tables (spec §4.1). Built
// once via package init, the same one-shot-table idiom the teacher uses for
// knight/king/pawn attacks (goosemg/movegen.go initAttackTables).

var (
	knightAttacks [64]uint64
	kingAttacks   [64]uint64
	pawnAttacks   [2][64]uint64 // pawnAttacks[color][sq]

	// rayAttacks[sq][dir] is the set of squares along one of the eight
	// compass rays from sq, excluding sq itself, to the board edge.
	rayAttacks [64][8]uint64

	// alignMask[a][b] is the set of all squares on the infinite line through
	// a and b (including a and b), or zero if a and b do not share a rank,
	// file, or diagonal.
	alignMask [64][64]uint64

	// betweenMask[a][b] is the squares strictly between a and b along a
	// shared rank/file/diagonal, or zero otherwise.
	betweenMask [64][64]uint64

	chebyshevDistance [64][64]int
	manhattanDistance [64][64]int

	// centerManhattanDistance[sq] is the Manhattan distance from sq to the
	// nearest of the four center squares, used by mop-up evaluation.
	centerManhattanDistance [64]int
)

// Ray directions, matching the teacher's rook/bishop direction numbering
// extended to all eight compass points.
const (
	dirN = iota
	dirS
	dirE
	dirW
	dirNE
	dirNW
	dirSE
	dirSW
)

var rayStep = [8][2]int{
	dirN:  {1, 0},
	dirS:  {-1, 0},
	dirE:  {0, 1},
	dirW:  {0, -1},
	dirNE: {1, 1},
	dirNW: {1, -1},
	dirSE: {-1, 1},
	dirSW: {-1, -1},
}

// ChebyshevDistance returns the king-move (Chebyshev) distance between two
// squares, used by mop-up evaluation (spec §4.5) to drive the weaker king
// toward the stronger one.
func ChebyshevDistance(a, b Square) int {
	return chebyshevDistance[a][b]
}

// CenterManhattanDistance returns the Manhattan distance from sq to the
// nearest of the four center squares, used by mop-up evaluation (spec §4.5)
// to drive the weaker king away from the center, toward the board edge.
func CenterManhattanDistance(sq Square) int {
	return centerManhattanDistance[sq]
}

func init() {
	initLeaperAttacks()
	initRays()
	initDistances()
	initMagics()
}

func initLeaperAttacks() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		rank, file := sq/8, sq%8
		var nb, kb uint64
		for _, off := range knightOffsets {
			if rf, ff := rank+off[0], file+off[1]; rf >= 0 && rf < 8 && ff >= 0 && ff < 8 {
				nb |= 1 << uint(rf*8+ff)
			}
		}
		for _, off := range kingOffsets {
			if rf, ff := rank+off[0], file+off[1]; rf >= 0 && rf < 8 && ff >= 0 && ff < 8 {
				kb |= 1 << uint(rf*8+ff)
			}
		}
		knightAttacks[sq] = nb
		kingAttacks[sq] = kb

		if rank < 7 {
			if file > 0 {
				pawnAttacks[White][sq] |= 1 << uint((rank+1)*8+file-1)
			}
			if file < 7 {
				pawnAttacks[White][sq] |= 1 << uint((rank+1)*8+file+1)
			}
		}
		if rank > 0 {
			if file > 0 {
				pawnAttacks[Black][sq] |= 1 << uint((rank-1)*8+file-1)
			}
			if file < 7 {
				pawnAttacks[Black][sq] |= 1 << uint((rank-1)*8+file+1)
			}
		}
	}
}

func initRays() {
	for sq := 0; sq < 64; sq++ {
		rank, file := sq/8, sq%8
		for dir, step := range rayStep {
			var ray uint64
			r, f := rank+step[0], file+step[1]
			for r >= 0 && r < 8 && f >= 0 && f < 8 {
				ray |= 1 << uint(r*8+f)
				r += step[0]
				f += step[1]
			}
			rayAttacks[sq][dir] = ray
		}
	}
	opposite := [8]int{dirS, dirN, dirW, dirE, dirSW, dirSE, dirNW, dirNE}
	for a := 0; a < 64; a++ {
		for dir := range rayStep {
			ray := rayAttacks[a][dir]
			for ray != 0 {
				b := bits.TrailingZeros64(ray)
				ray &= ray - 1
				alignMask[a][b] |= rayAttacks[a][dir] | rayAttacks[a][opposite[dir]] | 1<<uint(a)
				// Squares strictly between a and b: the ray from a up to
				// (not including) b.
				between := rayAttacks[a][dir] &^ rayAttacks[b][dir] &^ (1 << uint(b))
				betweenMask[a][b] = between
			}
		}
	}
}

func initDistances() {
	for a := 0; a < 64; a++ {
		ra, fa := a/8, a%8
		for b := 0; b < 64; b++ {
			rb, fb := b/8, b%8
			dr, df := abs(ra-rb), abs(fa-fb)
			if dr > df {
				chebyshevDistance[a][b] = dr
			} else {
				chebyshevDistance[a][b] = df
			}
			manhattanDistance[a][b] = dr + df
		}
	}
	centers := [4]int{27, 28, 35, 36} // d4, e4, d5, e5
	for sq := 0; sq < 64; sq++ {
		best := 64
		for _, c := range centers {
			if d := manhattanDistance[sq][c]; d < best {
				best = d
			}
		}
		centerManhattanDistance[sq] = best
	}
}
