package chess

import (
	"math/bits"
	"math/rand"
)

// Magic bitboards (spec §4.2): for each square and each of {rook, bishop},
// an occupancy mask, a magic multiplier, and a shift. Attacks from square s
// given blockers B are looked up by ((B & mask[s]) * magic[s]) >> shift[s]
// indexing into a precomputed per-square attack table.
//
// The teacher (goosemg/movegen.go) builds the same occupancy masks and the
// same per-square attack tables by enumerating every subset of the mask,
// but indexes them with a software PEXT rather than a multiply+shift. Here
// we keep the teacher's mask/ray/subset-enumeration machinery but index
// with the textbook magic-multiplier formula the spec names explicitly.
// Rather than hand-transcribing 128 magic constants from memory, the
// magics are found at startup by the standard trial-and-error search
// (candidate = sparse random, verify no colliding attack sets across every
// occupancy subset), seeded deterministically so the tables — and every
// Zobrist/perft-dependent test built on top of them — are reproducible
// build-to-build, the same reproducibility goal the teacher's zobrist.go
// states for its own fixed-seed table.

var (
	rookMask   [64]uint64
	bishopMask [64]uint64

	rookMagic   [64]uint64
	bishopMagic [64]uint64

	rookShift   [64]uint
	bishopShift [64]uint

	rookAttackTable   [64][]uint64
	bishopAttackTable [64][]uint64
)

const magicSeed = 0x5151C0DE

func initMagics() {
	buildOccupancyMasks()
	rnd := rand.New(rand.NewSource(magicSeed))
	for sq := 0; sq < 64; sq++ {
		rookMagic[sq], rookShift[sq], rookAttackTable[sq] = findMagic(sq, rookMask[sq], false, rnd)
		bishopMagic[sq], bishopShift[sq], bishopAttackTable[sq] = findMagic(sq, bishopMask[sq], true, rnd)
	}
}

func buildOccupancyMasks() {
	for sq := 0; sq < 64; sq++ {
		rank, file := sq/8, sq%8
		var rm uint64
		for r := rank + 1; r < 7; r++ {
			rm |= 1 << uint(r*8+file)
		}
		for r := rank - 1; r > 0; r-- {
			rm |= 1 << uint(r*8+file)
		}
		for f := file + 1; f < 7; f++ {
			rm |= 1 << uint(rank*8+f)
		}
		for f := file - 1; f > 0; f-- {
			rm |= 1 << uint(rank*8+f)
		}
		rookMask[sq] = rm

		var bm uint64
		for r, f := rank+1, file+1; r < 7 && f < 7; r, f = r+1, f+1 {
			bm |= 1 << uint(r*8+f)
		}
		for r, f := rank+1, file-1; r < 7 && f > 0; r, f = r+1, f-1 {
			bm |= 1 << uint(r*8+f)
		}
		for r, f := rank-1, file+1; r > 0 && f < 7; r, f = r-1, f+1 {
			bm |= 1 << uint(r*8+f)
		}
		for r, f := rank-1, file-1; r > 0 && f > 0; r, f = r-1, f-1 {
			bm |= 1 << uint(r*8+f)
		}
		bishopMask[sq] = bm
	}
}

// rookAttacksOnTheFly and bishopAttacksOnTheFly compute the ray-stopped
// attack set for an arbitrary blocker set, used only to populate the magic
// tables at startup (never on the hot path).
func rookAttacksOnTheFly(sq int, occ uint64) uint64 {
	var attacks uint64
	for _, dir := range [4]int{dirN, dirS, dirE, dirW} {
		attacks |= raySlidTo(sq, dir, occ)
	}
	return attacks
}

func bishopAttacksOnTheFly(sq int, occ uint64) uint64 {
	var attacks uint64
	for _, dir := range [4]int{dirNE, dirNW, dirSE, dirSW} {
		attacks |= raySlidTo(sq, dir, occ)
	}
	return attacks
}

var increasingDir = [8]bool{dirN: true, dirE: true, dirNE: true, dirNW: true}

func raySlidTo(sq, dir int, occ uint64) uint64 {
	ray := rayAttacks[sq][dir]
	blockers := ray & occ
	if blockers == 0 {
		return ray
	}
	var blocker int
	if increasingDir[dir] {
		blocker = bits.TrailingZeros64(blockers)
	} else {
		blocker = 63 - bits.LeadingZeros64(blockers)
	}
	return ray &^ rayAttacks[blocker][dir]
}

// pdep deposits the low bits of x into the set-bit positions of mask
// (software PDEP, matching the teacher's goosemg/movegen.go technique used
// here purely to enumerate occupancy subsets, not to index attacks).
func pdep(x, mask uint64) uint64 {
	var res uint64
	var idx uint
	for m := mask; m != 0; m &= m - 1 {
		bit := uint(bits.TrailingZeros64(m & -m))
		if (x>>idx)&1 != 0 {
			res |= 1 << bit
		}
		idx++
	}
	return res
}

func findMagic(sq int, mask uint64, isBishop bool, rnd *rand.Rand) (magic uint64, shift uint, table []uint64) {
	bitCount := bits.OnesCount64(mask)
	size := 1 << bitCount
	shift = uint(64 - bitCount)

	occupancies := make([]uint64, size)
	reference := make([]uint64, size)
	for i := 0; i < size; i++ {
		occ := pdep(uint64(i), mask)
		occupancies[i] = occ
		if isBishop {
			reference[i] = bishopAttacksOnTheFly(sq, occ)
		} else {
			reference[i] = rookAttacksOnTheFly(sq, occ)
		}
	}

	table = make([]uint64, size)
	used := make([]bool, size)
	for {
		candidate := sparseRandomUint64(rnd)
		if bits.OnesCount64((mask*candidate)>>56) < 6 {
			continue
		}
		for i := range used {
			used[i] = false
		}
		ok := true
		for i := 0; i < size && ok; i++ {
			idx := (occupancies[i] * candidate) >> shift
			if !used[idx] {
				used[idx] = true
				table[idx] = reference[i]
			} else if table[idx] != reference[i] {
				ok = false
			}
		}
		if ok {
			return candidate, shift, table
		}
	}
}

func sparseRandomUint64(rnd *rand.Rand) uint64 {
	return rnd.Uint64() & rnd.Uint64() & rnd.Uint64()
}

// RookAttacks returns the rook attack bitboard from sq given blocker set occ.
func RookAttacks(sq Square, occ uint64) uint64 {
	idx := ((occ & rookMask[sq]) * rookMagic[sq]) >> rookShift[sq]
	return rookAttackTable[sq][idx]
}

// BishopAttacks returns the bishop attack bitboard from sq given blocker set occ.
func BishopAttacks(sq Square, occ uint64) uint64 {
	idx := ((occ & bishopMask[sq]) * bishopMagic[sq]) >> bishopShift[sq]
	return bishopAttackTable[sq][idx]
}

// QueenAttacks is the union of rook and bishop attacks on the same blockers.
func QueenAttacks(sq Square, occ uint64) uint64 {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}
