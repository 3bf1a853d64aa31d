package chess

import "math/rand"

// Zobrist hashing tables (spec §3/§4.3), grounded on goosemg/zobrist.go:
// one random 64-bit constant per (piece, square), per castling-rights
// state, per en-passant file, plus one for side to move. Built once with a
// fixed-seed PRNG so hashes are reproducible across runs, matching the
// teacher's stated rationale ("fixed seed for reproducibility in tests").
var (
	zobristPieceSquare [15][64]uint64
	zobristCastling    [16]uint64
	zobristEnPassant   [8]uint64
	zobristSideToMove  uint64
)

func init() {
	rnd := rand.New(rand.NewSource(0xC0DE))
	for p := 0; p < 15; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPieceSquare[p][sq] = rnd.Uint64()
		}
	}
	for cr := 0; cr < 16; cr++ {
		zobristCastling[cr] = rnd.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSideToMove = rnd.Uint64()
}

// ComputeZobristFromScratch recomputes the Zobrist key by walking the board
// from nothing, independent of incremental updates. Used by Validate and by
// the "Zobrist = CalculateZobristFromScratch(board)" property test.
func (b *Board) ComputeZobristFromScratch() uint64 {
	var key uint64
	for sq := 0; sq < 64; sq++ {
		if p := b.pieces[sq]; p != NoPiece {
			key ^= zobristPieceSquare[p][sq]
		}
	}
	if b.sideToMove == Black {
		key ^= zobristSideToMove
	}
	key ^= zobristCastling[b.castlingRights]
	if b.enPassantFile != 0 {
		key ^= zobristEnPassant[b.enPassantFile-1]
	}
	return key
}
