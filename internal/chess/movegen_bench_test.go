package chess

import "testing"

func benchGenerateMoves(b *testing.B, fen string, kind GenKind) {
	board := NewEmptyBoard()
	if err := board.LoadFEN(fen); err != nil {
		b.Fatalf("LoadFEN: %v", err)
	}
	buf := make([]Move, 0, MaxMoves)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = board.GenerateMoves(buf[:0], kind)
	}
}

func BenchmarkGenerateMovesInitial(b *testing.B) {
	benchGenerateMoves(b, StartFEN, GenAll)
}

func BenchmarkGenerateMovesKiwipete(b *testing.B) {
	benchGenerateMoves(b, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", GenAll)
}

func BenchmarkGenerateMovesPos6(b *testing.B) {
	benchGenerateMoves(b, "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10", GenAll)
}

func BenchmarkGenerateCapturesEnPassant(b *testing.B) {
	benchGenerateMoves(b, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", GenCaptures)
}

func BenchmarkGenerateQuietsInitial(b *testing.B) {
	benchGenerateMoves(b, StartFEN, GenQuiets)
}

func BenchmarkMakeUnmakeAllMovesInitial(b *testing.B) {
	board := NewEmptyBoard()
	if err := board.LoadFEN(StartFEN); err != nil {
		b.Fatalf("LoadFEN: %v", err)
	}
	moves := board.GenerateMoves(make([]Move, 0, MaxMoves), GenAll)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			st := board.MakeSearchMove(m)
			board.UnmakeSearchMove(m, st)
		}
	}
}

func benchPerft(b *testing.B, fen string, depth int) {
	board := NewEmptyBoard()
	if err := board.LoadFEN(fen); err != nil {
		b.Fatalf("LoadFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.Perft(depth)
	}
}

func BenchmarkPerftInitialDepth4(b *testing.B) {
	benchPerft(b, StartFEN, 4)
}

func BenchmarkPerftKiwipeteDepth3(b *testing.B) {
	benchPerft(b, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3)
}
