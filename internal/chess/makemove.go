package chess

// makeMove applies m to the side to move, following the nine steps of
// spec §4.3. The move generator is trusted to produce only legal moves, so
// unlike the teacher's MakeMove (which re-verifies legality and silently
// self-reverts), this one does no legality check of its own — the contract
// spec.md draws between move generation and make/unmake places that
// responsibility entirely on the generator.
//
// inSearch distinguishes exploratory
// search moves (which must not disturb the board's own persistent
// repetition/game-move history, made and unmade millions of times a second)
// from moves replayed from the host's `position ... moves ...` command: only
// the latter append to MoveHistory/RepetitionKeys. The search's own
// repetition detection is the separate RepetitionTable of spec §4.8, seeded
// from RepetitionKeys at the start of a search and pushed to as the search
// descends.
func (b *Board) makeMove(m Move, inSearch bool) GameState {
	start, target, flag := m.Start(), m.Target(), m.Flag()
	us := b.sideToMove
	them := us.Opponent()

	moved := b.pieces[start]
	var captured Piece
	captureSquare := target
	if flag == FlagEnPassantCapture {
		if us == White {
			captureSquare = target - 8
		} else {
			captureSquare = target + 8
		}
		captured = b.pieces[captureSquare]
	} else {
		captured = b.pieces[target]
	}

	st := GameState{
		CapturedType:  captured.Type(),
		EnPassantFile: b.enPassantFile,
		Castling:      b.castlingRights,
		HalfmoveClock: b.halfmoveClock,
		Zobrist:       b.zobristKey,
	}

	// 2. Toggle the moving piece off start.
	b.removePiece(start)

	// 3. Capture removal happens before the mover lands on target, since a
	// non-en-passant capture sits on the same square the mover is about to
	// occupy.
	if captured != NoPiece {
		b.removePiece(captureSquare)
	}

	// Place the mover (or, for promotions, the promoted piece) on target.
	if flag.IsPromotion() {
		b.placePiece(target, PieceFromType(us, flag.PromotionType()))
	} else {
		b.placePiece(target, moved)
	}

	// 4. King move bookkeeping + castling rook shuffle.
	if moved.Type() == PieceTypeKing {
		b.kingSquare[us] = target
		if us == White {
			b.setCastling(b.castlingRights &^ (CastlingWhiteK | CastlingWhiteQ))
		} else {
			b.setCastling(b.castlingRights &^ (CastlingBlackK | CastlingBlackQ))
		}
		if flag == FlagCastle {
			var rookFrom, rookTo Square
			switch target {
			case g1:
				rookFrom, rookTo = 7, 5
			case c1:
				rookFrom, rookTo = 0, 3
			case g8:
				rookFrom, rookTo = 63, 61
			case c8:
				rookFrom, rookTo = 56, 59
			}
			rook := b.removePiece(rookFrom)
			b.placePiece(rookTo, rook)
		}
	}

	// 5. Promotion already applied above when placing the mover on target.

	// 6. PawnTwoUp sets the new en-passant file.
	newEPFile := 0
	if flag == FlagPawnTwoUp {
		newEPFile = start.File() + 1
	}

	// 7. Castling-rights updates from rook home squares (mover or capture).
	newCR := b.castlingRights
	if moved.Type() == PieceTypeRook {
		newCR = clearRookRight(newCR, start)
	}
	if st.CapturedType == PieceTypeRook {
		newCR = clearRookRight(newCR, captureSquare)
	}
	b.setCastling(newCR)

	// 8. Zobrist en-passant/side-to-move deltas (piece deltas already
	// applied incrementally by place/removePiece above).
	if b.enPassantFile != 0 {
		b.zobristKey ^= zobristEnPassant[b.enPassantFile-1]
	}
	b.enPassantFile = newEPFile
	if b.enPassantFile != 0 {
		b.zobristKey ^= zobristEnPassant[b.enPassantFile-1]
	}
	b.zobristKey ^= zobristSideToMove

	// 9. Flip side, rebuild aggregates, fifty-move counter, ply/history.
	b.sideToMove = them
	b.rebuildAggregates()
	if moved.Type() == PieceTypePawn || captured != NoPiece {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if us == Black {
		b.fullmoveNumber++
	}
	b.ply++
	b.checkCacheValid = false

	if !inSearch {
		irreversible := moved.Type() == PieceTypePawn || captured != NoPiece
		snapshot := append([]uint64(nil), b.repetitionKeys...)
		b.repetitionSnapshots = append(b.repetitionSnapshots, snapshot)
		b.pushRepetition(irreversible)
		b.moveHistory = append(b.moveHistory, m)
	}

	return st
}

// MakeMove applies a move played by the host (via `position ... moves ...`)
// or the UCI driver, recording it in the persistent move/repetition history.
func (b *Board) MakeMove(m Move) GameState { return b.makeMove(m, false) }

// MakeSearchMove applies a move explored by the searcher. It does not touch
// the board's persistent history; the searcher tracks its own repetition
// window (spec §4.8) separately.
func (b *Board) MakeSearchMove(m Move) GameState { return b.makeMove(m, true) }

func clearRookRight(cr CastlingRights, sq Square) CastlingRights {
	switch sq {
	case 0:
		return cr &^ CastlingWhiteQ
	case 7:
		return cr &^ CastlingWhiteK
	case 56:
		return cr &^ CastlingBlackQ
	case 63:
		return cr &^ CastlingBlackK
	default:
		return cr
	}
}

func (b *Board) setCastling(newCR CastlingRights) {
	if newCR == b.castlingRights {
		return
	}
	b.zobristKey ^= zobristCastling[b.castlingRights]
	b.zobristKey ^= zobristCastling[newCR]
	b.castlingRights = newCR
}

// unmakeMove reverses every step of makeMove in strict inverse order using
// st, the GameState returned by makeMove. No Zobrist recomputation:
// st.Zobrist restores it directly, exactly as the teacher's makemove.go
// relies on its saved prevZobrist.
func (b *Board) unmakeMove(m Move, st GameState, inSearch bool) {
	start, target, flag := m.Start(), m.Target(), m.Flag()
	them := b.sideToMove
	us := them.Opponent()

	if !inSearch {
		b.moveHistory = b.moveHistory[:len(b.moveHistory)-1]
		n := len(b.repetitionSnapshots) - 1
		b.repetitionKeys = b.repetitionSnapshots[n]
		b.repetitionSnapshots = b.repetitionSnapshots[:n]
	}

	if us == Black {
		b.fullmoveNumber--
	}
	b.halfmoveClock = st.HalfmoveClock
	b.enPassantFile = st.EnPassantFile
	b.castlingRights = st.Castling
	b.ply--
	b.checkCacheValid = false

	if flag.IsPromotion() {
		b.removePiece(target)
		b.placePiece(start, PieceFromType(us, PieceTypePawn))
	} else if flag == FlagCastle {
		b.removePiece(target)
		b.placePiece(start, PieceFromType(us, PieceTypeKing))
		var rookFrom, rookTo Square
		switch target {
		case g1:
			rookFrom, rookTo = 7, 5
		case c1:
			rookFrom, rookTo = 0, 3
		case g8:
			rookFrom, rookTo = 63, 61
		case c8:
			rookFrom, rookTo = 56, 59
		}
		rook := b.removePiece(rookTo)
		b.placePiece(rookFrom, rook)
	} else {
		moved := b.removePiece(target)
		b.placePiece(start, moved)
	}

	if st.CapturedType != PieceTypeNone {
		if flag == FlagEnPassantCapture {
			var captureSquare Square
			if us == White {
				captureSquare = target - 8
			} else {
				captureSquare = target + 8
			}
			b.placePiece(captureSquare, PieceFromType(them, PieceTypePawn))
		} else {
			b.placePiece(target, PieceFromType(them, st.CapturedType))
		}
	}

	b.sideToMove = us
	b.rebuildAggregates()
	b.zobristKey = st.Zobrist
}

// UnmakeMove reverses a move made with MakeMove.
func (b *Board) UnmakeMove(m Move, st GameState) { b.unmakeMove(m, st, false) }

// UnmakeSearchMove reverses a move made with MakeSearchMove.
func (b *Board) UnmakeSearchMove(m Move, st GameState) { b.unmakeMove(m, st, true) }

// pushRepetition appends the current Zobrist key to the repetition window
// (spec §4.8): reset iff the move just made was irreversible.
func (b *Board) pushRepetition(reset bool) {
	if reset {
		b.repetitionKeys = b.repetitionKeys[:0]
	}
	b.repetitionKeys = append(b.repetitionKeys, b.zobristKey)
}

// NullState is the minimal undo information for MakeNullMove/UnmakeNullMove.
type NullState struct {
	EnPassantFile int
	HalfmoveClock int
	Zobrist       uint64
}

// MakeNullMove flips the side to move and clears en passant without moving
// a piece. Must not be called while in check (spec §4.3). Nothing in this
// module calls it: en passant legality is decided by enPassantLegal's
// occupancy test, and the searcher does no null-move pruning.
func (b *Board) MakeNullMove() NullState {
	st := NullState{EnPassantFile: b.enPassantFile, HalfmoveClock: b.halfmoveClock, Zobrist: b.zobristKey}
	if b.enPassantFile != 0 {
		b.zobristKey ^= zobristEnPassant[b.enPassantFile-1]
	}
	b.enPassantFile = 0
	b.halfmoveClock++
	b.sideToMove = b.sideToMove.Opponent()
	b.zobristKey ^= zobristSideToMove
	b.checkCacheValid = false
	return st
}

// UnmakeNullMove restores the state saved by MakeNullMove.
func (b *Board) UnmakeNullMove(st NullState) {
	b.sideToMove = b.sideToMove.Opponent()
	b.enPassantFile = st.EnPassantFile
	b.halfmoveClock = st.HalfmoveClock
	b.zobristKey = st.Zobrist
	b.checkCacheValid = false
}
