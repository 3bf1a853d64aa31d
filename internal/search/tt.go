package search

// Bound is the kind of score a transposition-table entry stores, from the
// perspective of the search that stored it (spec §4.6).
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

// Mate/draw score constants (spec §4.9): MATE is the score assigned to
// "mate in 0 ply from this node"; scores with magnitude above MateBound are
// mate scores needing ply-from-root normalization before being stored or
// after being retrieved.
const (
	Mate      int32 = 32000
	MateBound int32 = Mate - 1000
	Draw      int32 = 0
)

// entry is the direct-mapped transposition-table slot (spec §4.6): full key
// for verification, score, best move, depth, and bound.
type entry struct {
	key   uint64
	score int32
	move  uint16 // chess.Move, stored as its bit pattern to keep this package independent of chess's type identity in the hot struct
	depth int8
	bound Bound
}

// Table is the direct-mapped transposition table: index = key mod N,
// always-replace, sized to a configurable megabyte budget. Grounded on
// GooseEngine's engine/transposition.go TransTable, simplified from its
// 4-way clustered probing (an enrichment beyond spec §4.6's literal "direct
// mapped... always-replace", so not carried forward) to the one-slot
// direct-mapped table the spec actually describes.
type Table struct {
	entries []entry
	written int // approximate hashfull numerator
}

// DefaultTableMB is the transposition table size used until `setoption
// name Hash` changes it.
const DefaultTableMB = 64

// NewTable allocates a table sized to mb megabytes, rounded down to a
// number of entries that fits.
func NewTable(mb int) *Table {
	t := &Table{}
	t.Resize(mb)
	return t
}

// Resize reallocates the table to the given megabyte budget, discarding all
// entries (spec §6's `setoption name Hash value N`, spec §7's "cap to the
// configured maximum on allocation failure" — here realized by clamping mb
// to at least 1 so a zero/negative request never yields a zero-size table).
func (t *Table) Resize(mb int) {
	if mb < 1 {
		mb = 1
	}
	var e entry
	entrySize := uint64(8 + 4 + 2 + 1 + 1) // key + score + move + depth + bound, no struct padding assumed
	_ = e
	count := (uint64(mb) * 1024 * 1024) / entrySize
	if count == 0 {
		count = 1
	}
	t.entries = make([]entry, count)
	t.written = 0
}

// Clear empties every entry without reallocating (spec §6's `ucinewgame`).
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = entry{}
	}
	t.written = 0
}

func (t *Table) index(key uint64) uint64 { return key % uint64(len(t.entries)) }

// Probe looks up key and returns the stored entry's move (usable for move
// ordering regardless of score usability) plus whether the stored score,
// once mate-distance normalized for plyFromRoot, is usable at (depth,
// alpha, beta): Exact is always usable, LowerBound when it is >= beta,
// UpperBound when it is <= alpha. A miss returns ok=false.
func (t *Table) Probe(key uint64, depth int, plyFromRoot int, alpha, beta int32) (move uint16, score int32, usable bool, ok bool) {
	e := &t.entries[t.index(key)]
	if e.key != key {
		return 0, 0, false, false
	}
	move = e.move
	ok = true
	if int(e.depth) < depth {
		return move, 0, false, ok
	}
	score = denormalizeMateScore(e.score, plyFromRoot)
	switch e.bound {
	case BoundExact:
		usable = true
	case BoundLower:
		usable = score >= beta
	case BoundUpper:
		usable = score <= alpha
	}
	return move, score, usable, ok
}

// Store writes (key, depth, move, score, bound), always replacing whatever
// occupied the slot (spec §4.6: "no aging/bucketing required").
func (t *Table) Store(key uint64, depth int, plyFromRoot int, move uint16, score int32, bound Bound) {
	e := &t.entries[t.index(key)]
	if e.key == 0 {
		t.written++
	}
	e.key = key
	e.depth = int8(depth)
	e.move = move
	e.score = normalizeMateScore(score, plyFromRoot)
	e.bound = bound
}

// HashfullPermille approximates how full the table is, in permille, for the
// UCI `info hashfull` field (spec §4.6).
func (t *Table) HashfullPermille() int {
	if len(t.entries) == 0 {
		return 0
	}
	return t.written * 1000 / len(t.entries)
}

// normalizeMateScore converts a root-relative mate score (as the search
// produces it) to one relative to this node before storing, by adding the
// ply-from-root to its magnitude.
func normalizeMateScore(score int32, plyFromRoot int) int32 {
	if score > MateBound {
		return score + int32(plyFromRoot)
	}
	if score < -MateBound {
		return score - int32(plyFromRoot)
	}
	return score
}

// denormalizeMateScore reverses normalizeMateScore on retrieval.
func denormalizeMateScore(score int32, plyFromRoot int) int32 {
	if score > MateBound {
		return score - int32(plyFromRoot)
	}
	if score < -MateBound {
		return score + int32(plyFromRoot)
	}
	return score
}
