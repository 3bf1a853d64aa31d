package search

import "time"

// GoParams mirrors the subset of UCI `go` parameters the time manager
// needs (spec §6): wall clock and increment per side, an explicit move
// time, a fixed depth, and the infinite flag (ponder is passed to
// Driver.Go separately).
type GoParams struct {
	WTime, BTime time.Duration
	WInc, BInc   time.Duration
	MoveTime     time.Duration
	Depth        int
	Infinite     bool
}

// Plan is the decided search budget: a soft deadline to stop at (zero means
// no deadline — infinite/ponder/depth-only searches), and a depth cap (zero
// means unlimited, up to the engine's absolute ply ceiling).
type Plan struct {
	Deadline time.Time
	Depth    int
	NoLimit  bool
}

// PlanTime derives a thinking-time budget from go params (spec §6's literal
// formula): remaining/40 plus 0.8 of the increment, but only once remaining
// exceeds twice the increment; otherwise fall back to a quarter of the
// remaining time. The result is raised to at least the smaller of 50ms and
// a quarter of the remaining time, and capped at the remaining time.
// MoveTime and Depth-only/Infinite modes
// bypass the formula entirely.
//
// Grounded on GooseEngine's engine/time_management.go phase-based budget,
// simplified to the single formula spec §6 states (the teacher's game-
// phase/moves-to-go weighting is a refinement the spec does not describe).
func PlanTime(now time.Time, us bool, p GoParams) Plan {
	if p.Infinite {
		return Plan{NoLimit: true, Depth: p.Depth}
	}
	if p.Depth > 0 && p.MoveTime == 0 && p.WTime == 0 && p.BTime == 0 {
		return Plan{NoLimit: true, Depth: p.Depth}
	}
	if p.MoveTime > 0 {
		return Plan{Deadline: now.Add(p.MoveTime), Depth: p.Depth}
	}

	remaining, inc := p.WTime, p.WInc
	if !us {
		remaining, inc = p.BTime, p.BInc
	}
	if remaining <= 0 {
		remaining = time.Millisecond
	}

	var think time.Duration
	if remaining > 2*inc {
		think = remaining/40 + (inc*8)/10
	} else {
		think = remaining / 4
	}
	floor := remaining / 4
	if floor > 50*time.Millisecond {
		floor = 50 * time.Millisecond
	}
	if think < floor {
		think = floor
	}
	if think > remaining {
		think = remaining
	}
	return Plan{Deadline: now.Add(think), Depth: p.Depth}
}
