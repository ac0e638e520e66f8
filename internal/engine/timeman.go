package engine

import (
	"time"

	"github.com/hailam/chesscore/internal/board"
)

// SearchLimits bounds one call to Engine.SearchWithLimits. The core search
// cannot be interrupted, so time limits are only checked between
// iterative-deepening iterations.
type SearchLimits struct {
	Depth     int              // maximum depth (0 = DefaultDepth, or time-bound if a clock is set)
	MoveTime  time.Duration    // fixed time per move
	Time      [2]time.Duration // wtime, btime
	Inc       [2]time.Duration // winc, binc
	MovesToGo int              // moves until next time control (0 = sudden death)
}

func (l SearchLimits) timed() bool {
	return l.MoveTime > 0 || l.Time[0] > 0 || l.Time[1] > 0
}

// TimeManager decides whether another iteration fits in the time budget.
type TimeManager struct {
	budget    time.Duration // 0 = unlimited
	startTime time.Time
}

// NewTimeManager creates a new time manager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init sets the budget for a new search. ply is the game ply, used to
// estimate the moves left in sudden death.
func (tm *TimeManager) Init(limits SearchLimits, us board.Color, ply int) {
	tm.startTime = time.Now()
	tm.budget = 0

	if limits.MoveTime > 0 {
		tm.budget = limits.MoveTime
		return
	}

	timeLeft := limits.Time[us.Index()]
	if timeLeft <= 0 {
		return
	}
	inc := limits.Inc[us.Index()]

	mtg := limits.MovesToGo
	if mtg == 0 {
		mtg = max(10, min(50, 50-ply/4))
	}

	tm.budget = timeLeft/time.Duration(mtg) + inc*9/10

	// Never plan to use more than 80% of the clock.
	if limit := timeLeft * 8 / 10; tm.budget > limit {
		tm.budget = limit
	}
	if tm.budget < 10*time.Millisecond {
		tm.budget = 10 * time.Millisecond
	}
}

// Elapsed returns the time elapsed since search started.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// Budget returns the planned time for this move, 0 when unlimited.
func (tm *TimeManager) Budget() time.Duration {
	return tm.budget
}

// CanStartIteration reports whether the next iteration is expected to finish
// inside the budget. The next iteration is assumed to take about four times
// as long as the last one.
func (tm *TimeManager) CanStartIteration(lastIteration time.Duration) bool {
	if tm.budget == 0 {
		return true
	}
	elapsed := tm.Elapsed()
	if elapsed >= tm.budget {
		return false
	}
	return elapsed+4*lastIteration <= tm.budget
}
