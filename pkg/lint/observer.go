package lint

import "time"

// RuleStats summarizes one rule's work in one pass.
type RuleStats struct {
	RuleID   string
	Matches  int // locator matches found
	Skipped  int // matches dropped by scope filtering
	Tested   int // matches passed to the checker
	Findings int
	Duration time.Duration
}

// PassStats summarizes one pass.
type PassStats struct {
	Path        string
	Diagnostics int
	Duration    time.Duration
	Err         error
}

// Observer receives engine statistics. Implementations must be safe for
// concurrent use when the engine is shared by concurrent passes.
type Observer interface {
	RuleCompleted(stats RuleStats)
	PassCompleted(stats PassStats)
}

type nopObserver struct{}

func (nopObserver) RuleCompleted(RuleStats) {}
func (nopObserver) PassCompleted(PassStats) {}
