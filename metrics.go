package scalarfl

import "go.uber.org/atomic"

// Process-wide counters, read through CurrentStats(). Kept as atomics rather than
// behind a mutex since the engine promises no internal synchronization
// beyond what's needed to keep these counts honest under concurrent use.
var (
	compiledCount  atomic.Int64
	evaluatedCount atomic.Int64
)

// Stats is a snapshot of the engine's process-wide activity counters.
type Stats struct {
	Compiled  int64
	Evaluated int64
}

// CurrentStats returns the current compile/evaluate counts.
func CurrentStats() Stats {
	return Stats{
		Compiled:  compiledCount.Load(),
		Evaluated: evaluatedCount.Load(),
	}
}
