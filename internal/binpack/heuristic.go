package binpack

import "time"

// Result summarises one heuristic run. Elapsed covers the packing loop only;
// auxiliary allocation happens before the timer starts so that timing stays
// comparable across variants.
type Result struct {
	// Bins is the total number of bins used, open and retired alike.
	Bins int
	// Elapsed is the wall-clock duration of the packing loop.
	Elapsed time.Duration
	// Assignment maps each item index to the bin it was placed in, identified
	// by creation order. Only the array variant produces it; nil otherwise.
	Assignment []int
}

// Heuristic is the contract shared by every packing heuristic in this family,
// including peers such as Next-Fit that live outside this package. Pack must
// be a pure function of the instance plus clock sampling: no state survives
// across calls and concurrent calls on separate instances are safe.
type Heuristic interface {
	Name() string
	Pack(inst *Instance) (Result, error)
}

// Option configures a heuristic.
type Option func(*heuristicBase)

// WithClock overrides the time source used to measure the packing loop,
// primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(h *heuristicBase) {
		h.now = now
	}
}

type heuristicBase struct {
	now func() time.Time
}

func newHeuristicBase(opts []Option) heuristicBase {
	base := heuristicBase{now: time.Now}
	for _, opt := range opts {
		opt(&base)
	}
	return base
}
