package binpack

type arrayBestFit struct {
	heuristicBase
}

// NewArrayBestFit creates the quadratic-time Best-Fit heuristic. It scans
// every open bin per item and is therefore O(n²) in the worst case, but it is
// the only variant that reports a per-item bin assignment.
func NewArrayBestFit(opts ...Option) Heuristic {
	return &arrayBestFit{newHeuristicBase(opts)}
}

func (a *arrayBestFit) Name() string {
	return "best-fit"
}

// Pack places each item into the open bin whose resulting load is the largest
// value still within capacity, ties broken by lowest index. A bin whose load
// exceeds capacity minus the minimum item size can never accept another item;
// it is retired by swapping the last open bin into its slot. Bin identities in
// the assignment are creation-ordered and survive that slot reuse.
func (a *arrayBestFit) Pack(inst *Instance) (Result, error) {
	if inst == nil {
		return Result{}, ErrNilInstance
	}

	n := inst.Len()
	items := inst.items
	capacity := inst.capacity
	limit := capacity - inst.minItemSize

	loads := make([]int, n)
	ids := make([]int, n)
	assignment := make([]int, n)
	numOpen := 0
	numFull := 0
	nextID := 0

	start := a.now()
	for i := 0; i < n; i++ {
		bestBin := -1
		bestLoad := 0
		for j := 0; j < numOpen; j++ {
			if load := loads[j] + items[i]; load <= capacity && load > bestLoad {
				bestBin = j
				bestLoad = load
			}
		}

		if bestBin >= 0 {
			loads[bestBin] = bestLoad
			assignment[i] = ids[bestBin]

			// Retire (almost) full bins from the working set.
			if bestLoad > limit {
				numOpen--
				numFull++
				loads[bestBin] = loads[numOpen]
				ids[bestBin] = ids[numOpen]
			}
		} else {
			loads[numOpen] = items[i]
			ids[numOpen] = nextID
			assignment[i] = nextID
			nextID++
			numOpen++
		}
	}
	elapsed := a.now().Sub(start)

	return Result{
		Bins:       numOpen + numFull,
		Elapsed:    elapsed,
		Assignment: assignment,
	}, nil
}
