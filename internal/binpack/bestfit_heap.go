package binpack

type heapBestFit struct {
	heuristicBase
}

// NewHeapBestFit creates the heap-accelerated Best-Fit heuristic. Bins are
// tracked only by load in a max-heap, and candidate bins are located with a
// pruned breadth-first search instead of a full linear scan. No assignment is
// reported.
func NewHeapBestFit(opts ...Option) Heuristic {
	return &heapBestFit{newHeuristicBase(opts)}
}

func (h *heapBestFit) Name() string {
	return "best-fit-heap"
}

// Pack searches the heap breadth-first from the root for the bin whose
// resulting load is largest while still within capacity. Subtrees rooted at a
// node that does not fit are pruned. The max-heap property only bounds a
// node's load from above relative to its children, so a pruned child could
// still have fit: the traversal returns a good bin, not provably the best
// one. That approximation is the point of this variant and must stay.
func (h *heapBestFit) Pack(inst *Instance) (Result, error) {
	if inst == nil {
		return Result{}, ErrNilInstance
	}

	n := inst.Len()
	items := inst.items
	capacity := inst.capacity

	bins := newBinRegistry(n)
	queue := make([]int, 0, n)
	numBins := 0

	start := h.now()
	for i := 0; i < n; i++ {
		bestBin := -1
		bestLoad := 0

		// The root carries the maximum load; if even it cannot take the item,
		// neither can any other bin and a new one is opened without searching.
		if numBins != 0 && bins.at(1)+items[i] <= capacity {
			queue = append(queue[:0], 1)
			for head := 0; head < len(queue); head++ {
				j := queue[head]
				load := bins.at(j) + items[i]
				if load > capacity {
					// Prune: do not descend below a bin that does not fit.
					continue
				}
				if load > bestLoad {
					bestBin = j
					bestLoad = load
				}
				if left := 2 * j; left <= numBins {
					queue = append(queue, left)
				}
				if right := 2*j + 1; right <= numBins {
					queue = append(queue, right)
				}
			}
		}

		if bestBin > 0 {
			bins.increase(bestBin, bestLoad)
		} else {
			bins.push(items[i])
			numBins++
		}
	}
	elapsed := h.now().Sub(start)

	return Result{Bins: numBins, Elapsed: elapsed}, nil
}
