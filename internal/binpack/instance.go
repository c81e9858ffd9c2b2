package binpack

import "fmt"

// Instance is an immutable bin-packing problem: a sequence of item sizes, a
// bin capacity, and the smallest admissible item size. The minimum item size
// determines when a bin is "almost full" and can be retired: once a bin's load
// exceeds capacity minus the minimum item size, no remaining item can fit.
type Instance struct {
	items       []int
	capacity    int
	minItemSize int
}

// InstanceOption configures instance construction.
type InstanceOption func(*Instance)

// WithMinItemSize overrides the minimum admissible item size. By default the
// minimum is 1, the most conservative retirement threshold.
func WithMinItemSize(size int) InstanceOption {
	return func(inst *Instance) {
		inst.minItemSize = size
	}
}

// NewInstance validates and builds a problem instance. Every item size must be
// in [1, capacity]: an item larger than the capacity can never be packed, and
// the construction rejects it up front so that all heuristics share a single
// precondition policy.
func NewInstance(items []int, capacity int, opts ...InstanceOption) (*Instance, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	inst := &Instance{
		items:       make([]int, len(items)),
		capacity:    capacity,
		minItemSize: 1,
	}
	copy(inst.items, items)

	for _, opt := range opts {
		opt(inst)
	}

	smallest := capacity
	for i, size := range inst.items {
		if size <= 0 {
			return nil, fmt.Errorf("%w: item %d has size %d", ErrInvalidItemSize, i, size)
		}
		if size > capacity {
			return nil, fmt.Errorf("%w: item %d has size %d, capacity is %d", ErrItemTooLarge, i, size, capacity)
		}
		if size < smallest {
			smallest = size
		}
	}

	if inst.minItemSize <= 0 || inst.minItemSize > smallest {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMinItemSize, inst.minItemSize)
	}

	return inst, nil
}

// Len returns the number of items.
func (inst *Instance) Len() int {
	return len(inst.items)
}

// Capacity returns the bin capacity.
func (inst *Instance) Capacity() int {
	return inst.capacity
}

// MinItemSize returns the smallest admissible item size.
func (inst *Instance) MinItemSize() int {
	return inst.minItemSize
}

// Items returns a defensive copy of the item sizes in input order.
func (inst *Instance) Items() []int {
	out := make([]int, len(inst.items))
	copy(out, inst.items)
	return out
}

// LowerBound returns ceil(sum(items)/capacity), the trivial lower bound on the
// number of bins any packing needs.
func (inst *Instance) LowerBound() int {
	total := 0
	for _, size := range inst.items {
		total += size
	}
	return (total + inst.capacity - 1) / inst.capacity
}
