package binpack

// binRegistry is a fixed-capacity array-backed binary max-heap of bin loads,
// 1-indexed with the root at position 1 and the children of node j at 2j and
// 2j+1. The heap property (every node's load ≥ both children's loads) holds
// after every push and every increase.
type binRegistry struct {
	elements []int
	size     int
}

func newBinRegistry(capacity int) *binRegistry {
	// Position 0 stays unused to keep the parent/child arithmetic 1-based.
	return &binRegistry{elements: make([]int, capacity+1)}
}

func (h *binRegistry) len() int {
	return h.size
}

// at returns the load stored at heap position i, 1 ≤ i ≤ len().
func (h *binRegistry) at(i int) int {
	return h.elements[i]
}

// push inserts a new leaf and restores heap order upward.
func (h *binRegistry) push(value int) {
	h.size++
	j := h.size
	h.elements[j] = value
	for j > 1 && h.elements[j/2] < h.elements[j] {
		h.elements[j/2], h.elements[j] = h.elements[j], h.elements[j/2]
		j /= 2
	}
}

// increase replaces the value at position i with a strictly larger one and
// restores heap order. A grown node still dominates its children, so only the
// path toward the root can need repair.
func (h *binRegistry) increase(i, value int) {
	h.elements[i] = value
	for i > 1 && h.elements[i/2] < h.elements[i] {
		h.elements[i/2], h.elements[i] = h.elements[i], h.elements[i/2]
		i /= 2
	}
}
