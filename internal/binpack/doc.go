// Package binpack implements the "Best-Fit" family of one-dimensional
// bin-packing heuristics: a quadratic array scan, a heap-accelerated
// approximation, and an exact near-linear lookup-table variant. All three
// consume the same immutable problem instance and report the number of bins
// used together with the wall-clock time spent in the packing loop, so their
// quality and speed can be compared by a benchmarking harness.
package binpack
