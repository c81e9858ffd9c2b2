package binpack

import (
	"errors"
	"slices"
	"testing"
)

func TestNewInstanceValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		items    []int
		capacity int
		opts     []InstanceOption
		wantErr  error
	}{
		{
			name:     "ValidInstance",
			items:    []int{4, 8, 1, 4, 2, 1},
			capacity: 10,
		},
		{
			name:     "EmptyItems",
			items:    nil,
			capacity: 10,
		},
		{
			name:     "ZeroCapacity",
			items:    []int{1},
			capacity: 0,
			wantErr:  ErrInvalidCapacity,
		},
		{
			name:     "NegativeCapacity",
			items:    []int{1},
			capacity: -5,
			wantErr:  ErrInvalidCapacity,
		},
		{
			name:     "ZeroItemSize",
			items:    []int{3, 0, 2},
			capacity: 10,
			wantErr:  ErrInvalidItemSize,
		},
		{
			name:     "NegativeItemSize",
			items:    []int{3, -1},
			capacity: 10,
			wantErr:  ErrInvalidItemSize,
		},
		{
			name:     "ItemExceedsCapacity",
			items:    []int{4, 11},
			capacity: 10,
			wantErr:  ErrItemTooLarge,
		},
		{
			name:     "MinItemSizeTooLarge",
			items:    []int{4, 8},
			capacity: 10,
			opts:     []InstanceOption{WithMinItemSize(5)},
			wantErr:  ErrInvalidMinItemSize,
		},
		{
			name:     "MinItemSizeZero",
			items:    []int{4, 8},
			capacity: 10,
			opts:     []InstanceOption{WithMinItemSize(0)},
			wantErr:  ErrInvalidMinItemSize,
		},
		{
			name:     "MinItemSizeMatchingSmallestItem",
			items:    []int{4, 8},
			capacity: 10,
			opts:     []InstanceOption{WithMinItemSize(4)},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			inst, err := NewInstance(tc.items, tc.capacity, tc.opts...)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}
			if inst.Len() != len(tc.items) {
				t.Fatalf("expected %d items, got %d", len(tc.items), inst.Len())
			}
			if inst.Capacity() != tc.capacity {
				t.Fatalf("expected capacity %d, got %d", tc.capacity, inst.Capacity())
			}
		})
	}
}

func TestInstanceDefensiveCopies(t *testing.T) {
	t.Parallel()

	items := []int{4, 8, 1}
	inst, err := NewInstance(items, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items[0] = 99
	if got := inst.Items(); !slices.Equal(got, []int{4, 8, 1}) {
		t.Fatalf("instance observed caller mutation: %v", got)
	}

	got := inst.Items()
	got[1] = 99
	if again := inst.Items(); !slices.Equal(again, []int{4, 8, 1}) {
		t.Fatalf("expected defensive copy, got %v", again)
	}
}

func TestInstanceLowerBound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		items    []int
		capacity int
		want     int
	}{
		{name: "Empty", items: nil, capacity: 10, want: 0},
		{name: "ExactFit", items: []int{5, 5, 10}, capacity: 10, want: 2},
		{name: "RoundsUp", items: []int{6, 6, 6, 6}, capacity: 10, want: 3},
		{name: "SingleFullItem", items: []int{10}, capacity: 10, want: 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			inst, err := NewInstance(tc.items, tc.capacity)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := inst.LowerBound(); got != tc.want {
				t.Fatalf("expected lower bound %d, got %d", tc.want, got)
			}
		})
	}
}
