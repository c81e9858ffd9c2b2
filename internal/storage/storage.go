package storage

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Submanifold/bin-packing-heuristics/internal/binpack"
)

const maxNameLength = 64

var (
	// ErrNotFound indicates no instance is stored under the requested name.
	ErrNotFound = errors.New("no instance stored under this name")
	// ErrInvalidName indicates the instance name is empty or too long.
	ErrInvalidName = errors.New("instance name must be non-empty and at most 64 characters")
	// ErrNilInstance indicates an attempt to store a nil instance.
	ErrNilInstance = errors.New("cannot store a nil instance")
)

// Storage provides access to the problem instances available to the API.
// Instances are immutable, so implementations may share them freely.
type Storage interface {
	Get(name string) (*binpack.Instance, error)
	Put(name string, inst *binpack.Instance) error
	Names() ([]string, error)
}

// MemoryStorage keeps named instances in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu        sync.RWMutex
	instances map[string]*binpack.Instance
}

// NewMemoryStorage initialises storage seeded with the sample instances.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{instances: sampleInstances()}
}

// sampleInstances builds the instances every fresh store starts with, so a
// harness can exercise the API without uploading anything first.
func sampleInstances() map[string]*binpack.Instance {
	samples := map[string]struct {
		items    []int
		capacity int
	}{
		"reference": {items: []int{4, 8, 1, 4, 2, 1}, capacity: 10},
		"pairwise":  {items: []int{6, 6, 6, 6}, capacity: 10},
	}

	out := make(map[string]*binpack.Instance, len(samples))
	for name, sample := range samples {
		inst, err := binpack.NewInstance(sample.items, sample.capacity)
		if err != nil {
			panic("invalid sample instance: " + err.Error())
		}
		out[name] = inst
	}
	return out
}

// Get returns the instance stored under name.
func (s *MemoryStorage) Get(name string) (*binpack.Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inst, ok := s.instances[name]
	if !ok {
		return nil, ErrNotFound
	}
	return inst, nil
}

// Put validates the name and stores the instance, replacing any previous one.
func (s *MemoryStorage) Put(name string, inst *binpack.Instance) error {
	if err := validateName(name); err != nil {
		return err
	}
	if inst == nil {
		return ErrNilInstance
	}

	s.mu.Lock()
	s.instances[name] = inst
	s.mu.Unlock()

	return nil
}

// Names returns the stored instance names in lexicographic order.
func (s *MemoryStorage) Names() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.instances))
	for name := range s.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" || len(name) > maxNameLength {
		return ErrInvalidName
	}
	return nil
}
