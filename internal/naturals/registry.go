package naturals

import (
	"fmt"
	"sort"
	"sync"
)

// Factory is a registry of named summation strategies.
type Factory struct {
	mu      sync.RWMutex
	summers map[string]Summer
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{summers: make(map[string]Summer)}
}

// NewDefaultFactory returns a factory with the built-in strategies
// registered under GaussName and LoopName.
func NewDefaultFactory() *Factory {
	f := NewFactory()
	f.Register(GaussName, Gauss{})
	f.Register(LoopName, Accumulator{})
	return f
}

var (
	globalFactory     *Factory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns a process-wide default factory.
func GlobalFactory() *Factory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}

// Register adds or replaces the summer stored under name.
func (f *Factory) Register(name string, s Summer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summers[name] = s
}

// Get returns the summer registered under name.
func (f *Factory) Get(name string) (Summer, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.summers[name]
	if !ok {
		return nil, fmt.Errorf("unknown summation strategy %q", name)
	}
	return s, nil
}

// MustGet is like Get but panics on unknown names.
func (f *Factory) MustGet(name string) Summer {
	s, err := f.Get(name)
	if err != nil {
		panic(err)
	}
	return s
}

// List returns the registered names in sorted order.
func (f *Factory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.summers))
	for name := range f.summers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns every registered summer, ordered by name.
func (f *Factory) GetAll() []Summer {
	names := f.List()
	f.mu.RLock()
	defer f.mu.RUnlock()
	all := make([]Summer, 0, len(names))
	for _, name := range names {
		all = append(all, f.summers[name])
	}
	return all
}
