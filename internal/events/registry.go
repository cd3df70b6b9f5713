package events

import (
	"slices"
	"sync"
)

// registry keeps handlers per key in registration order.
type registry[K comparable, F any] struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[K]map[uint64]F
}

func (r *registry[K, F]) add(key K, fn F) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handlers == nil {
		r.handlers = make(map[K]map[uint64]F)
	}
	r.nextID++
	id := r.nextID
	if r.handlers[key] == nil {
		r.handlers[key] = make(map[uint64]F)
	}
	r.handlers[key][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			delete(r.handlers[key], id)
		})
	}
}

func (r *registry[K, F]) list(key K) []F {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := r.handlers[key]
	if len(set) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]F, len(ids))
	for i, id := range ids {
		out[i] = set[id]
	}
	return out
}

func (r *registry[K, F]) count(key K) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[key])
}

func (r *registry[K, F]) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = nil
}
