package persist

import (
	"errors"
	"sync"
)

// MemoryKV keeps slots in a map. FailWrites makes Set return an error, which
// lets tests exercise the quota-exceeded path.
type MemoryKV struct {
	mu         sync.RWMutex
	slots      map[string]string
	FailWrites bool
}

// ErrWriteRejected is returned by MemoryKV.Set when FailWrites is set.
var ErrWriteRejected = errors.New("persist: write rejected")

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{slots: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrWriteRejected
	}
	m.slots[key] = value
	return nil
}

func (m *MemoryKV) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}

func (m *MemoryKV) Close() error { return nil }

var _ KV = (*MemoryKV)(nil)
