// Package persist stores the cart between runs. A KV backend provides
// string slots addressed by key; the Adapter reads and writes the versioned
// cart envelope in one slot and migrates the legacy slot once.
//
// Persistence is best effort. Nothing in the Adapter returns an error to the
// store: unreadable data means "no saved cart" and failed writes are logged.
package persist

import (
	"fmt"
	"sort"
)

// KV is a string key-value slot store.
type KV interface {
	// Get returns the value stored under key. ok is false when the slot is
	// empty; err is reserved for backend failures.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	// Remove empties the slot. Removing an empty slot is not an error.
	Remove(key string) error
	Close() error
}

// Factory opens a backend rooted at dir.
type Factory func(dir string) (KV, error)

// Backends maps backend names to their factories.
var Backends = map[string]Factory{
	"file": func(dir string) (KV, error) {
		return NewFileKV(dir)
	},
	"sqlite": func(dir string) (KV, error) {
		return OpenSQLite(sqlitePath(dir))
	},
	"memory": func(string) (KV, error) {
		return NewMemoryKV(), nil
	},
}

// Open creates the named backend.
func Open(name, dir string) (KV, error) {
	factory, ok := Backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown storage backend %q (have %v)", name, BackendNames())
	}
	return factory(dir)
}

// BackendNames lists registered backends in sorted order.
func BackendNames() []string {
	names := make([]string, 0, len(Backends))
	for name := range Backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
