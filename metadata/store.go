// Package metadata attaches ordered annotations to command paths:
// usage examples, categories, owner tags, anything the declared tree
// itself has no field for. Keys iterate in sorted order so rendered
// output is deterministic.
package metadata

import (
	"strings"
	"sync"

	"github.com/tidwall/btree"
)

// sep joins the command path and the annotation key into one ordered
// composite key. NUL never appears in command or key names.
const sep = "\x00"

// Store is a concurrency-safe annotation store. The zero value is not
// usable; call NewStore.
type Store struct {
	mu sync.RWMutex
	m  *btree.Map[string, string]
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{m: btree.NewMap[string, string](0)}
}

// Set records an annotation for the command path, replacing any
// previous value under the same key.
func (s *Store) Set(command []string, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.Set(compose(command, key), value)
}

// Get returns the annotation value and whether it exists.
func (s *Store) Get(command []string, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Get(compose(command, key))
}

// Delete removes an annotation. Deleting an absent key is a no-op.
func (s *Store) Delete(command []string, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.Delete(compose(command, key))
}

// ForCommand visits every annotation of one command path in key order.
// Returning false from fn stops the walk.
func (s *Store) ForCommand(command []string, fn func(key, value string) bool) {
	prefix := strings.Join(command, " ") + sep
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.m.Ascend(prefix, func(k, v string) bool {
		if !strings.HasPrefix(k, prefix) {
			return false
		}
		return fn(strings.TrimPrefix(k, prefix), v)
	})
}

// Len reports the total number of annotations across all commands.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Len()
}

func compose(command []string, key string) string {
	return strings.Join(command, " ") + sep + key
}
