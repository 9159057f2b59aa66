// Package ordered provides a map that remembers insertion order.
//
// Setting an existing key replaces its value in place; setting a new key
// appends it. Rule tables rely on this to keep substitution priority stable
// while still allowing overrides by key.
package ordered

import "iter"

// Map is an insertion-ordered map. The zero value is ready to use.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New returns an empty map with room for n entries.
func New[K comparable, V any](n int) *Map[K, V] {
	return &Map[K, V]{
		keys:   make([]K, 0, n),
		values: make(map[K]V, n),
	}
}

// Set stores v under k. It reports whether k already existed, in which case
// the key keeps its original position.
func (m *Map[K, V]) Set(k K, v V) bool {
	if m.values == nil {
		m.values = make(map[K]V)
	}
	_, exists := m.values[k]
	if !exists {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
	return exists
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.values[k]
	return ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Index returns the position of k, or -1.
func (m *Map[K, V]) Index(k K) int {
	if !m.Has(k) {
		return -1
	}
	for i, key := range m.keys {
		if key == k {
			return i
		}
	}
	return -1
}

// Keys returns a copy of the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates entries in insertion order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a copy of the map. Values are copied with clone when it is
// non-nil, otherwise by assignment.
func (m *Map[K, V]) Clone(clone func(V) V) *Map[K, V] {
	out := New[K, V](m.Len())
	for k, v := range m.All() {
		if clone != nil {
			v = clone(v)
		}
		out.Set(k, v)
	}
	return out
}
