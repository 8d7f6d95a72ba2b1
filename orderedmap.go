package asciify

import (
	"sync"
)

// orderedMap is a registry that remembers insertion order, so styles and
// effects list in the order they were declared.
type orderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
	mu     sync.RWMutex
}

// newOrderedMap creates an empty orderedMap.
func newOrderedMap[K comparable, V any]() *orderedMap[K, V] {
	return &orderedMap[K, V]{
		values: make(map[K]V),
	}
}

// Set adds a key-value pair, keeping the original position of an
// existing key.
func (om *orderedMap[K, V]) Set(key K, value V) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if _, exists := om.values[key]; !exists {
		om.keys = append(om.keys, key)
	}
	om.values[key] = value
}

// Get retrieves a value by key.
func (om *orderedMap[K, V]) Get(key K) (V, bool) {
	om.mu.RLock()
	defer om.mu.RUnlock()

	val, exists := om.values[key]
	return val, exists
}

// Keys returns a copy of the keys in insertion order.
func (om *orderedMap[K, V]) Keys() []K {
	om.mu.RLock()
	defer om.mu.RUnlock()

	return append([]K(nil), om.keys...)
}

// Len returns the number of elements in the map.
func (om *orderedMap[K, V]) Len() int {
	om.mu.RLock()
	defer om.mu.RUnlock()

	return len(om.keys)
}
