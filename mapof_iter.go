package micromap

// Iteration follows the current slot order, which is insertion order
// until the first delete. Every call starts a fresh traversal.
//
// Adding, deleting or clearing keys while a traversal is in progress
// panics on the next step. Replacing the value of an existing key is
// allowed.

// RangePtr calls yield for every pair with a pointer to the stored
// value, so the loop body may update values in place.
func (m *MapOf[K, V]) RangePtr(yield func(key K, value *V) bool) {
	gen := m.gen
	for i := 0; i < m.size; i++ {
		if !yield(m.slots[i].Key, &m.slots[i].Value) {
			return
		}
		if m.gen != gen {
			panic(errModifiedInRange)
		}
	}
}

// Range compatible with `sync.Map`.
func (m *MapOf[K, V]) Range(yield func(key K, value V) bool) {
	gen := m.gen
	for i := 0; i < m.size; i++ {
		if !yield(m.slots[i].Key, m.slots[i].Value) {
			return
		}
		if m.gen != gen {
			panic(errModifiedInRange)
		}
	}
}

// RangeKeys to iterate over all keys
func (m *MapOf[K, V]) RangeKeys(yield func(key K) bool) {
	m.Range(func(k K, _ V) bool {
		return yield(k)
	})
}

// RangeValues to iterate over all values
func (m *MapOf[K, V]) RangeValues(yield func(value V) bool) {
	m.Range(func(_ K, v V) bool {
		return yield(v)
	})
}

// All compatible with `sync.Map`.
func (m *MapOf[K, V]) All() func(yield func(K, V) bool) {
	return m.Range
}

// AllPtr is the iterator version of RangePtr.
func (m *MapOf[K, V]) AllPtr() func(yield func(K, *V) bool) {
	return m.RangePtr
}

// Keys is the iterator version for iterating over all keys.
func (m *MapOf[K, V]) Keys() func(yield func(K) bool) {
	return m.RangeKeys
}

// Values is the iterator version for iterating over all values.
func (m *MapOf[K, V]) Values() func(yield func(V) bool) {
	return m.RangeValues
}

// Drain returns an iterator that yields every pair and empties the map
// when the loop ends, whether it ran to completion or stopped early.
// The map is not touched until the iterator is ranged over.
//
//	for k, v := range m.Drain() {
//		process(k, v)
//	}
//	// m.IsZero() == true
func (m *MapOf[K, V]) Drain() func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		defer m.Clear()
		gen := m.gen
		for i := 0; i < m.size; i++ {
			e := m.slots[i]
			if !yield(e.Key, e.Value) {
				return
			}
			if m.gen != gen {
				panic(errModifiedInRange)
			}
		}
	}
}
