package micromap

// CursorOf is a view of one key's slot in a MapOf, obtained with
// MapOf.Entry. It remembers where the key was found (or that it was not
// found) so that a following read, update or insert needs no second
// scan.
//
// A cursor is only valid until the map's set of keys changes. Any add,
// delete or clear performed on the map, including one made through the
// cursor itself, makes it stale, and using a stale cursor panics.
// Updating the value of the cursor's own key keeps it valid.
// Store is the exception: it returns a fresh cursor for the key.
type CursorOf[K comparable, V any] struct {
	m     *MapOf[K, V]
	key   K
	index int
	gen   uint64
}

// Entry looks key up once and returns a cursor on it.
//
//	m.Entry("hits").AndModify(func(v *int) { *v++ }).OrStore(1)
func (m *MapOf[K, V]) Entry(key K) CursorOf[K, V] {
	return CursorOf[K, V]{m: m, key: key, index: m.index(key), gen: m.gen}
}

func (c CursorOf[K, V]) check() {
	if c.m.gen != c.gen {
		panic(errStaleCursor)
	}
}

// Key returns the key the cursor was created for.
func (c CursorOf[K, V]) Key() K {
	return c.key
}

// Occupied reports whether the key is present.
func (c CursorOf[K, V]) Occupied() bool {
	c.check()
	return c.index >= 0
}

// Load returns the value of an occupied cursor.
func (c CursorOf[K, V]) Load() (value V, ok bool) {
	c.check()
	if c.index < 0 {
		return
	}
	return c.m.slots[c.index].Value, true
}

// Ptr returns a pointer to the value of an occupied cursor, or nil.
func (c CursorOf[K, V]) Ptr() *V {
	c.check()
	if c.index < 0 {
		return nil
	}
	return &c.m.slots[c.index].Value
}

// Swap replaces the value and returns the previous one. On a vacant
// cursor it inserts the pair, which consumes the cursor, and panics
// with a *CapacityError if the map is full.
func (c CursorOf[K, V]) Swap(value V) (previous V, loaded bool) {
	c.check()
	if c.index < 0 {
		c.m.push(c.key, value)
		return
	}
	e := &c.m.slots[c.index]
	previous, e.Value = e.Value, value
	return previous, true
}

// Store sets the value for the key, inserting it if vacant, and returns
// an occupied cursor on it.
func (c CursorOf[K, V]) Store(value V) CursorOf[K, V] {
	c.check()
	if c.index < 0 {
		c.index = c.m.push(c.key, value)
		c.gen = c.m.gen
		return c
	}
	c.m.slots[c.index].Value = value
	return c
}

// Delete removes the pair of an occupied cursor and returns its value.
// The cursor is consumed.
func (c CursorOf[K, V]) Delete() (value V, loaded bool) {
	c.check()
	if c.index < 0 {
		return
	}
	return c.m.removeAt(c.index).Value, true
}

// OrStore returns a pointer to the existing value, or inserts value and
// returns a pointer to it. Inserting into a full map panics with a
// *CapacityError.
func (c CursorOf[K, V]) OrStore(value V) *V {
	c.check()
	if c.index < 0 {
		c.index = c.m.push(c.key, value)
	}
	return &c.m.slots[c.index].Value
}

// OrStoreFn is OrStore with a value computed only when the key is vacant.
// valueFn is not called when the map is full.
func (c CursorOf[K, V]) OrStoreFn(valueFn func() V) *V {
	c.check()
	if c.index < 0 {
		c.m.mustHaveRoom()
		c.index = c.m.push(c.key, valueFn())
	}
	return &c.m.slots[c.index].Value
}

// OrStoreFnKey is OrStoreFn with a value computed from the key.
func (c CursorOf[K, V]) OrStoreFnKey(valueFn func(key K) V) *V {
	c.check()
	if c.index < 0 {
		c.m.mustHaveRoom()
		c.index = c.m.push(c.key, valueFn(c.key))
	}
	return &c.m.slots[c.index].Value
}

// OrZero is OrStore with the zero value of V.
func (c CursorOf[K, V]) OrZero() *V {
	var zero V
	return c.OrStore(zero)
}

// AndModify calls fn with the value of an occupied cursor and returns
// the cursor unchanged; it does nothing on a vacant one.
func (c CursorOf[K, V]) AndModify(fn func(value *V)) CursorOf[K, V] {
	c.check()
	if c.index >= 0 {
		fn(&c.m.slots[c.index].Value)
		c.check()
	}
	return c
}
