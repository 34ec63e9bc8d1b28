package micromap

import (
	"fmt"
	"strings"
	"unsafe"
)

// MapOf is a fixed-capacity map that keeps all pairs in one contiguous
// slice and finds keys by a linear scan. It does not hash keys at all.
//
// MapOf is meant as a replacement for a Go map[K]V when the number of
// entries is small (roughly 20 or fewer) and its upper bound is known up
// front. In that range, scanning a short run of memory is faster than
// hashing and probing, and the map never allocates after construction.
// With caller-provided storage (see InitWithStorage) it never allocates
// at all.
//
// Key features of micromap.MapOf:
//   - Fixed capacity chosen at construction, never grows.
//   - Occupied slots always form a contiguous prefix of the storage.
//   - Entry cursors allow insert-or-update with a single scan.
//   - Iteration follows the current physical slot order.
//   - Delete repairs the prefix by moving the last pair into the hole
//     (O(1), order not preserved), or by shifting when the map is built
//     with WithOrderedDelete (O(n), order preserved).
//
// Adding a new distinct key to a full map is a programming error and
// panics with a *CapacityError. Use TryStore to get the error instead.
//
// MapOf is not safe for concurrent use. It is exactly as thread-safe as
// a Go map: callers that share it must synchronize externally.
//
// A MapOf must not be copied after first use, because copies share the
// slot storage. Use Clone instead.
type MapOf[K comparable, V any] struct {
	_       noCopy
	slots   []EntryOf[K, V]
	size    int
	gen     uint64
	ordered bool
}

// EntryOf is one slot of a MapOf.
type EntryOf[K comparable, V any] struct {
	Key   K
	Value V
}

// noCopy may be embedded into structs which must not be copied
// after the first use. See https://golang.org/issues/8005#issuecomment-190753527
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// MapConfig defines configurable MapOf options.
type MapConfig struct {
	orderedDelete bool
	cacheLines    int
}

// WithOrderedDelete configures the map to keep the relative order of the
// remaining pairs when a pair is deleted, by shifting every later pair
// down one slot. Without it, Delete moves the last pair into the freed
// slot, which is O(1) but reorders the map.
func WithOrderedDelete() func(*MapConfig) {
	return func(c *MapConfig) {
		c.orderedDelete = true
	}
}

// WithCacheLines raises the capacity of a new map so that its slot
// storage fills at least lines cache lines of CacheLineSize bytes.
// It has no effect on maps built over caller-provided storage.
func WithCacheLines(lines int) func(*MapConfig) {
	return func(c *MapConfig) {
		c.cacheLines = lines
	}
}

func newMapConfig(options []func(*MapConfig)) MapConfig {
	var c MapConfig
	for _, o := range options {
		o(&c)
	}
	return c
}

// LineCapacity returns how many EntryOf[K, V] slots fit in the given
// number of cache lines. Zero-sized entries report zero.
func LineCapacity[K comparable, V any](lines int) int {
	size := unsafe.Sizeof(EntryOf[K, V]{})
	if size == 0 || lines <= 0 {
		return 0
	}
	return int(uintptr(lines) * CacheLineSize / size)
}

// NewMapOf creates a new MapOf able to hold capacity pairs.
// The slot storage is allocated once, here.
//
// Parameters:
//   - capacity: the fixed maximum number of distinct keys
//   - WithOrderedDelete option to preserve order on delete
//   - WithCacheLines option to round the capacity up to whole cache lines
func NewMapOf[K comparable, V any](
	capacity int,
	options ...func(*MapConfig),
) *MapOf[K, V] {
	m := &MapOf[K, V]{}
	m.Init(capacity, options...)
	return m
}

// NewMapOfWithStorage creates a MapOf that uses storage as its slots.
// The capacity is len(storage). The map owns storage from now on; the
// caller must not touch it.
func NewMapOfWithStorage[K comparable, V any](
	storage []EntryOf[K, V],
	options ...func(*MapConfig),
) *MapOf[K, V] {
	m := &MapOf[K, V]{}
	m.InitWithStorage(storage, options...)
	return m
}

// NewMapOfFrom creates a MapOf of the given capacity holding the pairs
// of source. It panics with a *CapacityError if source does not fit.
func NewMapOfFrom[K comparable, V any](
	capacity int,
	source map[K]V,
	options ...func(*MapConfig),
) *MapOf[K, V] {
	m := NewMapOf[K, V](capacity, options...)
	m.FromMap(source)
	return m
}

// Init initializes the MapOf in place with a freshly allocated storage of
// capacity slots, dropping any previous content.
func (m *MapOf[K, V]) Init(capacity int, options ...func(*MapConfig)) {
	if capacity < 0 {
		panic(errNegativeCapacity)
	}
	c := newMapConfig(options)
	if c.cacheLines > 0 {
		capacity = max(capacity, LineCapacity[K, V](c.cacheLines))
	}
	m.init(make([]EntryOf[K, V], capacity), c)
}

// InitWithStorage initializes the MapOf in place over storage, dropping
// any previous content. Nothing is allocated: pass a slice of an array
// declared by the caller to keep the whole map off the heap.
//
// Notes:
//   - The capacity is len(storage); WithCacheLines is ignored.
//   - storage is zeroed.
func (m *MapOf[K, V]) InitWithStorage(storage []EntryOf[K, V], options ...func(*MapConfig)) {
	m.init(storage, newMapConfig(options))
}

func (m *MapOf[K, V]) init(storage []EntryOf[K, V], c MapConfig) {
	clear(storage)
	m.slots = storage
	m.size = 0
	m.gen++
	m.ordered = c.orderedDelete
}

// index returns the slot of key, or -1.
func (m *MapOf[K, V]) index(key K) int {
	for i := range m.slots[:m.size] {
		if m.slots[i].Key == key {
			return i
		}
	}
	return -1
}

// push writes a new pair at the end of the occupied prefix.
// The caller has already checked that key is absent.
func (m *MapOf[K, V]) push(key K, value V) int {
	m.mustHaveRoom()
	i := m.size
	m.slots[i] = EntryOf[K, V]{Key: key, Value: value}
	m.size++
	m.gen++
	return i
}

// mustHaveRoom panics with a *CapacityError when no slot is free.
func (m *MapOf[K, V]) mustHaveRoom() {
	if m.size == len(m.slots) {
		panic(&CapacityError{Capacity: len(m.slots)})
	}
}

// removeAt deletes slot i and repairs the occupied prefix.
func (m *MapOf[K, V]) removeAt(i int) EntryOf[K, V] {
	e := m.slots[i]
	last := m.size - 1
	if m.ordered {
		copy(m.slots[i:last], m.slots[i+1:m.size])
	} else if i != last {
		m.slots[i] = m.slots[last]
	}
	// release whatever the vacated slot referenced
	m.slots[last] = EntryOf[K, V]{}
	m.size = last
	m.gen++
	return e
}

// Load retrieves a value for a key, compatible with `sync.Map`.
func (m *MapOf[K, V]) Load(key K) (value V, ok bool) {
	if i := m.index(key); i >= 0 {
		return m.slots[i].Value, true
	}
	return
}

// LoadPtr returns a pointer to the value stored for key, or nil.
// The pointer stays valid until the next insert of a new key, delete,
// or clear.
func (m *MapOf[K, V]) LoadPtr(key K) *V {
	if i := m.index(key); i >= 0 {
		return &m.slots[i].Value
	}
	return nil
}

// LoadEntry returns the stored key and value for key.
func (m *MapOf[K, V]) LoadEntry(key K) (entry EntryOf[K, V], ok bool) {
	if i := m.index(key); i >= 0 {
		return m.slots[i], true
	}
	return
}

// MustLoad returns the value for key and panics if there is none.
func (m *MapOf[K, V]) MustLoad(key K) V {
	if i := m.index(key); i >= 0 {
		return m.slots[i].Value
	}
	panic(errMissingKey)
}

// Store inserts or updates a key-value pair, compatible with `sync.Map`.
// It panics with a *CapacityError if key is new and the map is full.
func (m *MapOf[K, V]) Store(key K, value V) {
	if i := m.index(key); i >= 0 {
		m.slots[i].Value = value
		return
	}
	m.push(key, value)
}

// Swap stores a key-value pair and returns the previous value if any, compatible with `sync.Map`.
// It panics with a *CapacityError if key is new and the map is full;
// in that case nothing is written.
func (m *MapOf[K, V]) Swap(key K, value V) (previous V, loaded bool) {
	if i := m.index(key); i >= 0 {
		previous, m.slots[i].Value = m.slots[i].Value, value
		return previous, true
	}
	m.push(key, value)
	return
}

// TryStore is Swap that reports a full map as an error matching
// ErrCapacityExceeded instead of panicking. Updating an existing key
// always succeeds, even when the map is full.
func (m *MapOf[K, V]) TryStore(key K, value V) (previous V, loaded bool, err error) {
	if i := m.index(key); i >= 0 {
		previous, m.slots[i].Value = m.slots[i].Value, value
		return previous, true, nil
	}
	if m.size == len(m.slots) {
		return previous, false, &CapacityError{Capacity: len(m.slots)}
	}
	m.push(key, value)
	return
}

// LoadOrStore retrieves an existing value or stores a new one if the key doesn't exist,
// compatible with `sync.Map`.
func (m *MapOf[K, V]) LoadOrStore(key K, value V) (actual V, loaded bool) {
	if i := m.index(key); i >= 0 {
		return m.slots[i].Value, true
	}
	m.push(key, value)
	return value, false
}

// LoadOrStoreFn returns the existing value for the key if
// present. Otherwise, it calls valueFn, stores and returns the result.
// The loaded result is true if the value was loaded, false if stored.
// On a full map it panics without calling valueFn.
func (m *MapOf[K, V]) LoadOrStoreFn(key K, valueFn func() V) (actual V, loaded bool) {
	if i := m.index(key); i >= 0 {
		return m.slots[i].Value, true
	}
	m.mustHaveRoom()
	actual = valueFn()
	m.push(key, actual)
	return actual, false
}

// Delete removes a key-value pair, compatible with `sync.Map`.
func (m *MapOf[K, V]) Delete(key K) {
	if i := m.index(key); i >= 0 {
		m.removeAt(i)
	}
}

// LoadAndDelete retrieves the value for a key and deletes it from the map,
// compatible with `sync.Map`.
func (m *MapOf[K, V]) LoadAndDelete(key K) (value V, loaded bool) {
	if i := m.index(key); i >= 0 {
		return m.removeAt(i).Value, true
	}
	return
}

// LoadAndDeleteEntry removes key and returns the pair that was stored.
func (m *MapOf[K, V]) LoadAndDeleteEntry(key K) (entry EntryOf[K, V], loaded bool) {
	if i := m.index(key); i >= 0 {
		return m.removeAt(i), true
	}
	return
}

// HasKey to check if the key exist
func (m *MapOf[K, V]) HasKey(key K) bool {
	return m.index(key) >= 0
}

// Size returns the number of key-value pairs in the map.
// This is an O(1) operation.
func (m *MapOf[K, V]) Size() int {
	return m.size
}

// IsZero reports whether the map holds no pairs.
func (m *MapOf[K, V]) IsZero() bool {
	return m.size == 0
}

// Cap returns the fixed capacity of the map.
func (m *MapOf[K, V]) Cap() int {
	return len(m.slots)
}

// IsFull reports whether adding a new key would panic.
func (m *MapOf[K, V]) IsFull() bool {
	return m.size == len(m.slots)
}

// OrderedDelete reports whether the map was initialized with
// WithOrderedDelete.
func (m *MapOf[K, V]) OrderedDelete() bool {
	return m.ordered
}

// Clear removes all pairs. The capacity is kept.
func (m *MapOf[K, V]) Clear() {
	clear(m.slots[:m.size])
	m.size = 0
	m.gen++
}

// Retain keeps only the pairs for which keep returns true.
// Every pair present when Retain starts is passed to keep exactly once,
// in slot order; keep may modify the value through the pointer but must
// not add or delete keys.
func (m *MapOf[K, V]) Retain(keep func(key K, value *V) bool) {
	for i := 0; i < m.size; {
		gen := m.gen
		ok := keep(m.slots[i].Key, &m.slots[i].Value)
		if m.gen != gen {
			panic(errModifiedInRange)
		}
		if ok {
			i++
			continue
		}
		// slot i now holds a pair that has not been visited yet
		m.removeAt(i)
	}
}

// ToMap collect all entries and return a map[K]V
func (m *MapOf[K, V]) ToMap() map[K]V {
	a := make(map[K]V, m.size)
	for _, e := range m.slots[:m.size] {
		a[e.Key] = e.Value
	}
	return a
}

// FromMap stores every pair of source. It panics with a *CapacityError
// when a new key does not fit; pairs stored before that stay in the map.
func (m *MapOf[K, V]) FromMap(source map[K]V) {
	for k, v := range source {
		m.Store(k, v)
	}
}

// Clone returns an independent copy with the same capacity, options
// and slot order.
func (m *MapOf[K, V]) Clone() *MapOf[K, V] {
	clone := &MapOf[K, V]{
		slots:   make([]EntryOf[K, V], len(m.slots)),
		size:    m.size,
		ordered: m.ordered,
	}
	copy(clone.slots, m.slots[:m.size])
	return clone
}

// Equal reports whether a and b hold the same pairs, regardless of slot
// order and capacity.
func Equal[K, V comparable](a, b *MapOf[K, V]) bool {
	return EqualFunc(a, b, func(v1, v2 V) bool { return v1 == v2 })
}

// EqualFunc is like Equal, but compares values using eq.
func EqualFunc[K comparable, V1, V2 any](a *MapOf[K, V1], b *MapOf[K, V2], eq func(V1, V2) bool) bool {
	if a.size != b.size {
		return false
	}
	for _, e := range a.slots[:a.size] {
		i := b.index(e.Key)
		if i < 0 || !eq(e.Value, b.slots[i].Value) {
			return false
		}
	}
	return true
}

// String implement the formatting output interface fmt.Stringer.
// Pairs are printed in slot order.
func (m *MapOf[K, V]) String() string {
	var sb strings.Builder
	sb.WriteString("MapOf[")
	for i, e := range m.slots[:m.size] {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, e.Key)
		sb.WriteByte(':')
		fmt.Fprint(&sb, e.Value)
	}
	sb.WriteByte(']')
	return sb.String()
}
