package micromap

import (
	"fmt"
	"strings"
)

// SetOf is a fixed-capacity set of distinct elements backed by a
// MapOf[T, struct{}]. It inherits the map's behavior: linear-scan
// membership, no allocation after construction, slot-order iteration,
// and a panicking Add when a new element does not fit.
type SetOf[T comparable] struct {
	m MapOf[T, struct{}]
}

// NewSetOf creates a new SetOf able to hold capacity elements.
// It accepts the same options as NewMapOf.
func NewSetOf[T comparable](capacity int, options ...func(*MapConfig)) *SetOf[T] {
	s := &SetOf[T]{}
	s.m.Init(capacity, options...)
	return s
}

// NewSetOfWithStorage creates a SetOf over caller-provided storage.
func NewSetOfWithStorage[T comparable](storage []EntryOf[T, struct{}], options ...func(*MapConfig)) *SetOf[T] {
	s := &SetOf[T]{}
	s.m.InitWithStorage(storage, options...)
	return s
}

// NewSetOfFrom creates a SetOf of the given capacity holding items.
// Duplicates are collapsed. It panics with a *CapacityError when the
// distinct items do not fit.
func NewSetOfFrom[T comparable](capacity int, items ...T) *SetOf[T] {
	s := NewSetOf[T](capacity)
	s.Extend(items...)
	return s
}

// Init initializes the SetOf in place, like MapOf.Init.
func (s *SetOf[T]) Init(capacity int, options ...func(*MapConfig)) {
	s.m.Init(capacity, options...)
}

// InitWithStorage initializes the SetOf in place over storage, like
// MapOf.InitWithStorage.
func (s *SetOf[T]) InitWithStorage(storage []EntryOf[T, struct{}], options ...func(*MapConfig)) {
	s.m.InitWithStorage(storage, options...)
}

// Add inserts item and reports whether it was not already present.
// It panics with a *CapacityError if item is new and the set is full.
func (s *SetOf[T]) Add(item T) bool {
	_, loaded := s.m.Swap(item, struct{}{})
	return !loaded
}

// TryAdd is Add that returns an error matching ErrCapacityExceeded
// instead of panicking.
func (s *SetOf[T]) TryAdd(item T) (bool, error) {
	_, loaded, err := s.m.TryStore(item, struct{}{})
	if err != nil {
		return false, err
	}
	return !loaded, nil
}

// Extend adds every item, panicking like Add when a new one does not fit.
func (s *SetOf[T]) Extend(items ...T) {
	for _, item := range items {
		s.m.Store(item, struct{}{})
	}
}

// Remove deletes item and reports whether it was present.
func (s *SetOf[T]) Remove(item T) bool {
	_, loaded := s.m.LoadAndDelete(item)
	return loaded
}

// Has reports whether item is in the set.
func (s *SetOf[T]) Has(item T) bool {
	return s.m.HasKey(item)
}

// Load returns the stored element equal to item.
func (s *SetOf[T]) Load(item T) (stored T, ok bool) {
	e, ok := s.m.LoadEntry(item)
	return e.Key, ok
}

// Take removes the element equal to item and returns the one that was
// stored.
func (s *SetOf[T]) Take(item T) (stored T, ok bool) {
	e, ok := s.m.LoadAndDeleteEntry(item)
	return e.Key, ok
}

// Replace stores item in place of an equal element and returns the
// element it replaced. The replacement moves to the end of slot order.
// When no equal element is present, item is added and replaced is
// false; that add panics with a *CapacityError if the set is full.
func (s *SetOf[T]) Replace(item T) (previous T, replaced bool) {
	if e, ok := s.m.LoadAndDeleteEntry(item); ok {
		previous, replaced = e.Key, true
	}
	s.m.Store(item, struct{}{})
	return previous, replaced
}

// Size returns the number of elements.
func (s *SetOf[T]) Size() int {
	return s.m.Size()
}

// IsZero reports whether the set is empty.
func (s *SetOf[T]) IsZero() bool {
	return s.m.IsZero()
}

// Cap returns the fixed capacity of the set.
func (s *SetOf[T]) Cap() int {
	return s.m.Cap()
}

// IsFull reports whether adding a new element would panic.
func (s *SetOf[T]) IsFull() bool {
	return s.m.IsFull()
}

// Clear removes all elements.
func (s *SetOf[T]) Clear() {
	s.m.Clear()
}

// Retain keeps only the elements for which keep returns true.
func (s *SetOf[T]) Retain(keep func(item T) bool) {
	s.m.Retain(func(item T, _ *struct{}) bool {
		return keep(item)
	})
}

// Range calls yield for each element in slot order.
func (s *SetOf[T]) Range(yield func(item T) bool) {
	s.m.RangeKeys(yield)
}

// All is the iterator version of Range.
func (s *SetOf[T]) All() func(yield func(T) bool) {
	return s.Range
}

// Drain returns an iterator that yields every element and empties the
// set when the loop ends.
func (s *SetOf[T]) Drain() func(yield func(T) bool) {
	drain := s.m.Drain()
	return func(yield func(T) bool) {
		drain(func(item T, _ struct{}) bool {
			return yield(item)
		})
	}
}

// ToSlice returns the elements in slot order.
func (s *SetOf[T]) ToSlice() []T {
	items := make([]T, 0, s.m.Size())
	s.m.RangeKeys(func(item T) bool {
		items = append(items, item)
		return true
	})
	return items
}

// options returns the options s was initialized with.
func (s *SetOf[T]) options() []func(*MapConfig) {
	if s.m.OrderedDelete() {
		return []func(*MapConfig){WithOrderedDelete()}
	}
	return nil
}

// Clone returns an independent copy with the same capacity and options.
func (s *SetOf[T]) Clone() *SetOf[T] {
	c := NewSetOf[T](s.Cap(), s.options()...)
	s.m.RangeKeys(func(item T) bool {
		c.m.Store(item, struct{}{})
		return true
	})
	return c
}

// Equal reports whether both sets hold the same elements, regardless of
// order and capacity.
func (s *SetOf[T]) Equal(other *SetOf[T]) bool {
	return s.Size() == other.Size() && s.IsSubset(other)
}

// String implement the formatting output interface fmt.Stringer.
func (s *SetOf[T]) String() string {
	var sb strings.Builder
	sb.WriteString("SetOf[")
	first := true
	s.m.RangeKeys(func(item T) bool {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprint(&sb, item)
		return true
	})
	sb.WriteByte(']')
	return sb.String()
}
