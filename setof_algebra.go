package micromap

// IsDisjoint reports whether s and other have no element in common.
// Only the smaller set is scanned.
func (s *SetOf[T]) IsDisjoint(other *SetOf[T]) bool {
	small, large := s, other
	if small.Size() > large.Size() {
		small, large = large, small
	}
	disjoint := true
	small.Range(func(item T) bool {
		disjoint = !large.Has(item)
		return disjoint
	})
	return disjoint
}

// IsSubset reports whether every element of s is in other.
func (s *SetOf[T]) IsSubset(other *SetOf[T]) bool {
	if s.Size() > other.Size() {
		return false
	}
	subset := true
	s.Range(func(item T) bool {
		subset = other.Has(item)
		return subset
	})
	return subset
}

// IsSuperset reports whether every element of other is in s.
func (s *SetOf[T]) IsSuperset(other *SetOf[T]) bool {
	return other.IsSubset(s)
}

// derive returns an empty set with the capacity and options of s.
func (s *SetOf[T]) derive() *SetOf[T] {
	return NewSetOf[T](s.Cap(), s.options()...)
}

// Union returns a new set, with the capacity of s, holding the elements
// of s followed by the elements of other that s lacks. It panics with a
// *CapacityError if they do not fit.
func (s *SetOf[T]) Union(other *SetOf[T]) *SetOf[T] {
	u := s.Clone()
	other.Range(func(item T) bool {
		u.Add(item)
		return true
	})
	return u
}

// Intersection returns a new set, with the capacity of s, holding the
// elements of s that are also in other, in the order of s.
func (s *SetOf[T]) Intersection(other *SetOf[T]) *SetOf[T] {
	r := s.derive()
	s.Range(func(item T) bool {
		if other.Has(item) {
			r.Add(item)
		}
		return true
	})
	return r
}

// Difference returns a new set, with the capacity of s, holding the
// elements of s that are not in other, in the order of s.
func (s *SetOf[T]) Difference(other *SetOf[T]) *SetOf[T] {
	r := s.derive()
	s.Range(func(item T) bool {
		if !other.Has(item) {
			r.Add(item)
		}
		return true
	})
	return r
}

// SymmetricDifference returns a new set, with the capacity of s, holding
// the elements that are in exactly one of s and other: first those of s,
// then those of other. It panics with a *CapacityError if they do not
// fit.
func (s *SetOf[T]) SymmetricDifference(other *SetOf[T]) *SetOf[T] {
	r := s.Difference(other)
	other.Range(func(item T) bool {
		if !s.Has(item) {
			r.Add(item)
		}
		return true
	})
	return r
}
