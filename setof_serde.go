//go:build !micromap_opt_noserde

package micromap

import (
	"fmt"
)

// MarshalJSON encodes the set as a JSON array in slot order.
func (s *SetOf[T]) MarshalJSON() ([]byte, error) {
	return marshalJSON(s.ToSlice())
}

// UnmarshalJSON decodes a JSON array. Arrays longer than Cap are
// rejected with an error matching ErrCapacityExceeded; on any error the
// receiver is left untouched.
func (s *SetOf[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := unmarshalJSON(data, &items); err != nil {
		return err
	}
	if len(items) > s.Cap() {
		return fmt.Errorf("micromap: decoding %d items: %w", len(items), &CapacityError{Capacity: s.Cap()})
	}
	s.Clear()
	s.Extend(items...)
	return nil
}

// MarshalCBOR encodes the set as a CBOR array in slot order.
func (s *SetOf[T]) MarshalCBOR() ([]byte, error) {
	return cborEncMode.Marshal(s.ToSlice())
}

// UnmarshalCBOR decodes what MarshalCBOR produces, with the same
// capacity rule as UnmarshalJSON.
func (s *SetOf[T]) UnmarshalCBOR(data []byte) error {
	raw, err := decodeCBORArray(data, s.Cap())
	if err != nil {
		return err
	}
	items := make([]T, len(raw))
	for i, r := range raw {
		if err := cborDecMode.Unmarshal(r, &items[i]); err != nil {
			return fmt.Errorf("micromap: decoding item %d: %w", i, err)
		}
	}
	s.Clear()
	s.Extend(items...)
	return nil
}
