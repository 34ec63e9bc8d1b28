//go:build !micromap_opt_noserde

package micromap

import (
	"encoding/json"
	"fmt"
)

var (
	jsonMarshal   func(v any) ([]byte, error)
	jsonUnmarshal func(data []byte, v any) error
)

// SetDefaultJSONMarshal sets the default JSON serialization and deserialization functions.
// If not set, the standard library is used by default.
func SetDefaultJSONMarshal(marshal func(v any) ([]byte, error), unmarshal func(data []byte, v any) error) {
	jsonMarshal, jsonUnmarshal = marshal, unmarshal
}

func marshalJSON(v any) ([]byte, error) {
	if jsonMarshal != nil {
		return jsonMarshal(v)
	}
	return json.Marshal(v)
}

func unmarshalJSON(data []byte, v any) error {
	if jsonUnmarshal != nil {
		return jsonUnmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}

// MarshalJSON JSON serialization, as an object of the map's pairs.
func (m *MapOf[K, V]) MarshalJSON() ([]byte, error) {
	return marshalJSON(m.ToMap())
}

// UnmarshalJSON JSON deserialization. The receiver keeps its capacity
// and is replaced as a whole; an object with more keys than Cap is
// rejected with an error matching ErrCapacityExceeded and leaves the
// receiver untouched.
func (m *MapOf[K, V]) UnmarshalJSON(data []byte) error {
	var a map[K]V
	if err := unmarshalJSON(data, &a); err != nil {
		return err
	}
	if len(a) > m.Cap() {
		return fmt.Errorf("micromap: decoding %d pairs: %w", len(a), &CapacityError{Capacity: m.Cap()})
	}
	m.Clear()
	for k, v := range a {
		m.Store(k, v)
	}
	return nil
}
