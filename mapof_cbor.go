//go:build !micromap_opt_noserde

package micromap

import (
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	var err error
	if cborEncMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}
	if cborDecMode, err = (cbor.DecOptions{IndefLength: cbor.IndefLengthForbidden}).DecMode(); err != nil {
		panic(err)
	}
}

// cborPair is one pair on the wire: a two element array [key, value].
type cborPair[K comparable, V any] struct {
	_     struct{} `cbor:",toarray"`
	Key   K
	Value V
}

// cborArrayLen reads the element count from the head of a definite
// length CBOR array. ok is false when data does not start with one; the
// decoder reports the actual problem in that case.
func cborArrayLen(data []byte) (n uint64, ok bool) {
	if len(data) == 0 || data[0]>>5 != 4 {
		return 0, false
	}
	info := data[0] & 0x1f
	switch {
	case info < 24:
		return uint64(info), true
	case info == 24 && len(data) >= 2:
		return uint64(data[1]), true
	case info == 25 && len(data) >= 3:
		return uint64(binary.BigEndian.Uint16(data[1:])), true
	case info == 26 && len(data) >= 5:
		return uint64(binary.BigEndian.Uint32(data[1:])), true
	case info == 27 && len(data) >= 9:
		return binary.BigEndian.Uint64(data[1:]), true
	}
	return 0, false
}

// decodeCBORArray decodes a CBOR array into one raw item per element.
// Arrays longer than capacity are rejected from their header, before
// any element is decoded.
func decodeCBORArray(data []byte, capacity int) ([]cbor.RawMessage, error) {
	if n, ok := cborArrayLen(data); ok && n > uint64(capacity) {
		return nil, fmt.Errorf("micromap: decoding %d items: %w", n, &CapacityError{Capacity: capacity})
	}
	var raw []cbor.RawMessage
	if err := cborDecMode.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw) > capacity {
		return nil, fmt.Errorf("micromap: decoding %d items: %w", len(raw), &CapacityError{Capacity: capacity})
	}
	return raw, nil
}

// MarshalCBOR encodes the map as a CBOR array of [key, value] arrays in
// slot order.
func (m *MapOf[K, V]) MarshalCBOR() ([]byte, error) {
	pairs := make([]cborPair[K, V], 0, m.Size())
	m.Range(func(key K, value V) bool {
		pairs = append(pairs, cborPair[K, V]{Key: key, Value: value})
		return true
	})
	return cborEncMode.Marshal(pairs)
}

// UnmarshalCBOR decodes what MarshalCBOR produces. The receiver keeps
// its capacity and is replaced as a whole. More pairs than Cap are
// rejected with an error matching ErrCapacityExceeded; on any error the
// receiver is left untouched. A repeated key keeps its last value.
func (m *MapOf[K, V]) UnmarshalCBOR(data []byte) error {
	raw, err := decodeCBORArray(data, m.Cap())
	if err != nil {
		return err
	}
	pairs := make([]cborPair[K, V], len(raw))
	for i, r := range raw {
		if err := cborDecMode.Unmarshal(r, &pairs[i]); err != nil {
			return fmt.Errorf("micromap: decoding pair %d: %w", i, err)
		}
	}
	m.Clear()
	for _, p := range pairs {
		m.Store(p.Key, p.Value)
	}
	return nil
}
