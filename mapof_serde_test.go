//go:build !micromap_opt_noserde

package micromap

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
)

func TestMapOfJSON(t *testing.T) {
	m := NewMapOf[string, int](4)
	m.Store("a", 1)
	m.Store("b", 2)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1,"b":2}`, string(data))

	got := NewMapOf[string, int](2)
	require.NoError(t, json.Unmarshal(data, got))
	require.True(t, Equal(m, got))
	require.Equal(t, 2, got.Cap(), "decoding keeps the receiver's capacity")
}

func TestMapOfJSON_Overflow(t *testing.T) {
	m := NewMapOf[string, int](2)
	m.Store("keep", 1)
	err := json.Unmarshal([]byte(`{"a":1,"b":2,"c":3}`), m)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	require.Equal(t, map[string]int{"keep": 1}, m.ToMap(), "receiver must be untouched")

	err = json.Unmarshal([]byte(`{"a":"x"}`), m)
	require.Error(t, err)
	require.Equal(t, map[string]int{"keep": 1}, m.ToMap())
}

func TestMapOfJSON_StructField(t *testing.T) {
	type doc struct {
		Counts *MapOf[string, int] `json:"counts"`
	}
	in := doc{Counts: NewMapOfFrom(3, map[string]int{"x": 1})}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.JSONEq(t, `{"counts":{"x":1}}`, string(data))

	out := doc{Counts: NewMapOf[string, int](3)}
	require.NoError(t, json.Unmarshal(data, &out))
	require.True(t, Equal(in.Counts, out.Counts))

	// a nil field decodes into a zero map that only accepts empty input
	var zero doc
	require.NoError(t, json.Unmarshal([]byte(`{"counts":{}}`), &zero))
	require.True(t, zero.Counts.IsZero())
	require.ErrorIs(t, json.Unmarshal(data, &zero), ErrCapacityExceeded)
}

func TestMapOfJSON_CustomCodec(t *testing.T) {
	marshals, unmarshals := 0, 0
	SetDefaultJSONMarshal(
		func(v any) ([]byte, error) { marshals++; return json.Marshal(v) },
		func(data []byte, v any) error { unmarshals++; return json.Unmarshal(data, v) },
	)
	defer SetDefaultJSONMarshal(nil, nil)

	m := NewMapOfFrom(1, map[int]int{1: 2})
	data, err := m.MarshalJSON()
	require.NoError(t, err)
	require.NoError(t, m.UnmarshalJSON(data))
	require.Equal(t, 1, marshals)
	require.Equal(t, 1, unmarshals)
}

func TestMapOfCBOR(t *testing.T) {
	for _, ordered := range []bool{false, true} {
		var options []func(*MapConfig)
		if ordered {
			options = append(options, WithOrderedDelete())
		}
		m := NewMapOf[string, int](4, options...)
		m.Store("a", 1)
		m.Store("b", 2)
		m.Store("c", 3)
		m.Delete("a")

		data, err := cbor.Marshal(m)
		require.NoError(t, err)

		got := NewMapOf[string, int](4)
		require.NoError(t, cbor.Unmarshal(data, got))
		require.True(t, Equal(m, got))
		require.Equal(t, keysOf(m), keysOf(got), "slot order survives a round trip")
	}
}

func TestMapOfCBOR_Wire(t *testing.T) {
	m := NewMapOf[int, string](2)
	m.Store(1, "a")
	data, err := m.MarshalCBOR()
	require.NoError(t, err)
	// array(1) [ array(2) [ 1, "a" ] ]
	require.Equal(t, []byte{0x81, 0x82, 0x01, 0x61, 'a'}, data)

	empty, err := NewMapOf[int, string](0).MarshalCBOR()
	require.NoError(t, err)
	require.Equal(t, []byte{0x80}, empty)
}

func TestMapOfCBOR_Overflow(t *testing.T) {
	src := NewMapOfFrom(3, map[int]int{1: 1, 2: 2, 3: 3})
	data, err := src.MarshalCBOR()
	require.NoError(t, err)

	m := NewMapOf[int, int](2)
	m.Store(9, 9)
	err = m.UnmarshalCBOR(data)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	var ce *CapacityError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, 2, ce.Capacity)
	require.Equal(t, map[int]int{9: 9}, m.ToMap(), "receiver must be untouched")

	require.Error(t, m.UnmarshalCBOR([]byte{0x81, 0x82, 0x01}))
	require.Error(t, m.UnmarshalCBOR([]byte{0x81, 0x61, 'x'}))
	require.Equal(t, map[int]int{9: 9}, m.ToMap())
}

func TestMapOfCBOR_OversizedHeader(t *testing.T) {
	data, err := cbor.Marshal(make([]int, 100000))
	require.NoError(t, err)

	m := NewMapOf[int, int](2)
	m.Store(7, 7)
	allocs := testing.AllocsPerRun(10, func() {
		if err := m.UnmarshalCBOR(data); !errors.Is(err, ErrCapacityExceeded) {
			t.Fatalf("unexpected error: %v", err)
		}
	})
	require.LessOrEqual(t, allocs, float64(16), "oversized input must be rejected from its header")
	require.Equal(t, map[int]int{7: 7}, m.ToMap())

	// each header width, with no elements behind it
	for _, head := range [][]byte{
		{0x83},
		{0x98, 0x03},
		{0x99, 0x01, 0x00},
		{0x9a, 0x00, 0x01, 0x00, 0x00},
		{0x9b, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	} {
		err := m.UnmarshalCBOR(head)
		require.ErrorIs(t, err, ErrCapacityExceeded, "% x", head)
	}
	// a count within capacity still needs its elements
	err = m.UnmarshalCBOR([]byte{0x98, 0x02})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrCapacityExceeded)

	// indefinite length arrays carry no count and are not accepted
	require.Error(t, m.UnmarshalCBOR([]byte{0x9f, 0xff}))
	require.Equal(t, map[int]int{7: 7}, m.ToMap())
}

func TestSetOfCBOR_OversizedHeader(t *testing.T) {
	data, err := cbor.Marshal(make([]string, 50000))
	require.NoError(t, err)
	s := NewSetOfFrom(1, "keep")
	allocs := testing.AllocsPerRun(10, func() {
		if err := s.UnmarshalCBOR(data); !errors.Is(err, ErrCapacityExceeded) {
			t.Fatalf("unexpected error: %v", err)
		}
	})
	require.LessOrEqual(t, allocs, float64(16))
	require.Equal(t, []string{"keep"}, s.ToSlice())
}

func TestSetOfJSON(t *testing.T) {
	s := NewSetOfFrom(3, "x", "y")
	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.JSONEq(t, `["x","y"]`, string(data))

	got := NewSetOf[string](2)
	require.NoError(t, json.Unmarshal(data, got))
	require.True(t, s.Equal(got))

	require.ErrorIs(t, json.Unmarshal([]byte(`["a","b","c"]`), got), ErrCapacityExceeded)
	require.True(t, s.Equal(got))
}

func TestSetOfCBOR(t *testing.T) {
	s := NewSetOfFrom(3, 10, 20, 30)
	data, err := cbor.Marshal(s)
	require.NoError(t, err)

	got := NewSetOf[int](3)
	require.NoError(t, cbor.Unmarshal(data, got))
	require.Equal(t, s.ToSlice(), got.ToSlice())

	small := NewSetOf[int](2)
	require.ErrorIs(t, small.UnmarshalCBOR(data), ErrCapacityExceeded)
	require.True(t, small.IsZero())
}
