package micromap

import (
	"fmt"
	"strings"
	"unsafe"
)

// MapStats is MapOf statistics.
//
// Notes:
//   - map statistics are intended to be used for diagnostic
//     purposes, not for production code. This means that breaking changes
//     may be introduced into this struct even between minor releases.
type MapStats struct {
	// Capacity is the fixed number of slots.
	Capacity int
	// Size is the number of occupied slots.
	Size int
	// Free is Capacity - Size.
	Free int
	// EntrySize is the size of one slot in bytes.
	EntrySize uintptr
	// StorageBytes is the size of the whole slot storage in bytes.
	StorageBytes uintptr
	// CacheLines is the number of CacheLineSize lines the slot storage
	// spans, rounded up.
	CacheLines int
	// OrderedDelete reports whether delete preserves slot order.
	OrderedDelete bool
	// Generation is the structural modification counter.
	Generation uint64
}

// Stats returns statistics for the MapOf. Just like other map
// methods, this one is not thread-safe.
func (m *MapOf[K, V]) Stats() *MapStats {
	entrySize := unsafe.Sizeof(EntryOf[K, V]{})
	storage := entrySize * uintptr(len(m.slots))
	return &MapStats{
		Capacity:      len(m.slots),
		Size:          m.size,
		Free:          len(m.slots) - m.size,
		EntrySize:     entrySize,
		StorageBytes:  storage,
		CacheLines:    int((storage + CacheLineSize - 1) / CacheLineSize),
		OrderedDelete: m.ordered,
		Generation:    m.gen,
	}
}

// ToString returns string representation of map stats.
func (s *MapStats) ToString() string {
	var sb strings.Builder
	sb.WriteString("MapStats{\n")
	sb.WriteString(fmt.Sprintf("Capacity:      %d\n", s.Capacity))
	sb.WriteString(fmt.Sprintf("Size:          %d\n", s.Size))
	sb.WriteString(fmt.Sprintf("Free:          %d\n", s.Free))
	sb.WriteString(fmt.Sprintf("EntrySize:     %d\n", s.EntrySize))
	sb.WriteString(fmt.Sprintf("StorageBytes:  %d\n", s.StorageBytes))
	sb.WriteString(fmt.Sprintf("CacheLines:    %d\n", s.CacheLines))
	sb.WriteString(fmt.Sprintf("OrderedDelete: %t\n", s.OrderedDelete))
	sb.WriteString(fmt.Sprintf("Generation:    %d\n", s.Generation))
	sb.WriteString("}\n")
	return sb.String()
}

// String implements fmt.Stringer.
func (s *MapStats) String() string {
	return s.ToString()
}
