package bench

import (
	"fmt"
)

// sentinel is the value of key 0, the one pair that survives each round.
const sentinel = 42

// Eval runs rounds of the small-map workload against m and returns the
// accumulated sentinel values, which the caller keeps so the work is not
// optimized away.
//
// Each round clears the map, stores the sentinel, fills keys 1 through
// capacity-2 while reading every one back, removes them again and finally
// looks the sentinel up by value. m must hold at least capacity-1 pairs.
func Eval(m Mapper, rounds, capacity int) (int64, error) {
	var sum int64
	for range rounds {
		m.Clear()
		m.Insert(0, sentinel)
		for i := 1; i < capacity-1; i++ {
			m.Insert(uint32(i), int64(i))
			if v, ok := m.Get(uint32(i)); !ok || v != int64(i) {
				return sum, fmt.Errorf("bench: Get(%d) = %d, %v after insert", i, v, ok)
			}
		}
		for i := 1; i < capacity-1; i++ {
			m.Remove(uint32(i))
		}
		if _, ok := m.Find(func(_ uint32, v int64) bool { return v == 0 }); ok {
			m.Clear()
		}
		v, ok := m.Find(func(_ uint32, v int64) bool { return v == sentinel })
		if !ok {
			return sum, fmt.Errorf("bench: sentinel lost at capacity %d", capacity)
		}
		sum += v
	}
	return sum, nil
}
