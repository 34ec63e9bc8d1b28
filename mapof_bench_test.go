package micromap

import (
	"strconv"
	"testing"
)

var benchSizes = []int{1, 4, 8, 16, 32}

func BenchmarkMapOfLoad(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			benchmarkMapOfLoad(b, testData[:n])
		})
	}
}

func benchmarkMapOfLoad(b *testing.B, data []string) {
	b.ReportAllocs()
	m := NewMapOf[string, int](len(data))
	for i := range data {
		m.LoadOrStore(data[i], i)
	}
	b.ResetTimer()
	i := 0
	for range b.N {
		_, _ = m.Load(data[i])
		i++
		if i >= len(data) {
			i = 0
		}
	}
}

func BenchmarkGoMapLoad(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			data := testData[:n]
			m := make(map[string]int, n)
			for i := range data {
				m[data[i]] = i
			}
			b.ResetTimer()
			i := 0
			for range b.N {
				_ = m[data[i]]
				i++
				if i >= len(data) {
					i = 0
				}
			}
		})
	}
}

func BenchmarkMapOfStoreDelete(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			benchmarkMapOfStoreDelete(b, testDataInt[:n])
		})
		b.Run(strconv.Itoa(n)+"/ordered", func(b *testing.B) {
			benchmarkMapOfStoreDelete(b, testDataInt[:n], WithOrderedDelete())
		})
	}
}

func benchmarkMapOfStoreDelete(b *testing.B, data []int, options ...func(*MapConfig)) {
	b.ReportAllocs()
	storage := make([]EntryOf[int, int], len(data))
	m := NewMapOfWithStorage(storage, options...)
	b.ResetTimer()
	for range b.N {
		for _, k := range data {
			m.Store(k, k)
		}
		for _, k := range data {
			m.Delete(k)
		}
	}
}

func BenchmarkMapOfEntry(b *testing.B) {
	b.ReportAllocs()
	m := NewMapOf[int, int](len(testDataIntSmall))
	b.ResetTimer()
	i := 0
	for range b.N {
		*m.Entry(testDataIntSmall[i]).OrZero() += 1
		i++
		if i >= len(testDataIntSmall) {
			i = 0
		}
	}
}

func BenchmarkMapOfRange(b *testing.B) {
	b.ReportAllocs()
	m := NewMapOf[int, int](len(testDataInt))
	for _, k := range testDataInt {
		m.Store(k, k)
	}
	b.ResetTimer()
	for range b.N {
		sum := 0
		m.Range(func(_, v int) bool {
			sum += v
			return true
		})
		_ = sum
	}
}
