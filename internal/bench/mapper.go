// Package bench compares micromap.MapOf with other map implementations
// on the same small-map workload and renders the timings as a table.
package bench

import (
	"fmt"
	"slices"

	"github.com/google/btree"

	"github.com/llxisdsh/micromap"
)

// Mapper is the subset of map behavior the workload needs.
type Mapper interface {
	Clear()
	Insert(key uint32, value int64)
	Get(key uint32) (int64, bool)
	Remove(key uint32)
	// Find returns the value of the first pair, in the map's own
	// iteration order, that satisfies pred.
	Find(pred func(key uint32, value int64) bool) (int64, bool)
}

// Factory builds an empty Mapper able to hold capacity pairs.
type Factory func(capacity int) Mapper

const (
	ImplMicromap        = "micromap"
	ImplMicromapOrdered = "micromap-ordered"
	ImplGoMap           = "gomap"
	ImplBTree           = "btree"
	ImplSlice           = "slice"
)

// registry is itself a micromap: a handful of names, known up front.
var registry = micromap.NewMapOf[string, Factory](8)

func init() {
	Register(ImplMicromap, func(capacity int) Mapper {
		return &microMapper{m: micromap.NewMapOf[uint32, int64](capacity)}
	})
	Register(ImplMicromapOrdered, func(capacity int) Mapper {
		return &microMapper{m: micromap.NewMapOf[uint32, int64](capacity, micromap.WithOrderedDelete())}
	})
	Register(ImplGoMap, func(capacity int) Mapper {
		return goMapper(make(map[uint32]int64, capacity))
	})
	Register(ImplBTree, func(int) Mapper {
		return &btreeMapper{t: btree.New(btreeDegree)}
	})
	Register(ImplSlice, func(capacity int) Mapper {
		return &sliceMapper{d: make([]micromap.EntryOf[uint32, int64], 0, capacity)}
	})
}

// Register adds or replaces an implementation. It panics when the
// registry is full.
func Register(name string, f Factory) {
	registry.Store(name, f)
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := registry.Load(name)
	if !ok {
		return nil, fmt.Errorf("bench: unknown implementation %q (have %v)", name, Names())
	}
	return f, nil
}

// Names returns the registered implementation names, sorted.
func Names() []string {
	names := make([]string, 0, registry.Size())
	for name := range registry.Keys() {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type microMapper struct {
	m *micromap.MapOf[uint32, int64]
}

func (p *microMapper) Clear()                         { p.m.Clear() }
func (p *microMapper) Insert(key uint32, value int64) { p.m.Store(key, value) }
func (p *microMapper) Get(key uint32) (int64, bool)   { return p.m.Load(key) }
func (p *microMapper) Remove(key uint32)              { p.m.Delete(key) }

func (p *microMapper) Find(pred func(uint32, int64) bool) (v int64, ok bool) {
	p.m.Range(func(key uint32, value int64) bool {
		if pred(key, value) {
			v, ok = value, true
			return false
		}
		return true
	})
	return
}

type goMapper map[uint32]int64

func (p goMapper) Clear()                         { clear(p) }
func (p goMapper) Insert(key uint32, value int64) { p[key] = value }
func (p goMapper) Remove(key uint32)              { delete(p, key) }

func (p goMapper) Get(key uint32) (int64, bool) {
	v, ok := p[key]
	return v, ok
}

func (p goMapper) Find(pred func(uint32, int64) bool) (int64, bool) {
	for k, v := range p {
		if pred(k, v) {
			return v, true
		}
	}
	return 0, false
}

const btreeDegree = 8

type btreeItem struct {
	key   uint32
	value int64
}

func (a btreeItem) Less(than btree.Item) bool {
	return a.key < than.(btreeItem).key
}

// btreeMapper is the ordered-map baseline.
type btreeMapper struct {
	t *btree.BTree
}

func (p *btreeMapper) Clear()                         { p.t.Clear(false) }
func (p *btreeMapper) Insert(key uint32, value int64) { p.t.ReplaceOrInsert(btreeItem{key, value}) }
func (p *btreeMapper) Remove(key uint32)              { p.t.Delete(btreeItem{key: key}) }

func (p *btreeMapper) Get(key uint32) (int64, bool) {
	if it := p.t.Get(btreeItem{key: key}); it != nil {
		return it.(btreeItem).value, true
	}
	return 0, false
}

func (p *btreeMapper) Find(pred func(uint32, int64) bool) (v int64, ok bool) {
	p.t.Ascend(func(it btree.Item) bool {
		e := it.(btreeItem)
		if pred(e.key, e.value) {
			v, ok = e.value, true
			return false
		}
		return true
	})
	return
}

// sliceMapper is a growable linear-scan map, the usual hand-written
// alternative to a fixed-capacity one.
type sliceMapper struct {
	d []micromap.EntryOf[uint32, int64]
}

func (p *sliceMapper) Clear() { p.d = p.d[:0] }

func (p *sliceMapper) Insert(key uint32, value int64) {
	for i := range p.d {
		if p.d[i].Key == key {
			p.d[i].Value = value
			return
		}
	}
	p.d = append(p.d, micromap.EntryOf[uint32, int64]{Key: key, Value: value})
}

func (p *sliceMapper) Get(key uint32) (int64, bool) {
	for i := range p.d {
		if p.d[i].Key == key {
			return p.d[i].Value, true
		}
	}
	return 0, false
}

func (p *sliceMapper) Remove(key uint32) {
	for i := range p.d {
		if p.d[i].Key == key {
			p.d[i] = p.d[len(p.d)-1]
			p.d = p.d[:len(p.d)-1]
			return
		}
	}
}

func (p *sliceMapper) Find(pred func(uint32, int64) bool) (int64, bool) {
	for _, e := range p.d {
		if pred(e.Key, e.Value) {
			return e.Value, true
		}
	}
	return 0, false
}
