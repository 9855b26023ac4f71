package levelset

import "sync/atomic"

// hashSlot is one entry of the concurrent table. key gates the slot: a
// winning compare-and-swap from openKey to a real key publishes ownership,
// after which the winner (and only the winner) writes vert. Readers that
// only run after the pass-1/pass-2 barrier never race a writer for vert.
type hashSlot struct {
	key  atomic.Uint64
	vert GridVert
}

// HashTable is an open-addressed, fixed-capacity, power-of-two sized table
// keyed by Morton code. Insert is lock-free and safe under any number of
// concurrent writers; Lookup and At are intended to run only after all
// inserts have completed.
type HashTable struct {
	slots []hashSlot
	used  atomic.Uint32
	step  uint32
}

// NewHashTable allocates a table whose capacity is the next power of two at
// least size.
func NewHashTable(size uint32) *HashTable {
	t := &HashTable{
		slots: make([]hashSlot, nextPow2(size)),
		step:  127,
	}
	for i := range t.slots {
		t.slots[i].key.Store(openKey)
	}
	return t
}

func nextPow2(v uint32) uint32 {
	p := uint32(1)
	for p < v {
		p <<= 1
	}
	return p
}

// Size returns the total number of slots in the table.
func (t *HashTable) Size() uint32 { return uint32(len(t.slots)) }

// Entries returns the number of occupied slots.
func (t *HashTable) Entries() uint32 { return t.used.Load() }

// Full reports whether the load factor exceeds one half.
func (t *HashTable) Full() bool { return uint64(t.used.Load())*2 > uint64(t.Size()) }

// Insert stores vert keyed by vert.Key. If a concurrent writer already
// claimed that key, Insert returns without overwriting the existing record.
func (t *HashTable) Insert(vert GridVert) {
	mask := uint64(t.Size() - 1)
	idx := vert.Key & mask
	for {
		slot := &t.slots[idx]
		if slot.key.CompareAndSwap(openKey, vert.Key) {
			t.used.Add(1)
			slot.vert = vert
			return
		}
		if slot.key.Load() == vert.Key {
			return
		}
		idx = (idx + uint64(t.step)) & mask
	}
}

// Lookup probes for key and returns its record, or the empty sentinel
// GridVert if no such record is present.
func (t *HashTable) Lookup(key uint64) GridVert {
	mask := uint64(t.Size() - 1)
	idx := key & mask
	for {
		slot := &t.slots[idx]
		k := slot.key.Load()
		if k == key {
			return slot.vert
		}
		if k == openKey {
			return emptyGridVert()
		}
		idx = (idx + uint64(t.step)) & mask
	}
}

// At returns the record stored directly in slot idx, with no probing, or
// the empty sentinel GridVert if that slot was never claimed by Insert.
func (t *HashTable) At(idx uint32) GridVert {
	if t.slots[idx].key.Load() == openKey {
		return emptyGridVert()
	}
	return t.slots[idx].vert
}
