package levelset

import (
	"sync"
	"testing"
)

func TestHashTableInsertLookup(t *testing.T) {
	tbl := NewHashTable(16)
	v := GridVert{Key: 5, Distance: 1, EdgeVerts: [7]int32{-1, -1, -1, -1, -1, -1, -1}}
	tbl.Insert(v)
	got := tbl.Lookup(5)
	if got.Key != 5 || got.Distance != 1 {
		t.Fatalf("Lookup(5) = %+v, want %+v", got, v)
	}
	miss := tbl.Lookup(6)
	if miss.Key != openKey {
		t.Fatalf("Lookup(6) = %+v, want open sentinel", miss)
	}
}

func TestHashTableConcurrentInsert(t *testing.T) {
	const n = 20000
	tbl := NewHashTable(2 * n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(key uint64) {
			defer wg.Done()
			tbl.Insert(GridVert{Key: key, Distance: float64(key), EdgeVerts: [7]int32{-1, -1, -1, -1, -1, -1, -1}})
		}(uint64(i))
	}
	wg.Wait()

	if got := tbl.Entries(); got != n {
		t.Fatalf("used = %d, want %d", got, n)
	}
	for i := 0; i < n; i++ {
		got := tbl.Lookup(uint64(i))
		if got.Key != uint64(i) {
			t.Fatalf("Lookup(%d).Key = %d", i, got.Key)
		}
		if got.Distance != float64(i) {
			t.Fatalf("Lookup(%d).Distance = %f, want %f", i, got.Distance, float64(i))
		}
	}
}

func TestHashTableFull(t *testing.T) {
	tbl := NewHashTable(4)
	if tbl.Full() {
		t.Fatal("empty table reports full")
	}
	tbl.Insert(GridVert{Key: 1})
	tbl.Insert(GridVert{Key: 2})
	tbl.Insert(GridVert{Key: 3})
	if !tbl.Full() {
		t.Fatal("table at load factor 0.75 should report full")
	}
}

func TestHashTableRepeatedKeyDoesNotOverwrite(t *testing.T) {
	tbl := NewHashTable(8)
	tbl.Insert(GridVert{Key: 42, Distance: 1})
	tbl.Insert(GridVert{Key: 42, Distance: 99})
	got := tbl.Lookup(42)
	if got.Distance != 1 {
		t.Fatalf("second insert of an existing key overwrote the record: got %f, want 1", got.Distance)
	}
	if tbl.Entries() != 1 {
		t.Fatalf("used = %d, want 1", tbl.Entries())
	}
}
