// ============================================================================
// SPARSE WORD TABLE VALIDATION SUITE
// ============================================================================
//
// Covers the Robin Hood mapping under the access patterns the metered store
// produces: clustered word indices (Fenwick walks touch neighbours),
// repeated overwrites of the same word, and absence semantics for words
// that were never written.

package wordmap

import (
	"math/rand"
	"testing"

	"main/word256"
)

// TestAbsenceIsZeroWord validates that never-stored indices miss cleanly.
func TestAbsenceIsZeroWord(t *testing.T) {
	m := New(16)
	for idx := uint32(0); idx < 64; idx++ {
		w, ok := m.Load(idx)
		if ok {
			t.Fatalf("index %d resident in empty table", idx)
		}
		if !w.IsZero() {
			t.Fatalf("index %d miss returned nonzero word", idx)
		}
	}
	if m.Resident() != 0 {
		t.Errorf("empty table reports %d resident words", m.Resident())
	}
}

// TestStoreLoadOverwrite validates insert, hit, and in-place overwrite.
func TestStoreLoadOverwrite(t *testing.T) {
	m := New(8)

	m.Store(3, word256.Pack(1, 2, 3, 4))
	w, ok := m.Load(3)
	if !ok || w != word256.Pack(1, 2, 3, 4) {
		t.Fatalf("stored word not retrievable: ok=%v w=%v", ok, w)
	}

	// Overwrite must not add an arena slot.
	m.Store(3, word256.Pack(9, 9, 9, 9))
	if m.Resident() != 1 {
		t.Errorf("overwrite grew arena: %d resident", m.Resident())
	}
	w, _ = m.Load(3)
	if w != word256.Pack(9, 9, 9, 9) {
		t.Errorf("overwrite lost: %v", w)
	}

	// Index 0 must work despite the key+1 sentinel shift.
	m.Store(0, word256.Pack(7, 0, 0, 0))
	if w, ok := m.Load(0); !ok || w.Lane(0) != 7 {
		t.Errorf("index 0 broken: ok=%v w=%v", ok, w)
	}
}

// TestClusteredIndices drives the displacement path with the adjacent word
// indices a Fenwick propagation produces, then verifies every entry.
func TestClusteredIndices(t *testing.T) {
	const n = 512
	m := New(n)
	for i := uint32(0); i < n; i++ {
		m.Store(i, word256.Pack(uint64(i), 0, 0, uint64(i)*3))
	}
	for i := uint32(0); i < n; i++ {
		w, ok := m.Load(i)
		if !ok {
			t.Fatalf("index %d lost after clustered fill", i)
		}
		if w.Lane(0) != uint64(i) || w.Lane(3) != uint64(i)*3 {
			t.Fatalf("index %d corrupted: %v", i, w)
		}
	}
	if m.Resident() != n {
		t.Errorf("resident %d want %d", m.Resident(), n)
	}
}

// TestRandomizedAgainstReference mirrors a random store/load sequence
// against a plain map.
func TestRandomizedAgainstReference(t *testing.T) {
	const capWords = 1024
	m := New(capWords)
	ref := make(map[uint32]word256.Word)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 20000; i++ {
		idx := uint32(rng.Intn(capWords))
		if rng.Intn(3) == 0 {
			w := word256.Pack(rng.Uint64(), rng.Uint64(), rng.Uint64(), rng.Uint64())
			m.Store(idx, w)
			ref[idx] = w
		} else {
			got, ok := m.Load(idx)
			want, refOK := ref[idx]
			if ok != refOK {
				t.Fatalf("iteration %d: presence mismatch for %d: got %v want %v",
					i, idx, ok, refOK)
			}
			if ok && got != want {
				t.Fatalf("iteration %d: value mismatch for %d", i, idx)
			}
		}
	}
}

// BenchmarkStoreLoad measures the hot read-modify-write word cycle.
func BenchmarkStoreLoad(b *testing.B) {
	m := New(4096)
	for i := 0; i < b.N; i++ {
		idx := uint32(i & 4095)
		w, _ := m.Load(idx)
		m.Store(idx, w.SetLane(uint(i&3), uint64(i)))
	}
}
