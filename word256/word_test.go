// ============================================================================
// WORD256 CODEC VALIDATION SUITE
// ============================================================================
//
// Round-trip exactness is the codec's only contract, so the suite leans on
// it from every direction: fixed edge lanes, randomized tuples, lane
// surgery, and the zero-word identity the sparse store depends on.

package word256

import (
	"math/rand"
	"testing"
)

// TestRoundTripEdges validates exact round-trips for boundary lane values.
func TestRoundTripEdges(t *testing.T) {
	edges := []uint64{0, 1, 0x7fffffffffffffff, 0x8000000000000000, ^uint64(0)}
	for _, a := range edges {
		for _, b := range edges {
			for _, c := range edges {
				for _, d := range edges {
					w := Pack(a, b, c, d)
					g0, g1, g2, g3 := w.Unpack()
					if g0 != a || g1 != b || g2 != c || g3 != d {
						t.Fatalf("round trip broke: packed (%x,%x,%x,%x) got (%x,%x,%x,%x)",
							a, b, c, d, g0, g1, g2, g3)
					}
				}
			}
		}
	}
}

// TestRoundTripRandom hammers the codec with random tuples.
func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(0x256))
	for i := 0; i < 10000; i++ {
		a, b, c, d := rng.Uint64(), rng.Uint64(), rng.Uint64(), rng.Uint64()
		g0, g1, g2, g3 := Pack(a, b, c, d).Unpack()
		if g0 != a || g1 != b || g2 != c || g3 != d {
			t.Fatalf("iteration %d: round trip mismatch", i)
		}
	}
}

// TestLaneIsolation verifies SetLane touches exactly one lane: writing the
// maximum value into any lane must leave the other three byte-identical.
func TestLaneIsolation(t *testing.T) {
	base := Pack(10, 20, 30, 40)
	for lane := uint(0); lane < 4; lane++ {
		w := base.SetLane(lane, ^uint64(0))
		for i := uint(0); i < 4; i++ {
			want := base.Lane(i)
			if i == lane {
				want = ^uint64(0)
			}
			if got := w.Lane(i); got != want {
				t.Errorf("SetLane(%d) disturbed lane %d: got %x want %x",
					lane, i, got, want)
			}
		}
	}
}

// TestZeroWord validates the sparse-store identity: the zero value is the
// all-zero word and reports as such.
func TestZeroWord(t *testing.T) {
	var w Word
	if !w.IsZero() {
		t.Error("zero value not reported as zero word")
	}
	g0, g1, g2, g3 := w.Unpack()
	if g0|g1|g2|g3 != 0 {
		t.Error("zero word unpacked to nonzero lanes")
	}
	if Pack(0, 0, 0, 1).IsZero() {
		t.Error("nonzero word reported as zero")
	}
}

// BenchmarkPackUnpack measures the raw codec round trip.
func BenchmarkPackUnpack(b *testing.B) {
	var sink uint64
	for i := 0; i < b.N; i++ {
		w := Pack(uint64(i), uint64(i)<<1, uint64(i)<<2, uint64(i)<<3)
		a, _, _, d := w.Unpack()
		sink += a + d
	}
	_ = sink
}
