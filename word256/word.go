// ════════════════════════════════════════════════════════════════════════════════════════════════
// 256-Bit Storage Word Lane Codec
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Metered Auction-Book Simulator
// Component: Packed Word Representation
//
// Description:
//   Pure, stateless codec for one 256-bit storage word holding four 64-bit slot
//   values. Lane i occupies bit offset i*64 of the conceptual word, so lane 0 is
//   the least significant quarter. Packing is total: lanes are native uint64 and
//   can never spill into a neighbour.
//
// Design Principles:
//   - Round-trip exactness is the only contract: Unpack(Pack(v)) == v
//   - No validation, no errors, no allocation
//   - Limb layout matches the metered store's unpack/pack gas model
//     (4 shifts + 4 masks apart, 4 shifts + 4 ors together)
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package word256

// Word is one 256-bit storage word as four little-endian 64-bit limbs.
// The zero value is the all-zero word, which is also what the sparse store
// reports for never-written indices.
type Word [4]uint64

// Pack places lane i at bit offset i*64 of the word.
//
//go:nosplit
//go:inline
func Pack(l0, l1, l2, l3 uint64) Word {
	return Word{l0, l1, l2, l3}
}

// Unpack extracts the four 64-bit lanes in ascending bit-offset order.
//
//go:nosplit
//go:inline
func (w Word) Unpack() (uint64, uint64, uint64, uint64) {
	return w[0], w[1], w[2], w[3]
}

// Lane returns lane i. Callers guarantee i < 4.
//
//go:nosplit
//go:inline
func (w Word) Lane(i uint) uint64 {
	return w[i&3]
}

// SetLane returns a copy of the word with lane i replaced. Callers
// guarantee i < 4; the other three lanes are untouched.
//
//go:nosplit
//go:inline
func (w Word) SetLane(i uint, v uint64) Word {
	w[i&3] = v
	return w
}

// IsZero reports whether every lane is zero, i.e. whether the sparse store
// may leave the word unmaterialized.
//
//go:nosplit
//go:inline
func (w Word) IsZero() bool {
	return w[0]|w[1]|w[2]|w[3] == 0
}
