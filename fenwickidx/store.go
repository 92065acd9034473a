// ════════════════════════════════════════════════════════════════════════════════════════════════
// Packed Indexed Store — Metered Fenwick Index over 256-Bit Words
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Metered Auction-Book Simulator
// Component: Cumulative-Frequency Index with Cold/Warm Access Classification
//
// Description:
//   Fenwick (binary indexed) tree whose node values are 64-bit lanes packed four
//   to a 256-bit storage word. Every slot touch is classified cold or warm the
//   way a word-addressed persistent store would meter it: reads warm a word for
//   the lifetime of the structure, writes warm it only until the next
//   transaction boundary. Each Update/Query returns the ordered log of node
//   touches so the gas meter can price the call without ever seeing the store.
//
// Architecture overview:
//   - Implicit tree: parent/child via idx ± (idx & -idx), no pointers
//   - Sparse words: absent mapping entry ≡ four zero slots
//   - Two classification sets with different lifetimes, kept as flat bitmaps
//   - Operation records are created per call and never retained
//
// Safety model:
//   - Tick range is a documented precondition, not a runtime check
//   - Unsigned wraparound on Update is accepted; callers clamp deltas
//   - Single logical session; no internal locking
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package fenwickidx

import (
	"main/constants"
	"main/wordmap"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// ACCESS CLASSIFICATION
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Access tags one storage-word touch as first-touch or repeat within the
// relevant scope (lifetime for reads, transaction for writes).
type Access uint8

const (
	Cold Access = iota // First touch in scope: full persistent-store charge
	Warm               // Repeat touch: discounted charge
)

// String renders the classification for reports and test diagnostics.
func (a Access) String() string {
	if a == Cold {
		return "cold"
	}
	return "warm"
}

// SlotOp records one Fenwick node touch. Update emits a read and a write
// sub-record per node; Query emits the read only. The store creates these
// fresh per call and hands them to the caller — it never keeps a reference.
type SlotOp struct {
	Tick     int64  // Node position expressed as a tick (fenwick idx - 1)
	Word     uint32 // Storage word index (tick >> 2)
	Read     Access // Classification of the word fetch
	Write    Access // Classification of the word store (updates only)
	HasWrite bool   // False for query-phase records
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// STORE STRUCTURE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Store owns the word mapping exclusively. maxTicks is fixed at
// construction; ticks 0..maxTicks-1 are addressable and tick t maps to
// Fenwick position t+1.
type Store struct {
	maxTicks int64        // Fenwick index space bound (1-based internally)
	words    *wordmap.Map // Sparse word-index → packed word

	// Two classification sets with deliberately different lifetimes.
	// Conflating them into one cache breaks the accounting contract:
	// reads stay warm across transactions, writes do not.
	readSeen   []uint64 // Lifetime-monotone: one bit per word index
	writeDirty []uint64 // Transaction-scoped: cleared by BeginTx
}

// New constructs a store for ticks 0..maxTicks-1. The word table is sized
// for the worst case of every word materializing; the classification
// bitmaps are flat and never grow.
func New(maxTicks int) *Store {
	numWords := (maxTicks + constants.LaneMask) >> constants.LaneShift
	setLimbs := (numWords + 63) >> 6
	if setLimbs == 0 {
		setLimbs = 1
	}
	return &Store{
		maxTicks:   int64(maxTicks),
		words:      wordmap.New(numWords),
		readSeen:   make([]uint64, setLimbs),
		writeDirty: make([]uint64, setLimbs),
	}
}

// MaxTicks reports the construction-time capacity.
//
//go:nosplit
//go:inline
func (s *Store) MaxTicks() int64 {
	return s.maxTicks
}

// ResidentWords reports how many words have materialized. Presentation only.
//
//go:nosplit
//go:inline
func (s *Store) ResidentWords() int {
	return s.words.Resident()
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// CLASSIFICATION SET PRIMITIVES
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// touch tests-and-sets one word bit in a classification bitmap and returns
// the resulting classification. Cold happens at most once per word per set
// lifetime because the bit stays up afterwards.
//
//go:nosplit
//go:inline
func touch(set []uint64, wi uint32) Access {
	limb, bit := wi>>6, uint64(1)<<(wi&63)
	if set[limb]&bit != 0 {
		return Warm
	}
	set[limb] |= bit
	return Cold
}

// BeginTx marks a transaction boundary: the write-dirty set resets, the
// read-seen set survives. This mirrors persistent-store accounting where
// intra-transaction rewrites are discounted but committed state endures.
func (s *Store) BeginTx() {
	for i := range s.writeDirty {
		s.writeDirty[i] = 0
	}
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// SLOT ACCESS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// ReadSlot fetches the lane for a tick and classifies the word read.
// Absent words read as zero without materializing.
//
// ⚠️ Precondition: 0 <= tick < maxTicks. Not runtime-checked.
//
//go:nosplit
//go:inline
func (s *Store) ReadSlot(tick int64) (uint64, Access) {
	wi := uint32(tick >> constants.LaneShift)
	w, _ := s.words.Load(wi)
	return w.Lane(uint(tick & constants.LaneMask)), touch(s.readSeen, wi)
}

// WriteSlot replaces the lane for a tick (fetch, unpack, mutate one lane,
// repack, store) and classifies the word write against the current
// transaction's dirty set.
//
// ⚠️ Precondition: 0 <= tick < maxTicks. Not runtime-checked.
//
//go:nosplit
//go:inline
func (s *Store) WriteSlot(tick int64, value uint64) Access {
	wi := uint32(tick >> constants.LaneShift)
	w, _ := s.words.Load(wi)
	s.words.Store(wi, w.SetLane(uint(tick&constants.LaneMask), value))
	return touch(s.writeDirty, wi)
}

// PeekSlot reads a lane without touching either classification set.
// Reserved for presentation layers: a depth render must not warm words and
// skew the very accounting it displays.
//
//go:nosplit
//go:inline
func (s *Store) PeekSlot(tick int64) uint64 {
	w, _ := s.words.Load(uint32(tick >> constants.LaneShift))
	return w.Lane(uint(tick & constants.LaneMask))
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// FENWICK OPERATIONS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Update adds delta to the tick's slot and propagates rootward through the
// implicit tree: idx += idx & -idx isolates the lowest set bit under
// two's-complement negation and jumps to the parent interval. The returned
// records are in propagation order.
//
// Arithmetic is unsigned with wraparound; a negative delta is the
// two's-complement subtrahend. Callers are responsible for not driving an
// accumulator below zero.
//
// ⚠️ Precondition: 0 <= tick < maxTicks. Not runtime-checked.
func (s *Store) Update(tick int64, delta int64) []SlotOp {
	ops := make([]SlotOp, 0, 16)
	for idx := tick + 1; idx <= s.maxTicks; idx += idx & -idx {
		t := idx - 1
		old, racc := s.ReadSlot(t)
		wacc := s.WriteSlot(t, old+uint64(delta))
		ops = append(ops, SlotOp{
			Tick:     t,
			Word:     uint32(t >> constants.LaneShift),
			Read:     racc,
			Write:    wacc,
			HasWrite: true,
		})
	}
	return ops
}

// Query returns the prefix sum over ticks 0..tick plus the read log in
// descent order (idx -= idx & -idx). Query(-1) is the defined empty prefix:
// (0, nil) with no storage touch, so callers can ask for "volume strictly
// below tick 0".
//
// ⚠️ Precondition: tick < maxTicks. Not runtime-checked.
func (s *Store) Query(tick int64) (uint64, []SlotOp) {
	if tick < 0 {
		return 0, nil
	}
	var sum uint64
	ops := make([]SlotOp, 0, 16)
	for idx := tick + 1; idx > 0; idx -= idx & -idx {
		t := idx - 1
		v, acc := s.ReadSlot(t)
		sum += v
		ops = append(ops, SlotOp{
			Tick: t,
			Word: uint32(t >> constants.LaneShift),
			Read: acc,
		})
	}
	return sum, ops
}
