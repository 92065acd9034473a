// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⚡ SPARSE PACKED-WORD TABLE
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Metered Auction-Book Simulator
// Component: Word-Index → Packed-Word Mapping
//
// Description:
//   Fixed-capacity Robin Hood hash table mapping a word index to its 256-bit
//   packed word. Backs the sparse metered store: indices that were never
//   written have no entry, which the store reads as the all-zero word.
//   Keys and arena offsets live in parallel uint32 arrays; the packed words
//   themselves sit in a stable append-only arena so displacement during
//   insertion never moves a 32-byte word.
//
// Design Principles:
//   - Power-of-2 sizing with mask-based modulo
//   - Robin Hood displacement keeps worst-case probe distances flat
//   - Key 0 is the empty sentinel, so stored keys are wordIndex+1
//   - Absence is meaningful: Load reports it instead of faking a zero hit
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package wordmap

import "main/word256"

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// TYPE DEFINITIONS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Map is a fixed-capacity Robin Hood table for single-threaded use.
// keys[i] holds wordIndex+1 (0 = empty); vals[i] is an offset into the
// words arena.
//
//go:notinheap
//go:align 64
type Map struct {
	keys  []uint32       // Probe array (0 = empty sentinel, else wordIndex+1)
	vals  []uint32       // Arena offsets, parallel to keys
	words []word256.Word // Stable storage for the packed words
	mask  uint32         // Size mask for fast modulo
	_     [4]byte        // Padding to 64-byte cache line boundary
}

// nextPow2 returns the smallest power of 2 >= n. Initialization-time only.
//
//go:nosplit
//go:inline
func nextPow2(n int) uint32 {
	s := uint32(1)
	for s < uint32(n) {
		s <<= 1
	}
	return s
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// CONSTRUCTOR
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// New creates a table sized for `capacity` resident words. Capacity is
// doubled before rounding up so the table stays at or below 50% load, which
// keeps Robin Hood probe chains short for the lifetime of a session.
func New(capacity int) *Map {
	if capacity < 1 {
		capacity = 1
	}
	sz := nextPow2(capacity * 2)
	return &Map{
		keys:  make([]uint32, sz),
		vals:  make([]uint32, sz),
		words: make([]word256.Word, 0, capacity),
		mask:  sz - 1,
	}
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// CORE OPERATIONS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Load retrieves the packed word for a word index. The second result is
// false when the index was never stored; callers treat that as the all-zero
// word without materializing it.
//
// Robin Hood early termination: once a resident entry sits closer to its
// home slot than our probe distance, the key cannot exist further along.
//
//go:nosplit
//go:inline
func (m *Map) Load(idx uint32) (word256.Word, bool) {
	key := idx + 1
	i := key & m.mask
	dist := uint32(0)

	for {
		k := m.keys[i]

		if k == 0 {
			return word256.Word{}, false
		}
		if k == key {
			return m.words[m.vals[i]], true
		}

		// Distance of the occupant from its own home slot
		kDist := (i + m.mask + 1 - (k & m.mask)) & m.mask
		if kDist < dist {
			return word256.Word{}, false
		}

		i = (i + 1) & m.mask
		dist++
	}
}

// Store inserts or overwrites the packed word for a word index.
// Overwrites update the arena in place; fresh indices append one arena slot
// and thread the offset through the Robin Hood displacement loop, so the
// arena itself never reshuffles.
//
// ⚠️ The table never grows. The store sizes it for maxTicks/4 words up
// front, which is the maximum number of distinct indices a session can
// touch, so insertion cannot fail or loop.
//
//go:nosplit
func (m *Map) Store(idx uint32, w word256.Word) {
	key := idx + 1
	i := key & m.mask
	dist := uint32(0)

	// Phase 1: overwrite if resident.
	for {
		k := m.keys[i]
		if k == 0 {
			break
		}
		if k == key {
			m.words[m.vals[i]] = w
			return
		}
		kDist := (i + m.mask + 1 - (k & m.mask)) & m.mask
		if kDist < dist {
			break // Robin Hood invariant: key is absent
		}
		i = (i + 1) & m.mask
		dist++
	}

	// Phase 2: append to the arena and insert with displacement.
	val := uint32(len(m.words))
	m.words = append(m.words, w)

	i = key & m.mask
	dist = 0
	for {
		k := m.keys[i]

		if k == 0 {
			m.keys[i], m.vals[i] = key, val
			return
		}

		kDist := (i + m.mask + 1 - (k & m.mask)) & m.mask
		if kDist < dist {
			// Rich give to the poor: take this slot, keep inserting
			// the displaced pair.
			key, m.keys[i] = m.keys[i], key
			val, m.vals[i] = m.vals[i], val
			dist = kDist
		}

		i = (i + 1) & m.mask
		dist++
	}
}

// Resident returns the number of materialized words. Presentation only.
//
//go:nosplit
//go:inline
func (m *Map) Resident() int {
	return len(m.words)
}
