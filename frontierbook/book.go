// ════════════════════════════════════════════════════════════════════════════════════════════════
// Monotone Frontier Auction Backend
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Metered Auction-Book Simulator
// Component: Bitmap-Frontier Clearing with Amortized Eviction
//
// Description:
//   Order-book backend that never searches: it maintains a running frontier
//   pointer Pstar (lowest tick still admitted) and the admitted volume Vstar.
//   Presence of bids is tracked in a two-level bitmap — 256-tick blocks, one
//   256-bit mask per block — so advancing the frontier is a forward block scan
//   ending in a lowest-set-bit isolation (mask & -mask, then a trailing-zero
//   count). Bidding is amortized near-O(1); each eviction step is O(1) plus
//   the block scan, against the bisect backend's O(log n) admission.
//
// Invariants:
//   - Pstar is non-decreasing for the lifetime of the book
//   - After every bid, Vstar <= SaleSupply
//   - Vstar equals the sum of resident volumes at ticks >= Pstar
//   - Pstar == maxTicks is the "frontier exhausted" sentinel, not an error
//
// Gas model:
//   - Volume slot touch: cold iff the tick had no resident volume
//   - Block mask touch: cold iff the whole 256-bit mask was zero
//   - Frontier scan: one warm read per block mask examined
//   - Evictions: warm writes for the volume removal and the mask clear
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package frontierbook

import (
	"math/bits"

	"main/auction"
	"main/constants"
	"main/gasmeter"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// BOOK STRUCTURE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// blockMask is one 256-bit presence word: bit (t & 255) of block (t >> 8),
// little-endian limb order so the lowest tick is the lowest set bit.
type blockMask [constants.MaskLimbs]uint64

// Book is one frontier session. It shares nothing with the bisect backend;
// the only cross-call mutable state is the volume map, the bitmap, and the
// (Pstar, Vstar) pair.
type Book struct {
	maxTicks int64
	supply   uint64
	volume   map[int64]uint64
	blocks   []blockMask
	pstar    int64  // Lowest admitted tick; only ever advances
	vstar    uint64 // Admitted volume at ticks >= pstar
}

// New constructs a frontier session for ticks 0..maxTicks-1 with a fixed
// sale supply.
func New(maxTicks int64, supply uint64) *Book {
	numBlocks := (maxTicks + constants.BlockMask) >> constants.BlockShift
	return &Book{
		maxTicks: maxTicks,
		supply:   supply,
		volume:   make(map[int64]uint64),
		blocks:   make([]blockMask, numBlocks),
	}
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// BITMAP PRIMITIVES
// ═══════════════════════════════════════════════════════════════════════════════════════════════

//go:nosplit
//go:inline
func (m *blockMask) isZero() bool {
	return m[0]|m[1]|m[2]|m[3] == 0
}

//go:nosplit
//go:inline
func (b *Book) bitSet(tick int64) bool {
	m := &b.blocks[tick>>constants.BlockShift]
	bit := uint(tick & constants.BlockMask)
	return m[bit>>6]&(1<<(bit&63)) != 0
}

//go:nosplit
//go:inline
func (b *Book) setBit(tick int64) {
	m := &b.blocks[tick>>constants.BlockShift]
	bit := uint(tick & constants.BlockMask)
	m[bit>>6] |= 1 << (bit & 63)
}

//go:nosplit
//go:inline
func (b *Book) clearBit(tick int64) {
	m := &b.blocks[tick>>constants.BlockShift]
	bit := uint(tick & constants.BlockMask)
	m[bit>>6] &^= 1 << (bit & 63)
}

// nextSetBit finds the lowest present tick at or after `from` via the
// forward block scan: the starting block is masked below the resume
// position, then whole blocks are tested until one holds a bit. The lowest
// set bit is isolated with mask & -mask and located by counting trailing
// zeros. Exhaustion returns the maxTicks sentinel — a terminal condition,
// not an error.
//
// Each block examined charges one warm read: a block mask is exactly one
// storage word.
func (b *Book) nextSetBit(from int64) (int64, uint64) {
	var scanGas uint64
	startBlk := from >> constants.BlockShift
	for blk := startBlk; blk < int64(len(b.blocks)); blk++ {
		scanGas += constants.WarmSloadGas
		mask := b.blocks[blk]
		if blk == startBlk {
			resume := uint(from & constants.BlockMask)
			for l := uint(0); l < resume>>6; l++ {
				mask[l] = 0
			}
			mask[resume>>6] &= ^uint64(0) << (resume & 63)
		}
		for l := 0; l < constants.MaskLimbs; l++ {
			m := mask[l]
			if m == 0 {
				continue
			}
			low := m & -m
			return blk<<constants.BlockShift | int64(l)<<6 |
				int64(bits.TrailingZeros64(low)), scanGas
		}
	}
	return b.maxTicks, scanGas
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// BACKEND CONTRACT
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Bid admits volume at a tick, then evicts whole price levels from the
// frontier upward until the admitted volume fits the sale supply again.
// Every clearing step's (from, to) transition and scan charge lands in the
// receipt.
func (b *Book) Bid(tick int64, amount uint64) (*auction.Receipt, error) {
	if tick < 0 || tick >= b.maxTicks {
		return nil, auction.ErrTickRange
	}

	// A bid strictly below the frontier is already priced out: that level
	// cleared before the bid arrived and the pointer never retreats. The
	// slot touch is still charged; nothing is admitted, so Vstar keeps its
	// ticks-at-or-above-Pstar meaning.
	if tick < b.pstar {
		gas := uint64(constants.ColdSstoreGas)
		return &auction.Receipt{
			Tick:     tick,
			Amount:   amount,
			BidGas:   gas,
			TotalGas: gas,
			Items: []gasmeter.Item{{
				Tick: tick, Word: uint32(tick >> constants.LaneShift), Gas: gas,
			}},
			State: b.State(),
		}, nil
	}

	var bidGas uint64
	items := make([]gasmeter.Item, 0, 2)

	// Volume slot: cold iff the tick had no resident volume.
	volGas := uint64(constants.ColdSstoreGas)
	if _, ok := b.volume[tick]; ok {
		volGas = constants.WarmSstoreGas
	}
	b.volume[tick] += amount
	b.vstar += amount
	bidGas += volGas
	items = append(items, gasmeter.Item{
		Tick: tick, Word: uint32(tick >> constants.LaneShift), Gas: volGas,
	})

	// Presence bit: priced only when it actually flips, cold iff the whole
	// block mask was zero before.
	if !b.bitSet(tick) {
		maskGas := uint64(constants.WarmSstoreGas)
		if b.blocks[tick>>constants.BlockShift].isZero() {
			maskGas = constants.ColdSstoreGas
		}
		b.setBit(tick)
		bidGas += maskGas
		items = append(items, gasmeter.Item{
			Tick: tick, Word: uint32(tick >> constants.BlockShift), Gas: maskGas,
		})
	}

	clearGas, evictions := b.enforceSupply()

	return &auction.Receipt{
		Tick:      tick,
		Amount:    amount,
		BidGas:    bidGas,
		ClearGas:  clearGas,
		TotalGas:  bidGas + clearGas,
		Items:     items,
		Evictions: evictions,
		State:     b.State(),
	}, nil
}

// enforceSupply runs the eviction loop: while oversubscribed, drop the
// entire volume at the frontier and advance Pstar to the next present tick.
// The frontier may first have to snap onto the lowest resident tick when it
// rests on an empty position; that advance is a scan-only transition.
func (b *Book) enforceSupply() (uint64, []auction.Transition) {
	var gas uint64
	var evictions []auction.Transition

	for b.vstar > b.supply {
		p := b.pstar
		if p >= b.maxTicks {
			// Frontier exhausted: nothing left ahead to evict.
			break
		}
		if !b.bitSet(p) {
			next, scanGas := b.nextSetBit(p)
			gas += scanGas
			evictions = append(evictions, auction.Transition{
				From: p, To: next, ScanGas: scanGas,
			})
			b.pstar = next
			continue
		}

		// Full eviction of the frontier level: volume removal and mask
		// clear are repeat touches of words the bid path already warmed.
		b.vstar -= b.volume[p]
		delete(b.volume, p)
		b.clearBit(p)
		gas += 2 * constants.WarmSstoreGas

		next, scanGas := b.nextSetBit(p + 1)
		gas += scanGas
		evictions = append(evictions, auction.Transition{
			From: p, To: next, ScanGas: scanGas,
		})
		b.pstar = next
	}
	return gas, evictions
}

// State reports the frontier pointer and admitted volume.
func (b *Book) State() auction.BookState {
	return auction.BookState{Clearing: b.pstar, Admitted: b.vstar}
}

// Depth snapshots resident per-tick volumes for rendering. Unmetered by
// construction: the map is read directly, no storage model is touched.
func (b *Book) Depth() []uint64 {
	depth := make([]uint64, b.maxTicks)
	for t, v := range b.volume {
		depth[t] = v
	}
	return depth
}
