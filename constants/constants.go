// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: constants.go — Gas Schedule & Storage Geometry Tunables
//
// Purpose:
//   - Defines the metered-store gas schedule used by every cost fold.
//   - Fixes the word/lane geometry of the packed index and the frontier
//     presence bitmap.
//
// Notes:
//   - Gas figures follow the post-Berlin access-list era: first touch of a
//     storage word is "cold", every repeat touch is "warm".
//   - Geometry is load-bearing: four 64-bit lanes per 256-bit word, 256-tick
//     frontier blocks with one 256-bit mask word each. Changing either breaks
//     the index arithmetic.
//
// ⚠️ No runtime logic here — all values must be compile-time resolvable
// ─────────────────────────────────────────────────────────────────────────────

package constants

// ───────────────────────────── Gas Schedule ───────────────────────────────

const (
	// ColdSloadGas is charged the first time a storage word is read during
	// the lifetime of the structure. Subsequent reads of the same word are
	// warm no matter how many transactions have passed.
	ColdSloadGas = 2100

	// WarmSloadGas is the repeat-read charge for an already-touched word.
	WarmSloadGas = 100

	// ColdSstoreGas is charged the first time a storage word is written
	// within the current transaction scope.
	ColdSstoreGas = 20000

	// WarmSstoreGas is the intra-transaction repeat-write charge. The dirty
	// set resets at every transaction boundary, so a word written in an
	// earlier transaction is cold again.
	WarmSstoreGas = 5000

	// BitOpGas prices one shift/mask/or step of the lane codec.
	BitOpGas = 3

	// UnpackGas models splitting one 256-bit word into 4 lanes:
	// 4 shifts + 4 masks.
	UnpackGas = 8 * BitOpGas

	// PackGas models assembling one 256-bit word from 4 lanes:
	// 4 shifts + 4 ors.
	PackGas = 8 * BitOpGas
)

// ───────────────────────────── Word Geometry ────────────────────────────────

const (
	// LanesPerWord fixes the packing factor: four 64-bit slot values share
	// one 256-bit storage word. Tick t lives in word t>>LaneShift,
	// lane t&LaneMask.
	LanesPerWord = 4

	// LaneShift converts a tick into its word index (tick >> LaneShift).
	LaneShift = 2

	// LaneMask isolates the lane position within a word (tick & LaneMask).
	LaneMask = LanesPerWord - 1

	// LaneBits is the width of a single slot value.
	LaneBits = 64
)

// ─────────────────────────── Frontier Geometry ──────────────────────────────

const (
	// BlockTicks is the tick span covered by one presence-bitmap block.
	// Each block owns a single 256-bit mask, i.e. one storage word, so a
	// frontier scan charges exactly one read per block examined.
	BlockTicks = 256

	// BlockShift converts a tick into its block index (tick >> BlockShift).
	BlockShift = 8

	// BlockMask isolates the bit position within a block (tick & BlockMask).
	BlockMask = BlockTicks - 1

	// MaskLimbs is the number of uint64 limbs in one 256-bit block mask.
	MaskLimbs = 4
)

// ─────────────────────────── Simulator Defaults ─────────────────────────────

const (
	// DefaultMaxTicks sizes the book when no scenario overrides it.
	// Power of two keeps the Fenwick walk at a flat 12 levels worst case.
	DefaultMaxTicks = 4096

	// DefaultSaleSupply is the fixed capacity both backends clear against
	// when running interactively without a scenario file.
	DefaultSaleSupply = 1_000_000

	// DefaultBurst is the number of generated bids for one random burst.
	DefaultBurst = 64

	// BookBaseSlot is the Solidity-layout slot number of the modeled
	// word mapping; only used to derive display keys for reports.
	BookBaseSlot = 7
)
