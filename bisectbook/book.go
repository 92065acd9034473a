// ════════════════════════════════════════════════════════════════════════════════════════════════
// Binary-Search Clearing Backend
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Metered Auction-Book Simulator
// Component: Threshold Search over the Packed Fenwick Index
//
// Description:
//   Order-book backend whose cumulative volume lives in the metered Fenwick
//   index. Admission is an O(log n) propagation; the clearing price for a
//   volume target is found by binary search over prefix sums, each probe a
//   metered O(log n) query. The write phase of an executed sale is a linear
//   top-down tick scan — deliberately so. Its asymptotic gap against both the
//   search phase and the frontier backend's amortized eviction is the
//   comparison this simulator exists to expose; do not "fix" it.
//
// Search discipline:
//   - totalVolume short of the target is a defined sentinel result
//     (price -1, empty log), not an error
//   - mid == 0 is skipped: there is no query(-1) comparison to make,
//     the search just advances low
//   - every probe's operation log is concatenated in issuance order and
//     priced as the "search phase"
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package bisectbook

import (
	"main/auction"
	"main/fenwickidx"
	"main/gasmeter"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// BOOK STRUCTURE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Book is one bidding session over the packed index. It owns the store
// exclusively; the only shared mutable state across calls is the store's
// classification sets and the cached clearing price.
type Book struct {
	idx      *fenwickidx.Store
	maxTicks int64
	supply   uint64
	total    uint64 // Volume currently resident in the index
	clearing int64  // Last discovered clearing price, -1 before oversubscription
}

// New constructs a bisect session for ticks 0..maxTicks-1 clearing against
// a fixed sale supply.
func New(maxTicks int64, supply uint64) *Book {
	return &Book{
		idx:      fenwickidx.New(int(maxTicks)),
		maxTicks: maxTicks,
		supply:   supply,
		clearing: -1,
	}
}

// Index exposes the underlying store for metered inspection by callers
// that want raw Update/Query access (the menu's manual mode).
func (b *Book) Index() *fenwickidx.Store {
	return b.idx
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// THRESHOLD SEARCH
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// FindClearingPrice locates the lowest tick p whose at-or-above cumulative
// volume still meets the target — equivalently the highest price the target
// can be filled at. Returns the sentinel (-1, nil) when total volume is
// short: insufficient liquidity is a defined outcome, not an exception.
//
// The concatenated op log of every probe, in issuance order, is the
// search-phase quantity the gas meter prices.
func (b *Book) FindClearingPrice(target uint64) (int64, []fenwickidx.SlotOp) {
	total, ops := b.idx.Query(b.maxTicks - 1)
	if total < target {
		return -1, nil
	}

	price := int64(0)
	low, high := int64(0), b.maxTicks
	for low <= high {
		mid := (low + high) / 2
		if mid == 0 {
			// No query(-1) comparison exists; everything clears at 0.
			low = mid + 1
			continue
		}
		below, qops := b.idx.Query(mid - 1)
		ops = append(ops, qops...)
		if total-below >= target {
			price = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return price, ops
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// SALE EXECUTION (LINEAR WRITE PHASE)
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Outcome summarizes one executed sale: the discovered price, the volume
// actually consumed, and the two gas phases kept separate so the O(log n)
// search can be read against the linear fill.
type Outcome struct {
	Price     int64  // Clearing price, -1 on insufficient liquidity
	Filled    uint64 // Volume removed from the book
	SearchGas uint64 // Threshold-search phase (query pricing)
	FillGas   uint64 // Linear write phase (query + update pricing)
	TotalGas  uint64
	Items     []gasmeter.Item // Itemized fill-phase charges
}

// Clear executes a sale of `target` volume to the best bids. One logical
// transaction: the dirty set resets, the price is searched, then ticks are
// walked from the top down to the price, each contributing its standalone
// volume (prefix difference) until the target is exhausted.
//
// The walk is linear in the scanned range by design; see the file header.
func (b *Book) Clear(target uint64) *Outcome {
	b.idx.BeginTx()

	price, sops := b.FindClearingPrice(target)
	searchGas, _ := gasmeter.QueryCost(sops)
	out := &Outcome{Price: price, SearchGas: searchGas, TotalGas: searchGas}
	if price < 0 {
		return out
	}

	remaining := target
	for t := b.maxTicks - 1; t >= price && remaining > 0; t-- {
		at, aops := b.idx.Query(t)
		below, bops := b.idx.Query(t - 1)
		g1, _ := gasmeter.QueryCost(aops)
		g2, _ := gasmeter.QueryCost(bops)
		out.FillGas += g1 + g2

		standalone := at - below
		if standalone == 0 {
			continue
		}

		take := standalone
		if take > remaining {
			take = remaining
		}
		uops := b.idx.Update(t, -int64(take))
		gu, items := gasmeter.UpdateCost(uops)
		out.FillGas += gu
		out.Items = append(out.Items, items...)
		remaining -= take
	}

	out.Filled = target - remaining
	out.TotalGas = out.SearchGas + out.FillGas
	b.total -= out.Filled
	return out
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// BACKEND CONTRACT
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Bid admits volume at a tick (one Fenwick propagation, one transaction)
// and re-runs the threshold search for the sale supply so the receipt
// carries the current clearing price. Before the book oversubscribes the
// search hits the insufficiency sentinel and clearing stays -1 at zero
// search cost — exactly the sentinel contract.
func (b *Book) Bid(tick int64, amount uint64) (*auction.Receipt, error) {
	if tick < 0 || tick >= b.maxTicks {
		return nil, auction.ErrTickRange
	}

	b.idx.BeginTx()
	uops := b.idx.Update(tick, int64(amount))
	bidGas, items := gasmeter.UpdateCost(uops)
	b.total += amount

	price, sops := b.FindClearingPrice(b.supply)
	searchGas, _ := gasmeter.QueryCost(sops)
	b.clearing = price

	return &auction.Receipt{
		Tick:     tick,
		Amount:   amount,
		BidGas:   bidGas,
		ClearGas: searchGas,
		TotalGas: bidGas + searchGas,
		Items:    items,
		State:    b.State(),
	}, nil
}

// State reports the cached clearing price and the volume standing at or
// above it. Admitted is derived from unmetered peeks: state display must
// not warm storage words.
func (b *Book) State() auction.BookState {
	admitted := b.total
	if b.clearing > 0 {
		admitted = b.total - b.peekPrefix(b.clearing-1)
	}
	return auction.BookState{Clearing: b.clearing, Admitted: admitted}
}

// Depth reconstructs standalone per-tick volumes from unmetered prefix
// peeks. Presentation only: O(n log n) and classification-neutral.
func (b *Book) Depth() []uint64 {
	depth := make([]uint64, b.maxTicks)
	prev := uint64(0)
	for t := int64(0); t < b.maxTicks; t++ {
		cur := b.peekPrefix(t)
		depth[t] = cur - prev
		prev = cur
	}
	return depth
}

// peekPrefix is Query without the meter: same descent, PeekSlot reads.
func (b *Book) peekPrefix(tick int64) uint64 {
	var sum uint64
	for idx := tick + 1; idx > 0; idx -= idx & -idx {
		sum += b.idx.PeekSlot(idx - 1)
	}
	return sum
}
