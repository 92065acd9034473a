// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: auction.go — Backend-Neutral Bidding Contract
//
// Purpose:
//   - Defines the one capability both clearing strategies implement: accept a
//     bid, report book state. Backends are selected by configuration, never
//     by inheritance, and share no internal state.
//   - Defines the receipt shape the presentation layer consumes. Receipts are
//     values; callers cannot reach back into a backend through one.
//
// Notes:
//   - The bisect backend prices admission as a Fenwick propagation and its
//     clearing phase as a threshold search; the frontier backend prices map
//     and bitmap touches under the same schedule. Receipts are therefore
//     directly comparable, which is the point of having two backends.
// ─────────────────────────────────────────────────────────────────────────────

package auction

import (
	"errors"

	"main/gasmeter"
)

// Backend selects a clearing strategy at configuration time.
type Backend uint8

const (
	BackendBisect   Backend = iota // O(log n) threshold search over the packed index
	BackendFrontier                // Amortized bitmap-frontier scan
)

// String renders the backend name used in scenario files and reports.
func (b Backend) String() string {
	if b == BackendFrontier {
		return "frontier"
	}
	return "bisect"
}

// ParseBackend maps a scenario/flag spelling onto a Backend.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "bisect":
		return BackendBisect, nil
	case "frontier":
		return BackendFrontier, nil
	}
	return 0, errors.New("auction: unknown backend \"" + s + "\"")
}

// Config carries everything a backend needs at construction. MaxTicks and
// SaleSupply are fixed for the session.
type Config struct {
	Backend    Backend
	MaxTicks   int64
	SaleSupply uint64
}

// Transition records one frontier clearing step: the pointer left `From`,
// landed on `To` (maxTicks = frontier exhausted), and the forward block
// scan between them cost ScanGas.
type Transition struct {
	From    int64
	To      int64
	ScanGas uint64
}

// BookState is the externally visible pair both backends maintain.
// Clearing is the frontier pointer for the frontier backend and the last
// discovered clearing price for the bisect backend (-1 until the book
// first oversubscribes). Admitted is the volume currently standing at or
// above that boundary.
type BookState struct {
	Clearing int64
	Admitted uint64
}

// Receipt is the structured result of one Bid. BidGas covers admission
// (index update or map/bitmap insert); ClearGas covers whatever clearing
// work the bid triggered (threshold search or eviction loop).
type Receipt struct {
	Tick      int64
	Amount    uint64
	BidGas    uint64
	ClearGas  uint64
	TotalGas  uint64
	Items     []gasmeter.Item // Itemized admission charges
	Evictions []Transition    // Frontier backend only; empty for bisect
	State     BookState       // Book state after the bid settled
}

// ErrTickRange is returned by Engine.Bid for a tick outside
// [0, maxTicks). The core structures treat range as an unchecked
// precondition; the engine surface is where surrounding tooling validates.
var ErrTickRange = errors.New("auction: tick outside [0, maxTicks)")

// Engine is the capability the presentation layer programs against.
// Depth is an unmetered snapshot for rendering only — it must not disturb
// cold/warm accounting.
type Engine interface {
	Bid(tick int64, amount uint64) (*Receipt, error)
	State() BookState
	Depth() []uint64
}
