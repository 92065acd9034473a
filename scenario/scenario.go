// ════════════════════════════════════════════════════════════════════════════════════════════════
// Scenario Files — Bid Scripts & Run Reports
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Metered Auction-Book Simulator
// Component: JSON Scenario Loader / Report Writer
//
// Description:
//   Reads deterministic bid scripts and writes structured run reports. A script
//   fixes the book geometry, the sale supply, the backend, and an ordered bid
//   list; replaying the same script against both backends is how the two
//   clearing strategies are compared under one gas schedule.
//
// Notes:
//   - Validation happens here, at the boundary. The core treats tick range as
//     an unchecked precondition, so nothing malformed may pass this layer.
//   - Reports are plain data: totals, per-bid receipts, final book state.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package scenario

import (
	"errors"
	"os"

	"github.com/sugawarayuuta/sonnet"

	"main/auction"
	"main/constants"
	"main/slotkey"
	"main/utils"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// SCRIPT SHAPE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Bid is one scripted admission.
type Bid struct {
	Tick   int64  `json:"tick"`
	Amount uint64 `json:"amount"`
}

// Script is the on-disk scenario shape. Zero MaxTicks/SaleSupply fall back
// to the simulator defaults so hand-written scripts stay short.
type Script struct {
	Name       string `json:"name,omitempty"`
	MaxTicks   int64  `json:"max_ticks"`
	SaleSupply uint64 `json:"sale_supply"`
	Backend    string `json:"backend"`
	Bids       []Bid  `json:"bids"`
}

// Load reads and validates a script. Defaults are applied before
// validation so a minimal script of just bids is runnable.
func Load(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Script
	if err := sonnet.Unmarshal(raw, &s); err != nil {
		return nil, errors.New("scenario: " + path + ": " + err.Error())
	}
	if s.MaxTicks == 0 {
		s.MaxTicks = constants.DefaultMaxTicks
	}
	if s.SaleSupply == 0 {
		s.SaleSupply = constants.DefaultSaleSupply
	}
	if s.Backend == "" {
		s.Backend = auction.BackendBisect.String()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate enforces the boundary contract the core relies on.
func (s *Script) Validate() error {
	if s.MaxTicks < 1 {
		return errors.New("scenario: max_ticks must be positive")
	}
	if _, err := auction.ParseBackend(s.Backend); err != nil {
		return err
	}
	for i, b := range s.Bids {
		if b.Tick < 0 || b.Tick >= s.MaxTicks {
			return errors.New("scenario: bid " + utils.Itoa(i) +
				": tick " + utils.I64toa(b.Tick) + " outside [0, " +
				utils.I64toa(s.MaxTicks) + ")")
		}
		if b.Amount == 0 {
			return errors.New("scenario: bid " + utils.Itoa(i) + ": zero amount")
		}
	}
	return nil
}

// Config maps the script onto a backend configuration.
func (s *Script) Config() (auction.Config, error) {
	backend, err := auction.ParseBackend(s.Backend)
	if err != nil {
		return auction.Config{}, err
	}
	return auction.Config{
		Backend:    backend,
		MaxTicks:   s.MaxTicks,
		SaleSupply: s.SaleSupply,
	}, nil
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// REPORT SHAPE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// ReceiptRow is one settled bid in a report, flattened for JSON.
type ReceiptRow struct {
	Seq       int    `json:"seq"`
	Tick      int64  `json:"tick"`
	Amount    uint64 `json:"amount"`
	BidGas    uint64 `json:"bid_gas"`
	ClearGas  uint64 `json:"clear_gas"`
	TotalGas  uint64 `json:"total_gas"`
	Evictions int    `json:"evictions"`
	Clearing  int64  `json:"clearing"`
	Admitted  uint64 `json:"admitted"`
}

// ItemRow is one itemized storage charge with its derived physical key.
type ItemRow struct {
	Seq     int    `json:"seq"`
	Tick    int64  `json:"tick"`
	Word    uint32 `json:"word"`
	SlotKey string `json:"slot_key"`
	Gas     uint64 `json:"gas"`
}

// Report is the on-disk result of one scripted run.
type Report struct {
	Scenario string       `json:"scenario,omitempty"`
	Backend  string       `json:"backend"`
	TotalGas uint64       `json:"total_gas"`
	Clearing int64        `json:"clearing"`
	Admitted uint64       `json:"admitted"`
	Receipts []ReceiptRow `json:"receipts"`
	Items    []ItemRow    `json:"items"`
}

// BuildReport flattens settled receipts into a report, deriving the
// physical storage key for every itemized charge.
func BuildReport(name, backend string, receipts []*auction.Receipt) *Report {
	r := &Report{Scenario: name, Backend: backend, Clearing: -1}
	for i, rc := range receipts {
		r.TotalGas += rc.TotalGas
		r.Receipts = append(r.Receipts, ReceiptRow{
			Seq:       i,
			Tick:      rc.Tick,
			Amount:    rc.Amount,
			BidGas:    rc.BidGas,
			ClearGas:  rc.ClearGas,
			TotalGas:  rc.TotalGas,
			Evictions: len(rc.Evictions),
			Clearing:  rc.State.Clearing,
			Admitted:  rc.State.Admitted,
		})
		for _, it := range rc.Items {
			key := slotkey.ForWord(uint64(it.Word), constants.BookBaseSlot)
			r.Items = append(r.Items, ItemRow{
				Seq:     i,
				Tick:    it.Tick,
				Word:    it.Word,
				SlotKey: slotkey.Hex(key),
				Gas:     it.Gas,
			})
		}
		r.Clearing = rc.State.Clearing
		r.Admitted = rc.State.Admitted
	}
	return r
}

// SaveReport writes a report as indent-free JSON; reports feed tooling, not
// eyes — the renderer owns the human view.
func SaveReport(path string, r *Report) error {
	raw, err := sonnet.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
