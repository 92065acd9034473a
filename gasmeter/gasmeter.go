// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: gasmeter.go — Deterministic Gas Fold over Operation Logs
//
// Purpose:
//   - Converts the slot-op logs emitted by the packed indexed store into a
//     total plus an itemized per-node gas bill.
//   - Pure function of the log shape: no state, no side effects, so the same
//     log always prices identically regardless of which algorithm emitted it.
//
// Notes:
//   - Update ops pay read + unpack + write + pack per node touched.
//   - Query ops pay read + unpack per node touched.
//   - The cold/warm split is decided by the store at emission time; the
//     meter only maps classifications onto the schedule in constants.
// ─────────────────────────────────────────────────────────────────────────────

package gasmeter

import (
	"main/constants"
	"main/fenwickidx"
)

// Item is one priced operation record: which tick's node, which storage
// word, and what that single touch cost.
type Item struct {
	Tick int64  // Fenwick node position as a tick
	Word uint32 // Storage word index the node lives in
	Gas  uint64 // Full charge for this record
}

// readGas maps a read classification onto the schedule.
//
//go:nosplit
//go:inline
func readGas(a fenwickidx.Access) uint64 {
	if a == fenwickidx.Cold {
		return constants.ColdSloadGas
	}
	return constants.WarmSloadGas
}

// writeGas maps a write classification onto the schedule.
//
//go:nosplit
//go:inline
func writeGas(a fenwickidx.Access) uint64 {
	if a == fenwickidx.Cold {
		return constants.ColdSstoreGas
	}
	return constants.WarmSstoreGas
}

// UpdateCost prices a Fenwick propagation log. Every node touched by an
// update performs a full read-modify-write of its packed word, so each
// record pays its read, the lane unpack, its write, and the lane repack.
func UpdateCost(ops []fenwickidx.SlotOp) (uint64, []Item) {
	if len(ops) == 0 {
		return 0, nil
	}
	var total uint64
	items := make([]Item, 0, len(ops))
	for _, op := range ops {
		gas := readGas(op.Read) + constants.UnpackGas +
			writeGas(op.Write) + constants.PackGas
		total += gas
		items = append(items, Item{Tick: op.Tick, Word: op.Word, Gas: gas})
	}
	return total, items
}

// QueryCost prices a prefix-sum log. Query nodes only fetch and unpack;
// nothing is written back.
func QueryCost(ops []fenwickidx.SlotOp) (uint64, []Item) {
	if len(ops) == 0 {
		return 0, nil
	}
	var total uint64
	items := make([]Item, 0, len(ops))
	for _, op := range ops {
		gas := readGas(op.Read) + constants.UnpackGas
		total += gas
		items = append(items, Item{Tick: op.Tick, Word: op.Word, Gas: gas})
	}
	return total, items
}
