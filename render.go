// render.go — ASCII views of book depth and settlement receipts.
//
// Display only: everything here is built from returned values and the
// unmetered Depth snapshot. No fmt on the output path.
package main

import (
	"main/auction"
	"main/utils"
)

// barBudget caps the widest depth bar in columns.
const barBudget = 48

// renderDepth draws one row per populated tick: tick number, scaled volume
// bar, raw volume, and a marker on the clearing boundary. Sparse books stay
// short because empty ticks are skipped.
func renderDepth(depth []uint64, st auction.BookState, cfg auction.Config) string {
	var maxVol uint64
	populated := 0
	for _, v := range depth {
		if v > 0 {
			populated++
			if v > maxVol {
				maxVol = v
			}
		}
	}
	if populated == 0 {
		return "book is empty\n"
	}

	out := "tick     volume (" + cfg.Backend.String() + ", supply " +
		utils.Utoa(cfg.SaleSupply) + ")\n"
	for t := len(depth) - 1; t >= 0; t-- {
		v := depth[t]
		if v == 0 {
			continue
		}
		cols := int(v * barBudget / maxVol)
		if cols == 0 {
			cols = 1
		}
		line := padTick(int64(t)) + " "
		for i := 0; i < cols; i++ {
			line += "#"
		}
		line += " " + utils.Utoa(v)
		if int64(t) == st.Clearing {
			line += "  <- clearing"
		}
		out += line + "\n"
	}
	if st.Clearing >= int64(len(depth)) {
		out += "frontier exhausted (Pstar = maxTicks)\n"
	}
	return out
}

// padTick right-aligns a tick into 8 columns without fmt.
func padTick(t int64) string {
	s := utils.I64toa(t)
	for len(s) < 8 {
		s = " " + s
	}
	return s
}

// renderReceipt is the one-line settlement view for a manual bid.
func renderReceipt(rc *auction.Receipt) string {
	line := "settled tick " + utils.I64toa(rc.Tick) + " amount " +
		utils.Utoa(rc.Amount) + ": bid gas " + utils.Utoa(rc.BidGas) +
		", clear gas " + utils.Utoa(rc.ClearGas) +
		", clearing " + utils.I64toa(rc.State.Clearing) +
		", admitted " + utils.Utoa(rc.State.Admitted) + "\n"
	for _, ev := range rc.Evictions {
		line += "  frontier " + utils.I64toa(ev.From) + " -> " +
			utils.I64toa(ev.To) + " (scan gas " + utils.Utoa(ev.ScanGas) + ")\n"
	}
	return line
}
