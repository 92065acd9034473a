// ════════════════════════════════════════════════════════════════════════════════════════════════
// Metered Auction-Book Simulator - Main Entry Point
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Metered Auction-Book Simulator
// Component: Main Entry Point & Session Orchestration
//
// Description:
//   Boots one bidding session over a chosen clearing backend and drives it
//   either from a scripted scenario or from the interactive menu.
//   Bootstrap → Scripted Replay / Interactive Loop → Report Export
//
// Architecture:
//   - Phase 0: Configuration parsing and backend construction
//   - Phase 1: Scenario replay (deterministic) or menu loop (operator-driven)
//   - Phase 2: Report dump (JSON) and cost-database export (SQLite)
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"flag"

	"main/auction"
	"main/bisectbook"
	"main/constants"
	"main/costdb"
	"main/debug"
	"main/frontierbook"
	"main/scenario"
	"main/utils"
)

// session is one operator-facing run: the configured engine plus everything
// accumulated for the final report.
type session struct {
	cfg      auction.Config
	engine   auction.Engine
	bids     []scenario.Bid
	receipts []*auction.Receipt
	name     string
}

// buildEngine is the configuration-driven backend selection point. The two
// strategies share the Engine capability and nothing else.
func buildEngine(cfg auction.Config) auction.Engine {
	if cfg.Backend == auction.BackendFrontier {
		return frontierbook.New(cfg.MaxTicks, cfg.SaleSupply)
	}
	return bisectbook.New(cfg.MaxTicks, cfg.SaleSupply)
}

// place routes one bid through the engine and accumulates the receipt.
func (s *session) place(tick int64, amount uint64) (*auction.Receipt, error) {
	rc, err := s.engine.Bid(tick, amount)
	if err != nil {
		return nil, err
	}
	s.bids = append(s.bids, scenario.Bid{Tick: tick, Amount: amount})
	s.receipts = append(s.receipts, rc)
	return rc, nil
}

// report flattens the session into its exportable form.
func (s *session) report() *scenario.Report {
	return scenario.BuildReport(s.name, s.cfg.Backend.String(), s.receipts)
}

// main orchestrates the session lifecycle in distinct phases.
func main() {
	// PHASE 0: Configuration and backend construction
	scenarioPath := flag.String("scenario", "", "bid script to replay (JSON)")
	backendName := flag.String("backend", "bisect", "clearing backend: bisect | frontier")
	maxTicks := flag.Int64("ticks", constants.DefaultMaxTicks, "tick capacity of the book")
	supply := flag.Uint64("supply", constants.DefaultSaleSupply, "fixed sale supply")
	seed := flag.Int64("seed", 1, "random bid generator seed")
	dbPath := flag.String("db", "costs.db", "cost database path (empty disables export)")
	reportPath := flag.String("report", "", "write the run report JSON here")
	compare := flag.Bool("compare", false, "replay the scenario on both backends")
	flag.Parse()

	var sess *session
	if *scenarioPath != "" {
		script, err := scenario.Load(*scenarioPath)
		if err != nil {
			debug.DropError("SCENARIO", err)
			return
		}
		cfg, _ := script.Config()
		debug.DropMessage("INIT", "scenario "+script.Name+" backend "+cfg.Backend.String()+
			" ticks "+utils.I64toa(cfg.MaxTicks)+" supply "+utils.Utoa(cfg.SaleSupply))

		// PHASE 1: Deterministic replay
		sess = replayScript(script, cfg)
		if sess == nil {
			return
		}
		if *compare {
			other := cfg
			other.Backend = otherBackend(cfg.Backend)
			peer := replayScript(script, other)
			if peer != nil {
				printComparison(sess, peer)
				exportSession(peer, *dbPath, "")
			}
		}
	} else {
		backend, err := auction.ParseBackend(*backendName)
		if err != nil {
			debug.DropError("INIT", err)
			return
		}
		cfg := auction.Config{Backend: backend, MaxTicks: *maxTicks, SaleSupply: *supply}
		sess = &session{cfg: cfg, engine: buildEngine(cfg), name: "interactive"}
		debug.DropMessage("INIT", "interactive backend "+backend.String()+
			" ticks "+utils.I64toa(cfg.MaxTicks)+" supply "+utils.Utoa(cfg.SaleSupply))

		// PHASE 1: Operator loop
		runMenu(sess, newBidGen(*seed, cfg.MaxTicks), *dbPath)
	}

	// PHASE 2: Report dump and cost-database export
	exportSession(sess, *dbPath, *reportPath)
}

// replayScript runs every scripted bid against a fresh engine.
func replayScript(script *scenario.Script, cfg auction.Config) *session {
	sess := &session{cfg: cfg, engine: buildEngine(cfg), name: script.Name}
	for i, b := range script.Bids {
		if _, err := sess.place(b.Tick, b.Amount); err != nil {
			debug.DropError("BID "+utils.Itoa(i), err)
			return nil
		}
	}
	r := sess.report()
	debug.DropMessage("REPLAY", cfg.Backend.String()+": "+utils.Itoa(len(script.Bids))+
		" bids, total gas "+utils.Utoa(r.TotalGas)+
		", clearing "+utils.I64toa(r.Clearing)+
		", admitted "+utils.Utoa(r.Admitted))
	return sess
}

// otherBackend flips the strategy for -compare runs.
func otherBackend(b auction.Backend) auction.Backend {
	if b == auction.BackendFrontier {
		return auction.BackendBisect
	}
	return auction.BackendFrontier
}

// printComparison puts the two backends' phase totals side by side.
func printComparison(a, b *session) {
	ra, rb := a.report(), b.report()
	utils.Print("\n── backend comparison ──────────────────────────\n")
	utils.Print(compareLine(a.cfg.Backend.String(), ra))
	utils.Print(compareLine(b.cfg.Backend.String(), rb))
	utils.Print("────────────────────────────────────────────────\n")
}

func compareLine(name string, r *scenario.Report) string {
	var bidGas, clearGas uint64
	for _, rc := range r.Receipts {
		bidGas += rc.BidGas
		clearGas += rc.ClearGas
	}
	return name + ": bid gas " + utils.Utoa(bidGas) +
		", clear gas " + utils.Utoa(clearGas) +
		", total " + utils.Utoa(r.TotalGas) +
		", clearing " + utils.I64toa(r.Clearing) +
		", admitted " + utils.Utoa(r.Admitted) + "\n"
}

// exportSession writes the JSON report and the sqlite rows. Failures are
// logged and skipped: exports are artifacts, never part of the run result.
func exportSession(sess *session, dbPath, reportPath string) {
	if sess == nil || len(sess.receipts) == 0 {
		return
	}
	r := sess.report()

	if reportPath != "" {
		if err := scenario.SaveReport(reportPath, r); err != nil {
			debug.DropError("REPORT", err)
		} else {
			debug.DropMessage("REPORT", reportPath)
		}
	}

	if dbPath != "" {
		db, err := costdb.Open(dbPath)
		if err != nil {
			debug.DropError("COSTDB", err)
			return
		}
		defer db.Close()
		runID, err := db.RecordRun(r)
		if err != nil {
			debug.DropError("COSTDB", err)
			return
		}
		debug.DropMessage("COSTDB", "run "+utils.I64toa(runID)+" ("+
			utils.Itoa(len(r.Items))+" items)")
	}
}
