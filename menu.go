// menu.go — interactive operator loop: prompt handling & command dispatch.
//
// The menu is a pure consumer of the core API: it routes bids through the
// engine, renders returned values, and never mutates book state directly.
package main

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"main/bisectbook"
	"main/costdb"
	"main/debug"
	"main/utils"
)

const menuText = "\n" +
	"  bid <tick> <amount>   place one bid\n" +
	"  burst [n]             place n random bids (default " + burstDefault + ")\n" +
	"  depth                 render the book\n" +
	"  state                 show clearing boundary and admitted volume\n" +
	"  clear <volume>        execute a sale (bisect backend only)\n" +
	"  history               show recent exported runs\n" +
	"  quit                  export and exit\n"

// runMenu drives one interactive session until quit/EOF.
func runMenu(sess *session, gen *bidGen, dbPath string) {
	utils.Print(menuText)
	sc := bufio.NewScanner(os.Stdin)
	for {
		utils.Print("> ")
		if !sc.Scan() {
			return
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "bid":
			cmdBid(sess, fields[1:])
		case "burst":
			cmdBurst(sess, gen, fields[1:])
		case "depth":
			utils.Print(renderDepth(sess.engine.Depth(), sess.engine.State(), sess.cfg))
		case "state":
			st := sess.engine.State()
			utils.Print("clearing " + utils.I64toa(st.Clearing) +
				", admitted " + utils.Utoa(st.Admitted) + "\n")
		case "clear":
			cmdClear(sess, fields[1:])
		case "history":
			cmdHistory(dbPath)
		case "quit", "q", "exit":
			return
		case "help", "?":
			utils.Print(menuText)
		default:
			utils.Print("unknown command; try help\n")
		}
	}
}

func cmdBid(sess *session, args []string) {
	if len(args) != 2 {
		utils.Print("usage: bid <tick> <amount>\n")
		return
	}
	tick, err1 := strconv.ParseInt(args[0], 10, 64)
	amount, err2 := strconv.ParseUint(args[1], 10, 64)
	if err1 != nil || err2 != nil || amount == 0 {
		utils.Print("usage: bid <tick> <amount>\n")
		return
	}
	rc, err := sess.place(tick, amount)
	if err != nil {
		debug.DropError("BID", err)
		return
	}
	utils.Print(renderReceipt(rc))
}

func cmdBurst(sess *session, gen *bidGen, args []string) {
	n := 0
	if len(args) == 1 {
		if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
			n = v
		}
	}
	if n == 0 {
		n = gen.defaultBurst()
	}

	var gas uint64
	for i := 0; i < n; i++ {
		tick, amount := gen.next()
		rc, err := sess.place(tick, amount)
		if err != nil {
			debug.DropError("BURST", err)
			return
		}
		gas += rc.TotalGas
	}
	st := sess.engine.State()
	utils.Print(utils.Itoa(n) + " bids, " + utils.Utoa(gas) + " gas, clearing " +
		utils.I64toa(st.Clearing) + ", admitted " + utils.Utoa(st.Admitted) + "\n")
}

func cmdClear(sess *session, args []string) {
	book, ok := sess.engine.(*bisectbook.Book)
	if !ok {
		utils.Print("clear: frontier backend clears on every bid\n")
		return
	}
	if len(args) != 1 {
		utils.Print("usage: clear <volume>\n")
		return
	}
	target, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || target == 0 {
		utils.Print("usage: clear <volume>\n")
		return
	}
	out := book.Clear(target)
	if out.Price < 0 {
		utils.Print("insufficient liquidity (search gas " +
			utils.Utoa(out.SearchGas) + ")\n")
		return
	}
	utils.Print("cleared " + utils.Utoa(out.Filled) + " at price " +
		utils.I64toa(out.Price) + ": search gas " + utils.Utoa(out.SearchGas) +
		", fill gas " + utils.Utoa(out.FillGas) +
		", total " + utils.Utoa(out.TotalGas) + "\n")
}

func cmdHistory(dbPath string) {
	if dbPath == "" {
		utils.Print("history: cost database disabled\n")
		return
	}
	db, err := costdb.Open(dbPath)
	if err != nil {
		debug.DropError("COSTDB", err)
		return
	}
	defer db.Close()

	runs, err := db.RunHistory(10)
	if err != nil {
		debug.DropError("COSTDB", err)
		return
	}
	if len(runs) == 0 {
		utils.Print("history: no exported runs yet\n")
		return
	}
	for _, r := range runs {
		utils.Print("#" + utils.I64toa(r.ID) + " " + r.Scenario + " [" + r.Backend +
			"] gas " + utils.Utoa(r.TotalGas) + " clearing " +
			utils.I64toa(r.Clearing) + " admitted " + utils.Utoa(r.Admitted) + "\n")
	}
}
