// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: debug.go — Alloc-free diagnostics for the simulator cold paths
//
// Purpose:
//   - Logs phase transitions, scenario load failures and export errors
//     without introducing heap pressure.
//   - Used only in cold paths: boot, scenario I/O, database export.
//
// Notes:
//   - Avoids fmt.Sprintf; messages are assembled by plain concatenation.
//   - The metered hot paths (Fenwick walks, frontier scans) never log —
//     their observable output is the operation record, not a byte stream.
//
// ⚠️ Never invoke inside a bid or clearing loop.
// ─────────────────────────────────────────────────────────────────────────────

package debug

import "main/utils"

// DropError logs an error with its tag, or just the tag when err is nil.
// Writes directly to stderr through the alloc-free sink in utils.
//
//go:nosplit
//go:inline
func DropError(prefix string, err error) {
	if err != nil {
		utils.PrintWarning(prefix + ": " + err.Error() + "\n")
	} else {
		utils.PrintWarning(prefix + "\n")
	}
}

// DropMessage logs a tagged status line. Used for phase announcements,
// scenario summaries and export confirmations.
//
//go:nosplit
//go:inline
func DropMessage(prefix, message string) {
	utils.PrintWarning(prefix + ": " + message + "\n")
}
