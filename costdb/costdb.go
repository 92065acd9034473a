// ════════════════════════════════════════════════════════════════════════════════════════════════
// Cost Database — SQLite Export of Run Gas Accounting
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Metered Auction-Book Simulator
// Component: Run / Item Persistence for Offline Analysis
//
// Description:
//   Writes run headers and itemized gas rows to a local SQLite file so scripted
//   runs can be diffed across backends after the fact. This is a report
//   artifact, not auction state: nothing is ever read back into the book.
//
// Schema:
//   runs(id, scenario, backend, total_gas, clearing, admitted, created_at)
//   gas_items(run_id, seq, tick, word, slot_key, gas)
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package costdb

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"main/scenario"
)

// DB wraps the sqlite handle for run exports.
type DB struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	scenario   TEXT NOT NULL,
	backend    TEXT NOT NULL,
	total_gas  INTEGER NOT NULL,
	clearing   INTEGER NOT NULL,
	admitted   INTEGER NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS gas_items (
	run_id   INTEGER NOT NULL REFERENCES runs(id),
	seq      INTEGER NOT NULL,
	tick     INTEGER NOT NULL,
	word     INTEGER NOT NULL,
	slot_key TEXT NOT NULL,
	gas      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS gas_items_run ON gas_items(run_id);
`

// Open creates or opens the cost database and ensures the schema exists.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

// Close releases the handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// RecordRun inserts one report: header row plus every itemized charge, in a
// single transaction so a crashed export never leaves orphan items.
func (d *DB) RecordRun(r *scenario.Report) (int64, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, err
	}

	res, err := tx.Exec(
		`INSERT INTO runs(scenario, backend, total_gas, clearing, admitted)
		 VALUES(?, ?, ?, ?, ?)`,
		r.Scenario, r.Backend, int64(r.TotalGas), r.Clearing, int64(r.Admitted),
	)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO gas_items(run_id, seq, tick, word, slot_key, gas)
		 VALUES(?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	for _, it := range r.Items {
		if _, err := stmt.Exec(runID, it.Seq, it.Tick, int64(it.Word), it.SlotKey, int64(it.Gas)); err != nil {
			stmt.Close()
			tx.Rollback()
			return 0, err
		}
	}
	stmt.Close()

	return runID, tx.Commit()
}

// RunSummary is one exported run header for the history view.
type RunSummary struct {
	ID       int64
	Scenario string
	Backend  string
	TotalGas uint64
	Clearing int64
	Admitted uint64
}

// RunHistory returns the most recent run headers, newest first.
func (d *DB) RunHistory(limit int) ([]RunSummary, error) {
	rows, err := d.db.Query(
		`SELECT id, scenario, backend, total_gas, clearing, admitted
		 FROM runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var totalGas, admitted int64
		if err := rows.Scan(&r.ID, &r.Scenario, &r.Backend, &totalGas, &r.Clearing, &admitted); err != nil {
			return nil, err
		}
		r.TotalGas = uint64(totalGas)
		r.Admitted = uint64(admitted)
		out = append(out, r)
	}
	return out, rows.Err()
}
