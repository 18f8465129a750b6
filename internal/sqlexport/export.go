// Package sqlexport writes a hand log out to a SQLite database for ad
// hoc querying, one row per HandRecord.
package sqlexport

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lox/axiomind/internal/handlog"
)

const schema = `
CREATE TABLE IF NOT EXISTS hands (
	hand_id  TEXT PRIMARY KEY NOT NULL,
	seed     INTEGER NULL,
	result   TEXT NULL,
	ts       TEXT NULL,
	actions  INTEGER NOT NULL,
	board    INTEGER NOT NULL,
	raw_json TEXT NOT NULL
)`

// Export reads jsonlPath whole and inserts its hand records into a `hands` table at
// sqlitePath, inside a single transaction so a failure partway through
// never leaves a half-committed table.
func Export(jsonlPath, sqlitePath string) error {
	raw, err := os.ReadFile(jsonlPath)
	if err != nil {
		return err
	}

	db, err := sql.Open("sqlite3", sqlitePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlexport: create schema: %w", err)
	}

	records, rawLines, err := decodeLines(raw)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO hands
		(hand_id, seed, result, ts, actions, board, raw_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, rec := range records {
		var seed any
		if rec.Seed != nil {
			seed = *rec.Seed
		}
		if _, err := stmt.Exec(rec.HandID, seed, nullIfEmpty(rec.Result), nullIfEmpty(rec.Ts),
			len(rec.Actions), len(rec.Board), rawLines[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("sqlexport: insert %s: %w", rec.HandID, err)
		}
	}

	return tx.Commit()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func decodeLines(raw []byte) ([]handlog.HandRecord, []string, error) {
	var rawLines []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rawLines = append(rawLines, line)
	}

	records := make([]handlog.HandRecord, len(rawLines))
	for i, line := range rawLines {
		recs, err := handlog.ReadAll(strings.NewReader(line))
		if err != nil {
			return nil, nil, err
		}
		if len(recs) != 1 {
			return nil, nil, fmt.Errorf("sqlexport: expected one record per line, got %d", len(recs))
		}
		records[i] = recs[0]
	}
	return records, rawLines, nil
}
