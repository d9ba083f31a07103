package store

import (
	"database/sql"
	"fmt"
	"strings"
)

func (s *Store) insertRecord(rec Record) (int64, error) {
	var seq any
	if rec.Seq > 0 {
		seq = rec.Seq
	}

	var newSeq int64
	err := s.db.QueryRow(`
        INSERT INTO records (seq, timestamp, command, args)
        VALUES (?, ?, ?, ?)
        RETURNING seq;
    `, seq, rec.Timestamp, rec.Command, strings.Join(rec.Args, " ")).Scan(&newSeq)
	if err != nil {
		if isConstraintErr(err) {
			return 0, fmt.Errorf("failed to index record %d: %w", rec.Seq, ErrConstraintViolation)
		}
		return 0, fmt.Errorf("failed to insert record : %w", err)
	}

	if len(rec.AccountIDs) == 0 {
		return newSeq, nil
	}

	stmt, err := s.db.Prepare(`
        INSERT OR IGNORE INTO record_accounts (seq, local_id)
        VALUES (?, ?);
    `)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare record account SQL : %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, id := range rec.AccountIDs {
		if _, err := stmt.Exec(newSeq, id); err != nil {
			return 0, fmt.Errorf("failed to insert record account : %w", err)
		}
	}

	return newSeq, nil
}

// History returns the records that touched localID, newest first.
func (s *Store) History(localID string, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(`
        SELECT r.seq, r.timestamp, r.command, r.args
        FROM records r
        INNER JOIN record_accounts ra ON r.seq = ra.seq
        WHERE ra.local_id = ?
        ORDER BY r.seq DESC
        LIMIT ?
    `, localID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return s.scanRecords(rows)
}

func (s *Store) scanRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		rec := &Record{}
		var args string
		if err := rows.Scan(&rec.Seq, &rec.Timestamp, &rec.Command, &args); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.Args = strings.Fields(args)
		records = append(records, rec)
	}

	return records, rows.Err()
}
