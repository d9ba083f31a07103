package store

import (
	"database/sql"
	"errors"
	"fmt"
)

func (s *Store) upsertAccounts(accounts []Account) error {
	if len(accounts) == 0 {
		return nil
	}

	stmt, err := s.db.Prepare(`
        INSERT INTO accounts (local_id, uuid, balance, frozen, auth_level)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(local_id) DO UPDATE SET
            uuid = excluded.uuid,
            balance = excluded.balance,
            frozen = excluded.frozen,
            auth_level = excluded.auth_level
    `)
	if err != nil {
		return fmt.Errorf("failed to prepare SQL : %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, acc := range accounts {
		if _, err := stmt.Exec(acc.LocalID, acc.UUID, acc.Balance, acc.Frozen, acc.Authorization); err != nil {
			if isConstraintErr(err) {
				return fmt.Errorf("failed to index account '%s': %w", acc.LocalID, ErrConstraintViolation)
			}
			return fmt.Errorf("failed to index account '%s': %w", acc.LocalID, err)
		}
	}
	return nil
}

func (s *Store) GetAccount(localID string) (*Account, error) {
	row := s.db.QueryRow(`
        SELECT local_id, uuid, balance, frozen, auth_level
        FROM accounts
        WHERE local_id = ?
    `, localID)

	acc := &Account{}
	err := row.Scan(&acc.LocalID, &acc.UUID, &acc.Balance, &acc.Frozen, &acc.Authorization)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account '%s': %w", localID, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account '%s': %w", localID, err)
	}
	return acc, nil
}

// Leaderboard returns accounts ordered by balance, richest first. Ties are
// broken by local id so the order is stable.
func (s *Store) Leaderboard(limit int) ([]*Account, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(`
        SELECT local_id, uuid, balance, frozen, auth_level
        FROM accounts
        ORDER BY balance DESC, local_id ASC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return s.scanAccounts(rows)
}

func (s *Store) scanAccounts(rows *sql.Rows) ([]*Account, error) {
	var accounts []*Account
	for rows.Next() {
		acc := &Account{}
		err := rows.Scan(&acc.LocalID, &acc.UUID, &acc.Balance, &acc.Frozen, &acc.Authorization)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}

	return accounts, rows.Err()
}
