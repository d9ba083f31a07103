package service

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/hance08/treasury/internal/ledger"
	"github.com/hance08/treasury/internal/store"
)

type SystemStats struct {
	Accounts     int
	Records      int
	MoneySupply  int64
	IndexEnabled bool
}

type ReportService struct {
	lg     Ledger
	repo   store.Repository
	logger *slog.Logger
}

func NewReportService(lg Ledger, repo store.Repository, logger *slog.Logger) *ReportService {
	return &ReportService{lg: lg, repo: repo, logger: logger}
}

// History lists the records that touched id, newest first. It needs the
// read index.
func (rs *ReportService) History(id string, limit int) ([]*store.Record, error) {
	if rs.repo == nil {
		return nil, ErrIndexDisabled
	}
	if !rs.lg.HasAccount(id) {
		return nil, fmt.Errorf("%s: %w", id, ledger.ErrUnknownAccount)
	}
	return rs.repo.History(id, limit)
}

// Leaderboard ranks accounts by balance. Without the index it ranks the
// live snapshots instead.
func (rs *ReportService) Leaderboard(limit int) ([]*store.Account, error) {
	if rs.repo != nil {
		board, err := rs.repo.Leaderboard(limit)
		if err == nil {
			return board, nil
		}
		rs.logger.Warn("index leaderboard failed, using live state", "error", err)
	}

	snaps := rs.lg.Snapshots()
	slices.SortStableFunc(snaps, func(a, b ledger.AccountSnapshot) int {
		if c := cmp.Compare(b.Balance, a.Balance); c != 0 {
			return c
		}
		return cmp.Compare(a.LocalID, b.LocalID)
	})
	if limit > 0 && len(snaps) > limit {
		snaps = snaps[:limit]
	}

	board := make([]*store.Account, len(snaps))
	for i, snap := range snaps {
		acc := toStoreAccount(snap)
		board[i] = &acc
	}
	return board, nil
}

func (rs *ReportService) Stats() (SystemStats, error) {
	st := SystemStats{
		Accounts:     len(rs.lg.Snapshots()),
		MoneySupply:  rs.lg.MoneySupply(),
		IndexEnabled: rs.repo != nil,
	}
	if rs.repo == nil {
		return st, nil
	}

	idx, err := rs.repo.Stats()
	if err != nil {
		return st, err
	}
	st.Records = idx.Records
	return st, nil
}
