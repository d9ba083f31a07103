package service

import (
	"log/slog"

	"github.com/hance08/treasury/internal/ledger"
	"github.com/hance08/treasury/internal/store"
)

// NewIndexHook mirrors every committed record into repo. The ledger is the
// source of truth, so index failures are logged and otherwise ignored.
func NewIndexHook(repo store.Repository, logger *slog.Logger) ledger.RecordHook {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(rec ledger.Record, affected []ledger.AccountSnapshot) {
		accounts := make([]store.Account, len(affected))
		for i, snap := range affected {
			accounts[i] = toStoreAccount(snap)
		}

		if err := repo.ApplyRecord(toStoreRecord(0, rec), accounts); err != nil {
			logger.Warn("failed to update read index",
				"command", string(rec.Command),
				"error", err,
			)
		}
	}
}

// RebuildIndex replaces the index contents with the replayed records and
// the current account state.
func RebuildIndex(repo store.Repository, records []ledger.Record, snaps []ledger.AccountSnapshot) error {
	storeRecords := make([]store.Record, len(records))
	for i, rec := range records {
		storeRecords[i] = toStoreRecord(int64(i+1), rec)
	}

	accounts := make([]store.Account, len(snaps))
	for i, snap := range snaps {
		accounts[i] = toStoreAccount(snap)
	}

	return repo.Rebuild(accounts, storeRecords)
}

func toStoreRecord(seq int64, rec ledger.Record) store.Record {
	return store.Record{
		Seq:        seq,
		Timestamp:  rec.Timestamp,
		Command:    string(rec.Command),
		Args:       rec.Args,
		AccountIDs: rec.AccountIDs(),
	}
}

func toStoreAccount(snap ledger.AccountSnapshot) store.Account {
	return store.Account{
		LocalID:       snap.LocalID,
		UUID:          snap.UUID,
		Balance:       snap.Balance,
		Frozen:        snap.Frozen,
		Authorization: snap.Authorization.String(),
	}
}
