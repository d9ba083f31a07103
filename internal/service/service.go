package service

import (
	"log/slog"

	"github.com/hance08/treasury/internal/ledger"
	"github.com/hance08/treasury/internal/store"
)

// Ledger is the server surface the services drive. Both
// *ledger.InMemoryServer and *ledger.LedgerServer satisfy it.
type Ledger interface {
	ledger.Server
	ledger.Minter
	ledger.AuthoredOpener
	Snapshot(id string) (ledger.AccountSnapshot, error)
	Snapshots() []ledger.AccountSnapshot
	MoneySupply() int64
}

type Service struct {
	Account *AccountService
	Money   *MoneyService
	Report  *ReportService
}

// NewService wires the services over lg. repo may be nil when the read
// index is disabled.
func NewService(lg Ledger, repo store.Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		Account: NewAccountService(lg),
		Money:   NewMoneyService(lg),
		Report:  NewReportService(lg, repo, logger),
	}
}

// resolveAs is resolve for privileged commands: the first id is the author
// and may not be empty.
func resolveAs(lg Ledger, authorID string, ids ...string) ([]*ledger.Account, error) {
	if authorID == "" {
		return nil, ErrAuthorRequired
	}
	return resolve(lg, append([]string{authorID}, ids...)...)
}

// resolve looks up every id, failing on the first one that is unknown.
func resolve(lg Ledger, ids ...string) ([]*ledger.Account, error) {
	accounts := make([]*ledger.Account, len(ids))
	for i, id := range ids {
		acc, err := lg.GetAccount(id)
		if err != nil {
			return nil, err
		}
		accounts[i] = acc
	}
	return accounts, nil
}
