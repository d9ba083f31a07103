package service

import (
	"strings"

	"github.com/hance08/treasury/internal/ledger"
)

type AccountService struct {
	lg Ledger
}

func NewAccountService(lg Ledger) *AccountService {
	return &AccountService{lg: lg}
}

// Open opens id on behalf of authorID. Anyone may open their own account;
// opening an account for someone else goes through the policy.
func (as *AccountService) Open(authorID, id string) (ledger.AccountSnapshot, error) {
	if err := ledger.ValidateLocalID(id); err != nil {
		return ledger.AccountSnapshot{}, err
	}

	if authorID == "" || authorID == id {
		if _, err := as.lg.OpenAccount(id, ""); err != nil {
			return ledger.AccountSnapshot{}, err
		}
		return as.lg.Snapshot(id)
	}

	author, err := as.lg.GetAccount(authorID)
	if err != nil {
		return ledger.AccountSnapshot{}, err
	}
	if _, err := as.lg.OpenAccountAs(author, id, ""); err != nil {
		return ledger.AccountSnapshot{}, err
	}
	return as.lg.Snapshot(id)
}

func (as *AccountService) Get(id string) (ledger.AccountSnapshot, error) {
	return as.lg.Snapshot(id)
}

func (as *AccountService) Exists(id string) bool {
	return as.lg.HasAccount(id)
}

// List returns every account ordered by local id.
func (as *AccountService) List() []ledger.AccountSnapshot {
	return as.lg.Snapshots()
}

// Authorize sets targetID's level. levelName is matched case-insensitively.
func (as *AccountService) Authorize(authorID, targetID, levelName string) (ledger.AccountSnapshot, error) {
	level, err := ledger.ParseAuthorization(strings.ToUpper(strings.TrimSpace(levelName)))
	if err != nil {
		return ledger.AccountSnapshot{}, err
	}

	accounts, err := resolveAs(as.lg, authorID, targetID)
	if err != nil {
		return ledger.AccountSnapshot{}, err
	}
	if err := as.lg.Authorize(accounts[0], accounts[1], level); err != nil {
		return ledger.AccountSnapshot{}, err
	}
	return as.lg.Snapshot(targetID)
}
