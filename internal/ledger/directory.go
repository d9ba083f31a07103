package ledger

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// GovernmentID is the reserved local identifier of the government account.
const GovernmentID = "@government"

// directory is the bidirectional localId <-> Account mapping of one server.
// It does no locking of its own; every method expects the server lock held.
type directory struct {
	mu         *sync.RWMutex
	accounts   map[string]*Account
	localIDs   map[*Account]string
	government *Account

	// anchored is set once the government account's UUID has been read from
	// or written to the ledger.
	anchored bool
}

func newDirectory(mu *sync.RWMutex) *directory {
	d := &directory{
		mu:       mu,
		accounts: make(map[string]*Account),
		localIDs: make(map[*Account]string),
	}

	gov, err := d.open(GovernmentID, "")
	if err != nil {
		panic(fmt.Sprintf("ledger: open government account: %v", err))
	}
	gov.auth = Developer
	d.government = gov

	return d
}

// ValidateLocalID checks that id can be written as a single ledger field.
func ValidateLocalID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidAccountID)
	}
	if !utf8.ValidString(id) {
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidAccountID, id)
	}
	if strings.IndexFunc(id, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidAccountID, id)
	}
	return nil
}

func (d *directory) open(id, accountUUID string) (*Account, error) {
	if err := ValidateLocalID(id); err != nil {
		return nil, err
	}
	if _, ok := d.accounts[id]; ok {
		return nil, fmt.Errorf("failed to open account '%s': %w", id, ErrDuplicateAccount)
	}

	if accountUUID == "" {
		accountUUID = uuid.NewString()
	} else if err := uuid.Validate(accountUUID); err != nil {
		return nil, fmt.Errorf("%w: bad uuid %q for '%s': %v", ErrInvalidAccountID, accountUUID, id, err)
	}

	acc := newAccount(d.mu, accountUUID)
	d.accounts[id] = acc
	d.localIDs[acc] = id
	return acc, nil
}

// remove undoes an open whose ledger record could not be written.
func (d *directory) remove(id string) {
	if acc, ok := d.accounts[id]; ok {
		delete(d.localIDs, acc)
		delete(d.accounts, id)
	}
}

// anchorGovernment gives the auto-created government account the UUID
// recorded in the ledger. It may happen only once per directory.
func (d *directory) anchorGovernment(accountUUID string) error {
	if d.anchored {
		return fmt.Errorf("failed to open account '%s': %w", GovernmentID, ErrDuplicateAccount)
	}
	if err := uuid.Validate(accountUUID); err != nil {
		return fmt.Errorf("%w: bad uuid %q for '%s': %v", ErrInvalidAccountID, accountUUID, GovernmentID, err)
	}
	d.government.uuid = accountUUID
	d.anchored = true
	return nil
}

func (d *directory) get(id string) (*Account, error) {
	acc, ok := d.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account '%s': %w", id, ErrUnknownAccount)
	}
	return acc, nil
}

func (d *directory) localID(acc *Account) (string, error) {
	id, ok := d.localIDs[acc]
	if !ok {
		return "", ErrUnregisteredAccount
	}
	return id, nil
}

// localIDsOf resolves every account or fails on the first unregistered one.
func (d *directory) localIDsOf(accounts ...*Account) ([]string, error) {
	ids := make([]string, len(accounts))
	for i, acc := range accounts {
		id, err := d.localID(acc)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func (d *directory) has(id string) bool {
	_, ok := d.accounts[id]
	return ok
}

// sortedIDs returns every local identifier in lexical order.
func (d *directory) sortedIDs() []string {
	ids := make([]string, 0, len(d.accounts))
	for id := range d.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (d *directory) list() []*Account {
	ids := d.sortedIDs()
	out := make([]*Account, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.accounts[id])
	}
	return out
}

func (d *directory) snapshot(acc *Account) AccountSnapshot {
	return acc.snapshot(d.localIDs[acc])
}

func (d *directory) snapshots(ids ...string) []AccountSnapshot {
	out := make([]AccountSnapshot, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		acc, ok := d.accounts[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, acc.snapshot(id))
	}
	return out
}
