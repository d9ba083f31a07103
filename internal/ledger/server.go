package ledger

import (
	"strconv"
	"sync"
)

// Server manages accounts that share one currency.
type Server interface {
	// OpenAccount opens an empty account under id. An empty accountUUID
	// generates a fresh one.
	OpenAccount(id, accountUUID string) (*Account, error)
	GetAccount(id string) (*Account, error)
	GetAccountLocalID(account *Account) (string, error)
	HasAccount(id string) bool
	GovernmentAccount() *Account
	ListAccounts() []*Account
	Authorize(author, account *Account, level Authorization) error
	Transfer(author, source, destination *Account, amount int64) error
	CanTransfer(source, destination *Account, amount int64) bool
}

// Minter adjusts a balance directly, injecting money into or removing it
// from the economy.
type Minter interface {
	AddBalance(author, account *Account, amount int64) error
}

// AuthoredOpener opens an account on behalf of author, subject to policy.
type AuthoredOpener interface {
	OpenAccountAs(author *Account, id, accountUUID string) (*Account, error)
}

var (
	_ Server         = (*InMemoryServer)(nil)
	_ Minter         = (*InMemoryServer)(nil)
	_ AuthoredOpener = (*InMemoryServer)(nil)
)

// InMemoryServer keeps accounts in memory only. It is the state that
// LedgerServer persists and replays.
type InMemoryServer struct {
	mu     sync.RWMutex
	dir    *directory
	policy Policy
	hook   RecordHook
}

func NewInMemoryServer(opts ...Option) *InMemoryServer {
	o := newOptions(opts)
	return newInMemoryServer(o)
}

func newInMemoryServer(o options) *InMemoryServer {
	s := &InMemoryServer{
		policy: o.policy,
		hook:   o.hook,
	}
	s.dir = newDirectory(&s.mu)
	return s
}

func (s *InMemoryServer) OpenAccount(id, accountUUID string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, rec, _, err := s.openLocked(nil, id, accountUUID)
	if err != nil {
		return nil, err
	}
	s.notify(rec)
	return acc, nil
}

func (s *InMemoryServer) OpenAccountAs(author *Account, id, accountUUID string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, rec, _, err := s.openLocked(author, id, accountUUID)
	if err != nil {
		return nil, err
	}
	s.notify(rec)
	return acc, nil
}

func (s *InMemoryServer) GetAccount(id string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dir.get(id)
}

func (s *InMemoryServer) GetAccountLocalID(account *Account) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dir.localID(account)
}

func (s *InMemoryServer) HasAccount(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dir.has(id)
}

func (s *InMemoryServer) GovernmentAccount() *Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dir.government
}

// ListAccounts returns every account ordered by local identifier.
func (s *InMemoryServer) ListAccounts() []*Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dir.list()
}

// Snapshots copies every account's state in one consistent read.
func (s *InMemoryServer) Snapshots() []AccountSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dir.snapshots(s.dir.sortedIDs()...)
}

// Snapshot copies the state of the account registered under id.
func (s *InMemoryServer) Snapshot(id string) (AccountSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, err := s.dir.get(id)
	if err != nil {
		return AccountSnapshot{}, err
	}
	return acc.snapshot(id), nil
}

// MoneySupply sums every balance on the server. The sum saturates at the
// int64 bounds instead of wrapping.
func (s *InMemoryServer) MoneySupply() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, acc := range s.dir.accounts {
		total = saturatingAdd(total, acc.balance)
	}
	return total
}

func (s *InMemoryServer) Authorize(author, account *Account, level Authorization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, _, err := s.authorizeLocked(author, account, level)
	if err != nil {
		return err
	}
	s.notify(rec)
	return nil
}

func (s *InMemoryServer) Transfer(author, source, destination *Account, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, _, err := s.transferLocked(author, source, destination, amount)
	if err != nil {
		return err
	}
	s.notify(rec)
	return nil
}

func (s *InMemoryServer) CanTransfer(source, destination *Account, amount int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := checkTransfer(source, destination, amount)
	return ok
}

func (s *InMemoryServer) AddBalance(author, account *Account, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, _, err := s.addBalanceLocked(author, account, amount)
	if err != nil {
		return err
	}
	s.notify(rec)
	return nil
}

// SetFrozen freezes or thaws an account. The ledger has no record for it, so
// only the in-memory server offers it.
func (s *InMemoryServer) SetFrozen(account *Account, frozen bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.dir.localID(account); err != nil {
		return err
	}
	account.frozen = frozen
	return nil
}

// The *Locked methods validate and mutate, returning the record to commit
// and a func that reverts the mutation. The caller holds s.mu for writing.

func (s *InMemoryServer) openLocked(author *Account, id, accountUUID string) (*Account, Record, func(), error) {
	if author != nil {
		if _, err := s.dir.localID(author); err != nil {
			return nil, Record{}, nil, err
		}
		if err := s.policy.CanOpen(s.dir.snapshot(author)); err != nil {
			return nil, Record{}, nil, err
		}
	}

	acc, err := s.dir.open(id, accountUUID)
	if err != nil {
		return nil, Record{}, nil, err
	}

	rec := newRecord(CommandOpen, id, acc.uuid)
	return acc, rec, func() { s.dir.remove(id) }, nil
}

func (s *InMemoryServer) authorizeLocked(author, account *Account, level Authorization) (Record, func(), error) {
	ids, err := s.dir.localIDsOf(author, account)
	if err != nil {
		return Record{}, nil, err
	}
	if !level.Valid() {
		return Record{}, nil, ErrInvalidAuthorization
	}
	if err := s.policy.CanAuthorize(s.dir.snapshot(author), s.dir.snapshot(account), level); err != nil {
		return Record{}, nil, err
	}

	undo, err := authorize(account, level)
	if err != nil {
		return Record{}, nil, err
	}

	return newRecord(CommandAuthorize, ids[0], ids[1], level.String()), undo, nil
}

func (s *InMemoryServer) transferLocked(author, source, destination *Account, amount int64) (Record, func(), error) {
	ids, err := s.dir.localIDsOf(author, source, destination)
	if err != nil {
		return Record{}, nil, err
	}
	if err := s.policy.CanTransfer(s.dir.snapshot(author), s.dir.snapshot(source)); err != nil {
		return Record{}, nil, err
	}

	undo, err := transfer(source, destination, amount)
	if err != nil {
		return Record{}, nil, err
	}

	return newRecord(CommandTransfer, ids[0], ids[1], ids[2], strconv.FormatInt(amount, 10)), undo, nil
}

func (s *InMemoryServer) addBalanceLocked(author, account *Account, amount int64) (Record, func(), error) {
	ids, err := s.dir.localIDsOf(author, account)
	if err != nil {
		return Record{}, nil, err
	}
	if err := s.policy.CanAddBalance(s.dir.snapshot(author), s.dir.snapshot(account)); err != nil {
		return Record{}, nil, err
	}
	if err := checkAddBalance(account, amount); err != nil {
		return Record{}, nil, err
	}

	undo := addBalance(account, amount)
	return newRecord(CommandAddBalance, ids[1], strconv.FormatInt(amount, 10)), undo, nil
}

func (s *InMemoryServer) notify(rec Record) {
	if s.hook == nil {
		return
	}
	s.hook(rec, s.dir.snapshots(rec.AccountIDs()...))
}
