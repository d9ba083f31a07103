package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

var (
	_ Server         = (*LedgerServer)(nil)
	_ Minter         = (*LedgerServer)(nil)
	_ AuthoredOpener = (*LedgerServer)(nil)
)

// LedgerServer is an InMemoryServer whose every successful mutation is
// appended to a ledger file. Opening it replays the file first, so the
// in-memory state always equals the replay of what has been written.
type LedgerServer struct {
	mem    *InMemoryServer
	log    *EventLog
	lock   *flock.Flock
	logger *slog.Logger

	replayed []Record
	closed   bool
}

// Open replays the ledger at path and opens it for appending. Only one
// LedgerServer may hold a given path; a second one fails with
// ErrLedgerLocked until the first is closed.
func Open(path string, opts ...Option) (*LedgerServer, error) {
	o := newOptions(opts)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("can not create ledger directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock ledger %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", path, ErrLedgerLocked)
	}

	s, err := open(path, lock, o, opts)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	return s, nil
}

func open(path string, lock *flock.Flock, o options, opts []Option) (*LedgerServer, error) {
	mem, records, err := Replay(path, opts...)
	if err != nil {
		return nil, err
	}

	log, err := OpenEventLog(path, o.sync, o.now)
	if err != nil {
		return nil, err
	}

	s := &LedgerServer{
		mem:      mem,
		log:      log,
		lock:     lock,
		logger:   o.logger,
		replayed: records,
	}

	// Record the government identity once so it survives restarts.
	if !mem.dir.anchored {
		rec, err := log.Append(newRecord(CommandOpen, GovernmentID, mem.dir.government.uuid))
		if err != nil {
			_ = log.Close()
			return nil, err
		}
		mem.dir.anchored = true
		s.replayed = append(s.replayed, rec)
		s.logger.Debug("government account anchored", "uuid", mem.dir.government.uuid)
	}

	s.logger.Info("ledger replayed",
		"path", path,
		"records", len(records),
		"accounts", len(mem.dir.accounts),
	)

	return s, nil
}

// Replayed returns the records read at startup, plus the government anchor
// when one was written.
func (s *LedgerServer) Replayed() []Record {
	return s.replayed
}

// Close flushes the ledger and releases the file and its lock. Mutating
// calls after Close fail with ErrClosed.
func (s *LedgerServer) Close() error {
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	logErr := s.log.Close()
	lockErr := s.lock.Unlock()
	return errors.Join(logErr, lockErr)
}

func (s *LedgerServer) OpenAccount(id, accountUUID string) (*Account, error) {
	return s.openAccount(nil, id, accountUUID)
}

func (s *LedgerServer) OpenAccountAs(author *Account, id, accountUUID string) (*Account, error) {
	return s.openAccount(author, id, accountUUID)
}

func (s *LedgerServer) openAccount(author *Account, id, accountUUID string) (*Account, error) {
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	acc, rec, undo, err := s.mem.openLocked(author, id, accountUUID)
	if err != nil {
		return nil, err
	}
	if err := s.commit(rec, undo); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *LedgerServer) GetAccount(id string) (*Account, error) {
	return s.mem.GetAccount(id)
}

func (s *LedgerServer) GetAccountLocalID(account *Account) (string, error) {
	return s.mem.GetAccountLocalID(account)
}

func (s *LedgerServer) HasAccount(id string) bool {
	return s.mem.HasAccount(id)
}

func (s *LedgerServer) GovernmentAccount() *Account {
	return s.mem.GovernmentAccount()
}

func (s *LedgerServer) ListAccounts() []*Account {
	return s.mem.ListAccounts()
}

func (s *LedgerServer) Snapshots() []AccountSnapshot {
	return s.mem.Snapshots()
}

func (s *LedgerServer) Snapshot(id string) (AccountSnapshot, error) {
	return s.mem.Snapshot(id)
}

func (s *LedgerServer) MoneySupply() int64 {
	return s.mem.MoneySupply()
}

func (s *LedgerServer) CanTransfer(source, destination *Account, amount int64) bool {
	return s.mem.CanTransfer(source, destination, amount)
}

func (s *LedgerServer) Authorize(author, account *Account, level Authorization) error {
	return s.mutate(func() (Record, func(), error) {
		return s.mem.authorizeLocked(author, account, level)
	})
}

func (s *LedgerServer) Transfer(author, source, destination *Account, amount int64) error {
	return s.mutate(func() (Record, func(), error) {
		return s.mem.transferLocked(author, source, destination, amount)
	})
}

func (s *LedgerServer) AddBalance(author, account *Account, amount int64) error {
	return s.mutate(func() (Record, func(), error) {
		return s.mem.addBalanceLocked(author, account, amount)
	})
}

// mutate runs one validate-mutate-append sequence under the write lock.
func (s *LedgerServer) mutate(apply func() (Record, func(), error)) error {
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	rec, undo, err := apply()
	if err != nil {
		return err
	}
	return s.commit(rec, undo)
}

// commit appends rec, reverting the in-memory mutation if the write fails.
func (s *LedgerServer) commit(rec Record, undo func()) error {
	rec, err := s.log.Append(rec)
	if err != nil {
		undo()
		s.logger.Error("ledger append failed, mutation reverted",
			"command", string(rec.Command),
			"error", err,
		)
		return err
	}

	s.logger.Debug("ledger append", "record", rec.String())
	s.mem.notify(rec)
	return nil
}
