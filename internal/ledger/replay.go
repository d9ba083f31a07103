package ledger

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
)

// Replay rebuilds server state from the ledger at path. A missing file
// replays as empty. Records are applied without policy checks and without
// being logged again; any record that cannot be applied aborts the replay
// with a *CorruptLedgerError.
func Replay(path string, opts ...Option) (*InMemoryServer, []Record, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewInMemoryServer(opts...), nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("can not open ledger %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	return ReplayFrom(f, opts...)
}

// ReplayFrom is Replay over an already opened ledger stream.
func ReplayFrom(r io.Reader, opts ...Option) (*InMemoryServer, []Record, error) {
	s := newInMemoryServer(newOptions(opts))

	s.mu.Lock()
	defer s.mu.Unlock()

	var applied []Record
	err := ScanRecords(r, func(line int, rec Record) error {
		if err := s.apply(rec); err != nil {
			return &CorruptLedgerError{Line: line, Command: string(rec.Command), Err: err}
		}
		applied = append(applied, rec)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return s, applied, nil
}

// apply re-executes one record. The caller holds s.mu for writing.
func (s *InMemoryServer) apply(rec Record) error {
	switch rec.Command {
	case CommandOpen:
		if err := wantArgs(rec, 2); err != nil {
			return err
		}
		id, accountUUID := rec.Args[0], rec.Args[1]
		if id == GovernmentID {
			return s.dir.anchorGovernment(accountUUID)
		}
		_, err := s.dir.open(id, accountUUID)
		return err

	case CommandTransfer:
		if err := wantArgs(rec, 4); err != nil {
			return err
		}
		accounts, err := s.resolve(rec.Args[:3]...)
		if err != nil {
			return err
		}
		amount, err := parseAmount(rec.Args[3])
		if err != nil {
			return err
		}
		_, err = transfer(accounts[1], accounts[2], amount)
		return err

	case CommandAuthorize:
		if err := wantArgs(rec, 3); err != nil {
			return err
		}
		accounts, err := s.resolve(rec.Args[:2]...)
		if err != nil {
			return err
		}
		level, err := ParseAuthorization(rec.Args[2])
		if err != nil {
			return err
		}
		_, err = authorize(accounts[1], level)
		return err

	case CommandAddBalance:
		if err := wantArgs(rec, 2); err != nil {
			return err
		}
		acc, err := s.dir.get(rec.Args[0])
		if err != nil {
			return err
		}
		amount, err := parseAmount(rec.Args[1])
		if err != nil {
			return err
		}
		addBalance(acc, amount)
		return nil
	}

	return fmt.Errorf("unknown ledger command '%s'", rec.Command)
}

func (s *InMemoryServer) resolve(ids ...string) ([]*Account, error) {
	accounts := make([]*Account, len(ids))
	for i, id := range ids {
		acc, err := s.dir.get(id)
		if err != nil {
			return nil, err
		}
		accounts[i] = acc
	}
	return accounts, nil
}

func wantArgs(rec Record, n int) error {
	if len(rec.Args) != n {
		return fmt.Errorf("'%s' takes %d arguments, got %d", rec.Command, n, len(rec.Args))
	}
	return nil
}

func parseAmount(s string) (int64, error) {
	amount, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidAmount, s)
	}
	return amount, nil
}
