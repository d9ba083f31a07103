package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	return func() time.Time { return time.Unix(1700000000, 250000000) }
}

func mustOpen(t *testing.T, s interface {
	OpenAccount(id, accountUUID string) (*Account, error)
}, id string) *Account {
	t.Helper()
	acc, err := s.OpenAccount(id, "")
	if err != nil {
		t.Fatalf("OpenAccount(%q) err=%v", id, err)
	}
	return acc
}

func fund(t *testing.T, s Minter, gov, acc *Account, amount int64) {
	t.Helper()
	if err := s.AddBalance(gov, acc, amount); err != nil {
		t.Fatalf("AddBalance(%d) err=%v", amount, err)
	}
}

func ledgerPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "ledger.txt")
}

func openLedger(t *testing.T, path string, opts ...Option) *LedgerServer {
	t.Helper()
	opts = append([]Option{WithClock(fixedClock())}, opts...)
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open(%s) err=%v", path, err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) err=%v", path, err)
	}
	return string(b)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%s) err=%v", path, err)
	}
}
