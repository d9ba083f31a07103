package ledger

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestLedgerServerFreshPath(t *testing.T) {
	path := ledgerPath(t)
	s := openLedger(t, path)

	accounts := s.ListAccounts()
	if len(accounts) != 1 || accounts[0] != s.GovernmentAccount() {
		t.Fatalf("expected only the government account, got %d", len(accounts))
	}
	gov := s.GovernmentAccount()
	if gov.Authorization() != Developer || gov.Balance() != 0 {
		t.Fatalf("government auth=%v balance=%d", gov.Authorization(), gov.Balance())
	}

	want := "1700000000.25 open @government " + gov.UUID() + "\n"
	if got := readFile(t, path); got != want {
		t.Fatalf("ledger=%q want=%q", got, want)
	}
}

func TestLedgerServerRestartReproducesState(t *testing.T) {
	path := ledgerPath(t)

	s, err := Open(path, WithClock(fixedClock()))
	if err != nil {
		t.Fatal(err)
	}
	gov := s.GovernmentAccount()
	alice := mustOpen(t, s, "alice")
	bob := mustOpen(t, s, "bob")
	fund(t, s, gov, alice, 100)
	if err := s.Transfer(alice, alice, bob, 40); err != nil {
		t.Fatal(err)
	}
	if err := s.Authorize(gov, bob, Admin); err != nil {
		t.Fatal(err)
	}
	before := s.Snapshots()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	restarted := openLedger(t, path)
	after := restarted.Snapshots()
	if len(before) != len(after) {
		t.Fatalf("accounts before=%d after=%d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("account %d differs after restart: %+v vs %+v", i, before[i], after[i])
		}
	}

	a, _ := restarted.GetAccount("alice")
	b, _ := restarted.GetAccount("bob")
	if a.Balance() != 60 || b.Balance() != 40 {
		t.Fatalf("alice=%d bob=%d want 60/40", a.Balance(), b.Balance())
	}
	if got := len(restarted.Replayed()); got != 6 {
		t.Fatalf("replayed=%d want=6", got)
	}

	lines := strings.Split(strings.TrimSpace(readFile(t, path)), "\n")
	if len(lines) != 6 {
		t.Fatalf("ledger lines=%d want=6 (government anchor must be written once)", len(lines))
	}
}

func TestLedgerServerAnchorsLegacyLedger(t *testing.T) {
	path := ledgerPath(t)
	writeFile(t, path, "1 open alice "+aliceUUID+"\n2 add-balance alice 10\n")

	s := openLedger(t, path)
	govUUID := s.GovernmentAccount().UUID()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	content := readFile(t, path)
	if !strings.HasSuffix(content, " open @government "+govUUID+"\n") {
		t.Fatalf("government anchor not appended:\n%s", content)
	}

	again := openLedger(t, path)
	if got := again.GovernmentAccount().UUID(); got != govUUID {
		t.Fatalf("government uuid changed across restart: %q -> %q", govUUID, got)
	}
}

func TestLedgerServerCorruptLedgerFailsOpen(t *testing.T) {
	path := ledgerPath(t)
	writeFile(t, path, "1 open alice "+aliceUUID+"\n2 foo x y\n")

	s, err := Open(path)
	if s != nil {
		t.Fatal("server returned for corrupt ledger")
	}
	if !errors.Is(err, ErrCorruptLedger) {
		t.Fatalf("expect ErrCorruptLedger, got %v", err)
	}

	if got := readFile(t, path); got != "1 open alice "+aliceUUID+"\n2 foo x y\n" {
		t.Fatalf("corrupt ledger was modified: %q", got)
	}

	// The lock must be released so the ledger can be repaired and reopened.
	writeFile(t, path, "1 open alice "+aliceUUID+"\n")
	openLedger(t, path)
}

func TestLedgerServerFailedCallsWriteNothing(t *testing.T) {
	path := ledgerPath(t)
	s := openLedger(t, path, WithPolicy(RolePolicy{}))
	gov := s.GovernmentAccount()
	alice := mustOpen(t, s, "alice")
	bob := mustOpen(t, s, "bob")
	fund(t, s, gov, alice, 10)
	before := readFile(t, path)

	if _, err := s.OpenAccount("alice", ""); !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expect ErrDuplicateAccount, got %v", err)
	}
	if err := s.Transfer(alice, alice, bob, 11); !errors.Is(err, ErrTransferRejected) {
		t.Fatalf("expect ErrTransferRejected, got %v", err)
	}
	if err := s.Transfer(bob, alice, bob, 5); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expect ErrUnauthorized, got %v", err)
	}
	if err := s.Authorize(alice, bob, Admin); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expect ErrUnauthorized, got %v", err)
	}
	if err := s.AddBalance(gov, alice, -11); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expect ErrInvalidAmount, got %v", err)
	}
	if _, err := s.OpenAccount("bad id", ""); !errors.Is(err, ErrInvalidAccountID) {
		t.Fatalf("expect ErrInvalidAccountID, got %v", err)
	}

	if after := readFile(t, path); after != before {
		t.Fatalf("failed calls wrote to the ledger:\n%s", strings.TrimPrefix(after, before))
	}
	if alice.Balance() != 10 || bob.Balance() != 0 || bob.Authorization() != Citizen {
		t.Fatalf("state changed: alice=%d bob=%d auth=%v", alice.Balance(), bob.Balance(), bob.Authorization())
	}
}

func TestLedgerServerSingleWriter(t *testing.T) {
	path := ledgerPath(t)
	first := openLedger(t, path)

	if _, err := Open(path); !errors.Is(err, ErrLedgerLocked) {
		t.Fatalf("expect ErrLedgerLocked, got %v", err)
	}

	if err := first.Close(); err != nil {
		t.Fatal(err)
	}
	openLedger(t, path)
}

func TestLedgerServerClosed(t *testing.T) {
	s := openLedger(t, ledgerPath(t))
	gov := s.GovernmentAccount()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close err=%v", err)
	}

	if _, err := s.OpenAccount("late", ""); !errors.Is(err, ErrClosed) {
		t.Fatalf("expect ErrClosed, got %v", err)
	}
	if err := s.AddBalance(gov, gov, 1); !errors.Is(err, ErrClosed) {
		t.Fatalf("expect ErrClosed, got %v", err)
	}
	if s.HasAccount("late") {
		t.Fatal("account opened after Close")
	}
}

func TestLedgerServerRecordHook(t *testing.T) {
	var got []Record
	var affected [][]AccountSnapshot
	hook := func(rec Record, accounts []AccountSnapshot) {
		got = append(got, rec)
		affected = append(affected, accounts)
	}

	s := openLedger(t, ledgerPath(t), WithRecordHook(hook))
	gov := s.GovernmentAccount()
	alice := mustOpen(t, s, "alice")
	fund(t, s, gov, alice, 25)

	if len(got) != 2 {
		t.Fatalf("hook calls=%d want=2 (replay and anchoring must not notify)", len(got))
	}
	if got[1].Command != CommandAddBalance || got[1].Timestamp == 0 {
		t.Fatalf("second record=%+v", got[1])
	}
	if len(affected[1]) != 1 || affected[1][0].LocalID != "alice" || affected[1][0].Balance != 25 {
		t.Fatalf("affected=%+v", affected[1])
	}
}

func TestLedgerServerConcurrentWriters(t *testing.T) {
	path := ledgerPath(t)
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	gov := s.GovernmentAccount()
	a := mustOpen(t, s, "a")
	b := mustOpen(t, s, "b")
	fund(t, s, gov, a, 500)

	const n = 100
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = s.Transfer(a, a, b, 3)
		}()
		go func() {
			defer wg.Done()
			_ = s.Transfer(b, b, a, 2)
		}()
	}
	wg.Wait()

	wantA, wantB := a.Balance(), b.Balance()
	if wantA+wantB != 500 {
		t.Fatalf("total=%d want=500", wantA+wantB)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	restarted := openLedger(t, path)
	ra, _ := restarted.GetAccount("a")
	rb, _ := restarted.GetAccount("b")
	if ra.Balance() != wantA || rb.Balance() != wantB {
		t.Fatalf("replay a=%d b=%d want %d/%d", ra.Balance(), rb.Balance(), wantA, wantB)
	}
}
