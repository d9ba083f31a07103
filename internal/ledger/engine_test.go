package ledger

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestTransferConservesBalance(t *testing.T) {
	tests := []struct {
		name     string
		funds    int64
		amount   int64
		wantSrc  int64
		wantDest int64
	}{
		{"partial", 100, 40, 60, 40},
		{"everything", 100, 100, 0, 100},
		{"one unit", 1, 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewInMemoryServer()
			gov := s.GovernmentAccount()
			src := mustOpen(t, s, "src")
			dst := mustOpen(t, s, "dst")
			fund(t, s, gov, src, tt.funds)

			if !s.CanTransfer(src, dst, tt.amount) {
				t.Fatalf("CanTransfer=false want true")
			}
			if err := s.Transfer(src, src, dst, tt.amount); err != nil {
				t.Fatal(err)
			}
			if src.Balance() != tt.wantSrc || dst.Balance() != tt.wantDest {
				t.Fatalf("src=%d dst=%d want %d/%d", src.Balance(), dst.Balance(), tt.wantSrc, tt.wantDest)
			}
			if total := src.Balance() + dst.Balance(); total != tt.funds {
				t.Fatalf("total=%d want=%d", total, tt.funds)
			}
		})
	}
}

func TestTransferRejected(t *testing.T) {
	tests := []struct {
		name       string
		amount     int64
		freezeSrc  bool
		freezeDest bool
		want       RejectReason
	}{
		{"zero amount", 0, false, false, ReasonNonPositiveAmount},
		{"negative amount", -5, false, false, ReasonNonPositiveAmount},
		{"insufficient funds", 51, false, false, ReasonInsufficientFunds},
		{"source frozen", 10, true, false, ReasonSourceFrozen},
		{"destination frozen", 10, false, true, ReasonDestinationFrozen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewInMemoryServer()
			src := mustOpen(t, s, "src")
			dst := mustOpen(t, s, "dst")
			fund(t, s, s.GovernmentAccount(), src, 50)
			if err := s.SetFrozen(src, tt.freezeSrc); err != nil {
				t.Fatal(err)
			}
			if err := s.SetFrozen(dst, tt.freezeDest); err != nil {
				t.Fatal(err)
			}

			if s.CanTransfer(src, dst, tt.amount) {
				t.Fatal("CanTransfer=true want false")
			}

			err := s.Transfer(src, src, dst, tt.amount)
			if !errors.Is(err, ErrTransferRejected) {
				t.Fatalf("expect ErrTransferRejected, got %v", err)
			}
			var rejected *TransferRejectedError
			if !errors.As(err, &rejected) || rejected.Reason != tt.want {
				t.Fatalf("reason=%v want=%q", err, tt.want)
			}
			if src.Balance() != 50 || dst.Balance() != 0 {
				t.Fatalf("balances changed: src=%d dst=%d", src.Balance(), dst.Balance())
			}
		})
	}
}

func TestTransferUnregisteredAccount(t *testing.T) {
	s := NewInMemoryServer()
	other := NewInMemoryServer()
	src := mustOpen(t, s, "src")
	fund(t, s, s.GovernmentAccount(), src, 10)
	outsider := mustOpen(t, other, "outsider")

	if err := s.Transfer(src, src, outsider, 5); !errors.Is(err, ErrUnregisteredAccount) {
		t.Fatalf("expect ErrUnregisteredAccount, got %v", err)
	}
	if src.Balance() != 10 {
		t.Fatalf("src balance=%d want=10", src.Balance())
	}
}

func TestTransferToSelf(t *testing.T) {
	s := NewInMemoryServer()
	a := mustOpen(t, s, "a")
	fund(t, s, s.GovernmentAccount(), a, 30)

	if err := s.Transfer(a, a, a, 30); err != nil {
		t.Fatal(err)
	}
	if a.Balance() != 30 {
		t.Fatalf("balance=%d want=30", a.Balance())
	}
}

func TestTransferOverflowRejected(t *testing.T) {
	s := NewInMemoryServer()
	gov := s.GovernmentAccount()
	src := mustOpen(t, s, "src")
	dst := mustOpen(t, s, "dst")
	fund(t, s, gov, src, 10)
	fund(t, s, gov, dst, math.MaxInt64-5)

	err := s.Transfer(src, src, dst, 10)
	var rejected *TransferRejectedError
	if !errors.As(err, &rejected) || rejected.Reason != ReasonBalanceOutOfBounds {
		t.Fatalf("expect ReasonBalanceOutOfBounds, got %v", err)
	}
}

func TestAuthorize(t *testing.T) {
	s := NewInMemoryServer()
	gov := s.GovernmentAccount()
	a := mustOpen(t, s, "a")

	for _, level := range []Authorization{Admin, Developer, Citizen} {
		if err := s.Authorize(gov, a, level); err != nil {
			t.Fatalf("Authorize(%v) err=%v", level, err)
		}
		if a.Authorization() != level {
			t.Fatalf("auth=%v want=%v", a.Authorization(), level)
		}
	}

	if err := s.Authorize(gov, a, Authorization(7)); !errors.Is(err, ErrInvalidAuthorization) {
		t.Fatalf("expect ErrInvalidAuthorization, got %v", err)
	}
	if a.Authorization() != Citizen {
		t.Fatalf("auth changed on invalid level: %v", a.Authorization())
	}
}

func TestAddBalance(t *testing.T) {
	s := NewInMemoryServer()
	gov := s.GovernmentAccount()
	a := mustOpen(t, s, "a")

	fund(t, s, gov, a, 100)
	fund(t, s, gov, a, -40)
	if a.Balance() != 60 {
		t.Fatalf("balance=%d want=60", a.Balance())
	}

	for _, amount := range []int64{0, -61} {
		if err := s.AddBalance(gov, a, amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("AddBalance(%d) expect ErrInvalidAmount, got %v", amount, err)
		}
	}
	if a.Balance() != 60 {
		t.Fatalf("balance=%d want=60", a.Balance())
	}
	if got := s.MoneySupply(); got != 60 {
		t.Fatalf("MoneySupply=%d want=60", got)
	}
}

func TestConcurrentTransfersConserveTotal(t *testing.T) {
	s := NewInMemoryServer()
	gov := s.GovernmentAccount()
	a := mustOpen(t, s, "a")
	b := mustOpen(t, s, "b")
	fund(t, s, gov, a, 1000)
	fund(t, s, gov, b, 1000)

	const n = 200
	var wg sync.WaitGroup
	wg.Add(3 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := s.Transfer(a, a, b, 1); err != nil {
				t.Errorf("a->b: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := s.Transfer(b, b, a, 1); err != nil {
				t.Errorf("b->a: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if total := s.MoneySupply(); total != 2000 {
				t.Errorf("observed money supply %d mid-transfer", total)
			}
		}()
	}
	wg.Wait()

	if total := a.Balance() + b.Balance(); total != 2000 {
		t.Fatalf("total=%d want=2000", total)
	}
}
