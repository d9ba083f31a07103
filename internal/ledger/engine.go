package ledger

import (
	"fmt"
	"math"
)

// Balance rules. None of these functions lock; callers hold the server's
// write lock (or the read lock, for checkTransfer alone).

func checkTransfer(source, destination *Account, amount int64) (RejectReason, bool) {
	switch {
	case amount <= 0:
		return ReasonNonPositiveAmount, false
	case source.balance < amount:
		return ReasonInsufficientFunds, false
	case source.frozen:
		return ReasonSourceFrozen, false
	case destination.frozen:
		return ReasonDestinationFrozen, false
	case source != destination && destination.balance > math.MaxInt64-amount:
		return ReasonBalanceOutOfBounds, false
	}
	return "", true
}

// transfer debits source and credits destination, returning the undo.
func transfer(source, destination *Account, amount int64) (func(), error) {
	if reason, ok := checkTransfer(source, destination, amount); !ok {
		return nil, &TransferRejectedError{Reason: reason}
	}

	source.balance -= amount
	destination.balance += amount

	return func() {
		destination.balance -= amount
		source.balance += amount
	}, nil
}

func authorize(account *Account, level Authorization) (func(), error) {
	if !level.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAuthorization, int(level))
	}

	previous := account.auth
	account.auth = level

	return func() { account.auth = previous }, nil
}

// checkAddBalance guards live mint/burn calls. Replay skips it.
func checkAddBalance(account *Account, amount int64) error {
	switch {
	case amount == 0:
		return fmt.Errorf("%w: adjustment must be non-zero", ErrInvalidAmount)
	case amount > 0 && account.balance > math.MaxInt64-amount:
		return fmt.Errorf("%w: balance would overflow", ErrInvalidAmount)
	case amount < 0 && account.balance+amount < 0:
		return fmt.Errorf("%w: cannot remove %d from a balance of %d", ErrInvalidAmount, -amount, account.balance)
	}
	return nil
}

func addBalance(account *Account, amount int64) func() {
	account.balance += amount
	return func() { account.balance -= amount }
}

func saturatingAdd(a, b int64) int64 {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return math.MaxInt64
	case b < 0 && a < math.MinInt64-b:
		return math.MinInt64
	}
	return a + b
}
