package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateAccount     = errors.New("account already exists")
	ErrUnknownAccount       = errors.New("account does not exist")
	ErrUnregisteredAccount  = errors.New("account is not registered on this server")
	ErrInvalidAccountID     = errors.New("invalid account id")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidAuthorization = errors.New("invalid authorization level")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrTransferRejected     = errors.New("transfer rejected")
	ErrCorruptLedger        = errors.New("corrupt ledger")
	ErrLedgerLocked         = errors.New("ledger is locked by another process")
	ErrClosed               = errors.New("ledger server is closed")
)

// RejectReason names the transfer rule that was violated.
type RejectReason string

const (
	ReasonNonPositiveAmount  RejectReason = "amount must be positive"
	ReasonInsufficientFunds  RejectReason = "insufficient funds"
	ReasonSourceFrozen       RejectReason = "source account is frozen"
	ReasonDestinationFrozen  RejectReason = "destination account is frozen"
	ReasonBalanceOutOfBounds RejectReason = "destination balance out of bounds"
)

// TransferRejectedError is returned when a transfer fails the balance rules.
// It matches ErrTransferRejected with errors.Is.
type TransferRejectedError struct {
	Reason RejectReason
}

func (e *TransferRejectedError) Error() string {
	return fmt.Sprintf("transfer rejected: %s", e.Reason)
}

func (e *TransferRejectedError) Is(target error) bool {
	return target == ErrTransferRejected
}

// CorruptLedgerError reports a ledger line that could not be replayed.
// Line is 1-based. Err carries the underlying cause and is reachable with
// errors.Is / errors.As.
type CorruptLedgerError struct {
	Line    int
	Command string
	Err     error
}

func (e *CorruptLedgerError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("corrupt ledger at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("corrupt ledger at line %d (%s): %v", e.Line, e.Command, e.Err)
}

func (e *CorruptLedgerError) Unwrap() error {
	return e.Err
}

func (e *CorruptLedgerError) Is(target error) bool {
	return target == ErrCorruptLedger
}
