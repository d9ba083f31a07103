package validation

import (
	"fmt"
	"strings"

	"github.com/hance08/treasury/internal/ledger"
	"github.com/hance08/treasury/internal/service"
)

// AccountChecker reports whether a local id is registered.
type AccountChecker interface {
	Exists(id string) bool
}

// AccountValidator backs the interactive prompts with live directory checks.
type AccountValidator struct {
	accounts AccountChecker
}

func NewAccountValidator(accounts AccountChecker) *AccountValidator {
	return &AccountValidator{accounts: accounts}
}

// ValidateAccountID checks the id format only.
func ValidateAccountID(val string) error {
	return ledger.ValidateLocalID(strings.TrimSpace(val))
}

// ValidateNewAccount checks the format and that the id is still free.
func (v *AccountValidator) ValidateNewAccount(val string) error {
	id := strings.TrimSpace(val)
	if err := ledger.ValidateLocalID(id); err != nil {
		return err
	}
	if v.accounts.Exists(id) {
		return fmt.Errorf("account '%s' already exists", id)
	}
	return nil
}

// ValidateExistingAccount checks that the id is registered.
func (v *AccountValidator) ValidateExistingAccount(val string) error {
	id := strings.TrimSpace(val)
	if err := ledger.ValidateLocalID(id); err != nil {
		return err
	}
	if !v.accounts.Exists(id) {
		return fmt.Errorf("account '%s' doesn't exist", id)
	}
	return nil
}

// ValidatePositiveAmount accepts whole amounts greater than zero.
func ValidatePositiveAmount(val string) error {
	amount, err := service.ParseAmount(val)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	return nil
}

// ValidateLevel accepts CITIZEN, ADMIN or DEVELOPER in any case.
func ValidateLevel(val string) error {
	_, err := ledger.ParseAuthorization(strings.ToUpper(strings.TrimSpace(val)))
	return err
}
