package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hance08/treasury/internal/ledger"
)

// ParseAmount reads a whole number of currency units. Thousands separators
// are accepted so amounts can be pasted back from command output.
func ParseAmount(s string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if clean == "" {
		return 0, fmt.Errorf("amount can't be empty: %w", ledger.ErrInvalidAmount)
	}

	amount, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount '%s': %w", s, ledger.ErrInvalidAmount)
	}
	return amount, nil
}
