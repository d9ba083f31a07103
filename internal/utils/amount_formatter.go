package utils

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatAmount renders a balance with thousands separators.
func FormatAmount(amount int64) string {
	return humanize.Comma(amount)
}

// FormatSignedAmount is FormatAmount with an explicit plus sign on positive
// values, used for balance deltas.
func FormatSignedAmount(amount int64) string {
	s := FormatAmount(amount)
	if amount > 0 && !strings.HasPrefix(s, "+") {
		return "+" + s
	}
	return s
}
