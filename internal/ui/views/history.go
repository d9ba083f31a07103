package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hance08/treasury/internal/store"
	"github.com/pterm/pterm"
)

type HistoryView struct{}

func NewHistoryView() *HistoryView {
	return &HistoryView{}
}

func (v *HistoryView) Render(id string, records []*store.Record, limit int) error {
	if len(records) == 0 {
		pterm.Warning.Printf("No records found for '%s'\n", id)
		return nil
	}

	pterm.DefaultSection.Printf("History of '%s' (limit: %d)", id, limit)

	tableData := pterm.TableData{{"#", "When", "Command", "Details"}}
	for _, rec := range records {
		tableData = append(tableData, []string{
			fmt.Sprintf("%d", rec.Seq),
			when(rec.Timestamp),
			commandColor(rec.Command),
			describe(rec),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

func when(ts float64) string {
	if ts <= 0 {
		return "-"
	}
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return humanize.Time(time.Unix(sec, nsec))
}

func commandColor(cmd string) string {
	switch cmd {
	case "transfer":
		return pterm.Blue(cmd)
	case "add-balance":
		return pterm.Green(cmd)
	case "authorize":
		return pterm.Yellow(cmd)
	default:
		return cmd
	}
}

// describe renders a record's arguments as a sentence.
func describe(rec *store.Record) string {
	a := rec.Args
	switch {
	case rec.Command == "transfer" && len(a) == 4:
		return fmt.Sprintf("%s -> %s: %s (by %s)", a[1], a[2], a[3], a[0])
	case rec.Command == "authorize" && len(a) == 3:
		return fmt.Sprintf("%s set to %s (by %s)", a[1], a[2], a[0])
	case rec.Command == "add-balance" && len(a) == 2:
		return fmt.Sprintf("%s %s", a[0], a[1])
	case rec.Command == "open" && len(a) == 2:
		return fmt.Sprintf("%s opened", a[0])
	}
	return strings.Join(a, " ")
}
