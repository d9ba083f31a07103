package views

import (
	"github.com/hance08/treasury/internal/ledger"
	"github.com/hance08/treasury/internal/ui"
	"github.com/hance08/treasury/internal/utils"
	"github.com/pterm/pterm"
)

type AccountListView struct{}

func NewAccountListView() *AccountListView {
	return &AccountListView{}
}

func (v *AccountListView) Render(accounts []ledger.AccountSnapshot) error {
	tableData := pterm.TableData{{"Account", "Level", "Balance", "Status"}}

	var total int64
	for _, acc := range accounts {
		total += acc.Balance
		tableData = append(tableData, []string{
			acc.LocalID,
			ui.LevelColor(acc.Authorization.String()),
			utils.FormatAmount(acc.Balance),
			frozenLabel(acc.Frozen),
		})
	}

	pterm.DefaultSection.Printf("Account List")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d accounts, %s in circulation\n", len(accounts), utils.FormatAmount(total))

	return nil
}

func frozenLabel(frozen bool) string {
	if frozen {
		return pterm.Red("frozen")
	}
	return pterm.Green("active")
}
