package views

import (
	"github.com/hance08/treasury/internal/ledger"
	"github.com/hance08/treasury/internal/ui"
	"github.com/hance08/treasury/internal/utils"
	"github.com/pterm/pterm"
)

func RenderAccountDetail(acc ledger.AccountSnapshot) error {
	ui.Separator()
	ui.PrintL2Title("%s", acc.LocalID)

	tableData := pterm.TableData{
		{pterm.Blue("Account"), acc.LocalID},
		{pterm.Blue("UUID"), acc.UUID},
		{pterm.Blue("Level"), ui.LevelColor(acc.Authorization.String())},
		{pterm.Blue("Balance"), utils.FormatAmount(acc.Balance)},
		{pterm.Blue("Status"), frozenLabel(acc.Frozen)},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}

func RenderAccountOpened(acc ledger.AccountSnapshot) error {
	if err := RenderAccountDetail(acc); err != nil {
		return err
	}
	pterm.Success.Printf("Account '%s' opened\n", acc.LocalID)
	return nil
}
