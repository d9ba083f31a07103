package views

import (
	"fmt"

	"github.com/hance08/treasury/internal/ui"
	"github.com/hance08/treasury/internal/utils"
	"github.com/pterm/pterm"
)

type SystemInfoItem struct {
	ConfigPath   string
	LedgerPath   string
	IndexPath    string
	IndexEnabled bool
	Policy       string
	AppDataDir   string
	Accounts     int
	Records      int
	MoneySupply  int64
}

func RenderSystemInfo(data SystemInfoItem) error {
	configPath := data.ConfigPath
	if configPath == "" {
		configPath = pterm.Gray("(defaults)")
	}

	indexStatus := pterm.Green(fmt.Sprintf("Enabled (%d records)", data.Records))
	if !data.IndexEnabled {
		indexStatus = pterm.Red("Disabled")
	}

	tableData := pterm.TableData{
		{"Configuration File", configPath},
		{"Ledger Path", data.LedgerPath},
		{"Index Path", data.IndexPath},
		{"Index Status", indexStatus},
		{"Policy", data.Policy},
		{"Accounts", fmt.Sprintf("%d", data.Accounts)},
		{"Money Supply", utils.FormatAmount(data.MoneySupply)},
		{"AppData Directory", data.AppDataDir},
	}

	ui.PrintL1Title("Treasury")
	return pterm.DefaultTable.WithData(tableData).Render()
}
