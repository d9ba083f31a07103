package views

import (
	"fmt"

	"github.com/hance08/treasury/internal/store"
	"github.com/hance08/treasury/internal/ui"
	"github.com/hance08/treasury/internal/utils"
	"github.com/pterm/pterm"
)

func RenderLeaderboard(accounts []*store.Account) error {
	if len(accounts) == 0 {
		pterm.Warning.Println("No accounts found")
		return nil
	}

	pterm.DefaultSection.Println("Leaderboard")

	tableData := pterm.TableData{{"Rank", "Account", "Level", "Balance"}}
	for i, acc := range accounts {
		tableData = append(tableData, []string{
			fmt.Sprintf("%d", i+1),
			acc.LocalID,
			ui.LevelColor(acc.Authorization),
			utils.FormatAmount(acc.Balance),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

func RenderSupply(supply int64) {
	pterm.Info.Printf("Money supply: %s\n", utils.FormatAmount(supply))
}
