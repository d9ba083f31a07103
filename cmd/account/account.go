package account

import (
	"github.com/hance08/treasury/internal/app"
	"github.com/spf13/cobra"
)

func NewAccountCmd(session *app.Session) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
		Long:  `Open new accounts and look up existing ones.`,
	}

	accountCmd.AddCommand(NewOpenCmd(session))
	accountCmd.AddCommand(NewShowCmd(session))
	accountCmd.AddCommand(NewListCmd(session))

	return accountCmd
}
