package cmd

import (
	"github.com/hance08/treasury/internal/app"
	"github.com/hance08/treasury/internal/constants"
	"github.com/hance08/treasury/internal/ui/views"
	"github.com/spf13/cobra"
)

type limitFlags struct {
	Limit int
}

func NewSupplyCmd(session *app.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "supply",
		Short: "Show the total money supply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views.RenderSupply(session.Service.Money.Supply())
			return nil
		},
	}
}

type historyRunner struct {
	session *app.Session
	flags   *limitFlags
	id      string
}

func NewHistoryCmd(session *app.Session) *cobra.Command {
	flags := &limitFlags{}

	cmd := &cobra.Command{
		Use:   "history <account>",
		Short: "Show the ledger records that touched an account",
		Long: `Show the ledger records that touched an account, newest first.
Requires the read index (index.enabled: true).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &historyRunner{
				session: session,
				flags:   flags,
				id:      args[0],
			}
			return runner.Run()
		},
	}

	cmd.Flags().IntVarP(&flags.Limit, "limit", "n", constants.DefaultHistoryLimit, "Maximum number of records to show")

	return cmd
}

func (r *historyRunner) Run() error {
	records, err := r.session.Service.Report.History(r.id, r.flags.Limit)
	if err != nil {
		return err
	}
	return views.NewHistoryView().Render(r.id, records, r.flags.Limit)
}

func NewLeaderboardCmd(session *app.Session) *cobra.Command {
	flags := &limitFlags{}

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank accounts by balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := session.Service.Report.Leaderboard(flags.Limit)
			if err != nil {
				return err
			}
			return views.RenderLeaderboard(board)
		},
	}

	cmd.Flags().IntVarP(&flags.Limit, "limit", "n", constants.DefaultLeaderboardLimit, "Number of accounts to show")

	return cmd
}
