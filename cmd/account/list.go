package account

import (
	"strings"

	"github.com/hance08/treasury/internal/app"
	"github.com/hance08/treasury/internal/ledger"
	"github.com/hance08/treasury/internal/ui/views"
	"github.com/spf13/cobra"
)

type listFlags struct {
	Level      string
	FrozenOnly bool
}

type ListCommandRunner struct {
	session *app.Session
	flags   *listFlags
}

func NewListCmd(session *app.Session) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all accounts with their balances",
		Long: `List every account on the server with its level and balance.
You can filter by authorization level or show frozen accounts only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ListCommandRunner{
				session: session,
				flags:   flags,
			}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.Level, "level", "l", "", "Filter accounts by level (CITIZEN, ADMIN, DEVELOPER)")
	cmd.Flags().BoolVar(&flags.FrozenOnly, "frozen", false, "Show frozen accounts only")

	return cmd
}

func (r *ListCommandRunner) Run() error {
	accounts := r.session.Service.Account.List()

	if r.flags.Level != "" {
		level, err := ledger.ParseAuthorization(strings.ToUpper(r.flags.Level))
		if err != nil {
			return err
		}
		accounts = filterAccounts(accounts, func(acc ledger.AccountSnapshot) bool {
			return acc.Authorization == level
		})
	}

	if r.flags.FrozenOnly {
		accounts = filterAccounts(accounts, func(acc ledger.AccountSnapshot) bool {
			return acc.Frozen
		})
	}

	return views.NewAccountListView().Render(accounts)
}

func filterAccounts(accounts []ledger.AccountSnapshot, keep func(ledger.AccountSnapshot) bool) []ledger.AccountSnapshot {
	var filtered []ledger.AccountSnapshot
	for _, acc := range accounts {
		if keep(acc) {
			filtered = append(filtered, acc)
		}
	}
	return filtered
}
