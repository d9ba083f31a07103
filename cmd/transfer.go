package cmd

import (
	"errors"
	"fmt"

	"github.com/hance08/treasury/internal/app"
	"github.com/hance08/treasury/internal/ledger"
	"github.com/hance08/treasury/internal/service"
	"github.com/hance08/treasury/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type transferRunner struct {
	session *app.Session
	args    []string
}

func NewTransferCmd(session *app.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <source> <destination> [amount]",
		Short: "Move money between two accounts",
		Long: `Move a positive whole amount from source to destination.

The transfer is rejected when the source lacks funds or either account is
frozen. Under the role policy a CITIZEN may only spend from their own account.
When the amount is omitted it is asked for interactively.

Examples:
  treasury transfer alice bob 40 --as alice
  treasury transfer @government alice 1,000 --as @government`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &transferRunner{
				session: session,
				args:    args,
			}
			return runner.Run()
		},
	}
}

func (r *transferRunner) Run() error {
	source, destination := r.args[0], r.args[1]

	raw, err := amountArg(r.args, 2)
	if err != nil {
		return err
	}
	amount, err := service.ParseAmount(raw)
	if err != nil {
		return err
	}

	err = r.session.Service.Money.Transfer(r.session.Author, source, destination, amount)
	if err != nil {
		var rejected *ledger.TransferRejectedError
		if errors.As(err, &rejected) {
			return fmt.Errorf("transfer of %s from '%s' to '%s' rejected: %s",
				utils.FormatAmount(amount), source, destination, rejected.Reason)
		}
		return fmt.Errorf("failed to transfer: %w", err)
	}

	pterm.Success.Printf("Transferred %s from '%s' to '%s'\n", utils.FormatAmount(amount), source, destination)
	return nil
}
