package cmd

import (
	"fmt"
	"strings"

	"github.com/hance08/treasury/internal/app"
	"github.com/hance08/treasury/internal/ledger"
	"github.com/hance08/treasury/internal/service"
	"github.com/hance08/treasury/internal/ui/prompts"
	"github.com/hance08/treasury/internal/utils"
	"github.com/hance08/treasury/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type balanceFlags struct {
	Yes bool
}

// balanceRunner backs both mint and burn. sign is +1 or -1.
type balanceRunner struct {
	session *app.Session
	flags   *balanceFlags
	args    []string
	sign    int64
}

func NewMintCmd(session *app.Session) *cobra.Command {
	flags := &balanceFlags{}

	cmd := &cobra.Command{
		Use:   "mint <account> [amount]",
		Short: "Print new money into an account",
		Long: `Add money to an account, growing the money supply. A negative amount
burns instead; pass it after "--" so it is not read as a flag. When the
amount is omitted it is asked for interactively.

Examples:
  treasury mint alice 500 --as @government
  treasury mint alice --yes --as @government -- -200`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &balanceRunner{
				session: session,
				flags:   flags,
				args:    args,
				sign:    1,
			}
			return runner.Run()
		},
	}

	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func NewBurnCmd(session *app.Session) *cobra.Command {
	flags := &balanceFlags{}

	cmd := &cobra.Command{
		Use:   "burn <account> [amount]",
		Short: "Remove money from an account",
		Long: `Remove a positive amount from an account, shrinking the money supply.
The balance may not go below zero. When the amount is omitted it is asked
for interactively.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &balanceRunner{
				session: session,
				flags:   flags,
				args:    args,
				sign:    -1,
			}
			return runner.Run()
		},
	}

	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func (r *balanceRunner) Run() error {
	target := r.args[0]

	raw, err := amountArg(r.args, 1)
	if err != nil {
		return err
	}
	amount, err := service.ParseAmount(raw)
	if err != nil {
		return err
	}
	if r.sign < 0 && amount <= 0 {
		return fmt.Errorf("burn amount must be positive: %w", ledger.ErrInvalidAmount)
	}
	amount *= r.sign

	verb := "Mint"
	if amount < 0 {
		verb = "Burn"
	}

	if !r.flags.Yes {
		ok, err := prompts.PromptConfirm(
			fmt.Sprintf("%s %s for '%s'?", verb, utils.FormatAmount(abs(amount)), target), false)
		if err != nil {
			return err
		}
		if !ok {
			pterm.Warning.Println("Operation Cancelled")
			return nil
		}
	}

	money := r.session.Service.Money
	if amount < 0 {
		err = money.Burn(r.session.Author, target, -amount)
	} else {
		err = money.Mint(r.session.Author, target, amount)
	}
	if err != nil {
		return fmt.Errorf("failed to %s: %w", strings.ToLower(verb), err)
	}

	pterm.Success.Printf("%s %s for '%s', money supply is now %s\n",
		verb, utils.FormatSignedAmount(amount), target, utils.FormatAmount(money.Supply()))
	return nil
}

// amountArg returns args[i], prompting for a positive amount when it was
// left off the command line.
func amountArg(args []string, i int) (string, error) {
	if len(args) > i {
		return args[i], nil
	}
	return prompts.PromptAmount("Amount:", validation.ValidatePositiveAmount)
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
