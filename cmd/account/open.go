package account

import (
	"fmt"

	"github.com/hance08/treasury/internal/app"
	"github.com/hance08/treasury/internal/ui/prompts"
	"github.com/hance08/treasury/internal/ui/views"
	"github.com/hance08/treasury/internal/validation"
	"github.com/spf13/cobra"
)

type openRunner struct {
	session *app.Session
	args    []string
}

func NewOpenCmd(session *app.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "open [id]",
		Short: "Open a new empty account",
		Long: `Open a new account with a zero balance and CITIZEN level.

Anyone may open their own account (--as equal to the new id). Opening an
account for someone else requires ADMIN under the role policy.

Examples:
  treasury account open alice --as alice
  treasury account open bob`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &openRunner{
				session: session,
				args:    args,
			}
			return runner.Run()
		},
	}
}

func (r *openRunner) Run() error {
	svc := r.session.Service

	var id string
	if len(r.args) > 0 {
		id = r.args[0]
	} else {
		v := validation.NewAccountValidator(svc.Account)
		var err error
		id, err = prompts.PromptAccountID("New account id:", v.ValidateNewAccount)
		if err != nil {
			return err
		}
	}

	acc, err := svc.Account.Open(r.session.Author, id)
	if err != nil {
		return fmt.Errorf("failed to open account: %w", err)
	}

	return views.RenderAccountOpened(acc)
}
