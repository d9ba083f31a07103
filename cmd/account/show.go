package account

import (
	"github.com/hance08/treasury/internal/app"
	"github.com/hance08/treasury/internal/ui/prompts"
	"github.com/hance08/treasury/internal/ui/views"
	"github.com/hance08/treasury/internal/validation"
	"github.com/spf13/cobra"
)

type showRunner struct {
	session *app.Session
	args    []string
}

func NewShowCmd(session *app.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one account in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &showRunner{
				session: session,
				args:    args,
			}
			return runner.Run()
		},
	}
}

func (r *showRunner) Run() error {
	svc := r.session.Service

	var id string
	if len(r.args) > 0 {
		id = r.args[0]
	} else {
		v := validation.NewAccountValidator(svc.Account)
		var err error
		id, err = prompts.PromptAccountID("Account id:", v.ValidateExistingAccount)
		if err != nil {
			return err
		}
	}

	acc, err := svc.Account.Get(id)
	if err != nil {
		return err
	}
	return views.RenderAccountDetail(acc)
}
