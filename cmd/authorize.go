package cmd

import (
	"fmt"

	"github.com/hance08/treasury/internal/app"
	"github.com/hance08/treasury/internal/ui/prompts"
	"github.com/hance08/treasury/internal/ui/views"
	"github.com/hance08/treasury/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type authorizeRunner struct {
	session *app.Session
	args    []string
}

func NewAuthorizeCmd(session *app.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "authorize <account> [level]",
		Short: "Set an account's authorization level",
		Long: `Set an account's authorization level to CITIZEN, ADMIN or DEVELOPER.
When the level is omitted it is asked for interactively.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &authorizeRunner{
				session: session,
				args:    args,
			}
			return runner.Run()
		},
	}
}

func (r *authorizeRunner) Run() error {
	svc := r.session.Service
	target := r.args[0]

	var level string
	if len(r.args) > 1 {
		level = r.args[1]
	} else {
		current, err := svc.Account.Get(target)
		if err != nil {
			return err
		}
		level, err = prompts.PromptLevel(current.Authorization.String(), validation.ValidateLevel)
		if err != nil {
			return err
		}
	}

	acc, err := svc.Account.Authorize(r.session.Author, target, level)
	if err != nil {
		return fmt.Errorf("failed to authorize: %w", err)
	}

	if err := views.RenderAccountDetail(acc); err != nil {
		return err
	}
	pterm.Success.Printf("'%s' is now %s\n", acc.LocalID, acc.Authorization)
	return nil
}
