package cmd

import (
	"github.com/hance08/treasury/internal/app"
	"github.com/hance08/treasury/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	session *app.Session
}

func NewInfoCmd(session *app.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, ledger and index paths, and server totals.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				session: session,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	stats, err := r.session.Service.Report.Stats()
	if err != nil {
		return err
	}

	cfg := r.session.Config
	paths := r.session.Paths

	items := views.SystemInfoItem{
		ConfigPath:   cfg.ConfigPath,
		LedgerPath:   paths.Ledger,
		IndexPath:    paths.Index,
		IndexEnabled: stats.IndexEnabled,
		Policy:       cfg.Policy,
		AppDataDir:   paths.AppDir,
		Accounts:     stats.Accounts,
		Records:      stats.Records,
		MoneySupply:  stats.MoneySupply,
	}

	return views.RenderSystemInfo(items)
}
