package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hance08/treasury/cmd/account"
	"github.com/hance08/treasury/internal/app"
	"github.com/hance08/treasury/internal/config"
	"github.com/hance08/treasury/internal/constants"
	"github.com/hance08/treasury/internal/errhandler"
	"github.com/hance08/treasury/internal/ledger"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootFlags struct {
	ConfigFile string
	As         string
}

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	session := &app.Session{}
	var cleanup func()

	rootCmd := newRootCmd(migrations, session, &cleanup)
	err := rootCmd.Execute()

	if cleanup != nil {
		cleanup()
	}
	if err != nil {
		errhandler.HandleError(err)
	}
}

func newRootCmd(migrations fs.FS, session *app.Session, cleanup *func()) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "treasury is a ledger-backed account server for a single currency",
		Long: `treasury keeps accounts, balances and authorization levels for one
currency. Every change is appended to a plain-text ledger that is replayed
on startup.

Commands that move money or change levels act as the account named by --as.
Under the permissive policy an omitted --as acts as @government.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initConfig(flags.ConfigFile)
			if err != nil {
				return err
			}

			logger, err := app.NewLogger(cfg.Log.Level, os.Stderr)
			if err != nil {
				return err
			}

			a, done, err := app.NewApp(cfg, migrations, logger)
			if err != nil {
				return err
			}

			session.App = a
			session.Author = flags.As
			if session.Author == "" && cfg.Policy == constants.PolicyPermissive {
				session.Author = ledger.GovernmentID
			}
			*cleanup = done
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "set the config file path")
	rootCmd.PersistentFlags().StringVar(&flags.As, "as", "", "local id of the account performing the command")

	rootCmd.AddCommand(account.NewAccountCmd(session))
	rootCmd.AddCommand(NewTransferCmd(session))
	rootCmd.AddCommand(NewAuthorizeCmd(session))
	rootCmd.AddCommand(NewMintCmd(session))
	rootCmd.AddCommand(NewBurnCmd(session))
	rootCmd.AddCommand(NewSupplyCmd(session))
	rootCmd.AddCommand(NewHistoryCmd(session))
	rootCmd.AddCommand(NewLeaderboardCmd(session))
	rootCmd.AddCommand(NewInfoCmd(session))

	return rootCmd
}

func initConfig(cfgFile string) (*config.Config, error) {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.AppDataDir()
		if err != nil {
			return nil, fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName(constants.ConfigFileName)
		viper.SetConfigType(constants.ConfigFileType)

		if err := createDefaultConfig(appDir); err != nil {
			return nil, fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
	}

	cfg := config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %v", err)
	}

	cfg.ConfigPath = viper.ConfigFileUsed()

	return cfg, nil
}

// setDefaults registers every key so env overrides apply even when the
// config file leaves it out.
func setDefaults() {
	def := config.NewDefault()
	viper.SetDefault("ledger.path", def.Ledger.Path)
	viper.SetDefault("ledger.sync", def.Ledger.Sync)
	viper.SetDefault("index.enabled", def.Index.Enabled)
	viper.SetDefault("index.path", def.Index.Path)
	viper.SetDefault("policy", def.Policy)
	viper.SetDefault("log.level", def.Log.Level)
}

func createDefaultConfig(appDir string) error {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, constants.ConfigFileName+"."+constants.ConfigFileType)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
