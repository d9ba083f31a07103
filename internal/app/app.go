package app

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hance08/treasury/internal/config"
	"github.com/hance08/treasury/internal/constants"
	"github.com/hance08/treasury/internal/ledger"
	"github.com/hance08/treasury/internal/service"
	"github.com/hance08/treasury/internal/store"
)

type App struct {
	Service *service.Service
	Config  *config.Config
	Paths   Paths
}

type Paths struct {
	AppDir string
	Ledger string
	Index  string
}

// NewApp opens the ledger and the read index described by cfg, replays the
// ledger and rebuilds the index from it. The returned cleanup closes both.
func NewApp(cfg *config.Config, migrationFS fs.FS, logger *slog.Logger) (*App, func(), error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	paths, err := ResolvePaths(cfg)
	if err != nil {
		return nil, nil, err
	}

	policy, err := PolicyFromConfig(cfg.Policy)
	if err != nil {
		return nil, nil, err
	}

	opts := []ledger.Option{
		ledger.WithPolicy(policy),
		ledger.WithLogger(logger),
		ledger.WithSync(cfg.Ledger.Sync),
	}

	var (
		repo    store.Repository
		dbStore *store.Store
	)
	if cfg.Index.Enabled {
		dbStore, err = store.NewStore(paths.Index, migrationFS)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize index: %w", err)
		}
		repo = dbStore
		opts = append(opts, ledger.WithRecordHook(service.NewIndexHook(dbStore, logger)))
	}

	lg, err := ledger.Open(paths.Ledger, opts...)
	if err != nil {
		if dbStore != nil {
			_ = dbStore.Close()
		}
		return nil, nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	if dbStore != nil {
		if err := service.RebuildIndex(dbStore, lg.Replayed(), lg.Snapshots()); err != nil {
			logger.Warn("failed to rebuild read index", "path", paths.Index, "error", err)
		}
	}

	cleanup := func() {
		if err := lg.Close(); err != nil {
			logger.Error("failed to close ledger", "error", err)
		}
		if dbStore != nil {
			if err := dbStore.Close(); err != nil {
				logger.Error("failed to close index", "error", err)
			}
		}
	}

	return &App{
		Service: service.NewService(lg, repo, logger),
		Config:  cfg,
		Paths:   paths,
	}, cleanup, nil
}

// PolicyFromConfig maps the policy config key to an implementation.
func PolicyFromConfig(name string) (ledger.Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", constants.PolicyRole:
		return ledger.RolePolicy{}, nil
	case constants.PolicyPermissive:
		return ledger.PermissivePolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown policy '%s' (must be %s or %s)", name, constants.PolicyRole, constants.PolicyPermissive)
	}
}

// ResolvePaths fills in the default ledger and index locations under the
// app data dir and expands a leading ~.
func ResolvePaths(cfg *config.Config) (Paths, error) {
	appDir, err := AppDataDir()
	if err != nil {
		return Paths{}, err
	}

	paths := Paths{
		AppDir: appDir,
		Ledger: filepath.Join(appDir, constants.LedgerFileName),
		Index:  filepath.Join(appDir, constants.IndexFileName),
	}

	if cfg.Ledger.Path != "" {
		if paths.Ledger, err = expandPath(cfg.Ledger.Path); err != nil {
			return Paths{}, err
		}
	}

	switch {
	case cfg.Index.Path != "":
		if paths.Index, err = expandPath(cfg.Index.Path); err != nil {
			return Paths{}, err
		}
	case cfg.Ledger.Path != "":
		// Keep the index beside a relocated ledger.
		paths.Index = filepath.Join(filepath.Dir(paths.Ledger), constants.IndexFileName)
	}

	return paths, nil
}

func AppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, "."+constants.AppName), nil
	}

	return filepath.Join(configDir, constants.AppName), nil
}

func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Session carries what one CLI invocation resolved before its command runs.
// Commands are built before flags are parsed, so they hold the session and
// read it at run time.
type Session struct {
	*App
	// Author is the local id the invocation acts as.
	Author string
}
