package config

type Config struct {
	Ledger     LedgerConfig `mapstructure:"ledger"`
	Index      IndexConfig  `mapstructure:"index"`
	Policy     string       `mapstructure:"policy"`
	Log        LogConfig    `mapstructure:"log"`
	ConfigPath string       `mapstructure:"-"`
}

type LedgerConfig struct {
	// Path is the ledger file. Empty means ledger.txt in the app data dir.
	Path string `mapstructure:"path"`
	// Sync fsyncs the ledger after every record.
	Sync bool `mapstructure:"sync"`
}

type IndexConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func NewDefault() *Config {
	return &Config{
		Ledger: LedgerConfig{Path: "", Sync: false},
		Index:  IndexConfig{Enabled: true, Path: ""},
		Policy: "role",
		Log:    LogConfig{Level: "warn"},
	}
}
