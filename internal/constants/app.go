package constants

const (
	AppName   = "treasury"
	EnvPrefix = "TREASURY"

	LedgerFileName = "ledger.txt"
	IndexFileName  = "index.db"
	ConfigFileName = "config"
	ConfigFileType = "yaml"
)

const (
	DefaultHistoryLimit     = 20
	DefaultLeaderboardLimit = 10
)

const (
	PolicyRole       = "role"
	PolicyPermissive = "permissive"
)
