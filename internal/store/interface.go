package store

// Repository is the read index kept next to the ledger. It is derived data:
// it can be dropped and rebuilt from the ledger at any time.
type Repository interface {
	// Rebuild replaces the whole index with the given state.
	Rebuild(accounts []Account, records []Record) error
	// ApplyRecord appends one ledger record and refreshes the accounts it
	// touched.
	ApplyRecord(rec Record, accounts []Account) error

	History(localID string, limit int) ([]*Record, error)
	Leaderboard(limit int) ([]*Account, error)
	Stats() (Stats, error)

	Close() error
}
