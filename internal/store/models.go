package store

type Account struct {
	LocalID       string
	UUID          string
	Balance       int64
	Frozen        bool
	Authorization string
}

type Record struct {
	Seq       int64
	Timestamp float64
	Command   string
	Args      []string
	// AccountIDs are the local ids the record refers to.
	AccountIDs []string
}

type Stats struct {
	Accounts int
	Records  int
}
