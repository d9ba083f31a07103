package ledger

import "sync"

// Account holds a balance on a server. All fields are owned by the server
// that opened the account; readers go through the getters, which take the
// server's read lock so that both halves of a transfer become visible at once.
type Account struct {
	mu      *sync.RWMutex
	uuid    string
	balance int64
	frozen  bool
	auth    Authorization
}

func newAccount(mu *sync.RWMutex, accountUUID string) *Account {
	return &Account{
		mu:   mu,
		uuid: accountUUID,
		auth: Citizen,
	}
}

// UUID returns the account's globally unique identifier.
func (a *Account) UUID() string {
	defer a.read()()
	return a.uuid
}

func (a *Account) Balance() int64 {
	defer a.read()()
	return a.balance
}

func (a *Account) Frozen() bool {
	defer a.read()()
	return a.frozen
}

func (a *Account) Authorization() Authorization {
	defer a.read()()
	return a.auth
}

func (a *Account) read() func() {
	if a.mu == nil {
		return func() {}
	}
	a.mu.RLock()
	return a.mu.RUnlock
}

// AccountSnapshot is an immutable copy of an account's state together with
// its local identifier.
type AccountSnapshot struct {
	LocalID       string
	UUID          string
	Balance       int64
	Frozen        bool
	Authorization Authorization
}

// snapshot copies the account without locking; the caller holds the lock.
func (a *Account) snapshot(localID string) AccountSnapshot {
	return AccountSnapshot{
		LocalID:       localID,
		UUID:          a.uuid,
		Balance:       a.balance,
		Frozen:        a.frozen,
		Authorization: a.auth,
	}
}
