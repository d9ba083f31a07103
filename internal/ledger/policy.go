package ledger

import "fmt"

// Policy decides who may perform a mutating call. The server consults it on
// live calls only; replay re-applies what was already allowed.
//
// Implementations receive snapshots taken under the server's write lock and
// must not call back into the server.
type Policy interface {
	CanOpen(author AccountSnapshot) error
	CanTransfer(author, source AccountSnapshot) error
	CanAuthorize(author, target AccountSnapshot, level Authorization) error
	CanAddBalance(author, target AccountSnapshot) error
}

// PermissivePolicy allows everything. Calling layers that use it are
// responsible for deciding who may act.
type PermissivePolicy struct{}

func (PermissivePolicy) CanOpen(AccountSnapshot) error { return nil }
func (PermissivePolicy) CanTransfer(AccountSnapshot, AccountSnapshot) error { return nil }
func (PermissivePolicy) CanAuthorize(AccountSnapshot, AccountSnapshot, Authorization) error { return nil }
func (PermissivePolicy) CanAddBalance(AccountSnapshot, AccountSnapshot) error { return nil }

// RolePolicy gates calls on the author's authorization level:
//   - citizens may only spend from their own account
//   - admins open accounts, spend from any account, mint and burn, and grant
//     levels up to their own to accounts ranked below them
//   - developers may do anything
type RolePolicy struct{}

func (RolePolicy) CanOpen(author AccountSnapshot) error {
	if author.Authorization >= Admin {
		return nil
	}
	return fmt.Errorf("%w: '%s' may not open accounts", ErrUnauthorized, author.LocalID)
}

func (RolePolicy) CanTransfer(author, source AccountSnapshot) error {
	if author.LocalID == source.LocalID || author.Authorization >= Admin {
		return nil
	}
	return fmt.Errorf("%w: '%s' may not transfer from '%s'", ErrUnauthorized, author.LocalID, source.LocalID)
}

func (RolePolicy) CanAuthorize(author, target AccountSnapshot, level Authorization) error {
	switch {
	case author.Authorization >= Developer:
		return nil
	case author.Authorization >= Admin && level <= author.Authorization && target.Authorization < author.Authorization:
		return nil
	}
	return fmt.Errorf("%w: '%s' may not make '%s' %s", ErrUnauthorized, author.LocalID, target.LocalID, level)
}

func (RolePolicy) CanAddBalance(author, target AccountSnapshot) error {
	if author.Authorization >= Admin {
		return nil
	}
	return fmt.Errorf("%w: '%s' may not adjust the balance of '%s'", ErrUnauthorized, author.LocalID, target.LocalID)
}
