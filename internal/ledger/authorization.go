package ledger

import "fmt"

// Authorization is an ordered privilege level: Citizen < Admin < Developer.
type Authorization int

const (
	Citizen Authorization = iota
	Admin
	Developer
)

var authorizationNames = [...]string{
	Citizen:   "CITIZEN",
	Admin:     "ADMIN",
	Developer: "DEVELOPER",
}

func (a Authorization) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Authorization(%d)", int(a))
	}
	return authorizationNames[a]
}

// Valid reports whether a is one of the three defined levels.
func (a Authorization) Valid() bool {
	return a >= Citizen && a <= Developer
}

// ParseAuthorization maps a level name as written in the ledger
// (CITIZEN, ADMIN, DEVELOPER) back to its Authorization.
func ParseAuthorization(name string) (Authorization, error) {
	for level, n := range authorizationNames {
		if n == name {
			return Authorization(level), nil
		}
	}
	return Citizen, fmt.Errorf("%w: %q", ErrInvalidAuthorization, name)
}
