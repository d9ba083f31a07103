package validation

import "testing"

type fakeAccounts map[string]bool

func (f fakeAccounts) Exists(id string) bool { return f[id] }

func TestAccountValidator(t *testing.T) {
	v := NewAccountValidator(fakeAccounts{"alice": true})

	tests := []struct {
		name     string
		fn       func(string) error
		in       string
		wantFail bool
	}{
		{"new free id", v.ValidateNewAccount, "bob", false},
		{"new taken id", v.ValidateNewAccount, "alice", true},
		{"new with space", v.ValidateNewAccount, "bo b", true},
		{"existing id", v.ValidateExistingAccount, " alice ", false},
		{"missing id", v.ValidateExistingAccount, "bob", true},
		{"empty id", ValidateAccountID, "", true},
		{"amount ok", ValidatePositiveAmount, "1,500", false},
		{"amount zero", ValidatePositiveAmount, "0", true},
		{"amount text", ValidatePositiveAmount, "lots", true},
		{"amount negative", ValidatePositiveAmount, "-5", true},
		{"level lower case", ValidateLevel, "admin", false},
		{"level unknown", ValidateLevel, "king", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.in)
			if (err != nil) != tt.wantFail {
				t.Errorf("err = %v, wantFail %v", err, tt.wantFail)
			}
		})
	}
}
