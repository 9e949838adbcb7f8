package domain

import (
	"fmt"
	"strings"
)

// Account is a saved payment destination. Aliases are labels for the user
// only and need not be unique.
type Account struct {
	Alias string `json:"alias"`
	IBAN  string `json:"iban"`
}

func NewAccount(alias, iban string) (Account, error) {
	alias = strings.TrimSpace(alias)
	iban = strings.TrimSpace(iban)
	if alias == "" || iban == "" {
		return Account{}, ErrInvalidAccount
	}
	return Account{Alias: alias, IBAN: iban}, nil
}

func (a Account) String() string {
	return fmt.Sprintf("%s (%s)", a.Alias, a.IBAN)
}

// WithoutIBAN returns the accounts whose IBAN differs from iban together with
// the number of entries dropped. Every exact match is dropped, not just the
// first one.
func WithoutIBAN(accounts []Account, iban string) ([]Account, int) {
	kept := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if a.IBAN == iban {
			continue
		}
		kept = append(kept, a)
	}
	return kept, len(accounts) - len(kept)
}
