// Package models defines the account entities. Accounts are created once and
// never mutated; balances are derived from postings, not stored here.
package models

import (
	"kantor/pkg/domain"
	"kantor/pkg/money"
	"kantor/pkg/pesel"
)

// Account is a registered customer's ledger subject. The PESEL is unique
// across all accounts.
type Account struct {
	ID        domain.AccountID
	FirstName string
	LastName  string
	Pesel     pesel.Pesel
}

// NewAccount is the value handed to the accounts store: already validated,
// names trimmed, with an optional starting balance in the domestic currency.
type NewAccount struct {
	FirstName       string
	LastName        string
	Pesel           pesel.Pesel
	StartingBalance *money.Money
}
