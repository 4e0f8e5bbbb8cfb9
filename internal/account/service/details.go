package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"kantor/pkg/domain"
	"kantor/pkg/money"
	"kantor/pkg/pesel"
)

// BalancesStore sums an account's postings per currency.
type BalancesStore interface {
	SumByAccountAndCurrency(ctx context.Context, accountID domain.AccountID, currency money.Currency) (decimal.Decimal, error)
}

// AccountDetails is the read model for one account: names plus one balance
// per supported currency, zero-valued when the account has no postings in
// that currency.
type AccountDetails struct {
	FirstName string
	LastName  string
	Balances  []money.Money
}

// DetailsQuery resolves an account by PESEL and derives its balances from
// the ledger.
type DetailsQuery struct {
	accounts AccountsStore
	balances BalancesStore
}

func NewDetailsQuery(accounts AccountsStore, balances BalancesStore) *DetailsQuery {
	return &DetailsQuery{accounts: accounts, balances: balances}
}

// Details returns the account's details, or sentinel.ErrNotFound (possibly
// wrapped) when the PESEL is not registered.
func (q *DetailsQuery) Details(ctx context.Context, rawPesel string) (AccountDetails, error) {
	account, err := q.accounts.GetByPesel(ctx, pesel.New(rawPesel))
	if err != nil {
		return AccountDetails{}, err
	}

	details := AccountDetails{
		FirstName: account.FirstName,
		LastName:  account.LastName,
	}
	for _, currency := range money.Supported {
		sum, err := q.balances.SumByAccountAndCurrency(ctx, account.ID, currency)
		if err != nil {
			return AccountDetails{}, fmt.Errorf("balance for %s: %w", currency, err)
		}
		details.Balances = append(details.Balances, money.New(sum, currency))
	}
	return details, nil
}
