package service

import (
	"context"
	"fmt"

	"kantor/internal/rates"
	txmodels "kantor/internal/transaction/models"
	"kantor/pkg/clock"
	"kantor/pkg/domain"
	"kantor/pkg/money"
)

// conversionCommand turns one validated exchange into a balanced posting
// pair.
type conversionCommand struct {
	accountID     domain.AccountID
	transactionID domain.TransactionID
	source        money.Money
	target        money.Currency
}

// postings fetches the conversion factor, applies it with banker's rounding
// to the target currency's minor unit, and builds the two legs. Both legs
// share the transaction id, the account and a single clock read. Any
// provider failure surfaces as one error; no partial pair is ever returned.
func (c conversionCommand) postings(ctx context.Context, provider rates.Provider, clk clock.Clock) ([]txmodels.Posting, error) {
	factor, err := provider.Rate(ctx, c.source.Currency, c.target)
	if err != nil {
		return nil, fmt.Errorf("conversion factor %s/%s: %w", c.source.Currency, c.target, err)
	}

	converted := money.New(c.source.Amount.Mul(factor), c.target).Round()
	now := clk.Now()

	return []txmodels.Posting{
		{
			TransactionID: c.transactionID,
			AccountID:     c.accountID,
			Value:         c.source.Negate(),
			CreatedAt:     now,
		},
		{
			TransactionID: c.transactionID,
			AccountID:     c.accountID,
			Value:         converted,
			CreatedAt:     now,
		},
	}, nil
}
