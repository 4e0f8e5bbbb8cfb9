package nbp

import (
	"context"

	"github.com/shopspring/decimal"

	"kantor/pkg/money"
)

// Provider selects the table-C side matching the conversion's direction:
// domestic to foreign sells foreign currency (1/ask), foreign to domestic
// buys it (bid). One row covers both directions of a pair.
type Provider struct {
	client *Client
}

func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

func (p *Provider) Rate(ctx context.Context, base, term money.Currency) (decimal.Decimal, error) {
	foreign := term
	if base != money.PLN {
		foreign = base
	}

	rates, err := p.client.RatesFor(ctx, foreign)
	if err != nil {
		return decimal.Zero, err
	}

	if base == money.PLN {
		return rates.ForeignSell, nil
	}
	return rates.ForeignPurchase, nil
}
