// Package rates defines the conversion-factor port the exchange use case
// consumes, plus a fixed provider for tests and a redis-backed caching
// decorator for deployments.
package rates

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"kantor/pkg/money"
)

// Provider supplies the factor that converts one unit of base into term.
// Any bid/ask asymmetry between the two directions is the provider's
// business; callers just multiply.
type Provider interface {
	Rate(ctx context.Context, base, term money.Currency) (decimal.Decimal, error)
}

// Static serves factors from a fixed table. Missing pairs error, which makes
// it double as a failing provider in tests.
type Static map[[2]money.Currency]decimal.Decimal

// NewStatic builds a Static provider from (base, term, factor) entries.
func NewStatic() Static {
	return make(Static)
}

// Set registers the factor for a direction.
func (s Static) Set(base, term money.Currency, factor decimal.Decimal) Static {
	s[[2]money.Currency{base, term}] = factor
	return s
}

func (s Static) Rate(_ context.Context, base, term money.Currency) (decimal.Decimal, error) {
	factor, ok := s[[2]money.Currency{base, term}]
	if !ok {
		return decimal.Zero, fmt.Errorf("no rate for %s/%s", base, term)
	}
	return factor, nil
}
