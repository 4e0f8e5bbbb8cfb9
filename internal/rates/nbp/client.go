// Package nbp talks to the National Bank of Poland exchange-rates API
// (table C, the buy/sell table) and adapts it to the rates.Provider port.
package nbp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"kantor/pkg/money"
)

// factorScale is the precision NBP factors are normalized to before use.
const factorScale = 4

// ExchangeRates are the two factors derived from one table-C row, both
// expressed as "PLN-side multipliers":
//   - ForeignPurchase converts the foreign currency into PLN (the bank buys
//     foreign at bid).
//   - ForeignSell converts PLN into the foreign currency (the bank sells
//     foreign at ask, so the factor is 1/ask).
type ExchangeRates struct {
	ForeignPurchase decimal.Decimal
	ForeignSell     decimal.Decimal
}

// Client fetches table-C rows over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

type ratesResponse struct {
	Rates []rate `json:"rates"`
}

type rate struct {
	Bid float64 `json:"bid"`
	Ask float64 `json:"ask"`
}

// RatesFor fetches the current table-C row for a foreign currency.
func (c *Client) RatesFor(ctx context.Context, currency money.Currency) (ExchangeRates, error) {
	url := fmt.Sprintf("%s/api/exchangerates/rates/c/%s", c.baseURL, currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ExchangeRates{}, fmt.Errorf("build nbp request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ExchangeRates{}, fmt.Errorf("call nbp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ExchangeRates{}, fmt.Errorf("nbp responded %d for %s", resp.StatusCode, currency)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ExchangeRates{}, fmt.Errorf("decode nbp response: %w", err)
	}
	if len(body.Rates) == 0 {
		return ExchangeRates{}, fmt.Errorf("nbp returned no rates for %s", currency)
	}

	current := body.Rates[0]
	ask := decimal.NewFromFloat(current.Ask)
	if ask.IsZero() {
		return ExchangeRates{}, fmt.Errorf("nbp returned zero ask for %s", currency)
	}

	return ExchangeRates{
		ForeignPurchase: decimal.NewFromFloat(current.Bid).RoundBank(factorScale),
		ForeignSell:     decimal.NewFromInt(1).Div(ask).RoundBank(factorScale),
	}, nil
}
