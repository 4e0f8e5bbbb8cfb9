package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	exchangesvc "kantor/internal/exchange/service"
	"kantor/pkg/money"
)

// Exchanger is the exchange use case as the transport sees it.
type Exchanger interface {
	Exchange(ctx context.Context, req exchangesvc.ExchangeRequest) (money.Money, error)
}

// ExchangeHandler exposes the currency-exchange endpoint.
type ExchangeHandler struct {
	logger    *slog.Logger
	exchanger Exchanger
}

func NewExchangeHandler(exchanger Exchanger, logger *slog.Logger) *ExchangeHandler {
	return &ExchangeHandler{logger: logger, exchanger: exchanger}
}

func (h *ExchangeHandler) Register(r chi.Router) {
	r.Post("/exchange", h.handleExchange)
}

type exchangeRequest struct {
	TransactionID  string           `json:"transactionId"`
	Pesel          string           `json:"pesel"`
	Amount         *decimal.Decimal `json:"amount"`
	Currency       string           `json:"currency"`
	TargetCurrency string           `json:"targetCurrency"`
}

// moneyDTO renders an amount at its currency's minor-unit precision.
type moneyDTO struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func newMoneyDTO(m money.Money) moneyDTO {
	return moneyDTO{
		Amount:   m.Amount.StringFixed(m.Currency.Exponent()),
		Currency: m.Currency.String(),
	}
}

func (h *ExchangeHandler) handleExchange(w http.ResponseWriter, r *http.Request) {
	var body exchangeRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w)
		return
	}

	exchanged, err := h.exchanger.Exchange(r.Context(), exchangesvc.ExchangeRequest{
		TransactionID:  body.TransactionID,
		Pesel:          body.Pesel,
		Amount:         body.Amount,
		Currency:       body.Currency,
		TargetCurrency: body.TargetCurrency,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mediaTypeExchanged, newMoneyDTO(exchanged))
}
