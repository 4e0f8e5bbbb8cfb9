package httptransport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	accountsvc "kantor/internal/account/service"
	"kantor/pkg/domain"
	"kantor/pkg/platform/sentinel"
)

// AccountCreator is the account-creation use case as the transport sees it.
type AccountCreator interface {
	Create(ctx context.Context, req accountsvc.CreateAccountRequest) (domain.AccountID, error)
}

// AccountReader is the account-details query.
type AccountReader interface {
	Details(ctx context.Context, pesel string) (accountsvc.AccountDetails, error)
}

// AccountHandler exposes account registration and the details lookup. It
// decodes, delegates and maps errors; no business rules live here.
type AccountHandler struct {
	logger  *slog.Logger
	creator AccountCreator
	reader  AccountReader
}

func NewAccountHandler(creator AccountCreator, reader AccountReader, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{logger: logger, creator: creator, reader: reader}
}

func (h *AccountHandler) Register(r chi.Router) {
	r.Post("/accounts", h.handleCreate)
	r.Get("/accounts/{pesel}", h.handleDetails)
}

type newAccountRequest struct {
	FirstName            string           `json:"firstName"`
	LastName             string           `json:"lastName"`
	Pesel                string           `json:"pesel"`
	StartingBalanceInPLN *decimal.Decimal `json:"startingBalanceInPLN"`
}

func (h *AccountHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body newAccountRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w)
		return
	}

	id, err := h.creator.Create(r.Context(), accountsvc.CreateAccountRequest{
		FirstName:            body.FirstName,
		LastName:             body.LastName,
		Pesel:                body.Pesel,
		StartingBalanceInPLN: body.StartingBalanceInPLN,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/accounts/%d", id))
	w.WriteHeader(http.StatusCreated)
}

type accountDetailsResponse struct {
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Accounts  []balanceDTO `json:"accounts"`
}

type balanceDTO struct {
	Balance moneyDTO `json:"balance"`
}

func (h *AccountHandler) handleDetails(w http.ResponseWriter, r *http.Request) {
	rawPesel := chi.URLParam(r, "pesel")

	details, err := h.reader.Details(r.Context(), rawPesel)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(r.Context(), "account details query failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	resp := accountDetailsResponse{
		FirstName: details.FirstName,
		LastName:  details.LastName,
	}
	for _, balance := range details.Balances {
		resp.Accounts = append(resp.Accounts, balanceDTO{Balance: newMoneyDTO(balance)})
	}
	writeJSON(w, http.StatusOK, mediaTypeAccountDetails, resp)
}
