// Package service implements the account use cases: registration with an
// optional starting balance, and the read-only details query.
package service

import (
	"context"
	"errors"
	"log/slog"

	"kantor/internal/account/models"
	"kantor/internal/platform/metrics"
	txmodels "kantor/internal/transaction/models"
	"kantor/pkg/clock"
	"kantor/pkg/domain"
	"kantor/pkg/idgen"
	"kantor/pkg/pesel"
	"kantor/pkg/platform/sentinel"
)

// AccountsStore is the accounts port this use case consumes.
type AccountsStore interface {
	Create(ctx context.Context, account models.NewAccount) (domain.AccountID, error)
	GetByPesel(ctx context.Context, p pesel.Pesel) (models.Account, error)
}

// TransactionsStore books the starting-balance posting.
type TransactionsStore interface {
	Create(ctx context.Context, posting txmodels.Posting) error
}

// Service is the account-creation use case.
type Service struct {
	accounts     AccountsStore
	transactions TransactionsStore
	validator    pesel.Validator
	ids          idgen.Generator
	clock        clock.Clock
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

func New(
	accounts AccountsStore,
	transactions TransactionsStore,
	validator pesel.Validator,
	ids idgen.Generator,
	clk clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		accounts:     accounts,
		transactions: transactions,
		validator:    validator,
		ids:          ids,
		clock:        clk,
		logger:       logger,
		metrics:      m,
	}
}

// Create validates the request, registers the account and, when a starting
// balance was supplied, books it as a posting. The returned error is one of:
// *domain.InvalidRequestError, domain.ErrAccountsUnavailable, or nil.
func (s *Service) Create(ctx context.Context, req CreateAccountRequest) (domain.AccountID, error) {
	if v := req.violation(s.validator, s.clock); v != nil {
		return 0, &domain.InvalidRequestError{Violation: *v}
	}

	account := req.toNewAccount()
	id, err := s.accounts.Create(ctx, account)
	if err != nil {
		if errors.Is(err, sentinel.ErrDuplicate) {
			return 0, domain.InvalidRequest("pesel", domain.ViolationNotUnique)
		}
		s.logger.ErrorContext(ctx, "accounts store rejected create", "error", err)
		return 0, domain.ErrAccountsUnavailable
	}

	s.metrics.IncAccountsCreated()
	s.bookStartingBalance(ctx, id, account)
	return id, nil
}

// bookStartingBalance runs after the use case's result is already determined.
// The documented contract covers account creation only, so a booking failure
// is logged and counted but never surfaced. Known at-least-once gap.
func (s *Service) bookStartingBalance(ctx context.Context, id domain.AccountID, account models.NewAccount) {
	if account.StartingBalance == nil {
		return
	}

	posting := txmodels.Posting{
		TransactionID: s.ids.Generate(),
		AccountID:     id,
		Value:         *account.StartingBalance,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.transactions.Create(ctx, posting); err != nil {
		s.logger.ErrorContext(ctx, "starting balance not booked",
			"account_id", int64(id),
			"error", err,
		)
		s.metrics.IncStartingBalanceUnbooked()
	}
}
