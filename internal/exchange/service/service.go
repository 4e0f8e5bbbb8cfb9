// Package service implements the exchange use case: validate, resolve the
// account, convert at the live rate, persist the posting pair atomically,
// and translate every downstream failure into the use-case taxonomy.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kantor/internal/account/models"
	"kantor/internal/platform/metrics"
	"kantor/internal/rates"
	txmodels "kantor/internal/transaction/models"
	"kantor/pkg/clock"
	"kantor/pkg/domain"
	"kantor/pkg/money"
	"kantor/pkg/pesel"
	"kantor/pkg/platform/sentinel"
)

// AccountsStore resolves the account the exchange is booked against.
type AccountsStore interface {
	GetByPesel(ctx context.Context, p pesel.Pesel) (models.Account, error)
}

// TransactionsStore persists posting pairs. CreateBatch must be
// all-or-nothing; the use case performs no compensation of its own.
type TransactionsStore interface {
	CreateBatch(ctx context.Context, postings []txmodels.Posting) error
}

// Service is the exchange use case.
type Service struct {
	accounts     AccountsStore
	transactions TransactionsStore
	provider     rates.Provider
	clock        clock.Clock
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

func New(
	accounts AccountsStore,
	transactions TransactionsStore,
	provider rates.Provider,
	clk clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		accounts:     accounts,
		transactions: transactions,
		provider:     provider,
		clock:        clk,
		logger:       logger,
		metrics:      m,
	}
}

// Exchange converts req.Amount from the source to the target currency and
// books the resulting pair against the caller's account. On success the
// returned Money is the converted (credit) leg; the caller never sees the
// negated source leg. Each step's failure is terminal for the request; no
// retries happen here.
//
// The returned error is one of: *domain.InvalidRequestError,
// domain.ErrAccountsUnavailable, domain.ErrRatesUnavailable,
// domain.ErrTransactionsUnavailable, or nil.
func (s *Service) Exchange(ctx context.Context, req ExchangeRequest) (money.Money, error) {
	if v := req.violation(); v != nil {
		s.metrics.IncExchange(metrics.OutcomeInvalidRequest)
		return money.Money{}, &domain.InvalidRequestError{Violation: *v}
	}

	account, err := s.accounts.GetByPesel(ctx, pesel.New(req.Pesel))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncExchange(metrics.OutcomeInvalidRequest)
			return money.Money{}, domain.InvalidRequest("pesel", domain.ViolationIsNotRegistered)
		}
		s.logger.ErrorContext(ctx, "accounts store failed during exchange", "error", err)
		s.metrics.IncExchange(metrics.OutcomeAccountsUnavailable)
		return money.Money{}, domain.ErrAccountsUnavailable
	}

	cmd := conversionCommand{
		accountID:     account.ID,
		transactionID: domain.TransactionID(req.TransactionID),
		source:        money.New(*req.Amount, money.Currency(req.Currency)),
		target:        money.Currency(req.TargetCurrency),
	}

	start := time.Now()
	postings, err := cmd.postings(ctx, s.provider, s.clock)
	s.metrics.ObserveRateLookup(time.Since(start))
	if err != nil {
		s.logger.WarnContext(ctx, "conversion failed", "error", err)
		s.metrics.IncExchange(metrics.OutcomeRatesUnavailable)
		return money.Money{}, domain.ErrRatesUnavailable
	}

	if err := s.transactions.CreateBatch(ctx, postings); err != nil {
		if errors.Is(err, sentinel.ErrDuplicate) {
			s.metrics.IncExchange(metrics.OutcomeInvalidRequest)
			return money.Money{}, domain.InvalidRequest("transactionId", domain.ViolationNotUnique)
		}
		s.logger.ErrorContext(ctx, "transactions store failed during exchange", "error", err)
		s.metrics.IncExchange(metrics.OutcomeTransactionsUnavailable)
		return money.Money{}, domain.ErrTransactionsUnavailable
	}

	s.metrics.IncExchange(metrics.OutcomeSuccess)
	return postings[1].Value, nil
}
