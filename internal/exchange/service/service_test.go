package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"kantor/internal/account/models"
	accountstore "kantor/internal/account/store"
	"kantor/internal/platform/metrics"
	"kantor/internal/rates"
	txmodels "kantor/internal/transaction/models"
	txstore "kantor/internal/transaction/store"
	"kantor/pkg/clock"
	"kantor/pkg/domain"
	"kantor/pkg/money"
	"kantor/pkg/pesel"
)

const (
	registeredPesel   = "00310314398"
	unregisteredPesel = "90010112349"
)

var bookingInstant = time.Date(2022, time.November, 25, 12, 0, 0, 0, time.UTC)

type ExchangeSuite struct {
	suite.Suite
	accounts     *accountstore.InMemory
	transactions *txstore.InMemory
	accountID    domain.AccountID
	service      *Service
	ctx          context.Context
}

func TestExchangeSuite(t *testing.T) {
	suite.Run(t, new(ExchangeSuite))
}

func (s *ExchangeSuite) SetupTest() {
	s.ctx = context.Background()
	s.accounts = accountstore.NewInMemory()
	s.transactions = txstore.NewInMemory()

	id, err := s.accounts.Create(s.ctx, models.NewAccount{
		FirstName: "Jan",
		LastName:  "Kowalski",
		Pesel:     pesel.New(registeredPesel),
	})
	s.Require().NoError(err)
	s.accountID = id

	// table C of 2022-11-25: bid 4.4642, ask 4.5544, so 1/ask rounds to 0.2196
	provider := rates.NewStatic().
		Set(money.PLN, money.USD, decimal.RequireFromString("0.2196")).
		Set(money.USD, money.PLN, decimal.RequireFromString("4.4642"))

	s.service = s.newService(s.transactions, provider)
}

func (s *ExchangeSuite) newService(transactions TransactionsStore, provider rates.Provider) *Service {
	return New(
		s.accounts,
		transactions,
		provider,
		clock.Fixed(bookingInstant),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics.New(prometheus.NewRegistry()),
	)
}

func exchangeRequest() ExchangeRequest {
	amount := decimal.RequireFromString("50.00")
	return ExchangeRequest{
		TransactionID:  "tx-1",
		Pesel:          registeredPesel,
		Amount:         &amount,
		Currency:       "PLN",
		TargetCurrency: "USD",
	}
}

func (s *ExchangeSuite) TestExchange_PlnToUsd() {
	converted, err := s.service.Exchange(s.ctx, exchangeRequest())
	s.Require().NoError(err)

	s.Equal(money.USD, converted.Currency)
	s.True(converted.Amount.Equal(decimal.RequireFromString("10.98")), "got %s", converted.Amount)

	stored, err := s.transactions.ListByAccount(s.ctx, s.accountID)
	s.Require().NoError(err)
	s.Require().Len(stored, 2, "an exchange books exactly two legs")

	legs := byCurrency(stored)
	debit, credit := legs[money.PLN], legs[money.USD]

	s.True(debit.Value.Amount.Equal(decimal.RequireFromString("-50.00")), "got %s", debit.Value.Amount)
	s.True(credit.Value.Amount.Equal(decimal.RequireFromString("10.98")), "got %s", credit.Value.Amount)

	s.Equal(domain.TransactionID("tx-1"), debit.TransactionID)
	s.Equal(debit.TransactionID, credit.TransactionID)
	s.Equal(debit.CreatedAt, credit.CreatedAt, "both legs share one clock read")
	s.Equal(bookingInstant, debit.CreatedAt)
}

func (s *ExchangeSuite) TestExchange_UsdToPln() {
	amount := decimal.RequireFromString("100.00")
	req := exchangeRequest()
	req.Amount = &amount
	req.Currency = "USD"
	req.TargetCurrency = "PLN"

	converted, err := s.service.Exchange(s.ctx, req)
	s.Require().NoError(err)

	s.Equal(money.PLN, converted.Currency)
	s.True(converted.Amount.Equal(decimal.RequireFromString("446.42")), "got %s", converted.Amount)
}

func (s *ExchangeSuite) TestExchange_ValidationOrder() {
	s.Run("transaction id wins over pesel", func() {
		req := exchangeRequest()
		req.TransactionID = " "
		req.Pesel = ""
		_, err := s.service.Exchange(s.ctx, req)
		s.assertViolation(err, "transactionId", domain.ViolationIsBlank)
	})

	s.Run("pesel blank", func() {
		req := exchangeRequest()
		req.Pesel = ""
		_, err := s.service.Exchange(s.ctx, req)
		s.assertViolation(err, "pesel", domain.ViolationIsBlank)
	})

	s.Run("absent amount", func() {
		req := exchangeRequest()
		req.Amount = nil
		_, err := s.service.Exchange(s.ctx, req)
		s.assertViolation(err, "amount", domain.ViolationIsBlank)
	})

	s.Run("negative amount", func() {
		amount := decimal.RequireFromString("-1.00")
		req := exchangeRequest()
		req.Amount = &amount
		_, err := s.service.Exchange(s.ctx, req)
		s.assertViolation(err, "amount", domain.ViolationIsNegative)
	})

	s.Run("currency blank", func() {
		req := exchangeRequest()
		req.Currency = ""
		_, err := s.service.Exchange(s.ctx, req)
		s.assertViolation(err, "currency", domain.ViolationIsBlank)
	})

	s.Run("currency off the allow-list", func() {
		req := exchangeRequest()
		req.Currency = "EUR"
		_, err := s.service.Exchange(s.ctx, req)
		s.assertViolation(err, "currency", domain.ViolationIsUnsupported)
	})

	s.Run("target currency blank", func() {
		req := exchangeRequest()
		req.TargetCurrency = ""
		_, err := s.service.Exchange(s.ctx, req)
		s.assertViolation(err, "targetCurrency", domain.ViolationIsBlank)
	})

	s.Run("target currency off the allow-list", func() {
		req := exchangeRequest()
		req.TargetCurrency = "CHF"
		_, err := s.service.Exchange(s.ctx, req)
		s.assertViolation(err, "targetCurrency", domain.ViolationIsUnsupported)
	})
}

func (s *ExchangeSuite) TestExchange_UnknownPesel() {
	req := exchangeRequest()
	req.Pesel = unregisteredPesel

	_, err := s.service.Exchange(s.ctx, req)
	s.assertViolation(err, "pesel", domain.ViolationIsNotRegistered)
}

func (s *ExchangeSuite) TestExchange_AccountsStoreDown() {
	service := New(
		failingAccounts{},
		s.transactions,
		rates.NewStatic(),
		clock.Fixed(bookingInstant),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics.New(prometheus.NewRegistry()),
	)

	_, err := service.Exchange(s.ctx, exchangeRequest())
	s.Require().ErrorIs(err, domain.ErrAccountsUnavailable)
}

func (s *ExchangeSuite) TestExchange_RateUnavailable() {
	service := s.newService(s.transactions, rates.NewStatic())

	_, err := service.Exchange(s.ctx, exchangeRequest())
	s.Require().ErrorIs(err, domain.ErrRatesUnavailable)

	stored, listErr := s.transactions.ListByAccount(s.ctx, s.accountID)
	s.Require().NoError(listErr)
	s.Empty(stored, "nothing may be booked without a rate")
}

func (s *ExchangeSuite) TestExchange_Replay() {
	_, err := s.service.Exchange(s.ctx, exchangeRequest())
	s.Require().NoError(err)

	_, err = s.service.Exchange(s.ctx, exchangeRequest())
	s.assertViolation(err, "transactionId", domain.ViolationNotUnique)

	stored, listErr := s.transactions.ListByAccount(s.ctx, s.accountID)
	s.Require().NoError(listErr)
	s.Len(stored, 2, "a replay must not book additional legs")
}

func (s *ExchangeSuite) TestExchange_TransactionsStoreDown() {
	provider := rates.NewStatic().Set(money.PLN, money.USD, decimal.RequireFromString("0.2196"))
	service := s.newService(failingTransactions{}, provider)

	_, err := service.Exchange(s.ctx, exchangeRequest())
	s.Require().ErrorIs(err, domain.ErrTransactionsUnavailable)
}

func (s *ExchangeSuite) assertViolation(err error, subject string, violation domain.Violation) {
	s.T().Helper()
	ir, ok := domain.AsInvalidRequest(err)
	s.Require().True(ok, "expected invalid request, got %v", err)
	s.Equal(subject, ir.Violation.Subject)
	s.Equal(violation, ir.Violation.Violation)
}

func byCurrency(postings []txmodels.Posting) map[money.Currency]txmodels.Posting {
	legs := make(map[money.Currency]txmodels.Posting, len(postings))
	for _, p := range postings {
		legs[p.Value.Currency] = p
	}
	return legs
}

type failingAccounts struct{}

func (failingAccounts) GetByPesel(context.Context, pesel.Pesel) (models.Account, error) {
	return models.Account{}, errors.New("connection refused")
}

type failingTransactions struct{}

func (failingTransactions) CreateBatch(context.Context, []txmodels.Posting) error {
	return errors.New("connection refused")
}
