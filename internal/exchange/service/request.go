package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"kantor/pkg/domain"
	"kantor/pkg/money"
)

// ExchangeRequest is the raw, untrusted exchange input. The transaction id
// comes from the caller and doubles as the idempotency key; Amount nil means
// the field was absent.
type ExchangeRequest struct {
	TransactionID  string
	Pesel          string
	Amount         *decimal.Decimal
	Currency       string
	TargetCurrency string
}

type rule struct {
	subject   string
	violation domain.Violation
	failed    func() bool
}

// violation runs the declared rule order and returns the first failure, or
// nil when the request is valid.
func (r ExchangeRequest) violation() *domain.ConstraintViolation {
	rules := []rule{
		{"transactionId", domain.ViolationIsBlank, func() bool { return isBlank(r.TransactionID) }},
		{"pesel", domain.ViolationIsBlank, func() bool { return isBlank(r.Pesel) }},
		{"amount", domain.ViolationIsBlank, func() bool { return r.Amount == nil }},
		{"amount", domain.ViolationIsNegative, func() bool { return r.Amount.IsNegative() }},
		{"currency", domain.ViolationIsBlank, func() bool { return isBlank(r.Currency) }},
		{"currency", domain.ViolationIsUnsupported, func() bool { return !money.IsSupported(r.Currency) }},
		{"targetCurrency", domain.ViolationIsBlank, func() bool { return isBlank(r.TargetCurrency) }},
		{"targetCurrency", domain.ViolationIsUnsupported, func() bool { return !money.IsSupported(r.TargetCurrency) }},
	}

	for _, rule := range rules {
		if rule.failed() {
			return &domain.ConstraintViolation{Subject: rule.subject, Violation: rule.violation}
		}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
