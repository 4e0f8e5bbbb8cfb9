package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"kantor/internal/account/models"
	"kantor/pkg/clock"
	"kantor/pkg/domain"
	"kantor/pkg/money"
	"kantor/pkg/pesel"
)

// adultAge is the minimum customer age in whole years.
const adultAge = 18

// CreateAccountRequest is the raw, untrusted account-creation input. Empty
// strings stand in for absent fields; the starting balance is optional and
// always denominated in the domestic currency.
type CreateAccountRequest struct {
	FirstName            string
	LastName             string
	Pesel                string
	StartingBalanceInPLN *decimal.Decimal
}

type rule struct {
	subject   string
	violation domain.Violation
	failed    func() bool
}

// violation runs the declared rule order and returns the first failure, or
// nil when the request is valid. Evaluation is lazy and short-circuiting: a
// syntactically invalid PESEL is reported as INVALID_VALUE and its age is
// never computed.
func (r CreateAccountRequest) violation(validator pesel.Validator, clk clock.Clock) *domain.ConstraintViolation {
	id := pesel.New(r.Pesel)

	rules := []rule{
		{"firstName", domain.ViolationIsBlank, func() bool { return isBlank(r.FirstName) }},
		{"lastName", domain.ViolationIsBlank, func() bool { return isBlank(r.LastName) }},
		{"pesel", domain.ViolationIsBlank, func() bool { return isBlank(r.Pesel) }},
		{"pesel", domain.ViolationInvalidValue, func() bool { return !id.IsValid(validator) }},
		{"pesel", domain.ViolationTooYoung, func() bool { return id.Age(clk) < adultAge }},
	}

	for _, rule := range rules {
		if rule.failed() {
			return &domain.ConstraintViolation{Subject: rule.subject, Violation: rule.violation}
		}
	}
	return nil
}

// toNewAccount shapes a validated request into the store value: trimmed
// names, parsed PESEL, optional PLN starting balance.
func (r CreateAccountRequest) toNewAccount() models.NewAccount {
	account := models.NewAccount{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Pesel:     pesel.New(r.Pesel),
	}
	if r.StartingBalanceInPLN != nil {
		balance := money.New(*r.StartingBalanceInPLN, money.PLN)
		account.StartingBalance = &balance
	}
	return account
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
