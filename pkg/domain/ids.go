// Package domain holds the identifier types, the constraint-violation
// vocabulary and the use-case failure taxonomy shared across the service.
package domain

// AccountID identifies a customer's ledger subject. Assigned by the accounts
// store on creation.
type AccountID int64

// TransactionID links the postings of one booking. The exchange path takes it
// from the caller's request; the starting-balance path generates one.
type TransactionID string

func (id TransactionID) String() string {
	return string(id)
}
