// Package store implements the postings store port. Both implementations
// guarantee the same two contracts the use cases lean on: (transaction id,
// currency) is unique, and CreateBatch is all-or-nothing.
package store

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"kantor/internal/transaction/models"
	"kantor/pkg/domain"
	"kantor/pkg/money"
	"kantor/pkg/platform/sentinel"
)

type postingKey struct {
	transactionID domain.TransactionID
	currency      money.Currency
}

// InMemory keeps postings in an append-only slice with a uniqueness index.
type InMemory struct {
	mu       sync.RWMutex
	postings []models.Posting
	index    map[postingKey]struct{}
}

func NewInMemory() *InMemory {
	return &InMemory{index: make(map[postingKey]struct{})}
}

// Create inserts a single posting, or sentinel.ErrDuplicate when its
// (transaction id, currency) key is already taken.
func (s *InMemory) Create(_ context.Context, posting models.Posting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(posting)
}

// CreateBatch inserts all postings or none: every key is checked before the
// first insert, so a duplicate anywhere in the batch leaves the store
// untouched.
func (s *InMemory) CreateBatch(_ context.Context, postings []models.Posting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[postingKey]struct{}, len(postings))
	for _, p := range postings {
		k := key(p)
		if _, dup := s.index[k]; dup {
			return sentinel.ErrDuplicate
		}
		if _, dup := seen[k]; dup {
			return sentinel.ErrDuplicate
		}
		seen[k] = struct{}{}
	}
	for _, p := range postings {
		if err := s.insert(p); err != nil {
			return err
		}
	}
	return nil
}

// SumByAccountAndCurrency folds the account's postings in one currency into a
// balance. An account with no postings in that currency sums to zero.
func (s *InMemory) SumByAccountAndCurrency(_ context.Context, accountID domain.AccountID, currency money.Currency) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := decimal.Zero
	for _, p := range s.postings {
		if p.AccountID == accountID && p.Value.Currency == currency {
			sum = sum.Add(p.Value.Amount)
		}
	}
	return sum, nil
}

// ListByAccount returns the account's postings in insertion order.
func (s *InMemory) ListByAccount(_ context.Context, accountID domain.AccountID) ([]models.Posting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Posting
	for _, p := range s.postings {
		if p.AccountID == accountID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *InMemory) insert(posting models.Posting) error {
	k := key(posting)
	if _, dup := s.index[k]; dup {
		return sentinel.ErrDuplicate
	}
	s.index[k] = struct{}{}
	s.postings = append(s.postings, posting)
	return nil
}

func key(p models.Posting) postingKey {
	return postingKey{transactionID: p.TransactionID, currency: p.Value.Currency}
}
