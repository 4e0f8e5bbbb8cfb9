// Package store implements the accounts store port: an in-memory map for
// development and tests, and a PostgreSQL store for real deployments. Both
// enforce PESEL uniqueness and report outcomes via sentinel errors.
package store

import (
	"context"
	"sync"

	"kantor/internal/account/models"
	"kantor/pkg/domain"
	"kantor/pkg/pesel"
	"kantor/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded accounts store keyed by PESEL.
type InMemory struct {
	mu      sync.RWMutex
	byPesel map[pesel.Pesel]models.Account
	nextID  domain.AccountID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byPesel: make(map[pesel.Pesel]models.Account),
		nextID:  1,
	}
}

// Create inserts the account and assigns its id. A second account with the
// same PESEL gets sentinel.ErrDuplicate.
func (s *InMemory) Create(_ context.Context, account models.NewAccount) (domain.AccountID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byPesel[account.Pesel]; exists {
		return 0, sentinel.ErrDuplicate
	}

	id := s.nextID
	s.nextID++
	s.byPesel[account.Pesel] = models.Account{
		ID:        id,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Pesel:     account.Pesel,
	}
	return id, nil
}

// GetByPesel resolves an account, or sentinel.ErrNotFound when the PESEL was
// never registered.
func (s *InMemory) GetByPesel(_ context.Context, p pesel.Pesel) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, exists := s.byPesel[p]
	if !exists {
		return models.Account{}, sentinel.ErrNotFound
	}
	return account, nil
}
