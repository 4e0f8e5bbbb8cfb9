//go:build integration

package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"kantor/internal/account/models"
	"kantor/pkg/domain"
	"kantor/pkg/pesel"
	"kantor/pkg/platform/sentinel"
	"kantor/pkg/testutil/containers"
)

type PostgresAccountSuite struct {
	suite.Suite
	db    *containers.Postgres
	store *Postgres
	ctx   context.Context
}

func TestPostgresAccountSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	suite.Run(t, new(PostgresAccountSuite))
}

func (s *PostgresAccountSuite) SetupSuite() {
	s.db = containers.StartPostgres(s.T())
	s.store = NewPostgres(s.db.Pool)
	s.ctx = context.Background()
}

func (s *PostgresAccountSuite) SetupTest() {
	_, err := s.db.Pool.Exec(s.ctx, "TRUNCATE postings, accounts RESTART IDENTITY")
	s.Require().NoError(err)
}

func (s *PostgresAccountSuite) TestCreateAndLookup() {
	id, err := s.store.Create(s.ctx, models.NewAccount{
		FirstName: "Jan",
		LastName:  "Kowalski",
		Pesel:     pesel.New("00310314398"),
	})
	s.Require().NoError(err)
	s.NotZero(id)

	found, err := s.store.GetByPesel(s.ctx, pesel.New("00310314398"))
	s.Require().NoError(err)
	s.Equal(id, found.ID)
	s.Equal("Jan", found.FirstName)
	s.Equal("Kowalski", found.LastName)
	s.Equal(pesel.New("00310314398"), found.Pesel)
}

func (s *PostgresAccountSuite) TestGetByPesel_NotFound() {
	_, err := s.store.GetByPesel(s.ctx, pesel.New("90010112349"))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentRegistration lets the database settle the race: out of many
// simultaneous registrations of one pesel exactly one may win.
func (s *PostgresAccountSuite) TestConcurrentRegistration() {
	const attempts = 10

	account := models.NewAccount{
		FirstName: "Jan",
		LastName:  "Kowalski",
		Pesel:     pesel.New("00310314398"),
	}

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Create(s.ctx, account)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var created, duplicates int
	for err := range results {
		switch {
		case err == nil:
			created++
		case errors.Is(err, sentinel.ErrDuplicate):
			duplicates++
		default:
			s.Failf("unexpected error", "%v", err)
		}
	}
	s.Equal(1, created)
	s.Equal(attempts-1, duplicates)

	var count int
	s.Require().NoError(s.db.Pool.QueryRow(s.ctx, "SELECT COUNT(*) FROM accounts").Scan(&count))
	s.Equal(1, count)
}

func (s *PostgresAccountSuite) TestIDsAreAssignedByTheDatabase() {
	first, err := s.store.Create(s.ctx, models.NewAccount{
		FirstName: "Jan", LastName: "Kowalski", Pesel: pesel.New("00310314398"),
	})
	s.Require().NoError(err)

	second, err := s.store.Create(s.ctx, models.NewAccount{
		FirstName: "Anna", LastName: "Nowak", Pesel: pesel.New("90010112349"),
	})
	s.Require().NoError(err)

	s.Equal(domain.AccountID(1), first)
	s.Equal(domain.AccountID(2), second)
}
