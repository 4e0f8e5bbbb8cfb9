package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"kantor/internal/account/models"
	"kantor/pkg/domain"
	"kantor/pkg/pesel"
	"kantor/pkg/platform/sentinel"
)

const uniqueViolationCode = "23505"

// Postgres persists accounts in PostgreSQL. The accounts table carries a
// unique constraint on pesel; the database settles races between concurrent
// registrations, not this code.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) Create(ctx context.Context, account models.NewAccount) (domain.AccountID, error) {
	const query = `
		INSERT INTO accounts (first_name, last_name, pesel)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := s.pool.QueryRow(ctx, query, account.FirstName, account.LastName, account.Pesel.String()).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("pesel already registered: %w", sentinel.ErrDuplicate)
		}
		return 0, fmt.Errorf("create account: %w", err)
	}
	return domain.AccountID(id), nil
}

func (s *Postgres) GetByPesel(ctx context.Context, p pesel.Pesel) (models.Account, error) {
	const query = `
		SELECT id, first_name, last_name, pesel
		FROM accounts
		WHERE pesel = $1
	`

	var (
		account models.Account
		id      int64
		raw     string
	)
	err := s.pool.QueryRow(ctx, query, p.String()).Scan(&id, &account.FirstName, &account.LastName, &raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Account{}, sentinel.ErrNotFound
		}
		return models.Account{}, fmt.Errorf("get account by pesel: %w", err)
	}
	account.ID = domain.AccountID(id)
	account.Pesel = pesel.Pesel(raw)
	return account, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
