package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"kantor/internal/transaction/models"
	"kantor/pkg/domain"
	"kantor/pkg/money"
	"kantor/pkg/platform/sentinel"
)

const uniqueViolationCode = "23505"

// Postgres persists postings in PostgreSQL. The postings table carries a
// unique constraint on (transaction_id, currency); CreateBatch wraps its
// inserts in one database transaction so a partially applied exchange never
// exists in storage.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const insertPosting = `
	INSERT INTO postings (transaction_id, account_id, amount, currency, created_at)
	VALUES ($1, $2, $3, $4, $5)
`

func (s *Postgres) Create(ctx context.Context, posting models.Posting) error {
	_, err := s.pool.Exec(ctx, insertPosting,
		posting.TransactionID.String(),
		int64(posting.AccountID),
		posting.Value.Amount,
		posting.Value.Currency.String(),
		posting.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("posting already booked: %w", sentinel.ErrDuplicate)
		}
		return fmt.Errorf("create posting: %w", err)
	}
	return nil
}

func (s *Postgres) CreateBatch(ctx context.Context, postings []models.Posting) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin postings batch: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, p := range postings {
		_, err := tx.Exec(ctx, insertPosting,
			p.TransactionID.String(),
			int64(p.AccountID),
			p.Value.Amount,
			p.Value.Currency.String(),
			p.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("posting already booked: %w", sentinel.ErrDuplicate)
			}
			return fmt.Errorf("create posting in batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit postings batch: %w", err)
	}
	return nil
}

func (s *Postgres) SumByAccountAndCurrency(ctx context.Context, accountID domain.AccountID, currency money.Currency) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(amount), 0)
		FROM postings
		WHERE account_id = $1 AND currency = $2
	`

	var sum decimal.Decimal
	err := s.pool.QueryRow(ctx, query, int64(accountID), currency.String()).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum postings: %w", err)
	}
	return sum, nil
}

// ListByAccount returns the account's postings ordered by creation time.
func (s *Postgres) ListByAccount(ctx context.Context, accountID domain.AccountID) ([]models.Posting, error) {
	const query = `
		SELECT transaction_id, account_id, amount, currency, created_at
		FROM postings
		WHERE account_id = $1
		ORDER BY created_at, currency
	`

	rows, err := s.pool.Query(ctx, query, int64(accountID))
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	defer rows.Close()

	var out []models.Posting
	for rows.Next() {
		var (
			p         models.Posting
			txID      string
			accountID int64
			amount    decimal.Decimal
			currency  string
		)
		if err := rows.Scan(&txID, &accountID, &amount, &currency, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan posting: %w", err)
		}
		p.TransactionID = domain.TransactionID(txID)
		p.AccountID = domain.AccountID(accountID)
		p.Value = money.New(amount, money.Currency(currency))
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
