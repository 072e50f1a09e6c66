package postgres

import (
	"context"
	"countryfx/internal/adapters"
	"countryfx/internal/domain"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CountryRepository struct {
	pool *pgxpool.Pool
}

// Stage appends one row per record inside a transaction that stays open
// until the returned write is committed or rolled back.
func (r *CountryRepository) Stage(ctx context.Context, records []domain.CountryRate) (adapters.StagedWrite, error) {
	const q = `
		insert into countries(name, calling_code, capital, population, currency, exchange_rate, flag)
		values ($1, $2, $3, $4, $5, $6, $7);
	`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, rec := range records {
		if _, err = tx.Exec(ctx, q,
			rec.Name,
			rec.CallingCode,
			rec.Capital,
			rec.Population,
			rec.CurrencyCode,
			rec.ExchangeRate,
			rec.Flag,
		); err != nil {
			_ = tx.Rollback(ctx)
			return nil, fmt.Errorf("failed to insert country %q: %w", rec.Name, err)
		}
	}

	return &stagedTx{tx: tx}, nil
}

// ListLatest returns the most recently inserted row of every country, ordered by name.
func (r *CountryRepository) ListLatest(ctx context.Context) ([]domain.CountryRate, error) {
	const q = `
		select distinct on (name) name, calling_code, capital, population, currency, exchange_rate, flag
		from countries
		order by name, id desc;
	`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	result := make([]domain.CountryRate, 0, 16)
	for rows.Next() {
		var c domain.CountryRate
		if err = rows.Scan(&c.Name, &c.CallingCode, &c.Capital, &c.Population, &c.CurrencyCode, &c.ExchangeRate, &c.Flag); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating countries: %w", err)
	}
	return result, nil
}

type stagedTx struct {
	tx pgx.Tx
}

func (s *stagedTx) Commit(ctx context.Context) error {
	if err := s.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *stagedTx) Rollback(ctx context.Context) error {
	if err := s.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

func NewCountryRepository(pool *pgxpool.Pool) *CountryRepository {
	return &CountryRepository{pool: pool}
}
