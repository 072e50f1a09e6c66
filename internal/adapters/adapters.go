package adapters

import (
	"context"
	"countryfx/internal/domain"
	"time"
)

type CountryClient interface {
	GetByCodes(ctx context.Context, codes []string) ([]domain.Country, error)
}

type RateClient interface {
	GetHistoricalRates(ctx context.Context, date time.Time, base string, symbols []string) (map[string]float64, error)
}

// StagedWrite is a prepared write that becomes visible only on Commit.
type StagedWrite interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type TableSink interface {
	Stage(ctx context.Context, records []domain.CountryRate) (StagedWrite, error)
}

type FileSink interface {
	Stage(ctx context.Context, records []domain.CountryRate) (StagedWrite, error)
}

type CountryRepository interface {
	ListLatest(ctx context.Context) ([]domain.CountryRate, error)
}
