package rate

import (
	"context"
	"countryfx/internal/adapters"
	"countryfx/internal/domain"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

// Averager computes the mean daily rate of a set of currencies over a window
// of days ending today. Days are fetched one after another, newest first.
type Averager struct {
	client adapters.RateClient
	base   string
	now    func() time.Time
}

func (a *Averager) Average(ctx context.Context, codes []string, windowDays int) (*Averages, error) {
	if windowDays < 1 {
		return nil, domain.ErrInvalidWindow
	}
	if len(codes) == 0 {
		return nil, domain.ErrNoCurrencies
	}

	tracked := slices.Clone(codes)
	slices.Sort(tracked)
	tracked = slices.Compact(tracked)

	acc := NewAccumulator(tracked)

	day := startOfDay(a.now())
	end := day.AddDate(0, 0, -windowDays)
	for ; !day.Equal(end); day = day.AddDate(0, 0, -1) {
		rates, err := a.client.GetHistoricalRates(ctx, day, a.base, tracked)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrRateFetch, day.Format(time.DateOnly), err)
		}
		if err = acc.Add(day, rates); err != nil {
			return nil, err
		}
		logrus.WithFields(logrus.Fields{"date": day.Format(time.DateOnly), "base": a.base}).Debug("Rates sampled")
	}

	return acc.Finalize()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func NewAverager(client adapters.RateClient, base string, now func() time.Time) *Averager {
	if now == nil {
		now = time.Now
	}
	return &Averager{client: client, base: base, now: now}
}
