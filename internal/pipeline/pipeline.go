package pipeline

import (
	"context"
	"countryfx/internal/country"
	"countryfx/internal/domain"
	"countryfx/internal/rate"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Pipeline resolves countries, averages their currency rates, joins both and
// persists the result. Every step must succeed for the next one to run.
type Pipeline struct {
	resolver   *country.Resolver
	averager   *rate.Averager
	persister  *Persister
	codes      []string
	windowDays int
}

func (p *Pipeline) Run(ctx context.Context) ([]domain.CountryRate, error) {
	execID := uuid.NewString()
	log := logrus.WithField("execID", execID)

	// STEP 1: resolving countries
	countries, err := p.resolver.Resolve(ctx, p.codes)
	if err != nil {
		return nil, err
	}
	log.Infof("%d countries resolved", len(countries))

	// STEP 2: averaging rates of exactly the currencies used by the resolved countries
	currencies := domain.CurrencyCodes(countries)
	if len(currencies) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrLookup, domain.ErrNoCurrencies)
	}
	averages, err := p.averager.Average(ctx, currencies, p.windowDays)
	if err != nil {
		return nil, err
	}
	log.Infof("Rates of %d currencies averaged over %d days", len(currencies), p.windowDays)

	// STEP 3: joining
	results, err := Join(countries, averages)
	if err != nil {
		return nil, err
	}

	// STEP 4: persisting
	if err = p.persister.Persist(ctx, results); err != nil {
		return nil, err
	}

	for _, r := range results {
		log.WithFields(logrus.Fields{
			"country":  r.Name,
			"currency": r.CurrencyCode,
			"rate":     r.ExchangeRate,
		}).Info("Country persisted")
	}
	log.Infof("%d countries persisted", len(results))
	return results, nil
}

func New(resolver *country.Resolver, averager *rate.Averager, persister *Persister, codes []string, windowDays int) (*Pipeline, error) {
	if windowDays < 1 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidWindow, windowDays)
	}
	return &Pipeline{
		resolver:   resolver,
		averager:   averager,
		persister:  persister,
		codes:      codes,
		windowDays: windowDays,
	}, nil
}
