package pipeline

import (
	"countryfx/internal/domain"
	"countryfx/internal/rate"
	"fmt"
)

// Join attaches the averaged rate of each country's currency, keeping the
// order of countries. Nothing is returned if any currency has no rate.
func Join(countries []domain.Country, averages *rate.Averages) ([]domain.CountryRate, error) {
	if averages == nil {
		return nil, fmt.Errorf("%w: no rate table", domain.ErrMissingRate)
	}

	joined := make([]domain.CountryRate, 0, len(countries))
	for _, c := range countries {
		avg, ok := averages.Rate(c.CurrencyCode)
		if !ok {
			return nil, fmt.Errorf("%w: %s (%s)", domain.ErrMissingRate, c.CurrencyCode, c.Name)
		}
		joined = append(joined, domain.CountryRate{
			Name:         c.Name,
			CallingCode:  c.CallingCode,
			Capital:      c.Capital,
			Population:   c.Population,
			CurrencyCode: c.CurrencyCode,
			ExchangeRate: avg.InexactFloat64(),
			Flag:         c.Flag,
		})
	}
	return joined, nil
}
