package domain

import "slices"

// Country is a single entry returned by the country lookup API.
type Country struct {
	Name         string
	CallingCode  int
	Capital      string
	Population   int64
	CurrencyCode string
	Flag         string
}

// CountryRate is a Country joined with the averaged exchange rate of its currency.
type CountryRate struct {
	Name         string
	CallingCode  int
	Capital      string
	Population   int64
	CurrencyCode string
	ExchangeRate float64
	Flag         string
}

// CurrencyCodes returns the sorted, deduplicated currency codes used by countries.
func CurrencyCodes(countries []Country) []string {
	codes := make([]string, 0, len(countries))
	for _, c := range countries {
		codes = append(codes, c.CurrencyCode)
	}
	slices.Sort(codes)
	return slices.Compact(codes)
}
