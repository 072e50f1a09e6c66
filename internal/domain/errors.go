package domain

import "errors"

var (
	ErrLookup      = errors.New("country lookup failed")
	ErrRateFetch   = errors.New("rate fetch failed")
	ErrMissingRate = errors.New("missing averaged rate")
	ErrPersistence = errors.New("persistence failed")

	ErrInvalidCode      = errors.New("invalid country code")
	ErrInvalidWindow    = errors.New("window must be at least one day")
	ErrNoCurrencies     = errors.New("no currencies to track")
	ErrAlreadyFinalized = errors.New("rate table already finalized")
)
