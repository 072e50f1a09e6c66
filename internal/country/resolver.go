package country

import (
	"context"
	"countryfx/internal/adapters"
	"countryfx/internal/domain"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Resolver fetches country records for a set of three-letter country codes.
type Resolver struct {
	client   adapters.CountryClient
	validate *validator.Validate
}

// Resolve normalizes codes (uppercase, deduplicated, sorted) and looks them up
// with a single request. Countries are returned in the order the API sent them.
func (r *Resolver) Resolve(ctx context.Context, codes []string) ([]domain.Country, error) {
	normalized, err := r.normalize(codes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLookup, err)
	}

	countries, err := r.client.GetByCodes(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLookup, err)
	}
	return countries, nil
}

func (r *Resolver) normalize(codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: no codes given", domain.ErrInvalidCode)
	}

	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if err := r.validate.Var(code, "len=3,alpha"); err != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCode, code)
		}
		normalized = append(normalized, code)
	}

	slices.Sort(normalized)
	return slices.Compact(normalized), nil
}

func NewResolver(client adapters.CountryClient) *Resolver {
	return &Resolver{client: client, validate: validator.New()}
}
