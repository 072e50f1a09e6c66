package restcountries

import (
	"context"
	"countryfx/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Client looks countries up on a restcountries v2 compatible API.
type Client struct {
	http     *http.Client
	baseURL  string
	validate *validator.Validate
}

type currencyPayload struct {
	Code string `json:"code" validate:"required,len=3"`
}

type countryPayload struct {
	Name         string            `json:"name" validate:"required"`
	CallingCodes []string          `json:"callingCodes" validate:"required,min=1,dive,required,numeric"`
	Capital      *string           `json:"capital" validate:"required"`
	Population   *int64            `json:"population" validate:"required,gte=0"`
	Currencies   []currencyPayload `json:"currencies" validate:"required,min=1,dive"`
	Flag         string            `json:"flag" validate:"required"`
}

func (c *Client) GetByCodes(ctx context.Context, codes []string) ([]domain.Country, error) {
	joined := strings.Join(codes, ";")

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/alpha"
	u.RawQuery = url.Values{"codes": {joined}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for codes %q: %w", joined, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for codes %q: %w", joined, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d for codes %q: %s", resp.StatusCode, joined, resp.Status)
	}

	var body []*countryPayload
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response for codes %q: %w", joined, err)
	}

	countries := make([]domain.Country, 0, len(body))
	for i, p := range body {
		country, convErr := c.toCountry(p)
		if convErr != nil {
			return nil, fmt.Errorf("invalid country at position %d: %w", i, convErr)
		}
		countries = append(countries, country)
	}
	return countries, nil
}

func (c *Client) toCountry(p *countryPayload) (domain.Country, error) {
	if p == nil {
		return domain.Country{}, errors.New("empty entry")
	}
	if err := c.validate.Struct(p); err != nil {
		return domain.Country{}, err
	}

	callingCode, err := strconv.Atoi(p.CallingCodes[0])
	if err != nil {
		return domain.Country{}, fmt.Errorf("calling code %q of %s: %w", p.CallingCodes[0], p.Name, err)
	}

	return domain.Country{
		Name:         p.Name,
		CallingCode:  callingCode,
		Capital:      *p.Capital,
		Population:   *p.Population,
		CurrencyCode: p.Currencies[0].Code,
		Flag:         p.Flag,
	}, nil
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		http:     httpClient,
		baseURL:  baseURL,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}
