package fixer

import (
	"context"
	"countryfx/internal/domain"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Client reads historical snapshots from a fixer.io compatible API.
type Client struct {
	http      *http.Client
	baseURL   string
	accessKey string
}

type apiError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

type apiResponse struct {
	Success bool                `json:"success"`
	Date    string              `json:"date"`
	Base    string              `json:"base"`
	Rates   map[string]*float64 `json:"rates"`
	Error   *apiError           `json:"error"`
}

func (c *Client) GetHistoricalRates(ctx context.Context, date time.Time, base string, symbols []string) (map[string]float64, error) {
	day := date.Format(dateLayout)

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + day

	q := u.Query()
	q.Set("access_key", c.accessKey)
	q.Set("base", base)
	q.Set("symbols", strings.Join(symbols, ","))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", day, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for %s: %w", day, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d for %s: %s", resp.StatusCode, day, resp.Status)
	}

	var body apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response for %s: %w", day, err)
	}

	if !body.Success {
		if body.Error != nil {
			return nil, fmt.Errorf("api returned error %d (%s) for %s: %s", body.Error.Code, body.Error.Type, day, body.Error.Info)
		}
		return nil, fmt.Errorf("api returned non-success result for %s", day)
	}

	// A null rate is a missing rate, not zero.
	rates := make(map[string]float64, len(body.Rates))
	for code, rate := range body.Rates {
		if rate == nil {
			return nil, fmt.Errorf("%w: null rate for %s on %s", domain.ErrRateFetch, code, day)
		}
		rates[code] = *rate
	}
	return rates, nil
}

func NewClient(httpClient *http.Client, baseURL string, accessKey string) *Client {
	return &Client{http: httpClient, baseURL: baseURL, accessKey: accessKey}
}
