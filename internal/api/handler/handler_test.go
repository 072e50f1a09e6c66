package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"countryfx/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCountryRepository struct{ mock.Mock }

func (m *MockCountryRepository) ListLatest(ctx context.Context) ([]domain.CountryRate, error) {
	args := m.Called(ctx)
	countries, _ := args.Get(0).([]domain.CountryRate)
	return countries, args.Error(1)
}

type errorJSON struct {
	Error string `json:"error"`
}

func newRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/v1/countries", h.ListCountries)
	return r
}

func TestListCountries_Success(t *testing.T) {
	repo := new(MockCountryRepository)
	repo.On("ListLatest", mock.Anything).Return([]domain.CountryRate{
		{Name: "United Kingdom", CallingCode: 44, Capital: "London", Population: 65110000, CurrencyCode: "GBP", ExchangeRate: 0.85, Flag: "gb.svg"},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/countries", nil)
	rec := httptest.NewRecorder()
	newRouter(NewCountryHandler(repo)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body []CountryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	require.Equal(t, "United Kingdom", body[0].Name)
	require.Equal(t, 44, body[0].CallingCode)
	require.Equal(t, "GBP", body[0].Currency)
	require.InDelta(t, 0.85, body[0].ExchangeRate, 1e-12)
	repo.AssertExpectations(t)
}

func TestListCountries_EmptyIsArray(t *testing.T) {
	repo := new(MockCountryRepository)
	repo.On("ListLatest", mock.Anything).Return([]domain.CountryRate{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/countries", nil)
	rec := httptest.NewRecorder()
	newRouter(NewCountryHandler(repo)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestListCountries_RepositoryError(t *testing.T) {
	repo := new(MockCountryRepository)
	repo.On("ListLatest", mock.Anything).Return(nil, errors.New("db down")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/countries", nil)
	rec := httptest.NewRecorder()
	newRouter(NewCountryHandler(repo)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errorJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ups, couldn't list countries this time", body.Error)
}
