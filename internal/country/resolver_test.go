package country

import (
	"context"
	"errors"
	"testing"

	"countryfx/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCountryClient struct{ mock.Mock }

func (m *MockCountryClient) GetByCodes(ctx context.Context, codes []string) ([]domain.Country, error) {
	args := m.Called(ctx, codes)
	countries, _ := args.Get(0).([]domain.Country)
	return countries, args.Error(1)
}

func TestResolver_Resolve_SortsAndDeduplicatesCodes(t *testing.T) {
	client := new(MockCountryClient)
	response := []domain.Country{
		{Name: "United States of America", CurrencyCode: "USD"},
		{Name: "United Kingdom", CurrencyCode: "GBP"},
	}
	client.On("GetByCodes", mock.Anything, []string{"BRA", "GBR", "USA"}).Return(response, nil).Once()

	r := NewResolver(client)
	countries, err := r.Resolve(context.Background(), []string{"USA", " gbr", "BRA", "usa"})

	require.NoError(t, err)
	// response order is kept as is
	require.Equal(t, response, countries)
	client.AssertExpectations(t)
}

func TestResolver_Resolve_OutputMatchesResponseLength(t *testing.T) {
	client := new(MockCountryClient)
	response := []domain.Country{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	client.On("GetByCodes", mock.Anything, []string{"AAA", "BBB"}).Return(response, nil).Once()

	countries, err := NewResolver(client).Resolve(context.Background(), []string{"BBB", "AAA"})
	require.NoError(t, err)
	require.Len(t, countries, 3)
}

func TestResolver_Resolve_InvalidCodes(t *testing.T) {
	for _, codes := range [][]string{nil, {}, {"US"}, {"USAA"}, {"U2A"}, {"USA", ""}} {
		client := new(MockCountryClient)
		_, err := NewResolver(client).Resolve(context.Background(), codes)

		require.ErrorIs(t, err, domain.ErrLookup, "%v", codes)
		require.ErrorIs(t, err, domain.ErrInvalidCode, "%v", codes)
		client.AssertNotCalled(t, "GetByCodes", mock.Anything, mock.Anything)
	}
}

func TestResolver_Resolve_ClientErrorWrapped(t *testing.T) {
	client := new(MockCountryClient)
	client.On("GetByCodes", mock.Anything, []string{"USA"}).Return(nil, errors.New("unexpected status code 500")).Once()

	_, err := NewResolver(client).Resolve(context.Background(), []string{"USA"})

	require.ErrorIs(t, err, domain.ErrLookup)
	require.ErrorContains(t, err, "unexpected status code 500")
	client.AssertExpectations(t)
}
