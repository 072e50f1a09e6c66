package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"countryfx/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateClient struct{ mock.Mock }

func (m *MockRateClient) GetHistoricalRates(ctx context.Context, date time.Time, base string, symbols []string) (map[string]float64, error) {
	args := m.Called(ctx, date, base, symbols)
	rates, _ := args.Get(0).(map[string]float64)
	return rates, args.Error(1)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAverager_FiveDays_SequentialDescendingDates(t *testing.T) {
	client := new(MockRateClient)
	var dates []string
	client.On("GetHistoricalRates", mock.Anything, mock.Anything, "EUR", []string{"GBP", "USD"}).
		Return(map[string]float64{"USD": 1.10, "GBP": 0.85}, nil).
		Run(func(args mock.Arguments) {
			dates = append(dates, args.Get(1).(time.Time).Format(time.DateOnly))
		}).Times(5)

	now := time.Date(2024, time.March, 5, 17, 45, 0, 0, time.UTC)
	averager := NewAverager(client, "EUR", fixedClock(now))

	avg, err := averager.Average(context.Background(), []string{"USD", "GBP", "USD"}, 5)
	require.NoError(t, err)
	require.Equal(t, []string{"2024-03-05", "2024-03-04", "2024-03-03", "2024-03-02", "2024-03-01"}, dates)
	require.Equal(t, 5, avg.Samples())

	usd, ok := avg.Rate("USD")
	require.True(t, ok)
	require.Equal(t, 1.10, usd.InexactFloat64())
	gbp, ok := avg.Rate("GBP")
	require.True(t, ok)
	require.Equal(t, 0.85, gbp.InexactFloat64())
	client.AssertExpectations(t)
}

func TestAverager_CrossesMonthBoundary(t *testing.T) {
	client := new(MockRateClient)
	var dates []string
	client.On("GetHistoricalRates", mock.Anything, mock.Anything, "EUR", []string{"USD"}).
		Return(map[string]float64{"USD": 1.0}, nil).
		Run(func(args mock.Arguments) {
			dates = append(dates, args.Get(1).(time.Time).Format(time.DateOnly))
		})

	averager := NewAverager(client, "EUR", fixedClock(time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)))

	_, err := averager.Average(context.Background(), []string{"USD"}, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"2024-03-02", "2024-03-01", "2024-02-29"}, dates)
}

func TestAverager_SingleDayWindow(t *testing.T) {
	client := new(MockRateClient)
	client.On("GetHistoricalRates", mock.Anything, mock.Anything, "EUR", []string{"USD"}).
		Return(map[string]float64{"USD": 1.2345}, nil).Once()

	averager := NewAverager(client, "EUR", fixedClock(someDay))

	avg, err := averager.Average(context.Background(), []string{"USD"}, 1)
	require.NoError(t, err)
	usd, _ := avg.Rate("USD")
	require.Equal(t, 1.2345, usd.InexactFloat64())
	client.AssertExpectations(t)
}

func TestAverager_MissingCurrencyOnDayThree_Aborts(t *testing.T) {
	client := new(MockRateClient)
	full := map[string]float64{"USD": 1.10, "GBP": 0.85}
	client.On("GetHistoricalRates", mock.Anything, someDay, "EUR", mock.Anything).Return(full, nil).Once()
	client.On("GetHistoricalRates", mock.Anything, someDay.AddDate(0, 0, -1), "EUR", mock.Anything).Return(full, nil).Once()
	client.On("GetHistoricalRates", mock.Anything, someDay.AddDate(0, 0, -2), "EUR", mock.Anything).
		Return(map[string]float64{"USD": 1.10}, nil).Once()

	averager := NewAverager(client, "EUR", fixedClock(someDay))

	avg, err := averager.Average(context.Background(), []string{"USD", "GBP"}, 5)
	require.ErrorIs(t, err, domain.ErrRateFetch)
	require.ErrorContains(t, err, "GBP")
	require.Nil(t, avg)
	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "GetHistoricalRates", 3)
}

func TestAverager_ClientError_Aborts(t *testing.T) {
	client := new(MockRateClient)
	client.On("GetHistoricalRates", mock.Anything, mock.Anything, "EUR", mock.Anything).
		Return(nil, errors.New("connection refused")).Once()

	averager := NewAverager(client, "EUR", fixedClock(someDay))

	_, err := averager.Average(context.Background(), []string{"USD"}, 5)
	require.ErrorIs(t, err, domain.ErrRateFetch)
	require.ErrorContains(t, err, "2024-03-05")
	require.ErrorContains(t, err, "connection refused")
	client.AssertNumberOfCalls(t, "GetHistoricalRates", 1)
}

func TestAverager_InvalidInput(t *testing.T) {
	client := new(MockRateClient)
	averager := NewAverager(client, "EUR", fixedClock(someDay))

	_, err := averager.Average(context.Background(), []string{"USD"}, 0)
	require.ErrorIs(t, err, domain.ErrInvalidWindow)

	_, err = averager.Average(context.Background(), nil, 5)
	require.ErrorIs(t, err, domain.ErrNoCurrencies)

	client.AssertNotCalled(t, "GetHistoricalRates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNewAverager_DefaultsClock(t *testing.T) {
	averager := NewAverager(new(MockRateClient), "EUR", nil)
	require.NotNil(t, averager.now)
}
