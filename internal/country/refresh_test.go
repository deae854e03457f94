package country

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"countries/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 1, 2, 15, 4, 5, 123456789, time.UTC)

func newTestRefresher(countrySource *MockCountrySource, rateSource *MockRateSource, store *MockStore, cache *MockCountryCache) *Refresher {
	r := NewRefresher(countrySource, rateSource, store, NewFixedMultiplierEstimator(1500), cache, time.Second)
	r.now = func() time.Time { return fixedNow }
	return r
}

func TestRefresher_Refresh_Success(t *testing.T) {
	countrySource := new(MockCountrySource)
	rateSource := new(MockRateSource)
	store := newMockStore()
	cache := new(MockCountryCache)
	r := newTestRefresher(countrySource, rateSource, store, cache)

	ctx := context.Background()
	wantTS := fixedNow.Truncate(time.Millisecond)

	countrySource.On("GetCountries", mock.Anything).Return([]domain.SourceCountry{
		{Name: "Testland", Capital: "Test City", Region: "TestRegion", Population: 1000, Flag: "http://x/flag.svg", Currencies: []domain.SourceCurrency{{Code: "TST"}}},
		{Name: "Nocurrency", Population: 10},
		{Name: "", Population: 5},
	}, nil).Once()
	rateSource.On("GetExchangeRates", mock.Anything).Return(map[string]float64{"TST": 2}, nil).Once()
	store.On("WithinTx", ctx).Return(nil).Once()

	testland := domain.Country{
		Name:            "Testland",
		Capital:         strPtr("Test City"),
		Region:          strPtr("TestRegion"),
		Population:      1000,
		CurrencyCode:    strPtr("TST"),
		ExchangeRate:    floatPtr(2),
		EstimatedGDP:    750000,
		FlagURL:         strPtr("http://x/flag.svg"),
		LastRefreshedAt: wantTS,
	}
	nocurrency := domain.Country{Name: "Nocurrency", Population: 10, LastRefreshedAt: wantTS}

	store.countries.On("Upsert", ctx, testland).Return(nil).Once()
	store.countries.On("Upsert", ctx, nocurrency).Return(nil).Once()

	stored := []domain.Country{
		{ID: 1, Name: "Oldland", EstimatedGDP: 10},
		func() domain.Country { c := testland; c.ID = 2; return c }(),
		func() domain.Country { c := nocurrency; c.ID = 3; return c }(),
	}
	store.countries.On("ListAll", ctx).Return(stored, nil).Once()

	wantSVG, err := NewSummaryRenderer().Render([]domain.Country{stored[1], stored[0], stored[2]}, 3, wantTS)
	require.NoError(t, err)
	store.meta.On("Upsert", ctx, domain.Meta{TotalCountries: 3, LastRefreshedAt: wantTS, SummarySVG: wantSVG}).Return(nil).Once()
	cache.On("Clear").Return().Once()

	res, err := r.Refresh(ctx)
	require.NoError(t, err)
	require.Equal(t, RefreshResult{LastRefreshedAt: wantTS, TotalCountries: 3, Processed: 2}, res)

	countrySource.AssertExpectations(t)
	rateSource.AssertExpectations(t)
	store.AssertExpectations(t)
	store.countries.AssertExpectations(t)
	store.meta.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestRefresher_Refresh_SourceFailure_NoWrites(t *testing.T) {
	cases := []struct {
		name       string
		countryErr error
		rateErr    error
	}{
		{name: "rate source down", rateErr: fmt.Errorf("%w: status 502", domain.ErrSourceUnavailable)},
		{name: "country source down", countryErr: fmt.Errorf("%w: connection refused", domain.ErrSourceUnavailable)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			countrySource := new(MockCountrySource)
			rateSource := new(MockRateSource)
			store := newMockStore()
			cache := new(MockCountryCache)
			r := newTestRefresher(countrySource, rateSource, store, cache)

			countrySource.On("GetCountries", mock.Anything).Return([]domain.SourceCountry{{Name: "A"}}, tc.countryErr).Maybe()
			rateSource.On("GetExchangeRates", mock.Anything).Return(map[string]float64{"A": 1}, tc.rateErr).Maybe()

			_, err := r.Refresh(context.Background())
			require.ErrorIs(t, err, domain.ErrSourceUnavailable)

			store.AssertNotCalled(t, "WithinTx", mock.Anything)
			store.countries.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
			store.meta.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
			cache.AssertNotCalled(t, "Clear")
		})
	}
}

func TestRefresher_Refresh_FetchTimeout(t *testing.T) {
	countrySource := new(MockCountrySource)
	rateSource := new(MockRateSource)
	store := newMockStore()
	cache := new(MockCountryCache)
	r := newTestRefresher(countrySource, rateSource, store, cache)
	r.fetchTimeout = 20 * time.Millisecond

	countrySource.On("GetCountries", mock.Anything).Return([]domain.SourceCountry{}, nil).Maybe()
	rateSource.On("GetExchangeRates", mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded).Once()

	_, err := r.Refresh(context.Background())
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	store.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestRefresher_Refresh_MalformedSourceIsNotUnavailable(t *testing.T) {
	countrySource := new(MockCountrySource)
	rateSource := new(MockRateSource)
	store := newMockStore()
	r := newTestRefresher(countrySource, rateSource, store, new(MockCountryCache))

	decodeErr := errors.New("failed to decode countries response")
	countrySource.On("GetCountries", mock.Anything).Return(nil, decodeErr).Once()
	rateSource.On("GetExchangeRates", mock.Anything).Return(map[string]float64{}, nil).Maybe()

	_, err := r.Refresh(context.Background())
	require.ErrorIs(t, err, decodeErr)
	require.NotErrorIs(t, err, domain.ErrSourceUnavailable)
	store.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestRefresher_Refresh_UpsertFailureStopsPipeline(t *testing.T) {
	countrySource := new(MockCountrySource)
	rateSource := new(MockRateSource)
	store := newMockStore()
	cache := new(MockCountryCache)
	r := newTestRefresher(countrySource, rateSource, store, cache)
	ctx := context.Background()

	countrySource.On("GetCountries", mock.Anything).Return([]domain.SourceCountry{{Name: "A"}, {Name: "B"}}, nil).Once()
	rateSource.On("GetExchangeRates", mock.Anything).Return(map[string]float64{}, nil).Once()
	store.On("WithinTx", ctx).Return(nil).Once()

	dbErr := errors.New("disk full")
	store.countries.On("Upsert", ctx, mock.MatchedBy(func(c domain.Country) bool { return c.Name == "A" })).Return(dbErr).Once()

	_, err := r.Refresh(ctx)
	require.ErrorIs(t, err, dbErr)

	store.countries.AssertNumberOfCalls(t, "Upsert", 1)
	store.countries.AssertNotCalled(t, "ListAll", mock.Anything)
	store.meta.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Clear")
}

func TestRefresher_Refresh_BeginTxError(t *testing.T) {
	countrySource := new(MockCountrySource)
	rateSource := new(MockRateSource)
	store := newMockStore()
	r := newTestRefresher(countrySource, rateSource, store, new(MockCountryCache))
	ctx := context.Background()

	countrySource.On("GetCountries", mock.Anything).Return([]domain.SourceCountry{{Name: "A"}}, nil).Once()
	rateSource.On("GetExchangeRates", mock.Anything).Return(map[string]float64{}, nil).Once()
	txErr := errors.New("failed to begin transaction")
	store.On("WithinTx", ctx).Return(txErr).Once()

	_, err := r.Refresh(ctx)
	require.ErrorIs(t, err, txErr)
	store.countries.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestNewRefresher_DefaultsTimeout(t *testing.T) {
	r := NewRefresher(nil, nil, nil, nil, nil, 0)
	require.Equal(t, 15*time.Second, r.fetchTimeout)
}
