package country

import (
	"context"

	"countries/internal/adapters"
	"countries/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- Testify mocks ---

type MockCountrySource struct{ mock.Mock }

func (m *MockCountrySource) GetCountries(ctx context.Context) ([]domain.SourceCountry, error) {
	args := m.Called(ctx)
	countries, _ := args.Get(0).([]domain.SourceCountry)
	return countries, args.Error(1)
}

type MockRateSource struct{ mock.Mock }

func (m *MockRateSource) GetExchangeRates(ctx context.Context) (map[string]float64, error) {
	args := m.Called(ctx)
	rates, _ := args.Get(0).(map[string]float64)
	return rates, args.Error(1)
}

type MockCountryRepository struct{ mock.Mock }

func (m *MockCountryRepository) Upsert(ctx context.Context, country domain.Country) error {
	args := m.Called(ctx, country)
	return args.Error(0)
}

func (m *MockCountryRepository) GetByName(ctx context.Context, name string) (domain.Country, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(domain.Country)
	return c, args.Error(1)
}

func (m *MockCountryRepository) ListAll(ctx context.Context) ([]domain.Country, error) {
	args := m.Called(ctx)
	countries, _ := args.Get(0).([]domain.Country)
	return countries, args.Error(1)
}

func (m *MockCountryRepository) DeleteByName(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func (m *MockCountryRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockMetaRepository struct{ mock.Mock }

func (m *MockMetaRepository) Get(ctx context.Context) (domain.Meta, error) {
	args := m.Called(ctx)
	meta, _ := args.Get(0).(domain.Meta)
	return meta, args.Error(1)
}

func (m *MockMetaRepository) Upsert(ctx context.Context, meta domain.Meta) error {
	args := m.Called(ctx, meta)
	return args.Error(0)
}

// MockStore hands out the same repository mocks inside and outside WithinTx.
type MockStore struct {
	mock.Mock
	countries *MockCountryRepository
	meta      *MockMetaRepository
}

func newMockStore() *MockStore {
	return &MockStore{countries: new(MockCountryRepository), meta: new(MockMetaRepository)}
}

func (m *MockStore) Countries() adapters.CountryRepository { return m.countries }

func (m *MockStore) Meta() adapters.MetaRepository { return m.meta }

func (m *MockStore) WithinTx(ctx context.Context, fn func(tx adapters.Store) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(m)
}

type MockCountryCache struct{ mock.Mock }

func (m *MockCountryCache) Get(name string) (domain.Country, bool) {
	args := m.Called(name)
	c, _ := args.Get(0).(domain.Country)
	return c, args.Bool(1)
}

func (m *MockCountryCache) Generation() uint64 {
	args := m.Called()
	gen, _ := args.Get(0).(uint64)
	return gen
}

func (m *MockCountryCache) Set(country domain.Country, gen uint64) bool {
	args := m.Called(country, gen)
	return args.Bool(0)
}

func (m *MockCountryCache) Del(name string) {
	m.Called(name)
}

func (m *MockCountryCache) Clear() {
	m.Called()
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
