package adapters

import (
	"context"
	"countries/internal/domain"
)

type CountrySource interface {
	GetCountries(ctx context.Context) ([]domain.SourceCountry, error)
}

type RateSource interface {
	GetExchangeRates(ctx context.Context) (map[string]float64, error)
}

type CountryRepository interface {
	Upsert(ctx context.Context, country domain.Country) error
	GetByName(ctx context.Context, name string) (domain.Country, error)
	ListAll(ctx context.Context) ([]domain.Country, error)
	DeleteByName(ctx context.Context, name string) (int64, error)
	Count(ctx context.Context) (int, error)
}

type MetaRepository interface {
	Get(ctx context.Context) (domain.Meta, error)
	Upsert(ctx context.Context, meta domain.Meta) error
}

// Store hands out repositories bound either to the connection pool or, inside
// WithinTx, to a single transaction. fn's error rolls the transaction back.
type Store interface {
	Countries() CountryRepository
	Meta() MetaRepository
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}

// CountryCache is a read-through cache for lookups by name. Every Del and
// Clear advances Generation; Set with an older generation is dropped so a read
// that raced a delete or refresh never repopulates the cache.
type CountryCache interface {
	Get(name string) (domain.Country, bool)
	Generation() uint64
	Set(country domain.Country, gen uint64) bool
	Del(name string)
	Clear()
}
