package country

import (
	"context"
	"countries/internal/adapters"
	"countries/internal/domain"
	"errors"
	"strings"
	"time"
)

const SortGDPDesc = "gdp_desc"

var ErrUnsupportedSort = errors.New("unsupported sort, expected gdp_desc")

type ListFilter struct {
	Region   string
	Currency string
	Sort     string
}

// ParseListFilter builds a filter from raw query values.
func ParseListFilter(region, currency, sort string) (ListFilter, error) {
	sort = strings.TrimSpace(sort)
	if sort != "" && sort != SortGDPDesc {
		return ListFilter{}, ErrUnsupportedSort
	}
	return ListFilter{
		Region:   strings.TrimSpace(region),
		Currency: strings.TrimSpace(currency),
		Sort:     sort,
	}, nil
}

type Status struct {
	TotalCountries  int
	LastRefreshedAt *time.Time
}

type Service struct {
	store adapters.Store
	cache adapters.CountryCache
}

// List returns stored countries matching region and currency exactly.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]domain.Country, error) {
	all, err := s.store.Countries().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Country, 0, len(all))
	for _, c := range all {
		if filter.Region != "" && (c.Region == nil || *c.Region != filter.Region) {
			continue
		}
		if filter.Currency != "" && (c.CurrencyCode == nil || *c.CurrencyCode != filter.Currency) {
			continue
		}
		filtered = append(filtered, c)
	}

	if filter.Sort == SortGDPDesc {
		sortByGDPDesc(filtered)
	}
	return filtered, nil
}

func (s *Service) GetByName(ctx context.Context, name string) (domain.Country, error) {
	if c, ok := s.cache.Get(name); ok {
		return c, nil
	}

	// captured before the read so a concurrent delete or refresh wins
	gen := s.cache.Generation()
	c, err := s.store.Countries().GetByName(ctx, name)
	if err != nil {
		return domain.Country{}, err
	}
	s.cache.Set(c, gen)
	return c, nil
}

func (s *Service) DeleteByName(ctx context.Context, name string) error {
	n, err := s.store.Countries().DeleteByName(ctx, name)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrCountryNotFound
	}
	s.cache.Del(name)
	return nil
}

// SummaryImage returns the SVG rendered by the last refresh.
func (s *Service) SummaryImage(ctx context.Context) (string, error) {
	meta, err := s.store.Meta().Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrMetaNotFound) {
			return "", domain.ErrSummaryNotFound
		}
		return "", err
	}
	if meta.SummarySVG == "" {
		return "", domain.ErrSummaryNotFound
	}
	return meta.SummarySVG, nil
}

func (s *Service) Status(ctx context.Context) (Status, error) {
	meta, err := s.store.Meta().Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrMetaNotFound) {
			return Status{}, nil
		}
		return Status{}, err
	}
	ts := meta.LastRefreshedAt
	return Status{TotalCountries: meta.TotalCountries, LastRefreshedAt: &ts}, nil
}

func NewService(store adapters.Store, cache adapters.CountryCache) *Service {
	return &Service{store: store, cache: cache}
}
