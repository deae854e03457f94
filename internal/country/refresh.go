package country

import (
	"context"
	"countries/internal/adapters"
	"countries/internal/domain"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultFetchTimeout = 15 * time.Second

// RefreshResult reports the outcome of a completed refresh.
type RefreshResult struct {
	LastRefreshedAt time.Time
	TotalCountries  int
	Processed       int
}

// Refresher pulls both external datasets and rewrites the stored countries and
// the summary meta record in one transaction.
type Refresher struct {
	countrySource adapters.CountrySource
	rateSource    adapters.RateSource
	store         adapters.Store
	estimator     GDPEstimator
	renderer      *SummaryRenderer
	cache         adapters.CountryCache
	fetchTimeout  time.Duration
	now           func() time.Time
}

// Refresh runs the whole pipeline. A failure of either source returns an error
// wrapping domain.ErrSourceUnavailable before anything is written.
func (r *Refresher) Refresh(ctx context.Context) (RefreshResult, error) {
	started := time.Now()

	// STEP 1: fetching countries and rates in parallel, both must succeed
	sourceCountries, rates, err := r.fetchSources(ctx)
	if err != nil {
		return RefreshResult{}, err
	}
	logrus.Infof("Fetched %d countries and %d exchange rates", len(sourceCountries), len(rates))

	refreshedAt := r.now().UTC().Truncate(time.Millisecond)

	// STEP 2: upserting, ranking and rendering inside a single transaction,
	// any error rolls every upsert back
	var result RefreshResult
	err = r.store.WithinTx(ctx, func(tx adapters.Store) error {
		processed, upsertErr := r.upsertCountries(ctx, tx.Countries(), sourceCountries, rates, refreshedAt)
		if upsertErr != nil {
			return upsertErr
		}

		all, listErr := tx.Countries().ListAll(ctx)
		if listErr != nil {
			return fmt.Errorf("failed to read back countries: %w", listErr)
		}

		svg, renderErr := r.renderer.Render(Rank(all, summaryTopN), len(all), refreshedAt)
		if renderErr != nil {
			return fmt.Errorf("failed to render summary: %w", renderErr)
		}

		metaErr := tx.Meta().Upsert(ctx, domain.Meta{
			TotalCountries:  len(all),
			LastRefreshedAt: refreshedAt,
			SummarySVG:      svg,
		})
		if metaErr != nil {
			return fmt.Errorf("failed to save refresh meta: %w", metaErr)
		}

		result = RefreshResult{LastRefreshedAt: refreshedAt, TotalCountries: len(all), Processed: processed}
		return nil
	})
	if err != nil {
		return RefreshResult{}, err
	}

	// STEP 3: every stored row may have changed
	if r.cache != nil {
		r.cache.Clear()
	}

	logrus.Infof("Refresh finished: %d countries processed, %d stored, took %s",
		result.Processed, result.TotalCountries, time.Since(started))
	return result, nil
}

func (r *Refresher) fetchSources(ctx context.Context) ([]domain.SourceCountry, map[string]float64, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	var (
		sourceCountries []domain.SourceCountry
		rates           map[string]float64
	)
	g, gctx := errgroup.WithContext(fetchCtx)
	g.Go(func() error {
		c, err := r.countrySource.GetCountries(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch countries: %w", err)
		}
		sourceCountries = c
		return nil
	})
	g.Go(func() error {
		m, err := r.rateSource.GetExchangeRates(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch exchange rates: %w", err)
		}
		rates = m
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(fetchCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, domain.ErrSourceUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
		}
		return nil, nil, err
	}
	return sourceCountries, rates, nil
}

func (r *Refresher) upsertCountries(ctx context.Context, repo adapters.CountryRepository, sourceCountries []domain.SourceCountry, rates map[string]float64, refreshedAt time.Time) (int, error) {
	processed := 0
	for _, sc := range sourceCountries {
		if sc.Name == "" {
			logrus.Warnf("Skipping source country without name (population %d)", sc.Population)
			continue
		}

		code := sc.CurrencyCode()
		rate, gdp := Estimate(r.estimator, sc.Population, code, rates)

		c := domain.Country{
			Name:            sc.Name,
			Capital:         optional(sc.Capital),
			Region:          optional(sc.Region),
			Population:      sc.Population,
			CurrencyCode:    code,
			ExchangeRate:    rate,
			EstimatedGDP:    gdp,
			FlagURL:         optional(sc.Flag),
			LastRefreshedAt: refreshedAt,
		}
		if err := repo.Upsert(ctx, c); err != nil {
			return processed, err
		}
		processed++
	}
	return processed, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NewRefresher builds a Refresher, falling back to a default fetch timeout when fetchTimeout is not positive.
func NewRefresher(
	countrySource adapters.CountrySource,
	rateSource adapters.RateSource,
	store adapters.Store,
	estimator GDPEstimator,
	cache adapters.CountryCache,
	fetchTimeout time.Duration,
) *Refresher {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &Refresher{
		countrySource: countrySource,
		rateSource:    rateSource,
		store:         store,
		estimator:     estimator,
		renderer:      NewSummaryRenderer(),
		cache:         cache,
		fetchTimeout:  fetchTimeout,
		now:           time.Now,
	}
}
