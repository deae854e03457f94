package postgres

import (
	"context"
	"countries/internal/domain"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const countryColumns = `id, name, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at`

type CountryRepository struct {
	db querier
}

func (r *CountryRepository) Upsert(ctx context.Context, c domain.Country) error {
	const q = `
		insert into countries (name, name_key, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		on conflict (name_key) do update set
			name = excluded.name,
			capital = excluded.capital,
			region = excluded.region,
			population = excluded.population,
			currency_code = excluded.currency_code,
			exchange_rate = excluded.exchange_rate,
			estimated_gdp = excluded.estimated_gdp,
			flag_url = excluded.flag_url,
			last_refreshed_at = excluded.last_refreshed_at;
	`

	_, err := r.db.Exec(ctx, q,
		c.Name, domain.NameKey(c.Name), c.Capital, c.Region, c.Population, c.CurrencyCode,
		c.ExchangeRate, c.EstimatedGDP, c.FlagURL, c.LastRefreshedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert country %q: %w", c.Name, err)
	}
	return nil
}

func (r *CountryRepository) GetByName(ctx context.Context, name string) (domain.Country, error) {
	const q = `select ` + countryColumns + ` from countries where name_key = $1;`

	c, err := scanCountry(r.db.QueryRow(ctx, q, domain.NameKey(name)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Country{}, domain.ErrCountryNotFound
		}
		return domain.Country{}, fmt.Errorf("failed to select country %q: %w", name, err)
	}
	return c, nil
}

func (r *CountryRepository) ListAll(ctx context.Context) ([]domain.Country, error) {
	const q = `select ` + countryColumns + ` from countries order by id;`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	countries := make([]domain.Country, 0, 256)
	for rows.Next() {
		c, scanErr := scanCountry(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan country: %w", scanErr)
		}
		countries = append(countries, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating countries: %w", err)
	}
	return countries, nil
}

func (r *CountryRepository) DeleteByName(ctx context.Context, name string) (int64, error) {
	const q = `delete from countries where name_key = $1;`

	tag, err := r.db.Exec(ctx, q, domain.NameKey(name))
	if err != nil {
		return 0, fmt.Errorf("failed to delete country %q: %w", name, err)
	}
	return tag.RowsAffected(), nil
}

func (r *CountryRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `select count(*) from countries;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count countries: %w", err)
	}
	return n, nil
}

func scanCountry(row pgx.Row) (domain.Country, error) {
	var c domain.Country
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Capital,
		&c.Region,
		&c.Population,
		&c.CurrencyCode,
		&c.ExchangeRate,
		&c.EstimatedGDP,
		&c.FlagURL,
		&c.LastRefreshedAt,
	)
	return c, err
}

func NewCountryRepository(pool *pgxpool.Pool) *CountryRepository {
	return &CountryRepository{db: pool}
}
