package sqlite

import (
	"context"
	"countries/internal/domain"
	"database/sql"
	"errors"
	"fmt"
)

const countryColumns = `id, name, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at`

type CountryRepository struct {
	db querier
}

func (r *CountryRepository) Upsert(ctx context.Context, c domain.Country) error {
	const q = `
		INSERT INTO countries (name, name_key, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name_key) DO UPDATE SET
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

	_, err := r.db.ExecContext(ctx, q,
		c.Name, domain.NameKey(c.Name), c.Capital, c.Region, c.Population, c.CurrencyCode,
		c.ExchangeRate, c.EstimatedGDP, c.FlagURL, formatTime(c.LastRefreshedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert country %q: %w", c.Name, err)
	}
	return nil
}

func (r *CountryRepository) GetByName(ctx context.Context, name string) (domain.Country, error) {
	const q = `SELECT ` + countryColumns + ` FROM countries WHERE name_key = ?;`

	c, err := scanCountry(r.db.QueryRowContext(ctx, q, domain.NameKey(name)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Country{}, domain.ErrCountryNotFound
		}
		return domain.Country{}, fmt.Errorf("failed to select country %q: %w", name, err)
	}
	return c, nil
}

func (r *CountryRepository) ListAll(ctx context.Context) ([]domain.Country, error) {
	const q = `SELECT ` + countryColumns + ` FROM countries ORDER BY id;`

	rows, err := r.db.QueryContext(ctx, q)
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
	const q = `DELETE FROM countries WHERE name_key = ?;`

	res, err := r.db.ExecContext(ctx, q, domain.NameKey(name))
	if err != nil {
		return 0, fmt.Errorf("failed to delete country %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

func (r *CountryRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM countries;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count countries: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCountry(row rowScanner) (domain.Country, error) {
	var (
		c            domain.Country
		capital      sql.NullString
		region       sql.NullString
		currencyCode sql.NullString
		exchangeRate sql.NullFloat64
		flagURL      sql.NullString
		refreshedAt  string
	)
	err := row.Scan(
		&c.ID,
		&c.Name,
		&capital,
		&region,
		&c.Population,
		&currencyCode,
		&exchangeRate,
		&c.EstimatedGDP,
		&flagURL,
		&refreshedAt,
	)
	if err != nil {
		return domain.Country{}, err
	}

	c.Capital = nullString(capital)
	c.Region = nullString(region)
	c.CurrencyCode = nullString(currencyCode)
	c.FlagURL = nullString(flagURL)
	if exchangeRate.Valid {
		c.ExchangeRate = &exchangeRate.Float64
	}
	if c.LastRefreshedAt, err = parseTime(refreshedAt); err != nil {
		return domain.Country{}, err
	}
	return c, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func NewCountryRepository(sqlDB *sql.DB) *CountryRepository {
	return &CountryRepository{db: sqlDB}
}
