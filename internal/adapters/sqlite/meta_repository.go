package sqlite

import (
	"context"
	"countries/internal/domain"
	"database/sql"
	"errors"
	"fmt"
)

const metaID = 1

type MetaRepository struct {
	db querier
}

func (r *MetaRepository) Get(ctx context.Context) (domain.Meta, error) {
	const q = `SELECT total_countries, last_refreshed_at, summary_svg FROM meta WHERE id = ?;`

	var (
		m           domain.Meta
		refreshedAt string
	)
	if err := r.db.QueryRowContext(ctx, q, metaID).Scan(&m.TotalCountries, &refreshedAt, &m.SummarySVG); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Meta{}, domain.ErrMetaNotFound
		}
		return domain.Meta{}, fmt.Errorf("failed to select meta: %w", err)
	}

	t, err := parseTime(refreshedAt)
	if err != nil {
		return domain.Meta{}, err
	}
	m.LastRefreshedAt = t
	return m, nil
}

func (r *MetaRepository) Upsert(ctx context.Context, m domain.Meta) error {
	const q = `
		INSERT INTO meta (id, total_countries, last_refreshed_at, summary_svg)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			total_countries = excluded.total_countries,
			last_refreshed_at = excluded.last_refreshed_at,
			summary_svg = excluded.summary_svg;
	`

	if _, err := r.db.ExecContext(ctx, q, metaID, m.TotalCountries, formatTime(m.LastRefreshedAt), m.SummarySVG); err != nil {
		return fmt.Errorf("failed to upsert meta: %w", err)
	}
	return nil
}

func NewMetaRepository(sqlDB *sql.DB) *MetaRepository {
	return &MetaRepository{db: sqlDB}
}
