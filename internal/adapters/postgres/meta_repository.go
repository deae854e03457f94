package postgres

import (
	"context"
	"countries/internal/domain"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// metaID is the only row the meta table may hold.
const metaID = 1

type MetaRepository struct {
	db querier
}

func (r *MetaRepository) Get(ctx context.Context) (domain.Meta, error) {
	const q = `select total_countries, last_refreshed_at, summary_svg from meta where id = $1;`

	var m domain.Meta
	if err := r.db.QueryRow(ctx, q, metaID).Scan(&m.TotalCountries, &m.LastRefreshedAt, &m.SummarySVG); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Meta{}, domain.ErrMetaNotFound
		}
		return domain.Meta{}, fmt.Errorf("failed to select meta: %w", err)
	}
	return m, nil
}

func (r *MetaRepository) Upsert(ctx context.Context, m domain.Meta) error {
	const q = `
		insert into meta (id, total_countries, last_refreshed_at, summary_svg)
		values ($1, $2, $3, $4)
		on conflict (id) do update set
			total_countries = excluded.total_countries,
			last_refreshed_at = excluded.last_refreshed_at,
			summary_svg = excluded.summary_svg;
	`

	if _, err := r.db.Exec(ctx, q, metaID, m.TotalCountries, m.LastRefreshedAt, m.SummarySVG); err != nil {
		return fmt.Errorf("failed to upsert meta: %w", err)
	}
	return nil
}

func NewMetaRepository(pool *pgxpool.Pool) *MetaRepository {
	return &MetaRepository{db: pool}
}
