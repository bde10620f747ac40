package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"site-analytics-service/internal/hits/core/domain"
	"site-analytics-service/internal/hits/core/ports"
)

type HitRepository struct {
	db DB
}

func NewHitRepository(db DB) *HitRepository {
	return &HitRepository{db: db}
}

var _ ports.HitRepositoryPort = (*HitRepository)(nil)

// The whole document lives in doc; the other columns exist for indexing.
const upsertHitSQL = `
INSERT INTO hits (
    id,
    site_id,
    type,
    ts,
    visitor_id,
    doc
) VALUES (
    $1, $2, $3, $4, $5, $6
)
ON CONFLICT (id) DO UPDATE SET
    site_id    = EXCLUDED.site_id,
    type       = EXCLUDED.type,
    ts         = EXCLUDED.ts,
    visitor_id = EXCLUDED.visitor_id,
    doc        = EXCLUDED.doc;
`

const listHitsSQL = `
SELECT doc
FROM hits
WHERE site_id = $1 AND ts BETWEEN $2 AND $3
ORDER BY ts ASC
LIMIT $4;
`

const deleteSiteHitsSQL = `DELETE FROM hits WHERE site_id = $1;`

func (r *HitRepository) UpsertHit(ctx context.Context, h *domain.Hit) error {
	doc, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encode hit: %w", err)
	}

	// jsonb is passed as text; lib/pq would send []byte as bytea
	_, err = r.db.ExecContext(ctx, upsertHitSQL,
		h.ID,
		h.SiteID,
		string(h.Type),
		h.Ts,
		h.VisitorID,
		string(doc),
	)
	return err
}

func (r *HitRepository) ListHits(ctx context.Context, q ports.HitQuery) ([]domain.Hit, error) {
	rows, err := r.db.QueryContext(ctx, listHitsSQL, q.SiteID, q.From, q.To, q.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hits := make([]domain.Hit, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}

		var h domain.Hit
		if err := json.Unmarshal(doc, &h); err != nil {
			return nil, fmt.Errorf("decode hit: %w", err)
		}
		hits = append(hits, h)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return hits, nil
}

func (r *HitRepository) DeleteSiteHits(ctx context.Context, siteID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteSiteHitsSQL, siteID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
