package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	hits "site-analytics-service/internal/hits/core/domain"
	"site-analytics-service/internal/metrics/core/ports"
)

// MetricsRepository reads the hits table written by the hits adapter. Ranges
// are served by the (site_id, ts) and (site_id, type, ts) indexes.
type MetricsRepository struct {
	db DB
}

func NewMetricsRepository(db DB) *MetricsRepository {
	return &MetricsRepository{db: db}
}

var _ ports.MetricsReaderPort = (*MetricsRepository)(nil)

func buildWhere(f ports.HitFilter) (string, []any) {
	where := "site_id = $1 AND ts BETWEEN $2 AND $3"
	args := []any{f.SiteID, f.From, f.To}

	if f.Type != "" {
		where += fmt.Sprintf(" AND type = $%d", len(args)+1)
		args = append(args, string(f.Type))
	}
	return where, args
}

func (r *MetricsRepository) QueryHits(ctx context.Context, f ports.HitFilter) ([]hits.Hit, error) {
	where, args := buildWhere(f)

	order := "ASC"
	if f.NewestFirst {
		order = "DESC"
	}

	query := `
SELECT doc
FROM hits
WHERE ` + where + `
ORDER BY ts ` + order

	if f.Limit > 0 {
		query += fmt.Sprintf("\nLIMIT $%d", len(args)+1)
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []hits.Hit{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var h hits.Hit
		if err := json.Unmarshal(doc, &h); err != nil {
			return nil, fmt.Errorf("decode hit document: %w", err)
		}
		out = append(out, h)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MetricsRepository) DistinctVisitors(ctx context.Context, f ports.HitFilter) ([]string, error) {
	where, args := buildWhere(f)

	query := `
SELECT DISTINCT visitor_id
FROM hits
WHERE ` + where

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
