package ports

import (
	"context"

	hits "site-analytics-service/internal/hits/core/domain"
)

// HitFilter selects hits of one site with From <= ts <= To.
type HitFilter struct {
	SiteID string
	Type   hits.HitType // empty means every type
	From   int64
	To     int64

	Limit       int // 0 means no limit
	NewestFirst bool
}

type MetricsReaderPort interface {
	QueryHits(ctx context.Context, f HitFilter) ([]hits.Hit, error)
	// DistinctVisitors returns the distinct visitorId values, empty included.
	DistinctVisitors(ctx context.Context, f HitFilter) ([]string, error)
}
