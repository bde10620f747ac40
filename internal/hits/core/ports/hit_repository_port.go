package ports

import (
	"context"

	"site-analytics-service/internal/hits/core/domain"
)

type HitQuery struct {
	SiteID string
	From   int64 // epoch ms, inclusive
	To     int64 // epoch ms, inclusive
	Limit  int
}

type HitRepositoryPort interface {
	// UpsertHit inserts h or replaces the whole stored document with the same id.
	UpsertHit(ctx context.Context, h *domain.Hit) error

	// ListHits returns hits of every type in [From, To], ascending by ts.
	ListHits(ctx context.Context, q HitQuery) ([]domain.Hit, error)

	// DeleteSiteHits removes every hit of a site and returns how many were deleted.
	DeleteSiteHits(ctx context.Context, siteID string) (int64, error)
}
