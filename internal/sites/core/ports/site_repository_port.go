package ports

import (
	"context"

	"site-analytics-service/internal/sites/core/domain"
)

type SiteRepositoryPort interface {
	InsertSite(ctx context.Context, s *domain.Site) error
	// ListSites returns at most limit sites, newest first.
	ListSites(ctx context.Context, limit int) ([]domain.Site, error)
	// FindSite returns nil, nil when no site has the id.
	FindSite(ctx context.Context, id string) (*domain.Site, error)
	UpdateSiteActive(ctx context.Context, id string, active bool) (found bool, err error)
	DeleteSite(ctx context.Context, id string) error
}

// HitPurgerPort removes every hit of a site.
type HitPurgerPort interface {
	DeleteSiteHits(ctx context.Context, siteID string) (int64, error)
}
