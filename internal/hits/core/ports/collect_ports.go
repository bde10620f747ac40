package ports

import "context"

// SiteCheckerPort reports whether a site exists and accepts hits.
type SiteCheckerPort interface {
	IsSiteActive(ctx context.Context, siteID string) (bool, error)
}

// RateLimiterPort guards ingestion per site and client address.
type RateLimiterPort interface {
	Allow(key string, nowMs int64) bool
}
