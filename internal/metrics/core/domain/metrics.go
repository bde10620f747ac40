package domain

import hits "site-analytics-service/internal/hits/core/domain"

// KPIs summarise the pageviews of a range. Session based values ignore hits
// without a sessionId.
type KPIs struct {
	Visits          int     `json:"visits"`
	Visitors        int     `json:"visitors"`
	Pageviews       int     `json:"pageviews"`
	BounceRate      float64 `json:"bounceRate"`
	AvgSessionMs    float64 `json:"avgSessionMs"`
	PagesPerSession float64 `json:"pagesPerSession"`
}

type SeriesPoint struct {
	Day       string `json:"day"` // YYYY-MM-DD, UTC
	Pageviews int    `json:"pageviews"`
	Visitors  int    `json:"visitors"`
	Sessions  int    `json:"sessions"`
}

type TopItem struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

type Overview struct {
	SiteID         string        `json:"siteId"`
	StartTs        int64         `json:"startTs"`
	EndTs          int64         `json:"endTs"`
	KPIs           KPIs          `json:"kpis"`
	Series         []SeriesPoint `json:"series"`
	Realtime       []hits.Hit    `json:"realtime"`
	ActiveVisitors int           `json:"activeVisitors"`
	TopPages       []TopItem     `json:"topPages"`
}

type Breakdown struct {
	SiteID    string    `json:"siteId"`
	StartTs   int64     `json:"startTs"`
	EndTs     int64     `json:"endTs"`
	Dimension string    `json:"dimension"`
	Items     []TopItem `json:"items"`
}
