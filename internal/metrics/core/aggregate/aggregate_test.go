package aggregate

import (
	"testing"
	"time"

	hits "site-analytics-service/internal/hits/core/domain"
	"site-analytics-service/internal/metrics/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pv(ts int64, visitor, session, url string) hits.Hit {
	return hits.Hit{Type: hits.HitPageview, Ts: ts, VisitorID: visitor, SessionID: session, URL: url}
}

func withDuration(h hits.Hit, ms int64) hits.Hit {
	h.DurationMs = &ms
	return h
}

func strPtr(s string) *string { return &s }

func dayMs(y int, m time.Month, d, hour int) int64 {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC).UnixMilli()
}

// ---- DailySeries ----

func TestDailySeries_TwoDaysAscending(t *testing.T) {
	in := []hits.Hit{
		pv(dayMs(2024, 3, 2, 9), "v1", "s2", "/"),
		pv(dayMs(2024, 3, 1, 23), "v1", "s1", "/"),
		pv(dayMs(2024, 3, 1, 1), "v2", "s3", "/"),
		pv(dayMs(2024, 3, 2, 10), "v1", "s2", "/a"),
	}

	series := DailySeries(in)

	require.Len(t, series, 2)
	assert.Equal(t, domain.SeriesPoint{Day: "2024-03-01", Pageviews: 2, Visitors: 2, Sessions: 2}, series[0])
	assert.Equal(t, domain.SeriesPoint{Day: "2024-03-02", Pageviews: 2, Visitors: 1, Sessions: 1}, series[1])
}

func TestDailySeries_SparseAndEmpty(t *testing.T) {
	assert.Empty(t, DailySeries(nil))

	in := []hits.Hit{
		pv(dayMs(2024, 1, 1, 0), "v1", "s1", "/"),
		pv(dayMs(2024, 1, 5, 0), "v1", "s1", "/"),
	}
	series := DailySeries(in)
	require.Len(t, series, 2)
	assert.Equal(t, "2024-01-01", series[0].Day)
	assert.Equal(t, "2024-01-05", series[1].Day)
}

func TestDailySeries_EmptyIDsCountOnce(t *testing.T) {
	in := []hits.Hit{
		pv(dayMs(2024, 1, 1, 0), "", "", "/"),
		pv(dayMs(2024, 1, 1, 1), "", "", "/"),
		pv(dayMs(2024, 1, 1, 2), "v1", "s1", "/"),
	}
	series := DailySeries(in)
	require.Len(t, series, 1)
	assert.Equal(t, 2, series[0].Visitors)
	assert.Equal(t, 2, series[0].Sessions)
}

// ---- KPIs ----

func TestComputeKPIs_BounceRate(t *testing.T) {
	in := []hits.Hit{
		pv(1000, "v1", "s1", "/"),
		pv(2000, "v2", "s2", "/"),
		pv(3000, "v2", "s2", "/a"),
	}

	k := ComputeKPIs(in)

	assert.Equal(t, 50.0, k.BounceRate)
	assert.Equal(t, 3, k.Visits)
	assert.Equal(t, 3, k.Pageviews)
	assert.Equal(t, 2, k.Visitors)
	assert.InDelta(t, 1.5, k.PagesPerSession, 1e-9)
}

func TestComputeKPIs_SessionDurations(t *testing.T) {
	in := []hits.Hit{
		pv(5000, "v1", "s1", "/b"),
		pv(1000, "v1", "s1", "/a"),
		pv(100, "v2", "s2", "/"),
		withDuration(pv(200, "v2", "s2", "/x"), 9999),
		pv(90_000, "v2", "s2", "/y"),
	}

	k := ComputeKPIs(in)

	// s1 spans 4000ms, s2 uses its explicit 9999ms.
	assert.InDelta(t, (4000.0+9999.0)/2, k.AvgSessionMs, 1e-9)
}

func TestComputeKPIs_FirstExplicitDurationWins(t *testing.T) {
	in := []hits.Hit{
		withDuration(pv(3000, "v", "s", "/"), 7000),
		withDuration(pv(1000, "v", "s", "/"), 1234),
		withDuration(pv(500, "v", "s", "/"), 0),
	}

	assert.InDelta(t, 1234.0, ComputeKPIs(in).AvgSessionMs, 1e-9)
}

func TestComputeKPIs_SingleHitSessionHasZeroDuration(t *testing.T) {
	k := ComputeKPIs([]hits.Hit{pv(1000, "v", "s", "/")})

	assert.Equal(t, 0.0, k.AvgSessionMs)
	assert.Equal(t, 100.0, k.BounceRate)
}

func TestComputeKPIs_NoSessions(t *testing.T) {
	in := []hits.Hit{
		pv(1000, "v1", "", "/"),
		pv(2000, "", "", "/"),
	}

	k := ComputeKPIs(in)

	assert.Equal(t, 2, k.Visits)
	assert.Equal(t, 1, k.Visitors)
	assert.Equal(t, 0.0, k.BounceRate)
	assert.Equal(t, 0.0, k.AvgSessionMs)
	assert.Equal(t, 2.0, k.PagesPerSession)
}

func TestComputeKPIs_Empty(t *testing.T) {
	assert.Equal(t, domain.KPIs{}, ComputeKPIs(nil))
}

// ---- TopBy ----

func TestTopBy_Pages(t *testing.T) {
	var in []hits.Hit
	for i := 0; i < 3; i++ {
		in = append(in, pv(int64(i), "v", "s", "/a"))
	}
	for i := 0; i < 5; i++ {
		in = append(in, pv(int64(i), "v", "s", "/b"))
	}

	top := TopBy(in, func(h *hits.Hit) string { return h.URL }, 0)

	assert.Equal(t, []domain.TopItem{{Key: "/b", Value: 5}, {Key: "/a", Value: 3}}, top)
}

func TestTopBy_DropsBlankAndTrims(t *testing.T) {
	in := []hits.Hit{
		pv(1, "v", "s", "  "),
		pv(2, "v", "s", ""),
		pv(3, "v", "s", " /x "),
		pv(4, "v", "s", "/x"),
	}

	top := TopBy(in, func(h *hits.Hit) string { return h.URL }, 8)

	assert.Equal(t, []domain.TopItem{{Key: "/x", Value: 2}}, top)
}

func TestTopBy_TiesKeepFirstSeenAndLimit(t *testing.T) {
	in := []hits.Hit{
		pv(1, "v", "s", "/c"),
		pv(2, "v", "s", "/a"),
		pv(3, "v", "s", "/b"),
		pv(4, "v", "s", "/z"),
		pv(5, "v", "s", "/z"),
	}

	top := TopBy(in, func(h *hits.Hit) string { return h.URL }, 3)

	assert.Equal(t, []domain.TopItem{{Key: "/z", Value: 2}, {Key: "/c", Value: 1}, {Key: "/a", Value: 1}}, top)
}

func TestTopBy_DefaultLimit(t *testing.T) {
	var in []hits.Hit
	for i := 0; i < 20; i++ {
		in = append(in, pv(int64(i), "v", "s", string(rune('a'+i))))
	}

	assert.Len(t, TopBy(in, func(h *hits.Hit) string { return h.URL }, 0), DefaultTopN)
}

// ---- Dimensions ----

func TestDimension(t *testing.T) {
	h := hits.Hit{
		Referrer: "https://www.Google.com/search?q=x",
		Browser:  strPtr("Firefox"),
	}

	fn, ok := Dimension("referrerHost")
	require.True(t, ok)
	assert.Equal(t, "google.com", fn(&h))

	fn, ok = Dimension("browser")
	require.True(t, ok)
	assert.Equal(t, "Firefox", fn(&h))

	fn, ok = Dimension("os")
	require.True(t, ok)
	assert.Equal(t, "", fn(&h))

	_, ok = Dimension("ipHash")
	assert.False(t, ok)
}

func TestDimensions_Sorted(t *testing.T) {
	names := Dimensions()
	assert.Contains(t, names, "url")
	assert.IsIncreasing(t, names)
}

func TestReferrerHost(t *testing.T) {
	assert.Equal(t, "news.ycombinator.com", ReferrerHost("https://news.ycombinator.com/item?id=1"))
	assert.Equal(t, "example.com", ReferrerHost(" http://WWW.example.com:8080/a "))
	assert.Equal(t, "", ReferrerHost(""))
	assert.Equal(t, "", ReferrerHost("not a url"))
	assert.Equal(t, "", ReferrerHost("/relative/path"))
}
