// Package aggregate turns a set of pageview hits into report values. Every
// function is pure: the same input always yields the same output.
package aggregate

import (
	"sort"
	"strings"
	"time"

	hits "site-analytics-service/internal/hits/core/domain"
	"site-analytics-service/internal/metrics/core/domain"
)

const DefaultTopN = 8

const dayLayout = "2006-01-02"

// DailySeries groups hits by UTC calendar day. Days without hits are not
// emitted. Empty visitor and session ids count as one distinct value each.
func DailySeries(in []hits.Hit) []domain.SeriesPoint {
	type bucket struct {
		pageviews int
		visitors  map[string]struct{}
		sessions  map[string]struct{}
	}

	byDay := make(map[string]*bucket)
	for i := range in {
		day := time.UnixMilli(in[i].Ts).UTC().Format(dayLayout)
		b, ok := byDay[day]
		if !ok {
			b = &bucket{visitors: map[string]struct{}{}, sessions: map[string]struct{}{}}
			byDay[day] = b
		}
		b.pageviews++
		b.visitors[in[i].VisitorID] = struct{}{}
		b.sessions[in[i].SessionID] = struct{}{}
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)

	out := make([]domain.SeriesPoint, 0, len(days))
	for _, d := range days {
		b := byDay[d]
		out = append(out, domain.SeriesPoint{
			Day:       d,
			Pageviews: b.pageviews,
			Visitors:  len(b.visitors),
			Sessions:  len(b.sessions),
		})
	}
	return out
}

// ComputeKPIs derives the headline numbers of a range.
func ComputeKPIs(in []hits.Hit) domain.KPIs {
	visitors := make(map[string]struct{})
	sessions := make(map[string][]hits.Hit)
	for _, h := range in {
		if h.VisitorID != "" {
			visitors[h.VisitorID] = struct{}{}
		}
		if h.SessionID != "" {
			sessions[h.SessionID] = append(sessions[h.SessionID], h)
		}
	}

	k := domain.KPIs{
		Visits:    len(in),
		Pageviews: len(in),
		Visitors:  len(visitors),
	}
	k.PagesPerSession = float64(len(in)) / float64(max(1, len(sessions)))

	if len(sessions) == 0 {
		return k
	}

	var bounced int
	var total int64
	for _, items := range sessions {
		if len(items) == 1 {
			bounced++
		}
		total += sessionDuration(items)
	}

	k.BounceRate = float64(bounced) / float64(len(sessions)) * 100
	k.AvgSessionMs = float64(total) / float64(len(sessions))
	return k
}

// sessionDuration prefers the first explicit positive durationMs in ts order
// and falls back to the span between the first and last hit.
func sessionDuration(items []hits.Hit) int64 {
	sorted := make([]hits.Hit, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Ts < sorted[j].Ts })

	for _, h := range sorted {
		if h.DurationMs != nil && *h.DurationMs > 0 {
			return *h.DurationMs
		}
	}
	return max(0, sorted[len(sorted)-1].Ts-sorted[0].Ts)
}

// KeyFunc extracts the ranking key of a hit.
type KeyFunc func(h *hits.Hit) string

// TopBy counts hits per key and returns the k largest counts. Blank keys are
// dropped and ties keep first-seen order. k <= 0 means DefaultTopN.
func TopBy(in []hits.Hit, key KeyFunc, k int) []domain.TopItem {
	if k <= 0 {
		k = DefaultTopN
	}

	index := make(map[string]int)
	items := make([]domain.TopItem, 0)
	for i := range in {
		v := strings.TrimSpace(key(&in[i]))
		if v == "" {
			continue
		}
		if pos, ok := index[v]; ok {
			items[pos].Value++
			continue
		}
		index[v] = len(items)
		items = append(items, domain.TopItem{Key: v, Value: 1})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Value > items[j].Value })
	if len(items) > k {
		items = items[:k]
	}
	return items
}
