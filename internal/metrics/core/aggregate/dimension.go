package aggregate

import (
	"net/url"
	"sort"
	"strings"

	hits "site-analytics-service/internal/hits/core/domain"
)

var dimensions = map[string]KeyFunc{
	"url":          func(h *hits.Hit) string { return h.URL },
	"title":        func(h *hits.Hit) string { return h.Title },
	"referrer":     func(h *hits.Hit) string { return h.Referrer },
	"referrerHost": func(h *hits.Hit) string { return ReferrerHost(h.Referrer) },
	"channel":      func(h *hits.Hit) string { return hits.Str(h.Channel) },
	"browser":      func(h *hits.Hit) string { return hits.Str(h.Browser) },
	"os":           func(h *hits.Hit) string { return hits.Str(h.OS) },
	"deviceType":   func(h *hits.Hit) string { return hits.Str(h.DeviceType) },
	"countryHint":  func(h *hits.Hit) string { return hits.Str(h.CountryHint) },
	"lang":         func(h *hits.Hit) string { return hits.Str(h.Lang) },
	"tz":           func(h *hits.Hit) string { return hits.Str(h.TZ) },
	"utm_source":   func(h *hits.Hit) string { return hits.Str(h.UTMSource) },
	"utm_medium":   func(h *hits.Hit) string { return hits.Str(h.UTMMedium) },
	"utm_campaign": func(h *hits.Hit) string { return hits.Str(h.UTMCampaign) },
}

// Dimension returns the key function registered under name.
func Dimension(name string) (KeyFunc, bool) {
	fn, ok := dimensions[name]
	return fn, ok
}

// Dimensions lists the known dimension names in lexical order.
func Dimensions() []string {
	names := make([]string, 0, len(dimensions))
	for n := range dimensions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ReferrerHost returns the lower-cased host of a referrer URL without a
// leading "www.", or "" when the referrer is not an absolute URL.
func ReferrerHost(ref string) string {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
