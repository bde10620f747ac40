package domain

import "strings"

type HitType string

const (
	HitPageview HitType = "pageview"
	HitEvent    HitType = "event"
	HitOutbound HitType = "outbound"
)

func (t HitType) Valid() bool {
	switch t {
	case HitPageview, HitEvent, HitOutbound:
		return true
	}
	return false
}

// Field caps applied before a hit is stored, in characters.
const (
	MaxURLLength      = 2048
	MaxReferrerLength = 2048
	MaxTitleLength    = 512
)

// Hit is one recorded client interaction. The same document shape is stored
// in every backend and returned by the read API.
type Hit struct {
	ID     string  `json:"id" bson:"id"`
	SiteID string  `json:"siteId" bson:"siteId"`
	Type   HitType `json:"type" bson:"type"`
	Ts     int64   `json:"ts" bson:"ts"` // epoch ms, client clock

	URL      string `json:"url" bson:"url"`
	Title    string `json:"title" bson:"title"`
	Referrer string `json:"referrer" bson:"referrer"`

	VisitorID string `json:"visitorId" bson:"visitorId"`
	SessionID string `json:"sessionId" bson:"sessionId"`

	DurationMs *int64   `json:"durationMs" bson:"durationMs"`
	ScrollMax  *float64 `json:"scrollMax" bson:"scrollMax"`

	DeviceType  *string `json:"deviceType" bson:"deviceType"`
	Browser     *string `json:"browser" bson:"browser"`
	OS          *string `json:"os" bson:"os"`
	Lang        *string `json:"lang" bson:"lang"`
	TZ          *string `json:"tz" bson:"tz"`
	CountryHint *string `json:"countryHint" bson:"countryHint"`
	Channel     *string `json:"channel" bson:"channel"`

	UTMSource   *string `json:"utm_source" bson:"utm_source"`
	UTMMedium   *string `json:"utm_medium" bson:"utm_medium"`
	UTMCampaign *string `json:"utm_campaign" bson:"utm_campaign"`
	UTMTerm     *string `json:"utm_term" bson:"utm_term"`
	UTMContent  *string `json:"utm_content" bson:"utm_content"`

	EventName  *string        `json:"eventName" bson:"eventName"`
	EventProps map[string]any `json:"eventProps" bson:"eventProps"`

	IPHash string `json:"ipHash" bson:"ipHash"`
}

// Truncate enforces the field caps in place.
func (h *Hit) Truncate() {
	h.URL = truncate(h.URL, MaxURLLength)
	h.Referrer = truncate(h.Referrer, MaxReferrerLength)
	h.Title = truncate(h.Title, MaxTitleLength)
}

// StripNUL removes NUL characters from every client supplied string,
// including eventProps keys and nested values. Postgres rejects \u0000 in
// JSONB and TEXT columns.
func (h *Hit) StripNUL() {
	for _, s := range []*string{
		&h.ID, &h.SiteID, &h.URL, &h.Title, &h.Referrer, &h.VisitorID, &h.SessionID,
	} {
		*s = stripNUL(*s)
	}
	h.Type = HitType(stripNUL(string(h.Type)))

	for _, p := range []**string{
		&h.DeviceType, &h.Browser, &h.OS, &h.Lang, &h.TZ, &h.CountryHint, &h.Channel,
		&h.UTMSource, &h.UTMMedium, &h.UTMCampaign, &h.UTMTerm, &h.UTMContent, &h.EventName,
	} {
		if *p != nil {
			v := stripNUL(**p)
			*p = &v
		}
	}

	if h.EventProps != nil {
		h.EventProps = stripNULMap(h.EventProps)
	}
}

func stripNUL(s string) string {
	if strings.IndexByte(s, 0) < 0 {
		return s
	}
	return strings.ReplaceAll(s, "\x00", "")
}

func stripNULMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[stripNUL(k)] = stripNULValue(v)
	}
	return out
}

func stripNULValue(v any) any {
	switch t := v.(type) {
	case string:
		return stripNUL(t)
	case map[string]any:
		return stripNULMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = stripNULValue(e)
		}
		return out
	default:
		return v
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// Str returns the value of an optional string field, "" when unset.
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
