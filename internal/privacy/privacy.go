// Package privacy derives the pseudonymous client fingerprint stored with each
// hit. Raw IP addresses never leave this package.
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// IPHash returns the hex SHA-256 of "{siteID}:{ip}", scoping the digest to a
// single site. An empty ip yields an empty hash.
func IPHash(ip, siteID string) string {
	if ip == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(siteID + ":" + ip))
	return hex.EncodeToString(sum[:])
}

// ClientIP resolves the caller address. The first X-Forwarded-For hop is
// trusted as set by the ingress; otherwise the direct peer is used.
func ClientIP(forwardedFor, peer string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return strings.TrimSpace(peer)
}
