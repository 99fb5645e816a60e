package resume

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// LinkLabel derives a short human label for a link, e.g.
// "https://www.credly.com/badges/123" -> "credly.com". Unparseable input
// falls back to "link".
func LinkLabel(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Hostname() == "" {
		return "link"
	}
	host := strings.ToLower(u.Hostname())
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}
