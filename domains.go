package thumbnail

import (
	"net/url"
	"strings"
)

// TrustedHosts are free / CC image hosts whose results earn a relevance bonus.
var TrustedHosts = []string{
	"wikimedia.org",
	"wikipedia.org",
	"unsplash.com",
	"pexels.com",
	"flickr.com",
}

// BlockedHosts are social and user-generated-content sites. Their images are
// penalised by Score and rejected by ValidateImageURL: they hotlink badly and
// are rarely licensed for reuse.
var BlockedHosts = []string{
	"facebook.com",
	"instagram.com",
	"twitter.com",
	"linkedin.com",
	"tiktok.com",
	"pinterest.com",
	"reddit.com",
	"snapchat.com",
	"tumblr.com",
}

// hostIn reports whether host equals, or is a subdomain of, any entry in lists.
func hostIn(host string, lists ...[]string) bool {
	if host == "" {
		return false
	}
	for _, list := range lists {
		for _, d := range list {
			d = strings.ToLower(strings.TrimPrefix(d, "."))
			if d == "" {
				continue
			}
			if host == d || strings.HasSuffix(host, "."+d) {
				return true
			}
		}
	}
	return false
}

// IsBlockedHost reports whether rawURL is hosted on BlockedHosts or extra.
func IsBlockedHost(rawURL string, extra ...string) bool {
	return hostIn(extractHost(rawURL), BlockedHosts, extra)
}

// IsTrustedHost reports whether rawURL is hosted on TrustedHosts.
func IsTrustedHost(rawURL string) bool {
	return hostIn(extractHost(rawURL), TrustedHosts)
}

func extractHost(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(strings.ToLower(parsed.Hostname()), ".")
}
