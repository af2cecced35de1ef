// Package thumbnail picks a thumbnail image URL for an article search phrase.
//
// Resolution runs a cascade of image-search providers over a handful of query
// variants and falls back to a curated, hourly-rotated catalog when nothing
// usable is found, so a URL is always returned.
package thumbnail

import (
	"net/http"
	"time"
)

// Resolution sources.
const (
	SourcePrimary   = "primary"
	SourceSecondary = "secondary"
	SourceCatalog   = "catalog"
)

// Resolution describes where a thumbnail URL came from.
type Resolution struct {
	Query    string `json:"query"`              // base query as given by the caller
	URL      string `json:"url"`                // never empty
	Source   string `json:"source"`             // SourcePrimary, SourceSecondary or SourceCatalog
	Provider string `json:"provider,omitempty"` // provider name; empty for catalog hits
	Variant  string `json:"variant,omitempty"`  // query variant that produced the hit
	Score    int    `json:"score,omitempty"`    // relevance score for primary hits
	Category string `json:"category,omitempty"` // catalog key (or GenericCategory) for catalog hits
}

// Config holds all dependencies injected by the consumer.
// A zero Config is usable: both providers are disabled and every call is
// answered from DefaultCatalog.
type Config struct {
	HTTPClient *http.Client // optional: client for provider calls and downloads (nil = http.DefaultClient)
	UserAgent  string       // default: "Mozilla/5.0 (compatible; thumbnail/1.0)"

	// Primary is scored (see Score); Secondary takes the first validated hit.
	// nil means disabled.
	Primary   Provider
	Secondary Provider

	// Catalog is the read-only fallback catalog (nil = DefaultCatalog()).
	Catalog *Catalog

	// Now returns the wall clock used for catalog rotation (nil = time.Now).
	Now func() time.Time

	// MinImageWidth, when positive, makes ValidateImageURL decode image headers
	// and reject narrower images. Zero keeps validation to a HEAD request.
	MinImageWidth int

	// RejectStock downloads validated candidates and rejects those whose
	// embedded rights metadata names a stock agency.
	RejectStock bool

	// ExtraBlockedDomains are additional hosts the validator and scorer treat
	// as blocked, on top of BlockedHosts.
	ExtraBlockedDomains []string

	// Keywords optionally turns article text into a search phrase
	// (see SearchPhrase). nil = FallbackKeywords only.
	Keywords KeywordExtractor

	// Optional callbacks for metrics/logging.
	OnSearch  func(provider, variant string)
	OnPanic   func(tag string, r any)
	OnResolve func(Resolution)
}

// withDefaults returns a copy of c with unset fields filled in. c itself is
// never written, so one Config can serve concurrent calls.
func (c *Config) withDefaults() *Config {
	d := *c
	d.fill()
	return &d
}

func (c *Config) fill() {
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (compatible; thumbnail/1.0)"
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.Primary == nil {
		c.Primary = Disabled("primary")
	}
	if c.Secondary == nil {
		c.Secondary = Disabled("secondary")
	}
	if c.Catalog == nil {
		c.Catalog = DefaultCatalog()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}
