package thumbnail

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	unsplashEndpoint = "https://api.unsplash.com/search/photos"
	unsplashTimeout  = 10 * time.Second

	// unsplashDefaultQuery replaces queries that are empty after cleaning.
	unsplashDefaultQuery = "technology security"
)

// Unsplash indexes photos, not logos or icons.
var unsplashNoiseRe = regexp.MustCompile(`\b(icon|logo)\b`)

// UnsplashProvider searches the Unsplash photo API.
type UnsplashProvider struct {
	AccessKey  string
	Endpoint   string       // default: Unsplash search/photos endpoint
	HTTPClient *http.Client // nil = http.DefaultClient
}

// NewUnsplashProvider returns an Unsplash provider, or a disabled provider
// when accessKey is empty.
func NewUnsplashProvider(accessKey string, client *http.Client) Provider {
	if accessKey == "" {
		return Disabled("unsplash")
	}
	return &UnsplashProvider{AccessKey: accessKey, HTTPClient: client}
}

func (p *UnsplashProvider) Name() string { return "unsplash" }

func (p *UnsplashProvider) Enabled() bool { return p.AccessKey != "" }

type unsplashResponse struct {
	Results []struct {
		Description    string `json:"description"`
		AltDescription string `json:"alt_description"`
		URLs           struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// Search returns the first page of landscape photos for query, using the
// regular-size rendition URL.
func (p *UnsplashProvider) Search(ctx context.Context, query string) ([]ImageCandidate, error) {
	endpoint := p.Endpoint
	if endpoint == "" {
		endpoint = unsplashEndpoint
	}
	params := url.Values{
		"query":          {cleanUnsplashQuery(query)},
		"page":           {"1"},
		"per_page":       {"5"},
		"orientation":    {"landscape"},
		"content_filter": {"high"},
	}
	header := http.Header{"Authorization": {"Client-ID " + p.AccessKey}}

	var body unsplashResponse
	if err := getJSON(ctx, p.HTTPClient, unsplashTimeout, endpoint+"?"+params.Encode(), header, &body); err != nil {
		return nil, fmt.Errorf("unsplash search %q: %w", query, err)
	}

	out := make([]ImageCandidate, 0, len(body.Results))
	for _, r := range body.Results {
		if r.URLs.Regular == "" {
			continue
		}
		out = append(out, ImageCandidate{URL: r.URLs.Regular, Title: r.AltDescription, Snippet: r.Description})
	}
	return out, nil
}

func cleanUnsplashQuery(query string) string {
	q := strings.Join(strings.Fields(unsplashNoiseRe.ReplaceAllString(query, "")), " ")
	if q == "" {
		return unsplashDefaultQuery
	}
	return q
}
