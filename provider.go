package thumbnail

import (
	"context"
	"net/http"
	"os"
	"strings"
)

// ImageCandidate is one image returned by a search provider.
type ImageCandidate struct {
	URL     string // direct image URL
	Title   string // image/page title
	Snippet string // provider-supplied description
}

// Provider is an image search backend.
type Provider interface {
	Name() string
	// Search returns candidates in provider rank order.
	Search(ctx context.Context, query string) ([]ImageCandidate, error)
	// Enabled reports whether the provider is configured. Disabled providers
	// are skipped by the cascade without being called.
	Enabled() bool
}

type disabledProvider string

// Disabled returns a Provider that is never called and never returns results.
// It stands in for a provider whose credentials are missing.
func Disabled(name string) Provider { return disabledProvider(name) }

func (d disabledProvider) Name() string  { return string(d) }
func (d disabledProvider) Enabled() bool { return false }

func (d disabledProvider) Search(context.Context, string) ([]ImageCandidate, error) {
	return nil, nil
}

// Credential environment variables read by ProvidersFromEnv.
const (
	EnvGoogleAPIKey      = "GOOGLE_API_KEY"
	EnvGoogleEngineID    = "GOOGLE_SEARCH_ENGINE_ID"
	EnvUnsplashAccessKey = "UNSPLASH_ACCESS_KEY"
)

// ProvidersFromEnv builds the primary (Google) and secondary (Unsplash)
// providers from process environment. Missing credentials yield a disabled
// provider.
func ProvidersFromEnv(client *http.Client) (primary, secondary Provider) {
	primary = NewGoogleProvider(readEnv(EnvGoogleAPIKey), readEnv(EnvGoogleEngineID), client)
	secondary = NewUnsplashProvider(readEnv(EnvUnsplashAccessKey), client)
	return primary, secondary
}

func readEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
