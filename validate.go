package thumbnail

import (
	"context"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	_ "golang.org/x/image/webp"
)

const (
	validateTimeout = 5 * time.Second
	maxRedirects    = 5
	decodeLimit     = 256 * 1024
)

// ValidateImageURL reports whether rawURL can be used as a thumbnail:
//   - host not in BlockedHosts / ExtraBlockedDomains (checked before any request)
//   - reachable within 5s, following redirects, with a 2xx status
//   - Content-Type mentions "image"
//   - at least MinImageWidth pixels wide, when MinImageWidth is set
//
// Every failure, including network errors, yields false.
func (cfg *Config) ValidateImageURL(ctx context.Context, rawURL string) bool {
	cfg = cfg.withDefaults()

	if rawURL == "" || IsBlockedHost(rawURL, cfg.ExtraBlockedDomains...) {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	method := http.MethodHead
	if cfg.MinImageWidth > 0 {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := cfg.probeClient().Do(req) //nolint:gosec // URL comes from search providers; SSRF is the caller's concern
	if err != nil {
		slog.Debug("thumbnail: validation request failed", "url", rawURL, "error", err.Error())
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}
	if !strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "image") {
		return false
	}
	if resp.Request != nil && resp.Request.URL != nil && IsBlockedHost(resp.Request.URL.String(), cfg.ExtraBlockedDomains...) {
		slog.Debug("thumbnail: redirected to blocked host", "url", rawURL, "final", resp.Request.URL.String())
		return false
	}

	if cfg.MinImageWidth <= 0 {
		return true
	}
	imgCfg, _, err := image.DecodeConfig(io.LimitReader(resp.Body, decodeLimit))
	if err != nil {
		// Undecodable (e.g. SVG): the content-type check already passed.
		return true
	}
	if imgCfg.Width < cfg.MinImageWidth {
		slog.Debug("thumbnail: too narrow", "url", rawURL, "width", imgCfg.Width, "min", cfg.MinImageWidth)
		return false
	}
	return true
}

// probeClient shares the configured transport but enforces the validation
// timeout and redirect cap.
func (cfg *Config) probeClient() *http.Client {
	return &http.Client{
		Transport: cfg.HTTPClient.Transport,
		Timeout:   validateTimeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errors.New("too many redirects")
			}
			return nil
		},
	}
}
