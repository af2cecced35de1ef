package thumbnail

import (
	"bytes"
	"context"
	"image"
	"io"
	"net/http"
	"strings"
	"time"
)

// DownloadOpts configures an image download.
type DownloadOpts struct {
	MaxBytes int64         // max response body size (default: 200KB)
	Timeout  time.Duration // per-request timeout (default: 10s)
}

const (
	defaultMaxBytes = 200 * 1024
	defaultTimeout  = 10 * time.Second
)

// DownloadResult holds downloaded image data.
type DownloadResult struct {
	Data     []byte
	MIMEType string
}

// Download fetches the image at url with cfg.HTTPClient.
// Returns nil (not an error) for recoverable failures such as non-2xx
// responses or non-image content types.
func (cfg *Config) Download(ctx context.Context, url string, opts DownloadOpts) *DownloadResult {
	cfg = cfg.withDefaults()

	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaultMaxBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := cfg.HTTPClient.Do(req) //nolint:gosec // URL comes from search providers; SSRF is the caller's concern
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil
	}

	ct := resp.Header.Get("Content-Type")
	// Strip MIME parameters: "image/jpeg; charset=utf-8" -> "image/jpeg"
	if idx := strings.IndexByte(ct, ';'); idx >= 0 {
		ct = strings.TrimSpace(ct[:idx])
	}
	if !strings.HasPrefix(ct, "image/") {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, opts.MaxBytes))
	if err != nil || len(data) == 0 {
		return nil
	}
	return &DownloadResult{Data: data, MIMEType: ct}
}

// downloadForValidation fetches the image and returns both raw bytes and the
// decoded image. Either may be nil; callers degrade gracefully.
func (cfg *Config) downloadForValidation(ctx context.Context, url string) ([]byte, image.Image) {
	result := cfg.Download(ctx, url, DownloadOpts{})
	if result == nil {
		return nil, nil
	}
	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		return result.Data, nil
	}
	return result.Data, img
}
