package thumbnail

import (
	"context"
	"image"
	"log/slog"
	"sync"

	"github.com/corona10/goimagehash"
)

// dedupThreshold is the maximum Hamming distance between two dHash values
// below which images are considered perceptually identical.
const dedupThreshold = 10

// dedupFilter remembers the perceptual hashes of accepted images.
// It is safe for concurrent use.
type dedupFilter struct {
	mu     sync.Mutex
	hashes []*goimagehash.ImageHash
}

// isDuplicate returns true if img is perceptually identical to a previously
// seen image; otherwise it records img. Hashing failures accept the image.
func (d *dedupFilter) isDuplicate(img image.Image) bool {
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, h := range d.hashes {
		dist, err := hash.Distance(h)
		if err == nil && dist < dedupThreshold {
			return true
		}
	}

	d.hashes = append(d.hashes, hash)
	return false
}

// Batch resolves thumbnails for a run of articles and avoids handing out
// visually identical search hits twice. Catalog fallbacks are exempt.
// A Batch is safe for concurrent use.
type Batch struct {
	cfg   *Config
	dedup *dedupFilter
}

// NewBatch starts a batch using a snapshot of cfg.
func (cfg *Config) NewBatch() *Batch {
	return &Batch{cfg: cfg.withDefaults(), dedup: &dedupFilter{}}
}

// ResolveThumbnail is Config.ResolveThumbnail with batch de-duplication.
func (b *Batch) ResolveThumbnail(ctx context.Context, query string) string {
	return b.Resolve(ctx, query).URL
}

// Resolve is Config.Resolve with batch de-duplication.
func (b *Batch) Resolve(ctx context.Context, query string) Resolution {
	return b.cfg.resolve(ctx, query, b.accept)
}

func (b *Batch) accept(ctx context.Context, url string) bool {
	cfg := b.cfg
	if !cfg.ValidateImageURL(ctx, url) {
		return false
	}
	data, img := cfg.downloadForValidation(ctx, url)
	if cfg.RejectStock && cfg.isStock(url, data) {
		return false
	}
	if img != nil && b.dedup.isDuplicate(img) {
		slog.Debug("thumbnail: duplicate of earlier batch image", "url", url)
		return false
	}
	return true
}
