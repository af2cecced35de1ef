package thumbnail

import (
	"context"
	"log/slog"
)

// ResolveThumbnail returns a thumbnail URL for query. It never fails and never
// returns an empty string.
func (cfg *Config) ResolveThumbnail(ctx context.Context, query string) string {
	return cfg.Resolve(ctx, query).URL
}

// Resolve is like ResolveThumbnail but reports where the URL came from.
//
// Pipeline:
//  1. Variants: up to four phrasings of query
//  2. cascade: primary (scored) then secondary provider, per variant
//  3. Catalog.Fallback: keyed on the original query, rotated hourly
func (cfg *Config) Resolve(ctx context.Context, query string) Resolution {
	return cfg.resolve(ctx, query, cfg.accept)
}

func (cfg *Config) resolve(ctx context.Context, query string, accept acceptFunc) Resolution {
	cfg = cfg.withDefaults()

	res, ok := cfg.runCascade(ctx, Variants(query), accept)
	if ok {
		slog.Info("thumbnail: resolved", "query", query, "source", res.Source, "provider", res.Provider, "variant", res.Variant, "url", res.URL)
	} else {
		res = cfg.fallback(query)
	}
	res.Query = query

	if cfg.OnResolve != nil {
		cfg.OnResolve(res)
	}
	return res
}

// Fallback returns the catalog selection for query without searching.
func (cfg *Config) Fallback(query string) Resolution {
	cfg = cfg.withDefaults()
	res := cfg.fallback(query)
	res.Query = query
	return res
}

func (cfg *Config) fallback(query string) Resolution {
	url, category := cfg.Catalog.Fallback(query, cfg.Now())
	slog.Info("thumbnail: using catalog image", "query", query, "category", category, "url", url)
	return Resolution{URL: url, Source: SourceCatalog, Category: category}
}

// accept is the default candidate gate: URL validation plus the optional
// stock-metadata check.
func (cfg *Config) accept(ctx context.Context, url string) bool {
	if !cfg.ValidateImageURL(ctx, url) {
		return false
	}
	if !cfg.RejectStock {
		return true
	}
	data, _ := cfg.downloadForValidation(ctx, url)
	return !cfg.isStock(url, data)
}
