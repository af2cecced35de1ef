package thumbnail

import (
	"context"
	"log/slog"
	"sort"
)

// acceptFunc is the final gate a candidate URL must pass before it is returned.
type acceptFunc func(ctx context.Context, url string) bool

// stage is one named tier of the cascade. pick chooses a usable candidate
// from a single provider response.
type stage struct {
	source   string
	provider Provider
	pick     func(ctx context.Context, variant string, cands []ImageCandidate, accept acceptFunc) (ImageCandidate, int, bool)
}

// stages returns the enabled tiers in priority order.
func (cfg *Config) stages() []stage {
	all := []stage{
		{source: SourcePrimary, provider: cfg.Primary, pick: cfg.pickBestScored},
		{source: SourceSecondary, provider: cfg.Secondary, pick: pickFirstValid},
	}
	out := all[:0]
	for _, s := range all {
		if s.provider.Enabled() {
			out = append(out, s)
		} else {
			slog.Debug("thumbnail: provider disabled", "stage", s.source, "provider", s.provider.Name())
		}
	}
	return out
}

// runCascade tries every stage for each variant in order and returns the
// first hit. ok=false is the normal "nothing found" outcome.
func (cfg *Config) runCascade(ctx context.Context, variants []string, accept acceptFunc) (Resolution, bool) {
	stages := cfg.stages()
	if len(stages) == 0 {
		return Resolution{}, false
	}
	for i, v := range variants {
		if v == "" {
			continue
		}
		slog.Debug("thumbnail: trying variant", "n", i+1, "variant", v)
		for _, s := range stages {
			if res, ok := cfg.runStage(ctx, s, v, accept); ok {
				return res, true
			}
		}
	}
	return Resolution{}, false
}

// runStage calls one provider for one variant. Provider errors and panics are
// logged and treated as an empty response.
func (cfg *Config) runStage(ctx context.Context, s stage, variant string, accept acceptFunc) (res Resolution, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if cfg.OnPanic != nil {
				cfg.OnPanic("stage:"+s.source, r)
			}
			slog.Error("thumbnail: stage panicked", "stage", s.source, "variant", variant, "panic", r)
			res, ok = Resolution{}, false
		}
	}()

	if cfg.OnSearch != nil {
		cfg.OnSearch(s.provider.Name(), variant)
	}
	cands, err := s.provider.Search(ctx, variant)
	if err != nil {
		slog.Warn("thumbnail: provider search failed", "provider", s.provider.Name(), "variant", variant, "error", err.Error())
		return Resolution{}, false
	}
	if len(cands) == 0 {
		return Resolution{}, false
	}

	cand, score, ok := s.pick(ctx, variant, cands, accept)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{
		URL:      cand.URL,
		Source:   s.source,
		Provider: s.provider.Name(),
		Variant:  variant,
		Score:    score,
	}, true
}

// pickBestScored returns the highest-scoring accepted candidate. Candidates
// scoring 0 are dropped; ties keep provider order. Candidates are validated in
// score order so the first accepted one is the winner.
func (cfg *Config) pickBestScored(ctx context.Context, variant string, cands []ImageCandidate, accept acceptFunc) (ImageCandidate, int, bool) {
	type scored struct {
		cand  ImageCandidate
		score int
	}
	ranked := make([]scored, 0, len(cands))
	for _, c := range cands {
		s := scoreWith(variant, c, cfg.ExtraBlockedDomains)
		if s <= 0 {
			continue
		}
		ranked = append(ranked, scored{c, s})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	for _, r := range ranked {
		if accept(ctx, r.cand.URL) {
			return r.cand, r.score, true
		}
		slog.Debug("thumbnail: candidate rejected", "url", r.cand.URL, "score", r.score)
	}
	return ImageCandidate{}, 0, false
}

// pickFirstValid returns the first accepted candidate in provider order.
func pickFirstValid(ctx context.Context, _ string, cands []ImageCandidate, accept acceptFunc) (ImageCandidate, int, bool) {
	for _, c := range cands {
		if accept(ctx, c.URL) {
			return c, 0, true
		}
	}
	return ImageCandidate{}, 0, false
}
