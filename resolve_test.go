package thumbnail

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"sync"
	"testing"
	"time"
)

// stubProvider returns canned candidates per query and records calls.
type stubProvider struct {
	name     string
	disabled bool
	results  map[string][]ImageCandidate
	err      error
	panicMsg string

	mu    sync.Mutex
	calls []string
}

func (s *stubProvider) Name() string  { return s.name }
func (s *stubProvider) Enabled() bool { return !s.disabled }

func (s *stubProvider) Search(_ context.Context, q string) ([]ImageCandidate, error) {
	s.mu.Lock()
	s.calls = append(s.calls, q)
	s.mu.Unlock()
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.results[q], nil
}

func (s *stubProvider) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// newImageHost serves image/jpeg for every path except /missing*.
func newImageHost(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.URL.Path) >= 8 && r.URL.Path[:8] == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func frozenClock() time.Time { return frozen }

func TestResolveBothProvidersDisabled(t *testing.T) {
	t.Parallel()

	queries := []string{"tesla vulnerability", "banking trojan", "zero day", "cybersecurity shield icon"}
	for _, q := range queries {
		cfg := &Config{Now: frozenClock}
		res := cfg.Resolve(context.Background(), q)
		if res.Source != SourceCatalog {
			t.Errorf("Resolve(%q).Source = %q, want catalog", q, res.Source)
		}
		if !DefaultCatalog().Contains(res.URL) {
			t.Errorf("Resolve(%q) = %q, not a catalog member", q, res.URL)
		}
		if u, err := url.Parse(res.URL); err != nil || u.Scheme != "https" || u.Host == "" {
			t.Errorf("Resolve(%q) = %q, not an absolute URL", q, res.URL)
		}
	}
}

func TestResolveJaguarLandRoverUsesBrandEntry(t *testing.T) {
	t.Parallel()

	cfg := &Config{Now: frozenClock}
	res := cfg.Resolve(context.Background(), "jaguar land rover hack")
	if res.Category != "jaguar" && res.Category != "land rover" {
		t.Fatalf("Category = %q, want jaguar or land rover", res.Category)
	}
	pool, _ := DefaultCatalog().Pool(res.Category)
	if !slices.Contains(pool, res.URL) {
		t.Errorf("URL %q not in %q pool", res.URL, res.Category)
	}
}

func TestResolveEmptyQueryUsesGenericPool(t *testing.T) {
	t.Parallel()

	primary := &stubProvider{name: "p"}
	cfg := &Config{Now: frozenClock, Primary: primary}
	res := cfg.Resolve(context.Background(), "")
	if res.Category != GenericCategory {
		t.Errorf("Category = %q, want %q", res.Category, GenericCategory)
	}
	generic, _ := DefaultCatalog().Pool(GenericCategory)
	if !slices.Contains(generic, res.URL) {
		t.Errorf("URL %q not in generic pool", res.URL)
	}
	if len(primary.Calls()) != 0 {
		t.Errorf("empty query searched providers: %q", primary.Calls())
	}
}

func TestResolvePrimaryPicksHighestScore(t *testing.T) {
	t.Parallel()

	host := newImageHost(t)
	q := "tesla vulnerability"
	primary := &stubProvider{name: "google", results: map[string][]ImageCandidate{
		q: {
			{URL: host.URL + "/a.gif", Title: "tesla"},
			{URL: host.URL + "/b.gif", Title: "tesla vulnerability"},
			{URL: host.URL + "/c.gif", Title: "unrelated"},
		},
	}}
	secondary := &stubProvider{name: "unsplash"}

	cfg := &Config{Primary: primary, Secondary: secondary}
	res := cfg.Resolve(context.Background(), q)

	if res.URL != host.URL+"/b.gif" {
		t.Errorf("URL = %q, want the higher scoring b.gif", res.URL)
	}
	if res.Source != SourcePrimary || res.Provider != "google" || res.Variant != q {
		t.Errorf("Resolution = %+v, want primary/google/%q", res, q)
	}
	if res.Score != Score(q, ImageCandidate{URL: host.URL + "/b.gif", Title: "tesla vulnerability"}) {
		t.Errorf("Score = %d, want Score() of the winner", res.Score)
	}
	if len(secondary.Calls()) != 0 {
		t.Errorf("secondary called after primary hit: %q", secondary.Calls())
	}
}

func TestResolvePrimaryTieKeepsProviderOrder(t *testing.T) {
	t.Parallel()

	host := newImageHost(t)
	q := "tesla"
	primary := &stubProvider{name: "google", results: map[string][]ImageCandidate{
		q: {
			{URL: host.URL + "/first.gif", Title: "tesla"},
			{URL: host.URL + "/second.gif", Title: "tesla"},
		},
	}}

	cfg := &Config{Primary: primary}
	if got := cfg.ResolveThumbnail(context.Background(), q); got != host.URL+"/first.gif" {
		t.Errorf("ResolveThumbnail = %q, want first.gif", got)
	}
}

func TestResolvePrimarySkipsInvalidAndZeroScore(t *testing.T) {
	t.Parallel()

	host := newImageHost(t)
	q := "tesla"
	primary := &stubProvider{name: "google", results: map[string][]ImageCandidate{
		q: {
			{URL: host.URL + "/missing-best.gif", Title: "tesla tesla official"},
			{URL: host.URL + "/zero.gif", Title: "nothing relevant"},
			{URL: host.URL + "/ok.gif", Title: "tesla"},
		},
	}}

	cfg := &Config{Primary: primary}
	if got := cfg.ResolveThumbnail(context.Background(), q); got != host.URL+"/ok.gif" {
		t.Errorf("ResolveThumbnail = %q, want ok.gif", got)
	}
}

func TestResolveFallsThroughToSecondary(t *testing.T) {
	t.Parallel()

	host := newImageHost(t)
	q := "ransomware gang"
	primary := &stubProvider{name: "google", err: errors.New("quota exceeded")}
	secondary := &stubProvider{name: "unsplash", results: map[string][]ImageCandidate{
		q: {
			{URL: host.URL + "/missing.jpg"},
			{URL: host.URL + "/photo.jpg"},
		},
	}}

	cfg := &Config{Primary: primary, Secondary: secondary}
	res := cfg.Resolve(context.Background(), q)
	if res.URL != host.URL+"/photo.jpg" || res.Source != SourceSecondary {
		t.Errorf("Resolution = %+v, want secondary photo.jpg", res)
	}
	if got := primary.Calls(); !slices.Equal(got, []string{q}) {
		t.Errorf("primary calls = %q, want [%q]", got, q)
	}
}

func TestResolveTriesVariantsInOrder(t *testing.T) {
	t.Parallel()

	host := newImageHost(t)
	q := "tesla vulnerability"
	variants := Variants(q)
	primary := &stubProvider{name: "google", results: map[string][]ImageCandidate{
		variants[2]: {{URL: host.URL + "/tesla.jpg", Title: "tesla brand"}},
	}}
	secondary := &stubProvider{name: "unsplash"}

	cfg := &Config{Primary: primary, Secondary: secondary}
	res := cfg.Resolve(context.Background(), q)
	if res.Variant != variants[2] {
		t.Errorf("Variant = %q, want %q", res.Variant, variants[2])
	}
	if got := primary.Calls(); !slices.Equal(got, variants[:3]) {
		t.Errorf("primary calls = %q, want %q", got, variants[:3])
	}
	if got := secondary.Calls(); !slices.Equal(got, variants[:2]) {
		t.Errorf("secondary calls = %q, want %q", got, variants[:2])
	}
}

func TestResolveExhaustedCascadeUsesOriginalQuery(t *testing.T) {
	t.Parallel()

	q := "tesla vulnerability"
	primary := &stubProvider{name: "google"}
	secondary := &stubProvider{name: "unsplash"}
	cfg := &Config{Primary: primary, Secondary: secondary, Now: frozenClock}

	res := cfg.Resolve(context.Background(), q)
	if res.Source != SourceCatalog || res.Category != "tesla" {
		t.Errorf("Resolution = %+v, want catalog/tesla", res)
	}
	if n := len(primary.Calls()); n != len(Variants(q)) {
		t.Errorf("primary called %d times, want once per variant (%d)", n, len(Variants(q)))
	}
}

func TestResolveDisabledProviderNotCalled(t *testing.T) {
	t.Parallel()

	primary := &stubProvider{name: "google", disabled: true}
	cfg := &Config{Primary: primary, Now: frozenClock}
	cfg.Resolve(context.Background(), "apple")
	if len(primary.Calls()) != 0 {
		t.Errorf("disabled provider was called: %q", primary.Calls())
	}
}

func TestResolveRecoversProviderPanic(t *testing.T) {
	t.Parallel()

	var tags []string
	cfg := &Config{
		Primary: &stubProvider{name: "google", panicMsg: "boom"},
		Now:     frozenClock,
		OnPanic: func(tag string, _ any) { tags = append(tags, tag) },
	}
	res := cfg.Resolve(context.Background(), "microsoft")
	if res.Source != SourceCatalog || res.Category != "microsoft" {
		t.Errorf("Resolution = %+v, want catalog/microsoft", res)
	}
	if len(tags) == 0 || tags[0] != "stage:"+SourcePrimary {
		t.Errorf("OnPanic tags = %q, want stage:primary", tags)
	}
}

func TestResolveIdempotentWithFrozenInputs(t *testing.T) {
	t.Parallel()

	host := newImageHost(t)
	q := "apple iphone"
	stub := func(name string) *stubProvider {
		return &stubProvider{name: name, results: map[string][]ImageCandidate{
			q: {{URL: host.URL + "/apple.jpg", Title: "apple"}, {URL: host.URL + "/iphone.jpg", Title: "apple iphone"}},
		}}
	}

	cfg := &Config{Primary: stub("google"), Secondary: stub("unsplash"), Now: frozenClock}
	first := cfg.ResolveThumbnail(context.Background(), q)
	second := cfg.ResolveThumbnail(context.Background(), q)
	if first != second {
		t.Errorf("ResolveThumbnail not idempotent: %q then %q", first, second)
	}

	empty := &Config{Now: frozenClock}
	if a, b := empty.ResolveThumbnail(context.Background(), q), empty.ResolveThumbnail(context.Background(), q); a != b {
		t.Errorf("catalog fallback not idempotent: %q then %q", a, b)
	}
}

func TestResolveCallbacks(t *testing.T) {
	t.Parallel()

	host := newImageHost(t)
	var searches []string
	var resolved []Resolution
	cfg := &Config{
		Primary: &stubProvider{name: "google", results: map[string][]ImageCandidate{
			"cisco": {{URL: host.URL + "/cisco.jpg", Title: "cisco"}},
		}},
		OnSearch:  func(p, v string) { searches = append(searches, p+":"+v) },
		OnResolve: func(r Resolution) { resolved = append(resolved, r) },
	}

	cfg.Resolve(context.Background(), "cisco")
	if !slices.Equal(searches, []string{"google:cisco"}) {
		t.Errorf("OnSearch = %q", searches)
	}
	if len(resolved) != 1 || resolved[0].Query != "cisco" || resolved[0].Source != SourcePrimary {
		t.Errorf("OnResolve = %+v", resolved)
	}
}

func TestFallbackSkipsProviders(t *testing.T) {
	t.Parallel()

	primary := &stubProvider{name: "google"}
	cfg := &Config{Primary: primary, Now: frozenClock}
	res := cfg.Fallback("network outage")
	if res.Category != "network" || res.Query != "network outage" {
		t.Errorf("Fallback = %+v, want network", res)
	}
	if len(primary.Calls()) != 0 {
		t.Error("Fallback must not search")
	}
}

func TestCustomCatalogSingleMember(t *testing.T) {
	t.Parallel()

	only := "https://example.com/only.png"
	cat, err := NewCatalog([]CatalogEntry{{Key: "acme", Pool: []string{only}}}, []string{"https://example.com/g.png"})
	if err != nil {
		t.Fatal(err)
	}
	for h := 0; h < 24; h++ {
		now := frozen.Add(time.Duration(h) * time.Hour)
		cfg := &Config{Catalog: cat, Now: func() time.Time { return now }}
		if got := cfg.ResolveThumbnail(context.Background(), "acme breach"); got != only {
			t.Fatalf("hour %d: got %q, want %q", h, got, only)
		}
	}
}

func TestResolveSharedConfigConcurrently(t *testing.T) {
	t.Parallel()

	host := newImageHost(t)
	cfg := &Config{
		Primary: &stubProvider{name: "google", results: map[string][]ImageCandidate{
			"tesla": {{URL: host.URL + "/tesla.jpg", Title: "tesla"}},
		}},
	}

	const workers = 8
	results := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				results[i] = cfg.ResolveThumbnail(context.Background(), "tesla")
			} else {
				results[i] = cfg.Fallback("tesla").URL
			}
		}()
	}
	wg.Wait()

	for i, got := range results {
		if i%2 == 0 && got != host.URL+"/tesla.jpg" {
			t.Errorf("worker %d: ResolveThumbnail = %q", i, got)
		}
		if i%2 == 1 && !DefaultCatalog().Contains(got) {
			t.Errorf("worker %d: Fallback = %q, not in catalog", i, got)
		}
	}
	if cfg.UserAgent != "" || cfg.HTTPClient != nil || cfg.Catalog != nil || cfg.Now != nil || cfg.Secondary != nil {
		t.Errorf("Config was modified by concurrent calls: %+v", cfg)
	}
}
