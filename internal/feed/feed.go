// Package feed polls RSS/Atom sources for the articles that need thumbnails.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPerFeed = 3
	fetchTimeout   = 15 * time.Second
	maxDescription = 500
	maxConcurrent  = 4
)

// Entry is one article taken from a feed.
type Entry struct {
	Feed        string // feed URL
	Title       string
	Link        string
	Description string // HTML stripped, truncated
}

// Poller fetches the latest entries of a fixed set of feeds.
type Poller struct {
	Client  *http.Client
	Feeds   []string
	PerFeed int // entries kept per feed, in feed order (default DefaultPerFeed)
}

func NewPoller(feeds []string, perFeed int) *Poller {
	return &Poller{
		Client:  &http.Client{Timeout: fetchTimeout},
		Feeds:   feeds,
		PerFeed: perFeed,
	}
}

// Result holds the entries of every feed that could be read, in configured
// feed order, plus one error per feed that could not.
type Result struct {
	Entries []Entry
	Errors  []error
}

// Poll fetches all feeds concurrently. A failing feed never affects the others.
func (p *Poller) Poll(ctx context.Context) Result {
	perFeed := p.PerFeed
	if perFeed <= 0 {
		perFeed = DefaultPerFeed
	}

	type outcome struct {
		entries []Entry
		err     error
	}
	outcomes := make([]outcome, len(p.Feeds))

	var g errgroup.Group
	g.SetLimit(maxConcurrent)
	for i, u := range p.Feeds {
		i, u := i, u
		g.Go(func() error {
			entries, err := p.fetch(ctx, u, perFeed)
			outcomes[i] = outcome{entries, err}
			return nil
		})
	}
	_ = g.Wait()

	var res Result
	for i, o := range outcomes {
		if o.err != nil {
			slog.Warn("feed: fetch failed", "feed", p.Feeds[i], "error", o.err.Error())
			res.Errors = append(res.Errors, o.err)
			continue
		}
		if len(o.entries) == 0 {
			slog.Warn("feed: no entries", "feed", p.Feeds[i])
		}
		res.Entries = append(res.Entries, o.entries...)
	}
	return res
}

func (p *Poller) fetch(ctx context.Context, feedURL string, limit int) ([]Entry, error) {
	parser := gofeed.NewParser()
	parser.Client = p.Client
	if parser.Client == nil {
		parser.Client = &http.Client{Timeout: fetchTimeout}
	}

	f, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", feedURL, err)
	}

	out := make([]Entry, 0, min(limit, len(f.Items)))
	for _, item := range f.Items {
		if len(out) == limit {
			break
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		desc := item.Description
		if desc == "" {
			desc = item.Content
		}
		out = append(out, Entry{
			Feed:        feedURL,
			Title:       title,
			Link:        strings.TrimSpace(item.Link),
			Description: truncate(stripHTML(desc), maxDescription),
		})
	}
	return out, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
