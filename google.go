package thumbnail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	googleEndpoint = "https://www.googleapis.com/customsearch/v1"
	googleTimeout  = 15 * time.Second
)

// GoogleProvider searches images through the Google Custom Search JSON API.
type GoogleProvider struct {
	APIKey     string
	EngineID   string
	Endpoint   string       // default: Custom Search v1 endpoint
	HTTPClient *http.Client // nil = http.DefaultClient
}

// NewGoogleProvider returns a Google provider, or a disabled provider when
// either credential is empty.
func NewGoogleProvider(apiKey, engineID string, client *http.Client) Provider {
	if apiKey == "" || engineID == "" {
		return Disabled("google")
	}
	return &GoogleProvider{APIKey: apiKey, EngineID: engineID, HTTPClient: client}
}

func (p *GoogleProvider) Name() string { return "google" }

func (p *GoogleProvider) Enabled() bool { return p.APIKey != "" && p.EngineID != "" }

type googleResponse struct {
	Items []struct {
		Link    string `json:"link"`
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// Search requests up to 10 large, colour, CC-licensed photos for query.
func (p *GoogleProvider) Search(ctx context.Context, query string) ([]ImageCandidate, error) {
	endpoint := p.Endpoint
	if endpoint == "" {
		endpoint = googleEndpoint
	}
	params := url.Values{
		"key":          {p.APIKey},
		"cx":           {p.EngineID},
		"q":            {query},
		"searchType":   {"image"},
		"imgSize":      {"large"},
		"imgType":      {"photo"},
		"safe":         {"active"},
		"num":          {"10"},
		"rights":       {"cc_publicdomain,cc_attribute,cc_sharealike"},
		"fileType":     {"jpg,png"},
		"imgColorType": {"color"},
	}

	var body googleResponse
	if err := getJSON(ctx, p.HTTPClient, googleTimeout, endpoint+"?"+params.Encode(), nil, &body); err != nil {
		return nil, fmt.Errorf("google search %q: %w", query, err)
	}

	out := make([]ImageCandidate, 0, len(body.Items))
	for _, it := range body.Items {
		if it.Link == "" {
			continue
		}
		out = append(out, ImageCandidate{URL: it.Link, Title: it.Title, Snippet: it.Snippet})
	}
	return out, nil
}

// getJSON performs a GET with its own timeout and decodes a 2xx JSON body into dest.
func getJSON(ctx context.Context, client *http.Client, timeout time.Duration, rawURL string, header http.Header, dest any) error {
	if client == nil {
		client = http.DefaultClient
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
