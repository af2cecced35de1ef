package thumbnail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// KeywordExtractor turns article text into a short image search phrase.
type KeywordExtractor interface {
	ExtractKeywords(ctx context.Context, title, description string) (string, error)
}

// KeywordPrompt is the instruction sent to the language model; the two %q verbs receive
// the quoted title and description.
const KeywordPrompt = `You pick the most visually relevant image search term for a cybersecurity article thumbnail.

Article title: %q
Article content: %q

Priority:
1. Specific brands or companies (e.g. "Jaguar", "Land Rover", "Microsoft Windows")
2. Specific products (e.g. "Tesla Model 3", "Chrome browser", "Android phone")
3. Visual industry symbols (e.g. "automotive industry", "banking sector", "healthcare technology")
4. Recognisable logos
5. Generic security imagery, only if nothing above applies

Examples:
- "Jaguar Land Rover hack" -> "jaguar land rover logo"
- "iPhone malware" -> "apple iphone"
- "Hospital ransomware" -> "healthcare technology"

Return ONLY the search term, 2-5 words.`

const (
	DefaultKeywordModel = "gpt-4o-mini"
	keywordMaxTokens    = 25
	keywordTemperature  = 0.2
)

// OpenAIKeywords extracts search phrases with an OpenAI-compatible chat API.
type OpenAIKeywords struct {
	client *openai.Client
	model  string
}

// NewOpenAIKeywords returns an extractor for apiKey. baseURL and model may be
// empty to use the OpenAI endpoint and DefaultKeywordModel.
func NewOpenAIKeywords(apiKey, baseURL, model string) *OpenAIKeywords {
	oc := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		oc.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultKeywordModel
	}
	return &OpenAIKeywords{client: openai.NewClientWithConfig(oc), model: model}
}

// ExtractKeywords asks the model for a search term and normalizes the reply
// with ParseKeywords.
func (k *OpenAIKeywords) ExtractKeywords(ctx context.Context, title, description string) (string, error) {
	resp, err := k.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: k.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(KeywordPrompt, title, description)},
		},
		MaxTokens:   keywordMaxTokens,
		Temperature: keywordTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("keyword completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("keyword completion: no choices")
	}
	return ParseKeywords(resp.Choices[0].Message.Content), nil
}

var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// ParseKeywords normalizes a model reply: lowercase, punctuation removed,
// whitespace collapsed.
func ParseKeywords(resp string) string {
	s := nonWordRe.ReplaceAllString(strings.ToLower(resp), "")
	return strings.Join(strings.Fields(s), " ")
}

// SearchPhrase returns the base query for an article. It asks cfg.Keywords
// when set and falls back to FallbackKeywords on error or an empty reply.
func (cfg *Config) SearchPhrase(ctx context.Context, title, description string) string {
	if cfg.Keywords == nil {
		return FallbackKeywords(title, description)
	}
	phrase, err := cfg.Keywords.ExtractKeywords(ctx, title, description)
	if err != nil {
		slog.Warn("thumbnail: keyword extraction failed", "title", title, "error", err.Error())
		return FallbackKeywords(title, description)
	}
	if phrase == "" {
		return FallbackKeywords(title, description)
	}
	return phrase
}

var fallbackCompanies = []string{
	"apple", "microsoft", "google", "amazon", "meta", "facebook", "tesla", "netflix",
	"adobe", "zoom", "slack", "twitter", "linkedin", "instagram", "tiktok", "snapchat",
	"uber", "airbnb", "spotify", "paypal", "visa", "mastercard", "samsung", "sony",
	"nintendo", "playstation", "xbox", "intel", "nvidia", "amd", "cisco", "vmware",
	"oracle", "salesforce", "dropbox", "github", "aws", "azure", "cloudflare",
	"jaguar", "bmw", "mercedes", "ford", "toyota", "honda", "volkswagen", "audi",
}

var fallbackProducts = []string{
	"iphone", "android", "windows", "mac", "linux", "chrome", "firefox", "safari",
}

var fallbackSecurityTerms = []struct{ term, phrase string }{
	{"malware", "virus warning icon"},
	{"ransomware", "lock security icon"},
	{"phishing", "email security icon"},
	{"data breach", "shield protection icon"},
	{"cyber attack", "security alert icon"},
	{"vulnerability", "security shield icon"},
}

// FallbackKeywords derives a search phrase by plain string matching: a known
// company, then a known product, then a security topic, then a generic phrase.
func FallbackKeywords(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, c := range fallbackCompanies {
		if strings.Contains(text, c) {
			return c + " logo"
		}
	}
	for _, p := range fallbackProducts {
		if strings.Contains(text, p) {
			return p + " icon"
		}
	}
	for _, m := range fallbackSecurityTerms {
		if strings.Contains(text, m.term) {
			return m.phrase
		}
	}
	return "cybersecurity shield icon"
}
