package thumbnail

import "strings"

// Relevance points.
const (
	pointsTrustedHost   = 30
	pointsBlockedHost   = -20
	pointsBrandInText   = 25
	pointsBrandInURL    = 15
	pointsTermInTitle   = 10
	pointsTermInSnippet = 8
	pointsTermInURL     = 5
	pointsLogoIndicator = 15
	pointsLogoPNG       = 10
	pointsPhotoJPG      = 5
)

// minScoredTermLen is the rune length a query token must exceed to count as a term.
const minScoredTermLen = 2

// brandTerms earn extra points when they appear in a candidate. Multi-word
// marques can never equal a single whitespace token and are kept for parity
// with the variant lists.
var brandTerms = map[string]bool{
	"logo": true, "brand": true, "official": true,
	"jaguar": true, "land rover": true, "tesla": true,
	"apple": true, "microsoft": true,
}

var logoIndicators = []string{"logo", "official", "brand", "symbol", "emblem"}

// Score rates how well cand matches query. Comparisons are case-insensitive
// substring checks; the result is never negative. Scores are only meaningful
// relative to other candidates from the same provider call.
func Score(query string, cand ImageCandidate) int {
	return scoreWith(query, cand, nil)
}

func scoreWith(query string, cand ImageCandidate, extraBlocked []string) int {
	q := strings.ToLower(query)
	u := strings.ToLower(cand.URL)
	title := strings.ToLower(cand.Title)
	snippet := strings.ToLower(cand.Snippet)
	host := extractHost(cand.URL)

	score := 0
	if hostIn(host, TrustedHosts) {
		score += pointsTrustedHost
	}
	if hostIn(host, BlockedHosts, extraBlocked) {
		score += pointsBlockedHost
	}

	terms := strings.Fields(q)
	for _, t := range terms {
		if !brandTerms[t] {
			continue
		}
		if strings.Contains(title, t) || strings.Contains(snippet, t) {
			score += pointsBrandInText
		}
		if strings.Contains(u, t) {
			score += pointsBrandInURL
		}
	}

	for _, t := range terms {
		if len([]rune(t)) <= minScoredTermLen {
			continue
		}
		if strings.Contains(title, t) {
			score += pointsTermInTitle
		}
		if strings.Contains(snippet, t) {
			score += pointsTermInSnippet
		}
		if strings.Contains(u, t) {
			score += pointsTermInURL
		}
	}

	for _, ind := range logoIndicators {
		if strings.Contains(title, ind) || strings.Contains(snippet, ind) {
			score += pointsLogoIndicator
			break
		}
	}

	wantsLogo := strings.Contains(q, "logo")
	switch {
	case wantsLogo && strings.HasSuffix(u, ".png"):
		score += pointsLogoPNG
	case !wantsLogo && strings.HasSuffix(u, ".jpg"):
		score += pointsPhotoJPG
	}

	return max(score, 0)
}
