// Package metrics derives content-quality metrics from a page's raw text.
// The heuristics are deliberately simple, deterministic approximations: the
// same input always yields the same output, and no external NLP service is
// involved.
package metrics

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ContentMetrics is derived per page and never persisted.
type ContentMetrics struct {
	ReadabilityScore int                `json:"readability_score"`
	KeywordDensity   map[string]float64 `json:"keyword_density"`
	Categories       []string           `json:"content_categories"`
}

var (
	sentencePattern = regexp.MustCompile(`[.!?]+`)
	wordPattern     = regexp.MustCompile(`\b\w+\b`)
)

// keywords is the fixed vocabulary tracked by KeywordDensity.
var keywords = []string{"website", "content", "page", "analysis", "quality", "seo", "accessibility"}

var categoryGroups = []struct {
	name  string
	words []string
}{
	{"commercial", []string{"product", "service", "buy", "purchase"}},
	{"informational", []string{"about", "company", "team", "mission"}},
	{"blog", []string{"blog", "article", "news", "update"}},
	{"contact", []string{"contact", "email", "phone", "address"}},
}

// Readability estimates how easy the text reads on a 0-100 scale. Long
// sentences and long words push the score down. Punctuation does not count
// toward word length. Empty text scores 0.
func Readability(text string) int {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	sentences := 0
	for _, segment := range sentencePattern.Split(text, -1) {
		if strings.TrimSpace(segment) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	letters := 0
	for _, word := range words {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				letters++
			}
		}
	}

	avgSentenceLen := float64(len(words)) / float64(sentences)
	avgWordLen := float64(letters) / float64(len(words))
	score := 100 - (0.5*avgSentenceLen + 2*avgWordLen)
	return int(math.Round(math.Max(0, math.Min(100, score))))
}

// KeywordDensity reports the percentage share of each tracked keyword,
// rounded to two decimals. Keywords that never occur are omitted; empty
// text yields an empty map.
func KeywordDensity(text string) map[string]float64 {
	densities := make(map[string]float64)
	tokens := wordPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return densities
	}

	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}

	total := float64(len(tokens))
	for _, keyword := range keywords {
		if n := counts[keyword]; n > 0 {
			densities[keyword] = math.Round(float64(n)/total*10000) / 100
		}
	}
	return densities
}

// Categorize tags the text with coarse content categories via substring
// membership against fixed keyword groups. A page may match several groups;
// no match yields ["general"].
func Categorize(text string) []string {
	lower := strings.ToLower(text)
	var categories []string
	for _, group := range categoryGroups {
		for _, word := range group.words {
			if strings.Contains(lower, word) {
				categories = append(categories, group.name)
				break
			}
		}
	}
	if len(categories) == 0 {
		return []string{"general"}
	}
	return categories
}

// Compute bundles all three metrics for a page's raw content.
func Compute(text string) ContentMetrics {
	return ContentMetrics{
		ReadabilityScore: Readability(text),
		KeywordDensity:   KeywordDensity(text),
		Categories:       Categorize(text),
	}
}
