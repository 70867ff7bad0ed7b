// Package dashboard turns collected website data into DashboardStats. It
// either adopts the backend's authoritative payload as-is or reproduces the
// same numbers locally when that endpoint is unavailable.
package dashboard

import (
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/webanalyzer/webaudit/pkg/wapi"
)

const (
	rankedPageLimit     = 5
	recentActivityLimit = 5
)

type ScoreDistribution struct {
	Excellent        int `json:"excellent"`
	Good             int `json:"good"`
	NeedsImprovement int `json:"needs_improvement"`
}

type Overview struct {
	TotalWebsites     int               `json:"total_websites"`
	TotalPages        int               `json:"total_pages"`
	AnalyzedPages     int               `json:"analyzed_pages"`
	PendingAnalysis   int               `json:"pending_analysis"`
	AverageScore      float64           `json:"average_score"`
	ScoreDistribution ScoreDistribution `json:"score_distribution"`
}

// RankedPage is one row of the top/bottom page rankings.
type RankedPage struct {
	ID        int     `json:"id"`
	URL       string  `json:"url"`
	Title     string  `json:"title"`
	Score     float64 `json:"score"`
	WebsiteID int     `json:"website_id"`
}

// WebsiteSummary is one per-website dashboard row, derived from the
// website's primary page.
type WebsiteSummary struct {
	ID            int      `json:"id"`
	BaseURL       string   `json:"base_url"`
	Title         string   `json:"title,omitempty"`
	CreatedAt     string   `json:"created_at"`
	TotalPages    int      `json:"total_pages"`
	AnalyzedPages int      `json:"analyzed_pages"`
	AverageScore  *float64 `json:"average_score"`
	Status        string   `json:"status"`
}

// Stats is the normalized dashboard payload, identical in shape whether it
// came from the backend or from the local fallback computation.
type Stats struct {
	Overview                Overview                `json:"overview"`
	RecentActivity          []wapi.ActivityLogEntry `json:"recent_activity"`
	TopPerformingPages      []RankedPage            `json:"top_performing_pages"`
	PagesNeedingImprovement []RankedPage            `json:"pages_needing_improvement"`
	Websites                []WebsiteSummary        `json:"websites,omitempty"`
}

// NormalizedWebsite unifies the single-page and crawled website shapes into
// one view. TotalPages is the crawl's page count for crawled websites and
// 1 (page present) or 0 for single-page websites.
type NormalizedWebsite struct {
	ID         int
	BaseURL    string
	Title      string
	CreatedAt  string
	TotalPages int
	Pages      []wapi.Page
}

// Normalize flattens both website shapes, single-page websites first,
// preserving fetch order within each shape.
func Normalize(single []wapi.Website, crawled []wapi.CrawledWebsite) []NormalizedWebsite {
	normalized := make([]NormalizedWebsite, 0, len(single)+len(crawled))
	for _, w := range single {
		n := NormalizedWebsite{ID: w.ID, BaseURL: w.BaseURL, Title: w.Title, CreatedAt: w.CreatedAt}
		if w.Page != nil {
			n.TotalPages = 1
			n.Pages = []wapi.Page{*w.Page}
		}
		normalized = append(normalized, n)
	}
	for _, w := range crawled {
		n := NormalizedWebsite{ID: w.ID, BaseURL: w.BaseURL, Title: w.Title, CreatedAt: w.CreatedAt, TotalPages: w.PageCount, Pages: w.Pages}
		if n.TotalPages == 0 {
			n.TotalPages = len(w.Pages)
		}
		normalized = append(normalized, n)
	}
	return normalized
}

// FromAuthoritative decodes the backend's dashboard payload.
func FromAuthoritative(raw json.RawMessage) (*Stats, error) {
	var stats Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Aggregate picks between the two dashboard paths, once per load: the
// authoritative payload is adopted as-is when present, otherwise the stats
// are computed locally from the collected records.
func Aggregate(authoritative *Stats, single []wapi.Website, crawled []wapi.CrawledWebsite, logs []wapi.ActivityLogEntry, now time.Time) Stats {
	if authoritative != nil {
		return *authoritative
	}
	return Compute(single, crawled, logs, now)
}

// Compute is the fallback path: it reproduces the backend's dashboard
// aggregation from collected records. Identical input (including now)
// yields identical output.
func Compute(single []wapi.Website, crawled []wapi.CrawledWebsite, logs []wapi.ActivityLogEntry, now time.Time) Stats {
	// Pages from crawled websites come first, matching the backend's
	// flattening order; ranking ties resolve by this order.
	var pages []wapi.Page
	for _, w := range crawled {
		pages = append(pages, w.Pages...)
	}
	for _, w := range single {
		if w.Page != nil {
			pages = append(pages, *w.Page)
		}
	}

	var analyzed []wapi.Page
	for _, p := range pages {
		if p.GrammarScore != nil {
			analyzed = append(analyzed, p)
		}
	}

	average := 0.0
	if len(analyzed) > 0 {
		sum := 0.0
		for _, p := range analyzed {
			sum += *p.GrammarScore
		}
		average = round2(sum / float64(len(analyzed)))
	}

	var dist ScoreDistribution
	for _, p := range analyzed {
		switch score := *p.GrammarScore; {
		case score >= 80:
			dist.Excellent++
		case score >= 60:
			dist.Good++
		default:
			dist.NeedsImprovement++
		}
	}

	top := append([]wapi.Page(nil), analyzed...)
	sort.SliceStable(top, func(i, j int) bool {
		return *top[i].GrammarScore > *top[j].GrammarScore
	})

	var low []wapi.Page
	for _, p := range analyzed {
		if *p.GrammarScore < 60 {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return *low[i].GrammarScore < *low[j].GrammarScore
	})

	activity := logs
	if len(activity) > recentActivityLimit {
		activity = activity[:recentActivityLimit]
	}
	if len(activity) == 0 {
		activity = []wapi.ActivityLogEntry{{
			ID:        1,
			Action:    "dashboard_loaded",
			Message:   "Dashboard data calculated from your websites",
			Timestamp: now.UTC().Format(time.RFC3339),
			Level:     "info",
		}}
	}

	return Stats{
		Overview: Overview{
			TotalWebsites:     len(single) + len(crawled),
			TotalPages:        len(pages),
			AnalyzedPages:     len(analyzed),
			PendingAnalysis:   len(pages) - len(analyzed),
			AverageScore:      average,
			ScoreDistribution: dist,
		},
		RecentActivity:          activity,
		TopPerformingPages:      rankPages(top),
		PagesNeedingImprovement: rankPages(low),
		Websites:                summarizeWebsites(Normalize(single, crawled)),
	}
}

func rankPages(pages []wapi.Page) []RankedPage {
	if len(pages) > rankedPageLimit {
		pages = pages[:rankedPageLimit]
	}
	ranked := make([]RankedPage, 0, len(pages))
	for _, p := range pages {
		title := p.Title
		if title == "" {
			title = "No title"
		}
		ranked = append(ranked, RankedPage{
			ID:        p.ID,
			URL:       p.URL,
			Title:     title,
			Score:     *p.GrammarScore,
			WebsiteID: p.WebsiteID,
		})
	}
	return ranked
}

// summarizeWebsites derives one row per website from its primary page,
// index 0 of the fetched page sequence.
func summarizeWebsites(websites []NormalizedWebsite) []WebsiteSummary {
	summaries := make([]WebsiteSummary, 0, len(websites))
	for _, w := range websites {
		summary := WebsiteSummary{
			ID:         w.ID,
			BaseURL:    w.BaseURL,
			Title:      w.Title,
			CreatedAt:  w.CreatedAt,
			TotalPages: w.TotalPages,
			Status:     "pending",
		}
		if len(w.Pages) > 0 && w.Pages[0].GrammarScore != nil {
			score := *w.Pages[0].GrammarScore
			summary.AnalyzedPages = 1
			summary.AverageScore = &score
			summary.Status = "analyzed"
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
