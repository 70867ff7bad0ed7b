package dashboard

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webanalyzer/webaudit/pkg/wapi"
)

func fp(v float64) *float64 { return &v }

func fixedNow() time.Time {
	return time.Date(2024, 3, 5, 12, 30, 0, 0, time.UTC)
}

func scoredPages() []wapi.Page {
	scores := []float64{95, 72, 58, 81, 40}
	pages := make([]wapi.Page, 0, len(scores))
	for i, score := range scores {
		pages = append(pages, wapi.Page{
			ID:           i + 1,
			WebsiteID:    10,
			URL:          "https://example.com/p",
			Title:        "Page",
			GrammarScore: fp(score),
		})
	}
	return pages
}

func TestComputeOverview(t *testing.T) {
	crawled := []wapi.CrawledWebsite{{ID: 10, BaseURL: "https://example.com", PageCount: 5, Pages: scoredPages()}}
	single := []wapi.Website{{ID: 3, BaseURL: "https://pending.example"}}

	stats := Compute(single, crawled, nil, fixedNow())

	o := stats.Overview
	assert.Equal(t, 2, o.TotalWebsites)
	assert.Equal(t, 5, o.TotalPages)
	assert.Equal(t, 5, o.AnalyzedPages)
	assert.Equal(t, 0, o.PendingAnalysis)
	assert.Equal(t, 69.2, o.AverageScore)
	assert.Equal(t, ScoreDistribution{Excellent: 2, Good: 1, NeedsImprovement: 2}, o.ScoreDistribution)
}

func TestComputeInvariants(t *testing.T) {
	pages := scoredPages()
	pages = append(pages, wapi.Page{ID: 6, WebsiteID: 10, URL: "https://example.com/new"}) // not analyzed
	crawled := []wapi.CrawledWebsite{{ID: 10, BaseURL: "https://example.com", Pages: pages}}

	stats := Compute(nil, crawled, nil, fixedNow())

	o := stats.Overview
	assert.Equal(t, o.TotalPages, o.AnalyzedPages+o.PendingAnalysis)
	d := o.ScoreDistribution
	assert.Equal(t, o.AnalyzedPages, d.Excellent+d.Good+d.NeedsImprovement)
}

func TestComputeRankings(t *testing.T) {
	crawled := []wapi.CrawledWebsite{{ID: 10, BaseURL: "https://example.com", Pages: scoredPages()}}

	stats := Compute(nil, crawled, nil, fixedNow())

	topScores := make([]float64, 0, len(stats.TopPerformingPages))
	for _, p := range stats.TopPerformingPages {
		topScores = append(topScores, p.Score)
	}
	assert.Equal(t, []float64{95, 81, 72, 58, 40}, topScores)

	lowScores := make([]float64, 0, len(stats.PagesNeedingImprovement))
	for _, p := range stats.PagesNeedingImprovement {
		lowScores = append(lowScores, p.Score)
	}
	assert.Equal(t, []float64{40, 58}, lowScores)
}

func TestComputeRankingTieOrder(t *testing.T) {
	// Tied scores must keep the original fetch order in both rankings.
	scores := []float64{70, 85, 70, 40, 40}
	pages := make([]wapi.Page, 0, len(scores))
	for i, score := range scores {
		pages = append(pages, wapi.Page{ID: i + 1, WebsiteID: 10, GrammarScore: fp(score)})
	}
	crawled := []wapi.CrawledWebsite{{ID: 10, Pages: pages}}

	stats := Compute(nil, crawled, nil, fixedNow())

	topIDs := make([]int, 0, len(stats.TopPerformingPages))
	for _, p := range stats.TopPerformingPages {
		topIDs = append(topIDs, p.ID)
	}
	assert.Equal(t, []int{2, 1, 3, 4, 5}, topIDs)

	lowIDs := make([]int, 0, len(stats.PagesNeedingImprovement))
	for _, p := range stats.PagesNeedingImprovement {
		lowIDs = append(lowIDs, p.ID)
	}
	assert.Equal(t, []int{4, 5}, lowIDs)
}

func TestComputeRankingLimit(t *testing.T) {
	var pages []wapi.Page
	for i := 0; i < 8; i++ {
		pages = append(pages, wapi.Page{ID: i + 1, WebsiteID: 10, GrammarScore: fp(float64(30 + i))})
	}
	crawled := []wapi.CrawledWebsite{{ID: 10, Pages: pages}}

	stats := Compute(nil, crawled, nil, fixedNow())

	assert.Len(t, stats.TopPerformingPages, 5)
	assert.Len(t, stats.PagesNeedingImprovement, 5)
}

func TestComputeEmptyTitleFallback(t *testing.T) {
	crawled := []wapi.CrawledWebsite{{ID: 10, Pages: []wapi.Page{{ID: 1, WebsiteID: 10, GrammarScore: fp(70)}}}}

	stats := Compute(nil, crawled, nil, fixedNow())

	require.Len(t, stats.TopPerformingPages, 1)
	assert.Equal(t, "No title", stats.TopPerformingPages[0].Title)
}

func TestComputeSynthesizesActivity(t *testing.T) {
	stats := Compute(nil, nil, nil, fixedNow())

	require.Len(t, stats.RecentActivity, 1)
	entry := stats.RecentActivity[0]
	assert.Equal(t, "dashboard_loaded", entry.Action)
	assert.Equal(t, "Dashboard data calculated from your websites", entry.Message)
	assert.Equal(t, "info", entry.Level)
	assert.Equal(t, "2024-03-05T12:30:00Z", entry.Timestamp)
}

func TestComputeTruncatesActivity(t *testing.T) {
	var logs []wapi.ActivityLogEntry
	for i := 0; i < 8; i++ {
		logs = append(logs, wapi.ActivityLogEntry{ID: i + 1, Action: "scrape"})
	}

	stats := Compute(nil, nil, logs, fixedNow())

	require.Len(t, stats.RecentActivity, 5)
	assert.Equal(t, 1, stats.RecentActivity[0].ID)
}

func TestComputeWebsiteSummaries(t *testing.T) {
	single := []wapi.Website{
		{ID: 1, BaseURL: "https://a.example", Page: &wapi.Page{ID: 1, GrammarScore: fp(88)}},
		{ID: 2, BaseURL: "https://b.example"},
	}
	crawled := []wapi.CrawledWebsite{
		{ID: 3, BaseURL: "https://c.example", PageCount: 4, Pages: []wapi.Page{{ID: 5}}},
	}

	stats := Compute(single, crawled, nil, fixedNow())

	require.Len(t, stats.Websites, 3)

	analyzed := stats.Websites[0]
	assert.Equal(t, "analyzed", analyzed.Status)
	assert.Equal(t, 1, analyzed.TotalPages)
	require.NotNil(t, analyzed.AverageScore)
	assert.Equal(t, 88.0, *analyzed.AverageScore)

	pending := stats.Websites[1]
	assert.Equal(t, "pending", pending.Status)
	assert.Equal(t, 0, pending.TotalPages)
	assert.Nil(t, pending.AverageScore)

	crawledRow := stats.Websites[2]
	assert.Equal(t, 4, crawledRow.TotalPages)
	assert.Equal(t, "pending", crawledRow.Status)
}

func TestComputeIsDeterministic(t *testing.T) {
	single := []wapi.Website{{ID: 1, Page: &wapi.Page{ID: 9, GrammarScore: fp(61)}}}
	crawled := []wapi.CrawledWebsite{{ID: 10, Pages: scoredPages()}}
	now := fixedNow()

	require.Equal(t, Compute(single, crawled, nil, now), Compute(single, crawled, nil, now))
}

func TestAggregatePrefersAuthoritative(t *testing.T) {
	authoritative := &Stats{Overview: Overview{TotalWebsites: 42}}
	single := []wapi.Website{{ID: 1, Page: &wapi.Page{GrammarScore: fp(50)}}}

	stats := Aggregate(authoritative, single, nil, nil, fixedNow())

	// Adopted as-is, not recomputed from the collected records.
	assert.Equal(t, *authoritative, stats)
}

func TestAggregateFallsBackWithoutAuthoritative(t *testing.T) {
	single := []wapi.Website{{ID: 1, Page: &wapi.Page{GrammarScore: fp(50)}}}

	stats := Aggregate(nil, single, nil, nil, fixedNow())

	assert.Equal(t, 1, stats.Overview.TotalWebsites)
	assert.Equal(t, 1, stats.Overview.AnalyzedPages)
}

func TestFromAuthoritative(t *testing.T) {
	raw := json.RawMessage(`{
		"overview": {
			"total_websites": 2,
			"total_pages": 7,
			"analyzed_pages": 5,
			"pending_analysis": 2,
			"average_score": 69.2,
			"score_distribution": {"excellent": 2, "good": 1, "needs_improvement": 2}
		},
		"recent_activity": [{"id": 1, "action": "page_scraped", "level": "info"}],
		"top_performing_pages": [],
		"pages_needing_improvement": []
	}`)

	stats, err := FromAuthoritative(raw)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.Overview.TotalPages)
	assert.Equal(t, ScoreDistribution{Excellent: 2, Good: 1, NeedsImprovement: 2}, stats.Overview.ScoreDistribution)
	require.Len(t, stats.RecentActivity, 1)
	assert.Equal(t, "page_scraped", stats.RecentActivity[0].Action)
}

func TestFromAuthoritativeRejectsMalformedPayload(t *testing.T) {
	_, err := FromAuthoritative(json.RawMessage(`{"overview": "nope"`))
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	single := []wapi.Website{
		{ID: 1, BaseURL: "https://a.example", Page: &wapi.Page{ID: 4}},
		{ID: 2, BaseURL: "https://b.example"},
	}
	crawled := []wapi.CrawledWebsite{
		{ID: 3, BaseURL: "https://c.example", Pages: []wapi.Page{{ID: 5}, {ID: 6}}},
	}

	normalized := Normalize(single, crawled)

	require.Len(t, normalized, 3)
	assert.Equal(t, 1, normalized[0].TotalPages)
	assert.Equal(t, 0, normalized[1].TotalPages)
	// page_count missing, fall back to the embedded pages
	assert.Equal(t, 2, normalized[2].TotalPages)
}
