package wapi

import "github.com/webanalyzer/webaudit/pkg/metrics"

// Page is one scraped or crawled page as the backend stores it. A nil
// GrammarScore means the page has not been analyzed yet; the score is a
// tri-state, never a sentinel number.
type Page struct {
	ID                     int      `json:"id"`
	URL                    string   `json:"url"`
	Title                  string   `json:"title,omitempty"`
	ScrapedContent         string   `json:"scraped_content,omitempty"`
	WordCount              *int     `json:"word_count,omitempty"`
	GrammarScore           *float64 `json:"grammar_score,omitempty"`
	ImprovementSuggestions string   `json:"improvement_suggestions,omitempty"`
	AnalysisResult         string   `json:"analysis_result,omitempty"`
	StatusCode             *int     `json:"status_code,omitempty"`
	LoadTime               *float64 `json:"load_time,omitempty"`
	CreatedAt              string   `json:"created_at"`
	WebsiteID              int      `json:"website_id,omitempty"`
}

// Website is a single-page website record. The primary page may arrive
// embedded or be resolved later by a best-effort sub-fetch.
type Website struct {
	ID        int    `json:"id"`
	BaseURL   string `json:"base_url"`
	Title     string `json:"title,omitempty"`
	CreatedAt string `json:"created_at"`
	UserID    int    `json:"user_id"`
	Page      *Page  `json:"page,omitempty"`
}

// CrawledWebsite is a multi-page website produced by a recursive crawl.
type CrawledWebsite struct {
	ID        int    `json:"id"`
	BaseURL   string `json:"base_url"`
	Title     string `json:"title,omitempty"`
	CreatedAt string `json:"created_at"`
	UserID    int    `json:"user_id"`
	PageCount int    `json:"page_count"`
	Pages     []Page `json:"pages"`
}

// ActivityLogEntry is one read-only backend activity log line.
type ActivityLogEntry struct {
	ID        int    `json:"id"`
	Action    string `json:"action"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	URL       string `json:"url,omitempty"`
}

// AuditSummary is the backend's per-website audit report.
type AuditSummary struct {
	WebsiteID           int      `json:"website_id"`
	TotalPages          int      `json:"total_pages"`
	BrokenLinksCount    int      `json:"broken_links_count"`
	ImageIssuesCount    int      `json:"image_issues_count"`
	AverageGrammarScore *float64 `json:"average_grammar_score,omitempty"`
	OverallHealthScore  *float64 `json:"overall_health_score,omitempty"`
	SEOScore            *float64 `json:"seo_score,omitempty"`
	AccessibilityScore  *float64 `json:"accessibility_score,omitempty"`
}

// IssueSummary aggregates broken-link and large-image counts for one
// website.
type IssueSummary struct {
	TotalBrokenLinks     int `json:"total_broken_links"`
	TotalLargeImages     int `json:"total_large_images"`
	PagesWithBrokenLinks int `json:"pages_with_broken_links"`
	PagesWithLargeImages int `json:"pages_with_large_images"`
}

// BrokenLink is one dead link found on a page. A zero status code marks a
// connection error rather than an HTTP failure.
type BrokenLink struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
	LinkText   string `json:"link_text,omitempty"`
	PageURL    string `json:"page_url,omitempty"`
	PageTitle  string `json:"page_title,omitempty"`
}

// LargeImage is one oversized image found on a page.
type LargeImage struct {
	URL            string  `json:"url"`
	Filename       string  `json:"filename,omitempty"`
	SizeKB         float64 `json:"size_kb"`
	SizeMB         float64 `json:"size_mb"`
	IsBanner       bool    `json:"is_banner"`
	Recommendation string  `json:"recommendation,omitempty"`
	PageURL        string  `json:"page_url,omitempty"`
	PageTitle      string  `json:"page_title,omitempty"`
}

// WebsiteIssues is the full issue report for one website.
type WebsiteIssues struct {
	Summary     IssueSummary `json:"summary"`
	BrokenLinks []BrokenLink `json:"broken_links"`
	LargeImages []LargeImage `json:"large_images"`
}

// PageAnalysis is the result of triggering grammar analysis on one page.
type PageAnalysis struct {
	PageID          int     `json:"page_id"`
	GrammarScore    float64 `json:"grammar_score"`
	AnalysisPreview string  `json:"analysis_preview"`
	Success         bool    `json:"success"`
}

// WebsiteAnalysis is the result of triggering grammar analysis on every
// page of a website.
type WebsiteAnalysis struct {
	WebsiteID            int `json:"website_id"`
	TotalPages           int `json:"total_pages"`
	SuccessfullyAnalyzed int `json:"successfully_analyzed"`
	FailedAnalysis       int `json:"failed_analysis"`
}

// FullAnalysis is the stored analysis text for an already-analyzed page.
type FullAnalysis struct {
	PageID       int     `json:"page_id"`
	URL          string  `json:"url"`
	GrammarScore float64 `json:"grammar_score"`
	FullAnalysis string  `json:"full_analysis"`
	Suggestions  string  `json:"suggestions"`
	AnalyzedAt   string  `json:"analyzed_at"`
}

// TextAnalysis is the result of analyzing an ad-hoc text snippet.
type TextAnalysis struct {
	TextPreview  string  `json:"text_preview"`
	GrammarScore float64 `json:"grammar_score"`
	Analysis     string  `json:"analysis"`
	Success      bool    `json:"success"`
}

// ExportWebsite is the website header inside an export bundle. The backend
// may omit any of these.
type ExportWebsite struct {
	ID        int    `json:"id,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`
	Title     string `json:"title,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UserID    int    `json:"user_id,omitempty"`
}

// ExportPage is one page inside an export bundle, a superset of Page with
// export-only derived fields.
type ExportPage struct {
	ID                     int                     `json:"id"`
	URL                    string                  `json:"url"`
	Title                  string                  `json:"title,omitempty"`
	ScrapedContent         string                  `json:"scraped_content,omitempty"`
	ContentPreview         string                  `json:"content_preview,omitempty"`
	WordCount              *int                    `json:"word_count,omitempty"`
	CharacterCount         int                     `json:"character_count"`
	StatusCode             *int                    `json:"status_code,omitempty"`
	LoadTime               *float64                `json:"load_time,omitempty"`
	CreatedAt              string                  `json:"created_at"`
	GrammarScore           *float64                `json:"grammar_score,omitempty"`
	AnalysisResult         string                  `json:"analysis_result,omitempty"`
	ImprovementSuggestions string                  `json:"improvement_suggestions,omitempty"`
	HasAnalysis            bool                    `json:"has_analysis"`
	AnalysisTimestamp      string                  `json:"analysis_timestamp,omitempty"`
	ContentMetrics         *metrics.ContentMetrics `json:"content_metrics,omitempty"`
}

// AnalysisMetadata describes what an export bundle contains.
type AnalysisMetadata struct {
	TotalPagesExported  int    `json:"total_pages_exported"`
	AnalyzedPagesCount  int    `json:"analyzed_pages_count"`
	ExportFormatVersion string `json:"export_format_version"`
	IncludesFullContent bool   `json:"includes_full_content"`
	IncludesAIAnalysis  bool   `json:"includes_ai_analysis"`
}

// ExportSettings records the options the bundle was generated with.
type ExportSettings struct {
	IncludeFullContent      bool   `json:"include_full_content"`
	IncludeAIAnalysis       bool   `json:"include_ai_analysis"`
	IncludeTechnicalMetrics bool   `json:"include_technical_metrics"`
	Timestamp               string `json:"timestamp"`
}

// ExportBundle is the full analysis snapshot for one website. Field order
// here is the emission order of the serialized artifact; it is assembled at
// export time and never mutated afterwards.
type ExportBundle struct {
	ExportDate       string           `json:"export_date"`
	ExportType       string           `json:"export_type"`
	Website          ExportWebsite    `json:"website"`
	AuditSummary     AuditSummary     `json:"audit_summary"`
	AnalysisMetadata AnalysisMetadata `json:"analysis_metadata"`
	Pages            []ExportPage     `json:"pages"`
	ExportSettings   ExportSettings   `json:"export_settings"`
}

// ReportResponse carries the plain-text audit report.
type ReportResponse struct {
	Report  string         `json:"report"`
	Website *ExportWebsite `json:"website,omitempty"`
}
