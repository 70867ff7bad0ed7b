// Package wapi is the typed client for the WebAnalyzer backend REST API.
// All authenticated requests carry the bearer token injected at client
// construction; nothing in this package reads ambient credential state.
package wapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

// APIError carries the backend's {detail} message for a non-2xx response.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return e.Detail
}

type Client struct {
	BaseURL string
	Token   string
	http    *retryablehttp.Client
}

func New(baseURL, token string) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = log.New(io.Discard, "", 0)
	retryClient.RetryMax = 3
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Token:   token,
		http:    retryClient,
	}
}

func (c *Client) do(method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := retryablehttp.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := gjson.GetBytes(data, "detail").Str
		if detail == "" {
			detail = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: detail}
	}

	return data, nil
}

func (c *Client) get(path string, out interface{}) error {
	data, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *Client) post(path string, body, out interface{}) error {
	data, err := c.do(http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// ListWebsites returns the user's single-page website records.
func (c *Client) ListWebsites() ([]Website, error) {
	var websites []Website
	if err := c.get("/scraper/websites", &websites); err != nil {
		return nil, err
	}
	return websites, nil
}

// GetWebsite returns one single-page website record with its page embedded.
func (c *Client) GetWebsite(websiteID int) (*Website, error) {
	var website Website
	if err := c.get("/scraper/websites/"+strconv.Itoa(websiteID), &website); err != nil {
		return nil, err
	}
	return &website, nil
}

// ListCrawledWebsites returns the user's crawled website records.
func (c *Client) ListCrawledWebsites() ([]CrawledWebsite, error) {
	var websites []CrawledWebsite
	if err := c.get("/crawl/websites", &websites); err != nil {
		return nil, err
	}
	return websites, nil
}

// GetWebsitePages returns the pages fetched for a website, in backend order.
func (c *Client) GetWebsitePages(websiteID int) ([]Page, error) {
	var pages []Page
	if err := c.get("/crawl/websites/"+strconv.Itoa(websiteID)+"/pages", &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// ScrapeWebsite scrapes a single URL into a new single-page website.
func (c *Client) ScrapeWebsite(target string) (*Website, error) {
	var website Website
	if err := c.post("/scraper/scrape?url="+url.QueryEscape(target), nil, &website); err != nil {
		return nil, err
	}
	return &website, nil
}

// CrawlWebsite triggers a recursive crawl of baseURL up to maxPages pages.
func (c *Client) CrawlWebsite(baseURL string, maxPages int) (*CrawledWebsite, error) {
	body := map[string]interface{}{
		"base_url":  baseURL,
		"max_pages": maxPages,
	}
	var website CrawledWebsite
	if err := c.post("/crawl/website", body, &website); err != nil {
		return nil, err
	}
	return &website, nil
}

// AnalyzePage runs grammar analysis on one page.
func (c *Client) AnalyzePage(pageID int) (*PageAnalysis, error) {
	var analysis PageAnalysis
	if err := c.post("/ai/analyze/page/"+strconv.Itoa(pageID), nil, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// AnalyzeWebsite runs grammar analysis on every page of a website.
func (c *Client) AnalyzeWebsite(websiteID int) (*WebsiteAnalysis, error) {
	var analysis WebsiteAnalysis
	if err := c.post("/ai/analyze/website/"+strconv.Itoa(websiteID), nil, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// AnalyzeText runs grammar analysis on an ad-hoc text snippet.
func (c *Client) AnalyzeText(text string) (*TextAnalysis, error) {
	var analysis TextAnalysis
	if err := c.post("/ai/analyze/text", map[string]string{"text": text}, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// GetFullAnalysis reads the stored analysis text for an analyzed page.
func (c *Client) GetFullAnalysis(pageID int) (*FullAnalysis, error) {
	var analysis FullAnalysis
	if err := c.get("/ai/analysis/full/"+strconv.Itoa(pageID), &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// GetAuditSummary reads the stored audit report for a website.
func (c *Client) GetAuditSummary(websiteID int) (*AuditSummary, error) {
	var summary AuditSummary
	if err := c.get("/analysis/audit/"+strconv.Itoa(websiteID), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// RegenerateAudit recomputes and returns the audit report for a website.
func (c *Client) RegenerateAudit(websiteID int) (*AuditSummary, error) {
	var summary AuditSummary
	if err := c.post("/analysis/audit/"+strconv.Itoa(websiteID)+"/regenerate", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetWebsiteIssues returns the broken-link / large-image report for one
// website. The summary block is optional in the response; missing counters
// read as zero.
func (c *Client) GetWebsiteIssues(websiteID int) (*WebsiteIssues, error) {
	data, err := c.do(http.MethodGet, "/issues/website/"+strconv.Itoa(websiteID)+"/all-issues", nil)
	if err != nil {
		return nil, err
	}

	issues := &WebsiteIssues{
		Summary: IssueSummary{
			TotalBrokenLinks:     int(gjson.GetBytes(data, "summary.total_broken_links").Int()),
			TotalLargeImages:     int(gjson.GetBytes(data, "summary.total_large_images").Int()),
			PagesWithBrokenLinks: int(gjson.GetBytes(data, "summary.pages_with_broken_links").Int()),
			PagesWithLargeImages: int(gjson.GetBytes(data, "summary.pages_with_large_images").Int()),
		},
	}
	if raw := gjson.GetBytes(data, "broken_links").Raw; raw != "" {
		if err := json.Unmarshal([]byte(raw), &issues.BrokenLinks); err != nil {
			return nil, err
		}
	}
	if raw := gjson.GetBytes(data, "large_images").Raw; raw != "" {
		if err := json.Unmarshal([]byte(raw), &issues.LargeImages); err != nil {
			return nil, err
		}
	}
	return issues, nil
}

// GetDashboard reads the authoritative dashboard payload. ok reports
// whether the backend flagged success and returned a populated payload;
// when false the caller must compute the dashboard locally.
func (c *Client) GetDashboard() (data json.RawMessage, ok bool, err error) {
	body, err := c.do(http.MethodGet, "/dashboard/", nil)
	if err != nil {
		return nil, false, err
	}
	if !gjson.GetBytes(body, "success").Bool() {
		return nil, false, nil
	}
	raw := gjson.GetBytes(body, "data")
	if !raw.Exists() || raw.Type == gjson.Null {
		return nil, false, nil
	}
	return json.RawMessage(raw.Raw), true, nil
}

// GetUserLogs returns up to limit activity log entries, most recent first.
func (c *Client) GetUserLogs(limit int) ([]ActivityLogEntry, error) {
	data, err := c.do(http.MethodGet, "/logs/my-logs?limit="+strconv.Itoa(limit), nil)
	if err != nil {
		return nil, err
	}
	if !gjson.GetBytes(data, "success").Bool() {
		return nil, fmt.Errorf("log endpoint reported failure")
	}
	var parsed struct {
		Logs []ActivityLogEntry `json:"logs"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}
	return parsed.Logs, nil
}

// ExportWebsiteJSON downloads the detailed analysis bundle for a website.
func (c *Client) ExportWebsiteJSON(websiteID int) (*ExportBundle, error) {
	var bundle ExportBundle
	if err := c.get("/export/website/"+strconv.Itoa(websiteID)+"/json", &bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// ExportWebsiteReport downloads the plain-text audit report for a website.
func (c *Client) ExportWebsiteReport(websiteID int) (*ReportResponse, error) {
	var report ReportResponse
	if err := c.get("/export/website/"+strconv.Itoa(websiteID)+"/report", &report); err != nil {
		return nil, err
	}
	return &report, nil
}
