// Package export downloads a website's analysis as files: a structured
// JSON bundle and a human-readable text report.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/webanalyzer/webaudit/pkg/metrics"
	"github.com/webanalyzer/webaudit/pkg/wapi"
)

// ErrNoWebsiteSelected is returned before any network call when the caller
// passed no website id.
var ErrNoWebsiteSelected = errors.New("please select a website to export")

// API is the slice of the backend client the exporter needs.
type API interface {
	ExportWebsiteJSON(websiteID int) (*wapi.ExportBundle, error)
	ExportWebsiteReport(websiteID int) (*wapi.ReportResponse, error)
}

type Exporter struct {
	api API
	dir string
	now func() time.Time
}

func New(api API, dir string) *Exporter {
	if dir == "" {
		dir = "."
	}
	return &Exporter{api: api, dir: dir, now: time.Now}
}

// ExportJSON downloads the detailed analysis bundle for websiteID and
// writes it as detailed_analysis_{host}_{date}.json. Pages carrying
// scraped content but no content metrics get them computed locally, so the
// artifact is complete even against older backends.
func (e *Exporter) ExportJSON(websiteID int) (string, *wapi.ExportBundle, error) {
	if websiteID == 0 {
		return "", nil, ErrNoWebsiteSelected
	}

	bundle, err := e.api.ExportWebsiteJSON(websiteID)
	if err != nil {
		return "", nil, exportError("export data", err)
	}

	for i := range bundle.Pages {
		page := &bundle.Pages[i]
		if page.ContentMetrics == nil && page.ScrapedContent != "" {
			computed := metrics.Compute(page.ScrapedContent)
			page.ContentMetrics = &computed
		}
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", nil, err
	}

	path := filepath.Join(e.dir, e.filename("detailed_analysis", bundle.Website.BaseURL, websiteID, "json"))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, bundle, nil
}

// ExportReport downloads the plain-text audit report for websiteID and
// writes it as comprehensive_report_{host}_{date}.txt.
func (e *Exporter) ExportReport(websiteID int) (string, *wapi.ReportResponse, error) {
	if websiteID == 0 {
		return "", nil, ErrNoWebsiteSelected
	}

	report, err := e.api.ExportWebsiteReport(websiteID)
	if err != nil {
		return "", nil, exportError("export report", err)
	}

	baseURL := ""
	if report.Website != nil {
		baseURL = report.Website.BaseURL
	}
	path := filepath.Join(e.dir, e.filename("comprehensive_report", baseURL, websiteID, "txt"))
	if err := os.WriteFile(path, []byte(report.Report), 0644); err != nil {
		return "", nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, report, nil
}

// filename builds {prefix}_{host}_{ISO date}.{ext}.
func (e *Exporter) filename(prefix, baseURL string, websiteID int, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", prefix, websiteName(baseURL, websiteID), e.now().Format("2006-01-02"), ext)
}

// websiteName strips the scheme and path from baseURL, falling back to
// website_{id} when the URL is unusable.
func websiteName(baseURL string, websiteID int) string {
	host := strings.TrimPrefix(strings.TrimPrefix(baseURL, "https://"), "http://")
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	if host == "" {
		return fmt.Sprintf("website_%d", websiteID)
	}
	return host
}

// exportError adds a remediation hint when the backend looks unreachable:
// either the transport failed outright or the endpoint is missing (404).
func exportError(what string, err error) error {
	var apiErr *wapi.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("failed to %s: %v (is the backend running and reachable?)", what, err)
	}
	return fmt.Errorf("failed to %s: %v", what, err)
}
