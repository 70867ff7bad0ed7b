package wapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	_, err := New(server.URL, "secret").ListWebsites()
	require.NoError(t, err)
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	_, err := New(server.URL, "").ListWebsites()
	require.NoError(t, err)
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scraper/websites", r.URL.Path)
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	_, err := New(server.URL+"/", "").ListWebsites()
	require.NoError(t, err)
}

func TestClientSurfacesDetailError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"detail": "Website not found"}`)
	}))
	defer server.Close()

	_, err := New(server.URL, "t").GetWebsite(99)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Website not found", apiErr.Detail)
}

func TestClientDefaultErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := New(server.URL, "t").GetWebsite(1)
	require.Error(t, err)
	assert.Equal(t, "HTTP error! status: 400", err.Error())
}

func TestCrawlWebsiteBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/crawl/website", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://example.com", body["base_url"])
		assert.Equal(t, float64(10), body["max_pages"])

		fmt.Fprint(w, `{"id": 7, "base_url": "https://example.com", "page_count": 0}`)
	}))
	defer server.Close()

	website, err := New(server.URL, "t").CrawlWebsite("https://example.com", 10)
	require.NoError(t, err)
	assert.Equal(t, 7, website.ID)
}

func TestScrapeWebsiteEscapesURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://example.com/a b", r.URL.Query().Get("url"))
		fmt.Fprint(w, `{"id": 1, "base_url": "https://example.com/a b"}`)
	}))
	defer server.Close()

	_, err := New(server.URL, "t").ScrapeWebsite("https://example.com/a b")
	require.NoError(t, err)
}

func TestGetWebsitePagesNullScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id": 1, "url": "https://example.com/", "grammar_score": 85.5},
			{"id": 2, "url": "https://example.com/new", "grammar_score": null}
		]`)
	}))
	defer server.Close()

	pages, err := New(server.URL, "t").GetWebsitePages(4)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	require.NotNil(t, pages[0].GrammarScore)
	assert.Equal(t, 85.5, *pages[0].GrammarScore)
	// null and absent both mean "not analyzed yet", never zero
	assert.Nil(t, pages[1].GrammarScore)
}

func TestGetWebsiteIssues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/issues/website/3/all-issues", r.URL.Path)
		fmt.Fprint(w, `{
			"summary": {"total_broken_links": 2, "total_large_images": 1, "pages_with_broken_links": 1, "pages_with_large_images": 1},
			"broken_links": [{"url": "https://dead.example", "status_code": 404, "page_url": "https://example.com/"}],
			"large_images": [{"url": "https://example.com/hero.png", "size_kb": 1024.5, "is_banner": true}]
		}`)
	}))
	defer server.Close()

	issues, err := New(server.URL, "t").GetWebsiteIssues(3)
	require.NoError(t, err)
	assert.Equal(t, 2, issues.Summary.TotalBrokenLinks)
	assert.Equal(t, 1, issues.Summary.TotalLargeImages)
	require.Len(t, issues.BrokenLinks, 1)
	assert.Equal(t, 404, issues.BrokenLinks[0].StatusCode)
	require.Len(t, issues.LargeImages, 1)
	assert.True(t, issues.LargeImages[0].IsBanner)
}

func TestGetWebsiteIssuesMissingSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"broken_links": [], "large_images": []}`)
	}))
	defer server.Close()

	issues, err := New(server.URL, "t").GetWebsiteIssues(3)
	require.NoError(t, err)
	assert.Equal(t, 0, issues.Summary.TotalBrokenLinks)
	assert.Equal(t, 0, issues.Summary.TotalLargeImages)
}

func TestGetDashboard(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantOK bool
	}{
		{name: "success with data", body: `{"success": true, "data": {"overview": {}}}`, wantOK: true},
		{name: "success flag false", body: `{"success": false, "data": {"overview": {}}}`, wantOK: false},
		{name: "null data", body: `{"success": true, "data": null}`, wantOK: false},
		{name: "missing data", body: `{"success": true}`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			data, ok, err := New(server.URL, "t").GetDashboard()
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.NotEmpty(t, data)
			}
		})
	}
}

func TestGetUserLogs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"success": true, "logs": [{"id": 1, "action": "page_scraped", "level": "info"}]}`)
	}))
	defer server.Close()

	logs, err := New(server.URL, "t").GetUserLogs(25)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "page_scraped", logs[0].Action)
}

func TestGetUserLogsFailureFlag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": false, "logs": []}`)
	}))
	defer server.Close()

	_, err := New(server.URL, "t").GetUserLogs(10)
	assert.Error(t, err)
}

func TestClientRetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	_, err := New(server.URL, "t").ListWebsites()
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}
