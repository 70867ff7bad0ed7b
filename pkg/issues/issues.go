// Package issues builds the per-website broken-link / large-image index.
package issues

import (
	"sync"

	"github.com/webanalyzer/webaudit/internal/utils"
	"github.com/webanalyzer/webaudit/pkg/wapi"
)

// Fetcher fetches one website's issue report.
type Fetcher interface {
	GetWebsiteIssues(websiteID int) (*wapi.WebsiteIssues, error)
}

// Index maps website id to its issue summary. A website whose fetch failed
// is absent from the index; callers must treat absence as "unknown", never
// as "no issues".
type Index map[int]wapi.IssueSummary

// Load fans out one request per website id, with at most concurrency in
// flight. A failed fetch is logged and leaves that id out of the index; it
// never aborts or blocks the remaining fetches.
func Load(fetcher Fetcher, websiteIDs []int, concurrency int) Index {
	if concurrency <= 0 {
		concurrency = 3
	}

	index := make(Index, len(websiteIDs))
	var mu sync.Mutex
	ids := make(chan int, concurrency)
	var wg sync.WaitGroup
	wg.Add(concurrency)

	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			for id := range ids {
				report, err := fetcher.GetWebsiteIssues(id)
				if err != nil {
					utils.Log.Warn("could not load issues for website ", id, ": ", err)
					continue
				}
				mu.Lock()
				index[id] = report.Summary
				mu.Unlock()
			}
		}()
	}

	for _, id := range websiteIDs {
		ids <- id
	}
	close(ids)
	wg.Wait()

	return index
}

// TotalIssues sums broken links and large images over every present entry.
// Totals reflect only the websites whose fetch succeeded.
func (idx Index) TotalIssues() (brokenLinks, largeImages int) {
	for _, summary := range idx {
		brokenLinks += summary.TotalBrokenLinks
		largeImages += summary.TotalLargeImages
	}
	return brokenLinks, largeImages
}
