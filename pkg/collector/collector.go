// Package collector loads the raw dashboard entities from the backend:
// single-page websites, crawled websites and the activity log. A load
// never fails as a whole; each branch settles on its own.
package collector

import (
	"sync"

	"github.com/webanalyzer/webaudit/internal/utils"
	"github.com/webanalyzer/webaudit/pkg/wapi"
)

// API is the slice of the backend client the collector needs.
type API interface {
	ListWebsites() ([]wapi.Website, error)
	ListCrawledWebsites() ([]wapi.CrawledWebsite, error)
	GetWebsitePages(websiteID int) ([]wapi.Page, error)
	GetUserLogs(limit int) ([]wapi.ActivityLogEntry, error)
}

// Result is one complete load. A failed branch leaves its slice empty.
type Result struct {
	Single  []wapi.Website
	Crawled []wapi.CrawledWebsite
	Logs    []wapi.ActivityLogEntry
}

// Option is a selectable website row used by the export and issues
// commands.
type Option struct {
	ID        int
	BaseURL   string
	Title     string
	PageCount int
}

type Collector struct {
	api         API
	logLimit    int
	concurrency int
}

func New(api API, logLimit, concurrency int) *Collector {
	if logLimit <= 0 {
		logLimit = 50
	}
	if concurrency <= 0 {
		concurrency = 3
	}
	return &Collector{api: api, logLimit: logLimit, concurrency: concurrency}
}

// LoadAll fetches single-page websites, crawled websites and the activity
// log concurrently. An error on one branch is logged and empties that
// branch only; the siblings keep running and the load still succeeds.
func (c *Collector) LoadAll() Result {
	var res Result
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		websites, err := c.api.ListWebsites()
		if err != nil {
			utils.Log.Warn("could not list websites: ", err)
			return
		}
		c.attachPrimaryPages(websites)
		res.Single = websites
	}()

	go func() {
		defer wg.Done()
		websites, err := c.api.ListCrawledWebsites()
		if err != nil {
			utils.Log.Warn("could not list crawled websites: ", err)
			return
		}
		c.attachCrawledPages(websites)
		res.Crawled = websites
	}()

	go func() {
		defer wg.Done()
		logs, err := c.api.GetUserLogs(c.logLimit)
		if err != nil {
			utils.Log.Warn("could not fetch activity log: ", err)
			return
		}
		res.Logs = logs
	}()

	wg.Wait()
	return res
}

// attachPrimaryPages resolves the primary page of every single-page website
// that arrived without one embedded. Best effort: a failed sub-fetch leaves
// that website pageless instead of failing the collection.
func (c *Collector) attachPrimaryPages(websites []wapi.Website) {
	indexes := make(chan int, c.concurrency)
	var wg sync.WaitGroup
	wg.Add(c.concurrency)

	for i := 0; i < c.concurrency; i++ {
		go func() {
			defer wg.Done()
			for idx := range indexes {
				website := &websites[idx]
				pages, err := c.api.GetWebsitePages(website.ID)
				if err != nil {
					utils.Log.Debug("could not get pages for website ", website.ID, ": ", err)
					continue
				}
				if len(pages) > 0 {
					website.Page = &pages[0]
				}
			}
		}()
	}

	for i := range websites {
		if websites[i].Page == nil {
			indexes <- i
		}
	}
	close(indexes)
	wg.Wait()
}

// attachCrawledPages resolves the pages of every crawled website that
// arrived without them embedded. Same best-effort contract as
// attachPrimaryPages.
func (c *Collector) attachCrawledPages(websites []wapi.CrawledWebsite) {
	indexes := make(chan int, c.concurrency)
	var wg sync.WaitGroup
	wg.Add(c.concurrency)

	for i := 0; i < c.concurrency; i++ {
		go func() {
			defer wg.Done()
			for idx := range indexes {
				website := &websites[idx]
				pages, err := c.api.GetWebsitePages(website.ID)
				if err != nil {
					utils.Log.Debug("could not get pages for website ", website.ID, ": ", err)
					continue
				}
				website.Pages = pages
			}
		}()
	}

	for i := range websites {
		if len(websites[i].Pages) == 0 {
			indexes <- i
		}
	}
	close(indexes)
	wg.Wait()
}

// Options flattens both website shapes into selectable rows, single-page
// websites first, preserving fetch order.
func (r Result) Options() []Option {
	options := make([]Option, 0, len(r.Single)+len(r.Crawled))
	for _, w := range r.Single {
		count := 0
		if w.Page != nil {
			count = 1
		}
		options = append(options, Option{ID: w.ID, BaseURL: w.BaseURL, Title: w.Title, PageCount: count})
	}
	for _, w := range r.Crawled {
		count := w.PageCount
		if count == 0 {
			count = len(w.Pages)
		}
		options = append(options, Option{ID: w.ID, BaseURL: w.BaseURL, Title: w.Title, PageCount: count})
	}
	return options
}

// WebsiteIDs returns every collected website id, single-page first.
func (r Result) WebsiteIDs() []int {
	ids := make([]int, 0, len(r.Single)+len(r.Crawled))
	for _, w := range r.Single {
		ids = append(ids, w.ID)
	}
	for _, w := range r.Crawled {
		ids = append(ids, w.ID)
	}
	return ids
}
