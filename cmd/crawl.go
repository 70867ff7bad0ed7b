package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/webanalyzer/webaudit/internal/utils"
)

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl [URL]",
	Short: "Trigger a recursive crawl",
	Long:  "Asks the backend to recursively crawl a website up to a page limit",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		maxPages, _ := cmd.Flags().GetInt("max-pages")

		website, err := newClient().CrawlWebsite(args[0], maxPages)
		if err != nil {
			utils.Log.Fatal("crawl failed: ", err)
		}
		fmt.Printf("Crawled %s: website [%d] with %d page(s)\n", website.BaseURL, website.ID, website.PageCount)
	},
}

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape [URL]",
	Short: "Scrape a single page",
	Long:  "Asks the backend to scrape exactly one URL into a single-page website",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		website, err := newClient().ScrapeWebsite(args[0])
		if err != nil {
			utils.Log.Fatal("scrape failed: ", err)
		}
		fmt.Printf("Scraped %s: website [%d]\n", website.BaseURL, website.ID)
	},
}

func init() {
	rootCmd.AddCommand(crawlCmd)
	rootCmd.AddCommand(scrapeCmd)

	crawlCmd.Flags().IntP("max-pages", "m", 10, "Maximum number of pages to crawl")
}
