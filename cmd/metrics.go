package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/webanalyzer/webaudit/internal/utils"
	"github.com/webanalyzer/webaudit/pkg/metrics"
)

// metricsCmd represents the metrics command
var metricsCmd = &cobra.Command{
	Use:   "metrics [websiteID]",
	Short: "Local content metrics for a website's pages",
	Long: `Computes readability, keyword density and content categories from each
page's scraped text. The metrics are simple deterministic heuristics and
are computed fully offline from already-fetched content.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		websiteID := parseID(args[0])
		pages, err := newClient().GetWebsitePages(websiteID)
		if err != nil {
			utils.Log.Fatal("could not get pages for website ", websiteID, ": ", err)
		}

		for _, page := range pages {
			if page.ScrapedContent == "" {
				fmt.Printf("%s: no scraped content\n", page.URL)
				continue
			}
			m := metrics.Compute(page.ScrapedContent)
			fmt.Printf("%s\n", page.URL)
			fmt.Printf("  Readability: %d/100\n", m.ReadabilityScore)
			fmt.Printf("  Categories:  %s\n", strings.Join(m.Categories, ", "))
			if len(m.KeywordDensity) > 0 {
				keywords := make([]string, 0, len(m.KeywordDensity))
				for keyword := range m.KeywordDensity {
					keywords = append(keywords, keyword)
				}
				sort.Strings(keywords)
				parts := make([]string, 0, len(keywords))
				for _, keyword := range keywords {
					parts = append(parts, fmt.Sprintf("%s %.2f%%", keyword, m.KeywordDensity[keyword]))
				}
				fmt.Printf("  Keywords:    %s\n", strings.Join(parts, ", "))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}
