package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/webanalyzer/webaudit/internal/utils"
	"github.com/webanalyzer/webaudit/pkg/collector"
	"github.com/webanalyzer/webaudit/pkg/issues"
)

// issuesCmd represents the issues command
var issuesCmd = &cobra.Command{
	Use:   "issues [websiteID]",
	Short: "Broken links and large images",
	Long: `Without arguments, loads the issue summary of every website concurrently
and prints per-website counts plus the global totals. With a website id,
prints that website's detailed broken-link and large-image report.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()

		if len(args) == 1 {
			printWebsiteIssues(parseID(args[0]))
			return
		}

		col := collector.New(client, viper.GetInt("logs.limit"), concurrency())
		res := col.LoadAll()
		index := issues.Load(client, res.WebsiteIDs(), concurrency())

		for _, option := range res.Options() {
			summary, known := index[option.ID]
			if !known {
				// Absent means the fetch failed: unknown, not zero.
				fmt.Printf("[%d] %s: issue data unavailable\n", option.ID, option.BaseURL)
				continue
			}
			fmt.Printf("[%d] %s: %d broken link(s) on %d page(s), %d large image(s) on %d page(s)\n",
				option.ID, option.BaseURL,
				summary.TotalBrokenLinks, summary.PagesWithBrokenLinks,
				summary.TotalLargeImages, summary.PagesWithLargeImages)
		}

		brokenLinks, largeImages := index.TotalIssues()
		fmt.Printf("\nTotal: %d broken link(s), %d large image(s)\n", brokenLinks, largeImages)
	},
}

func printWebsiteIssues(websiteID int) {
	report, err := newClient().GetWebsiteIssues(websiteID)
	if err != nil {
		utils.Log.Fatal("could not load issues for website ", websiteID, ": ", err)
	}

	s := report.Summary
	fmt.Printf("Website %d: %d broken link(s), %d large image(s)\n\n", websiteID, s.TotalBrokenLinks, s.TotalLargeImages)

	if len(report.BrokenLinks) > 0 {
		fmt.Println("BROKEN LINKS")
		for _, link := range report.BrokenLinks {
			status := fmt.Sprintf("%d", link.StatusCode)
			if link.StatusCode == 0 {
				status = "connection error"
			}
			fmt.Printf("  [%s] %s (found on %s)\n", status, link.URL, link.PageURL)
		}
	}

	if len(report.LargeImages) > 0 {
		fmt.Println("LARGE IMAGES")
		for _, image := range report.LargeImages {
			kind := "regular"
			if image.IsBanner {
				kind = "banner"
			}
			fmt.Printf("  %.1f KB (%s) %s (found on %s)\n", image.SizeKB, kind, image.URL, image.PageURL)
		}
	}
}

func init() {
	rootCmd.AddCommand(issuesCmd)
}
