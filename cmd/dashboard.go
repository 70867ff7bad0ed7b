package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/webanalyzer/webaudit/internal/utils"
	"github.com/webanalyzer/webaudit/pkg/collector"
	"github.com/webanalyzer/webaudit/pkg/dashboard"
	"github.com/webanalyzer/webaudit/pkg/issues"
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Dashboard statistics",
	Long:  "Loads dashboard statistics from the backend, recomputing them locally when the authoritative endpoint is unavailable",
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")

		client := newClient()
		col := collector.New(client, viper.GetInt("logs.limit"), concurrency())
		res := col.LoadAll()

		var authoritative *dashboard.Stats
		raw, ok, err := client.GetDashboard()
		if err != nil {
			utils.Log.Warn("authoritative dashboard unavailable, computing locally: ", err)
		} else if ok {
			stats, perr := dashboard.FromAuthoritative(raw)
			if perr != nil {
				utils.Log.Warn("could not parse dashboard payload, computing locally: ", perr)
			} else {
				authoritative = stats
			}
		}

		stats := dashboard.Aggregate(authoritative, res.Single, res.Crawled, res.Logs, time.Now())

		if asJSON {
			out, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				utils.Log.Fatal("could not encode dashboard stats: ", err)
			}
			fmt.Println(string(out))
			return
		}

		// The issue fan-out only feeds the printed summary.
		index := issues.Load(client, res.WebsiteIDs(), concurrency())
		printStats(stats, index)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().Bool("json", false, "Print the dashboard payload as JSON")
}

func printStats(stats dashboard.Stats, index issues.Index) {
	o := stats.Overview
	fmt.Println("OVERVIEW")
	fmt.Printf("  Websites: %d | Pages: %d | Analyzed: %d | Pending: %d | Avg score: %.2f\n",
		o.TotalWebsites, o.TotalPages, o.AnalyzedPages, o.PendingAnalysis, o.AverageScore)
	fmt.Printf("  Score distribution: excellent (80-100): %d, good (60-79): %d, needs work (0-59): %d\n",
		o.ScoreDistribution.Excellent, o.ScoreDistribution.Good, o.ScoreDistribution.NeedsImprovement)

	brokenLinks, largeImages := index.TotalIssues()
	fmt.Println("\nISSUES")
	fmt.Printf("  Broken links: %d | Large images: %d (across %d website(s) with known issue data)\n",
		brokenLinks, largeImages, len(index))

	if len(stats.TopPerformingPages) > 0 {
		fmt.Println("\nTOP PERFORMING PAGES")
		for _, p := range stats.TopPerformingPages {
			fmt.Printf("  %6.2f  %s\n", p.Score, p.URL)
		}
	}

	if len(stats.PagesNeedingImprovement) > 0 {
		fmt.Println("\nPAGES NEEDING IMPROVEMENT")
		for _, p := range stats.PagesNeedingImprovement {
			fmt.Printf("  %6.2f  %s\n", p.Score, p.URL)
		}
	}

	if len(stats.Websites) > 0 {
		fmt.Println("\nWEBSITES")
		for _, w := range stats.Websites {
			score := "n/a"
			if w.AverageScore != nil {
				score = fmt.Sprintf("%.2f", *w.AverageScore)
			}
			fmt.Printf("  [%d] %s | %d page(s) | score %s | %s\n", w.ID, w.BaseURL, w.TotalPages, score, w.Status)
		}
	}

	if len(stats.RecentActivity) > 0 {
		fmt.Println("\nRECENT ACTIVITY")
		for _, entry := range stats.RecentActivity {
			fmt.Printf("  [%s] %s: %s (%s)\n", entry.Level, entry.Action, entry.Message, entry.Timestamp)
		}
	}
}
