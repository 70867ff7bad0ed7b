package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/webanalyzer/webaudit/internal/utils"
	"github.com/webanalyzer/webaudit/pkg/wapi"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit [websiteID]",
	Short: "Per-website audit summary",
	Long:  "Fetches (or regenerates) the backend's audit summary for a website",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		regenerate, _ := cmd.Flags().GetBool("regenerate")
		websiteID := parseID(args[0])

		client := newClient()
		var summary *wapi.AuditSummary
		var err error
		if regenerate {
			summary, err = client.RegenerateAudit(websiteID)
		} else {
			summary, err = client.GetAuditSummary(websiteID)
		}
		if err != nil {
			utils.Log.Fatal("could not fetch audit for website ", websiteID, ": ", err)
		}

		fmt.Printf("Audit for website %d\n", summary.WebsiteID)
		fmt.Printf("  Pages: %d | Broken links: %d | Image issues: %d\n",
			summary.TotalPages, summary.BrokenLinksCount, summary.ImageIssuesCount)
		fmt.Printf("  Grammar: %s | Health: %s | SEO: %s | Accessibility: %s\n",
			formatScore(summary.AverageGrammarScore), formatScore(summary.OverallHealthScore),
			formatScore(summary.SEOScore), formatScore(summary.AccessibilityScore))
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().BoolP("regenerate", "r", false, "Recompute the audit before printing it")
}

func formatScore(score *float64) string {
	if score == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *score)
}
