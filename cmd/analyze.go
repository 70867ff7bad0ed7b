package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/webanalyzer/webaudit/internal/utils"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "AI grammar analysis",
	Long:  "Triggers grammar analysis on a page or a whole website, or shows a stored analysis",
}

var analyzePageCmd = &cobra.Command{
	Use:   "page [pageID]",
	Short: "Analyze one page",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pageID := parseID(args[0])
		analysis, err := newClient().AnalyzePage(pageID)
		if err != nil {
			utils.Log.Fatal("could not analyze page ", pageID, ": ", err)
		}
		fmt.Printf("Page %d scored %.2f/100\n", analysis.PageID, analysis.GrammarScore)
		if analysis.AnalysisPreview != "" {
			fmt.Println(analysis.AnalysisPreview)
		}
	},
}

var analyzeWebsiteCmd = &cobra.Command{
	Use:   "website [websiteID]",
	Short: "Analyze every page of a website",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		websiteID := parseID(args[0])
		analysis, err := newClient().AnalyzeWebsite(websiteID)
		if err != nil {
			utils.Log.Fatal("could not analyze website ", websiteID, ": ", err)
		}
		fmt.Printf("Website %d: %d/%d page(s) analyzed, %d failed\n",
			analysis.WebsiteID, analysis.SuccessfullyAnalyzed, analysis.TotalPages, analysis.FailedAnalysis)
	},
}

var analyzeShowCmd = &cobra.Command{
	Use:   "show [pageID]",
	Short: "Show the full stored analysis for a page",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pageID := parseID(args[0])
		analysis, err := newClient().GetFullAnalysis(pageID)
		if err != nil {
			utils.Log.Fatal("could not fetch analysis for page ", pageID, ": ", err)
		}
		fmt.Printf("%s (page %d)\nScore: %.2f/100, analyzed at %s\n\n%s\n",
			analysis.URL, analysis.PageID, analysis.GrammarScore, analysis.AnalyzedAt, analysis.FullAnalysis)
		if analysis.Suggestions != "" {
			fmt.Printf("\nSuggestions:\n%s\n", analysis.Suggestions)
		}
	},
}

var analyzeTextCmd = &cobra.Command{
	Use:   "text [text]",
	Short: "Analyze an ad-hoc text snippet",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analysis, err := newClient().AnalyzeText(strings.Join(args, " "))
		if err != nil {
			utils.Log.Fatal("could not analyze text: ", err)
		}
		fmt.Printf("Scored %.2f/100\n", analysis.GrammarScore)
		if analysis.Analysis != "" {
			fmt.Println(analysis.Analysis)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.AddCommand(analyzePageCmd)
	analyzeCmd.AddCommand(analyzeWebsiteCmd)
	analyzeCmd.AddCommand(analyzeShowCmd)
	analyzeCmd.AddCommand(analyzeTextCmd)
}

func parseID(arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		utils.Log.Fatal("invalid id: ", arg)
	}
	return id
}
