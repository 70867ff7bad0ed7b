package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/webanalyzer/webaudit/pkg/collector"
)

// websitesCmd represents the websites command
var websitesCmd = &cobra.Command{
	Use:   "websites",
	Short: "List your websites",
	Long:  "Lists every scraped and crawled website with its id and page count",
	Run: func(cmd *cobra.Command, args []string) {
		col := collector.New(newClient(), viper.GetInt("logs.limit"), concurrency())
		res := col.LoadAll()

		options := res.Options()
		if len(options) == 0 {
			fmt.Println("No websites found. Scrape or crawl one first.")
			return
		}
		for _, option := range options {
			title := option.Title
			if title == "" {
				title = "no title"
			}
			fmt.Printf("[%d] %s (%d page(s)) - %s\n", option.ID, option.BaseURL, option.PageCount, title)
		}
	},
}

func init() {
	rootCmd.AddCommand(websitesCmd)
}
