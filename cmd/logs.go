package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/webanalyzer/webaudit/internal/utils"
)

// logsCmd represents the logs command
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Activity log",
	Long:  "Lists your recent backend activity log entries, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = viper.GetInt("logs.limit")
		}

		entries, err := newClient().GetUserLogs(limit)
		if err != nil {
			utils.Log.Fatal("could not fetch activity log: ", err)
		}
		if len(entries) == 0 {
			fmt.Println("No activity recorded yet.")
			return
		}
		for _, entry := range entries {
			fmt.Printf("[%s] %s %s: %s\n", entry.Level, entry.Timestamp, entry.Action, utils.Truncate(entry.Message, 120))
		}
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntP("limit", "n", 0, "Maximum number of entries to fetch (default from config)")
}
