package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/webanalyzer/webaudit/internal/utils"
	"github.com/webanalyzer/webaudit/pkg/export"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export website analysis artifacts",
	Long:  "Downloads a website's analysis as a detailed JSON bundle or a comprehensive text report",
}

var exportJSONCmd = &cobra.Command{
	Use:   "json [websiteID]",
	Short: "Export the detailed JSON bundle",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exporter := newExporter(cmd)
		path, bundle, err := exporter.ExportJSON(parseID(args[0]))
		if err != nil {
			utils.Log.Fatal(err)
		}
		fmt.Printf("Wrote %s (%d page(s), %d analyzed)\n",
			path, bundle.AnalysisMetadata.TotalPagesExported, bundle.AnalysisMetadata.AnalyzedPagesCount)
	},
}

var exportReportCmd = &cobra.Command{
	Use:   "report [websiteID]",
	Short: "Export the comprehensive text report",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exporter := newExporter(cmd)
		path, _, err := exporter.ExportReport(parseID(args[0]))
		if err != nil {
			utils.Log.Fatal(err)
		}
		fmt.Printf("Wrote %s\n", path)
	},
}

func newExporter(cmd *cobra.Command) *export.Exporter {
	dir, _ := cmd.Flags().GetString("output-dir")
	if dir == "" {
		dir = viper.GetString("export.dir")
	}
	return export.New(newClient(), dir)
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportJSONCmd)
	exportCmd.AddCommand(exportReportCmd)

	exportCmd.PersistentFlags().StringP("output-dir", "o", "", "Directory to write exported files to (default from config)")
}
