package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/webanalyzer/webaudit/internal/utils"
	"github.com/webanalyzer/webaudit/pkg/wapi"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "webaudit",
	Short: "A dashboard and reporting client for the WebAnalyzer platform.",
	Long: `webaudit talks to a WebAnalyzer backend and turns your scraped and crawled
websites into dashboard statistics, issue summaries and exportable audit
reports, right from your command line.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.webaudit.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("server", "s", "", "WebAnalyzer backend URL (overrides config)")
	rootCmd.PersistentFlags().StringP("token", "t", "", "Bearer token for authenticated requests (overrides config)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".webaudit")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.webaudit.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("server.url", "http://localhost:8000")
	viper.SetDefault("server.token", "")
	viper.SetDefault("logs.limit", 50)
	viper.SetDefault("export.dir", ".")
	viper.SetDefault("concurrency", 3)

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// newClient builds the backend client from flags and config. The bearer
// token is resolved here and injected; nothing below cmd/ reads config
// state.
func newClient() *wapi.Client {
	server, _ := rootCmd.PersistentFlags().GetString("server")
	if server == "" {
		server = viper.GetString("server.url")
	}
	token, _ := rootCmd.PersistentFlags().GetString("token")
	if token == "" {
		token = viper.GetString("server.token")
	}
	return wapi.New(server, token)
}

func concurrency() int {
	return viper.GetInt("concurrency")
}
