// Package cmd implements the product-extractor CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/product-extractor/internal/api/client"
)

const envPrefix = "PEX"

var (
	cfgFile string
	rootCmd = newRootCmd()
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "product-extractor",
		Short: "Extract product metadata from web pages",
		Long: "product-extractor reads product pages and extracts the canonical URL, title,\n" +
			"description, images, price and currency. It runs as an HTTP service or\n" +
			"directly against saved HTML files.",
		SilenceUsage: true,
	}

	root.PersistentFlags().
		StringVar(&cfgFile, "config", "", "server config file (YAML)")
	root.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	root.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("server", root.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", root.PersistentFlags().Lookup("output")))

	root.AddCommand(serveCmd())
	root.AddCommand(extractCmd())
	root.AddCommand(priceCmd())
	root.AddCommand(profilesCmd())
	root.AddCommand(versionCommand())

	return root
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig reads CLI defaults from $HOME/.product-extractor.yaml and
// PEX_* environment variables.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetConfigType("yaml")
	viper.SetConfigName(".product-extractor")

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
