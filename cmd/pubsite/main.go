// Package main provides the pubsite CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pubsite/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

// configPath is the --config persistent flag value.
var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pubsite",
	Short: "Generate a publications page from a BibTeX database",
	Long: `pubsite turns a BibTeX database into a formatted HTML publication
listing for a static personal or lab website.

Entries are grouped by year (newest first) with descending numbering,
LaTeX accents are converted to Unicode, and the generated fragment is
substituted into an HTML template at a placeholder token.

Configuration is read from pubsite.yml in the working directory; every
path can also be overridden with flags or PUBSITE_* environment
variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.ConfigFile, "Path to the config file")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// exitWithError writes an error message to stderr and exits.
func exitWithError(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(code)
}
