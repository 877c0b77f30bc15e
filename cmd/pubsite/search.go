package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search QUERY...",
	Short: "Search indexed publications",
	Long: `Full-text search over titles, authors, and venues in the search index.

Examples:
  pubsite search phylogenetics
  pubsite search "graph algorithms"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenIndex(cfg.IndexFile)
	defer db.Close()

	pubs, err := db.Search(strings.Join(args, " "))
	if err != nil {
		return err
	}

	printPubs(pubs)
	return nil
}
