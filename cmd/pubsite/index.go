package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pubsite/internal/bibtex"
	"pubsite/internal/storage"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the search index from the BibTeX database",
	Long: `Rebuild the SQLite search index used by the list and search commands.
The BibTeX database stays authoritative; the index is a disposable cache
and can be rebuilt at any time.`,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	entries, err := bibtex.ParseFile(cfg.BibFile)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	db, err := storage.Open(cfg.IndexFile)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.Rebuild(entries)
	if err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}

	fmt.Printf("Indexed %d publications in %s\n", n, cfg.IndexFile)
	return nil
}
