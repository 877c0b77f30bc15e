package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pubsite/internal/storage"
)

var listYear string

func init() {
	listCmd.Flags().StringVar(&listYear, "year", "", "List only publications from this year")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed publications",
	Long: `List publications from the search index, newest first.

Run 'pubsite index' first to build or refresh the index.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenIndex(cfg.IndexFile)
	defer db.Close()

	var (
		pubs []storage.Pub
		err  error
	)
	if listYear != "" {
		pubs, err = db.ListYear(listYear)
	} else {
		pubs, err = db.ListAll()
	}
	if err != nil {
		return err
	}

	printPubs(pubs)
	return nil
}

// mustOpenIndex opens the search index, exiting with a hint when it has not
// been built yet.
func mustOpenIndex(path string) *storage.DB {
	if _, err := os.Stat(path); err != nil {
		exitWithError(ExitConfigError, "search index not found at %s\n\nRun 'pubsite index' to create it.", path)
	}
	db, err := storage.Open(path)
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}
	return db
}

// printPubs writes one publication per line.
func printPubs(pubs []storage.Pub) {
	if len(pubs) == 0 {
		fmt.Println("No publications found.")
		return
	}
	for _, p := range pubs {
		year := p.Year
		if year == "" {
			year = "----"
		}
		line := fmt.Sprintf("%s  %s", year, p.Title)
		if p.Author != "" {
			line += fmt.Sprintf("  (%s)", p.Author)
		}
		if p.Venue != "" {
			line += fmt.Sprintf("  [%s]", p.Venue)
		}
		fmt.Println(line)
	}
}
