package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pubsite/internal/bibtex"
	"pubsite/internal/render"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the BibTeX database and report missing fields",
	Long: `Validate the BibTeX database. Parse errors are fatal; entries with
missing optional fields (author, title, venue, link) are reported as
warnings because the build degrades them to fallback text instead of
failing.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	entries, err := bibtex.ParseFile(cfg.BibFile)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	warnings := 0
	for _, e := range entries {
		missing := missingFields(e)
		if len(missing) == 0 {
			continue
		}
		warnings++
		fmt.Printf("warning: %s: no %s\n", describeEntry(e), strings.Join(missing, ", "))
	}

	fmt.Printf("%d entries, %d with missing fields\n", len(entries), warnings)
	return nil
}

// missingFields lists the display fields an entry will fall back on.
func missingFields(e bibtex.Entry) []string {
	var missing []string
	if e.First("author") == "" {
		missing = append(missing, "author")
	}
	if e.First("title") == "" {
		missing = append(missing, "title")
	}
	if e.First("journal", "booktitle") == "" && render.Venue(e) == "" {
		missing = append(missing, "venue")
	}
	if render.LinkURL(e) == "" {
		missing = append(missing, "link")
	}
	return missing
}

// describeEntry identifies an entry in warning output, preferring the
// citation key.
func describeEntry(e bibtex.Entry) string {
	if e.Key != "" {
		return e.Key
	}
	if title := e.First("title"); title != "" {
		return fmt.Sprintf("%q", title)
	}
	return "(unkeyed entry)"
}
