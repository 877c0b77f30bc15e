package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pubsite/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter config and template in the current directory",
	Long: `Create a starter pubsite.yml and a minimal HTML template containing the
placeholder token. Existing files are left untouched.`,
	RunE: runInit,
}

const starterTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Publications</title>
  <style>
    body { font-family: Georgia, serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
    .year-header { border-bottom: 1px solid #ccc; padding-bottom: 0.25rem; }
    .publication-list li { margin: 0.75rem 0; }
    .pub-title { font-weight: bold; }
    .pub-authors { color: #333; }
    .pub-venue { color: #666; font-style: italic; }
  </style>
</head>
<body>
  <h1>Publications</h1>
PLACEHOLDER
</body>
</html>
`

func runInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("%s already exists, leaving it alone\n", configPath)
	} else {
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", configPath)
	}

	if _, err := os.Stat(cfg.TemplateFile); err == nil {
		fmt.Printf("%s already exists, leaving it alone\n", cfg.TemplateFile)
	} else {
		if err := os.WriteFile(cfg.TemplateFile, []byte(starterTemplate), 0644); err != nil {
			return fmt.Errorf("writing template: %w", err)
		}
		fmt.Printf("Wrote %s\n", cfg.TemplateFile)
	}

	fmt.Printf("\nNext steps:\n  1. Put your BibTeX database at %s\n  2. Run 'pubsite build'\n", cfg.BibFile)
	return nil
}
