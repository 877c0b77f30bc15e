package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pubsite/internal/site"
)

var (
	buildBib         string
	buildTemplate    string
	buildOutput      string
	buildPlaceholder string
)

func init() {
	buildCmd.Flags().StringVar(&buildBib, "bib", "", "BibTeX database (overrides config)")
	buildCmd.Flags().StringVar(&buildTemplate, "template", "", "HTML template file (overrides config)")
	buildCmd.Flags().StringVar(&buildOutput, "out", "", "Output HTML file (overrides config)")
	buildCmd.Flags().StringVar(&buildPlaceholder, "placeholder", "", "Placeholder token in the template (overrides config)")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the publications page",
	Long: `Generate the publications page: read the BibTeX database, render the
grouped and numbered HTML listing, and substitute it into the template.

The output file is written once, after all processing succeeds; a failed
run leaves no partial page behind.

Examples:
  pubsite build
  pubsite build --bib files/references.bib --out publications.html`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg := mustLoadConfig()
	if buildBib != "" {
		cfg.BibFile = buildBib
	}
	if buildTemplate != "" {
		cfg.TemplateFile = buildTemplate
	}
	if buildOutput != "" {
		cfg.OutputFile = buildOutput
	}
	if buildPlaceholder != "" {
		cfg.Placeholder = buildPlaceholder
	}

	n, err := site.Build(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d publications)\n", cfg.OutputFile, n)
	return nil
}
