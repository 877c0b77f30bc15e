package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pubsite/internal/pdfmeta"
)

var doiStub bool

func init() {
	doiCmd.Flags().BoolVar(&doiStub, "stub", false, "Print a BibTeX skeleton for the extracted DOI")
	rootCmd.AddCommand(doiCmd)
}

var doiCmd = &cobra.Command{
	Use:   "doi FILE.pdf",
	Short: "Extract the DOI from a paper PDF",
	Long: `Extract the DOI from the first pages of a paper PDF.

With --stub, print a BibTeX skeleton ready to paste into the database.

Examples:
  pubsite doi paper.pdf
  pubsite doi --stub paper.pdf >> files/references.bib`,
	Args: cobra.ExactArgs(1),
	RunE: runDOI,
}

func runDOI(cmd *cobra.Command, args []string) error {
	doi, err := pdfmeta.ExtractDOI(args[0])
	if err != nil {
		return err
	}
	if doi == "" {
		exitWithError(ExitDataError, "no DOI found in %s", args[0])
	}

	if doiStub {
		fmt.Print(pdfmeta.Stub(doi))
		return nil
	}
	fmt.Println(doi)
	return nil
}
