package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/osint-scout/internal/query"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Show the built-in dork catalog",
	RunE:  runExamples,
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}

func runExamples(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Built-in dorks ({domain} and {company} are substituted at run time):")
	fmt.Fprintln(out)
	for _, ex := range query.Examples() {
		fmt.Fprintf(out, "  %-50s %s\n", ex.Dork, ex.Description)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, `Usage: scout files -d acme.com -q "site:{domain} filetype:pdf"`)
	return nil
}
