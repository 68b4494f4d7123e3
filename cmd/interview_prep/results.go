package main

import (
	"errors"
	"os"

	"github.com/jonathan/interview-prep/internal/report"
	"github.com/spf13/cobra"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the scores and feedback of the last interview",
	Args:  cobra.NoArgs,
	RunE:  withApp(runResults),
}

var resultsMarkdown string

func init() {
	resultsCmd.Flags().StringVar(&resultsMarkdown, "markdown", "", "Also write the report as Markdown to this file")
	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, a *app, _ []string) error {
	r, err := report.Load(cmd.Context(), a.session)
	if errors.Is(err, report.ErrNoData) {
		a.printf("No interview data found. Run `prep upload` and `prep interview` first.\n")
		return nil
	}
	if err != nil {
		return err
	}

	a.printer.PrintReport(r)

	if resultsMarkdown == "" {
		return nil
	}
	f, err := os.Create(resultsMarkdown)
	if err != nil {
		return err
	}
	if err := r.WriteMarkdown(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.printf("Report written to %s\n", resultsMarkdown)
	return nil
}
