package main

import (
	"github.com/jonathan/interview-prep/internal/upload"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <resume.pdf>",
	Short: "Upload a resume PDF and start a new interview session",
	Long:  "Uploads a PDF resume (max 10 MB) for analysis. The previous interview answers are cleared.",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runUpload),
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, a *app, args []string) error {
	ctx := cmd.Context()
	svc := upload.NewService(a.api, a.session, a.log)

	// reject bad files before touching the previous session
	if _, err := upload.CheckFile(args[0]); err != nil {
		return err
	}
	if err := svc.Begin(ctx); err != nil {
		return err
	}

	a.printf("Analyzing resume...\n")
	res, err := svc.Upload(ctx, args[0])
	if err != nil {
		return err
	}

	a.printf("Resume analyzed successfully! (%d characters of text)\n", len(res.ExtractedText))
	a.printf("Start the interview with `prep interview`.\n")
	return nil
}
