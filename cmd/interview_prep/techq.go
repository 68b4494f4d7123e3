package main

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/jonathan/interview-prep/internal/fetch"
	"github.com/jonathan/interview-prep/internal/pdftext"
	"github.com/jonathan/interview-prep/internal/techq"
	"github.com/spf13/cobra"
)

var techqCmd = &cobra.Command{
	Use:   "tech-questions [job description]",
	Short: "Suggest practice problems for a job description",
	Long: `Suggests coding practice problems for a job description. The description is
taken from the arguments, --jd-file (text, HTML or PDF), --url (a job posting)
or standard input, in that order.`,
	Aliases: []string{"tq"},
	RunE:    withApp(runTechQuestions),
}

var (
	techqFile     string
	techqURL      string
	techqLimit    int
	techqDescribe bool
)

func init() {
	f := techqCmd.Flags()
	f.StringVar(&techqFile, "jd-file", "", "Read the job description from a file")
	f.StringVar(&techqURL, "url", "", "Fetch the job description from a posting URL")
	f.IntVarP(&techqLimit, "limit", "n", techq.DefaultLimit, "Number of problems")
	f.BoolVar(&techqDescribe, "describe", false, "Fetch each problem page and show a summary")
	rootCmd.AddCommand(techqCmd)
}

func runTechQuestions(cmd *cobra.Command, a *app, args []string) error {
	ctx := cmd.Context()

	api, err := a.techQuestionsAPI(ctx)
	if err != nil {
		return err
	}

	opts := []techq.Option{
		techq.WithLogger(a.log),
		techq.WithPageFetcher(fetch.NewFetcher(fetch.Config{
			Renderer: &fetch.Browser{ExecPath: a.chromePath(), Log: a.log},
			CacheDir: filepath.Join(a.cfg.CacheDir, "fetch"),
			Log:      a.log,
		})),
	}
	if techqFile != "" {
		x, err := pdftext.New(ctx, a.log)
		if err != nil {
			return err
		}
		opts = append(opts, techq.WithPDFExtractor(x))
	}
	svc := techq.NewService(api, opts...)

	var jd string
	switch {
	case len(args) > 0:
		jd = strings.Join(args, " ")
	case techqFile != "":
		jd, err = svc.JDFromFile(ctx, techqFile)
	case techqURL != "":
		a.printf("Fetching %s...\n", techqURL)
		jd, err = svc.JDFromURL(ctx, techqURL)
	default:
		var data []byte
		data, err = io.ReadAll(cmd.InOrStdin())
		jd = string(data)
	}
	if err != nil {
		return err
	}

	qs, err := svc.Find(ctx, jd, techqLimit)
	var verr *techq.ValidationError
	if errors.As(err, &verr) {
		return errors.New(verr.Message)
	}
	if err != nil {
		return err
	}
	if len(qs) == 0 {
		a.printf("No practice problems found for this job description.\n")
		return nil
	}

	var descs []techq.Description
	if techqDescribe {
		descs = svc.Describe(ctx, qs)
	} else {
		descs = make([]techq.Description, len(qs))
		for i, q := range qs {
			descs[i] = techq.Description{Question: q}
		}
	}
	a.printer.PrintTechQuestions(descs)
	return nil
}
