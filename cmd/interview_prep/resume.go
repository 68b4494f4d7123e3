package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/jonathan/interview-prep/internal/resumes"
	"github.com/jonathan/interview-prep/internal/types"
	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Build, list and export resumes",
}

var resumeCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a resume interactively",
	Args:  cobra.NoArgs,
	RunE:  withApp(runResumeCreate),
}

var resumeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved resumes",
	Args:  cobra.NoArgs,
	RunE:  withApp(runResumeList),
}

var resumeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved resume",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runResumeShow),
}

var resumeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved resume",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runResumeDelete),
}

var resumeExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a saved resume as PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runResumeExport),
}

var (
	resumeDeleteYes bool
	resumeExportDir string
	resumeExportTTL time.Duration
)

func init() {
	resumeDeleteCmd.Flags().BoolVarP(&resumeDeleteYes, "yes", "y", false, "Delete without asking")
	resumeExportCmd.Flags().StringVarP(&resumeExportDir, "out", "o", ".", "Directory for the PDF")
	resumeExportCmd.Flags().DurationVar(&resumeExportTTL, "timeout", time.Minute, "Render timeout")

	resumeCmd.AddCommand(resumeCreateCmd, resumeListCmd, resumeShowCmd, resumeDeleteCmd, resumeExportCmd)
	rootCmd.AddCommand(resumeCmd)
}

func parseResumeID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid resume id %q", s)
	}
	return id, nil
}

func runResumeList(cmd *cobra.Command, a *app, _ []string) error {
	docs, err := resumes.NewBuilder(a.session).List(cmd.Context())
	if err != nil {
		return err
	}
	a.printer.PrintResumeList(docs)
	return nil
}

func runResumeShow(cmd *cobra.Command, a *app, args []string) error {
	id, err := parseResumeID(args[0])
	if err != nil {
		return err
	}
	doc, err := resumes.NewBuilder(a.session).Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	a.printer.PrintResume(doc)
	return nil
}

func runResumeDelete(cmd *cobra.Command, a *app, args []string) error {
	id, err := parseResumeID(args[0])
	if err != nil {
		return err
	}

	confirm := resumes.ConfirmFunc(a.prompt.Confirm)
	if resumeDeleteYes {
		confirm = func(string) (bool, error) { return true, nil }
	}

	deleted, err := resumes.NewBuilder(a.session).Delete(cmd.Context(), id, confirm)
	if err != nil {
		return err
	}
	if deleted {
		a.printf("Resume %d deleted.\n", id)
	} else {
		a.printf("Nothing deleted.\n")
	}
	return nil
}

func runResumeExport(cmd *cobra.Command, a *app, args []string) error {
	ctx := cmd.Context()
	id, err := parseResumeID(args[0])
	if err != nil {
		return err
	}
	doc, err := resumes.NewBuilder(a.session).Get(ctx, id)
	if err != nil {
		return err
	}

	a.printf("Rendering %s...\n", resumes.ExportFileName(doc.Name))
	exp := &resumes.Exporter{Rasterizer: &resumes.ChromeRasterizer{
		ExecPath: a.chromePath(),
		Timeout:  resumeExportTTL,
	}}
	path, err := exp.ExportToFile(ctx, doc, resumeExportDir)
	if err != nil {
		return err
	}
	a.printf("Saved %s\n", path)
	return nil
}

func runResumeCreate(cmd *cobra.Command, a *app, _ []string) error {
	ctx := cmd.Context()
	b := resumes.NewBuilder(a.session)
	form := resumes.NewForm()

	if err := promptContact(a.prompt, &form, nil); err != nil {
		return err
	}
	if err := promptSections(a.prompt, &form); err != nil {
		return err
	}
	if err := promptSkills(a.prompt, &form.Skills); err != nil {
		return err
	}

	for {
		doc, err := b.Create(ctx, form)
		var ferr *resumes.FormErrors
		if errors.As(err, &ferr) {
			printFormErrors(a, ferr)
			if err := promptContact(a.prompt, &form, ferr); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		a.printf("Resume %d saved. Export it with `prep resume export %d`.\n", doc.ID, doc.ID)
		return nil
	}
}

func printFormErrors(a *app, ferr *resumes.FormErrors) {
	keys := make([]string, 0, len(ferr.Fields))
	for k := range ferr.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a.printf("  %s: %s\n", k, ferr.Message(k))
	}
}

// promptContact asks for the contact fields. With ferr set only the invalid
// fields are asked again.
func promptContact(p *prompter, doc *types.ResumeDocument, ferr *resumes.FormErrors) error {
	fields := []struct {
		key, label string
		dst        *string
	}{
		{"name", "Full name", &doc.Name},
		{"email", "Email", &doc.Email},
		{"phone", "Phone", &doc.Phone},
		{"linkedin", "LinkedIn URL", &doc.LinkedIn},
		{"github", "GitHub URL", &doc.GitHub},
	}
	for _, f := range fields {
		if ferr != nil && ferr.Message(f.key) == "" {
			continue
		}
		v, err := p.Line(f.label, *f.dst)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

func promptSections(p *prompter, doc *types.ResumeDocument) error {
	for _, section := range []resumes.Section{resumes.SectionEducation, resumes.SectionExperience, resumes.SectionProjects} {
		i := 0
		for {
			if err := promptItem(p, doc, section, i); err != nil {
				return err
			}
			more, err := p.Confirm(fmt.Sprintf("Add another %s entry?", section))
			if err != nil {
				return err
			}
			if !more {
				break
			}
			i = resumes.AddItem(doc, section)
		}
	}
	return nil
}

func promptItem(p *prompter, doc *types.ResumeDocument, section resumes.Section, i int) error {
	ask := func(label string, dst *string) error {
		v, err := p.Line(label, *dst)
		*dst = v
		return err
	}

	switch section {
	case resumes.SectionEducation:
		e := &doc.Education[i]
		for _, f := range []struct {
			label string
			dst   *string
		}{{"School", &e.School}, {"Degree", &e.Degree}, {"Location", &e.Location}, {"Duration", &e.Duration}} {
			if err := ask(f.label, f.dst); err != nil {
				return err
			}
		}
		return nil

	case resumes.SectionExperience:
		e := &doc.Experience[i]
		for _, f := range []struct {
			label string
			dst   *string
		}{{"Role", &e.Role}, {"Company", &e.Company}, {"Location", &e.Location}, {"Duration", &e.Duration}} {
			if err := ask(f.label, f.dst); err != nil {
				return err
			}
		}
		e.Points = e.Points[:0]

	case resumes.SectionProjects:
		pr := &doc.Projects[i]
		for _, f := range []struct {
			label string
			dst   *string
		}{{"Title", &pr.Title}, {"Tech stack", &pr.Tech}, {"Duration", &pr.Duration}} {
			if err := ask(f.label, f.dst); err != nil {
				return err
			}
		}
		pr.Points = pr.Points[:0]
	}

	points, err := p.Lines("Bullet points (one per line)")
	if err != nil {
		return err
	}
	for _, pt := range points {
		if err := resumes.AddPoint(doc, section, i, pt); err != nil {
			return err
		}
	}
	return nil
}

func promptSkills(p *prompter, s *types.Skills) error {
	for _, f := range []struct {
		label string
		dst   *string
	}{
		{"Languages", &s.Languages},
		{"Frameworks", &s.Frameworks},
		{"Tools", &s.Tools},
		{"Libraries", &s.Libraries},
	} {
		v, err := p.Line(f.label, *f.dst)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}
