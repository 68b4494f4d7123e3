// Package display renders interview, resume and profile data as boxed text for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/interview-prep/internal/auth"
	"github.com/jonathan/interview-prep/internal/interview"
	"github.com/jonathan/interview-prep/internal/report"
	"github.com/jonathan/interview-prep/internal/session"
	"github.com/jonathan/interview-prep/internal/techq"
	"github.com/jonathan/interview-prep/internal/types"
)

const (
	// boxWidth is the width of every box, borders included
	boxWidth = 60
	// inner is the usable text width inside a box
	inner = boxWidth - 4
)

// Printer writes formatted boxes.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a box with a title and content. Long lines are wrapped.
//
//nolint:errcheck // terminal output; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(clip(title, inner)))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		for _, w := range wrap(line, inner) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(w))
		}
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintQuestion shows the current interview question.
func (p *Printer) PrintQuestion(question string, progress interview.Progress, category types.Category) {
	title := fmt.Sprintf("QUESTION %d OF %d", progress.Number(), progress.Total)
	if progress.IsFollowUp {
		title += " · FOLLOW-UP"
	} else if category != "" {
		title += " · " + strings.ToUpper(string(category))
	}
	p.printBox(title, question)
}

// PrintFeedback shows the scoring of one answer.
func (p *Printer) PrintFeedback(item types.AnsweredItem) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %g / 10 (%s)\n\n", item.Score, report.BandFor(item.Score)))
	sb.WriteString(strings.TrimSpace(item.Feedback))
	p.printBox("FEEDBACK", sb.String())
}

// PrintReport shows the results summary and every answered question.
func (p *Printer) PrintReport(r *report.Report) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Questions answered: %d\n", r.Count))
	sb.WriteString(fmt.Sprintf("Average score:      %.1f / 10\n", r.Average))
	sb.WriteString(fmt.Sprintf("High: %d   Medium: %d   Low: %d",
		r.ByBand[report.BandHigh], r.ByBand[report.BandMedium], r.ByBand[report.BandLow]))
	p.printBox("INTERVIEW RESULTS", sb.String())

	for i, it := range r.Items {
		sb.Reset()
		sb.WriteString(it.Question + "\n\n")
		sb.WriteString(fmt.Sprintf("Score: %g / 10 (%s)\n\n", it.Score, it.Band))
		sb.WriteString("Your answer:\n")
		sb.WriteString(strings.TrimSpace(it.Answer) + "\n\n")
		sb.WriteString("Feedback:\n")
		sb.WriteString(strings.TrimSpace(it.Feedback))
		p.printBox(fmt.Sprintf("#%d", i+1), sb.String())
	}
}

// PrintResumeList shows one line per stored resume.
//
//nolint:errcheck // terminal output
func (p *Printer) PrintResumeList(docs []types.ResumeDocument) {
	if len(docs) == 0 {
		fmt.Fprintln(p.out, "No resumes yet. Create one with `prep resume create`.")
		return
	}
	var sb strings.Builder
	for i, d := range docs {
		sb.WriteString(fmt.Sprintf("%-4d %s <%s>", d.ID, d.Name, d.Email))
		if created := shortDate(d.CreatedAt); created != "" {
			sb.WriteString("  " + created)
		}
		if i < len(docs)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("RESUMES (%d)", len(docs)), sb.String())
}

// PrintResume shows every section of a resume.
func (p *Printer) PrintResume(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(doc.Name + "\n")
	contact := []string{doc.Email, doc.Phone}
	if doc.LinkedIn != "" {
		contact = append(contact, doc.LinkedIn)
	}
	if doc.GitHub != "" {
		contact = append(contact, doc.GitHub)
	}
	sb.WriteString(strings.Join(contact, " | ") + "\n")

	if len(doc.Education) > 0 {
		sb.WriteString("\nEducation:\n")
		for _, e := range doc.Education {
			sb.WriteString(fmt.Sprintf("  • %s, %s (%s)\n", e.Degree, e.School, e.Duration))
		}
	}
	if len(doc.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		for _, e := range doc.Experience {
			sb.WriteString(fmt.Sprintf("  • %s at %s (%s)\n", e.Role, e.Company, e.Duration))
			for _, pt := range e.Points {
				sb.WriteString("      - " + pt + "\n")
			}
		}
	}
	if len(doc.Projects) > 0 {
		sb.WriteString("\nProjects:\n")
		for _, pr := range doc.Projects {
			sb.WriteString(fmt.Sprintf("  • %s [%s]\n", pr.Title, pr.Tech))
			for _, pt := range pr.Points {
				sb.WriteString("      - " + pt + "\n")
			}
		}
	}
	if !doc.Skills.IsEmpty() {
		sb.WriteString("\nSkills:\n")
		for _, g := range []struct{ label, value string }{
			{"Languages", doc.Skills.Languages},
			{"Frameworks", doc.Skills.Frameworks},
			{"Tools", doc.Skills.Tools},
			{"Libraries", doc.Skills.Libraries},
		} {
			if g.value != "" {
				sb.WriteString(fmt.Sprintf("  %s: %s\n", g.label, g.value))
			}
		}
	}

	p.printBox(fmt.Sprintf("RESUME #%d", doc.ID), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile shows the local profile.
func (p *Printer) PrintProfile(pr *types.UserProfile) {
	if pr == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(pr.Name)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(pr.Email)))
	sb.WriteString(fmt.Sprintf("LinkedIn: %s\n", orDash(pr.LinkedinUname)))
	sb.WriteString(fmt.Sprintf("LeetCode: %s\n", orDash(pr.LeetcodeUname)))
	sb.WriteString(fmt.Sprintf("Skills:   %s\n", orDash(pr.Skills)))
	if pr.Bio != "" {
		sb.WriteString("\n" + pr.Bio)
	}
	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLeetCode shows solved-problem statistics.
func (p *Printer) PrintLeetCode(lp *types.LeetCodeProfile) {
	if lp == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Ranking: %d\n\n", lp.Ranking))
	for _, d := range []string{"All", "Easy", "Medium", "Hard"} {
		sb.WriteString(fmt.Sprintf("%-7s %d\n", d+":", lp.Solved(d)))
	}
	p.printBox("LEETCODE · "+lp.Username, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTechQuestions shows suggested problems with their page summaries when present.
func (p *Printer) PrintTechQuestions(descs []techq.Description) {
	if len(descs) == 0 {
		p.printBox("TECHNICAL QUESTIONS", "No questions found for this job description.")
		return
	}
	var sb strings.Builder
	for i, d := range descs {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, techq.DisplayName(d.Question, i)))
		sb.WriteString("   " + d.Question.Link + "\n")
		switch {
		case d.Err != nil:
			sb.WriteString("   (description unavailable)\n")
		case d.Summary != "":
			sb.WriteString("   " + d.Summary + "\n")
		}
		if i < len(descs)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("TECHNICAL QUESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSession lists the stored session keys.
func (p *Printer) PrintSession(keys []session.KeyInfo) {
	var sb strings.Builder
	for i, k := range keys {
		state := "empty"
		if k.Present {
			state = fmt.Sprintf("%d bytes", k.Bytes)
		}
		sb.WriteString(fmt.Sprintf("%-14s %s", k.Key, state))
		if i < len(keys)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("SESSION", sb.String())
}

// PrintStatus shows who is logged in.
func (p *Printer) PrintStatus(st *auth.Status) {
	if st == nil || !st.LoggedIn {
		msg := "Not logged in."
		if st != nil && st.Expired {
			msg = "Session expired. Log in again."
		}
		p.printBox("ACCOUNT", msg)
		return
	}
	var sb strings.Builder
	if st.User != nil {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(st.User.Name)))
		sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(st.User.Email)))
	}
	sb.WriteString(fmt.Sprintf("Remember: %t\n", st.Remember))
	if !st.ExpiresAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Expires:  %s", st.ExpiresAt.Local().Format(time.RFC1123)))
	}
	p.printBox("ACCOUNT", strings.TrimSuffix(sb.String(), "\n"))
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func shortDate(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Local().Format("2006-01-02")
}

func pad(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= inner {
		return s
	}
	return s + strings.Repeat(" ", inner-n)
}

func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}

// wrap breaks line into chunks of at most width runes, splitting on spaces where possible.
func wrap(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}
	indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
	var out []string
	cur := ""
	for _, word := range strings.Fields(line) {
		for utf8.RuneCountInString(word) > width-len(indent) {
			if cur != "" {
				out = append(out, cur)
				cur = ""
			}
			r := []rune(word)
			cut := width - len(indent)
			out = append(out, indent+string(r[:cut]))
			word = string(r[cut:])
		}
		switch {
		case cur == "":
			cur = indent + word
		case utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(word) <= width:
			cur += " " + word
		default:
			out = append(out, cur)
			cur = indent + word
		}
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}
