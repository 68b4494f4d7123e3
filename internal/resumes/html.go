package resumes

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/jonathan/interview-prep/internal/types"
)

//go:embed resume.html.tmpl
var resumeTemplateText string

var resumeTemplate = template.Must(template.New("resume").Funcs(template.FuncMap{
	"hasEducation": func(items []types.Education) bool {
		for _, e := range items {
			if e.School != "" {
				return true
			}
		}
		return false
	},
	"hasExperience": func(items []types.Experience) bool {
		for _, e := range items {
			if e.Role != "" || e.Company != "" {
				return true
			}
		}
		return false
	},
	"hasProjects": func(items []types.Project) bool {
		for _, p := range items {
			if p.Title != "" {
				return true
			}
		}
		return false
	},
}).Parse(resumeTemplateText))

// RenderHTML renders doc as a standalone HTML page. The printable area is the
// element with id "resume", 794 CSS pixels wide (A4 at 96 dpi).
func RenderHTML(doc *types.ResumeDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, doc); err != nil {
		return nil, &RenderError{Message: "failed to render resume HTML", Cause: err}
	}
	return buf.Bytes(), nil
}

// RenderError represents a failure while turning a resume into HTML, an image or a PDF.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
