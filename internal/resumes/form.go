package resumes

import (
	"fmt"

	"github.com/jonathan/interview-prep/internal/types"
)

// Section names a repeatable part of the resume form.
type Section string

// Repeatable sections.
const (
	SectionEducation  Section = "education"
	SectionExperience Section = "experience"
	SectionProjects   Section = "projects"
)

// ParseSection validates a section name.
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case SectionEducation, SectionExperience, SectionProjects:
		return Section(s), nil
	default:
		return "", fmt.Errorf("unknown section %q (want education, experience or projects)", s)
	}
}

// NewForm returns an empty form with one blank item per section.
func NewForm() types.ResumeDocument {
	return types.ResumeDocument{
		Education:  []types.Education{{}},
		Experience: []types.Experience{{Points: []string{""}}},
		Projects:   []types.Project{{Points: []string{""}}},
	}
}

// AddItem appends a blank item to section and returns its index.
func AddItem(doc *types.ResumeDocument, section Section) int {
	switch section {
	case SectionEducation:
		doc.Education = append(doc.Education, types.Education{})
		return len(doc.Education) - 1
	case SectionExperience:
		doc.Experience = append(doc.Experience, types.Experience{Points: []string{""}})
		return len(doc.Experience) - 1
	case SectionProjects:
		doc.Projects = append(doc.Projects, types.Project{Points: []string{""}})
		return len(doc.Projects) - 1
	}
	return -1
}

// RemoveItem deletes item i of section. The last remaining item cannot be removed.
func RemoveItem(doc *types.ResumeDocument, section Section, i int) error {
	n := sectionLen(doc, section)
	if i < 0 || i >= n {
		return fmt.Errorf("%s item %d does not exist", section, i)
	}
	if n <= 1 {
		return fmt.Errorf("%s must keep at least one item", section)
	}
	switch section {
	case SectionEducation:
		doc.Education = append(doc.Education[:i], doc.Education[i+1:]...)
	case SectionExperience:
		doc.Experience = append(doc.Experience[:i], doc.Experience[i+1:]...)
	case SectionProjects:
		doc.Projects = append(doc.Projects[:i], doc.Projects[i+1:]...)
	}
	return nil
}

// AddPoint appends a bullet point to item i of the experience or projects section.
func AddPoint(doc *types.ResumeDocument, section Section, i int, text string) error {
	if i < 0 || i >= sectionLen(doc, section) {
		return fmt.Errorf("%s item %d does not exist", section, i)
	}
	switch section {
	case SectionExperience:
		doc.Experience[i].Points = append(doc.Experience[i].Points, text)
	case SectionProjects:
		doc.Projects[i].Points = append(doc.Projects[i].Points, text)
	default:
		return fmt.Errorf("%s has no bullet points", section)
	}
	return nil
}

func sectionLen(doc *types.ResumeDocument, section Section) int {
	switch section {
	case SectionEducation:
		return len(doc.Education)
	case SectionExperience:
		return len(doc.Experience)
	case SectionProjects:
		return len(doc.Projects)
	}
	return 0
}
