// Package resumes is the resume builder: it validates, stores, lists, deletes
// and exports resume documents kept in the session.
package resumes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/interview-prep/internal/types"
)

// DeletePrompt is the confirmation shown before a resume is deleted.
const DeletePrompt = "Are you sure you want to delete this resume?"

// createdAtLayout mirrors a US locale date-time label.
const createdAtLayout = "1/2/2006, 3:04:05 PM"

// ErrNotFound is returned for an unknown resume id.
var ErrNotFound = errors.New("resume not found")

// Store is the slice of the session the builder needs.
type Store interface {
	Resumes(ctx context.Context) ([]types.ResumeDocument, error)
	UpdateResumes(ctx context.Context, fn func([]types.ResumeDocument) ([]types.ResumeDocument, error)) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// Builder manages saved resume documents.
type Builder struct {
	store    Store
	validate *validator.Validate
	now      func() time.Time
}

// NewBuilder returns a Builder over store.
func NewBuilder(store Store) *Builder {
	return &Builder{
		store:    store,
		validate: newValidator(),
		now:      time.Now,
	}
}

// List returns saved resumes, newest first.
func (b *Builder) List(ctx context.Context) ([]types.ResumeDocument, error) {
	return b.store.Resumes(ctx)
}

// Get returns the resume with id.
func (b *Builder) Get(ctx context.Context, id int64) (*types.ResumeDocument, error) {
	docs, err := b.store.Resumes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].ID == id {
			return &docs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// Create validates form and, when valid, prepends it as a new document.
// Validation failures return *FormErrors and store nothing.
func (b *Builder) Create(ctx context.Context, form types.ResumeDocument) (*types.ResumeDocument, error) {
	doc := Normalize(form)
	if err := b.Validate(doc); err != nil {
		return nil, err
	}

	now := b.now()
	doc.CreatedAt = now.Format(createdAtLayout)

	err := b.store.UpdateResumes(ctx, func(docs []types.ResumeDocument) ([]types.ResumeDocument, error) {
		doc.ID = nextID(now.UnixMilli(), docs)
		return append([]types.ResumeDocument{doc}, docs...), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return &doc, nil
}

// Validate checks the required contact fields of doc.
func (b *Builder) Validate(doc types.ResumeDocument) error {
	if err := b.validate.Struct(doc); err != nil {
		return toFormErrors(err)
	}
	return nil
}

// Delete removes the resume with id after confirmation. It reports whether
// anything was deleted; declining leaves the list unchanged.
func (b *Builder) Delete(ctx context.Context, id int64, confirm Confirmer) (bool, error) {
	if _, err := b.Get(ctx, id); err != nil {
		return false, err
	}

	ok, err := confirm.Confirm(DeletePrompt)
	if err != nil || !ok {
		return false, err
	}

	err = b.store.UpdateResumes(ctx, func(docs []types.ResumeDocument) ([]types.ResumeDocument, error) {
		out := make([]types.ResumeDocument, 0, len(docs))
		for _, d := range docs {
			if d.ID != id {
				out = append(out, d)
			}
		}
		if len(out) == len(docs) {
			return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return out, nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// nextID returns candidate unless an existing document already uses it or a
// later id, in which case it returns one past the largest id.
func nextID(candidate int64, docs []types.ResumeDocument) int64 {
	var maxID int64
	for _, d := range docs {
		if d.ID > maxID {
			maxID = d.ID
		}
	}
	if candidate <= maxID {
		return maxID + 1
	}
	return candidate
}

// Normalize trims every text field and drops blank bullet points.
func Normalize(doc types.ResumeDocument) types.ResumeDocument {
	out := doc
	out.Name = strings.TrimSpace(doc.Name)
	out.Email = strings.TrimSpace(doc.Email)
	out.Phone = strings.TrimSpace(doc.Phone)
	out.LinkedIn = strings.TrimSpace(doc.LinkedIn)
	out.GitHub = strings.TrimSpace(doc.GitHub)

	out.Education = make([]types.Education, len(doc.Education))
	for i, e := range doc.Education {
		out.Education[i] = types.Education{
			School:   strings.TrimSpace(e.School),
			Degree:   strings.TrimSpace(e.Degree),
			Location: strings.TrimSpace(e.Location),
			Duration: strings.TrimSpace(e.Duration),
		}
	}
	out.Experience = make([]types.Experience, len(doc.Experience))
	for i, e := range doc.Experience {
		out.Experience[i] = types.Experience{
			Role:     strings.TrimSpace(e.Role),
			Company:  strings.TrimSpace(e.Company),
			Location: strings.TrimSpace(e.Location),
			Duration: strings.TrimSpace(e.Duration),
			Points:   trimPoints(e.Points),
		}
	}
	out.Projects = make([]types.Project, len(doc.Projects))
	for i, p := range doc.Projects {
		out.Projects[i] = types.Project{
			Title:    strings.TrimSpace(p.Title),
			Tech:     strings.TrimSpace(p.Tech),
			Duration: strings.TrimSpace(p.Duration),
			Points:   trimPoints(p.Points),
		}
	}
	out.Skills = types.Skills{
		Languages:  strings.TrimSpace(doc.Skills.Languages),
		Frameworks: strings.TrimSpace(doc.Skills.Frameworks),
		Tools:      strings.TrimSpace(doc.Skills.Tools),
		Libraries:  strings.TrimSpace(doc.Skills.Libraries),
	}
	return out
}

func trimPoints(points []string) []string {
	out := make([]string, 0, len(points))
	for _, p := range points {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
