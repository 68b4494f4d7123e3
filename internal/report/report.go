// Package report summarizes the answer log for the results view.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jonathan/interview-prep/internal/session"
	"github.com/jonathan/interview-prep/internal/types"
)

// ErrNoData means there is nothing to show and the user should restart the flow.
var ErrNoData = errors.New("no interview data found, upload a resume and start a new interview")

// Band groups scores for display.
type Band string

// Score bands.
const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// BandFor returns the band of a 0-10 score: up to 3 is low, up to 6 is medium.
func BandFor(score float64) Band {
	switch {
	case score <= 3:
		return BandLow
	case score <= 6:
		return BandMedium
	default:
		return BandHigh
	}
}

// Item is one answered question with its band.
type Item struct {
	types.AnsweredItem
	Band Band
}

// Report is the summary of one interview session.
type Report struct {
	Items   []Item
	Count   int
	Average float64
	ByBand  map[Band]int
}

// AnswerSource reads the answer log.
type AnswerSource interface {
	Answers(ctx context.Context) ([]types.AnsweredItem, error)
}

// Load builds a report from the stored answer log. A missing, empty or corrupt
// log returns ErrNoData.
func Load(ctx context.Context, src AnswerSource) (*Report, error) {
	items, err := src.Answers(ctx)
	if errors.Is(err, session.ErrCorrupt) {
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoData
	}
	return Build(items), nil
}

// Build summarizes items.
func Build(items []types.AnsweredItem) *Report {
	r := &Report{
		Items:  make([]Item, 0, len(items)),
		Count:  len(items),
		ByBand: map[Band]int{BandLow: 0, BandMedium: 0, BandHigh: 0},
	}
	var total float64
	for _, it := range items {
		b := BandFor(it.Score)
		r.Items = append(r.Items, Item{AnsweredItem: it, Band: b})
		r.ByBand[b]++
		total += it.Score
	}
	if r.Count > 0 {
		r.Average = math.Round(total/float64(r.Count)*10) / 10
	}
	return r
}

// WriteMarkdown writes the report as a Markdown document.
func (r *Report) WriteMarkdown(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("# Interview Results\n\n")
	sb.WriteString(fmt.Sprintf("Questions answered: %d  \n", r.Count))
	sb.WriteString(fmt.Sprintf("Average score: %.1f / 10\n\n", r.Average))

	for i, it := range r.Items {
		sb.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, it.Question))
		sb.WriteString(fmt.Sprintf("**Score:** %g / 10 (%s)\n\n", it.Score, it.Band))
		sb.WriteString("**Your answer**\n\n")
		sb.WriteString(quote(it.Answer))
		sb.WriteString("\n**Feedback**\n\n")
		sb.WriteString(strings.TrimSpace(it.Feedback))
		sb.WriteString("\n\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func quote(s string) string {
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		sb.WriteString("> ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
