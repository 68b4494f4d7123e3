// Package interview drives a candidate through a fixed, ordered list of
// questions with at most one follow-up per question, recording every answer.
//
// The Controller is a small state machine:
//
//	Loading -> AwaitingAnswer(0, false)       script fetched (Complete if empty)
//	AwaitingAnswer -> Submitting               non-blank answer submitted
//	Submitting -> AwaitingAnswer(i, true)      first answer in a slot drew a follow-up
//	Submitting -> AwaitingAnswer(i+1, false)   otherwise, when i is not the last slot
//	Submitting -> Complete                     otherwise, at the last slot
//	Submitting -> AwaitingAnswer(unchanged)    scoring or recording failed
package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/interview-prep/internal/types"
	"github.com/rs/zerolog"
)

// AnsweredItem is one entry of the answer log.
type AnsweredItem = types.AnsweredItem

// Errors returned by the Controller.
var (
	ErrBlankAnswer = errors.New("answer is blank")
	ErrNotAwaiting = errors.New("controller is not awaiting an answer")
	ErrSubmitting  = errors.New("a submission is already in flight")
	ErrClosed      = errors.New("interview was closed")
)

// ScriptSource fetches the interview script for an uploaded resume.
type ScriptSource interface {
	Script(ctx context.Context, reference string) (*types.InterviewScript, error)
}

// Scorer grades an answer and may propose follow-up questions.
type Scorer interface {
	Mark(ctx context.Context, question, answer string) (*types.MarkResult, error)
}

// Recorder persists answered items.
type Recorder interface {
	AppendAnswer(ctx context.Context, item types.AnsweredItem) error
}

// Controller runs one interview session. It is safe for concurrent use, but only
// one submission can be in flight at a time.
type Controller struct {
	source   ScriptSource
	scorer   Scorer
	recorder Recorder
	log      zerolog.Logger

	mu         sync.Mutex
	state      State
	questions  []string
	categories []types.Category
	index      int
	isFollowUp bool
	closed     bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for failed submissions.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// New returns a Controller in the Loading state.
func New(source ScriptSource, scorer Scorer, recorder Recorder, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		scorer:   scorer,
		recorder: recorder,
		log:      zerolog.Nop(),
		state:    StateLoading,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches and flattens the script. On failure the controller stays in
// Loading and Load may be called again.
func (c *Controller) Load(ctx context.Context, reference string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state != StateLoading {
		c.mu.Unlock()
		return fmt.Errorf("script already loaded (state %s)", c.state)
	}
	c.mu.Unlock()

	script, err := c.source.Script(ctx, reference)
	if err != nil {
		return fmt.Errorf("failed to load interview script: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.state != StateLoading {
		return fmt.Errorf("script already loaded (state %s)", c.state)
	}

	c.questions = script.Flatten()
	c.categories = categoriesOf(script)
	c.index = 0
	c.isFollowUp = false
	if len(c.questions) == 0 {
		c.state = StateComplete
	} else {
		c.state = StateAwaitingAnswer
	}
	return nil
}

func categoriesOf(script *types.InterviewScript) []types.Category {
	out := make([]types.Category, 0, script.Len())
	for _, sec := range script.Sections() {
		for range sec.Items {
			out = append(out, sec.Category)
		}
	}
	return out
}

// Submit scores answer for the current question.
//
// A blank answer returns ErrBlankAnswer without any call or transition. A
// scoring or recording failure leaves the controller exactly where it was.
func (c *Controller) Submit(ctx context.Context, answer string) (*Outcome, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, ErrBlankAnswer
	}

	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return nil, ErrClosed
	case c.state == StateSubmitting:
		c.mu.Unlock()
		return nil, ErrSubmitting
	case c.state != StateAwaitingAnswer:
		state := c.state
		c.mu.Unlock()
		return nil, fmt.Errorf("%w (state %s)", ErrNotAwaiting, state)
	}
	question := c.questions[c.index]
	c.state = StateSubmitting
	c.mu.Unlock()

	result, err := c.scorer.Mark(ctx, question, answer)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if err != nil {
		c.state = StateAwaitingAnswer
		c.log.Warn().Err(err).Int("index", c.index).Bool("follow_up", c.isFollowUp).Msg("scoring failed")
		return nil, fmt.Errorf("failed to score answer: %w", err)
	}

	item := types.AnsweredItem{
		Question: question,
		Answer:   answer,
		Feedback: result.FeedbackAndAddons,
		Score:    result.Score,
	}
	if err := c.recorder.AppendAnswer(ctx, item); err != nil {
		c.state = StateAwaitingAnswer
		c.log.Warn().Err(err).Int("index", c.index).Msg("recording answer failed")
		return nil, fmt.Errorf("failed to record answer: %w", err)
	}

	out := &Outcome{Answered: item}
	if followUp, ok := result.FirstFollowUp(); ok && !c.isFollowUp {
		c.questions[c.index] = followUp
		c.isFollowUp = true
		c.state = StateAwaitingAnswer
		out.FollowUp = true
	} else {
		c.isFollowUp = false
		if c.index < len(c.questions)-1 {
			c.index++
			c.state = StateAwaitingAnswer
		} else {
			c.state = StateComplete
			out.Completed = true
		}
	}
	out.Next = c.progressLocked()
	return out, nil
}

// Close abandons the session. A scoring response that arrives afterwards is
// dropped without being recorded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Progress returns the current position.
func (c *Controller) Progress() Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progressLocked()
}

func (c *Controller) progressLocked() Progress {
	return Progress{Index: c.index, IsFollowUp: c.isFollowUp, Total: len(c.questions)}
}

// Current returns the question to display. ok is false unless the controller
// is awaiting or submitting an answer.
func (c *Controller) Current() (question string, progress Progress, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAwaitingAnswer && c.state != StateSubmitting {
		return "", c.progressLocked(), false
	}
	return c.questions[c.index], c.progressLocked(), true
}

// Category returns the script category of the current slot.
func (c *Controller) Category() types.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index < len(c.categories) {
		return c.categories[c.index]
	}
	return ""
}

// Questions returns a copy of the flattened question list, including any
// follow-up substitutions made so far.
func (c *Controller) Questions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.questions...)
}

// ButtonLabel is the label of the submit action for the current question.
func (c *Controller) ButtonLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.questions) > 0 && c.index == len(c.questions)-1 && !c.isFollowUp {
		return "Complete Interview"
	}
	return "Next Question →"
}
