// Package coach generates interview scripts, scores answers and suggests
// practice problems with an LLM, without the remote backend.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/prompts"
	"github.com/jonathan/interview-prep/internal/schemas"
	"github.com/jonathan/interview-prep/internal/types"
	"github.com/rs/zerolog"
)

// maxResumeChars caps the resume text sent to the model.
const maxResumeChars = 20000

// OutputError is model output that does not match the expected shape.
type OutputError struct {
	Task  string
	Raw   string
	Cause error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("coach %s: model returned an unusable response: %v", e.Task, e.Cause)
}

func (e *OutputError) Unwrap() error {
	return e.Cause
}

// TextSource supplies the extracted resume text.
type TextSource interface {
	ExtractedText(ctx context.Context) (string, error)
}

// Coach implements interview.ScriptSource and interview.Scorer on top of an LLM.
type Coach struct {
	llm   llm.Client
	texts TextSource
	log   zerolog.Logger
}

// New returns a Coach. texts may be nil when Script is not used.
func New(client llm.Client, texts TextSource, log zerolog.Logger) *Coach {
	return &Coach{llm: client, texts: texts, log: log}
}

// Script generates an interview script from the session's extracted resume text.
// The reference is only logged.
func (c *Coach) Script(ctx context.Context, reference string) (*types.InterviewScript, error) {
	if c.texts == nil {
		return nil, fmt.Errorf("coach has no resume text source")
	}
	text, err := c.texts.ExtractedText(ctx)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("reference", reference).Int("chars", len(text)).Msg("generating script")
	return c.ScriptFromText(ctx, text)
}

// truncateText cuts s to at most limit bytes without splitting a rune.
func truncateText(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// ScriptFromText generates an interview script for resumeText.
func (c *Coach) ScriptFromText(ctx context.Context, resumeText string) (*types.InterviewScript, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return nil, fmt.Errorf("no resume text to build questions from; upload a resume first")
	}
	resumeText = truncateText(resumeText, maxResumeChars)

	prompt := prompts.Format(prompts.MustGet(prompts.CoachFile, prompts.KeyInterviewScript), map[string]string{
		"ResumeText": resumeText,
	})

	var env types.ScriptEnvelope
	if err := c.generate(ctx, "script", prompt, llm.TierStandard, schemas.ScriptResponse, &env); err != nil {
		return nil, err
	}
	return &env.Question.InterviewScript, nil
}

// Mark scores answer to question.
func (c *Coach) Mark(ctx context.Context, question, answer string) (*types.MarkResult, error) {
	prompt := prompts.Format(prompts.MustGet(prompts.CoachFile, prompts.KeyMarkAnswer), map[string]string{
		"Question": question,
		"Answer":   answer,
	})

	var env types.MarkEnvelope
	if err := c.generate(ctx, "mark", prompt, llm.TierLite, schemas.MarkResponse, &env); err != nil {
		return nil, err
	}
	return &env.Result, nil
}

// TechQuestions suggests up to limit practice problems for jd.
func (c *Coach) TechQuestions(ctx context.Context, jd string, limit int) ([]types.TechQuestion, error) {
	prompt := prompts.Format(prompts.MustGet(prompts.CoachFile, prompts.KeyTechQuestions), map[string]string{
		"JobDescription": jd,
		"Limit":          strconv.Itoa(limit),
	})

	var qs []types.TechQuestion
	if err := c.generate(ctx, "tech-questions", prompt, llm.TierLite, schemas.TechQuestionsResponse, &qs); err != nil {
		return nil, err
	}
	if limit > 0 && len(qs) > limit {
		qs = qs[:limit]
	}
	return qs, nil
}

// Close releases the LLM client.
func (c *Coach) Close() error {
	return c.llm.Close()
}

// generate runs prompt, checks the output against schema and decodes it into out.
func (c *Coach) generate(ctx context.Context, task, prompt string, tier llm.ModelTier, schema schemas.Name, out any) error {
	raw, err := c.llm.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return fmt.Errorf("coach %s: %w", task, err)
	}
	raw = llm.CleanJSONBlock(raw)

	if err := schemas.Validate(schema, []byte(raw)); err != nil {
		c.log.Warn().Str("task", task).Err(err).Msg("model output rejected")
		return &OutputError{Task: task, Raw: raw, Cause: err}
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return &OutputError{Task: task, Raw: raw, Cause: err}
	}
	return nil
}
