package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/interview-prep/internal/config"
	"github.com/jonathan/interview-prep/internal/display"
	"github.com/jonathan/interview-prep/internal/interview"
	"github.com/jonathan/interview-prep/internal/session"
	"github.com/jonathan/interview-prep/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	script *types.InterviewScript
}

func (s stubSource) Script(context.Context, string) (*types.InterviewScript, error) {
	return s.script, nil
}

// stubScorer returns results in order; a nil result with an error fails that call.
type stubScorer struct {
	results []*types.MarkResult
	errs    []error
	answers []string
}

func (s *stubScorer) Mark(_ context.Context, _, answer string) (*types.MarkResult, error) {
	i := len(s.answers)
	s.answers = append(s.answers, answer)
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.results) {
		return s.results[i], nil
	}
	return &types.MarkResult{FeedbackAndAddons: "Fine.", Score: 6}, nil
}

func twoQuestionScript() *types.InterviewScript {
	return &types.InterviewScript{
		OpeningRapportBuilding: []types.QuestionItem{{Question: "Tell me about yourself."}},
		CandidateMotivation:    []types.QuestionItem{{Question: "Why this role?"}},
	}
}

func runLoop(t *testing.T, scorer *stubScorer, input string) (*session.Session, string, error) {
	t.Helper()
	ctx := context.Background()
	sess := session.New(session.NewMemoryStore(), nil)

	ctrl := interview.New(stubSource{script: twoQuestionScript()}, scorer, sess)
	require.NoError(t, ctrl.Load(ctx, "ref"))

	var out bytes.Buffer
	p := newPrompter(strings.NewReader(input), &out)
	err := runInterviewLoop(ctx, ctrl, p, display.NewPrinter(&out), nil, zerolog.Nop())
	return sess, out.String(), err
}

func TestInterviewLoop_FollowUpAndCompletion(t *testing.T) {
	scorer := &stubScorer{results: []*types.MarkResult{
		{FeedbackAndAddons: "Good start.", Score: 7, FollowUpQuestions: []types.FollowUp{{Question: "What did you lead?"}}},
		{FeedbackAndAddons: "Clear.", Score: 8},
		{FeedbackAndAddons: "Be specific.", Score: 3},
	}}
	input := "I build backends.\n\n" +
		":time\n\n" +
		"The payments migration.\n\n" +
		"The team\nand the mission.\n\n"

	sess, out, err := runLoop(t, scorer, input)
	require.NoError(t, err)

	assert.Contains(t, out, "QUESTION 1 OF 2")
	assert.Contains(t, out, "FOLLOW-UP")
	assert.Contains(t, out, "The interviewer has a follow-up question.")
	assert.Contains(t, out, "Voice is off")
	assert.Contains(t, out, "Please provide an answer before continuing.")
	assert.Contains(t, out, "Interview complete!")
	assert.Equal(t, 3, strings.Count(out, "Scoring..."))

	items, err := sess.Answers(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "What did you lead?", items[1].Question)
	assert.Equal(t, "The team\nand the mission.", items[2].Answer)
	assert.Equal(t, float64(3), items[2].Score)
}

func TestInterviewLoop_BlankAnswerIsNotScored(t *testing.T) {
	scorer := &stubScorer{}

	_, out, err := runLoop(t, scorer, "\n   \nFirst.\n\nSecond.\n\n")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "Please provide an answer before continuing."))
	assert.Equal(t, 2, strings.Count(out, "Scoring..."))
	assert.Less(t, strings.LastIndex(out, "Please provide an answer"), strings.Index(out, "Scoring..."))
	assert.Equal(t, []string{"First.", "Second."}, scorer.answers)
}

func TestInterviewLoop_NullFollowUpsAdvance(t *testing.T) {
	var res types.MarkResult
	require.NoError(t, json.Unmarshal([]byte(`{"feedbackAndAddons":"ok","score":6,"followUpQuestions":null}`), &res))
	scorer := &stubScorer{results: []*types.MarkResult{&res}}

	sess, out, err := runLoop(t, scorer, "First.\n\nSecond.\n\n")
	require.NoError(t, err)

	assert.NotContains(t, out, "FOLLOW-UP")
	assert.Contains(t, out, "QUESTION 2 OF 2")
	assert.Contains(t, out, "Interview complete!")

	items, err := sess.Answers(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Why this role?", items[1].Question)
}

func TestNewVoice_AudioCacheDir(t *testing.T) {
	dir := t.TempDir()
	a := &app{cfg: &config.Config{MurfAPIKey: "key", CacheDir: dir}, log: zerolog.Nop()}

	v, err := a.newVoice()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audio"), v.player.AudioDir())

	a.cfg.MurfAPIKey = ""
	_, err = a.newVoice()
	assert.ErrorContains(t, err, "MURF_API_KEY")
}

func TestInterviewLoop_QuitKeepsSubmittedAnswers(t *testing.T) {
	scorer := &stubScorer{}

	sess, out, err := runLoop(t, scorer, "First answer.\n\n:quit\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Interview stopped.")
	assert.NotContains(t, out, "Interview complete!")

	items, err := sess.Answers(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestInterviewLoop_EOFStops(t *testing.T) {
	_, out, err := runLoop(t, &stubScorer{}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Interview stopped.")
}

func TestInterviewLoop_ScoringFailureRetriesSameQuestion(t *testing.T) {
	scorer := &stubScorer{errs: []error{errors.New("backend down")}}

	sess, out, err := runLoop(t, scorer, "one\n\none again\n\ntwo\n\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Could not score your answer")
	assert.Equal(t, []string{"one", "one again", "two"}, scorer.answers)

	items, err := sess.Answers(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Tell me about yourself.", items[0].Question)
}

func TestReadAnswer_PartialAnswerAtEOF(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("line one\nline two"), &out)

	answer, quit, err := readAnswer(p, nil)
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, "line one\nline two", answer)
}
