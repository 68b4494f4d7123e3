//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func q(texts ...string) []QuestionItem {
	items := make([]QuestionItem, 0, len(texts))
	for _, t := range texts {
		items = append(items, QuestionItem{Question: t})
	}
	return items
}

func TestInterviewScript_Flatten_Order(t *testing.T) {
	script := &InterviewScript{
		OpeningRapportBuilding:    q("o1", "o2"),
		ResumeSpecificProbes:      q("r1"),
		SkillCompetencyValidation: q("s1", "s2"),
		BehavioralCulturalFit:     q("b1"),
		CandidateMotivation:       q("m1"),
	}

	flat := script.Flatten()

	assert.Equal(t, []string{"o1", "o2", "r1", "s1", "s2", "b1", "m1"}, flat)
	assert.Equal(t, 7, script.Len())
	assert.Len(t, flat, script.Len())
}

func TestInterviewScript_Flatten_EmptyCategories(t *testing.T) {
	script := &InterviewScript{
		SkillCompetencyValidation: q("only"),
	}

	assert.Equal(t, []string{"only"}, script.Flatten())
	assert.Equal(t, 1, script.Len())

	var empty InterviewScript
	assert.Empty(t, empty.Flatten())
	assert.Equal(t, 0, empty.Len())

	var nilScript *InterviewScript
	assert.Nil(t, nilScript.Flatten())
	assert.Equal(t, 0, nilScript.Len())
}

func TestScriptEnvelope_Decode(t *testing.T) {
	body := `{"Question":{"interviewScript":{
		"openingRapportBuilding":[{"question":"Tell me about yourself","rationale":"warm up"}],
		"resumeSpecificProbes":[{"question":"Why Go?"}],
		"skillCompetencyValidation":[],
		"behavioralCulturalFit":[{"question":"Conflict?"}],
		"candidateMotivation":[]}}}`

	var env ScriptEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))

	script := env.Question.InterviewScript
	assert.Equal(t, []string{"Tell me about yourself", "Why Go?", "Conflict?"}, script.Flatten())
	assert.Equal(t, "warm up", script.OpeningRapportBuilding[0].Rationale)
}

func TestMarkResult_FirstFollowUp(t *testing.T) {
	tests := []struct {
		name   string
		result *MarkResult
		want   string
		wantOK bool
	}{
		{name: "nil result", result: nil},
		{name: "no follow-ups", result: &MarkResult{}},
		{
			name:   "first follow-up used",
			result: &MarkResult{FollowUpQuestions: []FollowUp{{Question: "Go deeper?"}, {Question: "ignored"}}},
			want:   "Go deeper?",
			wantOK: true,
		},
		{
			name:   "blank follow-up is not a follow-up",
			result: &MarkResult{FollowUpQuestions: []FollowUp{{Question: "   "}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.result.FirstFollowUp()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLeetCodeProfile_Solved(t *testing.T) {
	p := &LeetCodeProfile{
		Username: "gopher",
		AcSubmissionNum: []SubmissionCount{
			{Difficulty: "All", Count: 120},
			{Difficulty: "Easy", Count: 70},
			{Difficulty: "Medium", Count: 45},
			{Difficulty: "Hard", Count: 5},
		},
	}

	assert.Equal(t, 120, p.Solved("All"))
	assert.Equal(t, 45, p.Solved("Medium"))
	assert.Equal(t, 0, p.Solved("Unknown"))
}

func TestSkills_IsEmpty(t *testing.T) {
	assert.True(t, Skills{}.IsEmpty())
	assert.False(t, Skills{Tools: "git"}.IsEmpty())
}
