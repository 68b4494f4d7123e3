package devbackend

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "C++", "Kubernetes"}, findSkills("Wrote Go and C++; ran it on kubernetes."))
	assert.Empty(t, findSkills("A long time ago in a galaxy far away."))
	assert.Equal(t, []string{"Java"}, findSkills("Java developer"))
}

func TestCanned_ScriptWithoutSkills(t *testing.T) {
	script, err := Canned{}.ScriptFromText(context.Background(), "Plain text without tech words")
	require.NoError(t, err)
	assert.Contains(t, script.SkillCompetencyValidation[0].Question, "your strongest technology")
	for _, q := range script.Flatten() {
		assert.NotEmpty(t, q)
	}
}

func TestCanned_MarkScores(t *testing.T) {
	short, err := Canned{}.Mark(context.Background(), "q", "Yes.")
	require.NoError(t, err)
	assert.Equal(t, 2.0, short.Score)
	assert.Contains(t, short.FeedbackAndAddons, "too short")

	long, err := Canned{}.Mark(context.Background(), "q", strings.Repeat("word ", 300))
	require.NoError(t, err)
	assert.Equal(t, 10.0, long.Score)
}

func TestCanned_TechQuestionsLimitAndDedupe(t *testing.T) {
	qs, err := Canned{}.TechQuestions(context.Background(), "Redis, Redis and more Redis", 20)
	require.NoError(t, err)
	assert.Len(t, qs, 2+len(classicProblems))

	seen := map[string]bool{}
	for _, q := range qs {
		assert.False(t, seen[q.Link], "duplicate %s", q.Link)
		seen[q.Link] = true
	}

	again, err := Canned{}.TechQuestions(context.Background(), "Redis, Redis and more Redis", 20)
	require.NoError(t, err)
	assert.Equal(t, qs, again)
}
