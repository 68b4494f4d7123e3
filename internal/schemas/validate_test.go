package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_EmbeddedSchemasCompile(t *testing.T) {
	for _, name := range []Name{
		LoginResponse, SignupResponse, UploadResponse, ScriptResponse, MarkResponse,
		TechQuestionsResponse, LeetCodeResponse, AnswerLog, ResumeList,
	} {
		t.Run(string(name), func(t *testing.T) {
			_, err := load(name)
			assert.NoError(t, err)
		})
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope", []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidate_TechQuestions_OnlyArrayShapeAccepted(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "array of problems", body: `[{"name":"Two Sum","link":"https://leetcode.com/problems/two-sum"}]`},
		{name: "empty array", body: `[]`},
		{name: "wrapped in questions", body: `{"questions":[{"name":"Two Sum","link":"x"}]}`, wantErr: true},
		{name: "wrapped in data", body: `{"data":[{"name":"Two Sum","link":"x"}]}`, wantErr: true},
		{name: "string payload", body: `"[{\"name\":\"Two Sum\"}]"`, wantErr: true},
		{name: "missing link", body: `[{"name":"Two Sum"}]`, wantErr: true},
		{name: "not json", body: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(TechQuestionsResponse, []byte(tt.body))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, TechQuestionsResponse, vErr.Schema)
			assert.NotEmpty(t, vErr.Errors)
		})
	}
}

func TestValidate_MarkResponse(t *testing.T) {
	assert.NoError(t, Validate(MarkResponse, []byte(`{"result":{"feedbackAndAddons":"ok","score":7,"followUpQuestions":[{"question":"why?"}]}}`)))
	assert.NoError(t, Validate(MarkResponse, []byte(`{"result":{"feedbackAndAddons":"ok","score":7}}`)))
	assert.NoError(t, Validate(MarkResponse, []byte(`{"result":{"feedbackAndAddons":"ok","score":6,"followUpQuestions":null}}`)))
	assert.Error(t, Validate(MarkResponse, []byte(`{"result":{"feedbackAndAddons":"ok","score":6,"followUpQuestions":"why?"}}`)))
	assert.Error(t, Validate(MarkResponse, []byte(`{"result":{"feedbackAndAddons":"ok","score":11}}`)))
	assert.Error(t, Validate(MarkResponse, []byte(`{"feedbackAndAddons":"ok","score":5}`)))
}

func TestValidate_ScriptResponse(t *testing.T) {
	assert.NoError(t, Validate(ScriptResponse, []byte(`{"Question":{"interviewScript":{"openingRapportBuilding":[{"question":"Hi"}]}}}`)))
	assert.Error(t, Validate(ScriptResponse, []byte(`{"interviewScript":{}}`)))
	assert.Error(t, Validate(ScriptResponse, []byte(`{"Question":{"interviewScript":{"openingRapportBuilding":[{"rationale":"no question"}]}}}`)))
}

func TestValidate_AnswerLog(t *testing.T) {
	assert.NoError(t, Validate(AnswerLog, []byte(`[{"question":"q","answer":"a","feedback":"f","score":4}]`)))
	assert.Error(t, Validate(AnswerLog, []byte(`{"question":"q"}`)))
	assert.Error(t, Validate(AnswerLog, []byte(`[{"question":"q"}]`)))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{
		Schema: UploadResponse,
		Errors: []FieldError{{Field: "url", Message: "url is required"}},
	}
	assert.Contains(t, err.Error(), "upload_response validation failed")
	assert.Contains(t, err.Error(), "1. url: url is required")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name":"x"}`))

	err := ValidateJSONString(schema, `{}`)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "(root)", vErr.Errors[0].Field)
}
