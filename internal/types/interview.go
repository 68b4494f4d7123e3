// Package types provides type definitions for the payloads shared by the interview-prep client,
// its session store and the backend contract.
package types

import "strings"

// QuestionItem is one generated interview question with the interviewer's rationale.
type QuestionItem struct {
	Question  string `json:"question"`
	Rationale string `json:"rationale,omitempty"`
}

// InterviewScript is the structured question set returned for an uploaded resume.
// Category JSON names are part of the backend contract.
type InterviewScript struct {
	OpeningRapportBuilding    []QuestionItem `json:"openingRapportBuilding"`
	ResumeSpecificProbes      []QuestionItem `json:"resumeSpecificProbes"`
	SkillCompetencyValidation []QuestionItem `json:"skillCompetencyValidation"`
	BehavioralCulturalFit     []QuestionItem `json:"behavioralCulturalFit"`
	CandidateMotivation       []QuestionItem `json:"candidateMotivation"`
}

// Category names a script section for display purposes.
type Category string

// Script categories in flattening order.
const (
	CategoryOpening    Category = "opening"
	CategoryResume     Category = "resume-specific"
	CategorySkill      Category = "skill"
	CategoryBehavioral Category = "behavioral"
	CategoryMotivation Category = "motivation"
)

// Sections returns the script categories in flattening order.
func (s *InterviewScript) Sections() []Section {
	return []Section{
		{Category: CategoryOpening, Items: s.OpeningRapportBuilding},
		{Category: CategoryResume, Items: s.ResumeSpecificProbes},
		{Category: CategorySkill, Items: s.SkillCompetencyValidation},
		{Category: CategoryBehavioral, Items: s.BehavioralCulturalFit},
		{Category: CategoryMotivation, Items: s.CandidateMotivation},
	}
}

// Section is one category of an InterviewScript.
type Section struct {
	Category Category
	Items    []QuestionItem
}

// Flatten concatenates the question texts of every category, preserving
// category order and the order within each category.
func (s *InterviewScript) Flatten() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, s.Len())
	for _, sec := range s.Sections() {
		for _, item := range sec.Items {
			out = append(out, item.Question)
		}
	}
	return out
}

// Len returns the total number of questions across all categories.
func (s *InterviewScript) Len() int {
	if s == nil {
		return 0
	}
	return len(s.OpeningRapportBuilding) + len(s.ResumeSpecificProbes) +
		len(s.SkillCompetencyValidation) + len(s.BehavioralCulturalFit) +
		len(s.CandidateMotivation)
}

// ScriptEnvelope is the body of GET /api/get.
type ScriptEnvelope struct {
	Question struct {
		InterviewScript InterviewScript `json:"interviewScript"`
	} `json:"Question"`
}

// AnsweredItem is one entry of the append-only answer log.
type AnsweredItem struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Feedback string  `json:"feedback"`
	Score    float64 `json:"score"`
}

// FollowUp is a follow-up question proposed by the scorer.
type FollowUp struct {
	Question string `json:"question"`
}

// MarkRequest is the body of POST /api/mark.
type MarkRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// MarkResult is the scoring outcome for one answer.
type MarkResult struct {
	FeedbackAndAddons string     `json:"feedbackAndAddons"`
	Score             float64    `json:"score"`
	FollowUpQuestions []FollowUp `json:"followUpQuestions"`
}

// FirstFollowUp returns the first follow-up with non-blank text.
// Entries with empty text do not count as follow-ups.
func (m *MarkResult) FirstFollowUp() (string, bool) {
	if m == nil || len(m.FollowUpQuestions) == 0 {
		return "", false
	}
	q := strings.TrimSpace(m.FollowUpQuestions[0].Question)
	if q == "" {
		return "", false
	}
	return q, true
}

// MarkEnvelope is the body of a POST /api/mark response.
type MarkEnvelope struct {
	Result MarkResult `json:"result"`
}

// UploadResult is the body of a POST /api/upload/ response.
type UploadResult struct {
	URL           string `json:"url"`
	ExtractedText string `json:"extractedText,omitempty"`
}
