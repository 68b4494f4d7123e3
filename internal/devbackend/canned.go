package devbackend

import (
	"context"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"

	"github.com/jonathan/interview-prep/internal/types"
)

// Generator produces scripts, scores and practice problems.
type Generator interface {
	ScriptFromText(ctx context.Context, resumeText string) (*types.InterviewScript, error)
	Mark(ctx context.Context, question, answer string) (*types.MarkResult, error)
	TechQuestions(ctx context.Context, jd string, limit int) ([]types.TechQuestion, error)
}

// followUpPrefix marks canned follow-ups so they never get one of their own.
const followUpPrefix = "Follow-up: "

// knownSkills are matched case-insensitively as whole words in resumes and job descriptions.
var knownSkills = []string{
	"Go", "Python", "Java", "JavaScript", "TypeScript", "Rust", "C++", "SQL",
	"React", "Node.js", "Django", "Spring", "Kubernetes", "Docker", "AWS",
	"GCP", "PostgreSQL", "Redis", "Kafka", "GraphQL", "Terraform",
}

type problem struct {
	slug, name string
}

var problemsBySkill = map[string][]problem{
	"sql":        {{"department-highest-salary", "Department Highest Salary"}, {"rank-scores", "Rank Scores"}},
	"redis":      {{"lru-cache", "LRU Cache"}, {"design-hashmap", "Design HashMap"}},
	"kafka":      {{"design-hit-counter", "Design Hit Counter"}, {"moving-average-from-data-stream", "Moving Average from Data Stream"}},
	"kubernetes": {{"course-schedule", "Course Schedule"}, {"task-scheduler", "Task Scheduler"}},
	"go":         {{"web-crawler-multithreaded", "Web Crawler Multithreaded"}, {"print-in-order", "Print in Order"}},
	"react":      {{"flatten-nested-list-iterator", "Flatten Nested List Iterator"}},
	"graphql":    {{"clone-graph", "Clone Graph"}},
}

var classicProblems = []problem{
	{"two-sum", "Two Sum"},
	{"valid-parentheses", "Valid Parentheses"},
	{"merge-intervals", "Merge Intervals"},
	{"number-of-islands", "Number of Islands"},
	{"longest-substring-without-repeating-characters", "Longest Substring Without Repeating Characters"},
	{"top-k-frequent-elements", "Top K Frequent Elements"},
	{"binary-tree-level-order-traversal", "Binary Tree Level Order Traversal"},
	{"word-break", "Word Break"},
}

// Canned is a deterministic Generator used when no model is configured.
type Canned struct{}

// ScriptFromText builds a script around the skills found in resumeText.
func (Canned) ScriptFromText(_ context.Context, resumeText string) (*types.InterviewScript, error) {
	skills := findSkills(resumeText)
	primary := "your strongest technology"
	secondary := "a tool you use every day"
	if len(skills) > 0 {
		primary = skills[0]
	}
	if len(skills) > 1 {
		secondary = skills[1]
	}

	return &types.InterviewScript{
		OpeningRapportBuilding: []types.QuestionItem{
			{Question: "To start, walk me through your background and what you are working on now.", Rationale: "Eases the candidate in and frames the conversation."},
		},
		ResumeSpecificProbes: []types.QuestionItem{
			{Question: "Pick the project on your resume you are proudest of. What was your exact contribution?", Rationale: "Separates individual work from team results."},
			{Question: "Which result on your resume was hardest to achieve, and how did you measure it?", Rationale: "Checks that claimed impact is real and measured."},
		},
		SkillCompetencyValidation: []types.QuestionItem{
			{Question: fmt.Sprintf("How have you used %s in production, and what problems did you hit?", primary), Rationale: "Validates depth in the main listed skill."},
			{Question: fmt.Sprintf("Explain a trade-off you made when working with %s.", secondary), Rationale: "Tests judgement beyond syntax."},
		},
		BehavioralCulturalFit: []types.QuestionItem{
			{Question: "Tell me about a time you disagreed with a teammate. How was it resolved?", Rationale: "STAR answer on collaboration."},
		},
		CandidateMotivation: []types.QuestionItem{
			{Question: "What are you looking for in your next role, and why now?", Rationale: "Checks motivation and fit."},
		},
	}, nil
}

// Mark scores an answer by how much substance it has. Only original questions get a follow-up.
func (Canned) Mark(_ context.Context, question, answer string) (*types.MarkResult, error) {
	words := len(strings.Fields(answer))
	score := min(10, 2+words/15)

	var feedback string
	switch {
	case words < 15:
		feedback = "The answer is too short to judge. Describe the situation, what you did and the outcome."
	case words < 60:
		feedback = "A reasonable start. Add a concrete example with numbers to make it convincing."
	default:
		feedback = "A well developed answer. Make sure the outcome and your own role stand out."
	}

	res := &types.MarkResult{FeedbackAndAddons: feedback, Score: float64(score)}
	if !strings.HasPrefix(question, followUpPrefix) {
		res.FollowUpQuestions = []types.FollowUp{
			{Question: followUpPrefix + "what was the hardest part of that, and what would you do differently?"},
		}
	}
	return res, nil
}

// TechQuestions picks problems for the skills named in jd, then fills with classics.
func (Canned) TechQuestions(_ context.Context, jd string, limit int) ([]types.TechQuestion, error) {
	seen := make(map[string]bool)
	var out []types.TechQuestion
	add := func(p problem) {
		if len(out) >= limit || seen[p.slug] {
			return
		}
		seen[p.slug] = true
		out = append(out, types.TechQuestion{Name: p.name, Link: "https://leetcode.com/problems/" + p.slug + "/"})
	}

	for _, skill := range findSkills(jd) {
		for _, p := range problemsBySkill[strings.ToLower(skill)] {
			add(p)
		}
	}

	// rotate the classics by the JD so different postings get different lists
	h := fnv.New32a()
	_, _ = h.Write([]byte(jd))
	start := int(h.Sum32() % uint32(len(classicProblems)))
	for i := range classicProblems {
		add(classicProblems[(start+i)%len(classicProblems)])
	}
	return out, nil
}

// cannedLeetCode returns stable pseudo statistics for a username.
func cannedLeetCode(username string) *types.LeetCodeProfile {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(username)))
	seed := int(h.Sum32())

	easy := 20 + seed%150
	medium := 10 + (seed/7)%200
	hard := (seed / 13) % 60
	return &types.LeetCodeProfile{
		Username: username,
		Ranking:  1000 + seed%900000,
		AcSubmissionNum: []types.SubmissionCount{
			{Difficulty: "All", Count: easy + medium + hard, Submissions: (easy + medium + hard) * 2},
			{Difficulty: "Easy", Count: easy, Submissions: easy * 2},
			{Difficulty: "Medium", Count: medium, Submissions: medium * 2},
			{Difficulty: "Hard", Count: hard, Submissions: hard * 2},
		},
	}
}

func findSkills(text string) []string {
	var found []string
	for _, s := range knownSkills {
		re := regexp.MustCompile(`(?i)(^|[^\w+.])` + regexp.QuoteMeta(s) + `($|[^\w+])`)
		if re.MatchString(text) {
			found = append(found, s)
		}
	}
	return found
}
