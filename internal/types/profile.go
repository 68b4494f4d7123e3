package types

// UserProfile is the locally stored profile shown by the profile view.
type UserProfile struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	Skills        string `json:"skills"`
	Bio           string `json:"bio"`
	LinkedinUname string `json:"linkedinUname,omitempty"`
	LeetcodeUname string `json:"leetcodeUname,omitempty"`
}

// LeetCodeRequest is the body of POST /leetcode/getUser.
type LeetCodeRequest struct {
	Username string `json:"username" validate:"required"`
}

// SubmissionCount is the solved count for one difficulty.
type SubmissionCount struct {
	Difficulty  string `json:"difficulty"`
	Count       int    `json:"count"`
	Submissions int    `json:"submissions"`
}

// LeetCodeProfile is the documented subset of the LeetCode user payload.
type LeetCodeProfile struct {
	Username        string            `json:"username"`
	Ranking         int               `json:"ranking"`
	AcSubmissionNum []SubmissionCount `json:"acSubmissionNum"`
}

// Solved returns the solved count for a difficulty ("All", "Easy", "Medium", "Hard").
func (p *LeetCodeProfile) Solved(difficulty string) int {
	for _, c := range p.AcSubmissionNum {
		if c.Difficulty == difficulty {
			return c.Count
		}
	}
	return 0
}
