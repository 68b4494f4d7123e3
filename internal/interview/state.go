package interview

import "fmt"

// State is the controller's position in the interview flow.
type State int

// Controller states.
const (
	StateLoading State = iota
	StateAwaitingAnswer
	StateSubmitting
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAwaitingAnswer:
		return "awaiting-answer"
	case StateSubmitting:
		return "submitting"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Progress is the position within the flattened question list.
type Progress struct {
	Index      int
	IsFollowUp bool
	Total      int
}

// Number returns the 1-based question number for display.
func (p Progress) Number() int {
	return p.Index + 1
}

// Outcome describes what one successful submission did.
type Outcome struct {
	Answered  AnsweredItem
	FollowUp  bool // the next question is a follow-up in the same slot
	Completed bool // the interview is over
	Next      Progress
}
