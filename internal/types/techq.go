package types

// TechQuestionsRequest is the body of POST /api/getTQ.
type TechQuestionsRequest struct {
	JD    string `json:"jd" validate:"required"`
	Limit int    `json:"limit" validate:"gte=1,lte=50"`
}

// TechQuestion is a practice problem suggested for a job description.
type TechQuestion struct {
	Name string `json:"name"`
	Link string `json:"link"`
}
