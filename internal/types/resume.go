package types

// ResumeDocument is a resume created in the builder and persisted locally.
type ResumeDocument struct {
	ID         int64        `json:"id"`
	CreatedAt  string       `json:"createdAt"`
	Name       string       `json:"name" validate:"required"`
	Email      string       `json:"email" validate:"required,resume_email"`
	Phone      string       `json:"phone" validate:"required,resume_phone"`
	LinkedIn   string       `json:"linkedin,omitempty"`
	GitHub     string       `json:"github,omitempty"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
	Skills     Skills       `json:"skills"`
}

// Education is one education entry.
type Education struct {
	School   string `json:"school"`
	Degree   string `json:"degree"`
	Location string `json:"location"`
	Duration string `json:"duration"`
}

// Experience is one work experience entry.
type Experience struct {
	Role     string   `json:"role"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	Duration string   `json:"duration"`
	Points   []string `json:"points"`
}

// Project is one project entry.
type Project struct {
	Title    string   `json:"title"`
	Tech     string   `json:"tech"`
	Duration string   `json:"duration"`
	Points   []string `json:"points"`
}

// Skills groups comma separated skill lists by kind.
type Skills struct {
	Languages  string `json:"Languages"`
	Frameworks string `json:"Frameworks"`
	Tools      string `json:"Tools"`
	Libraries  string `json:"Libraries"`
}

// IsEmpty reports whether no skill group has content.
func (s Skills) IsEmpty() bool {
	return s.Languages == "" && s.Frameworks == "" && s.Tools == "" && s.Libraries == ""
}
