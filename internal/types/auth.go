package types

// LoginRequest is the body of POST /user/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest is the body of POST /user/add.
type SignupRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=4"`
	LinkedinUname string `json:"linkedinUname,omitempty"`
	LeetcodeUname string `json:"leetcodeUname,omitempty"`
	Skills        string `json:"skills,omitempty"`
	Bio           string `json:"bio,omitempty"`
}

// User is the account returned by the backend. Unknown fields are ignored.
type User struct {
	ID            string `json:"_id,omitempty"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	LinkedinUname string `json:"linkedinUname,omitempty"`
	LeetcodeUname string `json:"leetcodeUname,omitempty"`
	Skills        string `json:"skills,omitempty"`
	Bio           string `json:"bio,omitempty"`
}

// LoginResponse is the body of a successful POST /user/login.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// SignupResponse is the body of a successful POST /user/add.
type SignupResponse struct {
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}
