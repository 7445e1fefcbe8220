package models

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. Password holds the bcrypt hash and is only
// populated by the login lookup; list/get projections leave it empty, and
// omitempty keeps it out of serialized responses.
type User struct {
	ID       int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}
