package domain

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User is an entry in the credential directory. The directory is built once
// at process start and never mutated, so there is no persistence lifecycle.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}
