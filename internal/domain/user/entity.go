package user

import "time"

type Role string

const (
	RoleAdmin Role = "admin" // Manages office location and schedule, excluded from rosters
	RoleUser  Role = "user"  // Records their own attendance
)

type User struct {
	ID           string
	Username     string
	FullName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
