package domain

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor is the already-authenticated user on whose behalf a command runs.
type Actor struct {
	UserID string
	Role   Role
}

// IsCoordinator reports whether the actor holds the coordinator role.
func (a Actor) IsCoordinator() bool {
	return a.Role == RoleCoordinator
}
