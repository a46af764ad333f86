package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("user not found")
	ErrEmailAlreadyUsed = errors.New("email already registered")
	ErrEmailRequired    = errors.New("email is required")
)

// User represents a registered user. Users are provisioned out of band (see
// cmd/seed); the REST surface only authenticates them.
type User struct {
	ID           string // UUID
	Email        string // normalized: lowercased, trimmed
	FirstName    string
	LastName     string
	IsAdmin      bool
	RegisteredAt time.Time
	UpdatedAt    time.Time
}

// FullName renders the user the way admin listings display them.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
