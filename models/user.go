package models

import (
	"strings"
	"time"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Credential is the user table row, keyed by the lowercased email.
type Credential struct {
	User         User   `json:"user"`
	PasswordHash string `json:"passwordHash"`
}

// ProfileUpdate carries the mutable subset of a User. Nil fields are left
// untouched.
type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

func (u User) Apply(p ProfileUpdate) User {
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Phone != nil {
		u.Phone = strings.TrimSpace(*p.Phone)
	}
	return u
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
