package models

import "time"

type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	// PasswordHash is never serialized; the `json:"-"` tag keeps it out of every response body.
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
