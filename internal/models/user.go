package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account record. PasswordHash never leaves the server: the json
// tag "-" keeps it out of every response body.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
