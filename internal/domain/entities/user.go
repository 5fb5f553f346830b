package entities

import (
	"time"
)

// User represents an account holder. Users are provisioned out of band
// (see cmd/seed); the API never creates or mutates them.
type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
