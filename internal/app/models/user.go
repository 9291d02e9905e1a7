package models

import (
	"time"
)

// User defines the user model based on the 'users' table. Users are created
// at registration and never deleted.
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Username     string    `json:"username" db:"username" example:"alice"`
	Email        string    `json:"email" db:"email" example:"alice@campus.edu"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
}
