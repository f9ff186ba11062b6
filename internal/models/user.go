package models

import (
	"database/sql"
	"time"
)

// User is the database row for a user.
type User struct {
	UserID        string       `db:"user_id"`
	Email         string       `db:"email"`
	PasswordHash  string       `db:"password_hash"`
	FirstName     string       `db:"first_name"`
	LastName      string       `db:"last_name"`
	Phone         string       `db:"phone"`
	Role          string       `db:"role"`
	IsActive      bool         `db:"is_active"`
	EmailVerified bool         `db:"email_verified"`
	LastLogin     sql.NullTime `db:"last_login"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}
