package domain

import "time"

// Role is the enumerated role attribute of a user. It gates which operations a
// caller may invoke; it is not a separate entity.
type Role string

const (
	RoleParent     Role = "parent"
	RoleOwner      Role = "owner"
	RoleAdmin      Role = "admin"
	RoleFinance    Role = "finance"
	RoleInstructor Role = "instructor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleParent, RoleOwner, RoleAdmin, RoleFinance, RoleInstructor:
		return true
	}
	return false
}

// IsStaff reports whether r is any non-parent role.
func (r Role) IsStaff() bool {
	return r.Valid() && r != RoleParent
}

// User represents an authenticated user of the application.
type User struct {
	UserID        string     `json:"userID"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Phone         string     `json:"phone,omitempty"`
	Role          Role       `json:"role"`
	IsActive      bool       `json:"isActive"`
	EmailVerified bool       `json:"emailVerified"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// FullName returns the user's display name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
