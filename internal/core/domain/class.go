package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DanceStyle is a lookup entity describing a style of dance (ballet, jazz, ...).
type DanceStyle struct {
	StyleID     string `json:"styleID"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// ClassLevel is a lookup entity describing a difficulty/age level.
type ClassLevel struct {
	LevelID     string `json:"levelID"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MinAge      *int   `json:"minAge,omitempty"`
	MaxAge      *int   `json:"maxAge,omitempty"`
	SortOrder   int    `json:"sortOrder"`
}

// Instructor is the teaching profile linked 1:1 to an instructor-role user.
type Instructor struct {
	InstructorID    string    `json:"instructorID"`
	UserID          string    `json:"userID"`
	Bio             string    `json:"bio,omitempty"`
	Specialties     []string  `json:"specialties,omitempty"`
	YearsExperience *int      `json:"yearsExperience,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

// DanceClass is a recurring weekly class with a capped roster.
type DanceClass struct {
	ClassID        string          `json:"classID"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	StyleID        *string         `json:"styleID,omitempty"`
	LevelID        *string         `json:"levelID,omitempty"`
	InstructorID   *string         `json:"instructorID,omitempty"`
	DayOfWeek      *int            `json:"dayOfWeek,omitempty"` // 0=Sunday .. 6=Saturday
	StartTime      string          `json:"startTime,omitempty"` // "16:30"
	EndTime        string          `json:"endTime,omitempty"`
	StudioRoom     string          `json:"studioRoom,omitempty"`
	MaxCapacity    int             `json:"maxCapacity"`
	MonthlyTuition decimal.Decimal `json:"monthlyTuition"`
	IsActive       bool            `json:"isActive"`
	StartDate      *time.Time      `json:"startDate,omitempty"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// EnrollmentStatus is the state of an enrollment. The only transition is
// active -> dropped, which is terminal.
type EnrollmentStatus string

const (
	EnrollmentActive  EnrollmentStatus = "active"
	EnrollmentDropped EnrollmentStatus = "dropped"
)

// Enrollment links a student to a class.
type Enrollment struct {
	EnrollmentID   string           `json:"enrollmentID"`
	StudentID      string           `json:"studentID"`
	ClassID        string           `json:"classID"`
	EnrollmentDate time.Time        `json:"enrollmentDate"`
	Status         EnrollmentStatus `json:"status"`
	DropDate       *time.Time       `json:"dropDate,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}
