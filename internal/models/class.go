package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// DanceStyle is the database row for a dance style.
type DanceStyle struct {
	StyleID     string `db:"style_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Icon        string `db:"icon"`
	IsActive    bool   `db:"is_active"`
}

// ClassLevel is the database row for a class level.
type ClassLevel struct {
	LevelID     string        `db:"level_id"`
	Name        string        `db:"name"`
	Description string        `db:"description"`
	MinAge      sql.NullInt32 `db:"min_age"`
	MaxAge      sql.NullInt32 `db:"max_age"`
	SortOrder   int           `db:"sort_order"`
}

// Instructor is the database row for an instructor profile.
type Instructor struct {
	InstructorID    string        `db:"instructor_id"`
	UserID          string        `db:"user_id"`
	Bio             string        `db:"bio"`
	Specialties     []string      `db:"specialties"`
	YearsExperience sql.NullInt32 `db:"years_experience"`
	IsActive        bool          `db:"is_active"`
	CreatedAt       time.Time     `db:"created_at"`
}

// DanceClass is the database row for a class.
type DanceClass struct {
	ClassID        string          `db:"class_id"`
	Name           string          `db:"name"`
	Description    string          `db:"description"`
	StyleID        sql.NullString  `db:"style_id"`
	LevelID        sql.NullString  `db:"level_id"`
	InstructorID   sql.NullString  `db:"instructor_id"`
	DayOfWeek      sql.NullInt32   `db:"day_of_week"`
	StartTime      string          `db:"start_time"`
	EndTime        string          `db:"end_time"`
	StudioRoom     string          `db:"studio_room"`
	MaxCapacity    int             `db:"max_capacity"`
	MonthlyTuition decimal.Decimal `db:"monthly_tuition"`
	IsActive       bool            `db:"is_active"`
	StartDate      sql.NullTime    `db:"start_date"`
	EndDate        sql.NullTime    `db:"end_date"`
	CreatedAt      time.Time       `db:"created_at"`
}

// Enrollment is the database row linking a student to a class.
type Enrollment struct {
	EnrollmentID   string       `db:"enrollment_id"`
	StudentID      string       `db:"student_id"`
	ClassID        string       `db:"class_id"`
	EnrollmentDate time.Time    `db:"enrollment_date"`
	Status         string       `db:"status"`
	DropDate       sql.NullTime `db:"drop_date"`
	CreatedAt      time.Time    `db:"created_at"`
}
