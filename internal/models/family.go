package models

import (
	"database/sql"
	"time"
)

// Parent is the database row for a parent profile.
type Parent struct {
	ParentID              string    `db:"parent_id"`
	UserID                string    `db:"user_id"`
	EmergencyContactName  string    `db:"emergency_contact_name"`
	EmergencyContactPhone string    `db:"emergency_contact_phone"`
	AddressLine1          string    `db:"address_line1"`
	AddressLine2          string    `db:"address_line2"`
	City                  string    `db:"city"`
	State                 string    `db:"state"`
	ZipCode               string    `db:"zip_code"`
	Notes                 string    `db:"notes"`
	CreatedAt             time.Time `db:"created_at"`
}

// Student is the database row for a student.
type Student struct {
	StudentID    string       `db:"student_id"`
	ParentID     string       `db:"parent_id"`
	FirstName    string       `db:"first_name"`
	LastName     string       `db:"last_name"`
	DateOfBirth  sql.NullTime `db:"date_of_birth"`
	Gender       string       `db:"gender"`
	SchoolGrade  string       `db:"school_grade"`
	MedicalNotes string       `db:"medical_notes"`
	PhotoRelease bool         `db:"photo_release"`
	IsActive     bool         `db:"is_active"`
	CreatedAt    time.Time    `db:"created_at"`
}
