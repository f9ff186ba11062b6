package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Caller is the authenticated identity attached to a request. The core trusts
// it as produced by the auth middleware.
type Caller struct {
	UserID string
	Role   Role
}

// ScheduleEntry is one row of the joined public class schedule.
type ScheduleEntry struct {
	ClassID        string          `json:"classID"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Style          string          `json:"style,omitempty"`
	Level          string          `json:"level,omitempty"`
	Instructor     string          `json:"instructor,omitempty"`
	DayOfWeek      *int            `json:"dayOfWeek,omitempty"`
	StartTime      string          `json:"startTime,omitempty"`
	EndTime        string          `json:"endTime,omitempty"`
	StudioRoom     string          `json:"studioRoom,omitempty"`
	MonthlyTuition decimal.Decimal `json:"monthlyTuition"`
	MaxCapacity    int             `json:"maxCapacity"`
}

// EnrollmentDetail is an active enrollment joined with its class, style and level.
type EnrollmentDetail struct {
	EnrollmentID   string          `json:"enrollmentID"`
	StudentID      string          `json:"studentID"`
	StudentName    string          `json:"studentName"`
	ClassID        string          `json:"classID"`
	ClassName      string          `json:"className"`
	Style          string          `json:"style,omitempty"`
	Level          string          `json:"level,omitempty"`
	DayOfWeek      *int            `json:"dayOfWeek,omitempty"`
	StartTime      string          `json:"startTime,omitempty"`
	EndTime        string          `json:"endTime,omitempty"`
	StudioRoom     string          `json:"studioRoom,omitempty"`
	MonthlyTuition decimal.Decimal `json:"monthlyTuition"`
	EnrollmentDate *time.Time      `json:"enrollmentDate,omitempty"`
}

// ParticipantDetail is an event registration joined with student and parent info.
type ParticipantDetail struct {
	ParticipantID    string    `json:"participantID"`
	StudentID        string    `json:"studentID"`
	StudentName      string    `json:"studentName"`
	ParentName       string    `json:"parentName"`
	ParentEmail      string    `json:"parentEmail"`
	RegistrationDate time.Time `json:"registrationDate"`
	FeePaid          bool      `json:"feePaid"`
	Notes            string    `json:"notes,omitempty"`
}

// EventWithRegistration is an upcoming event annotated with whether any of the
// caller's students are registered.
type EventWithRegistration struct {
	Event
	IsRegistered bool `json:"isRegistered"`
}

// StudentEventDetail is a student's event registration joined with the event.
type StudentEventDetail struct {
	ParticipantID    string     `json:"participantID"`
	EventTitle       string     `json:"eventTitle"`
	EventType        string     `json:"eventType,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	Location         string     `json:"location,omitempty"`
	RegistrationDate time.Time  `json:"registrationDate"`
	FeePaid          bool       `json:"feePaid"`
}
