package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is a competition, recital or other dated studio event. Events have no
// capacity cap; registration closes at the deadline when one is set.
type Event struct {
	EventID              string           `json:"eventID"`
	Title                string           `json:"title"`
	Description          string           `json:"description,omitempty"`
	EventType            string           `json:"eventType,omitempty"`
	Location             string           `json:"location,omitempty"`
	VenueAddress         string           `json:"venueAddress,omitempty"`
	StartDate            *time.Time       `json:"startDate,omitempty"`
	EndDate              *time.Time       `json:"endDate,omitempty"`
	RegistrationDeadline *time.Time       `json:"registrationDeadline,omitempty"`
	EntryFee             *decimal.Decimal `json:"entryFee,omitempty"`
	Notes                string           `json:"notes,omitempty"`
	IsActive             bool             `json:"isActive"`
	CreatedAt            time.Time        `json:"createdAt"`
}

// EventParticipant links a student to an event. Create-only; at most one
// registration per (student, event) pair.
type EventParticipant struct {
	ParticipantID    string    `json:"participantID"`
	EventID          string    `json:"eventID"`
	StudentID        string    `json:"studentID"`
	RegistrationDate time.Time `json:"registrationDate"`
	FeePaid          bool      `json:"feePaid"`
	Notes            string    `json:"notes,omitempty"`
}
