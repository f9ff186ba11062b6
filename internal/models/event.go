package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Event is the database row for an event.
type Event struct {
	EventID              string              `db:"event_id"`
	Title                string              `db:"title"`
	Description          string              `db:"description"`
	EventType            string              `db:"event_type"`
	Location             string              `db:"location"`
	VenueAddress         string              `db:"venue_address"`
	StartDate            sql.NullTime        `db:"start_date"`
	EndDate              sql.NullTime        `db:"end_date"`
	RegistrationDeadline sql.NullTime        `db:"registration_deadline"`
	EntryFee             decimal.NullDecimal `db:"entry_fee"`
	Notes                string              `db:"notes"`
	IsActive             bool                `db:"is_active"`
	CreatedAt            time.Time           `db:"created_at"`
}

// EventParticipant is the database row for an event registration.
type EventParticipant struct {
	ParticipantID    string    `db:"participant_id"`
	EventID          string    `db:"event_id"`
	StudentID        string    `db:"student_id"`
	RegistrationDate time.Time `db:"registration_date"`
	FeePaid          bool      `db:"fee_paid"`
	Notes            string    `db:"notes"`
}
