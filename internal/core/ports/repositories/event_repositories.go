package repositories

import (
	"context"
	"time"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
)

// EventFilter narrows event listings.
type EventFilter struct {
	EventType    string
	UpcomingOnly bool
}

// EventRepository defines persistence operations for events.
type EventRepository interface {
	FindEvents(ctx context.Context, filter EventFilter) ([]domain.Event, error)
	FindEventByID(ctx context.Context, eventID string) (*domain.Event, error)
	FindUpcomingEvents(ctx context.Context, from time.Time, limit int) ([]domain.Event, error)
	SaveEvent(ctx context.Context, event domain.Event) error
	UpdateEvent(ctx context.Context, event domain.Event) error
	DeactivateEvent(ctx context.Context, eventID string) error
}

// EventParticipantRepository defines persistence operations for registrations.
type EventParticipantRepository interface {
	FindParticipant(ctx context.Context, eventID, studentID string) (*domain.EventParticipant, error)
	// SaveParticipant inserts the registration; returns apperrors.ErrDuplicate
	// when the (event, student) pair is already registered.
	SaveParticipant(ctx context.Context, participant domain.EventParticipant) error
	FindParticipantDetails(ctx context.Context, eventID string) ([]domain.ParticipantDetail, error)
	FindRegisteredEventIDs(ctx context.Context, studentIDs []string, eventIDs []string) (map[string]bool, error)
	FindStudentEventDetails(ctx context.Context, studentID string) ([]domain.StudentEventDetail, error)
}
