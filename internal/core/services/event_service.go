package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/David2024patton/studio4-dance/internal/apperrors"
	"github.com/David2024patton/studio4-dance/internal/core/authz"
	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portsrepo "github.com/David2024patton/studio4-dance/internal/core/ports/repositories"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/dto"
	"github.com/google/uuid"
)

type EventService struct {
	eventRepo       portsrepo.EventRepository
	participantRepo portsrepo.EventParticipantRepository
	parentRepo      portsrepo.ParentRepository
	studentRepo     portsrepo.StudentRepository
	clock           portssvc.Clock
}

var _ portssvc.EventSvcFacade = (*EventService)(nil)

func NewEventService(
	eventRepo portsrepo.EventRepository,
	participantRepo portsrepo.EventParticipantRepository,
	parentRepo portsrepo.ParentRepository,
	studentRepo portsrepo.StudentRepository,
) *EventService {
	return &EventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		parentRepo:      parentRepo,
		studentRepo:     studentRepo,
		clock:           portssvc.RealClock{},
	}
}

func (s *EventService) ListEvents(ctx context.Context, params dto.ListEventsParams) ([]domain.Event, error) {
	return s.eventRepo.FindEvents(ctx, portsrepo.EventFilter{
		EventType:    params.EventType,
		UpcomingOnly: params.UpcomingOnly,
	})
}

func (s *EventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	return s.eventRepo.FindEventByID(ctx, eventID)
}

// RegisterStudent registers a student for an event. The gate runs in order:
// event exists and is active, registration deadline not passed, caller owns
// the student, no duplicate registration.
func (s *EventService) RegisterStudent(ctx context.Context, caller domain.Caller, eventID, studentID string) (*domain.EventParticipant, error) {
	event, err := s.eventRepo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsActive {
		return nil, fmt.Errorf("event is not active: %w", apperrors.ErrNotFound)
	}

	now := s.clock.Now()
	// The deadline is a calendar date; registration stays open through the
	// whole deadline day.
	if event.RegistrationDeadline != nil && dateOf(now).After(dateOf(*event.RegistrationDeadline)) {
		return nil, fmt.Errorf("registration deadline has passed: %w", apperrors.ErrConflict)
	}

	student, err := s.authorizeStudent(ctx, caller, studentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.participantRepo.FindParticipant(ctx, event.EventID, student.StudentID); err == nil {
		return nil, fmt.Errorf("student already registered for event: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	participant := domain.EventParticipant{
		ParticipantID:    uuid.NewString(),
		EventID:          event.EventID,
		StudentID:        student.StudentID,
		RegistrationDate: now,
	}

	if err := s.participantRepo.SaveParticipant(ctx, participant); err != nil {
		return nil, err
	}
	return &participant, nil
}

// ListParticipants returns the roster for an event. Staff only.
func (s *EventService) ListParticipants(ctx context.Context, caller domain.Caller, eventID string) ([]domain.ParticipantDetail, error) {
	if !authz.Allowed(caller.Role, authz.ResourceEvents, authz.OpParticipants) {
		return nil, apperrors.ErrForbidden
	}
	if _, err := s.eventRepo.FindEventByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.participantRepo.FindParticipantDetails(ctx, eventID)
}

func (s *EventService) CreateEvent(ctx context.Context, caller domain.Caller, req dto.SaveEventRequest) (*domain.Event, error) {
	if !authz.Allowed(caller.Role, authz.ResourceEvents, authz.OpCreate) {
		return nil, apperrors.ErrForbidden
	}

	event := domain.Event{
		EventID:              uuid.NewString(),
		Title:                req.Title,
		Description:          req.Description,
		EventType:            req.EventType,
		Location:             req.Location,
		VenueAddress:         req.VenueAddress,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		RegistrationDeadline: req.RegistrationDeadline,
		EntryFee:             req.EntryFee,
		Notes:                req.Notes,
		IsActive:             true,
		CreatedAt:            s.clock.Now(),
	}

	if err := s.eventRepo.SaveEvent(ctx, event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, caller domain.Caller, eventID string, req dto.SaveEventRequest) (*domain.Event, error) {
	if !authz.Allowed(caller.Role, authz.ResourceEvents, authz.OpUpdate) {
		return nil, apperrors.ErrForbidden
	}

	event, err := s.eventRepo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	event.Title = req.Title
	event.Description = req.Description
	event.EventType = req.EventType
	event.Location = req.Location
	event.VenueAddress = req.VenueAddress
	event.StartDate = req.StartDate
	event.EndDate = req.EndDate
	event.RegistrationDeadline = req.RegistrationDeadline
	event.EntryFee = req.EntryFee
	event.Notes = req.Notes

	if err := s.eventRepo.UpdateEvent(ctx, *event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent deactivates an event. Existing registrations are kept; the
// event simply stops being listed or accepting registrations.
func (s *EventService) DeleteEvent(ctx context.Context, caller domain.Caller, eventID string) error {
	if !authz.Allowed(caller.Role, authz.ResourceEvents, authz.OpDelete) {
		return apperrors.ErrForbidden
	}
	return s.eventRepo.DeactivateEvent(ctx, eventID)
}

// dateOf truncates a timestamp to its calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// authorizeStudent mirrors the enrollment ownership check for registrations.
func (s *EventService) authorizeStudent(ctx context.Context, caller domain.Caller, studentID string) (*domain.Student, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if caller.Role.IsStaff() {
		return student, nil
	}

	parent, err := s.parentRepo.FindParentByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, apperrors.ErrForbidden
	}
	if student.ParentID != parent.ParentID {
		return nil, fmt.Errorf("student does not belong to caller: %w", apperrors.ErrForbidden)
	}
	return student, nil
}
