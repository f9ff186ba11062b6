package dto

import (
	"time"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EventResponse defines the data returned for an event.
type EventResponse struct {
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
}

// ToEventResponse converts a domain.Event to EventResponse.
func ToEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		EventID:              e.EventID,
		Title:                e.Title,
		Description:          e.Description,
		EventType:            e.EventType,
		Location:             e.Location,
		VenueAddress:         e.VenueAddress,
		StartDate:            e.StartDate,
		EndDate:              e.EndDate,
		RegistrationDeadline: e.RegistrationDeadline,
		EntryFee:             e.EntryFee,
		Notes:                e.Notes,
		IsActive:             e.IsActive,
	}
}

// ToListEventResponse converts a slice of domain.Event to DTOs.
func ToListEventResponse(events []domain.Event) []EventResponse {
	res := make([]EventResponse, len(events))
	for i := range events {
		res[i] = ToEventResponse(&events[i])
	}
	return res
}

// SaveEventRequest defines the data for creating or updating an event.
type SaveEventRequest struct {
	Title                string           `json:"title" binding:"required"`
	Description          string           `json:"description"`
	EventType            string           `json:"eventType"`
	Location             string           `json:"location"`
	VenueAddress         string           `json:"venueAddress"`
	StartDate            *time.Time       `json:"startDate"`
	EndDate              *time.Time       `json:"endDate"`
	RegistrationDeadline *time.Time       `json:"registrationDeadline"`
	EntryFee             *decimal.Decimal `json:"entryFee"`
	Notes                string           `json:"notes"`
}

// ListEventsParams defines query parameters for listing events.
type ListEventsParams struct {
	EventType    string `form:"eventType"`
	UpcomingOnly bool   `form:"upcomingOnly"`
}
