package dto

import (
	"time"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ClassResponse defines the data returned for a dance class.
type ClassResponse struct {
	ClassID        string          `json:"classID"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	StyleID        *string         `json:"styleID,omitempty"`
	LevelID        *string         `json:"levelID,omitempty"`
	InstructorID   *string         `json:"instructorID,omitempty"`
	DayOfWeek      *int            `json:"dayOfWeek,omitempty"`
	StartTime      string          `json:"startTime,omitempty"`
	EndTime        string          `json:"endTime,omitempty"`
	StudioRoom     string          `json:"studioRoom,omitempty"`
	MaxCapacity    int             `json:"maxCapacity"`
	MonthlyTuition decimal.Decimal `json:"monthlyTuition"`
	IsActive       bool            `json:"isActive"`
	StartDate      *time.Time      `json:"startDate,omitempty"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
}

// ToClassResponse converts a domain.DanceClass to ClassResponse.
func ToClassResponse(c *domain.DanceClass) ClassResponse {
	return ClassResponse{
		ClassID:        c.ClassID,
		Name:           c.Name,
		Description:    c.Description,
		StyleID:        c.StyleID,
		LevelID:        c.LevelID,
		InstructorID:   c.InstructorID,
		DayOfWeek:      c.DayOfWeek,
		StartTime:      c.StartTime,
		EndTime:        c.EndTime,
		StudioRoom:     c.StudioRoom,
		MaxCapacity:    c.MaxCapacity,
		MonthlyTuition: c.MonthlyTuition,
		IsActive:       c.IsActive,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
	}
}

// ToListClassResponse converts a slice of domain.DanceClass to DTOs.
func ToListClassResponse(classes []domain.DanceClass) []ClassResponse {
	res := make([]ClassResponse, len(classes))
	for i := range classes {
		res[i] = ToClassResponse(&classes[i])
	}
	return res
}

// ListClassesParams defines query parameters for listing classes.
type ListClassesParams struct {
	StyleID   string `form:"styleID"`
	LevelID   string `form:"levelID"`
	DayOfWeek *int   `form:"dayOfWeek" binding:"omitempty,min=0,max=6"`
}
