package dto

import (
	"github.com/David2024patton/studio4-dance/internal/core/domain"
)

// ParentProfileResponse is the parent-profile slice of the dashboard.
type ParentProfileResponse struct {
	ParentID              string `json:"parentID"`
	EmergencyContactName  string `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone string `json:"emergencyContactPhone,omitempty"`
	AddressLine1          string `json:"addressLine1,omitempty"`
	City                  string `json:"city,omitempty"`
	State                 string `json:"state,omitempty"`
	ZipCode               string `json:"zipCode,omitempty"`
}

// DashboardSummary holds the headline counts of a parent dashboard.
type DashboardSummary struct {
	TotalStudents           int `json:"totalStudents"`
	ActiveEnrollments       int `json:"activeEnrollments"`
	UpcomingEventsCount     int `json:"upcomingEventsCount"`
	RecentTransactionsCount int `json:"recentTransactionsCount"`
}

// DashboardResponse composes ledger, enrollment and event data for a parent.
type DashboardResponse struct {
	User           UserResponse                    `json:"user"`
	Parent         ParentProfileResponse           `json:"parent"`
	Students       []domain.Student                `json:"students"`
	Account        *AccountResponse                `json:"account"`
	Transactions   []TransactionResponse           `json:"transactions"`
	Enrollments    []domain.EnrollmentDetail       `json:"enrollments"`
	UpcomingEvents []domain.EventWithRegistration  `json:"upcomingEvents"`
	Summary        DashboardSummary                `json:"summary"`
}

// StudentDetailResponse is the per-student drill-down view.
type StudentDetailResponse struct {
	Student                domain.Student              `json:"student"`
	Enrollments            []domain.EnrollmentDetail   `json:"enrollments"`
	Events                 []domain.StudentEventDetail `json:"events"`
	TotalActiveEnrollments int                         `json:"totalActiveEnrollments"`
	TotalEvents            int                         `json:"totalEvents"`
}
