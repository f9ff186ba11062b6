package domain

import "time"

// Parent is the billing/guardian profile linked 1:1 to a parent-role user.
type Parent struct {
	ParentID              string    `json:"parentID"`
	UserID                string    `json:"userID"`
	EmergencyContactName  string    `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone string    `json:"emergencyContactPhone,omitempty"`
	AddressLine1          string    `json:"addressLine1,omitempty"`
	AddressLine2          string    `json:"addressLine2,omitempty"`
	City                  string    `json:"city,omitempty"`
	State                 string    `json:"state,omitempty"`
	ZipCode               string    `json:"zipCode,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
}

// Student is a dancer belonging to a parent.
type Student struct {
	StudentID    string     `json:"studentID"`
	ParentID     string     `json:"parentID"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	SchoolGrade  string     `json:"schoolGrade,omitempty"`
	MedicalNotes string     `json:"medicalNotes,omitempty"`
	PhotoRelease bool       `json:"photoRelease"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// FullName returns the student's display name.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
