package repositories

import (
	"context"
	"time"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
)

// ClassFilter narrows class listings.
type ClassFilter struct {
	StyleID   string
	LevelID   string
	DayOfWeek *int
}

// ClassRepository defines read operations for dance classes.
type ClassRepository interface {
	FindClasses(ctx context.Context, filter ClassFilter) ([]domain.DanceClass, error)
	FindClassByID(ctx context.Context, classID string) (*domain.DanceClass, error)
	FindSchedule(ctx context.Context) ([]domain.ScheduleEntry, error)
}

// EnrollmentRepository defines persistence operations for enrollments.
type EnrollmentRepository interface {
	FindActiveEnrollment(ctx context.Context, studentID, classID string) (*domain.Enrollment, error)
	// CreateEnrollment inserts the enrollment after re-checking capacity under
	// a row lock on the class, all in one database transaction. Returns
	// apperrors.ErrConflict when the class is full and apperrors.ErrDuplicate
	// when an active enrollment already exists for the pair.
	CreateEnrollment(ctx context.Context, enrollment domain.Enrollment) error
	// DropEnrollment moves the active enrollment for the pair to dropped.
	DropEnrollment(ctx context.Context, studentID, classID string, dropDate time.Time) error
	CountActiveEnrollments(ctx context.Context, classID string) (int, error)
	FindActiveEnrollmentDetails(ctx context.Context, studentIDs []string) ([]domain.EnrollmentDetail, error)
}
