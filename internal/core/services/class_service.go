package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/David2024patton/studio4-dance/internal/apperrors"
	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portsrepo "github.com/David2024patton/studio4-dance/internal/core/ports/repositories"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/dto"
	"github.com/google/uuid"
)

type ClassService struct {
	classRepo      portsrepo.ClassRepository
	enrollmentRepo portsrepo.EnrollmentRepository
	parentRepo     portsrepo.ParentRepository
	studentRepo    portsrepo.StudentRepository
	clock          portssvc.Clock
}

var _ portssvc.ClassSvcFacade = (*ClassService)(nil)

func NewClassService(
	classRepo portsrepo.ClassRepository,
	enrollmentRepo portsrepo.EnrollmentRepository,
	parentRepo portsrepo.ParentRepository,
	studentRepo portsrepo.StudentRepository,
) *ClassService {
	return &ClassService{
		classRepo:      classRepo,
		enrollmentRepo: enrollmentRepo,
		parentRepo:     parentRepo,
		studentRepo:    studentRepo,
		clock:          portssvc.RealClock{},
	}
}

func (s *ClassService) ListClasses(ctx context.Context, params dto.ListClassesParams) ([]domain.DanceClass, error) {
	return s.classRepo.FindClasses(ctx, portsrepo.ClassFilter{
		StyleID:   params.StyleID,
		LevelID:   params.LevelID,
		DayOfWeek: params.DayOfWeek,
	})
}

func (s *ClassService) GetClass(ctx context.Context, classID string) (*domain.DanceClass, error) {
	return s.classRepo.FindClassByID(ctx, classID)
}

func (s *ClassService) GetSchedule(ctx context.Context) ([]domain.ScheduleEntry, error) {
	return s.classRepo.FindSchedule(ctx)
}

// authorizeStudent loads the student and verifies the caller may act for them.
// Staff act for any student; parents only for their own.
func (s *ClassService) authorizeStudent(ctx context.Context, caller domain.Caller, studentID string) (*domain.Student, error) {
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

// EnrollStudent enrolls a student into a class. The gate runs in order: class
// exists and is active, caller owns the student, no active duplicate, room on
// the roster. The final capacity check happens under a row lock in the
// repository so concurrent enrollments cannot oversubscribe the class.
func (s *ClassService) EnrollStudent(ctx context.Context, caller domain.Caller, classID, studentID string) (*domain.Enrollment, error) {
	class, err := s.classRepo.FindClassByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if !class.IsActive {
		return nil, fmt.Errorf("class is not active: %w", apperrors.ErrNotFound)
	}

	student, err := s.authorizeStudent(ctx, caller, studentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.enrollmentRepo.FindActiveEnrollment(ctx, student.StudentID, class.ClassID); err == nil {
		return nil, fmt.Errorf("student already enrolled in class: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	activeCount, err := s.enrollmentRepo.CountActiveEnrollments(ctx, class.ClassID)
	if err != nil {
		return nil, err
	}
	if activeCount >= class.MaxCapacity {
		return nil, fmt.Errorf("class is at capacity: %w", apperrors.ErrConflict)
	}

	now := s.clock.Now()
	enrollment := domain.Enrollment{
		EnrollmentID:   uuid.NewString(),
		StudentID:      student.StudentID,
		ClassID:        class.ClassID,
		EnrollmentDate: now,
		Status:         domain.EnrollmentActive,
		CreatedAt:      now,
	}

	if err := s.enrollmentRepo.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// DropStudent moves the student's active enrollment in the class to dropped.
func (s *ClassService) DropStudent(ctx context.Context, caller domain.Caller, classID, studentID string) error {
	student, err := s.authorizeStudent(ctx, caller, studentID)
	if err != nil {
		return err
	}
	return s.enrollmentRepo.DropEnrollment(ctx, student.StudentID, classID, s.clock.Now())
}
