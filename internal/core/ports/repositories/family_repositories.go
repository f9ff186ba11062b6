package repositories

import (
	"context"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
)

// ParentRepository defines persistence operations for parent profiles.
type ParentRepository interface {
	FindParentByID(ctx context.Context, parentID string) (*domain.Parent, error)
	FindParentByUserID(ctx context.Context, userID string) (*domain.Parent, error)
}

// StudentRepository defines persistence operations for students.
type StudentRepository interface {
	FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error)
	FindStudentsByParentID(ctx context.Context, parentID string) ([]domain.Student, error)
}
