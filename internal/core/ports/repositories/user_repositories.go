package repositories

import (
	"context"
	"time"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// CreateUserWithProfile inserts the user and, when parent/account are
	// non-nil, the parent profile and its ledger account in one database
	// transaction.
	CreateUserWithProfile(ctx context.Context, user domain.User, parent *domain.Parent, account *domain.Account) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
	DeactivateUser(ctx context.Context, userID string) error
}
