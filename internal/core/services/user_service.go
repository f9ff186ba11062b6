package services

import (
	"context"
	"fmt"

	"github.com/David2024patton/studio4-dance/internal/apperrors"
	"github.com/David2024patton/studio4-dance/internal/core/authz"
	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portsrepo "github.com/David2024patton/studio4-dance/internal/core/ports/repositories"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/dto"
)

type UserService struct {
	userRepo portsrepo.UserRepository
	clock    portssvc.Clock
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

func NewUserService(userRepo portsrepo.UserRepository) *UserService {
	return &UserService{userRepo: userRepo, clock: portssvc.RealClock{}}
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates the caller's own profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Phone = req.Phone
	user.UpdatedAt = s.clock.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, caller domain.Caller, limit, offset int) ([]domain.User, error) {
	if !authz.Allowed(caller.Role, authz.ResourceUsers, authz.OpList) {
		return nil, apperrors.ErrForbidden
	}
	return s.userRepo.FindUsers(ctx, limit, offset)
}

// GetUser returns any user's profile. Staff only; users read their own
// profile through GetUserByID.
func (s *UserService) GetUser(ctx context.Context, caller domain.Caller, userID string) (*domain.User, error) {
	if caller.UserID != userID && !authz.Allowed(caller.Role, authz.ResourceUsers, authz.OpReadAny) {
		return nil, apperrors.ErrForbidden
	}
	return s.userRepo.FindUserByID(ctx, userID)
}

// DeactivateUser disables a user's login. Owner only; self-deactivation is
// rejected so the studio cannot lock itself out.
func (s *UserService) DeactivateUser(ctx context.Context, caller domain.Caller, userID string) error {
	if !authz.Allowed(caller.Role, authz.ResourceUsers, authz.OpDelete) {
		return apperrors.ErrForbidden
	}
	if caller.UserID == userID {
		return fmt.Errorf("cannot deactivate own account: %w", apperrors.ErrConflict)
	}
	return s.userRepo.DeactivateUser(ctx, userID)
}
