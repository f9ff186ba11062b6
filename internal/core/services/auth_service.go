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
	"github.com/David2024patton/studio4-dance/internal/platform/config"
	"github.com/David2024patton/studio4-dance/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AuthService struct {
	userRepo portsrepo.UserRepository
	cfg      *config.Config
	clock    portssvc.Clock
}

var _ portssvc.AuthSvcFacade = (*AuthService)(nil)

func NewAuthService(userRepo portsrepo.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg, clock: portssvc.RealClock{}}
}

// Register creates the user and, for parent signups, a parent profile with a
// zero-balance ledger account in the same database transaction. It returns the
// new user and a signed access token.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, string, error) {
	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleParent
	}
	if !role.Valid() {
		return nil, "", fmt.Errorf("unknown role %q: %w", req.Role, apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var parent *domain.Parent
	var account *domain.Account
	if role == domain.RoleParent {
		parent = &domain.Parent{
			ParentID:  uuid.NewString(),
			UserID:    user.UserID,
			CreatedAt: now,
		}
		account = &domain.Account{
			AccountID:      uuid.NewString(),
			ParentID:       parent.ParentID,
			CurrentBalance: decimal.Zero,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
	}

	if err := s.userRepo.CreateUserWithProfile(ctx, user, parent, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return &user, token, nil
}

// Login verifies the credentials and returns the user and a signed access
// token. Unknown emails and wrong passwords both report ErrUnauthorized so the
// response does not leak which one failed.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, "", apperrors.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, "", fmt.Errorf("account is deactivated: %w", apperrors.ErrForbidden)
	}

	now := s.clock.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.UserID, now); err != nil {
		return nil, "", fmt.Errorf("failed to record login time: %w", err)
	}
	user.LastLogin = &now

	token, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return user, token, nil
}
