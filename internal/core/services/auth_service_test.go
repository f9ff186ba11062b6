package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/David2024patton/studio4-dance/internal/apperrors"
	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/core/services"
	"github.com/David2024patton/studio4-dance/internal/dto"
	"github.com/David2024patton/studio4-dance/internal/platform/config"
	"github.com/David2024patton/studio4-dance/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "studio4-test",
	}
	suite.service = services.NewAuthService(suite.mockUserRepo, cfg)
}

func (suite *AuthServiceTestSuite) TestRegister_ParentGetsProfileAndAccount() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:     "parent@example.com",
		Password:  "password123",
		FirstName: "Dana",
		LastName:  "Miller",
	}

	suite.mockUserRepo.On("CreateUserWithProfile", ctx,
		mock.MatchedBy(func(user domain.User) bool {
			return user.Email == req.Email &&
				user.Role == domain.RoleParent &&
				user.IsActive &&
				user.PasswordHash != req.Password
		}),
		mock.MatchedBy(func(parent *domain.Parent) bool {
			return parent != nil && parent.ParentID != ""
		}),
		mock.MatchedBy(func(account *domain.Account) bool {
			return account != nil && account.CurrentBalance.IsZero()
		}),
	).Return(nil).Once()

	user, token, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(token)
	suite.Equal(domain.RoleParent, user.Role)
	suite.NotEmpty(user.UserID)

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	suite.Require().NoError(err)
	suite.Equal(user.UserID, claims.Subject)
	suite.Equal(string(domain.RoleParent), claims.Role)

	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_StaffGetsNoAccount() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:     "instructor@example.com",
		Password:  "password123",
		FirstName: "Ira",
		LastName:  "Soto",
		Role:      "instructor",
	}

	suite.mockUserRepo.On("CreateUserWithProfile", ctx,
		mock.AnythingOfType("domain.User"),
		(*domain.Parent)(nil),
		(*domain.Account)(nil),
	).Return(nil).Once()

	user, token, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.Equal(domain.RoleInstructor, user.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_UnknownRole() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:     "x@example.com",
		Password:  "password123",
		FirstName: "A",
		LastName:  "B",
		Role:      "superuser",
	}

	user, token, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.Empty(token)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "CreateUserWithProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:     "parent@example.com",
		Password:  "password123",
		FirstName: "Dana",
		LastName:  "Miller",
	}

	suite.mockUserRepo.On("CreateUserWithProfile", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.ErrDuplicate).Once()

	user, token, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.Empty(token)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	password := "password123"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	stored := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "parent@example.com",
		PasswordHash: hash,
		Role:         domain.RoleParent,
		IsActive:     true,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, stored.Email).Return(stored, nil).Once()
	suite.mockUserRepo.On("UpdateLastLogin", ctx, stored.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	user, token, err := suite.service.Login(ctx, dto.LoginRequest{Email: stored.Email, Password: password})

	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.Require().NotNil(user.LastLogin)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-password")
	suite.Require().NoError(err)

	stored := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "parent@example.com",
		PasswordHash: hash,
		Role:         domain.RoleParent,
		IsActive:     true,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, stored.Email).Return(stored, nil).Once()

	user, token, err := suite.service.Login(ctx, dto.LoginRequest{Email: stored.Email, Password: "wrong-password"})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.Empty(token)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownEmailReportsUnauthorized() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	user, token, err := suite.service.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "whatever1"})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.Empty(token)
	// Must not leak whether the email exists.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AuthServiceTestSuite) TestLogin_DeactivatedAccount() {
	ctx := context.Background()
	password := "password123"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	stored := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "parent@example.com",
		PasswordHash: hash,
		Role:         domain.RoleParent,
		IsActive:     false,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, stored.Email).Return(stored, nil).Once()

	user, token, err := suite.service.Login(ctx, dto.LoginRequest{Email: stored.Email, Password: password})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.Empty(token)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AuthServiceTestSuite) TestLogin_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockUserRepo.On("FindUserByEmail", ctx, "parent@example.com").Return(nil, expectedErr).Once()

	user, token, err := suite.service.Login(ctx, dto.LoginRequest{Email: "parent@example.com", Password: "password123"})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.Empty(token)
	suite.ErrorIs(err, expectedErr)
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
