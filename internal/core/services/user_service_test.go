package services_test

import (
	"context"
	"testing"

	"github.com/David2024patton/studio4-dance/internal/apperrors"
	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/core/services"
	"github.com/David2024patton/studio4-dance/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func (suite *UserServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	expected := &domain.User{UserID: userID, FirstName: "Dana"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(expected, nil).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(expected, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateProfile_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	stored := &domain.User{UserID: userID, FirstName: "Dana", LastName: "Miller"}
	req := dto.UpdateProfileRequest{FirstName: "Dana", LastName: "Reyes", Phone: "555-0101"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(stored, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.LastName == "Reyes" && u.Phone == "555-0101"
	})).Return(nil).Once()

	user, err := suite.service.UpdateProfile(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Equal("Reyes", user.LastName)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestListUsers_ParentForbidden() {
	ctx := context.Background()
	caller := domain.Caller{UserID: uuid.NewString(), Role: domain.RoleParent}

	users, err := suite.service.ListUsers(ctx, caller, 10, 0)

	suite.Require().Error(err)
	suite.Nil(users)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUsers", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestListUsers_Admin() {
	ctx := context.Background()
	caller := domain.Caller{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	expected := []domain.User{{UserID: uuid.NewString()}}

	suite.mockUserRepo.On("FindUsers", ctx, 10, 0).Return(expected, nil).Once()

	users, err := suite.service.ListUsers(ctx, caller, 10, 0)

	suite.Require().NoError(err)
	suite.Len(users, 1)
}

func (suite *UserServiceTestSuite) TestGetUser_ParentReadingOtherUserForbidden() {
	ctx := context.Background()
	caller := domain.Caller{UserID: uuid.NewString(), Role: domain.RoleParent}

	user, err := suite.service.GetUser(ctx, caller, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestGetUser_SelfAllowed() {
	ctx := context.Background()
	caller := domain.Caller{UserID: uuid.NewString(), Role: domain.RoleParent}
	expected := &domain.User{UserID: caller.UserID}

	suite.mockUserRepo.On("FindUserByID", ctx, caller.UserID).Return(expected, nil).Once()

	user, err := suite.service.GetUser(ctx, caller, caller.UserID)

	suite.Require().NoError(err)
	suite.Equal(expected, user)
}

func (suite *UserServiceTestSuite) TestDeactivateUser_AdminForbidden() {
	ctx := context.Background()
	caller := domain.Caller{UserID: uuid.NewString(), Role: domain.RoleAdmin}

	err := suite.service.DeactivateUser(ctx, caller, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestDeactivateUser_SelfRejected() {
	ctx := context.Background()
	caller := domain.Caller{UserID: uuid.NewString(), Role: domain.RoleOwner}

	err := suite.service.DeactivateUser(ctx, caller, caller.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "DeactivateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeactivateUser_Owner() {
	ctx := context.Background()
	caller := domain.Caller{UserID: uuid.NewString(), Role: domain.RoleOwner}
	target := uuid.NewString()

	suite.mockUserRepo.On("DeactivateUser", ctx, target).Return(nil).Once()

	err := suite.service.DeactivateUser(ctx, caller, target)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
