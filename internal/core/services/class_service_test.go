package services_test

import (
	"context"
	"testing"

	"github.com/David2024patton/studio4-dance/internal/apperrors"
	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ClassServiceTestSuite struct {
	suite.Suite
	mockClassRepo      *MockClassRepository
	mockEnrollmentRepo *MockEnrollmentRepository
	mockParentRepo     *MockParentRepository
	mockStudentRepo    *MockStudentRepository
	service            portssvc.ClassSvcFacade

	parentCaller domain.Caller
	adminCaller  domain.Caller
	parent       *domain.Parent
	student      *domain.Student
	class        *domain.DanceClass
}

func (suite *ClassServiceTestSuite) SetupTest() {
	suite.mockClassRepo = new(MockClassRepository)
	suite.mockEnrollmentRepo = new(MockEnrollmentRepository)
	suite.mockParentRepo = new(MockParentRepository)
	suite.mockStudentRepo = new(MockStudentRepository)
	suite.service = services.NewClassService(
		suite.mockClassRepo,
		suite.mockEnrollmentRepo,
		suite.mockParentRepo,
		suite.mockStudentRepo,
	)

	suite.parentCaller = domain.Caller{UserID: uuid.NewString(), Role: domain.RoleParent}
	suite.adminCaller = domain.Caller{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	suite.parent = &domain.Parent{ParentID: uuid.NewString(), UserID: suite.parentCaller.UserID}
	suite.student = &domain.Student{
		StudentID: uuid.NewString(),
		ParentID:  suite.parent.ParentID,
		FirstName: "Emma",
		LastName:  "Miller",
		IsActive:  true,
	}
	suite.class = &domain.DanceClass{
		ClassID:     uuid.NewString(),
		Name:        "Ballet I",
		MaxCapacity: 12,
		IsActive:    true,
	}
}

func (suite *ClassServiceTestSuite) TestEnrollStudent_Success() {
	ctx := context.Background()

	suite.mockClassRepo.On("FindClassByID", ctx, suite.class.ClassID).Return(suite.class, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", ctx, suite.student.StudentID).Return(suite.student, nil).Once()
	suite.mockParentRepo.On("FindParentByUserID", ctx, suite.parentCaller.UserID).Return(suite.parent, nil).Once()
	suite.mockEnrollmentRepo.On("FindActiveEnrollment", ctx, suite.student.StudentID, suite.class.ClassID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockEnrollmentRepo.On("CountActiveEnrollments", ctx, suite.class.ClassID).Return(5, nil).Once()
	suite.mockEnrollmentRepo.On("CreateEnrollment", ctx, mock.MatchedBy(func(e domain.Enrollment) bool {
		return e.StudentID == suite.student.StudentID &&
			e.ClassID == suite.class.ClassID &&
			e.Status == domain.EnrollmentActive
	})).Return(nil).Once()

	enrollment, err := suite.service.EnrollStudent(ctx, suite.parentCaller, suite.class.ClassID, suite.student.StudentID)

	suite.Require().NoError(err)
	suite.Require().NotNil(enrollment)
	suite.NotEmpty(enrollment.EnrollmentID)
	suite.mockEnrollmentRepo.AssertExpectations(suite.T())
}

func (suite *ClassServiceTestSuite) TestEnrollStudent_InactiveClass() {
	ctx := context.Background()
	suite.class.IsActive = false

	suite.mockClassRepo.On("FindClassByID", ctx, suite.class.ClassID).Return(suite.class, nil).Once()

	enrollment, err := suite.service.EnrollStudent(ctx, suite.parentCaller, suite.class.ClassID, suite.student.StudentID)

	suite.Require().Error(err)
	suite.Nil(enrollment)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "CreateEnrollment", mock.Anything, mock.Anything)
}

func (suite *ClassServiceTestSuite) TestEnrollStudent_NotCallersStudent() {
	ctx := context.Background()
	otherStudent := &domain.Student{
		StudentID: uuid.NewString(),
		ParentID:  uuid.NewString(), // belongs to a different parent
		IsActive:  true,
	}

	suite.mockClassRepo.On("FindClassByID", ctx, suite.class.ClassID).Return(suite.class, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", ctx, otherStudent.StudentID).Return(otherStudent, nil).Once()
	suite.mockParentRepo.On("FindParentByUserID", ctx, suite.parentCaller.UserID).Return(suite.parent, nil).Once()

	enrollment, err := suite.service.EnrollStudent(ctx, suite.parentCaller, suite.class.ClassID, otherStudent.StudentID)

	suite.Require().Error(err)
	suite.Nil(enrollment)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "CreateEnrollment", mock.Anything, mock.Anything)
}

func (suite *ClassServiceTestSuite) TestEnrollStudent_StaffMayEnrollAnyStudent() {
	ctx := context.Background()

	suite.mockClassRepo.On("FindClassByID", ctx, suite.class.ClassID).Return(suite.class, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", ctx, suite.student.StudentID).Return(suite.student, nil).Once()
	suite.mockEnrollmentRepo.On("FindActiveEnrollment", ctx, suite.student.StudentID, suite.class.ClassID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockEnrollmentRepo.On("CountActiveEnrollments", ctx, suite.class.ClassID).Return(0, nil).Once()
	suite.mockEnrollmentRepo.On("CreateEnrollment", ctx, mock.AnythingOfType("domain.Enrollment")).Return(nil).Once()

	_, err := suite.service.EnrollStudent(ctx, suite.adminCaller, suite.class.ClassID, suite.student.StudentID)

	suite.Require().NoError(err)
	suite.mockParentRepo.AssertNotCalled(suite.T(), "FindParentByUserID", mock.Anything, mock.Anything)
}

func (suite *ClassServiceTestSuite) TestEnrollStudent_AlreadyEnrolled() {
	ctx := context.Background()
	existing := &domain.Enrollment{
		EnrollmentID: uuid.NewString(),
		StudentID:    suite.student.StudentID,
		ClassID:      suite.class.ClassID,
		Status:       domain.EnrollmentActive,
	}

	suite.mockClassRepo.On("FindClassByID", ctx, suite.class.ClassID).Return(suite.class, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", ctx, suite.student.StudentID).Return(suite.student, nil).Once()
	suite.mockParentRepo.On("FindParentByUserID", ctx, suite.parentCaller.UserID).Return(suite.parent, nil).Once()
	suite.mockEnrollmentRepo.On("FindActiveEnrollment", ctx, suite.student.StudentID, suite.class.ClassID).
		Return(existing, nil).Once()

	enrollment, err := suite.service.EnrollStudent(ctx, suite.parentCaller, suite.class.ClassID, suite.student.StudentID)

	suite.Require().Error(err)
	suite.Nil(enrollment)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "CreateEnrollment", mock.Anything, mock.Anything)
}

func (suite *ClassServiceTestSuite) TestEnrollStudent_ClassFull() {
	ctx := context.Background()

	suite.mockClassRepo.On("FindClassByID", ctx, suite.class.ClassID).Return(suite.class, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", ctx, suite.student.StudentID).Return(suite.student, nil).Once()
	suite.mockParentRepo.On("FindParentByUserID", ctx, suite.parentCaller.UserID).Return(suite.parent, nil).Once()
	suite.mockEnrollmentRepo.On("FindActiveEnrollment", ctx, suite.student.StudentID, suite.class.ClassID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockEnrollmentRepo.On("CountActiveEnrollments", ctx, suite.class.ClassID).Return(suite.class.MaxCapacity, nil).Once()

	enrollment, err := suite.service.EnrollStudent(ctx, suite.parentCaller, suite.class.ClassID, suite.student.StudentID)

	suite.Require().Error(err)
	suite.Nil(enrollment)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockEnrollmentRepo.AssertNotCalled(suite.T(), "CreateEnrollment", mock.Anything, mock.Anything)
}

func (suite *ClassServiceTestSuite) TestEnrollStudent_ConcurrentFillReportsConflict() {
	ctx := context.Background()

	suite.mockClassRepo.On("FindClassByID", ctx, suite.class.ClassID).Return(suite.class, nil).Once()
	suite.mockStudentRepo.On("FindStudentByID", ctx, suite.student.StudentID).Return(suite.student, nil).Once()
	suite.mockParentRepo.On("FindParentByUserID", ctx, suite.parentCaller.UserID).Return(suite.parent, nil).Once()
	suite.mockEnrollmentRepo.On("FindActiveEnrollment", ctx, suite.student.StudentID, suite.class.ClassID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockEnrollmentRepo.On("CountActiveEnrollments", ctx, suite.class.ClassID).
		Return(suite.class.MaxCapacity-1, nil).Once()
	// The repository re-checks capacity under a row lock; a concurrent
	// enrollment can take the last seat between the count and the insert.
	suite.mockEnrollmentRepo.On("CreateEnrollment", ctx, mock.AnythingOfType("domain.Enrollment")).
		Return(apperrors.ErrConflict).Once()

	enrollment, err := suite.service.EnrollStudent(ctx, suite.parentCaller, suite.class.ClassID, suite.student.StudentID)

	suite.Require().Error(err)
	suite.Nil(enrollment)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ClassServiceTestSuite) TestDropStudent_Success() {
	ctx := context.Background()

	suite.mockStudentRepo.On("FindStudentByID", ctx, suite.student.StudentID).Return(suite.student, nil).Once()
	suite.mockParentRepo.On("FindParentByUserID", ctx, suite.parentCaller.UserID).Return(suite.parent, nil).Once()
	suite.mockEnrollmentRepo.On("DropEnrollment", ctx, suite.student.StudentID, suite.class.ClassID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.DropStudent(ctx, suite.parentCaller, suite.class.ClassID, suite.student.StudentID)

	suite.Require().NoError(err)
	suite.mockEnrollmentRepo.AssertExpectations(suite.T())
}

func (suite *ClassServiceTestSuite) TestDropStudent_NoActiveEnrollment() {
	ctx := context.Background()

	suite.mockStudentRepo.On("FindStudentByID", ctx, suite.student.StudentID).Return(suite.student, nil).Once()
	suite.mockParentRepo.On("FindParentByUserID", ctx, suite.parentCaller.UserID).Return(suite.parent, nil).Once()
	suite.mockEnrollmentRepo.On("DropEnrollment", ctx, suite.student.StudentID, suite.class.ClassID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrNotFound).Once()

	err := suite.service.DropStudent(ctx, suite.parentCaller, suite.class.ClassID, suite.student.StudentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestClassService(t *testing.T) {
	suite.Run(t, new(ClassServiceTestSuite))
}
