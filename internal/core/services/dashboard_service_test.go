package services_test

import (
	"context"
	"testing"

	"github.com/David2024patton/studio4-dance/internal/apperrors"
	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portsrepo "github.com/David2024patton/studio4-dance/internal/core/ports/repositories"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	mockUserRepo        *MockUserRepository
	mockParentRepo      *MockParentRepository
	mockStudentRepo     *MockStudentRepository
	mockAccountRepo     *MockAccountRepository
	mockLedgerRepo      *MockLedgerRepository
	mockEnrollmentRepo  *MockEnrollmentRepository
	mockEventRepo       *MockEventRepository
	mockParticipantRepo *MockEventParticipantRepository
	service             portssvc.DashboardSvcFacade

	caller  domain.Caller
	user    *domain.User
	parent  *domain.Parent
	account *domain.Account
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockParentRepo = new(MockParentRepository)
	suite.mockStudentRepo = new(MockStudentRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockEnrollmentRepo = new(MockEnrollmentRepository)
	suite.mockEventRepo = new(MockEventRepository)
	suite.mockParticipantRepo = new(MockEventParticipantRepository)

	suite.service = services.NewDashboardService(portsrepo.RepositoryContainer{
		User:             suite.mockUserRepo,
		Parent:           suite.mockParentRepo,
		Student:          suite.mockStudentRepo,
		Account:          suite.mockAccountRepo,
		Ledger:           suite.mockLedgerRepo,
		Enrollment:       suite.mockEnrollmentRepo,
		Event:            suite.mockEventRepo,
		EventParticipant: suite.mockParticipantRepo,
	})

	suite.caller = domain.Caller{UserID: uuid.NewString(), Role: domain.RoleParent}
	suite.user = &domain.User{UserID: suite.caller.UserID, FirstName: "Dana", LastName: "Miller", Role: domain.RoleParent}
	suite.parent = &domain.Parent{ParentID: uuid.NewString(), UserID: suite.caller.UserID}
	suite.account = &domain.Account{
		AccountID:      uuid.NewString(),
		ParentID:       suite.parent.ParentID,
		CurrentBalance: decimal.NewFromInt(45),
	}
}

func (suite *DashboardServiceTestSuite) TestParentDashboard_StaffForbidden() {
	ctx := context.Background()
	staff := domain.Caller{UserID: uuid.NewString(), Role: domain.RoleAdmin}

	dashboard, err := suite.service.ParentDashboard(ctx, staff)

	suite.Require().Error(err)
	suite.Nil(dashboard)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *DashboardServiceTestSuite) TestParentDashboard_Full() {
	ctx := context.Background()
	students := []domain.Student{{StudentID: uuid.NewString(), ParentID: suite.parent.ParentID, FirstName: "Emma"}}
	studentIDs := []string{students[0].StudentID}
	txns := []domain.Transaction{{TransactionID: uuid.NewString(), AccountID: suite.account.AccountID}}
	enrollments := []domain.EnrollmentDetail{{EnrollmentID: uuid.NewString(), StudentID: students[0].StudentID}}
	events := []domain.Event{{EventID: uuid.NewString(), Title: "Winter Recital", IsActive: true}}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.caller.UserID).Return(suite.user, nil).Once()
	suite.mockParentRepo.On("FindParentByUserID", ctx, suite.caller.UserID).Return(suite.parent, nil).Once()
	suite.mockStudentRepo.On("FindStudentsByParentID", ctx, suite.parent.ParentID).Return(students, nil).Once()
	suite.mockAccountRepo.On("FindAccountByParentID", ctx, suite.parent.ParentID).Return(suite.account, nil).Once()
	suite.mockLedgerRepo.On("FindTransactions", ctx, mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
		return f.AccountID == suite.account.AccountID && f.Limit == 10
	})).Return(txns, nil).Once()
	suite.mockEnrollmentRepo.On("FindActiveEnrollmentDetails", ctx, studentIDs).Return(enrollments, nil).Once()
	suite.mockEventRepo.On("FindUpcomingEvents", ctx, mock.AnythingOfType("time.Time"), 5).Return(events, nil).Once()
	suite.mockParticipantRepo.On("FindRegisteredEventIDs", ctx, studentIDs, []string{events[0].EventID}).
		Return(map[string]bool{events[0].EventID: true}, nil).Once()

	dashboard, err := suite.service.ParentDashboard(ctx, suite.caller)

	suite.Require().NoError(err)
	suite.Require().NotNil(dashboard.Account)
	suite.Equal("due", dashboard.Account.Status)
	suite.Len(dashboard.Transactions, 1)
	suite.Require().Len(dashboard.UpcomingEvents, 1)
	suite.True(dashboard.UpcomingEvents[0].IsRegistered)
	suite.Equal(1, dashboard.Summary.TotalStudents)
	suite.Equal(1, dashboard.Summary.ActiveEnrollments)
}

func (suite *DashboardServiceTestSuite) TestParentDashboard_NoAccountYet() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.caller.UserID).Return(suite.user, nil).Once()
	suite.mockParentRepo.On("FindParentByUserID", ctx, suite.caller.UserID).Return(suite.parent, nil).Once()
	suite.mockStudentRepo.On("FindStudentsByParentID", ctx, suite.parent.ParentID).Return([]domain.Student{}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByParentID", ctx, suite.parent.ParentID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockEnrollmentRepo.On("FindActiveEnrollmentDetails", ctx, []string{}).Return([]domain.EnrollmentDetail{}, nil).Once()
	suite.mockEventRepo.On("FindUpcomingEvents", ctx, mock.AnythingOfType("time.Time"), 5).Return([]domain.Event{}, nil).Once()
	suite.mockParticipantRepo.On("FindRegisteredEventIDs", ctx, []string{}, []string{}).
		Return(map[string]bool{}, nil).Once()

	dashboard, err := suite.service.ParentDashboard(ctx, suite.caller)

	suite.Require().NoError(err)
	suite.Nil(dashboard.Account)
	suite.Empty(dashboard.Transactions)
	suite.Equal(0, dashboard.Summary.TotalStudents)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindTransactions", mock.Anything, mock.Anything)
}

func (suite *DashboardServiceTestSuite) TestStudentDetails_OtherParentsStudentForbidden() {
	ctx := context.Background()
	student := &domain.Student{StudentID: uuid.NewString(), ParentID: uuid.NewString()}

	suite.mockStudentRepo.On("FindStudentByID", ctx, student.StudentID).Return(student, nil).Once()
	suite.mockParentRepo.On("FindParentByUserID", ctx, suite.caller.UserID).Return(suite.parent, nil).Once()

	details, err := suite.service.StudentDetails(ctx, suite.caller, student.StudentID)

	suite.Require().Error(err)
	suite.Nil(details)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *DashboardServiceTestSuite) TestStudentDetails_Success() {
	ctx := context.Background()
	student := &domain.Student{StudentID: uuid.NewString(), ParentID: suite.parent.ParentID, FirstName: "Emma"}
	enrollments := []domain.EnrollmentDetail{{EnrollmentID: uuid.NewString(), StudentID: student.StudentID}}
	events := []domain.StudentEventDetail{{ParticipantID: uuid.NewString(), EventTitle: "Winter Recital"}}

	suite.mockStudentRepo.On("FindStudentByID", ctx, student.StudentID).Return(student, nil).Once()
	suite.mockParentRepo.On("FindParentByUserID", ctx, suite.caller.UserID).Return(suite.parent, nil).Once()
	suite.mockEnrollmentRepo.On("FindActiveEnrollmentDetails", ctx, []string{student.StudentID}).Return(enrollments, nil).Once()
	suite.mockParticipantRepo.On("FindStudentEventDetails", ctx, student.StudentID).Return(events, nil).Once()

	details, err := suite.service.StudentDetails(ctx, suite.caller, student.StudentID)

	suite.Require().NoError(err)
	suite.Equal(1, details.TotalActiveEnrollments)
	suite.Equal(1, details.TotalEvents)
}

func TestDashboardService(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
