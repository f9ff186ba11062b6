package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/David2024patton/studio4-dance/internal/apperrors"
	"github.com/David2024patton/studio4-dance/internal/core/authz"
	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portsrepo "github.com/David2024patton/studio4-dance/internal/core/ports/repositories"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/dto"
)

const (
	dashboardRecentTransactions = 10
	dashboardUpcomingEvents     = 5
)

type DashboardService struct {
	userRepo        portsrepo.UserRepository
	parentRepo      portsrepo.ParentRepository
	studentRepo     portsrepo.StudentRepository
	accountRepo     portsrepo.AccountRepository
	ledgerRepo      portsrepo.LedgerRepository
	enrollmentRepo  portsrepo.EnrollmentRepository
	eventRepo       portsrepo.EventRepository
	participantRepo portsrepo.EventParticipantRepository
	clock           portssvc.Clock
}

var _ portssvc.DashboardSvcFacade = (*DashboardService)(nil)

func NewDashboardService(repos portsrepo.RepositoryContainer) *DashboardService {
	return &DashboardService{
		userRepo:        repos.User,
		parentRepo:      repos.Parent,
		studentRepo:     repos.Student,
		accountRepo:     repos.Account,
		ledgerRepo:      repos.Ledger,
		enrollmentRepo:  repos.Enrollment,
		eventRepo:       repos.Event,
		participantRepo: repos.EventParticipant,
		clock:           portssvc.RealClock{},
	}
}

// ParentDashboard assembles the signed-in parent's home view: profile,
// students, ledger account with recent transactions, active enrollments and
// upcoming events annotated with registration status. A parent with no
// students or no account still gets a dashboard with those sections empty.
func (s *DashboardService) ParentDashboard(ctx context.Context, caller domain.Caller) (*dto.DashboardResponse, error) {
	if !authz.Allowed(caller.Role, authz.ResourceDashboard, authz.OpRead) {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindUserByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	parent, err := s.parentRepo.FindParentByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("parent profile missing for user: %w", err)
	}

	students, err := s.studentRepo.FindStudentsByParentID(ctx, parent.ParentID)
	if err != nil {
		return nil, err
	}
	studentIDs := make([]string, len(students))
	for i, st := range students {
		studentIDs[i] = st.StudentID
	}

	var accountResp *dto.AccountResponse
	transactions := []domain.Transaction{}
	account, err := s.accountRepo.FindAccountByParentID(ctx, parent.ParentID)
	switch {
	case err == nil:
		resp := dto.ToAccountResponse(account)
		accountResp = &resp
		transactions, err = s.ledgerRepo.FindTransactions(ctx, portsrepo.TransactionFilter{
			AccountID: account.AccountID,
			Limit:     dashboardRecentTransactions,
		})
		if err != nil {
			return nil, err
		}
	case errors.Is(err, apperrors.ErrNotFound):
		// no account yet; dashboard renders without the billing section
	default:
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.FindActiveEnrollmentDetails(ctx, studentIDs)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.eventRepo.FindUpcomingEvents(ctx, s.clock.Now(), dashboardUpcomingEvents)
	if err != nil {
		return nil, err
	}
	eventIDs := make([]string, len(upcoming))
	for i, ev := range upcoming {
		eventIDs[i] = ev.EventID
	}
	registered, err := s.participantRepo.FindRegisteredEventIDs(ctx, studentIDs, eventIDs)
	if err != nil {
		return nil, err
	}
	upcomingWithReg := make([]domain.EventWithRegistration, len(upcoming))
	for i, ev := range upcoming {
		upcomingWithReg[i] = domain.EventWithRegistration{Event: ev, IsRegistered: registered[ev.EventID]}
	}

	return &dto.DashboardResponse{
		User: dto.ToUserResponse(user),
		Parent: dto.ParentProfileResponse{
			ParentID:              parent.ParentID,
			EmergencyContactName:  parent.EmergencyContactName,
			EmergencyContactPhone: parent.EmergencyContactPhone,
			AddressLine1:          parent.AddressLine1,
			City:                  parent.City,
			State:                 parent.State,
			ZipCode:               parent.ZipCode,
		},
		Students:       students,
		Account:        accountResp,
		Transactions:   dto.ToListTransactionResponse(transactions),
		Enrollments:    enrollments,
		UpcomingEvents: upcomingWithReg,
		Summary: dto.DashboardSummary{
			TotalStudents:           len(students),
			ActiveEnrollments:       len(enrollments),
			UpcomingEventsCount:     len(upcomingWithReg),
			RecentTransactionsCount: len(transactions),
		},
	}, nil
}

// StudentDetails returns the drill-down view for one of the caller's students.
func (s *DashboardService) StudentDetails(ctx context.Context, caller domain.Caller, studentID string) (*dto.StudentDetailResponse, error) {
	if !authz.Allowed(caller.Role, authz.ResourceDashboard, authz.OpRead) {
		return nil, apperrors.ErrForbidden
	}

	student, err := s.studentRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	parent, err := s.parentRepo.FindParentByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, apperrors.ErrForbidden
	}
	if student.ParentID != parent.ParentID {
		return nil, fmt.Errorf("student does not belong to caller: %w", apperrors.ErrForbidden)
	}

	enrollments, err := s.enrollmentRepo.FindActiveEnrollmentDetails(ctx, []string{student.StudentID})
	if err != nil {
		return nil, err
	}
	events, err := s.participantRepo.FindStudentEventDetails(ctx, student.StudentID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentDetailResponse{
		Student:                *student,
		Enrollments:            enrollments,
		Events:                 events,
		TotalActiveEnrollments: len(enrollments),
		TotalEvents:            len(events),
	}, nil
}
