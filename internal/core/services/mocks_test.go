package services_test

import (
	"context"
	"time"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portsrepo "github.com/David2024patton/studio4-dance/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Shared repository mocks for the service test suites.

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUserWithProfile(ctx context.Context, user domain.User, parent *domain.Parent, account *domain.Account) error {
	args := m.Called(ctx, user, parent, account)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockParentRepository struct {
	mock.Mock
}

func (m *MockParentRepository) FindParentByID(ctx context.Context, parentID string) (*domain.Parent, error) {
	args := m.Called(ctx, parentID)
	var parent *domain.Parent
	if args.Get(0) != nil {
		parent = args.Get(0).(*domain.Parent)
	}
	return parent, args.Error(1)
}

func (m *MockParentRepository) FindParentByUserID(ctx context.Context, userID string) (*domain.Parent, error) {
	args := m.Called(ctx, userID)
	var parent *domain.Parent
	if args.Get(0) != nil {
		parent = args.Get(0).(*domain.Parent)
	}
	return parent, args.Error(1)
}

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, studentID)
	var student *domain.Student
	if args.Get(0) != nil {
		student = args.Get(0).(*domain.Student)
	}
	return student, args.Error(1)
}

func (m *MockStudentRepository) FindStudentsByParentID(ctx context.Context, parentID string) ([]domain.Student, error) {
	args := m.Called(ctx, parentID)
	var students []domain.Student
	if args.Get(0) != nil {
		students = args.Get(0).([]domain.Student)
	}
	return students, args.Error(1)
}

type MockClassRepository struct {
	mock.Mock
}

func (m *MockClassRepository) FindClasses(ctx context.Context, filter portsrepo.ClassFilter) ([]domain.DanceClass, error) {
	args := m.Called(ctx, filter)
	var classes []domain.DanceClass
	if args.Get(0) != nil {
		classes = args.Get(0).([]domain.DanceClass)
	}
	return classes, args.Error(1)
}

func (m *MockClassRepository) FindClassByID(ctx context.Context, classID string) (*domain.DanceClass, error) {
	args := m.Called(ctx, classID)
	var class *domain.DanceClass
	if args.Get(0) != nil {
		class = args.Get(0).(*domain.DanceClass)
	}
	return class, args.Error(1)
}

func (m *MockClassRepository) FindSchedule(ctx context.Context) ([]domain.ScheduleEntry, error) {
	args := m.Called(ctx)
	var entries []domain.ScheduleEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.ScheduleEntry)
	}
	return entries, args.Error(1)
}

type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) FindActiveEnrollment(ctx context.Context, studentID, classID string) (*domain.Enrollment, error) {
	args := m.Called(ctx, studentID, classID)
	var enrollment *domain.Enrollment
	if args.Get(0) != nil {
		enrollment = args.Get(0).(*domain.Enrollment)
	}
	return enrollment, args.Error(1)
}

func (m *MockEnrollmentRepository) CreateEnrollment(ctx context.Context, enrollment domain.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) DropEnrollment(ctx context.Context, studentID, classID string, dropDate time.Time) error {
	args := m.Called(ctx, studentID, classID, dropDate)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) CountActiveEnrollments(ctx context.Context, classID string) (int, error) {
	args := m.Called(ctx, classID)
	return args.Int(0), args.Error(1)
}

func (m *MockEnrollmentRepository) FindActiveEnrollmentDetails(ctx context.Context, studentIDs []string) ([]domain.EnrollmentDetail, error) {
	args := m.Called(ctx, studentIDs)
	var details []domain.EnrollmentDetail
	if args.Get(0) != nil {
		details = args.Get(0).([]domain.EnrollmentDetail)
	}
	return details, args.Error(1)
}

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) FindEvents(ctx context.Context, filter portsrepo.EventFilter) ([]domain.Event, error) {
	args := m.Called(ctx, filter)
	var events []domain.Event
	if args.Get(0) != nil {
		events = args.Get(0).([]domain.Event)
	}
	return events, args.Error(1)
}

func (m *MockEventRepository) FindEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	args := m.Called(ctx, eventID)
	var event *domain.Event
	if args.Get(0) != nil {
		event = args.Get(0).(*domain.Event)
	}
	return event, args.Error(1)
}

func (m *MockEventRepository) FindUpcomingEvents(ctx context.Context, from time.Time, limit int) ([]domain.Event, error) {
	args := m.Called(ctx, from, limit)
	var events []domain.Event
	if args.Get(0) != nil {
		events = args.Get(0).([]domain.Event)
	}
	return events, args.Error(1)
}

func (m *MockEventRepository) SaveEvent(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) UpdateEvent(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) DeactivateEvent(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

type MockEventParticipantRepository struct {
	mock.Mock
}

func (m *MockEventParticipantRepository) FindParticipant(ctx context.Context, eventID, studentID string) (*domain.EventParticipant, error) {
	args := m.Called(ctx, eventID, studentID)
	var participant *domain.EventParticipant
	if args.Get(0) != nil {
		participant = args.Get(0).(*domain.EventParticipant)
	}
	return participant, args.Error(1)
}

func (m *MockEventParticipantRepository) SaveParticipant(ctx context.Context, participant domain.EventParticipant) error {
	args := m.Called(ctx, participant)
	return args.Error(0)
}

func (m *MockEventParticipantRepository) FindParticipantDetails(ctx context.Context, eventID string) ([]domain.ParticipantDetail, error) {
	args := m.Called(ctx, eventID)
	var details []domain.ParticipantDetail
	if args.Get(0) != nil {
		details = args.Get(0).([]domain.ParticipantDetail)
	}
	return details, args.Error(1)
}

func (m *MockEventParticipantRepository) FindRegisteredEventIDs(ctx context.Context, studentIDs []string, eventIDs []string) (map[string]bool, error) {
	args := m.Called(ctx, studentIDs, eventIDs)
	var ids map[string]bool
	if args.Get(0) != nil {
		ids = args.Get(0).(map[string]bool)
	}
	return ids, args.Error(1)
}

func (m *MockEventParticipantRepository) FindStudentEventDetails(ctx context.Context, studentID string) ([]domain.StudentEventDetail, error) {
	args := m.Called(ctx, studentID)
	var details []domain.StudentEventDetail
	if args.Get(0) != nil {
		details = args.Get(0).([]domain.StudentEventDetail)
	}
	return details, args.Error(1)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountRepository) FindAccountByParentID(ctx context.Context, parentID string) (*domain.Account, error) {
	args := m.Called(ctx, parentID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) ApplyTransaction(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error) {
	args := m.Called(ctx, txn)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) FindTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockLedgerRepository) SummarizeAccount(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

type MockChatLogRepository struct {
	mock.Mock
}

func (m *MockChatLogRepository) SaveChatLog(ctx context.Context, log domain.ChatLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockChatLogRepository) FindChatLogsByUserID(ctx context.Context, userID, sessionID string, limit int) ([]domain.ChatLog, error) {
	args := m.Called(ctx, userID, sessionID, limit)
	var logs []domain.ChatLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]domain.ChatLog)
	}
	return logs, args.Error(1)
}

func (m *MockChatLogRepository) DeleteChatLogsByUserID(ctx context.Context, userID, sessionID string) error {
	args := m.Called(ctx, userID, sessionID)
	return args.Error(0)
}

type MockLedgerEventPublisher struct {
	mock.Mock
}

func (m *MockLedgerEventPublisher) PublishTransactionRecorded(ctx context.Context, txn domain.Transaction, newBalance decimal.Decimal) error {
	args := m.Called(ctx, txn, newBalance)
	return args.Error(0)
}

type MockChatGenerator struct {
	mock.Mock
}

func (m *MockChatGenerator) Generate(ctx context.Context, systemPrompt string, history []domain.ChatTurn, message string) (string, error) {
	args := m.Called(ctx, systemPrompt, history, message)
	return args.String(0), args.Error(1)
}
