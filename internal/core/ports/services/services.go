package services

import (
	"context"
	"time"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
	"github.com/David2024patton/studio4-dance/internal/dto"
	"github.com/shopspring/decimal"
)

// AuthSvcFacade handles registration and password login.
type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, string, error)
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error)
}

// UserSvcFacade handles user profile management.
type UserSvcFacade interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)
	ListUsers(ctx context.Context, caller domain.Caller, limit, offset int) ([]domain.User, error)
	GetUser(ctx context.Context, caller domain.Caller, userID string) (*domain.User, error)
	DeactivateUser(ctx context.Context, caller domain.Caller, userID string) error
}

// BillingSvcFacade is the ledger core: account reads and atomic signed applies.
type BillingSvcFacade interface {
	GetOwnAccount(ctx context.Context, caller domain.Caller) (*domain.Account, error)
	GetAccountByParentID(ctx context.Context, caller domain.Caller, parentID string) (*domain.Account, error)
	ListTransactions(ctx context.Context, caller domain.Caller, params dto.ListTransactionsParams) ([]domain.Transaction, error)
	ListTransactionsByAccount(ctx context.Context, caller domain.Caller, accountID string, limit, offset int) ([]domain.Transaction, error)
	CreateTransaction(ctx context.Context, caller domain.Caller, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	MakePayment(ctx context.Context, caller domain.Caller, req dto.PaymentRequest) (*domain.Transaction, error)
	CreateCharge(ctx context.Context, caller domain.Caller, req dto.ChargeRequest) (*domain.Transaction, error)
	GetSummary(ctx context.Context, caller domain.Caller, parentID string) (*domain.BillingSummary, error)
}

// ClassSvcFacade covers class reads and the enrollment gate.
type ClassSvcFacade interface {
	ListClasses(ctx context.Context, params dto.ListClassesParams) ([]domain.DanceClass, error)
	GetClass(ctx context.Context, classID string) (*domain.DanceClass, error)
	GetSchedule(ctx context.Context) ([]domain.ScheduleEntry, error)
	EnrollStudent(ctx context.Context, caller domain.Caller, classID, studentID string) (*domain.Enrollment, error)
	DropStudent(ctx context.Context, caller domain.Caller, classID, studentID string) error
}

// EventSvcFacade covers event CRUD and the registration gate.
type EventSvcFacade interface {
	ListEvents(ctx context.Context, params dto.ListEventsParams) ([]domain.Event, error)
	GetEvent(ctx context.Context, eventID string) (*domain.Event, error)
	RegisterStudent(ctx context.Context, caller domain.Caller, eventID, studentID string) (*domain.EventParticipant, error)
	ListParticipants(ctx context.Context, caller domain.Caller, eventID string) ([]domain.ParticipantDetail, error)
	CreateEvent(ctx context.Context, caller domain.Caller, req dto.SaveEventRequest) (*domain.Event, error)
	UpdateEvent(ctx context.Context, caller domain.Caller, eventID string, req dto.SaveEventRequest) (*domain.Event, error)
	DeleteEvent(ctx context.Context, caller domain.Caller, eventID string) error
}

// DashboardSvcFacade is the read-only parent dashboard fan-out.
type DashboardSvcFacade interface {
	ParentDashboard(ctx context.Context, caller domain.Caller) (*dto.DashboardResponse, error)
	StudentDetails(ctx context.Context, caller domain.Caller, studentID string) (*dto.StudentDetailResponse, error)
}

// ChatSvcFacade is the AI assistant orchestration.
type ChatSvcFacade interface {
	// Chat handles a public or authenticated message; caller is nil for
	// anonymous visitors. Upstream failures are reported inside the response.
	Chat(ctx context.Context, caller *domain.Caller, req dto.ChatRequest) dto.ChatResponse
	History(ctx context.Context, caller domain.Caller, params dto.ChatHistoryParams) ([]domain.ChatLog, error)
	ClearHistory(ctx context.Context, caller domain.Caller, sessionID string) error
}

// ChatGenerator produces a reply from an external text-generation backend.
type ChatGenerator interface {
	Generate(ctx context.Context, systemPrompt string, history []domain.ChatTurn, message string) (string, error)
}

// ChatSessionStore keeps bounded, TTL-evicted conversation history per session.
type ChatSessionStore interface {
	AppendTurn(ctx context.Context, sessionID string, turn domain.ChatTurn, maxTurns int) error
	GetTurns(ctx context.Context, sessionID string) ([]domain.ChatTurn, error)
}

// LedgerEventPublisher emits an event after a ledger transaction is recorded.
type LedgerEventPublisher interface {
	PublishTransactionRecorded(ctx context.Context, txn domain.Transaction, newBalance decimal.Decimal) error
}

// ServiceContainer bundles every service facade for route registration.
type ServiceContainer struct {
	Auth      AuthSvcFacade
	User      UserSvcFacade
	Billing   BillingSvcFacade
	Class     ClassSvcFacade
	Event     EventSvcFacade
	Dashboard DashboardSvcFacade
	Chat      ChatSvcFacade
}

// Clock abstracts time for services that reason about calendar dates.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock.
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time { return time.Now().UTC() }
