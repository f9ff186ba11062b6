package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portsrepo "github.com/David2024patton/studio4-dance/internal/core/ports/repositories"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/dto"
	"github.com/David2024patton/studio4-dance/internal/middleware"
	"github.com/google/uuid"
)

const chatBasePrompt = `You are the Studio4 Dance Co AI assistant. You help parents and visitors with questions about the dance studio.
Be friendly, professional, and helpful. Studio4 offers dance classes for all ages including ballet, jazz, tap, hip hop, contemporary, lyrical, acro, and more.

For general inquiries, you can help with:
- Class schedules and descriptions
- Registration information
- Studio location and contact info
- Upcoming events and performances`

type ChatService struct {
	generator    portssvc.ChatGenerator
	sessionStore portssvc.ChatSessionStore
	chatLogRepo  portsrepo.ChatLogRepository
	userRepo     portsrepo.UserRepository
	parentRepo   portsrepo.ParentRepository
	studentRepo  portsrepo.StudentRepository
	accountRepo  portsrepo.AccountRepository
	historyTurns int
	clock        portssvc.Clock
}

var _ portssvc.ChatSvcFacade = (*ChatService)(nil)

func NewChatService(
	generator portssvc.ChatGenerator,
	sessionStore portssvc.ChatSessionStore,
	repos portsrepo.RepositoryContainer,
	historyTurns int,
) *ChatService {
	if historyTurns <= 0 {
		historyTurns = 20
	}
	return &ChatService{
		generator:    generator,
		sessionStore: sessionStore,
		chatLogRepo:  repos.ChatLog,
		userRepo:     repos.User,
		parentRepo:   repos.Parent,
		studentRepo:  repos.Student,
		accountRepo:  repos.Account,
		historyTurns: historyTurns,
		clock:        portssvc.RealClock{},
	}
}

// Chat answers one message. Failures from the model are reported inside the
// response envelope with Success=false; the session ID is always echoed back
// so the client can continue the conversation.
func (s *ChatService) Chat(ctx context.Context, caller *domain.Caller, req dto.ChatRequest) dto.ChatResponse {
	logger := middleware.GetLoggerFromCtx(ctx)

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	systemPrompt := s.systemPrompt(ctx, caller)

	history, err := s.sessionStore.GetTurns(ctx, sessionID)
	if err != nil {
		logger.Warn("Failed to load chat session, continuing without history", "error", err)
		history = nil
	}

	reply, err := s.generator.Generate(ctx, systemPrompt, history, req.Message)
	if err != nil {
		logger.Error("Chat generation failed", "error", err)
		return dto.ChatResponse{Success: false, Error: err.Error(), SessionID: sessionID}
	}

	turn := domain.ChatTurn{UserMessage: req.Message, Reply: reply}
	if err := s.sessionStore.AppendTurn(ctx, sessionID, turn, s.historyTurns); err != nil {
		logger.Warn("Failed to persist chat session turn", "error", err)
	}

	log := domain.ChatLog{
		ChatLogID: uuid.NewString(),
		SessionID: sessionID,
		Message:   req.Message,
		Response:  reply,
		CreatedAt: s.clock.Now(),
	}
	if caller != nil {
		userID := caller.UserID
		log.UserID = &userID
		log.IsAuthenticated = true
	}
	if err := s.chatLogRepo.SaveChatLog(ctx, log); err != nil {
		logger.Warn("Failed to save chat log", "error", err)
	}

	return dto.ChatResponse{Success: true, Response: reply, SessionID: sessionID}
}

// systemPrompt builds the model instructions. Signed-in parents get their
// account snapshot appended; any lookup failure degrades to the base prompt.
func (s *ChatService) systemPrompt(ctx context.Context, caller *domain.Caller) string {
	if caller == nil || caller.Role != domain.RoleParent {
		return chatBasePrompt
	}

	user, err := s.userRepo.FindUserByID(ctx, caller.UserID)
	if err != nil {
		return chatBasePrompt
	}
	parent, err := s.parentRepo.FindParentByUserID(ctx, caller.UserID)
	if err != nil {
		return chatBasePrompt
	}

	var b strings.Builder
	b.WriteString(chatBasePrompt)
	b.WriteString("\n\nYou are currently helping a logged-in parent. Here is their account information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", user.FullName())

	if students, err := s.studentRepo.FindStudentsByParentID(ctx, parent.ParentID); err == nil && len(students) > 0 {
		names := make([]string, len(students))
		for i, st := range students {
			names[i] = st.FullName()
		}
		fmt.Fprintf(&b, "- Children enrolled: %s\n", strings.Join(names, ", "))
	}
	if account, err := s.accountRepo.FindAccountByParentID(ctx, parent.ParentID); err == nil {
		fmt.Fprintf(&b, "- Current balance: $%s\n", account.CurrentBalance.StringFixed(2))
	}

	b.WriteString(`
You can help them with:
- Checking their account balance and payment history
- Viewing their children's class schedules
- Information about upcoming competitions and events
- Registration for new classes
- General billing questions`)

	return b.String()
}

// History lists the caller's persisted chat exchanges, newest first.
func (s *ChatService) History(ctx context.Context, caller domain.Caller, params dto.ChatHistoryParams) ([]domain.ChatLog, error) {
	return s.chatLogRepo.FindChatLogsByUserID(ctx, caller.UserID, params.SessionID, params.Limit)
}

// ClearHistory deletes the caller's persisted chat exchanges, optionally
// narrowed to one session.
func (s *ChatService) ClearHistory(ctx context.Context, caller domain.Caller, sessionID string) error {
	return s.chatLogRepo.DeleteChatLogsByUserID(ctx, caller.UserID, sessionID)
}
