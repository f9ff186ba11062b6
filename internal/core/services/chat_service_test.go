package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/David2024patton/studio4-dance/internal/adapters/session"
	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portsrepo "github.com/David2024patton/studio4-dance/internal/core/ports/repositories"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/core/services"
	"github.com/David2024patton/studio4-dance/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ChatServiceTestSuite struct {
	suite.Suite
	mockGenerator   *MockChatGenerator
	mockChatLogRepo *MockChatLogRepository
	mockUserRepo    *MockUserRepository
	mockParentRepo  *MockParentRepository
	mockStudentRepo *MockStudentRepository
	mockAccountRepo *MockAccountRepository
	sessionStore    portssvc.ChatSessionStore
	service         portssvc.ChatSvcFacade
}

func (suite *ChatServiceTestSuite) SetupTest() {
	suite.mockGenerator = new(MockChatGenerator)
	suite.mockChatLogRepo = new(MockChatLogRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockParentRepo = new(MockParentRepository)
	suite.mockStudentRepo = new(MockStudentRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.sessionStore = session.NewMemoryStore(30*time.Minute, 100)

	repos := portsrepo.RepositoryContainer{
		User:    suite.mockUserRepo,
		Parent:  suite.mockParentRepo,
		Student: suite.mockStudentRepo,
		Account: suite.mockAccountRepo,
		ChatLog: suite.mockChatLogRepo,
	}
	suite.service = services.NewChatService(suite.mockGenerator, suite.sessionStore, repos, 20)
}

func (suite *ChatServiceTestSuite) TestChat_VisitorGetsBasePrompt() {
	ctx := context.Background()

	suite.mockGenerator.On("Generate", ctx, mock.MatchedBy(func(prompt string) bool {
		return !strings.Contains(prompt, "logged-in parent")
	}), mock.Anything, "What classes do you offer?").Return("We offer ballet, jazz and more.", nil).Once()
	suite.mockChatLogRepo.On("SaveChatLog", ctx, mock.MatchedBy(func(log domain.ChatLog) bool {
		return log.UserID == nil && !log.IsAuthenticated
	})).Return(nil).Once()

	resp := suite.service.Chat(ctx, nil, dto.ChatRequest{Message: "What classes do you offer?"})

	suite.True(resp.Success)
	suite.Equal("We offer ballet, jazz and more.", resp.Response)
	suite.NotEmpty(resp.SessionID)
	suite.mockGenerator.AssertExpectations(suite.T())
	suite.mockChatLogRepo.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestChat_ParentPromptCarriesAccountSnapshot() {
	ctx := context.Background()
	caller := &domain.Caller{UserID: uuid.NewString(), Role: domain.RoleParent}
	user := &domain.User{UserID: caller.UserID, FirstName: "Dana", LastName: "Miller", Role: domain.RoleParent}
	parent := &domain.Parent{ParentID: uuid.NewString(), UserID: caller.UserID}
	students := []domain.Student{{StudentID: uuid.NewString(), ParentID: parent.ParentID, FirstName: "Emma", LastName: "Miller"}}
	account := &domain.Account{AccountID: uuid.NewString(), ParentID: parent.ParentID, CurrentBalance: decimal.NewFromInt(45)}

	suite.mockUserRepo.On("FindUserByID", ctx, caller.UserID).Return(user, nil).Once()
	suite.mockParentRepo.On("FindParentByUserID", ctx, caller.UserID).Return(parent, nil).Once()
	suite.mockStudentRepo.On("FindStudentsByParentID", ctx, parent.ParentID).Return(students, nil).Once()
	suite.mockAccountRepo.On("FindAccountByParentID", ctx, parent.ParentID).Return(account, nil).Once()

	suite.mockGenerator.On("Generate", ctx, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Dana Miller") &&
			strings.Contains(prompt, "Emma Miller") &&
			strings.Contains(prompt, "$45.00")
	}), mock.Anything, "What do I owe?").Return("Your balance is $45.00.", nil).Once()
	suite.mockChatLogRepo.On("SaveChatLog", ctx, mock.MatchedBy(func(log domain.ChatLog) bool {
		return log.UserID != nil && *log.UserID == caller.UserID && log.IsAuthenticated
	})).Return(nil).Once()

	resp := suite.service.Chat(ctx, caller, dto.ChatRequest{Message: "What do I owe?"})

	suite.True(resp.Success)
	suite.mockGenerator.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestChat_GeneratorFailureReportedInEnvelope() {
	ctx := context.Background()
	sessionID := uuid.NewString()

	suite.mockGenerator.On("Generate", ctx, mock.Anything, mock.Anything, "Hello").
		Return("", assert.AnError).Once()

	resp := suite.service.Chat(ctx, nil, dto.ChatRequest{Message: "Hello", SessionID: sessionID})

	suite.False(resp.Success)
	suite.NotEmpty(resp.Error)
	suite.Equal(sessionID, resp.SessionID)
	suite.mockChatLogRepo.AssertNotCalled(suite.T(), "SaveChatLog", mock.Anything, mock.Anything)
}

func (suite *ChatServiceTestSuite) TestChat_HistoryFlowsBackToGenerator() {
	ctx := context.Background()
	sessionID := uuid.NewString()

	suite.mockGenerator.On("Generate", ctx, mock.Anything, mock.MatchedBy(func(history []domain.ChatTurn) bool {
		return len(history) == 0
	}), "First").Return("First reply", nil).Once()
	suite.mockGenerator.On("Generate", ctx, mock.Anything, mock.MatchedBy(func(history []domain.ChatTurn) bool {
		return len(history) == 1 && history[0].UserMessage == "First"
	}), "Second").Return("Second reply", nil).Once()
	suite.mockChatLogRepo.On("SaveChatLog", ctx, mock.AnythingOfType("domain.ChatLog")).Return(nil).Twice()

	first := suite.service.Chat(ctx, nil, dto.ChatRequest{Message: "First", SessionID: sessionID})
	suite.True(first.Success)

	second := suite.service.Chat(ctx, nil, dto.ChatRequest{Message: "Second", SessionID: sessionID})
	suite.True(second.Success)

	suite.mockGenerator.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestChat_ParentLookupFailureDegradesToBasePrompt() {
	ctx := context.Background()
	caller := &domain.Caller{UserID: uuid.NewString(), Role: domain.RoleParent}

	suite.mockUserRepo.On("FindUserByID", ctx, caller.UserID).Return(nil, assert.AnError).Once()
	suite.mockGenerator.On("Generate", ctx, mock.MatchedBy(func(prompt string) bool {
		return !strings.Contains(prompt, "logged-in parent")
	}), mock.Anything, "Hi").Return("Hello!", nil).Once()
	suite.mockChatLogRepo.On("SaveChatLog", ctx, mock.AnythingOfType("domain.ChatLog")).Return(nil).Once()

	resp := suite.service.Chat(ctx, caller, dto.ChatRequest{Message: "Hi"})

	suite.True(resp.Success)
	suite.mockGenerator.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestClearHistory_ScopedToCaller() {
	ctx := context.Background()
	caller := domain.Caller{UserID: uuid.NewString(), Role: domain.RoleParent}

	suite.mockChatLogRepo.On("DeleteChatLogsByUserID", ctx, caller.UserID, "").Return(nil).Once()

	err := suite.service.ClearHistory(ctx, caller, "")

	suite.Require().NoError(err)
	suite.mockChatLogRepo.AssertExpectations(suite.T())
}

func TestChatService(t *testing.T) {
	suite.Run(t, new(ChatServiceTestSuite))
}
