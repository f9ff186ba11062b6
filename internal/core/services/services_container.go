package services

import (
	portsrepo "github.com/David2024patton/studio4-dance/internal/core/ports/repositories"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryContainer,
	generator portssvc.ChatGenerator,
	sessionStore portssvc.ChatSessionStore,
	publisher portssvc.LedgerEventPublisher,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Auth = NewAuthService(repos.User, cfg)
	container.User = NewUserService(repos.User)
	container.Billing = NewBillingService(repos.Parent, repos.Student, repos.Account, repos.Ledger, publisher)
	container.Class = NewClassService(repos.Class, repos.Enrollment, repos.Parent, repos.Student)
	container.Event = NewEventService(repos.Event, repos.EventParticipant, repos.Parent, repos.Student)
	container.Dashboard = NewDashboardService(repos)
	container.Chat = NewChatService(generator, sessionStore, repos, cfg.ChatHistoryTurns)

	return container
}
