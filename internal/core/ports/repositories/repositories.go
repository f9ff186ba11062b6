package repositories

// RepositoryContainer bundles every repository implementation for injection
// into the service layer.
type RepositoryContainer struct {
	User             UserRepository
	Parent           ParentRepository
	Student          StudentRepository
	Class            ClassRepository
	Enrollment       EnrollmentRepository
	Event            EventRepository
	EventParticipant EventParticipantRepository
	Account          AccountRepository
	Ledger           LedgerRepository
	ChatLog          ChatLogRepository
}
