package pgsql

import (
	portsrepo "github.com/David2024patton/studio4-dance/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryContainer wires every pgx-backed repository to the pool.
func NewRepositoryContainer(dbPool *pgxpool.Pool) portsrepo.RepositoryContainer {
	return portsrepo.RepositoryContainer{
		User:             newPgxUserRepository(dbPool),
		Parent:           newPgxParentRepository(dbPool),
		Student:          newPgxStudentRepository(dbPool),
		Class:            newPgxClassRepository(dbPool),
		Enrollment:       newPgxEnrollmentRepository(dbPool),
		Event:            newPgxEventRepository(dbPool),
		EventParticipant: newPgxEventParticipantRepository(dbPool),
		Account:          newPgxAccountRepository(dbPool),
		Ledger:           newPgxLedgerRepository(dbPool),
		ChatLog:          newPgxChatLogRepository(dbPool),
	}
}
