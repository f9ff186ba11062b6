package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/David2024patton/studio4-dance/internal/apperrors"
	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portsrepo "github.com/David2024patton/studio4-dance/internal/core/ports/repositories"
	"github.com/David2024patton/studio4-dance/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxEventRepository struct {
	BaseRepository
}

func newPgxEventRepository(pool *pgxpool.Pool) portsrepo.EventRepository {
	return &PgxEventRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.EventRepository = (*PgxEventRepository)(nil)

func toModelEvent(d domain.Event) models.Event {
	fee := decimal.NullDecimal{}
	if d.EntryFee != nil {
		fee = decimal.NullDecimal{Decimal: *d.EntryFee, Valid: true}
	}
	return models.Event{
		EventID:              d.EventID,
		Title:                d.Title,
		Description:          d.Description,
		EventType:            d.EventType,
		Location:             d.Location,
		VenueAddress:         d.VenueAddress,
		StartDate:            nullTime(d.StartDate),
		EndDate:              nullTime(d.EndDate),
		RegistrationDeadline: nullTime(d.RegistrationDeadline),
		EntryFee:             fee,
		Notes:                d.Notes,
		IsActive:             d.IsActive,
		CreatedAt:            d.CreatedAt,
	}
}

func toDomainEvent(m models.Event) domain.Event {
	var fee *decimal.Decimal
	if m.EntryFee.Valid {
		f := m.EntryFee.Decimal
		fee = &f
	}
	return domain.Event{
		EventID:              m.EventID,
		Title:                m.Title,
		Description:          m.Description,
		EventType:            m.EventType,
		Location:             m.Location,
		VenueAddress:         m.VenueAddress,
		StartDate:            timePtr(m.StartDate),
		EndDate:              timePtr(m.EndDate),
		RegistrationDeadline: timePtr(m.RegistrationDeadline),
		EntryFee:             fee,
		Notes:                m.Notes,
		IsActive:             m.IsActive,
		CreatedAt:            m.CreatedAt,
	}
}

const eventColumns = `event_id, title, description, event_type, location, venue_address, start_date, end_date, registration_deadline, entry_fee, notes, is_active, created_at`

func scanEvent(row pgx.Row) (models.Event, error) {
	var m models.Event
	err := row.Scan(
		&m.EventID,
		&m.Title,
		&m.Description,
		&m.EventType,
		&m.Location,
		&m.VenueAddress,
		&m.StartDate,
		&m.EndDate,
		&m.RegistrationDeadline,
		&m.EntryFee,
		&m.Notes,
		&m.IsActive,
		&m.CreatedAt,
	)
	return m, err
}

func (r *PgxEventRepository) FindEvents(ctx context.Context, filter portsrepo.EventFilter) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE is_active`
	args := []interface{}{}
	argIdx := 1

	if filter.EventType != "" {
		query += fmt.Sprintf(" AND event_type = $%d", argIdx)
		args = append(args, filter.EventType)
		argIdx++
	}
	if filter.UpcomingOnly {
		query += fmt.Sprintf(" AND start_date >= $%d", argIdx)
		args = append(args, time.Now().UTC())
		argIdx++
	}
	query += " ORDER BY start_date NULLS LAST;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		m, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, toDomainEvent(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", rows.Err())
	}

	return events, nil
}

func (r *PgxEventRepository) FindEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE event_id = $1;`
	m, err := scanEvent(r.Pool.QueryRow(ctx, query, eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find event by ID %s: %w", eventID, err)
	}
	e := toDomainEvent(m)
	return &e, nil
}

func (r *PgxEventRepository) FindUpcomingEvents(ctx context.Context, from time.Time, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
        SELECT ` + eventColumns + `
        FROM events
        WHERE is_active AND start_date >= $1
        ORDER BY start_date
        LIMIT $2;
    `
	rows, err := r.Pool.Query(ctx, query, from, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		m, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, toDomainEvent(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", rows.Err())
	}

	return events, nil
}

func (r *PgxEventRepository) SaveEvent(ctx context.Context, event domain.Event) error {
	m := toModelEvent(event)
	query := `
        INSERT INTO events (event_id, title, description, event_type, location, venue_address, start_date, end_date, registration_deadline, entry_fee, notes, is_active, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.EventID, m.Title, m.Description, m.EventType, m.Location, m.VenueAddress,
		m.StartDate, m.EndDate, m.RegistrationDeadline, m.EntryFee, m.Notes, m.IsActive, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (r *PgxEventRepository) UpdateEvent(ctx context.Context, event domain.Event) error {
	m := toModelEvent(event)
	query := `
        UPDATE events
        SET title = $1, description = $2, event_type = $3, location = $4, venue_address = $5,
            start_date = $6, end_date = $7, registration_deadline = $8, entry_fee = $9, notes = $10
        WHERE event_id = $11;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Title, m.Description, m.EventType, m.Location, m.VenueAddress,
		m.StartDate, m.EndDate, m.RegistrationDeadline, m.EntryFee, m.Notes, m.EventID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("event not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxEventRepository) DeactivateEvent(ctx context.Context, eventID string) error {
	query := `UPDATE events SET is_active = FALSE WHERE event_id = $1 AND is_active;`
	cmdTag, err := r.Pool.Exec(ctx, query, eventID)
	if err != nil {
		return fmt.Errorf("failed to deactivate event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("event not found or already inactive: %w", apperrors.ErrNotFound)
	}
	return nil
}

type PgxEventParticipantRepository struct {
	BaseRepository
}

func newPgxEventParticipantRepository(pool *pgxpool.Pool) portsrepo.EventParticipantRepository {
	return &PgxEventParticipantRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.EventParticipantRepository = (*PgxEventParticipantRepository)(nil)

func toDomainParticipant(m models.EventParticipant) domain.EventParticipant {
	return domain.EventParticipant{
		ParticipantID:    m.ParticipantID,
		EventID:          m.EventID,
		StudentID:        m.StudentID,
		RegistrationDate: m.RegistrationDate,
		FeePaid:          m.FeePaid,
		Notes:            m.Notes,
	}
}

func (r *PgxEventParticipantRepository) FindParticipant(ctx context.Context, eventID, studentID string) (*domain.EventParticipant, error) {
	query := `
        SELECT participant_id, event_id, student_id, registration_date, fee_paid, notes
        FROM event_participants
        WHERE event_id = $1 AND student_id = $2;
    `
	var m models.EventParticipant
	err := r.Pool.QueryRow(ctx, query, eventID, studentID).Scan(
		&m.ParticipantID, &m.EventID, &m.StudentID, &m.RegistrationDate, &m.FeePaid, &m.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find event participant: %w", err)
	}
	p := toDomainParticipant(m)
	return &p, nil
}

func (r *PgxEventParticipantRepository) SaveParticipant(ctx context.Context, participant domain.EventParticipant) error {
	query := `
        INSERT INTO event_participants (participant_id, event_id, student_id, registration_date, fee_paid, notes)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.Pool.Exec(ctx, query,
		participant.ParticipantID,
		participant.EventID,
		participant.StudentID,
		participant.RegistrationDate,
		participant.FeePaid,
		participant.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("student already registered for event: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert event participant: %w", err)
	}
	return nil
}

func (r *PgxEventParticipantRepository) FindParticipantDetails(ctx context.Context, eventID string) ([]domain.ParticipantDetail, error) {
	query := `
        SELECT ep.participant_id, ep.student_id,
               s.first_name || ' ' || s.last_name,
               u.first_name || ' ' || u.last_name,
               u.email,
               ep.registration_date, ep.fee_paid, ep.notes
        FROM event_participants ep
        JOIN students s ON s.student_id = ep.student_id
        JOIN parents p ON p.parent_id = s.parent_id
        JOIN users u ON u.user_id = p.user_id
        WHERE ep.event_id = $1
        ORDER BY ep.registration_date;
    `
	rows, err := r.Pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participant details: %w", err)
	}
	defer rows.Close()

	details := []domain.ParticipantDetail{}
	for rows.Next() {
		var d domain.ParticipantDetail
		err := rows.Scan(
			&d.ParticipantID,
			&d.StudentID,
			&d.StudentName,
			&d.ParentName,
			&d.ParentEmail,
			&d.RegistrationDate,
			&d.FeePaid,
			&d.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant detail row: %w", err)
		}
		details = append(details, d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating participant detail rows: %w", rows.Err())
	}

	return details, nil
}

// FindRegisteredEventIDs returns the set of event IDs (from eventIDs) that have
// at least one registration by any of the given students.
func (r *PgxEventParticipantRepository) FindRegisteredEventIDs(ctx context.Context, studentIDs []string, eventIDs []string) (map[string]bool, error) {
	registered := map[string]bool{}
	if len(studentIDs) == 0 || len(eventIDs) == 0 {
		return registered, nil
	}

	query := `
        SELECT DISTINCT event_id
        FROM event_participants
        WHERE student_id = ANY($1) AND event_id = ANY($2);
    `
	rows, err := r.Pool.Query(ctx, query, studentIDs, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query registered events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID string
		if err := rows.Scan(&eventID); err != nil {
			return nil, fmt.Errorf("failed to scan registered event row: %w", err)
		}
		registered[eventID] = true
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating registered event rows: %w", rows.Err())
	}

	return registered, nil
}

func (r *PgxEventParticipantRepository) FindStudentEventDetails(ctx context.Context, studentID string) ([]domain.StudentEventDetail, error) {
	query := `
        SELECT ep.participant_id, ev.title, ev.event_type, ev.start_date, ev.location,
               ep.registration_date, ep.fee_paid
        FROM event_participants ep
        JOIN events ev ON ev.event_id = ep.event_id
        WHERE ep.student_id = $1
        ORDER BY ev.start_date NULLS LAST;
    `
	rows, err := r.Pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query student event details: %w", err)
	}
	defer rows.Close()

	details := []domain.StudentEventDetail{}
	for rows.Next() {
		var d domain.StudentEventDetail
		var startDate models.Event
		err := rows.Scan(
			&d.ParticipantID,
			&d.EventTitle,
			&d.EventType,
			&startDate.StartDate,
			&d.Location,
			&d.RegistrationDate,
			&d.FeePaid,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student event detail row: %w", err)
		}
		d.StartDate = timePtr(startDate.StartDate)
		details = append(details, d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating student event detail rows: %w", rows.Err())
	}

	return details, nil
}
