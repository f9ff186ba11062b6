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
)

type PgxClassRepository struct {
	BaseRepository
}

func newPgxClassRepository(pool *pgxpool.Pool) portsrepo.ClassRepository {
	return &PgxClassRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ClassRepository = (*PgxClassRepository)(nil)

func toDomainClass(m models.DanceClass) domain.DanceClass {
	return domain.DanceClass{
		ClassID:        m.ClassID,
		Name:           m.Name,
		Description:    m.Description,
		StyleID:        stringPtr(m.StyleID),
		LevelID:        stringPtr(m.LevelID),
		InstructorID:   stringPtr(m.InstructorID),
		DayOfWeek:      intPtr(m.DayOfWeek),
		StartTime:      m.StartTime,
		EndTime:        m.EndTime,
		StudioRoom:     m.StudioRoom,
		MaxCapacity:    m.MaxCapacity,
		MonthlyTuition: m.MonthlyTuition,
		IsActive:       m.IsActive,
		StartDate:      timePtr(m.StartDate),
		EndDate:        timePtr(m.EndDate),
		CreatedAt:      m.CreatedAt,
	}
}

const classColumns = `class_id, name, description, style_id, level_id, instructor_id, day_of_week, start_time, end_time, studio_room, max_capacity, monthly_tuition, is_active, start_date, end_date, created_at`

func scanClass(row pgx.Row) (models.DanceClass, error) {
	var m models.DanceClass
	err := row.Scan(
		&m.ClassID,
		&m.Name,
		&m.Description,
		&m.StyleID,
		&m.LevelID,
		&m.InstructorID,
		&m.DayOfWeek,
		&m.StartTime,
		&m.EndTime,
		&m.StudioRoom,
		&m.MaxCapacity,
		&m.MonthlyTuition,
		&m.IsActive,
		&m.StartDate,
		&m.EndDate,
		&m.CreatedAt,
	)
	return m, err
}

func (r *PgxClassRepository) FindClasses(ctx context.Context, filter portsrepo.ClassFilter) ([]domain.DanceClass, error) {
	query := `SELECT ` + classColumns + ` FROM dance_classes WHERE is_active`
	args := []interface{}{}
	argIdx := 1

	if filter.StyleID != "" {
		query += fmt.Sprintf(" AND style_id = $%d", argIdx)
		args = append(args, filter.StyleID)
		argIdx++
	}
	if filter.LevelID != "" {
		query += fmt.Sprintf(" AND level_id = $%d", argIdx)
		args = append(args, filter.LevelID)
		argIdx++
	}
	if filter.DayOfWeek != nil {
		query += fmt.Sprintf(" AND day_of_week = $%d", argIdx)
		args = append(args, *filter.DayOfWeek)
		argIdx++
	}
	query += " ORDER BY day_of_week NULLS LAST, start_time, name;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query classes: %w", err)
	}
	defer rows.Close()

	classes := []domain.DanceClass{}
	for rows.Next() {
		m, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan class row: %w", err)
		}
		classes = append(classes, toDomainClass(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating class rows: %w", rows.Err())
	}

	return classes, nil
}

func (r *PgxClassRepository) FindClassByID(ctx context.Context, classID string) (*domain.DanceClass, error) {
	query := `SELECT ` + classColumns + ` FROM dance_classes WHERE class_id = $1;`
	m, err := scanClass(r.Pool.QueryRow(ctx, query, classID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find class by ID %s: %w", classID, err)
	}
	c := toDomainClass(m)
	return &c, nil
}

// FindSchedule returns the public weekly schedule with style, level and
// instructor names resolved.
func (r *PgxClassRepository) FindSchedule(ctx context.Context) ([]domain.ScheduleEntry, error) {
	query := `
        SELECT c.class_id, c.name, c.description,
               COALESCE(st.name, ''), COALESCE(lv.name, ''),
               COALESCE(u.first_name || ' ' || u.last_name, ''),
               c.day_of_week, c.start_time, c.end_time, c.studio_room,
               c.monthly_tuition, c.max_capacity
        FROM dance_classes c
        LEFT JOIN dance_styles st ON st.style_id = c.style_id
        LEFT JOIN class_levels lv ON lv.level_id = c.level_id
        LEFT JOIN instructors i ON i.instructor_id = c.instructor_id
        LEFT JOIN users u ON u.user_id = i.user_id
        WHERE c.is_active
        ORDER BY c.day_of_week NULLS LAST, c.start_time, c.name;
    `
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule: %w", err)
	}
	defer rows.Close()

	entries := []domain.ScheduleEntry{}
	for rows.Next() {
		var e domain.ScheduleEntry
		var dayOfWeek models.DanceClass
		err := rows.Scan(
			&e.ClassID,
			&e.Name,
			&e.Description,
			&e.Style,
			&e.Level,
			&e.Instructor,
			&dayOfWeek.DayOfWeek,
			&e.StartTime,
			&e.EndTime,
			&e.StudioRoom,
			&e.MonthlyTuition,
			&e.MaxCapacity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule row: %w", err)
		}
		e.DayOfWeek = intPtr(dayOfWeek.DayOfWeek)
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating schedule rows: %w", rows.Err())
	}

	return entries, nil
}

type PgxEnrollmentRepository struct {
	BaseRepository
}

func newPgxEnrollmentRepository(pool *pgxpool.Pool) portsrepo.EnrollmentRepository {
	return &PgxEnrollmentRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.EnrollmentRepository = (*PgxEnrollmentRepository)(nil)

func toDomainEnrollment(m models.Enrollment) domain.Enrollment {
	return domain.Enrollment{
		EnrollmentID:   m.EnrollmentID,
		StudentID:      m.StudentID,
		ClassID:        m.ClassID,
		EnrollmentDate: m.EnrollmentDate,
		Status:         domain.EnrollmentStatus(m.Status),
		DropDate:       timePtr(m.DropDate),
		CreatedAt:      m.CreatedAt,
	}
}

const enrollmentColumns = `enrollment_id, student_id, class_id, enrollment_date, status, drop_date, created_at`

func scanEnrollment(row pgx.Row) (models.Enrollment, error) {
	var m models.Enrollment
	err := row.Scan(
		&m.EnrollmentID,
		&m.StudentID,
		&m.ClassID,
		&m.EnrollmentDate,
		&m.Status,
		&m.DropDate,
		&m.CreatedAt,
	)
	return m, err
}

func (r *PgxEnrollmentRepository) FindActiveEnrollment(ctx context.Context, studentID, classID string) (*domain.Enrollment, error) {
	query := `
        SELECT ` + enrollmentColumns + `
        FROM enrollments
        WHERE student_id = $1 AND class_id = $2 AND status = 'active';
    `
	m, err := scanEnrollment(r.Pool.QueryRow(ctx, query, studentID, classID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active enrollment: %w", err)
	}
	e := toDomainEnrollment(m)
	return &e, nil
}

// CreateEnrollment inserts the enrollment after re-checking the roster count
// under a row lock on the class. Concurrent enrollments into the same class
// serialize on the lock, so the capacity check cannot be raced past.
func (r *PgxEnrollmentRepository) CreateEnrollment(ctx context.Context, enrollment domain.Enrollment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var maxCapacity int
	lockQuery := `SELECT max_capacity FROM dance_classes WHERE class_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, enrollment.ClassID).Scan(&maxCapacity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock class row: %w", err)
	}

	var activeCount int
	countQuery := `SELECT COUNT(*) FROM enrollments WHERE class_id = $1 AND status = 'active';`
	if err := tx.QueryRow(ctx, countQuery, enrollment.ClassID).Scan(&activeCount); err != nil {
		return fmt.Errorf("failed to count active enrollments: %w", err)
	}
	if activeCount >= maxCapacity {
		return fmt.Errorf("class is at capacity: %w", apperrors.ErrConflict)
	}

	insertQuery := `
        INSERT INTO enrollments (enrollment_id, student_id, class_id, enrollment_date, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err = tx.Exec(ctx, insertQuery,
		enrollment.EnrollmentID,
		enrollment.StudentID,
		enrollment.ClassID,
		enrollment.EnrollmentDate,
		string(enrollment.Status),
		enrollment.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("student already enrolled: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert enrollment: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxEnrollmentRepository) DropEnrollment(ctx context.Context, studentID, classID string, dropDate time.Time) error {
	query := `
        UPDATE enrollments
        SET status = 'dropped', drop_date = $1
        WHERE student_id = $2 AND class_id = $3 AND status = 'active';
    `
	cmdTag, err := r.Pool.Exec(ctx, query, dropDate, studentID, classID)
	if err != nil {
		return fmt.Errorf("failed to drop enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("no active enrollment for student in class: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxEnrollmentRepository) CountActiveEnrollments(ctx context.Context, classID string) (int, error) {
	query := `SELECT COUNT(*) FROM enrollments WHERE class_id = $1 AND status = 'active';`
	var count int
	if err := r.Pool.QueryRow(ctx, query, classID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active enrollments: %w", err)
	}
	return count, nil
}

func (r *PgxEnrollmentRepository) FindActiveEnrollmentDetails(ctx context.Context, studentIDs []string) ([]domain.EnrollmentDetail, error) {
	if len(studentIDs) == 0 {
		return []domain.EnrollmentDetail{}, nil
	}

	query := `
        SELECT e.enrollment_id, e.student_id,
               s.first_name || ' ' || s.last_name,
               c.class_id, c.name,
               COALESCE(st.name, ''), COALESCE(lv.name, ''),
               c.day_of_week, c.start_time, c.end_time, c.studio_room,
               c.monthly_tuition, e.enrollment_date
        FROM enrollments e
        JOIN students s ON s.student_id = e.student_id
        JOIN dance_classes c ON c.class_id = e.class_id
        LEFT JOIN dance_styles st ON st.style_id = c.style_id
        LEFT JOIN class_levels lv ON lv.level_id = c.level_id
        WHERE e.student_id = ANY($1) AND e.status = 'active'
        ORDER BY c.day_of_week NULLS LAST, c.start_time;
    `
	rows, err := r.Pool.Query(ctx, query, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollment details: %w", err)
	}
	defer rows.Close()

	details := []domain.EnrollmentDetail{}
	for rows.Next() {
		var d domain.EnrollmentDetail
		var dayOfWeek models.DanceClass
		var enrollmentDate models.Enrollment
		err := rows.Scan(
			&d.EnrollmentID,
			&d.StudentID,
			&d.StudentName,
			&d.ClassID,
			&d.ClassName,
			&d.Style,
			&d.Level,
			&dayOfWeek.DayOfWeek,
			&d.StartTime,
			&d.EndTime,
			&d.StudioRoom,
			&d.MonthlyTuition,
			&enrollmentDate.EnrollmentDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment detail row: %w", err)
		}
		d.DayOfWeek = intPtr(dayOfWeek.DayOfWeek)
		ed := enrollmentDate.EnrollmentDate
		d.EnrollmentDate = &ed
		details = append(details, d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating enrollment detail rows: %w", rows.Err())
	}

	return details, nil
}
