package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/David2024patton/studio4-dance/internal/apperrors"
	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portsrepo "github.com/David2024patton/studio4-dance/internal/core/ports/repositories"
	"github.com/David2024patton/studio4-dance/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxParentRepository struct {
	BaseRepository
}

func newPgxParentRepository(pool *pgxpool.Pool) portsrepo.ParentRepository {
	return &PgxParentRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ParentRepository = (*PgxParentRepository)(nil)

func toDomainParent(m models.Parent) domain.Parent {
	return domain.Parent{
		ParentID:              m.ParentID,
		UserID:                m.UserID,
		EmergencyContactName:  m.EmergencyContactName,
		EmergencyContactPhone: m.EmergencyContactPhone,
		AddressLine1:          m.AddressLine1,
		AddressLine2:          m.AddressLine2,
		City:                  m.City,
		State:                 m.State,
		ZipCode:               m.ZipCode,
		Notes:                 m.Notes,
		CreatedAt:             m.CreatedAt,
	}
}

const parentColumns = `parent_id, user_id, emergency_contact_name, emergency_contact_phone, address_line1, address_line2, city, state, zip_code, notes, created_at`

func scanParent(row pgx.Row) (models.Parent, error) {
	var m models.Parent
	err := row.Scan(
		&m.ParentID,
		&m.UserID,
		&m.EmergencyContactName,
		&m.EmergencyContactPhone,
		&m.AddressLine1,
		&m.AddressLine2,
		&m.City,
		&m.State,
		&m.ZipCode,
		&m.Notes,
		&m.CreatedAt,
	)
	return m, err
}

func (r *PgxParentRepository) FindParentByID(ctx context.Context, parentID string) (*domain.Parent, error) {
	query := `SELECT ` + parentColumns + ` FROM parents WHERE parent_id = $1;`
	m, err := scanParent(r.Pool.QueryRow(ctx, query, parentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find parent by ID %s: %w", parentID, err)
	}
	p := toDomainParent(m)
	return &p, nil
}

func (r *PgxParentRepository) FindParentByUserID(ctx context.Context, userID string) (*domain.Parent, error) {
	query := `SELECT ` + parentColumns + ` FROM parents WHERE user_id = $1;`
	m, err := scanParent(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find parent by user ID %s: %w", userID, err)
	}
	p := toDomainParent(m)
	return &p, nil
}

type PgxStudentRepository struct {
	BaseRepository
}

func newPgxStudentRepository(pool *pgxpool.Pool) portsrepo.StudentRepository {
	return &PgxStudentRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.StudentRepository = (*PgxStudentRepository)(nil)

func toDomainStudent(m models.Student) domain.Student {
	return domain.Student{
		StudentID:    m.StudentID,
		ParentID:     m.ParentID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		DateOfBirth:  timePtr(m.DateOfBirth),
		Gender:       m.Gender,
		SchoolGrade:  m.SchoolGrade,
		MedicalNotes: m.MedicalNotes,
		PhotoRelease: m.PhotoRelease,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
	}
}

const studentColumns = `student_id, parent_id, first_name, last_name, date_of_birth, gender, school_grade, medical_notes, photo_release, is_active, created_at`

func scanStudent(row pgx.Row) (models.Student, error) {
	var m models.Student
	err := row.Scan(
		&m.StudentID,
		&m.ParentID,
		&m.FirstName,
		&m.LastName,
		&m.DateOfBirth,
		&m.Gender,
		&m.SchoolGrade,
		&m.MedicalNotes,
		&m.PhotoRelease,
		&m.IsActive,
		&m.CreatedAt,
	)
	return m, err
}

func (r *PgxStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_id = $1;`
	m, err := scanStudent(r.Pool.QueryRow(ctx, query, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find student by ID %s: %w", studentID, err)
	}
	s := toDomainStudent(m)
	return &s, nil
}

func (r *PgxStudentRepository) FindStudentsByParentID(ctx context.Context, parentID string) ([]domain.Student, error) {
	query := `
        SELECT ` + studentColumns + `
        FROM students
        WHERE parent_id = $1 AND is_active
        ORDER BY first_name, last_name;
    `
	rows, err := r.Pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	students := []domain.Student{}
	for rows.Next() {
		m, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, toDomainStudent(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", rows.Err())
	}

	return students, nil
}
