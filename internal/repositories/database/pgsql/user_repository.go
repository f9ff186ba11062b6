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

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

func toModelUser(d domain.User) models.User {
	return models.User{
		UserID:        d.UserID,
		Email:         d.Email,
		PasswordHash:  d.PasswordHash,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Phone:         d.Phone,
		Role:          string(d.Role),
		IsActive:      d.IsActive,
		EmailVerified: d.EmailVerified,
		LastLogin:     nullTime(d.LastLogin),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:        m.UserID,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Phone:         m.Phone,
		Role:          domain.Role(m.Role),
		IsActive:      m.IsActive,
		EmailVerified: m.EmailVerified,
		LastLogin:     timePtr(m.LastLogin),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

const userColumns = `user_id, email, password_hash, first_name, last_name, phone, role, is_active, email_verified, last_login, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.PasswordHash,
		&m.FirstName,
		&m.LastName,
		&m.Phone,
		&m.Role,
		&m.IsActive,
		&m.EmailVerified,
		&m.LastLogin,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// CreateUserWithProfile inserts the user row and, when the parent profile and
// account are provided, the parent and its ledger account in one transaction.
func (r *PgxUserRepository) CreateUserWithProfile(ctx context.Context, user domain.User, parent *domain.Parent, account *domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	modelUser := toModelUser(user)
	userQuery := `
        INSERT INTO users (user_id, email, password_hash, first_name, last_name, phone, role, is_active, email_verified, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err = tx.Exec(ctx, userQuery,
		modelUser.UserID,
		modelUser.Email,
		modelUser.PasswordHash,
		modelUser.FirstName,
		modelUser.LastName,
		modelUser.Phone,
		modelUser.Role,
		modelUser.IsActive,
		modelUser.EmailVerified,
		modelUser.CreatedAt,
		modelUser.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	if parent != nil {
		parentQuery := `
            INSERT INTO parents (parent_id, user_id, emergency_contact_name, emergency_contact_phone, address_line1, address_line2, city, state, zip_code, notes, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
        `
		_, err = tx.Exec(ctx, parentQuery,
			parent.ParentID,
			parent.UserID,
			parent.EmergencyContactName,
			parent.EmergencyContactPhone,
			parent.AddressLine1,
			parent.AddressLine2,
			parent.City,
			parent.State,
			parent.ZipCode,
			parent.Notes,
			parent.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert parent profile: %w", err)
		}
	}

	if account != nil {
		accountQuery := `
            INSERT INTO accounts (account_id, parent_id, current_balance, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5);
        `
		_, err = tx.Exec(ctx, accountQuery,
			account.AccountID,
			account.ParentID,
			account.CurrentBalance,
			account.CreatedAt,
			account.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert ledger account: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	domainUser := toDomainUser(m)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1);`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	domainUser := toDomainUser(m)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + userColumns + `
        FROM users
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, toDomainUser(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}

	return users, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	modelUser := toModelUser(user)
	query := `
        UPDATE users
        SET first_name = $1, last_name = $2, phone = $3, updated_at = $4
        WHERE user_id = $5;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelUser.FirstName,
		modelUser.LastName,
		modelUser.Phone,
		modelUser.UpdatedAt,
		modelUser.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	query := `UPDATE users SET last_login = $1 WHERE user_id = $2;`
	_, err := r.Pool.Exec(ctx, query, at, userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) DeactivateUser(ctx context.Context, userID string) error {
	query := `UPDATE users SET is_active = FALSE, updated_at = $1 WHERE user_id = $2 AND is_active;`
	cmdTag, err := r.Pool.Exec(ctx, query, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already inactive: %w", apperrors.ErrNotFound)
	}
	return nil
}
