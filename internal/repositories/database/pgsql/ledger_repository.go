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

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		ParentID:       m.ParentID,
		CurrentBalance: m.CurrentBalance,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

const accountColumns = `account_id, parent_id, current_balance, created_at, updated_at`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(&m.AccountID, &m.ParentID, &m.CurrentBalance, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	a := toDomainAccount(m)
	return &a, nil
}

func (r *PgxAccountRepository) FindAccountByParentID(ctx context.Context, parentID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE parent_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, parentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account for parent %s: %w", parentID, err)
	}
	a := toDomainAccount(m)
	return &a, nil
}

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		AccountID:         d.AccountID,
		StudentID:         nullString(d.StudentID),
		Amount:            d.Amount,
		TransactionType:   string(d.TransactionType),
		Description:       d.Description,
		Status:            d.Status,
		PaymentMethod:     d.PaymentMethod,
		ExternalPaymentID: d.ExternalPaymentID,
		DueDate:           nullTime(d.DueDate),
		PaidDate:          nullTime(d.PaidDate),
		CreatedAt:         d.CreatedAt,
		CreatedBy:         nullString(strToPtr(d.CreatedBy)),
	}
}

func strToPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	createdBy := ""
	if m.CreatedBy.Valid {
		createdBy = m.CreatedBy.String
	}
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		AccountID:         m.AccountID,
		StudentID:         stringPtr(m.StudentID),
		Amount:            m.Amount,
		TransactionType:   domain.TransactionType(m.TransactionType),
		Description:       m.Description,
		Status:            m.Status,
		PaymentMethod:     m.PaymentMethod,
		ExternalPaymentID: m.ExternalPaymentID,
		DueDate:           timePtr(m.DueDate),
		PaidDate:          timePtr(m.PaidDate),
		CreatedAt:         m.CreatedAt,
		CreatedBy:         createdBy,
	}
}

const transactionColumns = `transaction_id, account_id, student_id, amount, transaction_type, description, status, payment_method, external_payment_id, due_date, paid_date, created_at, created_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.StudentID,
		&m.Amount,
		&m.TransactionType,
		&m.Description,
		&m.Status,
		&m.PaymentMethod,
		&m.ExternalPaymentID,
		&m.DueDate,
		&m.PaidDate,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// ApplyTransaction inserts the signed ledger entry and moves the cached account
// balance by the same amount in one database transaction. The account row is
// locked first so concurrent applies serialize and the balance stays equal to
// the sum of the account's transactions.
func (r *PgxLedgerRepository) ApplyTransaction(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var balance decimal.Decimal
	lockQuery := `SELECT current_balance FROM accounts WHERE account_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, txn.AccountID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to lock account row: %w", err)
	}

	m := toModelTransaction(txn)
	insertQuery := `
        INSERT INTO transactions (transaction_id, account_id, student_id, amount, transaction_type, description, status, payment_method, external_payment_id, due_date, paid_date, created_at, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err = tx.Exec(ctx, insertQuery,
		m.TransactionID, m.AccountID, m.StudentID, m.Amount, m.TransactionType,
		m.Description, m.Status, m.PaymentMethod, m.ExternalPaymentID,
		m.DueDate, m.PaidDate, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to insert transaction: %w", err)
	}

	newBalance := balance.Add(txn.Amount)
	updateQuery := `UPDATE accounts SET current_balance = $1, updated_at = $2 WHERE account_id = $3;`
	if _, err := tx.Exec(ctx, updateQuery, newBalance, time.Now().UTC(), txn.AccountID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to update account balance: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

func (r *PgxLedgerRepository) FindTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE TRUE`
	args := []interface{}{}
	argIdx := 1

	if filter.AccountID != "" {
		query += fmt.Sprintf(" AND account_id = $%d", argIdx)
		args = append(args, filter.AccountID)
		argIdx++
	}
	if filter.TransactionType != "" {
		query += fmt.Sprintf(" AND transaction_type = $%d", argIdx)
		args = append(args, filter.TransactionType)
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d;", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	return txns, nil
}

func (r *PgxLedgerRepository) SummarizeAccount(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
        SELECT
            COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'charge'), 0),
            COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'payment'), 0)
        FROM transactions
        WHERE account_id = $1;
    `
	var charges, payments decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&charges, &payments); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to summarize account %s: %w", accountID, err)
	}
	return charges, payments, nil
}
