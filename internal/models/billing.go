package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Account is the database row for a parent ledger account.
type Account struct {
	AccountID      string          `db:"account_id"`
	ParentID       string          `db:"parent_id"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// Transaction is the database row for a signed ledger entry.
type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	AccountID         string          `db:"account_id"`
	StudentID         sql.NullString  `db:"student_id"`
	Amount            decimal.Decimal `db:"amount"`
	TransactionType   string          `db:"transaction_type"`
	Description       string          `db:"description"`
	Status            string          `db:"status"`
	PaymentMethod     string          `db:"payment_method"`
	ExternalPaymentID string          `db:"external_payment_id"`
	DueDate           sql.NullTime    `db:"due_date"`
	PaidDate          sql.NullTime    `db:"paid_date"`
	CreatedAt         time.Time       `db:"created_at"`
	CreatedBy         sql.NullString  `db:"created_by"`
}
