package repositories

import (
	"context"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows ledger listings.
type TransactionFilter struct {
	AccountID       string // empty means all accounts (staff listing)
	TransactionType string
	Status          string
	Limit           int
	Offset          int
}

// AccountRepository defines read operations for ledger accounts.
type AccountRepository interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByParentID(ctx context.Context, parentID string) (*domain.Account, error)
}

// LedgerRepository owns the atomic balance+transaction write.
type LedgerRepository interface {
	// ApplyTransaction locks the account row, inserts the transaction and adds
	// its signed amount to the cached balance, all in one database
	// transaction. Both writes succeed or both are rolled back. Returns the
	// balance after the apply.
	ApplyTransaction(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error)
	FindTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
	// SummarizeAccount returns total charge and total payment amounts for the
	// account, as stored (payments are negative).
	SummarizeAccount(ctx context.Context, accountID string) (charges, payments decimal.Decimal, err error)
}
