package dto

import (
	"time"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse defines the data returned for a ledger account.
type AccountResponse struct {
	AccountID      string          `json:"accountID"`
	ParentID       string          `json:"parentID"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	Status         string          `json:"status"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      a.AccountID,
		ParentID:       a.ParentID,
		CurrentBalance: a.CurrentBalance,
		Status:         a.BalanceStatus(),
		UpdatedAt:      a.UpdatedAt,
	}
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	StudentID       *string         `json:"studentID,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transactionType"`
	Description     string          `json:"description,omitempty"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	PaidDate        *time.Time      `json:"paidDate,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		AccountID:       t.AccountID,
		StudentID:       t.StudentID,
		Amount:          t.Amount,
		TransactionType: string(t.TransactionType),
		Description:     t.Description,
		Status:          t.Status,
		PaymentMethod:   t.PaymentMethod,
		DueDate:         t.DueDate,
		PaidDate:        t.PaidDate,
		CreatedAt:       t.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to DTOs.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// CreateTransactionRequest defines a raw signed ledger entry (staff only).
type CreateTransactionRequest struct {
	AccountID       string          `json:"accountID" binding:"required"`
	StudentID       *string         `json:"studentID"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	TransactionType string          `json:"transactionType" binding:"required,oneof=charge payment"`
	Description     string          `json:"description"`
	PaymentMethod   string          `json:"paymentMethod"`
	DueDate         *time.Time      `json:"dueDate"`
}

// PaymentRequest defines a payment against an account.
type PaymentRequest struct {
	AccountID         string          `json:"accountID" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod     string          `json:"paymentMethod" binding:"required"`
	ExternalPaymentID string          `json:"externalPaymentID"`
}

// ChargeRequest defines a charge against an account (staff only).
type ChargeRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	StudentID   *string         `json:"studentID"`
	DueDate     *time.Time      `json:"dueDate"`
}

// ListTransactionsParams defines query parameters for ledger listings.
type ListTransactionsParams struct {
	TransactionType string `form:"transactionType" binding:"omitempty,oneof=charge payment"`
	Status          string `form:"status"`
	Limit           int    `form:"limit,default=100"`
	Offset          int    `form:"offset,default=0"`
}

// BillingSummaryResponse aggregates an account ledger for staff display.
type BillingSummaryResponse struct {
	AccountID      string          `json:"accountID"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	TotalCharges   decimal.Decimal `json:"totalCharges"`
	TotalPayments  decimal.Decimal `json:"totalPayments"`
	Status         string          `json:"status"`
}
