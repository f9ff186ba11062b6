package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags a ledger entry. Charges are recorded with positive
// amounts (money owed), payments with negative amounts.
type TransactionType string

const (
	TransactionCharge  TransactionType = "charge"
	TransactionPayment TransactionType = "payment"
)

// Account holds one running ledger balance per parent. The stored balance is
// the authoritative cached sum of all transaction amounts for the account and
// is updated in the same database transaction as every ledger insert.
type Account struct {
	AccountID      string          `json:"accountID"`
	ParentID       string          `json:"parentID"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// BalanceStatus describes an account balance for display: positive balances
// are owed to the studio, negative balances are parent credit.
func (a Account) BalanceStatus() string {
	switch {
	case a.CurrentBalance.IsPositive():
		return "due"
	case a.CurrentBalance.IsNegative():
		return "credit"
	default:
		return "balanced"
	}
}

// Transaction is a single signed ledger entry tied to an account. Immutable
// once created except for status and paid date.
type Transaction struct {
	TransactionID    string          `json:"transactionID"`
	AccountID        string          `json:"accountID"`
	StudentID        *string         `json:"studentID,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	TransactionType  TransactionType `json:"transactionType"`
	Description      string          `json:"description,omitempty"`
	Status           string          `json:"status"`
	PaymentMethod    string          `json:"paymentMethod,omitempty"`
	ExternalPaymentID string         `json:"externalPaymentID,omitempty"`
	DueDate          *time.Time      `json:"dueDate,omitempty"`
	PaidDate         *time.Time      `json:"paidDate,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy,omitempty"`
}

// BillingSummary aggregates an account's ledger for staff display.
type BillingSummary struct {
	AccountID      string          `json:"accountID"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	TotalCharges   decimal.Decimal `json:"totalCharges"`
	TotalPayments  decimal.Decimal `json:"totalPayments"`
	Status         string          `json:"status"`
}
