package services

import (
	"context"
	"fmt"

	"github.com/David2024patton/studio4-dance/internal/apperrors"
	"github.com/David2024patton/studio4-dance/internal/core/authz"
	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portsrepo "github.com/David2024patton/studio4-dance/internal/core/ports/repositories"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/dto"
	"github.com/David2024patton/studio4-dance/internal/middleware"
	"github.com/google/uuid"
)

type BillingService struct {
	parentRepo  portsrepo.ParentRepository
	studentRepo portsrepo.StudentRepository
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.LedgerRepository
	publisher   portssvc.LedgerEventPublisher
	clock       portssvc.Clock
}

var _ portssvc.BillingSvcFacade = (*BillingService)(nil)

func NewBillingService(
	parentRepo portsrepo.ParentRepository,
	studentRepo portsrepo.StudentRepository,
	accountRepo portsrepo.AccountRepository,
	ledgerRepo portsrepo.LedgerRepository,
	publisher portssvc.LedgerEventPublisher,
) *BillingService {
	return &BillingService{
		parentRepo:  parentRepo,
		studentRepo: studentRepo,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		publisher:   publisher,
		clock:       portssvc.RealClock{},
	}
}

// ownAccount resolves the caller's parent profile to its ledger account.
func (s *BillingService) ownAccount(ctx context.Context, caller domain.Caller) (*domain.Account, error) {
	parent, err := s.parentRepo.FindParentByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountByParentID(ctx, parent.ParentID)
}

// accountForCaller loads the account and rejects parents reaching into
// accounts that are not theirs. Billing staff may access any account.
func (s *BillingService) accountForCaller(ctx context.Context, caller domain.Caller, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if authz.Allowed(caller.Role, authz.ResourceBilling, authz.OpReadAny) {
		return account, nil
	}

	parent, err := s.parentRepo.FindParentByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, apperrors.ErrForbidden
	}
	if account.ParentID != parent.ParentID {
		return nil, apperrors.ErrForbidden
	}
	return account, nil
}

// GetOwnAccount returns the calling parent's account. Staff have no account
// of their own and must look accounts up by parent ID.
func (s *BillingService) GetOwnAccount(ctx context.Context, caller domain.Caller) (*domain.Account, error) {
	if caller.Role.IsStaff() {
		return nil, fmt.Errorf("staff accounts do not carry a ledger, use the by-parent lookup: %w", apperrors.ErrValidation)
	}
	return s.ownAccount(ctx, caller)
}

func (s *BillingService) GetAccountByParentID(ctx context.Context, caller domain.Caller, parentID string) (*domain.Account, error) {
	if !authz.Allowed(caller.Role, authz.ResourceBilling, authz.OpReadAny) {
		parent, err := s.parentRepo.FindParentByUserID(ctx, caller.UserID)
		if err != nil || parent.ParentID != parentID {
			return nil, apperrors.ErrForbidden
		}
	}
	return s.accountRepo.FindAccountByParentID(ctx, parentID)
}

// ListTransactions lists ledger entries. Billing staff see every account;
// parents are pinned to their own.
func (s *BillingService) ListTransactions(ctx context.Context, caller domain.Caller, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	filter := portsrepo.TransactionFilter{
		TransactionType: params.TransactionType,
		Status:          params.Status,
		Limit:           params.Limit,
		Offset:          params.Offset,
	}

	if !authz.Allowed(caller.Role, authz.ResourceBilling, authz.OpReadAny) {
		account, err := s.ownAccount(ctx, caller)
		if err != nil {
			return nil, err
		}
		filter.AccountID = account.AccountID
	}

	return s.ledgerRepo.FindTransactions(ctx, filter)
}

func (s *BillingService) ListTransactionsByAccount(ctx context.Context, caller domain.Caller, accountID string, limit, offset int) ([]domain.Transaction, error) {
	account, err := s.accountForCaller(ctx, caller, accountID)
	if err != nil {
		return nil, err
	}
	return s.ledgerRepo.FindTransactions(ctx, portsrepo.TransactionFilter{
		AccountID: account.AccountID,
		Limit:     limit,
		Offset:    offset,
	})
}

// CreateTransaction records a raw signed ledger entry. Staff only. The sign is
// normalized from the transaction type: charges positive, payments negative.
func (s *BillingService) CreateTransaction(ctx context.Context, caller domain.Caller, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if !authz.Allowed(caller.Role, authz.ResourceBilling, authz.OpCreate) {
		return nil, apperrors.ErrForbidden
	}
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("amount must be non-zero: %w", apperrors.ErrValidation)
	}

	txnType := domain.TransactionType(req.TransactionType)
	amount := req.Amount.Abs()
	status := "pending"
	if txnType == domain.TransactionPayment {
		amount = amount.Neg()
		status = "completed"
	}

	now := s.clock.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       req.AccountID,
		StudentID:       req.StudentID,
		Amount:          amount,
		TransactionType: txnType,
		Description:     req.Description,
		Status:          status,
		PaymentMethod:   req.PaymentMethod,
		DueDate:         req.DueDate,
		CreatedAt:       now,
		CreatedBy:       caller.UserID,
	}
	if txnType == domain.TransactionPayment {
		txn.PaidDate = &now
	}

	return s.apply(ctx, txn)
}

// MakePayment records a payment against an account. Parents may pay only
// their own account.
func (s *BillingService) MakePayment(ctx context.Context, caller domain.Caller, req dto.PaymentRequest) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive: %w", apperrors.ErrValidation)
	}

	account, err := s.accountForCaller(ctx, caller, req.AccountID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	txn := domain.Transaction{
		TransactionID:     uuid.NewString(),
		AccountID:         account.AccountID,
		Amount:            req.Amount.Neg(),
		TransactionType:   domain.TransactionPayment,
		Description:       fmt.Sprintf("Payment via %s", req.PaymentMethod),
		Status:            "completed",
		PaymentMethod:     req.PaymentMethod,
		ExternalPaymentID: req.ExternalPaymentID,
		PaidDate:          &now,
		CreatedAt:         now,
		CreatedBy:         caller.UserID,
	}

	return s.apply(ctx, txn)
}

// CreateCharge records a charge against an account. Billing staff only.
func (s *BillingService) CreateCharge(ctx context.Context, caller domain.Caller, req dto.ChargeRequest) (*domain.Transaction, error) {
	if !authz.Allowed(caller.Role, authz.ResourceBilling, authz.OpCharge) {
		return nil, apperrors.ErrForbidden
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("charge amount must be positive: %w", apperrors.ErrValidation)
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, req.AccountID); err != nil {
		return nil, err
	}
	if req.StudentID != nil {
		if _, err := s.studentRepo.FindStudentByID(ctx, *req.StudentID); err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       req.AccountID,
		StudentID:       req.StudentID,
		Amount:          req.Amount,
		TransactionType: domain.TransactionCharge,
		Description:     req.Description,
		Status:          "pending",
		DueDate:         req.DueDate,
		CreatedAt:       now,
		CreatedBy:       caller.UserID,
	}

	return s.apply(ctx, txn)
}

// apply writes the entry through the ledger repository and publishes the
// recorded event. A publish failure is logged, not surfaced; the ledger write
// already committed.
func (s *BillingService) apply(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	newBalance, err := s.ledgerRepo.ApplyTransaction(ctx, txn)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishTransactionRecorded(ctx, txn, newBalance); err != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to publish transaction event",
				"transaction_id", txn.TransactionID, "error", err)
		}
	}

	return &txn, nil
}

// GetSummary aggregates an account's ledger. Billing staff only.
func (s *BillingService) GetSummary(ctx context.Context, caller domain.Caller, parentID string) (*domain.BillingSummary, error) {
	if !authz.Allowed(caller.Role, authz.ResourceBilling, authz.OpSummary) {
		return nil, apperrors.ErrForbidden
	}

	account, err := s.accountRepo.FindAccountByParentID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	charges, payments, err := s.ledgerRepo.SummarizeAccount(ctx, account.AccountID)
	if err != nil {
		return nil, err
	}

	return &domain.BillingSummary{
		AccountID:      account.AccountID,
		CurrentBalance: account.CurrentBalance,
		TotalCharges:   charges,
		TotalPayments:  payments.Abs(),
		Status:         account.BalanceStatus(),
	}, nil
}
