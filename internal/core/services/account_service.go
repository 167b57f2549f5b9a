package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const fallbackCurrency = "BRL"

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryFacade
	defaultCurrency string
	now             func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithDefaultCurrency sets the currency used when a create request omits one.
func WithDefaultCurrency(code string) AccountServiceOption {
	return func(s *accountService) {
		if code != "" {
			s.defaultCurrency = strings.ToUpper(code)
		}
	}
}

// WithAccountClock overrides time.Now, mostly for tests.
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo:     repo,
		defaultCurrency: fallbackCurrency,
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("Name is required")
	}
	if !req.Type.IsValid() {
		return nil, apperrors.NewValidationError("Invalid account type")
	}

	currency := s.defaultCurrency
	if req.Currency != nil && *req.Currency != "" {
		currency = strings.ToUpper(*req.Currency)
	}
	balance := decimal.Zero
	if req.Balance != nil {
		balance = *req.Balance
	}

	now := s.now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      userID,
		Name:        name,
		AccountType: req.Type,
		Bank:        req.Bank,
		Balance:     balance,
		Currency:    currency,
		IsActive:    true,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, s.storeError(ctx, err, "failed to save account", slog.String("account_id", account.AccountID))
	}

	s.LogInfo(ctx, "Account created successfully", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	return fetchOwned(ctx, &s.BaseService, "account", accountID, func() (*domain.Account, error) {
		return s.accountRepo.FindAccountByID(ctx, userID, accountID)
	})
}

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID)
	if err != nil {
		return nil, s.storeError(ctx, err, "failed to list accounts")
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("Name cannot be empty")
		}
		account.Name = name
	}
	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, apperrors.NewValidationError("Invalid account type")
		}
		account.AccountType = *req.Type
	}
	if req.Bank != nil {
		account.Bank = req.Bank
	}
	if req.Currency != nil {
		account.Currency = strings.ToUpper(*req.Currency)
	}
	account.UpdatedAt = s.now().UTC()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account")
		}
		return nil, s.storeError(ctx, err, "failed to update account", slog.String("account_id", accountID))
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount soft deletes the account. Its transactions and balance stay
// in place so history and reports remain resolvable.
func (s *accountService) DeactivateAccount(ctx context.Context, userID string, accountID string) error {
	if _, err := s.GetAccountByID(ctx, userID, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, userID, accountID, s.now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("account")
		}
		return s.storeError(ctx, err, "failed to deactivate account", slog.String("account_id", accountID))
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
