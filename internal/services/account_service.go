package services

import (
	"context"
	"math/big"

	"github.com/estate-agency/frontend/internal/auth"
	"github.com/estate-agency/frontend/internal/models"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

type AccountService struct {
	accounts AccountBackend
	audit    AuditLogger
	log      *zap.Logger
}

// NewAccountService; audit may be nil.
func NewAccountService(accounts AccountBackend, audit AuditLogger, log *zap.Logger) *AccountService {
	return &AccountService{accounts: accounts, audit: audit, log: log}
}

// Login разблокирует аккаунт на ноде паролем пользователя.
func (s *AccountService) Login(ctx context.Context, account common.Address, password string) error {
	if err := s.accounts.UnlockAccount(ctx, account, password); err != nil {
		s.log.Debug("unlock failed", zap.String("account", account.Hex()), zap.Error(err))
		return err
	}

	s.logAudit(ctx, account, models.AuditAccountUnlocked)
	return nil
}

// Register проверяет сложность пароля и создаёт новый аккаунт в keystore ноды.
func (s *AccountService) Register(ctx context.Context, password string) (common.Address, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return common.Address{}, err
	}

	addr, err := s.accounts.NewAccount(ctx, password)
	if err != nil {
		return common.Address{}, err
	}

	s.logAudit(ctx, addr, models.AuditAccountCreated)
	s.log.Info("account created", zap.String("account", addr.Hex()))
	return addr, nil
}

// NativeBalance возвращает баланс аккаунта в wei.
func (s *AccountService) NativeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	return s.accounts.BalanceAt(ctx, account)
}

func (s *AccountService) logAudit(ctx context.Context, account common.Address, action string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Log(ctx, models.AuditLog{ActorAccount: account.Hex(), Action: action}); err != nil {
		s.log.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}
