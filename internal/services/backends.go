package services

import (
	"context"
	"errors"
	"math/big"

	"github.com/estate-agency/frontend/internal/models"
	"github.com/ethereum/go-ethereum/common"
)

// AccountBackend is implemented by chain.Client.
type AccountBackend interface {
	UnlockAccount(ctx context.Context, account common.Address, password string) error
	NewAccount(ctx context.Context, password string) (common.Address, error)
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
}

// ContractCaller is implemented by chain.Contract.
type ContractCaller interface {
	Call(ctx context.Context, from common.Address, method string, args ...any) ([]any, error)
	Transact(ctx context.Context, from common.Address, value *big.Int, method string, args ...any) (common.Hash, error)
}

// TxJournal is implemented by repositories.TxRepo.
type TxJournal interface {
	Create(ctx context.Context, tx *models.TxRecord) error
	ListByAccount(ctx context.Context, account string, limit int) ([]models.TxRecord, error)
}

// AuditLogger is implemented by repositories.AuditRepo.
type AuditLogger interface {
	Log(ctx context.Context, entry models.AuditLog) error
}

var (
	ErrInsufficientFunds = errors.New("Недостаточно средств для покупки недвижимости")
	ErrNoFunds           = errors.New("На вашем балансе нет средств для вывода")
	ErrJournalDisabled   = errors.New("журнал транзакций отключён")
)
