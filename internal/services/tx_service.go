package services

import (
	"context"
	"math/big"

	"github.com/estate-agency/frontend/internal/events"
	"github.com/estate-agency/frontend/internal/models"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

const historyLimit = 50

// TxService journals submitted transactions and announces them on the event stream.
// Both collaborators are optional.
type TxService struct {
	journal   TxJournal
	publisher events.Publisher
	log       *zap.Logger
}

func NewTxService(journal TxJournal, publisher events.Publisher, log *zap.Logger) *TxService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &TxService{journal: journal, publisher: publisher, log: log}
}

// Record never fails the caller: the transaction is already on its way.
func (s *TxService) Record(ctx context.Context, account common.Address, action string, hash common.Hash, value *big.Int) {
	valueWei := "0"
	if value != nil {
		valueWei = value.String()
	}

	if s.journal != nil {
		tx := &models.TxRecord{
			Hash:     hash.Hex(),
			Account:  account.Hex(),
			Action:   action,
			ValueWei: valueWei,
			Status:   models.TxStatusPending,
		}
		if err := s.journal.Create(ctx, tx); err != nil {
			s.log.Warn("failed to journal transaction", zap.String("hash", hash.Hex()), zap.Error(err))
		}
	}

	_ = s.publisher.Publish(ctx, events.StreamTx, events.Event{
		Type: events.EventTransactionSubmitted,
		Payload: map[string]any{
			"account":   account.Hex(),
			"action":    action,
			"hash":      hash.Hex(),
			"value_wei": valueWei,
		},
	})

	s.log.Info("transaction submitted",
		zap.String("account", account.Hex()),
		zap.String("action", action),
		zap.String("hash", hash.Hex()),
	)
}

// History returns the latest journaled transactions of the account.
func (s *TxService) History(ctx context.Context, account common.Address) ([]models.TxRecord, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.journal.ListByAccount(ctx, account.Hex(), historyLimit)
}
