package services

import (
	"context"
	"errors"
	"time"

	"github.com/estate-agency/frontend/internal/events"
	"github.com/estate-agency/frontend/internal/models"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// ReceiptSource is implemented by chain.Client.
type ReceiptSource interface {
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// PendingJournal is implemented by repositories.TxRepo.
type PendingJournal interface {
	ListPending(ctx context.Context, limit int) ([]models.TxRecord, error)
	UpdateStatus(ctx context.Context, hash, status string, blockNumber int64) error
}

// ReceiptService settles journaled transactions once the node has a receipt.
type ReceiptService struct {
	receipts  ReceiptSource
	journal   PendingJournal
	publisher events.Publisher
	batchSize int
	log       *zap.Logger
}

func NewReceiptService(receipts ReceiptSource, journal PendingJournal, publisher events.Publisher, batchSize int, log *zap.Logger) *ReceiptService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &ReceiptService{
		receipts:  receipts,
		journal:   journal,
		publisher: publisher,
		batchSize: batchSize,
		log:       log,
	}
}

// Run polls until ctx is cancelled.
func (s *ReceiptService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.Poll(ctx); err != nil && ctx.Err() == nil {
				s.log.Error("receipt poll failed", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

// Poll settles one batch of pending transactions and returns how many were settled.
// Transactions still without a receipt stay pending.
func (s *ReceiptService) Poll(ctx context.Context) (int, error) {
	pending, err := s.journal.ListPending(ctx, s.batchSize)
	if err != nil {
		return 0, err
	}

	settled := 0
	for _, tx := range pending {
		hash := common.HexToHash(tx.Hash)
		receipt, err := s.receipts.TransactionReceipt(ctx, hash)
		if errors.Is(err, ethereum.NotFound) {
			continue
		}
		if err != nil {
			s.log.Warn("failed to fetch receipt", zap.String("hash", tx.Hash), zap.Error(err))
			continue
		}

		status := models.TxStatusMined
		if receipt.Status != types.ReceiptStatusSuccessful {
			status = models.TxStatusReverted
		}
		block := receipt.BlockNumber.Int64()

		if err := s.journal.UpdateStatus(ctx, tx.Hash, status, block); err != nil {
			s.log.Error("failed to update transaction status", zap.String("hash", tx.Hash), zap.Error(err))
			continue
		}
		settled++

		_ = s.publisher.Publish(ctx, events.StreamTx, events.Event{
			Type: events.EventTransactionConfirmed,
			Payload: map[string]any{
				"account": tx.Account,
				"action":  tx.Action,
				"hash":    tx.Hash,
				"status":  status,
				"block":   block,
			},
		})

		s.log.Info("transaction settled",
			zap.String("hash", tx.Hash),
			zap.String("status", status),
			zap.Int64("block", block),
		)
	}
	return settled, nil
}
