package repositories

import (
	"context"
	"errors"

	"github.com/estate-agency/frontend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TxRepo struct {
	pool *pgxpool.Pool
}

func NewTxRepo(pool *pgxpool.Pool) *TxRepo {
	return &TxRepo{pool: pool}
}

func (r *TxRepo) Create(ctx context.Context, tx *models.TxRecord) error {
	if tx.Status == "" {
		tx.Status = models.TxStatusPending
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tx_journal (hash, account, action, value_wei, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (hash) DO NOTHING
		RETURNING id, created_at, updated_at
	`, tx.Hash, tx.Account, tx.Action, tx.ValueWei, tx.Status).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// хеш уже записан
		return nil
	}
	return err
}

func (r *TxRepo) ListByAccount(ctx context.Context, account string, limit int) ([]models.TxRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, hash, account, action, value_wei, status, block_number, created_at, updated_at
		FROM tx_journal WHERE lower(account) = lower($1)
		ORDER BY created_at DESC LIMIT $2
	`, account, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTxRecords(rows)
}

func (r *TxRepo) ListPending(ctx context.Context, limit int) ([]models.TxRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, hash, account, action, value_wei, status, block_number, created_at, updated_at
		FROM tx_journal WHERE status = $1
		ORDER BY created_at ASC LIMIT $2
	`, models.TxStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTxRecords(rows)
}

func (r *TxRepo) UpdateStatus(ctx context.Context, hash, status string, blockNumber int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE tx_journal SET status = $2, block_number = $3, updated_at = now()
		WHERE hash = $1
	`, hash, status, blockNumber)
	return err
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanTxRecords(rows rowScanner) ([]models.TxRecord, error) {
	var txs []models.TxRecord
	for rows.Next() {
		var tx models.TxRecord
		if err := rows.Scan(&tx.ID, &tx.Hash, &tx.Account, &tx.Action, &tx.ValueWei, &tx.Status, &tx.BlockNumber, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
