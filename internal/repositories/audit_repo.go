package repositories

import (
	"context"

	"github.com/estate-agency/frontend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Log(ctx context.Context, entry models.AuditLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_log (actor_account, action, meta)
		VALUES ($1, $2, $3)
	`, entry.ActorAccount, entry.Action, entry.Meta)
	return err
}
