package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions
const (
	AuditAccountUnlocked = "account_unlocked"
	AuditAccountCreated  = "account_created"
)

type AuditLog struct {
	ID           uuid.UUID `json:"id"`
	ActorAccount string    `json:"actor_account"`
	Action       string    `json:"action"`
	Meta         any       `json:"meta,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
