package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction journal statuses
const (
	TxStatusPending  = "pending"
	TxStatusMined    = "mined"
	TxStatusReverted = "reverted"
)

// Journal actions, one per state-changing route.
const (
	TxActionCreateEstate       = "create_estate"
	TxActionCreateAd           = "create_ad"
	TxActionUpdateEstateStatus = "update_estate_status"
	TxActionUpdateAdStatus     = "update_ad_status"
	TxActionPurchaseEstate     = "purchase_estate"
	TxActionWithdrawFunds      = "withdraw_funds"
)

type TxRecord struct {
	ID          uuid.UUID `json:"id"`
	Hash        string    `json:"hash"`
	Account     string    `json:"account"` // checksummed hex
	Action      string    `json:"action"`
	ValueWei    string    `json:"value_wei"` // numeric as string
	Status      string    `json:"status"`
	BlockNumber *int64    `json:"block_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
