package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Connection statuses. PENDING is the only non-terminal state.
const (
	ConnectionPending  = "PENDING"
	ConnectionAccepted = "ACCEPTED"
	ConnectionRejected = "REJECTED"
	ConnectionBlocked  = "BLOCKED"
)

// Connection is a directed request from Requester to Target. PairKey is the
// normalized unordered pair ("min:max"); its unique index guarantees at most
// one row per pair even when both sides request concurrently.
type Connection struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	RequesterID uint   `json:"requester_id" gorm:"index"`
	TargetID    uint   `json:"target_id" gorm:"index"`
	PairKey     string `json:"-" gorm:"uniqueIndex;size:50"`
	Status      string `json:"status" gorm:"size:20;default:'PENDING'"`
}

// PairKeyFor normalizes an unordered user pair into the PairKey form.
func PairKeyFor(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

type RequestConnectionRequest struct {
	TargetUserID uint `json:"targetUserId" validate:"required"`
}

type RespondConnectionRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}

// ConnectionStatusResponse is the per-pair status summary returned by the
// status endpoint.
type ConnectionStatusResponse struct {
	Status       string `json:"status"` // self, not_connected, request_sent, request_received, connected, rejected, blocked, unknown
	CanConnect   bool   `json:"canConnect"`
	ConnectionID *uint  `json:"connectionId,omitempty"`
	IsRequester  *bool  `json:"isRequester,omitempty"`
}
