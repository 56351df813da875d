// Package events publishes domain events for other services to consume.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mmynk/settleup/internal/models"
)

// SettlementRecordedKey is the routing key of SettlementRecorded messages.
const SettlementRecordedKey = "settlement.recorded"

// Publisher announces changes to the ledger.
type Publisher interface {
	PublishSettlementRecorded(ctx context.Context, settlement *models.Settlement) error
	Close() error
}

// SettlementRecorded is the message body sent when a settlement is stored.
type SettlementRecorded struct {
	Type         string  `json:"type"`
	SettlementID string  `json:"settlement_id"`
	GroupID      string  `json:"group_id"`
	FromMemberID string  `json:"from_member_id"`
	ToMemberID   string  `json:"to_member_id"`
	Amount       float64 `json:"amount"`
	AmountCents  int64   `json:"amount_cents"`
	Note         string  `json:"note,omitempty"`
	CreatedAt    int64   `json:"created_at"`
}

// NewSettlementRecorded builds the message for s.
func NewSettlementRecorded(s *models.Settlement) SettlementRecorded {
	return SettlementRecorded{
		Type:         SettlementRecordedKey,
		SettlementID: s.ID,
		GroupID:      s.GroupID,
		FromMemberID: s.FromMemberID,
		ToMemberID:   s.ToMemberID,
		Amount:       s.Amount.Float64(),
		AmountCents:  int64(s.Amount),
		Note:         s.Note,
		CreatedAt:    s.CreatedAt,
	}
}

// ToJSON encodes the message.
func (m SettlementRecorded) ToJSON() ([]byte, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal settlement recorded: %w", err)
	}
	return body, nil
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) PublishSettlementRecorded(context.Context, *models.Settlement) error { return nil }
func (Nop) Close() error                                                        { return nil }
