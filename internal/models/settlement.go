package models

import "github.com/mmynk/settleup/internal/money"

// Settlement is a payment between group members that has already occurred.
// It is reflected in balances as soon as it is recorded.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// FromMemberID is the member who paid (debtor settling up).
	FromMemberID string

	// ToMemberID is the member who received payment (creditor being paid).
	ToMemberID string

	// Amount is the payment amount. Must be positive.
	Amount money.Cents

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// Note is an optional description for the settlement.
	Note string
}

// SuggestedPayment is a proposed settlement produced by debt simplification.
// It has no identity until it is accepted and recorded as a Settlement.
type SuggestedPayment struct {
	GroupID      string
	FromMemberID string
	ToMemberID   string
	Amount       money.Cents
}

// ToSettlement converts an accepted suggestion into a settlement record.
func (p SuggestedPayment) ToSettlement(id string, createdAt int64, note string) *Settlement {
	return &Settlement{
		ID:           id,
		GroupID:      p.GroupID,
		FromMemberID: p.FromMemberID,
		ToMemberID:   p.ToMemberID,
		Amount:       p.Amount,
		CreatedAt:    createdAt,
		Note:         note,
	}
}
