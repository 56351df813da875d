package models

import "github.com/mmynk/settleup/internal/money"

// Expense is an amount paid by one member on behalf of a set of participants.
// The amount is split evenly across ParticipantIDs; the payer may or may not
// be one of them.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is an optional label (e.g., "Groceries").
	Description string

	// Amount is the total paid. Must be positive.
	Amount money.Cents

	// PayerID is the member who paid.
	PayerID string

	// ParticipantIDs are the members sharing the cost. Must be non-empty and
	// free of duplicates.
	ParticipantIDs []string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
