package calculator

import "errors"

var (
	// ErrInvalidExpense is returned for an expense with a non-positive amount,
	// no payer, or an empty or duplicated participant list.
	ErrInvalidExpense = errors.New("invalid expense")

	// ErrInvalidSettlement is returned for a settlement with a non-positive
	// amount or a missing or identical pair of members.
	ErrInvalidSettlement = errors.New("invalid settlement")

	// ErrInvalidBalance is returned when a fractional balance is not finite.
	ErrInvalidBalance = errors.New("invalid balance")
)
