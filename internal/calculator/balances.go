// Package calculator computes group balances and simplifies debts.
//
// Everything here is a pure function of its arguments: no I/O, no shared
// state, and inputs are never modified.
package calculator

import (
	"fmt"
	"slices"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

// Balances maps member IDs to net balances.
// Positive = the group owes the member, negative = the member owes the group.
type Balances map[string]money.Cents

// ComputeBalances folds expenses and recorded settlements into per-member
// balances. Every ID in members is present in the result, at zero when the
// member has no activity; members that only appear in records are added too.
//
// Algorithm:
//   - For each expense: payer += amount, each participant -= their share
//   - For each settlement: payer (from) += amount, receiver (to) -= amount
func ComputeBalances(expenses []*models.Expense, settlements []*models.Settlement, members []string) (Balances, error) {
	balances := make(Balances, len(members))
	for _, m := range members {
		balances[m] = 0
	}

	for _, e := range expenses {
		if err := ValidateExpense(e); err != nil {
			return nil, err
		}

		participants, shares := expenseShares(e)

		// Payer covered the full amount
		balances[e.PayerID] += e.Amount

		// Each participant, payer included, owes their share
		for i, p := range participants {
			balances[p] -= shares[i]
		}
	}

	for _, s := range settlements {
		if err := ValidateSettlement(s); err != nil {
			return nil, err
		}
		// Payer's debt shrinks, receiver's claim shrinks
		balances[s.FromMemberID] += s.Amount
		balances[s.ToMemberID] -= s.Amount
	}

	return balances, nil
}

// ExpenseShares returns the participants of e in ascending ID order together
// with the share each one owes. Shares sum exactly to the expense amount.
func ExpenseShares(e *models.Expense) ([]string, []money.Cents, error) {
	if err := ValidateExpense(e); err != nil {
		return nil, nil, err
	}
	participants, shares := expenseShares(e)
	return participants, shares, nil
}

// expenseShares hands leftover cents to participants in ID order so the
// result does not depend on how the participant list was ordered.
func expenseShares(e *models.Expense) ([]string, []money.Cents) {
	participants := slices.Clone(e.ParticipantIDs)
	slices.Sort(participants)
	return participants, money.Split(e.Amount, len(participants))
}

// ValidateExpense checks the invariants of a single expense.
func ValidateExpense(e *models.Expense) error {
	if e == nil {
		return fmt.Errorf("%w: nil expense", ErrInvalidExpense)
	}
	if e.Amount <= 0 {
		return fmt.Errorf("%w: expense %q amount must be positive, got %s", ErrInvalidExpense, e.ID, e.Amount)
	}
	if e.PayerID == "" {
		return fmt.Errorf("%w: expense %q has no payer", ErrInvalidExpense, e.ID)
	}
	if len(e.ParticipantIDs) == 0 {
		return fmt.Errorf("%w: expense %q must have at least one participant", ErrInvalidExpense, e.ID)
	}
	seen := make(map[string]bool, len(e.ParticipantIDs))
	for _, p := range e.ParticipantIDs {
		if p == "" {
			return fmt.Errorf("%w: expense %q has an empty participant id", ErrInvalidExpense, e.ID)
		}
		if seen[p] {
			return fmt.Errorf("%w: expense %q lists participant %q twice", ErrInvalidExpense, e.ID, p)
		}
		seen[p] = true
	}
	return nil
}

// ValidateSettlement checks the invariants of a single recorded settlement.
func ValidateSettlement(s *models.Settlement) error {
	if s == nil {
		return fmt.Errorf("%w: nil settlement", ErrInvalidSettlement)
	}
	if s.Amount <= 0 {
		return fmt.Errorf("%w: settlement %q amount must be positive, got %s", ErrInvalidSettlement, s.ID, s.Amount)
	}
	if s.FromMemberID == "" || s.ToMemberID == "" {
		return fmt.Errorf("%w: settlement %q needs both a payer and a receiver", ErrInvalidSettlement, s.ID)
	}
	if s.FromMemberID == s.ToMemberID {
		return fmt.Errorf("%w: settlement %q pays %q to themselves", ErrInvalidSettlement, s.ID, s.FromMemberID)
	}
	return nil
}

// Sum returns the total of all balances. It is zero for balances produced by
// ComputeBalances.
func (b Balances) Sum() money.Cents {
	var sum money.Cents
	for _, v := range b {
		sum += v
	}
	return sum
}

// MemberIDs returns the member IDs in ascending order.
func (b Balances) MemberIDs() []string {
	ids := make([]string, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// BalancesFromFloats converts fractional balances to cents.
// Non-finite values fail with ErrInvalidBalance.
func BalancesFromFloats(in map[string]float64) (Balances, error) {
	out := make(Balances, len(in))
	for id, f := range in {
		c, err := money.FromFloat(f)
		if err != nil {
			return nil, fmt.Errorf("%w: member %q: %w", ErrInvalidBalance, id, err)
		}
		out[id] = c
	}
	return out, nil
}
