package calculator

import (
	"cmp"
	"slices"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

type position struct {
	memberID  string
	remaining money.Cents
}

// Simplify matches debtors with creditors and returns the payments that bring
// every balance to zero.
//
// Algorithm:
//   - Creditors are members with a positive balance, debtors with a negative
//     one; zero balances are already settled and skipped
//   - Both lists are ordered by member ID so the result is reproducible
//   - Greedy two-pointer sweep: the current debtor pays the current creditor
//     min(owed, owing); a pointer advances once its remainder reaches zero
//
// The result holds at most creditors+debtors-1 payments. The sweep stops as
// soon as either list is exhausted, so for balances that do not net to zero
// the difference stays with the members on the longer side.
func Simplify(groupID string, balances Balances) []models.SuggestedPayment {
	var creditors, debtors []position
	for id, bal := range balances {
		switch {
		case bal > 0:
			creditors = append(creditors, position{memberID: id, remaining: bal})
		case bal < 0:
			debtors = append(debtors, position{memberID: id, remaining: -bal}) // Make positive
		}
	}

	byMember := func(a, b position) int { return cmp.Compare(a.memberID, b.memberID) }
	slices.SortFunc(creditors, byMember)
	slices.SortFunc(debtors, byMember)

	var payments []models.SuggestedPayment
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := money.Min(debtor.remaining, creditor.remaining)
		payments = append(payments, models.SuggestedPayment{
			GroupID:      groupID,
			FromMemberID: debtor.memberID,
			ToMemberID:   creditor.memberID,
			Amount:       amount,
		})

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining == 0 {
			i++
		}
		if creditor.remaining == 0 {
			j++
		}
	}

	return payments
}

// SimplifyFloats is Simplify for fractional balances, e.g. balances supplied
// by a client. NaN and infinite values fail with ErrInvalidBalance.
func SimplifyFloats(groupID string, balances map[string]float64) ([]models.SuggestedPayment, error) {
	cents, err := BalancesFromFloats(balances)
	if err != nil {
		return nil, err
	}
	return Simplify(groupID, cents), nil
}
