package service

import (
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/pkg/api"
)

func toAPIMember(m models.Member) *api.Member {
	return &api.Member{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}
}

func toAPIGroup(g *models.Group) *api.Group {
	members := make([]*api.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = toAPIMember(m)
	}
	return &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}

// toAPIExpense converts e, including per-participant shares. Shares are
// omitted for an expense that does not validate.
func toAPIExpense(e *models.Expense) *api.Expense {
	out := &api.Expense{
		ID:             e.ID,
		GroupID:        e.GroupID,
		Description:    e.Description,
		Amount:         e.Amount.Float64(),
		PayerID:        e.PayerID,
		ParticipantIDs: e.ParticipantIDs,
		CreatedAt:      e.CreatedAt,
	}
	participants, shares, err := calculator.ExpenseShares(e)
	if err != nil {
		return out
	}
	out.Shares = make([]*api.Share, len(participants))
	for i, id := range participants {
		out.Shares[i] = &api.Share{MemberID: id, Amount: shares[i].Float64()}
	}
	return out
}

func toAPISettlement(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		ID:           s.ID,
		GroupID:      s.GroupID,
		FromMemberID: s.FromMemberID,
		ToMemberID:   s.ToMemberID,
		Amount:       s.Amount.Float64(),
		CreatedAt:    s.CreatedAt,
		Note:         s.Note,
	}
}

func toAPIPayments(payments []models.SuggestedPayment) []*api.Payment {
	out := make([]*api.Payment, len(payments))
	for i, p := range payments {
		out[i] = &api.Payment{
			FromMemberID: p.FromMemberID,
			ToMemberID:   p.ToMemberID,
			Amount:       p.Amount.Float64(),
		}
	}
	return out
}

// toAPIBalances lists balances ordered by member ID, with names taken from
// the group where known.
func toAPIBalances(group *models.Group, balances calculator.Balances) []*api.MemberBalance {
	names := make(map[string]string, len(group.Members))
	for _, m := range group.Members {
		names[m.ID] = m.Name
	}

	ids := balances.MemberIDs()
	out := make([]*api.MemberBalance, len(ids))
	for i, id := range ids {
		out[i] = &api.MemberBalance{
			MemberID: id,
			Name:     names[id],
			Balance:  balances[id].Float64(),
		}
	}
	return out
}
