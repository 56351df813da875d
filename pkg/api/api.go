// Package api defines the request and response messages of the settleup.v1
// Connect services. Amounts are decimal currency units on the wire; the
// server converts them to integer cents. The schema lives in
// proto/settleup/v1; field JSON names are the proto field names.
package api

// Member is a person in one or more groups.
type Member struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// Group is a set of members who settle expenses together.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []*Member `json:"members"`
	CreatedAt int64     `json:"created_at"`
}

// Expense is an amount paid by one member and split evenly over participants.
type Expense struct {
	ID             string   `json:"id"`
	GroupID        string   `json:"group_id"`
	Description    string   `json:"description,omitempty"`
	Amount         float64  `json:"amount"`
	PayerID        string   `json:"payer_id"`
	ParticipantIDs []string `json:"participant_ids"`
	Shares         []*Share `json:"shares,omitempty"`
	CreatedAt      int64    `json:"created_at"`
}

// Share is what one participant owes for an expense. Shares are ordered by
// member ID and sum to the expense amount.
type Share struct {
	MemberID string  `json:"member_id"`
	Amount   float64 `json:"amount"`
}

// Settlement is a recorded payment between two members.
type Settlement struct {
	ID           string  `json:"id"`
	GroupID      string  `json:"group_id"`
	FromMemberID string  `json:"from_member_id"`
	ToMemberID   string  `json:"to_member_id"`
	Amount       float64 `json:"amount"`
	CreatedAt    int64   `json:"created_at"`
	Note         string  `json:"note,omitempty"`
}

// Payment is a suggested, not yet recorded, settlement.
type Payment struct {
	FromMemberID string  `json:"from_member_id"`
	ToMemberID   string  `json:"to_member_id"`
	Amount       float64 `json:"amount"`
}

// MemberBalance is a member's net position within a group. Positive means
// the group owes the member.
type MemberBalance struct {
	MemberID string  `json:"member_id"`
	Name     string  `json:"name,omitempty"`
	Balance  float64 `json:"balance"`
}

// GroupBalance is one group's share of an overall balance.
type GroupBalance struct {
	GroupID   string  `json:"group_id"`
	GroupName string  `json:"group_name"`
	Balance   float64 `json:"balance"`
}

// GroupService messages

type CreateGroupRequest struct {
	Name    string   `json:"name" validate:"required,max=200"`
	Members []string `json:"members" validate:"dive,required,max=200"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

// AddMemberRequest adds an existing member (MemberID) or creates a new one
// (Name).
type AddMemberRequest struct {
	GroupID  string `json:"group_id" validate:"required"`
	MemberID string `json:"member_id,omitempty" validate:"required_without=Name"`
	Name     string `json:"name,omitempty" validate:"required_without=MemberID,max=200"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

// ExpenseService messages

type CreateExpenseRequest struct {
	GroupID        string   `json:"group_id" validate:"required"`
	Description    string   `json:"description,omitempty" validate:"max=500"`
	Amount         float64  `json:"amount" validate:"gt=0,finite"`
	PayerID        string   `json:"payer_id" validate:"required"`
	ParticipantIDs []string `json:"participant_ids" validate:"required,min=1,unique,dive,required"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

// BalanceService messages

type GetGroupBalancesRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type GetGroupBalancesResponse struct {
	GroupID  string           `json:"group_id"`
	Balances []*MemberBalance `json:"balances"`
}

type SuggestSettlementsRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type SuggestSettlementsResponse struct {
	GroupID  string     `json:"group_id"`
	Payments []*Payment `json:"payments"`
}

type RecordSettlementRequest struct {
	GroupID      string  `json:"group_id" validate:"required"`
	FromMemberID string  `json:"from_member_id" validate:"required"`
	ToMemberID   string  `json:"to_member_id" validate:"required,nefield=FromMemberID"`
	Amount       float64 `json:"amount" validate:"gt=0,finite"`
	Note         string  `json:"note,omitempty" validate:"max=500"`
}

type RecordSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ListSettlementsRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type ListSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type GetMemberBalanceRequest struct {
	GroupID  string `json:"group_id" validate:"required"`
	MemberID string `json:"member_id" validate:"required"`
}

type GetMemberBalanceResponse struct {
	GroupID  string  `json:"group_id"`
	MemberID string  `json:"member_id"`
	Balance  float64 `json:"balance"`
}

type GetOverallBalanceRequest struct {
	MemberID string `json:"member_id" validate:"required"`
}

// GetOverallBalanceResponse is partial when some groups could not be
// evaluated; those are listed in FailedGroupIDs and left out of Total.
type GetOverallBalanceResponse struct {
	MemberID       string          `json:"member_id"`
	Total          float64         `json:"total"`
	Groups         []*GroupBalance `json:"groups"`
	Partial        bool            `json:"partial"`
	FailedGroupIDs []string        `json:"failed_group_ids,omitempty"`
}

// SimplifyBalancesRequest carries raw balances, keyed by member ID.
type SimplifyBalancesRequest struct {
	GroupID  string             `json:"group_id,omitempty"`
	Balances map[string]float64 `json:"balances" validate:"required,dive,keys,required,endkeys,finite"`
}

type SimplifyBalancesResponse struct {
	Payments []*Payment `json:"payments"`
}
