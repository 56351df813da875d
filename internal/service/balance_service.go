package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/ledger"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

const balanceFailure = "failed to load/compute balances"

// BalanceService implements the Connect BalanceService
type BalanceService struct {
	apiconnect.UnimplementedBalanceServiceHandler
	ledger *ledger.Service
	store  storage.Store
}

// NewBalanceService creates a new BalanceService. Balance queries go through
// ledgerSvc; store serves plain listings.
func NewBalanceService(ledgerSvc *ledger.Service, store storage.Store) *BalanceService {
	return &BalanceService{ledger: ledgerSvc, store: store}
}

// GetGroupBalances returns every member's balance, ordered by member ID.
func (s *BalanceService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	slog.InfoContext(ctx, "GetGroupBalances request received", "group_id", req.Msg.GroupID)

	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(err, "")
	}

	gb, err := s.ledger.GroupBalances(ctx, req.Msg.GroupID)
	if err != nil {
		slog.ErrorContext(ctx, "GetGroupBalances failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err, balanceFailure)
	}

	return connect.NewResponse(&api.GetGroupBalancesResponse{
		GroupID:  gb.Group.ID,
		Balances: toAPIBalances(gb.Group, gb.Balances),
	}), nil
}

// SuggestSettlements returns the payments that would settle the group.
func (s *BalanceService) SuggestSettlements(ctx context.Context, req *connect.Request[api.SuggestSettlementsRequest]) (*connect.Response[api.SuggestSettlementsResponse], error) {
	slog.InfoContext(ctx, "SuggestSettlements request received", "group_id", req.Msg.GroupID)

	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(err, "")
	}

	payments, err := s.ledger.SuggestSettlements(ctx, req.Msg.GroupID)
	if err != nil {
		slog.ErrorContext(ctx, "SuggestSettlements failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err, balanceFailure)
	}

	slog.InfoContext(ctx, "SuggestSettlements successful",
		"group_id", req.Msg.GroupID,
		"payments", len(payments))

	return connect.NewResponse(&api.SuggestSettlementsResponse{
		GroupID:  req.Msg.GroupID,
		Payments: toAPIPayments(payments),
	}), nil
}

// RecordSettlement records a payment between two group members.
func (s *BalanceService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	slog.InfoContext(ctx, "RecordSettlement request received",
		"group_id", req.Msg.GroupID,
		"from", req.Msg.FromMemberID,
		"to", req.Msg.ToMemberID,
		"amount", req.Msg.Amount,
	)

	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(err, "")
	}

	amount, err := money.FromFloat(req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(fmt.Errorf("amount: %w", err), "")
	}

	settlement, err := s.ledger.RecordSettlement(ctx, models.SuggestedPayment{
		GroupID:      req.Msg.GroupID,
		FromMemberID: req.Msg.FromMemberID,
		ToMemberID:   req.Msg.ToMemberID,
		Amount:       amount,
	}, req.Msg.Note)
	if err != nil {
		slog.ErrorContext(ctx, "RecordSettlement failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err, "failed to record settlement")
	}

	return connect.NewResponse(&api.RecordSettlementResponse{Settlement: toAPISettlement(settlement)}), nil
}

// ListSettlements retrieves the recorded settlements of a group, oldest first.
func (s *BalanceService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	slog.InfoContext(ctx, "ListSettlements request received", "group_id", req.Msg.GroupID)

	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(err, "")
	}

	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		return nil, toConnectError(err, "failed to list settlements")
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.ErrorContext(ctx, "ListSettlements failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err, "failed to list settlements")
	}

	apiSettlements := make([]*api.Settlement, len(settlements))
	for i, st := range settlements {
		apiSettlements[i] = toAPISettlement(st)
	}

	return connect.NewResponse(&api.ListSettlementsResponse{Settlements: apiSettlements}), nil
}

// GetMemberBalance returns one member's balance within a group.
func (s *BalanceService) GetMemberBalance(ctx context.Context, req *connect.Request[api.GetMemberBalanceRequest]) (*connect.Response[api.GetMemberBalanceResponse], error) {
	slog.InfoContext(ctx, "GetMemberBalance request received",
		"group_id", req.Msg.GroupID,
		"member_id", req.Msg.MemberID,
	)

	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(err, "")
	}

	balance, err := s.ledger.NetBalanceForMember(ctx, req.Msg.GroupID, req.Msg.MemberID)
	if err != nil {
		slog.ErrorContext(ctx, "GetMemberBalance failed",
			"group_id", req.Msg.GroupID,
			"member_id", req.Msg.MemberID,
			"error", err)
		return nil, toConnectError(err, balanceFailure)
	}

	return connect.NewResponse(&api.GetMemberBalanceResponse{
		GroupID:  req.Msg.GroupID,
		MemberID: req.Msg.MemberID,
		Balance:  balance.Float64(),
	}), nil
}

// GetOverallBalance returns a member's net balance across all their groups.
// Groups that fail to load are reported instead of failing the call.
func (s *BalanceService) GetOverallBalance(ctx context.Context, req *connect.Request[api.GetOverallBalanceRequest]) (*connect.Response[api.GetOverallBalanceResponse], error) {
	slog.InfoContext(ctx, "GetOverallBalance request received", "member_id", req.Msg.MemberID)

	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(err, "")
	}

	overall, err := s.ledger.OverallNetBalance(ctx, req.Msg.MemberID)
	if err != nil {
		slog.ErrorContext(ctx, "GetOverallBalance failed", "member_id", req.Msg.MemberID, "error", err)
		return nil, toConnectError(err, balanceFailure)
	}

	resp := &api.GetOverallBalanceResponse{
		MemberID: overall.MemberID,
		Total:    overall.Total.Float64(),
		Groups:   make([]*api.GroupBalance, len(overall.Groups)),
		Partial:  overall.Partial,
	}
	for i, g := range overall.Groups {
		resp.Groups[i] = &api.GroupBalance{
			GroupID:   g.GroupID,
			GroupName: g.GroupName,
			Balance:   g.Balance.Float64(),
		}
	}
	for _, f := range overall.Failed {
		resp.FailedGroupIDs = append(resp.FailedGroupIDs, f.GroupID)
	}

	return connect.NewResponse(resp), nil
}

// SimplifyBalances computes settlement suggestions for caller-supplied
// balances without touching storage.
func (s *BalanceService) SimplifyBalances(ctx context.Context, req *connect.Request[api.SimplifyBalancesRequest]) (*connect.Response[api.SimplifyBalancesResponse], error) {
	slog.InfoContext(ctx, "SimplifyBalances request received", "members", len(req.Msg.Balances))

	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(err, "")
	}

	payments, err := calculator.SimplifyFloats(req.Msg.GroupID, req.Msg.Balances)
	if err != nil {
		return nil, toConnectError(err, balanceFailure)
	}

	return connect.NewResponse(&api.SimplifyBalancesResponse{Payments: toAPIPayments(payments)}), nil
}
