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

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	apiconnect.UnimplementedExpenseServiceHandler
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpense records an expense. The payer and every participant must be
// members of the group.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	slog.InfoContext(ctx, "CreateExpense request received",
		"group_id", req.Msg.GroupID,
		"amount", req.Msg.Amount,
		"payer_id", req.Msg.PayerID,
		"participants_count", len(req.Msg.ParticipantIDs),
	)

	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(err, "")
	}

	amount, err := money.FromFloat(req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(fmt.Errorf("amount: %w", err), "")
	}

	expense := &models.Expense{
		GroupID:        req.Msg.GroupID,
		Description:    req.Msg.Description,
		Amount:         amount,
		PayerID:        req.Msg.PayerID,
		ParticipantIDs: req.Msg.ParticipantIDs,
	}
	if err := calculator.ValidateExpense(expense); err != nil {
		return nil, toConnectError(err, "")
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.ErrorContext(ctx, "CreateExpense failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err, "failed to create expense")
	}
	for _, id := range append([]string{expense.PayerID}, expense.ParticipantIDs...) {
		if !group.HasMember(id) {
			return nil, toConnectError(fmt.Errorf("%w: member %s, group %s", ledger.ErrNotMember, id, group.ID), "")
		}
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.ErrorContext(ctx, "CreateExpense failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err, "failed to create expense")
	}

	slog.InfoContext(ctx, "Expense created", "expense_id", expense.ID, "group_id", expense.GroupID)

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListExpenses retrieves all expenses of a group, oldest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	slog.InfoContext(ctx, "ListExpenses request received", "group_id", req.Msg.GroupID)

	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(err, "")
	}

	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		return nil, toConnectError(err, "failed to list expenses")
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.ErrorContext(ctx, "ListExpenses failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err, "failed to list expenses")
	}

	apiExpenses := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		apiExpenses[i] = toAPIExpense(e)
	}

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: apiExpenses}), nil
}
