package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

// CreateExpense persists a new expense and its participants.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.groupExists(ctx, tx, expense.GroupID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		s.rebind(`INSERT INTO expenses (id, group_id, description, amount_cents, payer_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`),
		expense.ID, expense.GroupID, expense.Description, int64(expense.Amount), expense.PayerID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, participant := range expense.ParticipantIDs {
		_, err = tx.ExecContext(ctx,
			s.rebind("INSERT INTO expense_participants (expense_id, member_id) VALUES (?, ?)"),
			expense.ID, participant,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListExpensesByGroup retrieves all expenses for a group, oldest first.
func (s *Store) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx, s.db, groupID)
}

func (s *Store) listExpenses(ctx context.Context, q queryer, groupID string) ([]*models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		s.rebind(`SELECT id, group_id, description, amount_cents, payer_id, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at, id`),
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	byID := make(map[string]*models.Expense)
	for rows.Next() {
		expense := &models.Expense{}
		var amount int64
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Description, &amount,
			&expense.PayerID, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Amount = money.Cents(amount)
		expenses = append(expenses, expense)
		byID[expense.ID] = expense
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	if len(expenses) == 0 {
		return expenses, nil
	}

	// Participants for every expense of the group in one pass
	partRows, err := q.QueryContext(ctx,
		s.rebind(`SELECT ep.expense_id, ep.member_id
		 FROM expense_participants ep JOIN expenses e ON e.id = ep.expense_id
		 WHERE e.group_id = ?
		 ORDER BY ep.expense_id, ep.member_id`),
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense participants: %w", err)
	}
	defer partRows.Close()

	for partRows.Next() {
		var expenseID, memberID string
		if err := partRows.Scan(&expenseID, &memberID); err != nil {
			return nil, fmt.Errorf("failed to scan expense participant: %w", err)
		}
		if expense, ok := byID[expenseID]; ok {
			expense.ParticipantIDs = append(expense.ParticipantIDs, memberID)
		}
	}
	if err := partRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense participants: %w", err)
	}

	return expenses, nil
}
