package sqlstore

import (
	"context"
	"fmt"

	"github.com/mmynk/settleup/internal/models"
)

// LoadGroupLedger reads the group, its expenses and its settlements inside a
// single transaction, so a concurrent write cannot land between the reads.
func (s *Store) LoadGroupLedger(ctx context.Context, groupID string) (*models.GroupLedger, error) {
	tx, err := s.db.BeginTx(ctx, s.dialect.SnapshotTx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	group, err := s.getGroup(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.listExpenses(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}

	settlements, err := s.listSettlements(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}

	return &models.GroupLedger{
		Group:       group,
		Expenses:    expenses,
		Settlements: settlements,
	}, nil
}
