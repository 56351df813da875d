// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

// ErrNotFound is wrapped by stores when a group or member does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for group, expense and settlement storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the ledger or service layers.
type Store interface {
	// CreateGroup persists a new group together with its members.
	// The group.ID, CreatedAt and member IDs are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group and its members by ID.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups, newest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// ListGroupsByMember retrieves every group the member belongs to.
	ListGroupsByMember(ctx context.Context, memberID string) ([]*models.Group, error)

	// AddGroupMember adds a member to a group. A member without an ID is
	// created first; a member with an ID must already exist.
	AddGroupMember(ctx context.Context, groupID string, member *models.Member) error

	// CreateExpense persists a new expense. ID and CreatedAt are populated
	// by the store when empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpensesByGroup retrieves all expenses for a group, oldest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// CreateSettlement records a payment. ID and CreatedAt are populated by
	// the store when empty.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByGroup retrieves all settlements for a group, oldest first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// LoadGroupLedger reads a group, its expenses and its settlements within
	// one transaction so that balances are computed from a consistent view.
	LoadGroupLedger(ctx context.Context, groupID string) (*models.GroupLedger, error)

	// Close releases any resources held by the store.
	Close() error
}
