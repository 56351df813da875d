// Package storagetest holds behaviour checks shared by every storage.Store
// backend. Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/internal/storage"
)

// Run exercises store against the storage.Store contract. newStore is called
// once per subtest; backends sharing a database must tolerate leftover rows.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	ctx := context.Background()

	t.Run("CreateGroup generates IDs and members", func(t *testing.T) {
		store := newStore(t)

		group := &models.Group{
			Name:    "Flat 4B",
			Members: []models.Member{{Name: "Bob"}, {Name: "Alice"}},
		}
		require.NoError(t, store.CreateGroup(ctx, group))

		assert.NotEmpty(t, group.ID)
		assert.NotZero(t, group.CreatedAt)
		for _, m := range group.Members {
			assert.NotEmpty(t, m.ID)
		}

		got, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, "Flat 4B", got.Name)
		require.Len(t, got.Members, 2)
		// Members come back ordered by name
		assert.Equal(t, "Alice", got.Members[0].Name)
		assert.Equal(t, "Bob", got.Members[1].Name)
	})

	t.Run("GetGroup unknown ID", func(t *testing.T) {
		store := newStore(t)

		_, err := store.GetGroup(ctx, "missing-group")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("AddGroupMember", func(t *testing.T) {
		store := newStore(t)

		trip := &models.Group{Name: "Trip", Members: []models.Member{{Name: "Alice"}}, CreatedAt: 100}
		require.NoError(t, store.CreateGroup(ctx, trip))
		alice := trip.Members[0]

		dinner := &models.Group{Name: "Dinner", CreatedAt: 200}
		require.NoError(t, store.CreateGroup(ctx, dinner))

		// Existing member joins a second group
		existing := &models.Member{ID: alice.ID}
		require.NoError(t, store.AddGroupMember(ctx, dinner.ID, existing))
		assert.Equal(t, "Alice", existing.Name)

		// Adding again is a no-op
		require.NoError(t, store.AddGroupMember(ctx, dinner.ID, &models.Member{ID: alice.ID}))

		// New member is created on the fly
		carol := &models.Member{Name: "Carol"}
		require.NoError(t, store.AddGroupMember(ctx, dinner.ID, carol))
		assert.NotEmpty(t, carol.ID)

		got, err := store.GetGroup(ctx, dinner.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{alice.ID, carol.ID}, got.MemberIDs())

		groups, err := store.ListGroupsByMember(ctx, alice.ID)
		require.NoError(t, err)
		ids := make([]string, 0, len(groups))
		for _, g := range groups {
			ids = append(ids, g.ID)
		}
		assert.Equal(t, []string{trip.ID, dinner.ID}, ids)

		err = store.AddGroupMember(ctx, dinner.ID, &models.Member{ID: "missing-member"})
		assert.ErrorIs(t, err, storage.ErrNotFound)

		err = store.AddGroupMember(ctx, "missing-group", &models.Member{Name: "Dan"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ListGroups includes created groups", func(t *testing.T) {
		store := newStore(t)

		group := &models.Group{Name: "Listed", Members: []models.Member{{Name: "Eve"}}}
		require.NoError(t, store.CreateGroup(ctx, group))

		groups, err := store.ListGroups(ctx)
		require.NoError(t, err)

		var found *models.Group
		for _, g := range groups {
			if g.ID == group.ID {
				found = g
			}
		}
		require.NotNil(t, found)
		require.Len(t, found.Members, 1)
		assert.Equal(t, "Eve", found.Members[0].Name)
	})

	t.Run("expenses round trip", func(t *testing.T) {
		store := newStore(t)
		group, a, b, c := newTrio(t, store)

		first := &models.Expense{
			GroupID:        group.ID,
			Description:    "Groceries",
			Amount:         9000,
			PayerID:        a,
			ParticipantIDs: []string{a, b, c},
			CreatedAt:      100,
		}
		second := &models.Expense{
			GroupID:        group.ID,
			Description:    "Taxi",
			Amount:         1234,
			PayerID:        b,
			ParticipantIDs: []string{c},
			CreatedAt:      200,
		}
		require.NoError(t, store.CreateExpense(ctx, first))
		require.NoError(t, store.CreateExpense(ctx, second))
		assert.NotEmpty(t, first.ID)

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, expenses, 2)

		assert.Equal(t, "Groceries", expenses[0].Description)
		assert.Equal(t, money.Cents(9000), expenses[0].Amount)
		assert.Equal(t, a, expenses[0].PayerID)
		assert.ElementsMatch(t, []string{a, b, c}, expenses[0].ParticipantIDs)

		assert.Equal(t, money.Cents(1234), expenses[1].Amount)
		assert.Equal(t, []string{c}, expenses[1].ParticipantIDs)

		err = store.CreateExpense(ctx, &models.Expense{
			GroupID: "missing-group", Amount: 100, PayerID: a, ParticipantIDs: []string{a},
		})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("settlements round trip", func(t *testing.T) {
		store := newStore(t)
		group, a, b, _ := newTrio(t, store)

		withNote := &models.Settlement{
			GroupID: group.ID, FromMemberID: b, ToMemberID: a, Amount: 3000, Note: "cash", CreatedAt: 10,
		}
		plain := &models.Settlement{
			GroupID: group.ID, FromMemberID: a, ToMemberID: b, Amount: 1, CreatedAt: 20,
		}
		require.NoError(t, store.CreateSettlement(ctx, withNote))
		require.NoError(t, store.CreateSettlement(ctx, plain))
		assert.NotEmpty(t, withNote.ID)

		settlements, err := store.ListSettlementsByGroup(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, settlements, 2)
		assert.Equal(t, withNote, settlements[0])
		assert.Equal(t, plain, settlements[1])

		err = store.CreateSettlement(ctx, &models.Settlement{
			GroupID: "missing-group", FromMemberID: a, ToMemberID: b, Amount: 1,
		})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("LoadGroupLedger", func(t *testing.T) {
		store := newStore(t)
		group, a, b, c := newTrio(t, store)

		require.NoError(t, store.CreateExpense(ctx, &models.Expense{
			GroupID: group.ID, Amount: 600, PayerID: a, ParticipantIDs: []string{a, b, c},
		}))
		require.NoError(t, store.CreateSettlement(ctx, &models.Settlement{
			GroupID: group.ID, FromMemberID: c, ToMemberID: a, Amount: 200,
		}))

		ledger, err := store.LoadGroupLedger(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, group.ID, ledger.Group.ID)
		assert.Len(t, ledger.Group.Members, 3)
		assert.Len(t, ledger.Expenses, 1)
		assert.Len(t, ledger.Settlements, 1)

		// A group with no activity has an empty ledger
		empty := &models.Group{Name: "Quiet"}
		require.NoError(t, store.CreateGroup(ctx, empty))
		ledger, err = store.LoadGroupLedger(ctx, empty.ID)
		require.NoError(t, err)
		assert.Empty(t, ledger.Expenses)
		assert.Empty(t, ledger.Settlements)

		_, err = store.LoadGroupLedger(ctx, "missing-group")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func newTrio(t *testing.T, store storage.Store) (*models.Group, string, string, string) {
	t.Helper()

	group := &models.Group{
		Name:    "Trio",
		Members: []models.Member{{Name: "Alice"}, {Name: "Bob"}, {Name: "Carol"}},
	}
	require.NoError(t, store.CreateGroup(context.Background(), group))
	return group, group.Members[0].ID, group.Members[1].ID, group.Members[2].ID
}
