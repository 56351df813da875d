package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/internal/storage"
)

// fakeStore is an in-memory Store with per-group failure injection.
type fakeStore struct {
	mu          sync.Mutex
	groups      map[string]*models.Group
	expenses    map[string][]*models.Expense
	settlements map[string][]*models.Settlement

	loadErr   map[string]error
	listErr   error
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		groups:      make(map[string]*models.Group),
		expenses:    make(map[string][]*models.Expense),
		settlements: make(map[string][]*models.Settlement),
		loadErr:     make(map[string]error),
	}
}

func (f *fakeStore) addGroup(id string, memberIDs ...string) {
	g := &models.Group{ID: id, Name: "group " + id}
	for _, m := range memberIDs {
		g.Members = append(g.Members, models.Member{ID: m, Name: m})
	}
	f.groups[id] = g
}

func (f *fakeStore) addExpense(groupID string, amount money.Cents, payer string, participants ...string) {
	f.expenses[groupID] = append(f.expenses[groupID], &models.Expense{
		GroupID: groupID, Amount: amount, PayerID: payer, ParticipantIDs: participants,
	})
}

func (f *fakeStore) GetGroup(_ context.Context, groupID string) (*models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("group %w: %s", storage.ErrNotFound, groupID)
	}
	return g, nil
}

func (f *fakeStore) LoadGroupLedger(ctx context.Context, groupID string) (*models.GroupLedger, error) {
	f.mu.Lock()
	err := f.loadErr[groupID]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	g, err := f.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.GroupLedger{
		Group:       g,
		Expenses:    f.expenses[groupID],
		Settlements: f.settlements[groupID],
	}, nil
}

func (f *fakeStore) ListGroupsByMember(_ context.Context, memberID string) ([]*models.Group, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.Group
	for _, id := range []string{"g1", "g2", "g3", "g4"} {
		if g, ok := f.groups[id]; ok && g.HasMember(memberID) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateSettlement(_ context.Context, s *models.Settlement) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settlements[s.GroupID] = append(f.settlements[s.GroupID], s)
	return nil
}

type recordingPublisher struct {
	published []*models.Settlement
	err       error
}

func (p *recordingPublisher) PublishSettlementRecorded(_ context.Context, s *models.Settlement) error {
	p.published = append(p.published, s)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

// scenarioA: Alice pays 90.00 split over Alice, Bob and Carol.
func scenarioA() *fakeStore {
	store := newFakeStore()
	store.addGroup("g1", "alice", "bob", "carol")
	store.addExpense("g1", 9000, "alice", "alice", "bob", "carol")
	return store
}

func TestGroupBalances(t *testing.T) {
	svc := New(scenarioA())

	gb, err := svc.GroupBalances(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "g1", gb.Group.ID)
	assert.Equal(t, calculator.Balances{"alice": 6000, "bob": -3000, "carol": -3000}, gb.Balances)
}

func TestGroupBalances_EmptyGroup(t *testing.T) {
	store := newFakeStore()
	store.addGroup("g1", "alice", "bob", "carol")

	gb, err := New(store).GroupBalances(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, calculator.Balances{"alice": 0, "bob": 0, "carol": 0}, gb.Balances)
}

func TestGroupBalances_Errors(t *testing.T) {
	t.Run("missing group", func(t *testing.T) {
		_, err := New(newFakeStore()).GroupBalances(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrCollaborator)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("invalid stored expense", func(t *testing.T) {
		store := scenarioA()
		store.addExpense("g1", 100, "alice")

		_, err := New(store).GroupBalances(context.Background(), "g1")
		assert.ErrorIs(t, err, calculator.ErrInvalidExpense)
		assert.NotErrorIs(t, err, ErrCollaborator)
	})
}

func TestSuggestSettlements(t *testing.T) {
	m := metrics.New()
	svc := New(scenarioA(), WithMetrics(m))

	payments, err := svc.SuggestSettlements(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, []models.SuggestedPayment{
		{GroupID: "g1", FromMemberID: "bob", ToMemberID: "alice", Amount: 3000},
		{GroupID: "g1", FromMemberID: "carol", ToMemberID: "alice", Amount: 3000},
	}, payments)
}

func TestNetBalanceForMember(t *testing.T) {
	svc := New(scenarioA())
	ctx := context.Background()

	got, err := svc.NetBalanceForMember(ctx, "g1", "bob")
	require.NoError(t, err)
	assert.Equal(t, money.Cents(-3000), got)

	_, err = svc.NetBalanceForMember(ctx, "g1", "mallory")
	assert.ErrorIs(t, err, ErrNotMember)

	_, err = svc.NetBalanceForMember(ctx, "nope", "bob")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOverallNetBalance(t *testing.T) {
	store := scenarioA()
	store.addGroup("g2", "bob", "dave")
	store.addExpense("g2", 5000, "bob", "bob", "dave")
	store.addGroup("g3", "bob", "erin")

	overall, err := New(store, WithConcurrency(2)).OverallNetBalance(context.Background(), "bob")
	require.NoError(t, err)

	assert.Equal(t, "bob", overall.MemberID)
	assert.Equal(t, money.Cents(-3000+2500), overall.Total)
	assert.False(t, overall.Partial)
	assert.Empty(t, overall.Failed)
	assert.Equal(t, []GroupNet{
		{GroupID: "g1", GroupName: "group g1", Balance: -3000},
		{GroupID: "g2", GroupName: "group g2", Balance: 2500},
		{GroupID: "g3", GroupName: "group g3", Balance: 0},
	}, overall.Groups)
}

func TestOverallNetBalance_Partial(t *testing.T) {
	store := scenarioA()
	store.addGroup("g2", "bob", "dave")
	store.addExpense("g2", 5000, "bob", "bob", "dave")
	boom := errors.New("connection reset")
	store.loadErr["g1"] = boom

	m := metrics.New()
	overall, err := New(store, WithMetrics(m)).OverallNetBalance(context.Background(), "bob")
	require.NoError(t, err)

	assert.True(t, overall.Partial)
	assert.Equal(t, money.Cents(2500), overall.Total)
	require.Len(t, overall.Failed, 1)
	assert.Equal(t, "g1", overall.Failed[0].GroupID)
	assert.ErrorIs(t, overall.Failed[0].Err, boom)
	assert.ErrorIs(t, overall.Failed[0].Err, ErrCollaborator)
	require.Len(t, overall.Groups, 1)
	assert.Equal(t, "g2", overall.Groups[0].GroupID)
}

func TestOverallNetBalance_NoGroups(t *testing.T) {
	overall, err := New(newFakeStore()).OverallNetBalance(context.Background(), "loner")
	require.NoError(t, err)
	assert.Zero(t, overall.Total)
	assert.False(t, overall.Partial)
	assert.Empty(t, overall.Groups)
}

func TestOverallNetBalance_ListFailure(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("db down")

	_, err := New(store).OverallNetBalance(context.Background(), "bob")
	assert.ErrorIs(t, err, ErrCollaborator)
}

func TestRecordSettlement(t *testing.T) {
	store := scenarioA()
	pub := &recordingPublisher{}
	now := time.Unix(1700000000, 0)
	svc := New(store,
		WithPublisher(pub),
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string { return "s-1" }),
	)
	ctx := context.Background()

	payment := models.SuggestedPayment{GroupID: "g1", FromMemberID: "bob", ToMemberID: "alice", Amount: 3000}
	settlement, err := svc.RecordSettlement(ctx, payment, "venmo")
	require.NoError(t, err)

	assert.Equal(t, &models.Settlement{
		ID:           "s-1",
		GroupID:      "g1",
		FromMemberID: "bob",
		ToMemberID:   "alice",
		Amount:       3000,
		CreatedAt:    1700000000,
		Note:         "venmo",
	}, settlement)
	assert.Equal(t, []*models.Settlement{settlement}, pub.published)

	// Scenario C: the recorded payment is reflected immediately
	gb, err := svc.GroupBalances(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, calculator.Balances{"alice": 3000, "bob": 0, "carol": -3000}, gb.Balances)

	payments, err := svc.SuggestSettlements(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []models.SuggestedPayment{
		{GroupID: "g1", FromMemberID: "carol", ToMemberID: "alice", Amount: 3000},
	}, payments)
}

func TestRecordSettlement_PublishFailureIsNotFatal(t *testing.T) {
	store := scenarioA()
	svc := New(store, WithPublisher(&recordingPublisher{err: errors.New("broker gone")}))

	payment := models.SuggestedPayment{GroupID: "g1", FromMemberID: "bob", ToMemberID: "alice", Amount: 100}
	settlement, err := svc.RecordSettlement(context.Background(), payment, "")
	require.NoError(t, err)
	assert.NotEmpty(t, settlement.ID)
	assert.Len(t, store.settlements["g1"], 1)
}

func TestRecordSettlement_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payment models.SuggestedPayment
		setup   func(*fakeStore)
		wantErr error
	}{
		{
			name:    "zero amount",
			payment: models.SuggestedPayment{GroupID: "g1", FromMemberID: "bob", ToMemberID: "alice"},
			wantErr: calculator.ErrInvalidSettlement,
		},
		{
			name:    "self payment",
			payment: models.SuggestedPayment{GroupID: "g1", FromMemberID: "bob", ToMemberID: "bob", Amount: 1},
			wantErr: calculator.ErrInvalidSettlement,
		},
		{
			name:    "payer not in group",
			payment: models.SuggestedPayment{GroupID: "g1", FromMemberID: "mallory", ToMemberID: "alice", Amount: 1},
			wantErr: ErrNotMember,
		},
		{
			name:    "unknown group",
			payment: models.SuggestedPayment{GroupID: "nope", FromMemberID: "bob", ToMemberID: "alice", Amount: 1},
			wantErr: storage.ErrNotFound,
		},
		{
			name:    "store failure",
			payment: models.SuggestedPayment{GroupID: "g1", FromMemberID: "bob", ToMemberID: "alice", Amount: 1},
			setup:   func(f *fakeStore) { f.createErr = errors.New("disk full") },
			wantErr: ErrCollaborator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := scenarioA()
			if tt.setup != nil {
				tt.setup(store)
			}
			pub := &recordingPublisher{}

			_, err := New(store, WithPublisher(pub)).RecordSettlement(context.Background(), tt.payment, "")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, pub.published)
			assert.Empty(t, store.settlements["g1"])
		})
	}
}
