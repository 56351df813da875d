// Package ledger computes balances and settlement suggestions for groups
// stored behind a Store. It owns every collaborator call; the calculator it
// drives stays pure.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/events"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

var (
	// ErrCollaborator wraps failures of the store while loading or writing.
	ErrCollaborator = errors.New("collaborator failure")

	// ErrNotMember is returned when a member is not part of the group.
	ErrNotMember = errors.New("member is not in group")
)

// DefaultConcurrency bounds the groups evaluated at once by OverallNetBalance.
const DefaultConcurrency = 4

// Store is the storage the ledger reads from and writes settlements to.
type Store interface {
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	LoadGroupLedger(ctx context.Context, groupID string) (*models.GroupLedger, error)
	ListGroupsByMember(ctx context.Context, memberID string) ([]*models.Group, error)
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
}

// GroupBalances is the balance of every member of a group.
type GroupBalances struct {
	Group    *models.Group
	Balances calculator.Balances
}

// GroupNet is one group's contribution to an OverallBalance.
type GroupNet struct {
	GroupID   string
	GroupName string
	Balance   money.Cents
}

// GroupFailure names a group skipped by OverallNetBalance.
type GroupFailure struct {
	GroupID string
	Err     error
}

// OverallBalance is a member's net position across all their groups.
// When Partial is set, Total leaves out the groups listed in Failed.
type OverallBalance struct {
	MemberID string
	Total    money.Cents
	Groups   []GroupNet
	Partial  bool
	Failed   []GroupFailure
}

// Service answers balance queries and records settlements.
type Service struct {
	store       Store
	publisher   events.Publisher
	metrics     *metrics.Metrics
	concurrency int
	now         func() time.Time
	newID       func() string
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets the publisher notified of recorded settlements.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithConcurrency bounds how many groups OverallNetBalance loads at once.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithClock overrides the time source used for new settlements.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides how settlement IDs are generated.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// New creates a Service reading from store.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:       store,
		publisher:   events.Nop{},
		concurrency: DefaultConcurrency,
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GroupBalances computes the balance of every member of the group from one
// consistent snapshot of its expenses and settlements.
func (s *Service) GroupBalances(ctx context.Context, groupID string) (*GroupBalances, error) {
	snapshot, err := s.store.LoadGroupLedger(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("%w: load group %s: %w", ErrCollaborator, groupID, err)
	}

	balances, err := calculator.ComputeBalances(snapshot.Expenses, snapshot.Settlements, snapshot.Group.MemberIDs())
	if err != nil {
		return nil, fmt.Errorf("compute balances for group %s: %w", groupID, err)
	}

	return &GroupBalances{Group: snapshot.Group, Balances: balances}, nil
}

// SuggestSettlements returns the payments that would settle the group.
func (s *Service) SuggestSettlements(ctx context.Context, groupID string) ([]models.SuggestedPayment, error) {
	gb, err := s.GroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}

	payments := calculator.Simplify(groupID, gb.Balances)
	s.metrics.ObserveSuggestions(len(payments))

	slog.DebugContext(ctx, "Suggested settlements",
		"group_id", groupID,
		"members", len(gb.Balances),
		"payments", len(payments))

	return payments, nil
}

// NetBalanceForMember returns one member's balance within a group.
func (s *Service) NetBalanceForMember(ctx context.Context, groupID, memberID string) (money.Cents, error) {
	gb, err := s.GroupBalances(ctx, groupID)
	if err != nil {
		return 0, err
	}
	if !gb.Group.HasMember(memberID) {
		return 0, fmt.Errorf("%w: member %s, group %s", ErrNotMember, memberID, groupID)
	}
	return gb.Balances[memberID], nil
}

// OverallNetBalance sums the member's balance over every group they belong
// to. A group whose balance cannot be computed is skipped and reported in
// Failed; the result is then marked Partial. Only failing to list the
// member's groups is returned as an error.
func (s *Service) OverallNetBalance(ctx context.Context, memberID string) (*OverallBalance, error) {
	groups, err := s.store.ListGroupsByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("%w: list groups for member %s: %w", ErrCollaborator, memberID, err)
	}

	nets := make([]money.Cents, len(groups))
	errs := make([]error, len(groups))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, group := range groups {
		g.Go(func() error {
			nets[i], errs[i] = s.NetBalanceForMember(ctx, group.ID, memberID)
			return nil
		})
	}
	_ = g.Wait()

	overall := &OverallBalance{MemberID: memberID}
	for i, group := range groups {
		if errs[i] != nil {
			slog.WarnContext(ctx, "Skipping group in overall balance",
				"member_id", memberID,
				"group_id", group.ID,
				"error", errs[i])
			overall.Failed = append(overall.Failed, GroupFailure{GroupID: group.ID, Err: errs[i]})
			continue
		}
		overall.Total += nets[i]
		overall.Groups = append(overall.Groups, GroupNet{
			GroupID:   group.ID,
			GroupName: group.Name,
			Balance:   nets[i],
		})
	}

	if len(overall.Failed) > 0 {
		overall.Partial = true
		s.metrics.PartialAggregate()
	}

	return overall, nil
}

// RecordSettlement stores payment as a settlement with a fresh ID and the
// current time, then publishes it. Both members must belong to the group.
// A publish failure is logged and does not fail the call: the settlement is
// already stored.
func (s *Service) RecordSettlement(ctx context.Context, payment models.SuggestedPayment, note string) (*models.Settlement, error) {
	settlement := payment.ToSettlement(s.newID(), s.now().Unix(), note)
	if err := calculator.ValidateSettlement(settlement); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, payment.GroupID)
	if err != nil {
		return nil, fmt.Errorf("%w: get group %s: %w", ErrCollaborator, payment.GroupID, err)
	}
	for _, id := range []string{settlement.FromMemberID, settlement.ToMemberID} {
		if !group.HasMember(id) {
			return nil, fmt.Errorf("%w: member %s, group %s", ErrNotMember, id, payment.GroupID)
		}
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, fmt.Errorf("%w: create settlement: %w", ErrCollaborator, err)
	}
	s.metrics.SettlementRecorded()

	slog.InfoContext(ctx, "Recorded settlement",
		"settlement_id", settlement.ID,
		"group_id", settlement.GroupID,
		"from", settlement.FromMemberID,
		"to", settlement.ToMemberID,
		"amount", settlement.Amount.String())

	if err := s.publisher.PublishSettlementRecorded(ctx, settlement); err != nil {
		slog.ErrorContext(ctx, "Failed to publish settlement event",
			"settlement_id", settlement.ID,
			"error", err)
	}

	return settlement, nil
}
