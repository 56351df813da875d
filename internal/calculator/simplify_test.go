package calculator

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		name     string
		balances Balances
		want     []models.SuggestedPayment
	}{
		{
			name:     "one creditor two debtors",
			balances: Balances{"alice": 6000, "bob": -3000, "carol": -3000},
			want: []models.SuggestedPayment{
				{GroupID: "g1", FromMemberID: "bob", ToMemberID: "alice", Amount: 3000},
				{GroupID: "g1", FromMemberID: "carol", ToMemberID: "alice", Amount: 3000},
			},
		},
		{
			name:     "settled member is skipped",
			balances: Balances{"alice": 3000, "bob": 0, "carol": -3000},
			want: []models.SuggestedPayment{
				{GroupID: "g1", FromMemberID: "carol", ToMemberID: "alice", Amount: 3000},
			},
		},
		{
			name:     "debtor spans two creditors",
			balances: Balances{"alice": 5000, "bob": 2000, "carol": -7000},
			want: []models.SuggestedPayment{
				{GroupID: "g1", FromMemberID: "carol", ToMemberID: "alice", Amount: 5000},
				{GroupID: "g1", FromMemberID: "carol", ToMemberID: "bob", Amount: 2000},
			},
		},
		{
			name:     "all zero",
			balances: Balances{"alice": 0, "bob": 0, "carol": 0},
			want:     nil,
		},
		{
			name:     "empty",
			balances: Balances{},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Simplify("g1", tt.balances))
		})
	}
}

func TestSimplify_StopsWhenOneSideIsExhausted(t *testing.T) {
	t.Run("creditor left over", func(t *testing.T) {
		got := Simplify("g1", Balances{"alice": 5000, "bob": -3000})
		assert.Equal(t, []models.SuggestedPayment{
			{GroupID: "g1", FromMemberID: "bob", ToMemberID: "alice", Amount: 3000},
		}, got)
	})

	t.Run("debtor left over", func(t *testing.T) {
		got := Simplify("g1", Balances{"alice": 1000, "bob": -1500})
		assert.Equal(t, []models.SuggestedPayment{
			{GroupID: "g1", FromMemberID: "bob", ToMemberID: "alice", Amount: 1000},
		}, got)
	})

	t.Run("residue grows with members", func(t *testing.T) {
		got, err := SimplifyFloats("g1", map[string]float64{"a": 10.03, "b": -5, "c": -5})
		require.NoError(t, err)
		assert.Equal(t, []models.SuggestedPayment{
			{GroupID: "g1", FromMemberID: "b", ToMemberID: "a", Amount: 500},
			{GroupID: "g1", FromMemberID: "c", ToMemberID: "a", Amount: 500},
		}, got)
	})
}

func TestSimplifyFloats_RoundingResidue(t *testing.T) {
	// 33.333 + 33.333 - 66.666 rounds to 3333 + 3333 - 6667
	got, err := SimplifyFloats("g1", map[string]float64{"alice": 33.333, "bob": 33.333, "carol": -66.666})
	require.NoError(t, err)
	assert.Equal(t, []models.SuggestedPayment{
		{GroupID: "g1", FromMemberID: "carol", ToMemberID: "alice", Amount: 3333},
		{GroupID: "g1", FromMemberID: "carol", ToMemberID: "bob", Amount: 3333},
	}, got)
}

func TestSimplify_OneCentIsNotSettled(t *testing.T) {
	want := []models.SuggestedPayment{
		{GroupID: "g1", FromMemberID: "bob", ToMemberID: "alice", Amount: 1},
	}
	assert.Equal(t, want, Simplify("g1", Balances{"alice": 1, "bob": -1}))

	got, err := SimplifyFloats("g1", map[string]float64{"alice": 0.01, "bob": -0.01})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Below half a cent rounds to zero.
	got, err = SimplifyFloats("g1", map[string]float64{"alice": 0.004, "bob": -0.004})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSimplifyFloats_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := SimplifyFloats("g1", map[string]float64{"alice": v, "bob": 0})
		assert.ErrorIs(t, err, ErrInvalidBalance, "value %v", v)
	}
}

// scenario is a scripted group history used by the end-to-end checks below.
type scenario struct {
	expenses    []*models.Expense
	settlements []*models.Settlement
}

func TestScenarios(t *testing.T) {
	t.Run("A: one expense shared by three", func(t *testing.T) {
		balances, err := ComputeBalances([]*models.Expense{expense(9000, "alice", "alice", "bob", "carol")}, nil, trio)
		require.NoError(t, err)
		assert.Equal(t, Balances{"alice": 6000, "bob": -3000, "carol": -3000}, balances)

		payments := Simplify("g1", balances)
		assert.Equal(t, []models.SuggestedPayment{
			{GroupID: "g1", FromMemberID: "bob", ToMemberID: "alice", Amount: 3000},
			{GroupID: "g1", FromMemberID: "carol", ToMemberID: "alice", Amount: 3000},
		}, payments)
	})

	t.Run("C: recorded settlement clears bob", func(t *testing.T) {
		balances, err := ComputeBalances(
			[]*models.Expense{expense(9000, "alice", "alice", "bob", "carol")},
			[]*models.Settlement{settlement(3000, "bob", "alice")},
			trio,
		)
		require.NoError(t, err)
		assert.Equal(t, Balances{"alice": 3000, "bob": 0, "carol": -3000}, balances)

		payments := Simplify("g1", balances)
		assert.Equal(t, []models.SuggestedPayment{
			{GroupID: "g1", FromMemberID: "carol", ToMemberID: "alice", Amount: 3000},
		}, payments)
	})

	t.Run("D: nothing recorded", func(t *testing.T) {
		balances, err := ComputeBalances(nil, nil, trio)
		require.NoError(t, err)
		assert.Equal(t, Balances{"alice": 0, "bob": 0, "carol": 0}, balances)

		payments := Simplify("g1", balances)
		assert.Empty(t, payments)
	})
}

func randomScenario(r *rand.Rand, members []string) scenario {
	var s scenario
	for n := r.IntN(20); n > 0; n-- {
		var participants []string
		for _, m := range members {
			if r.IntN(2) == 0 {
				participants = append(participants, m)
			}
		}
		if len(participants) == 0 {
			participants = []string{members[r.IntN(len(members))]}
		}
		s.expenses = append(s.expenses, expense(money.Cents(1+r.IntN(50000)), members[r.IntN(len(members))], participants...))
	}
	for n := r.IntN(5); n > 0; n-- {
		from := r.IntN(len(members))
		to := (from + 1 + r.IntN(len(members)-1)) % len(members)
		s.settlements = append(s.settlements, settlement(money.Cents(1+r.IntN(10000)), members[from], members[to]))
	}
	return s
}

func applyPayments(balances Balances, payments []models.SuggestedPayment) Balances {
	out := make(Balances, len(balances))
	for id, v := range balances {
		out[id] = v
	}
	for _, p := range payments {
		out[p.FromMemberID] += p.Amount
		out[p.ToMemberID] -= p.Amount
	}
	return out
}

func TestProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))

	for iter := 0; iter < 300; iter++ {
		members := make([]string, 2+r.IntN(8))
		for i := range members {
			members[i] = fmt.Sprintf("m%02d", i)
		}
		sc := randomScenario(r, members)

		balances, err := ComputeBalances(sc.expenses, sc.settlements, members)
		require.NoError(t, err)

		// Conservation
		require.Zero(t, balances.Sum(), "iteration %d", iter)

		payments := Simplify("g1", balances)

		// Bound
		creditors, debtors := 0, 0
		for _, v := range balances {
			if v > 0 {
				creditors++
			} else if v < 0 {
				debtors++
			}
		}
		assert.LessOrEqual(t, len(payments), max(0, creditors+debtors-1), "iteration %d", iter)

		// Completeness: replaying every suggestion settles the group
		for id, v := range applyPayments(balances, payments) {
			assert.Zero(t, v, "iteration %d member %s", iter, id)
		}

		// Progress: recording any single suggestion moves both parties toward zero
		for _, p := range payments {
			assert.Positive(t, p.Amount)
			recorded := append(append([]*models.Settlement{}, sc.settlements...),
				p.ToSettlement("s-new", 0, ""))
			after, err := ComputeBalances(sc.expenses, recorded, members)
			require.NoError(t, err)
			assert.Less(t, after[p.FromMemberID].Abs(), balances[p.FromMemberID].Abs())
			assert.Less(t, after[p.ToMemberID].Abs(), balances[p.ToMemberID].Abs())
		}

		// Determinism
		again := Simplify("g1", balances)
		assert.Equal(t, payments, again)
	}
}

func TestSelfPaymentNeutrality(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 9))
	for iter := 0; iter < 50; iter++ {
		sc := randomScenario(r, trio)
		before, err := ComputeBalances(sc.expenses, sc.settlements, trio)
		require.NoError(t, err)

		payer := trio[r.IntN(len(trio))]
		withSelf := append(append([]*models.Expense{}, sc.expenses...), expense(money.Cents(1+r.IntN(9999)), payer, payer))
		after, err := ComputeBalances(withSelf, sc.settlements, trio)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	}
}
