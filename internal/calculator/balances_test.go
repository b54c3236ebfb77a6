package calculator

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trio = []Participant{
	{ID: "alice", Name: "Alice"},
	{ID: "bob", Name: "Bob"},
	{ID: "cara", Name: "Cara"},
}

func evenShares(expenseID string, amount float64, ids ...string) []Share {
	amounts := SplitEvenly(amount, len(ids))
	shares := make([]Share, len(ids))
	for i, id := range ids {
		shares[i] = Share{ExpenseID: expenseID, ParticipantID: id, Amount: amounts[i]}
	}
	return shares
}

func netByID(balances []Balance) map[string]float64 {
	nets := make(map[string]float64, len(balances))
	for _, b := range balances {
		nets[b.ParticipantID] = b.Net
	}
	return nets
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name     string
		expenses []Expense
		shares   []Share
		wantNet  map[string]float64
		wantPaid map[string]float64
		wantOwed map[string]float64
	}{
		{
			name:     "one expense paid by alice split three ways",
			expenses: []Expense{{ID: "e1", Amount: 90, PayerID: "alice", Category: "food"}},
			shares:   evenShares("e1", 90, "alice", "bob", "cara"),
			wantNet:  map[string]float64{"alice": 60, "bob": -30, "cara": -30},
			wantPaid: map[string]float64{"alice": 90, "bob": 0, "cara": 0},
			wantOwed: map[string]float64{"alice": 30, "bob": 30, "cara": 30},
		},
		{
			name: "two payers",
			expenses: []Expense{
				{ID: "e1", Amount: 60, PayerID: "alice", Category: "lodging"},
				{ID: "e2", Amount: 30, PayerID: "bob", Category: "transport"},
			},
			shares: append(
				evenShares("e1", 60, "alice", "bob", "cara"),
				evenShares("e2", 30, "alice", "bob", "cara")...,
			),
			wantNet:  map[string]float64{"alice": 30, "bob": 0, "cara": -30},
			wantPaid: map[string]float64{"alice": 60, "bob": 30, "cara": 0},
			wantOwed: map[string]float64{"alice": 30, "bob": 30, "cara": 30},
		},
		{
			name:     "uneven cents do not leak",
			expenses: []Expense{{ID: "e1", Amount: 10, PayerID: "cara"}},
			shares:   evenShares("e1", 10, "alice", "bob", "cara"),
			wantNet:  map[string]float64{"alice": -3.33, "bob": -3.33, "cara": 6.66},
			wantPaid: map[string]float64{"alice": 0, "bob": 0, "cara": 10},
			wantOwed: map[string]float64{"alice": 3.33, "bob": 3.33, "cara": 3.34},
		},
		{
			name:     "no data",
			wantNet:  map[string]float64{"alice": 0, "bob": 0, "cara": 0},
			wantPaid: map[string]float64{"alice": 0, "bob": 0, "cara": 0},
			wantOwed: map[string]float64{"alice": 0, "bob": 0, "cara": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := ComputeBalances(trio, tt.expenses, tt.shares)
			require.Len(t, balances, len(trio))

			for i, b := range balances {
				assert.Equal(t, trio[i].ID, b.ParticipantID, "balances keep participant order")
				assert.Equal(t, tt.wantNet[b.ParticipantID], b.Net, "%s net", b.ParticipantID)
				assert.Equal(t, tt.wantPaid[b.ParticipantID], b.TotalPaid, "%s paid", b.ParticipantID)
				assert.Equal(t, tt.wantOwed[b.ParticipantID], b.TotalOwed, "%s owed", b.ParticipantID)
				assert.NotNil(t, b.ByCategory)
			}
		})
	}
}

func TestComputeBalances_EmptyParticipants(t *testing.T) {
	balances := ComputeBalances(nil, []Expense{{ID: "e1", Amount: 5, PayerID: "x"}}, nil)
	require.NotNil(t, balances)
	assert.Empty(t, balances)
}

func TestComputeBalances_ByCategory(t *testing.T) {
	expenses := []Expense{
		{ID: "e1", Amount: 60, PayerID: "alice", Category: "food"},
		{ID: "e2", Amount: 30, PayerID: "bob", Category: "tickets"},
		{ID: "e3", Amount: 12, PayerID: "bob"},
	}
	shares := append(evenShares("e1", 60, "alice", "bob", "cara"), evenShares("e2", 30, "alice", "bob", "cara")...)
	shares = append(shares, Share{ExpenseID: "e3", ParticipantID: "cara", Amount: 12})
	shares = append(shares, Share{ExpenseID: "missing", ParticipantID: "alice", Amount: 4})

	balances := ComputeBalances(trio, expenses, shares)

	alice := balances[0].ByCategory
	assert.Equal(t, CategoryAmounts{Paid: 60, Owed: 20}, alice["food"])
	assert.Equal(t, CategoryAmounts{Owed: 10}, alice["tickets"])
	assert.Equal(t, CategoryAmounts{Owed: 4}, alice[CategoryOther], "orphaned share lands in other")

	bob := balances[1].ByCategory
	assert.Equal(t, CategoryAmounts{Paid: 30, Owed: 10}, bob["tickets"])
	assert.Equal(t, CategoryAmounts{Paid: 12}, bob[CategoryOther], "uncategorized expense lands in other")

	cara := balances[2].ByCategory
	assert.Equal(t, CategoryAmounts{Owed: 12}, cara[CategoryOther])
}

func TestComputeBalances_Idempotent(t *testing.T) {
	expenses := []Expense{
		{ID: "e1", Amount: 47.21, PayerID: "alice", Category: "food"},
		{ID: "e2", Amount: 13.07, PayerID: "cara", Category: "transport"},
	}
	shares := append(evenShares("e1", 47.21, "alice", "bob", "cara"), evenShares("e2", 13.07, "bob", "cara")...)

	first := ComputeBalances(trio, expenses, shares)
	second := ComputeBalances(trio, expenses, shares)
	assert.Equal(t, first, second)
}

func TestPlanSettlement(t *testing.T) {
	tests := []struct {
		name     string
		balances []Balance
		want     []Transfer
	}{
		{
			name: "one creditor two debtors",
			balances: []Balance{
				{ParticipantID: "alice", Net: 60},
				{ParticipantID: "bob", Net: -30},
				{ParticipantID: "cara", Net: -30},
			},
			want: []Transfer{
				{From: "bob", To: "alice", Amount: 30},
				{From: "cara", To: "alice", Amount: 30},
			},
		},
		{
			name: "largest imbalances are paired first",
			balances: []Balance{
				{ParticipantID: "a", Net: 10},
				{ParticipantID: "b", Net: -25},
				{ParticipantID: "c", Net: 40},
				{ParticipantID: "d", Net: -25},
			},
			want: []Transfer{
				{From: "b", To: "c", Amount: 25},
				{From: "d", To: "c", Amount: 15},
				{From: "d", To: "a", Amount: 10},
			},
		},
		{
			name: "already settled",
			balances: []Balance{
				{ParticipantID: "alice", Net: 0.01},
				{ParticipantID: "bob", Net: -0.01},
				{ParticipantID: "cara", Net: 0},
			},
			want: []Transfer{},
		},
		{
			name: "unbalanced input stops when creditors run out",
			balances: []Balance{
				{ParticipantID: "alice", Net: 20},
				{ParticipantID: "bob", Net: -30},
				{ParticipantID: "cara", Net: -15},
			},
			want: []Transfer{
				{From: "bob", To: "alice", Amount: 20},
			},
		},
		{
			name:     "empty",
			balances: nil,
			want:     []Transfer{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanSettlement(tt.balances)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanSettlement_DoesNotMutateInput(t *testing.T) {
	balances := []Balance{
		{ParticipantID: "alice", Net: 60},
		{ParticipantID: "bob", Net: -30},
		{ParticipantID: "cara", Net: -30},
	}
	PlanSettlement(balances)
	assert.Equal(t, 60.0, balances[0].Net)
	assert.Equal(t, -30.0, balances[1].Net)
}

func TestScenarioA(t *testing.T) {
	expenses := []Expense{{ID: "e1", Amount: 90, PayerID: "alice"}}
	report := BuildReport(trio, expenses, evenShares("e1", 90, "alice", "bob", "cara"))

	assert.Equal(t, map[string]float64{"alice": 60, "bob": -30, "cara": -30}, netByID(report.Balances))
	assert.Equal(t, []Transfer{
		{From: "bob", To: "alice", Amount: 30},
		{From: "cara", To: "alice", Amount: 30},
	}, report.Transfers)
	assert.Equal(t, 90.0, report.TotalGroupSpend)
	assert.Equal(t, 30.0, report.PerPersonAverage)
}

func TestScenarioB(t *testing.T) {
	expenses := []Expense{
		{ID: "e1", Amount: 60, PayerID: "alice"},
		{ID: "e2", Amount: 30, PayerID: "bob"},
	}
	shares := append(evenShares("e1", 60, "alice", "bob", "cara"), evenShares("e2", 30, "alice", "bob", "cara")...)
	report := BuildReport(trio, expenses, shares)

	assert.Equal(t, map[string]float64{"alice": 30, "bob": 0, "cara": -30}, netByID(report.Balances))
	assert.Equal(t, []Transfer{{From: "cara", To: "alice", Amount: 30}}, report.Transfers)
}

func TestScenarioC_AlreadySettled(t *testing.T) {
	expenses := []Expense{
		{ID: "e1", Amount: 30, PayerID: "alice"},
		{ID: "e2", Amount: 30, PayerID: "bob"},
		{ID: "e3", Amount: 30, PayerID: "cara"},
	}
	var shares []Share
	for _, e := range expenses {
		shares = append(shares, evenShares(e.ID, e.Amount, "alice", "bob", "cara")...)
	}
	report := BuildReport(trio, expenses, shares)
	assert.Empty(t, report.Transfers)
}

func TestRoundingScenario(t *testing.T) {
	expenses := []Expense{{ID: "e1", Amount: 10, PayerID: "alice"}}
	shares := evenShares("e1", 10, "alice", "bob", "cara")

	balances := ComputeBalances(trio, expenses, shares)

	owed := 0.0
	for _, b := range balances {
		owed += b.TotalOwed
	}
	assert.Equal(t, 10.0, Round2(owed))
	assert.Equal(t, 6.67, balances[0].Net)
}

func TestAnnotateSettledStatus(t *testing.T) {
	expenses := []Expense{
		{ID: "e1", Amount: 90, PayerID: "alice"},
		{ID: "e2", Amount: 30, PayerID: "alice"},
		{ID: "e3", Amount: 20, PayerID: "bob"},
	}
	transfers := []Transfer{
		{From: "bob", To: "alice", Amount: 40},
		{From: "cara", To: "alice", Amount: 40},
		{From: "cara", To: "bob", Amount: 5},
		{From: "dan", To: "alice", Amount: 1},
	}
	shares := []Share{
		{ExpenseID: "e1", ParticipantID: "bob", Amount: 30, Settled: true},
		{ExpenseID: "e2", ParticipantID: "bob", Amount: 10, Settled: true},
		{ExpenseID: "e1", ParticipantID: "cara", Amount: 30, Settled: true},
		{ExpenseID: "e2", ParticipantID: "cara", Amount: 10, Settled: false},
		{ExpenseID: "e3", ParticipantID: "bob", Amount: 10, Settled: false},
		{ExpenseID: "gone", ParticipantID: "dan", Amount: 1, Settled: true},
	}

	got := AnnotateSettledStatus(transfers, shares, expenses)
	require.Len(t, got, len(transfers))

	assert.True(t, got[0].Settled, "all of bob's shares on alice's expenses are settled")
	assert.False(t, got[1].Settled, "one of cara's shares is open")
	assert.False(t, got[2].Settled, "no direct cara->bob obligations")
	assert.False(t, got[3].Settled, "shares on unknown expenses do not count")

	assert.False(t, transfers[0].Settled, "input is not mutated")
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.005, 1.01},
		{-1.005, -1.01},
		{2.675, 2.68},
		{0.004, 0},
		{-0.004, 0},
		{10, 10},
		{3.33 + 3.33 + 3.34, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "Round2(%v)", tt.in)
	}
}

func TestSplitEvenly(t *testing.T) {
	assert.Equal(t, []float64{3.33, 3.33, 3.34}, SplitEvenly(10, 3))
	assert.Equal(t, []float64{30, 30, 30}, SplitEvenly(90, 3))
	assert.Equal(t, []float64{0.01, 0.01, 0.02, 0.02}, SplitEvenly(0.06, 4))
	assert.Equal(t, []float64{-5, -5}, SplitEvenly(-10, 2))
	assert.Nil(t, SplitEvenly(10, 0))

	for _, amount := range []float64{0.01, 1, 7.77, 100, 123.45, 999.99} {
		for n := 1; n <= 7; n++ {
			total := 0.0
			for _, s := range SplitEvenly(amount, n) {
				total += s
			}
			assert.Equal(t, amount, Round2(total), "SplitEvenly(%v, %d) sums back", amount, n)
		}
	}
}

// randomTrip builds a fully split trip so that the conservation properties
// must hold.
func randomTrip(r *rand.Rand) ([]Participant, []Expense, []Share) {
	names := []string{"ana", "ben", "chen", "dev", "eli", "fay", "gus"}
	n := 2 + r.IntN(len(names)-1)
	participants := make([]Participant, n)
	for i := range participants {
		participants[i] = Participant{ID: names[i], Name: names[i]}
	}

	var expenses []Expense
	var shares []Share
	for e := 0; e < 1+r.IntN(12); e++ {
		id := string(rune('a' + e))
		amount := float64(r.IntN(50000)) / 100
		payer := participants[r.IntN(n)].ID
		expenses = append(expenses, Expense{ID: id, Amount: amount, PayerID: payer, Category: "food"})

		var with []string
		for _, p := range participants {
			if r.IntN(3) > 0 {
				with = append(with, p.ID)
			}
		}
		if len(with) == 0 {
			with = append(with, payer)
		}
		shares = append(shares, evenShares(id, amount, with...)...)
	}
	return participants, expenses, shares
}

func TestSettlementProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(2026, 6))

	for run := 0; run < 100; run++ {
		participants, expenses, shares := randomTrip(r)
		balances := ComputeBalances(participants, expenses, shares)

		sum := 0.0
		debtors, creditors := 0, 0
		adjusted := make(map[string]float64, len(balances))
		for _, b := range balances {
			sum += b.Net
			adjusted[b.ParticipantID] = b.Net
			if b.Net < -Tolerance {
				debtors++
			}
			if b.Net > Tolerance {
				creditors++
			}
		}
		require.InDelta(t, 0, sum, 0.01, "run %d: nets sum to zero", run)

		transfers := PlanSettlement(balances)
		require.LessOrEqual(t, len(transfers), max(0, debtors+creditors-1), "run %d: transfer count bound", run)

		for _, tr := range transfers {
			require.NotEqual(t, tr.From, tr.To, "run %d: self transfer", run)
			require.Greater(t, tr.Amount, Tolerance)
			require.Equal(t, tr.Amount, math.Round(tr.Amount*100)/100, "run %d: amount is in cents", run)
			adjusted[tr.From] += tr.Amount
			adjusted[tr.To] -= tr.Amount
		}
		for id, net := range adjusted {
			// A cent at the tolerance edge is never transferred.
			require.InDelta(t, 0, net, Tolerance+1e-9, "run %d: %s is settled after transfers", run, id)
		}
	}
}
