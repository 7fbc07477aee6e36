package plan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Scenario(t *testing.T) {
	t.Parallel()

	rows := Generate(Settings{
		StartAmount:    20,
		RiskPercentage: 20,
		RewardRatio:    1,
		LotDivisor:     1000,
		Steps:          3,
	})
	require.Len(t, rows, 3)

	want := []Checkpoint{
		{ID: 1, Amount: 20, LotSize: 0.02, RiskAmount: 4, Profit: 4, Total: 24},
		{ID: 2, Amount: 24, LotSize: 0.02, RiskAmount: 4.8, Profit: 4.8, Total: 28.8},
		{ID: 3, Amount: 28.8, LotSize: 0.03, RiskAmount: 5.76, Profit: 5.76, Total: 34.56},
	}
	for i, w := range want {
		got := rows[i]
		assert.Equal(t, w.ID, got.ID)
		assert.InDelta(t, w.Amount, got.Amount, 1e-9, "amount step %d", w.ID)
		assert.InDelta(t, w.LotSize, got.LotSize, 1e-9, "lot step %d", w.ID)
		assert.InDelta(t, w.RiskAmount, got.RiskAmount, 1e-9, "risk step %d", w.ID)
		assert.InDelta(t, w.Profit, got.Profit, 1e-9, "profit step %d", w.ID)
		assert.InDelta(t, w.Total, got.Total, 1e-9, "total step %d", w.ID)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	assert.Equal(t, Generate(s), Generate(s))
}

func TestGenerate_Chaining(t *testing.T) {
	t.Parallel()

	settings := []Settings{
		DefaultSettings(),
		{StartAmount: 137.37, RiskPercentage: 3.3, RewardRatio: 2.5, LotDivisor: 1000, Steps: 60},
		{StartAmount: 0.5, RiskPercentage: 7, RewardRatio: 0.33, LotDivisor: 100, Steps: 40},
	}

	for _, s := range settings {
		rows := Generate(s)
		require.Len(t, rows, s.Steps)
		for i := 0; i+1 < len(rows); i++ {
			assert.InDelta(t, rows[i].Total, rows[i+1].Amount, 0.01,
				"row %d total vs row %d amount", rows[i].ID, rows[i+1].ID)
			assert.Equal(t, i+1, rows[i].ID)
		}
	}
}

func TestGenerate_LotFloor(t *testing.T) {
	t.Parallel()

	rows := Generate(Settings{StartAmount: 1, RiskPercentage: 1, RewardRatio: 1, LotDivisor: 1000, Steps: 10})
	for _, r := range rows {
		assert.GreaterOrEqual(t, r.LotSize, MinLotSize)
	}
	assert.InDelta(t, 0.01, rows[0].LotSize, 1e-12)
}

func TestGenerate_FullPrecisionCarry(t *testing.T) {
	t.Parallel()

	// 10.005 * 10% = 1.0005 profit; rounding each step would drift from the
	// closed form start * 1.1^n.
	s := Settings{StartAmount: 10.005, RiskPercentage: 10, RewardRatio: 1, LotDivisor: 1000, Steps: 30}
	rows := Generate(s)
	last := rows[len(rows)-1]

	assert.InDelta(t, s.StartAmount*math.Pow(1.1, 30), last.Total, 0.006)
}

func TestGenerate_NonPositiveSteps(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -1, -50} {
		s := DefaultSettings()
		s.Steps = n
		rows := Generate(s)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	}
}

func TestRound2(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{1.005, 1.01},
		{2.675, 2.68},
		{-1.005, -1.01},
		{0.0049, 0},
		{34.56, 34.56},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Round2(tt.in), 1e-12, "Round2(%v)", tt.in)
	}
	assert.True(t, math.IsInf(Round2(math.Inf(1)), 1))
}

func TestFindAndPayoff(t *testing.T) {
	t.Parallel()

	rows := Generate(Settings{StartAmount: 20, RiskPercentage: 20, RewardRatio: 2, LotDivisor: 1000, Steps: 5})

	row, ok := Find(rows, 3)
	require.True(t, ok)
	assert.Equal(t, 3, row.ID)
	assert.InDelta(t, row.Profit, row.Payoff(true), 1e-12)
	assert.InDelta(t, -row.RiskAmount, row.Payoff(false), 1e-12)

	_, ok = Find(rows, 6)
	assert.False(t, ok)
	_, ok = Find(rows, 0)
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Settings{StartAmount: 20, RiskPercentage: 20, RewardRatio: 1, LotDivisor: 1000, Steps: 3}
	sum := Summarize(s, Generate(s))

	assert.Equal(t, 3, sum.Steps)
	assert.InDelta(t, 34.56, sum.FinalBalance, 1e-9)
	assert.InDelta(t, 14.56, sum.TotalProfit, 1e-9)
	assert.InDelta(t, 172.8, sum.GrowthPct, 1e-9)
	assert.InDelta(t, 0.03, sum.FinalLotSize, 1e-9)

	empty := Summarize(s, nil)
	assert.Zero(t, empty.FinalBalance)
	assert.Equal(t, 20.0, empty.StartBalance)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		mut   func(*Settings)
		codes []string
	}{
		{"defaults", func(*Settings) {}, nil},
		{"zero start", func(s *Settings) { s.StartAmount = 0 }, []string{"START_NOT_POSITIVE"}},
		{"risk high", func(s *Settings) { s.RiskPercentage = 101 }, []string{"RISK_OUT_OF_RANGE"}},
		{"risk nan", func(s *Settings) { s.RiskPercentage = math.NaN() }, []string{"RISK_OUT_OF_RANGE"}},
		{"reward negative", func(s *Settings) { s.RewardRatio = -1 }, []string{"REWARD_NEGATIVE"}},
		{"divisor zero", func(s *Settings) { s.LotDivisor = 0 }, []string{"LOT_DIVISOR_NOT_POSITIVE"}},
		{"many", func(s *Settings) { s.Steps = 0; s.StartAmount = -5 }, []string{"START_NOT_POSITIVE", "STEPS_NOT_POSITIVE"}},
		{"max steps", func(s *Settings) { s.Steps = MaxSteps }, nil},
		{"too many steps", func(s *Settings) { s.Steps = MaxSteps + 1 }, []string{"STEPS_TOO_MANY"}},
		{"huge steps", func(s *Settings) { s.Steps = 1 << 62 }, []string{"STEPS_TOO_MANY"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := DefaultSettings()
			tt.mut(&s)
			d := Check(s)

			var codes []string
			for _, v := range d.Violations {
				codes = append(codes, v.Code)
			}
			assert.Equal(t, tt.codes, codes)
			assert.Equal(t, len(tt.codes) == 0, d.Allowed)
			if d.Allowed {
				assert.NoError(t, d.Err())
			} else {
				assert.Error(t, d.Err())
			}
		})
	}
}

func TestFinite(t *testing.T) {
	t.Parallel()

	assert.True(t, Finite(Generate(DefaultSettings())))
	assert.True(t, Finite(nil))

	// Each setting is in range, but 101x growth per step overflows.
	s := Settings{StartAmount: 20, RiskPercentage: 100, RewardRatio: 100, LotDivisor: 1000, Steps: 200}
	require.True(t, Check(s).Allowed)
	assert.False(t, Finite(Generate(s)))
}
