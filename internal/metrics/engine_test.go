package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/saastrack/internal/config"
	"github.com/theirongolddev/saastrack/internal/model"
)

func sampleSnapshot() model.BusinessSnapshot {
	return model.BusinessSnapshot{
		Name:           "Acme",
		CurrentUsers:   100,
		GoalUsers:      1000,
		MonthlyRevenue: 500,
		RevenueGoal:    5000,
		ChurnRate:      5,
		GrowthRate:     10,
	}
}

func TestCompute_ReferenceSnapshot(t *testing.T) {
	r := Compute(sampleSnapshot())

	assert.InDelta(t, 5.0, r.RevenuePerUser, 1e-9)
	assert.InDelta(t, 1200.0, r.CustomerLifetimeValue, 1e-6)
	assert.InDelta(t, 500.0, r.MonthlyRecurringRevenue, 1e-9)
	assert.InDelta(t, 6000.0, r.AnnualRecurringRevenue, 1e-9)
	assert.InDelta(t, 10.0, r.CustomerAcquisitionCost, 1e-9)
	assert.InDelta(t, 120.0, r.LTVCACRatio, 1e-6)
	assert.InDelta(t, 95.0, r.RetentionRate, 1e-9)
	assert.InDelta(t, 105.0, r.NetRevenueRetention, 1e-9)
	assert.Equal(t, 25, r.DailyActiveUsers)
	assert.Equal(t, 65, r.WeeklyActiveUsers)
	assert.InDelta(t, 5.0, r.GrowthEfficiency, 1e-9)
	assert.Equal(t, 2, r.PaybackPeriodMonths)

	assert.InDelta(t, 10.0, r.MRRProgress, 1e-9)
	assert.InDelta(t, 10.0, r.ARRProgress, 1e-9)
	assert.InDelta(t, 100.0, r.RetentionProgress, 1e-9)
	assert.InDelta(t, 100.0, r.LTVCACProgress, 1e-9)
	assert.InDelta(t, 105.0/110.0*100, r.NRRProgress, 1e-9)
	assert.InDelta(t, 10.0, r.UserProgress, 1e-9)
	assert.InDelta(t, 50.0, r.RetentionGauge, 1e-9)
	assert.InDelta(t, 50.0, r.MomentumGauge, 1e-9)

	assert.Equal(t, model.GrowthExcellent, r.GrowthStatus)
	assert.Equal(t, model.ChurnGood, r.ChurnStatus)
	assert.True(t, r.LTVCACHealthy)
	assert.True(t, r.NRRHealthy)
	assert.True(t, r.RetentionHealthy)

	assert.InDelta(t, 5000.0, r.ProjectedMRR, 1e-9)
	assert.InDelta(t, 9.5, r.GrowthMomentum, 1e-9)
	assert.Equal(t, 900, r.RemainingUsers)
	assert.True(t, r.GoalReachable)
	assert.Equal(t, 90, r.MonthsToGoal)

	require.Len(t, r.RevenueBreakdown, 3)
	assert.Equal(t, 200.0, r.RevenueBreakdown[0].Value)
	assert.Equal(t, 250.0, r.RevenueBreakdown[1].Value)
	assert.Equal(t, 50.0, r.RevenueBreakdown[2].Value)
}

func TestCompute_ZeroUsersAndRevenue(t *testing.T) {
	s := model.BusinessSnapshot{GoalUsers: 1000, ChurnRate: 3, GrowthRate: 4}
	r := Compute(s)

	assert.Zero(t, r.RevenuePerUser)
	assert.Zero(t, r.DailyActiveUsers)
	assert.Zero(t, r.WeeklyActiveUsers)
	assert.Zero(t, r.PaybackPeriodMonths)
	assert.Zero(t, r.CustomerAcquisitionCost)
	assert.Zero(t, r.LTVCACRatio)
	assert.Zero(t, r.LTVCACProgress)
	assert.Zero(t, r.MRRProgress)
	assert.Zero(t, r.ARRProgress)
	assert.False(t, r.GoalReachable)
	assert.False(t, math.IsNaN(r.GrowthEfficiency))
	assert.InDelta(t, 4.0, r.GrowthEfficiency, 1e-9)
}

func TestCompute_ZeroChurnUsesNoChurnLifetime(t *testing.T) {
	for _, users := range []int{1, 7, 100, 12345} {
		s := sampleSnapshot()
		s.ChurnRate = 0
		s.CurrentUsers = users
		r := Compute(s)
		assert.InDelta(t, r.RevenuePerUser*24, r.CustomerLifetimeValue, 1e-9, "users=%d", users)
	}
}

func TestCompute_ZeroGoalsAreUndefined(t *testing.T) {
	s := sampleSnapshot()
	s.GoalUsers = 0
	s.RevenueGoal = 0
	r := Compute(s)

	assert.Zero(t, r.MRRProgress)
	assert.Zero(t, r.ARRProgress)
	assert.Zero(t, r.UserProgress)
	assert.Zero(t, r.RevenueProgress)
}

func TestCompute_ARRIsTwelveTimesMRR(t *testing.T) {
	for _, rev := range []float64{0, 0.01, 499.99, 1e6} {
		s := sampleSnapshot()
		s.MonthlyRevenue = rev
		r := Compute(s)
		assert.Equal(t, r.MonthlyRecurringRevenue*12, r.AnnualRecurringRevenue)
	}
}

func TestCompute_ProgressAlwaysClamped(t *testing.T) {
	cases := []model.BusinessSnapshot{
		{CurrentUsers: 5000, GoalUsers: 10, MonthlyRevenue: 1e6, RevenueGoal: 1, ChurnRate: -50, GrowthRate: 500},
		{CurrentUsers: 1, GoalUsers: 10, MonthlyRevenue: 1, RevenueGoal: 10, ChurnRate: 250, GrowthRate: -40},
		{CurrentUsers: 10, GoalUsers: 10, MonthlyRevenue: 10, RevenueGoal: 10, ChurnRate: math.NaN()},
	}
	for i, s := range cases {
		r := Compute(s)
		for name, v := range map[string]float64{
			"mrr":       r.MRRProgress,
			"arr":       r.ARRProgress,
			"retention": r.RetentionProgress,
			"ltvcac":    r.LTVCACProgress,
			"nrr":       r.NRRProgress,
			"users":     r.UserProgress,
			"revenue":   r.RevenueProgress,
			"retgauge":  r.RetentionGauge,
			"momentum":  r.MomentumGauge,
		} {
			assert.GreaterOrEqual(t, v, 0.0, "case %d %s", i, name)
			assert.LessOrEqual(t, v, 100.0, "case %d %s", i, name)
		}
	}
}

func TestCompute_RawRatiosNotClamped(t *testing.T) {
	s := sampleSnapshot()
	s.GrowthRate = 80
	r := Compute(s)
	assert.Greater(t, r.LTVCACRatio, 100.0)
	assert.InDelta(t, 175.0, r.NetRevenueRetention, 1e-9)
}

func TestCompute_DoesNotMutateSnapshot(t *testing.T) {
	s := sampleSnapshot()
	s.History = []model.MonthPoint{{Month: "Jan", Users: 80, Revenue: 400}, {Month: "Feb", Users: 100, Revenue: 500}}
	before := s.Clone()
	_ = Compute(s)
	assert.Equal(t, before, s)
}

func TestEngine_OverridesChangeOnlyTheirKPIs(t *testing.T) {
	base := Compute(sampleSnapshot())

	h := config.DefaultHeuristics()
	h.DAURatio = 0.5
	r := New(h).Compute(sampleSnapshot())

	assert.Equal(t, 50, r.DailyActiveUsers)
	r.DailyActiveUsers = base.DailyActiveUsers
	assert.Equal(t, base, r)
}

func TestEngine_CustomTargets(t *testing.T) {
	h := config.DefaultHeuristics()
	h.NRRTarget = 105
	h.LTVCACTarget = 200
	r := New(h).Compute(sampleSnapshot())

	assert.InDelta(t, 100.0, r.NRRProgress, 1e-9)
	assert.InDelta(t, 60.0, r.LTVCACProgress, 1e-9)
	assert.False(t, r.LTVCACHealthy)
}

func TestGrowthEfficiency(t *testing.T) {
	tests := []struct {
		name             string
		growth, cac, rpu float64
		want             float64
	}{
		{"no cac", 8, 0, 5, 8},
		{"cac equals two rpu", 10, 10, 5, 5},
		{"rpu zero falls back to one", 6, 3, 0, 6},
		{"cheap cac boosts", 10, 1, 4, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, growthEfficiency(tt.growth, tt.cac, tt.rpu), 1e-9)
		})
	}
}

func TestClampAndRound(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-3))
	assert.Equal(t, 100.0, Clamp(250))
	assert.Equal(t, 42.5, Clamp(42.5))
	assert.Equal(t, 0.0, Clamp(math.NaN()))

	assert.InDelta(t, 12.3, Round1(12.34), 1e-9)
	assert.InDelta(t, 12.4, Round1(12.35000001), 1e-9)
	assert.InDelta(t, -4.5, Round1(-4.55), 1e-9)
}

func TestStatusBuckets(t *testing.T) {
	growth := map[float64]model.GrowthStatus{
		15: model.GrowthExcellent, 10: model.GrowthExcellent,
		9.9: model.GrowthGood, 5: model.GrowthGood,
		0.1: model.GrowthSlow, 0: model.GrowthNone, -2: model.GrowthNone,
	}
	for in, want := range growth {
		assert.Equal(t, want, GrowthStatusFor(in), "growth %v", in)
	}

	churn := map[float64]model.ChurnStatus{
		0: model.ChurnExcellent, 2: model.ChurnExcellent,
		2.1: model.ChurnGood, 5: model.ChurnGood,
		7: model.ChurnAverage, 10: model.ChurnAverage,
		10.5: model.ChurnHighRisk,
	}
	for in, want := range churn {
		assert.Equal(t, want, ChurnStatusFor(in), "churn %v", in)
	}
}
