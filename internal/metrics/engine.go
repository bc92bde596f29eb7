// Package metrics derives saastrack KPIs, progress ratios and status labels
// from a business snapshot. Every function is pure and total: undefined
// ratios resolve to 0 instead of dividing by zero.
package metrics

import (
	"math"

	"github.com/theirongolddev/saastrack/internal/config"
	"github.com/theirongolddev/saastrack/internal/model"
)

// Engine computes reports using a fixed heuristics table.
type Engine struct {
	h config.Heuristics
}

// New returns an engine using h.
func New(h config.Heuristics) Engine {
	return Engine{h: h}
}

// Default returns an engine using the built-in heuristics.
func Default() Engine {
	return New(config.DefaultHeuristics())
}

// Heuristics returns the table the engine was built with.
func (e Engine) Heuristics() config.Heuristics {
	return e.h
}

// Compute derives a report from s using the built-in heuristics.
func Compute(s model.BusinessSnapshot) model.MetricsReport {
	return Default().Compute(s)
}

// Compute derives a report from s. It never mutates s.
func (e Engine) Compute(s model.BusinessSnapshot) model.MetricsReport {
	h := e.h
	var r model.MetricsReport

	users := float64(s.CurrentUsers)
	churn := s.ChurnRate
	growth := s.GrowthRate

	r.RevenuePerUser = ratio(s.MonthlyRevenue, users)

	if churn > 0 {
		r.CustomerLifetimeValue = r.RevenuePerUser * (1 / (churn / 100)) * h.LifetimeMonths
	} else {
		r.CustomerLifetimeValue = r.RevenuePerUser * h.NoChurnLifetimeMonths
	}

	r.MonthlyRecurringRevenue = s.MonthlyRevenue
	r.AnnualRecurringRevenue = r.MonthlyRecurringRevenue * 12
	r.NetRevenueRetention = 100 + growth - churn
	r.RetentionRate = 100 - churn

	if s.MonthlyRevenue != 0 {
		r.CustomerAcquisitionCost = math.Min(
			r.RevenuePerUser*h.CACUserMultiple,
			s.MonthlyRevenue*h.CACRevenueShare,
		)
	}
	r.LTVCACRatio = ratio(r.CustomerLifetimeValue, r.CustomerAcquisitionCost)

	r.DailyActiveUsers = int(math.Floor(users * h.DAURatio))
	r.WeeklyActiveUsers = int(math.Floor(users * h.WAURatio))

	r.GrowthEfficiency = growthEfficiency(growth, r.CustomerAcquisitionCost, r.RevenuePerUser)

	if r.RevenuePerUser != 0 {
		r.PaybackPeriodMonths = int(math.Ceil(r.CustomerAcquisitionCost / r.RevenuePerUser))
	}

	// Progress
	r.MRRProgress = Clamp(ratio(r.MonthlyRecurringRevenue, s.RevenueGoal) * 100)
	r.ARRProgress = Clamp(ratio(r.AnnualRecurringRevenue, s.RevenueGoal*12) * 100)
	r.RetentionProgress = Clamp(ratio(r.RetentionRate, h.RetentionTarget) * 100)
	if r.LTVCACRatio != 0 {
		r.LTVCACProgress = Clamp(math.Min(ratio(r.LTVCACRatio, h.LTVCACTarget)*100, 100))
	}
	r.NRRProgress = Clamp(math.Min(ratio(r.NetRevenueRetention, h.NRRTarget)*100, 100))
	r.UserProgress = Clamp(ratio(users, float64(s.GoalUsers)) * 100)
	r.RevenueProgress = Clamp(ratio(s.MonthlyRevenue, s.RevenueGoal) * 100)
	r.RetentionGauge = Clamp(100 - churn*10)
	r.MomentumGauge = Clamp(growth * 5)

	// Status
	r.GrowthStatus = GrowthStatusFor(growth)
	r.ChurnStatus = ChurnStatusFor(churn)
	r.LTVCACHealthy = r.LTVCACRatio >= h.LTVCACTarget
	r.NRRHealthy = r.NetRevenueRetention >= 100
	r.RetentionHealthy = r.RetentionRate >= 90

	// Supplemental
	r.ProjectedMRR = float64(s.GoalUsers) * r.RevenuePerUser
	r.GrowthMomentum = Round1(growth * (1 - churn/100))
	r.RemainingUsers = max(s.GoalUsers-s.CurrentUsers, 0)
	r.Trend = ComputeTrend(s.History)
	r.MonthsToGoal, r.GoalReachable = TimeToGoal(s.CurrentUsers, s.GoalUsers, growth)
	r.RevenueBreakdown = RevenueBreakdown(r.MonthlyRecurringRevenue)

	return r
}

// growthEfficiency divides growth by the CAC payback multiple, falling back
// to a divisor of 1 when that multiple is undefined or zero.
func growthEfficiency(growth, cac, rpu float64) float64 {
	if cac <= 0 {
		return growth
	}
	d := 1.0
	if rpu != 0 {
		if m := cac / rpu; m != 0 {
			d = m
		}
	}
	return growth / d
}

// RevenueBreakdown splits mrr into the fixed new/existing/upgrade shares
// used by the revenue chart.
func RevenueBreakdown(mrr float64) []model.RevenueSlice {
	return []model.RevenueSlice{
		{Name: "New Customers", Value: math.Floor(mrr * 0.4)},
		{Name: "Existing Customers", Value: math.Floor(mrr * 0.5)},
		{Name: "Upgrades", Value: math.Floor(mrr * 0.1)},
	}
}

// Clamp bounds a progress percentage to [0, 100]. NaN becomes 0.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

// Round1 rounds v to one decimal place with halves rounded up.
func Round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// ratio returns num/den, or 0 when den is zero.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
