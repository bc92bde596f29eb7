package metrics

import (
	"fmt"
	"math"

	"github.com/theirongolddev/saastrack/internal/model"
)

// ComputeTrend returns the percent change between the last two history
// entries, rounded to one decimal. A series shorter than two entries gives 0,
// and so does a pair where either month is zero (an unfilled row).
func ComputeTrend(history []model.MonthPoint) model.Trend {
	if len(history) < 2 {
		return model.Trend{}
	}
	last := history[len(history)-1]
	prev := history[len(history)-2]
	return model.Trend{
		UserPct:    Round1(trendPct(float64(last.Users), float64(prev.Users))),
		RevenuePct: Round1(trendPct(last.Revenue, prev.Revenue)),
	}
}

func trendPct(cur, prev float64) float64 {
	if cur <= 0 || prev <= 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}

// ProjectForward returns a copy of history followed by months compounded
// entries using the built-in revenue premium.
func ProjectForward(history []model.MonthPoint, growth float64, months int) []model.MonthPoint {
	return Default().ProjectForward(history, growth, months)
}

// ProjectForward returns a copy of history followed by months projected
// entries. Users compound at growth percent and revenue at growth plus the
// configured premium. The input slice is never modified.
func (e Engine) ProjectForward(history []model.MonthPoint, growth float64, months int) []model.MonthPoint {
	out := make([]model.MonthPoint, len(history), len(history)+max(months, 0))
	copy(out, history)
	if len(history) == 0 || months <= 0 {
		return out
	}

	userFactor := 1 + growth/100
	revenueFactor := 1 + (growth+e.h.ForecastRevenuePremium)/100

	prev := history[len(history)-1]
	for i := 1; i <= months; i++ {
		next := model.MonthPoint{
			Month:     fmt.Sprintf("Proj %d", i),
			Users:     int(math.Floor(float64(prev.Users) * userFactor)),
			Revenue:   math.Floor(prev.Revenue * revenueFactor),
			Projected: true,
		}
		out = append(out, next)
		prev = next
	}
	return out
}

// MonthOverMonth annotates each entry with its growth versus the previous
// entry. The first entry and zero-based changes report 0.
func MonthOverMonth(history []model.MonthPoint) []model.MonthChange {
	out := make([]model.MonthChange, len(history))
	for i, p := range history {
		out[i].MonthPoint = p
		if i == 0 {
			continue
		}
		prev := history[i-1]
		out[i].UserGrowthPct = Round1(pctChange(float64(p.Users), float64(prev.Users)))
		out[i].RevenueGrowthPct = Round1(pctChange(p.Revenue, prev.Revenue))
	}
	return out
}

func pctChange(cur, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}
