package daemon

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/theirongolddev/saastrack/internal/model"
)

// reportMetrics exports the latest report as Prometheus gauges.
type reportMetrics struct {
	kpi        *prometheus.GaugeVec
	progress   *prometheus.GaugeVec
	polls      prometheus.Counter
	pollErrors prometheus.Counter
}

func newReportMetrics(reg prometheus.Registerer) *reportMetrics {
	m := &reportMetrics{
		kpi: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "saastrack_kpi",
			Help: "Latest value of each derived business KPI.",
		}, []string{"metric"}),
		progress: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "saastrack_progress",
			Help: "Goal progress percentages, clamped to [0,100].",
		}, []string{"metric"}),
		polls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "saastrack_polls_total",
			Help: "Workspace polls performed by the daemon.",
		}),
		pollErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "saastrack_poll_errors_total",
			Help: "Workspace polls that failed.",
		}),
	}
	reg.MustRegister(m.kpi, m.progress, m.polls, m.pollErrors)
	return m
}

func (m *reportMetrics) observe(r model.MetricsReport) {
	kpis := map[string]float64{
		"revenue_per_user":          r.RevenuePerUser,
		"customer_lifetime_value":   r.CustomerLifetimeValue,
		"monthly_recurring_revenue": r.MonthlyRecurringRevenue,
		"annual_recurring_revenue":  r.AnnualRecurringRevenue,
		"net_revenue_retention":     r.NetRevenueRetention,
		"customer_acquisition_cost": r.CustomerAcquisitionCost,
		"ltv_cac_ratio":             r.LTVCACRatio,
		"daily_active_users":        float64(r.DailyActiveUsers),
		"weekly_active_users":       float64(r.WeeklyActiveUsers),
		"growth_efficiency":         r.GrowthEfficiency,
		"retention_rate":            r.RetentionRate,
		"payback_period_months":     float64(r.PaybackPeriodMonths),
		"projected_mrr":             r.ProjectedMRR,
		"growth_momentum":           r.GrowthMomentum,
		"remaining_users":           float64(r.RemainingUsers),
	}
	for name, v := range kpis {
		m.kpi.WithLabelValues(name).Set(v)
	}

	progress := map[string]float64{
		"mrr":             r.MRRProgress,
		"arr":             r.ARRProgress,
		"retention":       r.RetentionProgress,
		"ltv_cac":         r.LTVCACProgress,
		"nrr":             r.NRRProgress,
		"users":           r.UserProgress,
		"revenue":         r.RevenueProgress,
		"retention_gauge": r.RetentionGauge,
		"momentum_gauge":  r.MomentumGauge,
	}
	for name, v := range progress {
		m.progress.WithLabelValues(name).Set(v)
	}
}
