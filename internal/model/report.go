package model

// GrowthStatus buckets the monthly growth rate.
type GrowthStatus string

// Growth status buckets.
const (
	GrowthExcellent GrowthStatus = "excellent"
	GrowthGood      GrowthStatus = "good"
	GrowthSlow      GrowthStatus = "slow"
	GrowthNone      GrowthStatus = "none"
)

// ChurnStatus buckets the monthly churn rate.
type ChurnStatus string

// Churn status buckets.
const (
	ChurnExcellent ChurnStatus = "excellent"
	ChurnGood      ChurnStatus = "good"
	ChurnAverage   ChurnStatus = "average"
	ChurnHighRisk  ChurnStatus = "high-risk"
)

// Trend holds month-over-month percent changes from the last two history entries.
type Trend struct {
	UserPct    float64 `json:"user_pct"`
	RevenuePct float64 `json:"revenue_pct"`
}

// MonthChange is one history entry with its change versus the previous entry.
type MonthChange struct {
	MonthPoint
	UserGrowthPct    float64 `json:"user_growth_pct"`
	RevenueGrowthPct float64 `json:"revenue_growth_pct"`
}

// RevenueSlice is one segment of the estimated revenue mix.
type RevenueSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MetricsReport holds every KPI derived from a snapshot. It has no identity of
// its own and is rebuilt on every computation.
type MetricsReport struct {
	RevenuePerUser          float64 `json:"revenue_per_user"`
	CustomerLifetimeValue   float64 `json:"customer_lifetime_value"`
	MonthlyRecurringRevenue float64 `json:"monthly_recurring_revenue"`
	AnnualRecurringRevenue  float64 `json:"annual_recurring_revenue"`
	NetRevenueRetention     float64 `json:"net_revenue_retention"`
	CustomerAcquisitionCost float64 `json:"customer_acquisition_cost"`
	LTVCACRatio             float64 `json:"ltv_cac_ratio"`
	DailyActiveUsers        int     `json:"daily_active_users"`
	WeeklyActiveUsers       int     `json:"weekly_active_users"`
	GrowthEfficiency        float64 `json:"growth_efficiency"`
	RetentionRate           float64 `json:"retention_rate"`
	PaybackPeriodMonths     int     `json:"payback_period_months"`

	// Progress values, clamped to [0,100].
	MRRProgress       float64 `json:"mrr_progress"`
	ARRProgress       float64 `json:"arr_progress"`
	RetentionProgress float64 `json:"retention_progress"`
	LTVCACProgress    float64 `json:"ltv_cac_progress"`
	NRRProgress       float64 `json:"nrr_progress"`
	UserProgress      float64 `json:"user_progress"`
	RevenueProgress   float64 `json:"revenue_progress"`
	RetentionGauge    float64 `json:"retention_gauge"`
	MomentumGauge     float64 `json:"momentum_gauge"`

	GrowthStatus     GrowthStatus `json:"growth_status"`
	ChurnStatus      ChurnStatus  `json:"churn_status"`
	LTVCACHealthy    bool         `json:"ltv_cac_healthy"`
	NRRHealthy       bool         `json:"nrr_healthy"`
	RetentionHealthy bool         `json:"retention_healthy"`

	ProjectedMRR     float64        `json:"projected_mrr"`
	GrowthMomentum   float64        `json:"growth_momentum"`
	RemainingUsers   int            `json:"remaining_users"`
	Trend            Trend          `json:"trend"`
	MonthsToGoal     int            `json:"months_to_goal"`
	GoalReachable    bool           `json:"goal_reachable"`
	RevenueBreakdown []RevenueSlice `json:"revenue_breakdown"`
}
