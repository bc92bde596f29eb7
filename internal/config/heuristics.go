package config

// Heuristics holds the placeholder constants the metrics engine uses where a
// KPI cannot be measured from the snapshot alone.
type Heuristics struct {
	DAURatio               float64 // share of monthly users active on a given day
	WAURatio               float64 // share of monthly users active in a given week
	CACUserMultiple        float64 // CAC estimate as a multiple of revenue per user
	CACRevenueShare        float64 // CAC cap as a share of monthly revenue
	LifetimeMonths         float64 // multiplier applied to 1/churn for lifetime value
	NoChurnLifetimeMonths  float64 // assumed customer lifetime when churn is zero
	RetentionTarget        float64 // percent
	NRRTarget              float64 // percent
	LTVCACTarget           float64 // ratio
	ForecastRevenuePremium float64 // percentage points added to growth for revenue projection
	ForecastMonths         int
}

// DefaultHeuristics returns the built-in heuristic constants.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		DAURatio:               0.25,
		WAURatio:               0.65,
		CACUserMultiple:        2,
		CACRevenueShare:        0.4,
		LifetimeMonths:         12,
		NoChurnLifetimeMonths:  24,
		RetentionTarget:        95,
		NRRTarget:              110,
		LTVCACTarget:           3,
		ForecastRevenuePremium: 5,
		ForecastMonths:         6,
	}
}

// HeuristicOverrides allows user-defined values for individual heuristics.
type HeuristicOverrides struct {
	DAURatio               *float64 `toml:"dau_ratio,omitempty"`
	WAURatio               *float64 `toml:"wau_ratio,omitempty"`
	CACUserMultiple        *float64 `toml:"cac_user_multiple,omitempty"`
	CACRevenueShare        *float64 `toml:"cac_revenue_share,omitempty"`
	LifetimeMonths         *float64 `toml:"lifetime_months,omitempty"`
	NoChurnLifetimeMonths  *float64 `toml:"no_churn_lifetime_months,omitempty"`
	RetentionTarget        *float64 `toml:"retention_target,omitempty"`
	NRRTarget              *float64 `toml:"nrr_target,omitempty"`
	LTVCACTarget           *float64 `toml:"ltv_cac_target,omitempty"`
	ForecastRevenuePremium *float64 `toml:"forecast_revenue_premium,omitempty"`
}

// Apply returns h with every positive override applied.
func (o HeuristicOverrides) Apply(h Heuristics) Heuristics {
	set := func(dst *float64, v *float64) {
		if v != nil && *v > 0 {
			*dst = *v
		}
	}
	set(&h.DAURatio, o.DAURatio)
	set(&h.WAURatio, o.WAURatio)
	set(&h.CACUserMultiple, o.CACUserMultiple)
	set(&h.CACRevenueShare, o.CACRevenueShare)
	set(&h.LifetimeMonths, o.LifetimeMonths)
	set(&h.NoChurnLifetimeMonths, o.NoChurnLifetimeMonths)
	set(&h.RetentionTarget, o.RetentionTarget)
	set(&h.NRRTarget, o.NRRTarget)
	set(&h.LTVCACTarget, o.LTVCACTarget)
	set(&h.ForecastRevenuePremium, o.ForecastRevenuePremium)
	return h
}

// Heuristics returns the defaults with the file overrides and forecast horizon applied.
func (c Config) Heuristics() Heuristics {
	h := c.Overrides.Apply(DefaultHeuristics())
	if c.General.ForecastMonths > 0 {
		h.ForecastMonths = c.General.ForecastMonths
	}
	return h
}
