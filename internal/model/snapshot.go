// Package model defines domain types for saastrack snapshots and reports.
package model

// MonthPoint is one entry of the monthly history series.
type MonthPoint struct {
	Month     string  `json:"month" yaml:"month" toml:"month"`
	Users     int     `json:"users" yaml:"users" toml:"users"`
	Revenue   float64 `json:"revenue" yaml:"revenue" toml:"revenue"`
	Projected bool    `json:"projected,omitempty" yaml:"projected,omitempty" toml:"projected,omitempty"`
}

// BusinessSnapshot holds the raw business inputs the metrics are derived from.
// Validation tags describe the fields the settings form treats as required;
// the metrics engine itself accepts any value.
type BusinessSnapshot struct {
	Name           string       `json:"name" yaml:"name" toml:"name" validate:"nonblank"`
	CurrentUsers   int          `json:"current_users" yaml:"current_users" toml:"current_users" validate:"gt=0"`
	GoalUsers      int          `json:"goal_users" yaml:"goal_users" toml:"goal_users" validate:"gt=0"`
	MonthlyRevenue float64      `json:"monthly_revenue" yaml:"monthly_revenue" toml:"monthly_revenue" validate:"gt=0"`
	RevenueGoal    float64      `json:"revenue_goal" yaml:"revenue_goal" toml:"revenue_goal" validate:"gt=0"`
	ChurnRate      float64      `json:"churn_rate" yaml:"churn_rate" toml:"churn_rate"`
	GrowthRate     float64      `json:"growth_rate" yaml:"growth_rate" toml:"growth_rate"`
	History        []MonthPoint `json:"history,omitempty" yaml:"history,omitempty" toml:"history,omitempty" validate:"-"`
}

// NewSnapshot returns the defaults a fresh settings form starts from.
func NewSnapshot() BusinessSnapshot {
	return BusinessSnapshot{
		GoalUsers:   1000,
		RevenueGoal: 10000,
	}
}

// Clone returns a copy that shares no history backing array with s.
func (s BusinessSnapshot) Clone() BusinessSnapshot {
	cp := s
	if s.History != nil {
		cp.History = make([]MonthPoint, len(s.History))
		copy(cp.History, s.History)
	}
	return cp
}
