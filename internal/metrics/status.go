package metrics

import "github.com/theirongolddev/saastrack/internal/model"

// GrowthStatusFor buckets a monthly growth percentage.
func GrowthStatusFor(growth float64) model.GrowthStatus {
	switch {
	case growth >= 10:
		return model.GrowthExcellent
	case growth >= 5:
		return model.GrowthGood
	case growth > 0:
		return model.GrowthSlow
	default:
		return model.GrowthNone
	}
}

// ChurnStatusFor buckets a monthly churn percentage.
func ChurnStatusFor(churn float64) model.ChurnStatus {
	switch {
	case churn <= 2:
		return model.ChurnExcellent
	case churn <= 5:
		return model.ChurnGood
	case churn <= 10:
		return model.ChurnAverage
	default:
		return model.ChurnHighRisk
	}
}
