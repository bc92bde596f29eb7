package metrics

import "math"

// TimeToGoal estimates the months needed for current users to reach goal
// at a linear rate of current×growth/100 per month. ok is false when growth
// is not positive, there is no user base to grow from, or the estimate does
// not fit in an int. A negative result means the goal is already exceeded.
func TimeToGoal(current, goal int, growth float64) (months int, ok bool) {
	if growth <= 0 || current <= 0 {
		return 0, false
	}
	perMonth := float64(current) * growth / 100
	est := math.Ceil((float64(goal) - float64(current)) / perMonth)
	if math.IsNaN(est) || est >= math.MaxInt || est <= math.MinInt {
		return 0, false
	}
	return int(est), true
}
