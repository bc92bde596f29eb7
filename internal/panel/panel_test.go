package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/saastrack/internal/config"
	"github.com/theirongolddev/saastrack/internal/metrics"
	"github.com/theirongolddev/saastrack/internal/model"
)

func acme() model.BusinessSnapshot {
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

func cardByTitle(t *testing.T, cards []Card, title string) Card {
	t.Helper()
	for _, c := range cards {
		if c.Title == title {
			return c
		}
	}
	t.Fatalf("card %q not found", title)
	return Card{}
}

func TestCards_ReferenceValues(t *testing.T) {
	s := acme()
	cards := Cards(s, metrics.Compute(s), config.DefaultHeuristics())
	require.Len(t, cards, 12)

	assert.Equal(t, TitleMRR, cards[0].Title)
	assert.Equal(t, TitlePayback, cards[11].Title)

	assert.Equal(t, "$500.00", cardByTitle(t, cards, TitleMRR).Value)
	assert.Equal(t, "$5,000", cardByTitle(t, cards, TitleMRR).Target)
	assert.Equal(t, "$60,000", cardByTitle(t, cards, TitleARR).Target)
	assert.Equal(t, "$10", cardByTitle(t, cards, TitleCAC).Value)
	assert.Equal(t, "120.0:1", cardByTitle(t, cards, TitleLTVCAC).Value)
	assert.Equal(t, "3:1", cardByTitle(t, cards, TitleLTVCAC).Target)
	assert.Equal(t, "110%", cardByTitle(t, cards, TitleNRR).Target)
	assert.Equal(t, "2 months", cardByTitle(t, cards, TitlePayback).Value)
	assert.Equal(t, "5.0x", cardByTitle(t, cards, TitleEfficient).Value)
	assert.Equal(t, ToneGood, cardByTitle(t, cards, TitleRetention).Tone)
}

func TestCards_Sentinels(t *testing.T) {
	s := model.BusinessSnapshot{Name: "Empty", GoalUsers: 1000, RevenueGoal: 10000}
	cards := Cards(s, metrics.Compute(s), config.DefaultHeuristics())

	assert.Equal(t, "Not set", cardByTitle(t, cards, TitleCAC).Value)
	assert.Equal(t, "N/A", cardByTitle(t, cards, TitleLTVCAC).Value)
	assert.Equal(t, "N/A", cardByTitle(t, cards, TitlePayback).Value)
	assert.Equal(t, "0", cardByTitle(t, cards, TitleDAU).Value)
}

func TestFilter(t *testing.T) {
	s := acme()
	cards := Cards(s, metrics.Compute(s), config.DefaultHeuristics())

	assert.Len(t, Filter(nil).Apply(cards), 12)

	got := Filter{"revenue", " LTV "}.Apply(cards)
	titles := make([]string, len(got))
	for i, c := range got {
		titles[i] = c.Title
	}
	assert.Equal(t, []string{TitleMRR, TitleARR, TitleRPU, TitleLTVCAC, TitleNRR}, titles)
}

func TestInsights_NoHistory(t *testing.T) {
	s := acme()
	ins := Insights(s, metrics.Compute(s))
	require.Len(t, ins, 6)

	assert.Equal(t, "90 months", ins[0].Value)
	assert.Equal(t, "$5.00", ins[1].Value)
	assert.Nil(t, ins[1].Trend)
	assert.Equal(t, "10%", ins[2].Value)
	assert.Equal(t, "Target growth rate", ins[2].Description)
	require.NotNil(t, ins[3].Badge)
	assert.Equal(t, "Excellent Growth", ins[3].Badge.Text)
	require.NotNil(t, ins[4].Badge)
	assert.Equal(t, "Good", ins[4].Badge.Text)
	assert.Equal(t, "N/A", ins[5].Value)
	assert.Equal(t, "No historical data", ins[5].Description)
}

func TestInsights_WithHistory(t *testing.T) {
	s := acme()
	s.History = []model.MonthPoint{
		{Month: "Jan", Users: 80, Revenue: 400},
		{Month: "Feb", Users: 100, Revenue: 500},
	}
	ins := Insights(s, metrics.Compute(s))

	assert.Equal(t, "25%", ins[2].Value)
	assert.Equal(t, "Actual last month", ins[2].Description)
	require.NotNil(t, ins[2].Trend)
	assert.Equal(t, 25.0, *ins[2].Trend)
	assert.Equal(t, "+25.0%", ins[5].Value)
	require.NotNil(t, ins[1].Trend)
}

func TestTimeToGoalText(t *testing.T) {
	assert.Equal(t, "Set growth rate", TimeToGoalText(model.MetricsReport{}))
	assert.Equal(t, "Goal reached", TimeToGoalText(model.MetricsReport{GoalReachable: true, MonthsToGoal: -3}))
	assert.Equal(t, "1 month", TimeToGoalText(model.MetricsReport{GoalReachable: true, MonthsToGoal: 1}))
}

func TestTimeToGoalText_NegligibleGrowthIsNotReached(t *testing.T) {
	s := acme()
	s.CurrentUsers = 1
	s.GoalUsers = 2_000_000_000
	s.GrowthRate = 1e-12

	r := metrics.Compute(s)
	assert.False(t, r.GoalReachable)
	assert.Equal(t, "Set growth rate", TimeToGoalText(r))
}

func TestBadges(t *testing.T) {
	assert.Equal(t, "No Growth", GrowthBadge(model.GrowthNone).Text)
	assert.Equal(t, "Slow Growth", GrowthBadge(model.GrowthSlow).Text)
	assert.Equal(t, "High Risk", ChurnBadge(model.ChurnHighRisk).Text)
	assert.Equal(t, ToneWarn, ChurnBadge(model.ChurnAverage).Tone)
}

func TestGauges(t *testing.T) {
	s := acme()
	gs := Gauges(s, metrics.Compute(s))
	require.Len(t, gs, 4)

	assert.Equal(t, "100 / 1,000", gs[0].Value)
	assert.Equal(t, "900 remaining", gs[0].Note)
	assert.Equal(t, "$500 / $5,000", gs[1].Value)
	assert.Equal(t, "$4,500 to goal", gs[1].Note)
	assert.Equal(t, "95.0 / 100", gs[2].Value)
	assert.Equal(t, "9.5 / 20", gs[3].Value)
	assert.Equal(t, ToneWarn, gs[2].Tone)
	assert.Equal(t, ToneNeutral, gs[0].Tone)
}

func TestShareText(t *testing.T) {
	s := acme()
	s.CurrentUsers = 1235
	s.GoalUsers = 5000

	want := "🚀 Acme Progress Update!\n\n📊 Current Users: 1,235\n🎯 Goal: 5,000 users\n📈 Progress: 25%\n\n#SaaS #Growth #Startup"
	assert.Equal(t, want, ShareText(s))
}

func TestShareText_ZeroGoal(t *testing.T) {
	s := acme()
	s.GoalUsers = 0
	assert.Contains(t, ShareText(s), "📈 Progress: 0%")
}
