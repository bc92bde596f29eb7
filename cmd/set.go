package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/saastrack/internal/cli"
	"github.com/theirongolddev/saastrack/internal/validate"

	"github.com/spf13/cobra"
)

var setFlags struct {
	name        string
	users       int
	goalUsers   int
	revenue     float64
	revenueGoal float64
	churn       float64
	growth      float64
}

var setFieldFlags = []string{"name", "users", "goal-users", "revenue", "revenue-goal", "churn", "growth"}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Update snapshot fields from flags",
	Example: `  saastrack set --users 420 --revenue 3150
  saastrack set --churn 4.5 --growth 12`,
	RunE: runSet,
}

func init() {
	f := setCmd.Flags()
	f.StringVar(&setFlags.name, "name", "", "Business name")
	f.IntVar(&setFlags.users, "users", 0, "Current users")
	f.IntVar(&setFlags.goalUsers, "goal-users", 0, "User goal")
	f.Float64Var(&setFlags.revenue, "revenue", 0, "Monthly revenue in dollars")
	f.Float64Var(&setFlags.revenueGoal, "revenue-goal", 0, "Monthly revenue goal in dollars")
	f.Float64Var(&setFlags.churn, "churn", 0, "Monthly churn rate in percent")
	f.Float64Var(&setFlags.growth, "growth", 0, "Monthly growth rate in percent")
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, _ []string) error {
	changed := cmd.Flags().Changed
	anySet := false
	for _, name := range setFieldFlags {
		anySet = anySet || changed(name)
	}
	if !anySet {
		return errors.New("nothing to set: pass at least one field flag (see --help)")
	}

	for _, neg := range []struct {
		flag string
		v    float64
	}{
		{"users", float64(setFlags.users)},
		{"goal-users", float64(setFlags.goalUsers)},
		{"revenue", setFlags.revenue},
		{"revenue-goal", setFlags.revenueGoal},
	} {
		if changed(neg.flag) && neg.v < 0 {
			return fmt.Errorf("--%s must not be negative", neg.flag)
		}
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	s, err := ws.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	if changed("name") {
		s.Name = setFlags.name
	}
	if changed("users") {
		s.CurrentUsers = setFlags.users
	}
	if changed("goal-users") {
		s.GoalUsers = setFlags.goalUsers
	}
	if changed("revenue") {
		s.MonthlyRevenue = setFlags.revenue
	}
	if changed("revenue-goal") {
		s.RevenueGoal = setFlags.revenueGoal
	}
	if changed("churn") {
		s.ChurnRate = setFlags.churn
	}
	if changed("growth") {
		s.GrowthRate = setFlags.growth
	}

	s = validate.Normalize(s)
	rev, err := ws.SaveSnapshot(s)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	log.Info().Str("revision", rev).Msg("snapshot updated")

	fmt.Println()
	fmt.Print(cli.RenderKeyValues("Saved", [][2]string{
		{validate.Label("name"), s.Name},
		{validate.Label("current_users"), cli.FormatNumber(int64(s.CurrentUsers))},
		{validate.Label("goal_users"), cli.FormatNumber(int64(s.GoalUsers))},
		{validate.Label("monthly_revenue"), cli.FormatCurrency(s.MonthlyRevenue)},
		{validate.Label("revenue_goal"), cli.FormatCurrency(s.RevenueGoal)},
		{"Churn Rate", cli.FormatPercent(s.ChurnRate)},
		{"Growth Rate", cli.FormatPercent(s.GrowthRate)},
	}))
	fmt.Println()
	warnIncomplete(s)
	return nil
}
