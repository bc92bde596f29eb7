package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/saastrack/internal/model"
	"github.com/theirongolddev/saastrack/internal/validate"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the setup form's raw text inputs.
type SetupValues struct {
	Name           string
	CurrentUsers   string
	GoalUsers      string
	MonthlyRevenue string
	RevenueGoal    string
	ChurnRate      string
	GrowthRate     string
}

// SetupValuesFrom pre-fills the form from an existing snapshot. Zero values
// are left blank so the placeholders show.
func SetupValuesFrom(s model.BusinessSnapshot) SetupValues {
	v := SetupValues{Name: s.Name}
	if s.CurrentUsers > 0 {
		v.CurrentUsers = strconv.Itoa(s.CurrentUsers)
	}
	if s.GoalUsers > 0 {
		v.GoalUsers = strconv.Itoa(s.GoalUsers)
	}
	if s.MonthlyRevenue > 0 {
		v.MonthlyRevenue = formatInput(s.MonthlyRevenue)
	}
	if s.RevenueGoal > 0 {
		v.RevenueGoal = formatInput(s.RevenueGoal)
	}
	if s.ChurnRate != 0 {
		v.ChurnRate = formatInput(s.ChurnRate)
	}
	if s.GrowthRate != 0 {
		v.GrowthRate = formatInput(s.GrowthRate)
	}
	return v
}

// Apply writes the form values onto base. Blank rates leave base unchanged.
func (v SetupValues) Apply(base model.BusinessSnapshot) (model.BusinessSnapshot, error) {
	s := base.Clone()
	s.Name = strings.TrimSpace(v.Name)

	var errs []error
	var err error
	if s.CurrentUsers, err = parseCount(v.CurrentUsers); err != nil {
		errs = append(errs, fmt.Errorf("current users: %w", err))
	}
	if s.GoalUsers, err = parseCount(v.GoalUsers); err != nil {
		errs = append(errs, fmt.Errorf("goal users: %w", err))
	}
	if s.MonthlyRevenue, err = parseAmount(v.MonthlyRevenue); err != nil {
		errs = append(errs, fmt.Errorf("monthly revenue: %w", err))
	}
	if s.RevenueGoal, err = parseAmount(v.RevenueGoal); err != nil {
		errs = append(errs, fmt.Errorf("revenue goal: %w", err))
	}
	if strings.TrimSpace(v.ChurnRate) != "" {
		if s.ChurnRate, err = parseRate(v.ChurnRate); err != nil {
			errs = append(errs, fmt.Errorf("churn rate: %w", err))
		}
	}
	if strings.TrimSpace(v.GrowthRate) != "" {
		if s.GrowthRate, err = parseRate(v.GrowthRate); err != nil {
			errs = append(errs, fmt.Errorf("growth rate: %w", err))
		}
	}
	if len(errs) > 0 {
		return base, errors.Join(errs...)
	}
	return validate.Normalize(s), nil
}

// NewSetupForm builds the form that collects the required snapshot fields.
// The TUI embeds it; the setup command runs it standalone.
func NewSetupForm(vals *SetupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to saastrack").
				Description("A few numbers are needed before the dashboard can compute your metrics."),
			huh.NewInput().
				Title(validate.Label("name")).
				Placeholder("Acme Analytics").
				Value(&vals.Name).
				Validate(requireText),
		).Title("Business"),
		huh.NewGroup(
			huh.NewInput().
				Title(validate.Label("current_users")).
				Placeholder("100").
				Value(&vals.CurrentUsers).
				Validate(requirePositive(parseCountF)),
			huh.NewInput().
				Title(validate.Label("goal_users")).
				Placeholder("1000").
				Value(&vals.GoalUsers).
				Validate(requirePositive(parseCountF)),
		).Title("Users"),
		huh.NewGroup(
			huh.NewInput().
				Title(validate.Label("monthly_revenue")).
				Description("Monthly recurring revenue in dollars").
				Placeholder("500").
				Value(&vals.MonthlyRevenue).
				Validate(requirePositive(parseAmount)),
			huh.NewInput().
				Title(validate.Label("revenue_goal")).
				Placeholder("10000").
				Value(&vals.RevenueGoal).
				Validate(requirePositive(parseAmount)),
		).Title("Revenue"),
		huh.NewGroup(
			huh.NewInput().
				Title("Churn Rate (%)").
				Description("Optional. Monthly share of users lost.").
				Placeholder("5").
				Value(&vals.ChurnRate).
				Validate(optionalRate),
			huh.NewInput().
				Title("Growth Rate (%)").
				Description("Optional. Expected monthly user growth.").
				Placeholder("10").
				Value(&vals.GrowthRate).
				Validate(optionalRate),
		).Title("Rates"),
	).WithShowHelp(true)
}

func requireText(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func requirePositive(parse func(string) (float64, error)) func(string) error {
	return func(s string) error {
		v, err := parse(s)
		if err != nil {
			return err
		}
		if v <= 0 {
			return errors.New("must be greater than 0")
		}
		return nil
	}
}

func optionalRate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := parseRate(s)
	return err
}

func parseCount(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return n, nil
}

func parseCountF(s string) (float64, error) {
	n, err := parseCount(s)
	return float64(n), err
}

func parseAmount(s string) (float64, error) {
	s = strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), "$")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

func parseRate(s string) (float64, error) {
	return parseAmount(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

func formatInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
