// Package validate decides whether a snapshot has the fields the dashboard
// needs before its metrics are meaningful, and cleans raw user input.
package validate

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/theirongolddev/saastrack/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// FieldError describes one missing or invalid required field.
type FieldError struct {
	Field   string // JSON name, e.g. "current_users"
	Label   string // form label
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Label, e.Message)
}

// Result lists every required field the snapshot is missing.
type Result struct {
	Fields []FieldError
}

// Complete reports whether every required field is present.
func (r Result) Complete() bool {
	return len(r.Fields) == 0
}

// MissingNames returns the JSON names of the missing fields in form order.
func (r Result) MissingNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Field
	}
	return names
}

// MissingLabels returns the form labels of the missing fields.
func (r Result) MissingLabels() []string {
	labels := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		labels[i] = f.Label
	}
	return labels
}

// Err returns nil for a complete result, otherwise an error naming the
// missing fields.
func (r Result) Err() error {
	if r.Complete() {
		return nil
	}
	errs := make([]error, len(r.Fields))
	for i, f := range r.Fields {
		errs[i] = f
	}
	return fmt.Errorf("incomplete snapshot: %w", errors.Join(errs...))
}

var labels = map[string]string{
	"name":            "Business Name",
	"current_users":   "Current Users",
	"goal_users":      "Goal Users",
	"monthly_revenue": "Monthly Revenue",
	"revenue_goal":    "Revenue Goal",
}

// Label returns the form label for a snapshot JSON field name.
func Label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

// Snapshot checks the required fields of s. It never fails on the other
// fields: churn, growth and history accept any value.
func Snapshot(s model.BusinessSnapshot) Result {
	err := validate.Struct(s)
	if err == nil {
		return Result{}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{Fields: []FieldError{{Field: "snapshot", Label: "Snapshot", Message: err.Error()}}}
	}

	res := Result{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		res.Fields = append(res.Fields, FieldError{
			Field:   fe.Field(),
			Label:   Label(fe.Field()),
			Message: validationMessage(fe),
		})
	}
	return res
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "nonblank":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	}
	return "is invalid"
}

// Input limits applied by Normalize. Derived values such as ARR stay well
// inside int64 and float64 range at these bounds.
const (
	MaxCount  = 1_000_000_000_000
	MaxAmount = 1e12
	MaxRate   = 1e4
)

// Normalize trims the name, replaces non-finite numbers with 0, floors
// negative counts and amounts at 0 and caps everything at the Max limits.
// Zero goals are left as they are.
func Normalize(s model.BusinessSnapshot) model.BusinessSnapshot {
	out := s.Clone()
	out.Name = strings.TrimSpace(out.Name)
	out.CurrentUsers = count(out.CurrentUsers)
	out.GoalUsers = count(out.GoalUsers)
	out.MonthlyRevenue = amount(out.MonthlyRevenue)
	out.RevenueGoal = amount(out.RevenueGoal)
	out.ChurnRate = rate(out.ChurnRate)
	out.GrowthRate = rate(out.GrowthRate)
	for i := range out.History {
		p := &out.History[i]
		p.Month = strings.TrimSpace(p.Month)
		p.Users = count(p.Users)
		p.Revenue = amount(p.Revenue)
	}
	return out
}

func count(n int) int {
	return min(max(n, 0), MaxCount)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func amount(v float64) float64 {
	return math.Min(math.Max(finite(v), 0), MaxAmount)
}

func rate(v float64) float64 {
	return math.Min(math.Max(finite(v), -MaxRate), MaxRate)
}
