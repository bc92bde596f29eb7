package tui

import (
	"testing"

	"github.com/theirongolddev/saastrack/internal/model"
)

func TestSetupValuesRoundTrip(t *testing.T) {
	s := sampleSnapshot()
	v := SetupValuesFrom(s)
	if v.CurrentUsers != "100" || v.MonthlyRevenue != "500" || v.ChurnRate != "5" {
		t.Fatalf("SetupValuesFrom = %+v", v)
	}

	got, err := v.Apply(model.NewSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Acme" || got.CurrentUsers != 100 || got.RevenueGoal != 5000 || got.GrowthRate != 10 {
		t.Fatalf("Apply = %+v", got)
	}
}

func TestSetupValuesFromLeavesZerosBlank(t *testing.T) {
	v := SetupValuesFrom(model.BusinessSnapshot{})
	if v.CurrentUsers != "" || v.GoalUsers != "" || v.ChurnRate != "" {
		t.Fatalf("zero fields should be blank: %+v", v)
	}
}

func TestSetupValuesApplyParsesLooseInput(t *testing.T) {
	v := SetupValues{
		Name:           "  Acme  ",
		CurrentUsers:   "1,200",
		GoalUsers:      "5000",
		MonthlyRevenue: "$2,500.50",
		RevenueGoal:    "10000",
		ChurnRate:      "3%",
	}
	base := model.NewSnapshot()
	base.GrowthRate = 7
	got, err := v.Apply(base)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Acme" || got.CurrentUsers != 1200 || got.MonthlyRevenue != 2500.5 || got.ChurnRate != 3 {
		t.Fatalf("Apply = %+v", got)
	}
	if got.GrowthRate != 7 {
		t.Fatalf("blank growth should keep the base value, got %v", got.GrowthRate)
	}
}

func TestSetupValuesApplyRejectsGarbage(t *testing.T) {
	base := sampleSnapshot()
	got, err := SetupValues{Name: "x", CurrentUsers: "lots"}.Apply(base)
	if err == nil {
		t.Fatal("expected an error for a non-numeric user count")
	}
	if got.CurrentUsers != base.CurrentUsers {
		t.Fatal("a failed apply must return the base snapshot")
	}
}

func TestFormValidators(t *testing.T) {
	pos := requirePositive(parseAmount)
	for in, ok := range map[string]bool{"10": true, "0": false, "": false, "abc": false, "$5": true} {
		if err := pos(in); (err == nil) != ok {
			t.Errorf("requirePositive(%q) err=%v, want ok=%v", in, err, ok)
		}
	}
	if optionalRate("") != nil || optionalRate("4.5%") != nil || optionalRate("x") == nil {
		t.Error("optionalRate accepted or rejected the wrong input")
	}
	if requireText("  ") == nil {
		t.Error("requireText should reject blanks")
	}
}
