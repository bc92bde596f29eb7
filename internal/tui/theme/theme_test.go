package theme

import (
	"reflect"
	"testing"
)

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("nope").Name; got != FlexokiDark.Name {
		t.Fatalf("ByName(nope) = %q, want %q", got, FlexokiDark.Name)
	}
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Fatalf("ByName(tokyo-night) = %q", got)
	}
}

func TestNamesMatchAll(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("Names() has %d entries, want %d", len(names), len(All))
	}
	for _, n := range names {
		if _, ok := Lookup(n); !ok {
			t.Errorf("Lookup(%q) failed", n)
		}
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(FlexokiDark.Name)
	SetActive("catppuccin-mocha")
	if Active.Name != "catppuccin-mocha" {
		t.Fatalf("Active = %q", Active.Name)
	}
}

func TestPalettesSetEveryRole(t *testing.T) {
	for _, th := range All {
		v := reflect.ValueOf(th)
		for i := range v.NumField() {
			if v.Field(i).String() == "" {
				t.Errorf("%s: %s is empty", th.Name, v.Type().Field(i).Name)
			}
		}
	}
}
