package theme

import "testing"

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Errorf("ByName(tokyo-night) = %q", got)
	}
	if got := ByName("solarized").Name; got != "flexoki-dark" {
		t.Errorf("unknown theme = %q, want flexoki-dark", got)
	}
	if Known("solarized") || !Known("terminal") {
		t.Error("Known disagrees with All")
	}
}

func TestCategoryColorFallback(t *testing.T) {
	th := FlexokiDark
	if th.CategoryColor("Salaries") != th.Blue {
		t.Error("Salaries should be blue")
	}
	if th.CategoryColor("Legal") != th.TextMuted {
		t.Error("unknown category should use the fallback color")
	}
	if th.HealthColor("Critical") != th.Red || th.HealthColor("Healthy") != th.GreenBright {
		t.Error("health colors changed")
	}
}
