package utils

import "testing"

func TestIsDate(t *testing.T) {
	valid := []string{"2024-01-01", "2099-12-31", "1999-02-28"}
	for _, s := range valid {
		if !IsDate(s) {
			t.Errorf("IsDate(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "2024-13-01", "2024-02-30", "01-01-2024", "2024/01/01", "today"}
	for _, s := range invalid {
		if IsDate(s) {
			t.Errorf("IsDate(%q) = true, want false", s)
		}
	}
}

func TestToday(t *testing.T) {
	if !IsDate(Today()) {
		t.Errorf("Today() = %q, not a valid ISO day", Today())
	}
}
