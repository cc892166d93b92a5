package format

import "testing"

func TestDuration(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "00:00"},
		{-5, "00:00"},
		{9, "00:09"},
		{59, "00:59"},
		{60, "01:00"},
		{212, "03:32"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3661, "1:01:01"},
		{7325, "2:02:05"},
		{36000, "10:00:00"},
	}

	for _, test := range tests {
		result := Duration(test.seconds)
		if result != test.expected {
			t.Errorf("Duration(%d) = %q, expected %q", test.seconds, result, test.expected)
		}
	}
}

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		title    string
		max      int
		expected string
	}{
		{"short", 100, "short"},
		{"exactly", 7, "exactly"},
		{"overlong title", 8, "overlong"},
		{"", 10, ""},
		{"anything", 0, ""},
		{"приклад з кирилицею", 7, "приклад"},
	}

	for _, test := range tests {
		result := TruncateTitle(test.title, test.max)
		if result != test.expected {
			t.Errorf("TruncateTitle(%q, %d) = %q, expected %q", test.title, test.max, result, test.expected)
		}
	}
}

func TestSize(t *testing.T) {
	if result := Size(52 * 1000 * 1000); result != "52 MB" {
		t.Errorf("Size(52MB) = %q, expected %q", result, "52 MB")
	}
}
