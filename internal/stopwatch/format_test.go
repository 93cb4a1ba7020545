package stopwatch

import (
	"errors"
	"testing"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{35, "00:00:35"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3599, "00:59:59"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{86399, "23:59:59"},
		{360000, "100:00:00"},
		{-5, "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatSeconds(tt.seconds); got != tt.want {
				t.Errorf("FormatSeconds(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, s := range []int64{0, 59, 60, 3599, 3600, 86399} {
		formatted := FormatSeconds(s)
		parsed, err := ParseSeconds(formatted)
		if err != nil {
			t.Fatalf("ParseSeconds(%q) failed: %v", formatted, err)
		}
		if got := FormatSeconds(parsed); got != formatted {
			t.Errorf("round trip of %d: got %q, want %q", s, got, formatted)
		}
		if parsed != s {
			t.Errorf("ParseSeconds(%q) = %d, want %d", formatted, parsed, s)
		}
	}
}

func TestParseSecondsInvalid(t *testing.T) {
	inputs := []string{
		"",
		"12:30",
		"00:60:00",
		"00:00:60",
		"aa:00:00",
		"00:-1:00",
		"0:00:00",
		"00:5:00",
		"00:00:00:00",
		"00:+1:00",
		"+0:00:00",
		"-1:00:00",
		"00:0 :00",
		"9999999999999999999:00:00",
		"2562047788015215:00:00",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseSeconds(in)
			if !errors.Is(err, ErrInvalidDuration) {
				t.Errorf("ParseSeconds(%q) error = %v, want ErrInvalidDuration", in, err)
			}
		})
	}
}

func TestParseSecondsLargeHours(t *testing.T) {
	got, err := ParseSeconds("2562047788015214:59:59")
	if err != nil {
		t.Fatalf("ParseSeconds failed: %v", err)
	}
	want := int64(2562047788015214)*3600 + 3599
	if got != want {
		t.Errorf("ParseSeconds = %d, want %d", got, want)
	}
}
