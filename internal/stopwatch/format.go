package stopwatch

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidDuration is returned when a string is not in HH:MM:SS form
var ErrInvalidDuration = errors.New("stopwatch: invalid HH:MM:SS duration")

// FormatSeconds renders s as zero-padded HH:MM:SS. Hours are not capped at 99.
func FormatSeconds(s int64) string {
	if s < 0 {
		s = 0
	}
	hours := s / 3600
	minutes := (s % 3600) / 60
	seconds := s % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// ParseSeconds converts an HH:MM:SS string produced by FormatSeconds back to seconds
func ParseSeconds(str string) (int64, error) {
	parts := strings.Split(strings.TrimSpace(str), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, str)
	}

	var fields [3]int64
	for i, part := range parts {
		if len(part) < 2 || (i > 0 && len(part) != 2) || !allDigits(part) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, str)
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, str)
		}
		fields[i] = n
	}

	hours, minutes, seconds := fields[0], fields[1], fields[2]
	if minutes >= 60 || seconds >= 60 || hours > maxHours {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, str)
	}

	return hours*3600 + minutes*60 + seconds, nil
}

// maxHours keeps hours*3600+3599 within int64
const maxHours = (math.MaxInt64 - 3599) / 3600

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
