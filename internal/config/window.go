package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrInvalidTimeFormat indicates a date bound that matches no accepted form.
var ErrInvalidTimeFormat = errors.New("invalid time format (use duration, RFC3339, or YYYY-MM-DD)")

// Window resolves the configured date bounds into concrete instants.
// Nil bounds mean the side is open.
func (r RangeConfig) Window() (start, end *time.Time, err error) {
	if r.StartDate != "" {
		from, parseErr := parseTime(r.StartDate)
		if parseErr != nil {
			return nil, nil, parseErr
		}

		start = &from
	}

	if r.EndDate != "" {
		until, parseErr := parseTime(r.EndDate)
		if parseErr != nil {
			return nil, nil, parseErr
		}

		end = &until
	}

	return start, end, nil
}

func parseTime(s string) (time.Time, error) {
	// Try parsing as duration (e.g., "24h") relative to now.
	d, durationErr := time.ParseDuration(s)
	if durationErr == nil {
		return time.Now().Add(-d), nil
	}

	// Try RFC3339.
	parsedTime, rfc3339Err := time.Parse(time.RFC3339, s)
	if rfc3339Err == nil {
		return parsedTime, nil
	}

	// Try YYYY-MM-DD.
	parsedTime, dateOnlyErr := time.Parse(time.DateOnly, s)
	if dateOnlyErr == nil {
		return parsedTime, nil
	}

	return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTimeFormat, s)
}

// ParseLevel maps a log level name onto its slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level

	unmarshalErr := level.UnmarshalText([]byte(name))
	if unmarshalErr != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}

	return level, nil
}
