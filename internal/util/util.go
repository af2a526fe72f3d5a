// Package util provides shared utilities: clock and event-name parsing,
// and an error collector for reporting every problem in one pass.
package util

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Anastasialos/osmoh/internal/model"
)

// ─── Clock Parsing ────────────────────────────────────────────────────────────

// ParseClock parses an "HH:MM" string into its hour and minute components.
// Hours past 24 are accepted, since extended times such as "26:00" mean
// early hours of the following day. Range checks beyond the text shape are
// the validator's job.
func ParseClock(s string) (hours, minutes int, err error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(m) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q: expected HH:MM", s)
	}
	hours, err = strconv.Atoi(h)
	if err != nil || hours < 0 {
		return 0, 0, fmt.Errorf("invalid clock time %q: expected HH:MM", s)
	}
	minutes, err = strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, 0, fmt.Errorf("invalid clock time %q: expected HH:MM", s)
	}
	return hours, minutes, nil
}

// ─── Event Names ──────────────────────────────────────────────────────────────

// ParseEvent maps an event name to its model value. The second return
// reports whether the name is a known event.
func ParseEvent(s string) (model.Event, bool) {
	switch s {
	case "sunrise":
		return model.Sunrise, true
	case "sunset":
		return model.Sunset, true
	case "dawn":
		return model.Dawn, true
	case "dusk":
		return model.Dusk, true
	}
	return model.EventNone, false
}

// ─── Error Helpers ────────────────────────────────────────────────────────────

// MultiError collects multiple errors and presents them as one.
type MultiError struct {
	Errors []error
}

// Add records err; nil errors are ignored.
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// Addf records a formatted error.
func (m *MultiError) Addf(format string, args ...any) {
	m.Errors = append(m.Errors, fmt.Errorf(format, args...))
}

// Err returns the collector itself when it holds errors, nil otherwise.
func (m *MultiError) Err() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}

func (m *MultiError) Error() string {
	msgs := make([]string, len(m.Errors))
	for i, e := range m.Errors {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}
