// Package validate checks model rules for problems the type system cannot
// rule out: out-of-range numbers, spans missing a start, and combinations
// the canonical text silently drops. Checks are grammar-derived, separate
// from rendering, which stays total and never judges its input.
package validate

import (
	"fmt"

	"github.com/Anastasialos/osmoh/internal/model"
)

// ─── Issues ───────────────────────────────────────────────────────────────────

// Severity ranks an issue. Errors describe rules whose canonical text is
// not a valid tag value; warnings flag text that parses but will surprise.
type Severity uint8

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Issue is one problem found in a rule list.
type Issue struct {
	RuleIndex int
	Field     string
	Severity  Severity
	Message   string
}

func (i Issue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("rules[%d]: %s: %s", i.RuleIndex, i.Severity, i.Message)
	}
	return fmt.Sprintf("rules[%d].%s: %s: %s", i.RuleIndex, i.Field, i.Severity, i.Message)
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == Error {
			return true
		}
	}
	return false
}

// ─── Checks ───────────────────────────────────────────────────────────────────

// Check inspects every rule and returns all issues found, in rule order.
// A nil result means the rules are clean.
func Check(rules model.Rules) []Issue {
	var c checker
	for i, r := range rules {
		c.rule(i, r)
	}
	return c.issues
}

type checker struct {
	issues []Issue
}

func (c *checker) add(rule int, field string, sev Severity, format string, args ...any) {
	c.issues = append(c.issues, Issue{
		RuleIndex: rule,
		Field:     field,
		Severity:  sev,
		Message:   fmt.Sprintf(format, args...),
	})
}

func (c *checker) rule(idx int, r model.RuleSequence) {
	if r.IsEmpty() && !r.HasComment() && r.Modifier == model.ModifierDefaultOpen && !r.HasModifierComment() {
		c.add(idx, "", Error, "rule selects nothing")
		return
	}

	if r.IsTwentyFourHours() && (r.HasYears() || r.HasMonths() || r.HasWeeks() || r.HasWeekdays() || r.HasTimes()) {
		c.add(idx, "", Warning, "selectors are dropped from the canonical text of an around-the-clock rule")
	}
	if r.HasComment() && !r.IsTwentyFourHours() &&
		(r.HasYears() || r.HasMonths() || r.HasWeeks() || r.HasWeekdays() || r.HasTimes()) {
		c.add(idx, "comment", Warning, "selectors are dropped from the canonical text of a comment rule")
	}
	if r.Modifier == model.ModifierComment && !r.HasModifierComment() {
		c.add(idx, "modifier", Warning, "comment modifier without a comment renders as nothing")
	}
	switch r.Separator {
	case "", ";", ",", "||":
	default:
		c.add(idx, "separator", Error, "separator must be %q, %q, or %q", ";", ",", "||")
	}

	for j, y := range r.Years {
		c.yearRange(idx, fmt.Sprintf("years[%d]", j), y)
	}
	for j, m := range r.Months {
		c.monthdayRange(idx, fmt.Sprintf("months[%d]", j), m)
	}
	for j, w := range r.Weeks {
		c.weekRange(idx, fmt.Sprintf("weeks[%d]", j), w)
	}
	for j, h := range r.Weekdays.Holidays {
		c.holiday(idx, fmt.Sprintf("holidays[%d]", j), h)
	}
	for j, w := range r.Weekdays.Ranges {
		c.weekdayRange(idx, fmt.Sprintf("weekdays[%d]", j), w)
	}
	for j, ts := range r.Times {
		c.timespan(idx, fmt.Sprintf("times[%d]", j), ts)
	}
}

// ─── Selector checks ──────────────────────────────────────────────────────────

func (c *checker) timespan(idx int, field string, ts model.Timespan) {
	if !ts.HasStart() && !ts.Start.IsEvent() {
		if ts.HasEnd() || ts.End.IsEvent() {
			c.add(idx, field, Error, "span has an end but no start")
		} else {
			c.add(idx, field, Error, "span has no start")
		}
	}
	if ts.HasEnd() && ts.HasPlus() {
		c.add(idx, field, Warning, "open-ended marker on a closed span renders as written but rarely parses")
	}
	if ts.HasPeriod() && ts.IsOpen() {
		c.add(idx, field+".period", Warning, "period is dropped from an open span")
	}
	c.timeValue(idx, field+".start", ts.Start)
	c.timeValue(idx, field+".end", ts.End)
	c.timeValue(idx, field+".period", ts.Period)
}

func (c *checker) timeValue(idx int, field string, t model.Time) {
	if !t.HasValue() || t.IsEvent() {
		return
	}
	hours, minutes := t.Hours(), t.Minutes()
	if hours < 0 || minutes < 0 {
		c.add(idx, field, Error, "time is negative")
		return
	}
	if hours > 48 {
		c.add(idx, field, Error, "hour %d is outside 0-48", hours)
	}
}

func (c *checker) yearRange(idx int, field string, y model.YearRange) {
	if y.HasStart() && (y.Start < 1000 || y.Start > 9999) {
		c.add(idx, field+".start", Error, "year %d is not four digits", y.Start)
	}
	if y.HasEnd() && (y.End < 1000 || y.End > 9999) {
		c.add(idx, field+".end", Error, "year %d is not four digits", y.End)
	}
	if y.HasStart() && y.HasEnd() && y.End < y.Start {
		c.add(idx, field, Warning, "year range %d-%d runs backwards", y.Start, y.End)
	}
	if y.Period < 0 {
		c.add(idx, field+".period", Error, "period must be positive")
	}
}

func (c *checker) weekRange(idx int, field string, w model.WeekRange) {
	if w.HasStart() && (w.Start < 1 || w.Start > 53) {
		c.add(idx, field+".start", Error, "week %d is outside 1-53", w.Start)
	}
	if w.HasEnd() && (w.End < 1 || w.End > 53) {
		c.add(idx, field+".end", Error, "week %d is outside 1-53", w.End)
	}
	if w.HasStart() && w.HasEnd() && w.End < w.Start {
		c.add(idx, field, Warning, "week range %d-%d runs backwards", w.Start, w.End)
	}
	if w.Period < 0 {
		c.add(idx, field+".period", Error, "period must be positive")
	}
}

func (c *checker) monthdayRange(idx int, field string, m model.MonthdayRange) {
	c.monthDay(idx, field+".start", m.Start)
	c.monthDay(idx, field+".end", m.End)
	if !m.HasStart() && m.HasEnd() {
		c.add(idx, field, Error, "range has an end but no start")
	}
	if m.HasPlus() && m.HasEnd() {
		c.add(idx, field, Warning, "open-ended marker is dropped when the range has an end")
	}
	if m.Period < 0 {
		c.add(idx, field+".period", Error, "period must be positive")
	}
}

func (c *checker) monthDay(idx int, field string, m model.MonthDay) {
	if m.HasDayNum() && (m.DayNum < 1 || m.DayNum > 31) {
		c.add(idx, field+".day", Error, "day %d is outside 1-31", m.DayNum)
	}
	if m.HasYear() && (m.Year < 1000 || m.Year > 9999) {
		c.add(idx, field+".year", Error, "year %d is not four digits", m.Year)
	}
	if m.IsVariable() && m.HasMonth() {
		c.add(idx, field, Warning, "month is dropped when a variable date is set")
	}
}

func (c *checker) holiday(idx int, field string, h model.Holiday) {
	if h.IsPlural() && h.Offset != 0 {
		c.add(idx, field+".offset", Warning, "day offsets are dropped from public holidays")
	}
}

func (c *checker) weekdayRange(idx int, field string, w model.WeekdayRange) {
	if !w.HasStart() {
		c.add(idx, field+".start", Error, "weekday range has no start day")
	}
	if w.HasEnd() && (w.HasNth() || w.HasOffset()) {
		c.add(idx, field, Warning, "nth and offset qualifiers are dropped when the range has an end")
	}
	for k, n := range w.Nths {
		nf := fmt.Sprintf("%s.nth[%d]", field, k)
		if n.HasStart() && (n.Start < model.First || n.Start > model.Fifth) {
			c.add(idx, nf, Error, "nth ordinal is outside 1-5")
		}
		if n.HasEnd() && (n.End < model.First || n.End > model.Fifth) {
			c.add(idx, nf, Error, "nth ordinal is outside 1-5")
		}
		if !n.HasStart() {
			c.add(idx, nf, Error, "nth entry has no start ordinal")
		}
	}
}
