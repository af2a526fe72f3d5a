// Package render turns model values into the canonical opening_hours text.
// One exported function per entity appends to a strings.Builder; rendering
// is total, so empty entities produce empty or placeholder text instead of
// an error. Spacing, padding, and separator placement follow the published
// format exactly, which is what makes rendered values comparable and
// round-trippable.
package render

import (
	"strconv"
	"strings"

	"github.com/Anastasialos/osmoh/internal/model"
)

// ─── Shared helpers ───────────────────────────────────────────────────────────

// Padded writes n zero-padded to width digits; wider values print in full.
// Callers pass non-negative values.
func Padded(b *strings.Builder, n, width int) {
	s := strconv.Itoa(n)
	for i := len(s); i < width; i++ {
		b.WriteByte('0')
	}
	b.WriteString(s)
}

// DayOffset writes a signed day count: nothing for zero, otherwise an
// optional leading space, an explicit sign for positive values, the count,
// and a " day" suffix pluralized past one.
func DayOffset(b *strings.Builder, offset int, leadingSpace bool) {
	if offset == 0 {
		return
	}
	if leadingSpace {
		b.WriteByte(' ')
	}
	if offset > 0 {
		b.WriteByte('+')
	}
	b.WriteString(strconv.Itoa(offset))
	b.WriteString(" day")
	if abs(offset) > 1 {
		b.WriteByte('s')
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ─── Time ─────────────────────────────────────────────────────────────────────

// Time writes a single time: "HH:MM", a bare two-digit minute count, an
// event name, "(event±HH:MM)" for shifted events, or the "hh:mm"
// placeholder when the value is unset. Event components come from the
// placeholder resolution, so the written shift survives as-is.
func Time(b *strings.Builder, t model.Time) {
	if !t.HasValue() {
		b.WriteString("hh:mm")
		return
	}
	hours := t.Hours()
	minutes := t.Minutes()
	if t.IsEvent() {
		if t.IsEventOffset() {
			b.WriteByte('(')
			b.WriteString(t.Event().String())
			if hours < 0 || minutes < 0 {
				b.WriteByte('-')
			} else {
				b.WriteByte('+')
			}
			Padded(b, abs(hours), 2)
			b.WriteByte(':')
			Padded(b, abs(minutes), 2)
			b.WriteByte(')')
		} else {
			b.WriteString(t.Event().String())
		}
	} else if t.IsMinutes() {
		Padded(b, abs(minutes), 2)
	} else {
		Padded(b, abs(hours), 2)
		b.WriteByte(':')
		Padded(b, abs(minutes), 2)
	}
}

// Timespan writes "start", "start-end", or "start-end/period", with a
// trailing "+" when the open-ended marker is set.
func Timespan(b *strings.Builder, s model.Timespan) {
	Time(b, s.Start)
	if !s.IsOpen() {
		b.WriteByte('-')
		Time(b, s.End)
		if s.HasPeriod() {
			b.WriteByte('/')
			Time(b, s.Period)
		}
	}
	if s.HasPlus() {
		b.WriteByte('+')
	}
}

// Timespans writes a comma-joined time list.
func Timespans(b *strings.Builder, spans []model.Timespan) {
	for i, s := range spans {
		if i > 0 {
			b.WriteString(", ")
		}
		Timespan(b, s)
	}
}

// ─── Day selectors ────────────────────────────────────────────────────────────

// WeekdayName returns the two-letter weekday abbreviation, or "not-a-day"
// for the unset value.
func WeekdayName(wd model.Weekday) string {
	switch wd {
	case model.Sunday:
		return "Su"
	case model.Monday:
		return "Mo"
	case model.Tuesday:
		return "Tu"
	case model.Wednesday:
		return "We"
	case model.Thursday:
		return "Th"
	case model.Friday:
		return "Fr"
	case model.Saturday:
		return "Sa"
	}
	return "not-a-day"
}

// NthWeekdayOfMonth writes the bracket-interior form "1" or "2-4".
func NthWeekdayOfMonth(b *strings.Builder, n model.NthWeekdayOfMonth) {
	if n.HasStart() {
		b.WriteString(strconv.Itoa(int(n.Start)))
	}
	if n.HasEnd() {
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(int(n.End)))
	}
}

// WeekdayRange writes "Mo" or "Mo-Fr"; a range without an end may instead
// carry bracketed nth qualifiers and a day offset.
func WeekdayRange(b *strings.Builder, r model.WeekdayRange) {
	b.WriteString(WeekdayName(r.Start))
	if r.HasEnd() {
		b.WriteByte('-')
		b.WriteString(WeekdayName(r.End))
	} else {
		if r.HasNth() {
			b.WriteByte('[')
			for i, n := range r.Nths {
				if i > 0 {
					b.WriteByte(',')
				}
				NthWeekdayOfMonth(b, n)
			}
			b.WriteByte(']')
		}
		DayOffset(b, r.Offset, true)
	}
}

// WeekdayRanges writes a comma-joined weekday-range list.
func WeekdayRanges(b *strings.Builder, ranges []model.WeekdayRange) {
	for i, r := range ranges {
		if i > 0 {
			b.WriteString(", ")
		}
		WeekdayRange(b, r)
	}
}

// Holiday writes "PH", or "SH" with an optional day offset.
func Holiday(b *strings.Builder, h model.Holiday) {
	if h.IsPlural() {
		b.WriteString("PH")
		return
	}
	b.WriteString("SH")
	DayOffset(b, h.Offset, true)
}

// Holidays writes a comma-joined holiday list.
func Holidays(b *strings.Builder, hs []model.Holiday) {
	for i, h := range hs {
		if i > 0 {
			b.WriteString(", ")
		}
		Holiday(b, h)
	}
}

// Weekdays writes the full day selector: holidays first, then the weekday
// ranges, comma-joined when both groups are present.
func Weekdays(b *strings.Builder, w model.Weekdays) {
	Holidays(b, w.Holidays)
	if w.HasWeekday() && w.HasHolidays() {
		b.WriteString(", ")
	}
	WeekdayRanges(b, w.Ranges)
}
