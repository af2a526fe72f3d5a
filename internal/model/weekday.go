package model

// ─── Weekdays ─────────────────────────────────────────────────────────────────

// Weekday enumerates days of the week in the format's order, Sunday first.
// The zero value marks an unset day, rendered "not-a-day".
type Weekday uint8

const (
	WeekdayNone Weekday = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// NthDayOfMonth is an nth-occurrence ordinal inside a month, First through
// Fifth; the zero value is unset.
type NthDayOfMonth uint8

const (
	NthNone NthDayOfMonth = iota
	First
	Second
	Third
	Fourth
	Fifth
)

// NthWeekdayOfMonth selects an occurrence or occurrence range of a weekday
// inside its month, written in brackets: "[1]" or "[2-4]".
type NthWeekdayOfMonth struct {
	Start NthDayOfMonth
	End   NthDayOfMonth
}

func (n NthWeekdayOfMonth) IsEmpty() bool {
	return !n.HasStart() && !n.HasEnd()
}

func (n NthWeekdayOfMonth) HasStart() bool { return n.Start != NthNone }

func (n NthWeekdayOfMonth) HasEnd() bool { return n.End != NthNone }

// ─── WeekdayRange ─────────────────────────────────────────────────────────────

// WeekdayRange is a single weekday or an inclusive run of weekdays,
// optionally qualified by nth-of-month entries or shifted by a day offset.
type WeekdayRange struct {
	Start  Weekday
	End    Weekday
	Offset int
	Nths   []NthWeekdayOfMonth
}

// HasWday reports whether wd falls inside the range, inclusive on the
// Sunday..Saturday order. A range with no end holds exactly its start day;
// an empty range and WeekdayNone match nothing.
func (r WeekdayRange) HasWday(wd Weekday) bool {
	if r.IsEmpty() || wd == WeekdayNone {
		return false
	}
	if !r.HasEnd() {
		return r.Start == wd
	}
	return r.Start <= wd && wd <= r.End
}

func (r WeekdayRange) HasSunday() bool    { return r.HasWday(Sunday) }
func (r WeekdayRange) HasMonday() bool    { return r.HasWday(Monday) }
func (r WeekdayRange) HasTuesday() bool   { return r.HasWday(Tuesday) }
func (r WeekdayRange) HasWednesday() bool { return r.HasWday(Wednesday) }
func (r WeekdayRange) HasThursday() bool  { return r.HasWday(Thursday) }
func (r WeekdayRange) HasFriday() bool    { return r.HasWday(Friday) }
func (r WeekdayRange) HasSaturday() bool  { return r.HasWday(Saturday) }

func (r WeekdayRange) IsEmpty() bool {
	return r.Start == WeekdayNone && r.End == WeekdayNone
}

func (r WeekdayRange) HasStart() bool { return r.Start != WeekdayNone }

func (r WeekdayRange) HasEnd() bool { return r.End != WeekdayNone }

func (r WeekdayRange) HasOffset() bool { return r.Offset != 0 }

func (r WeekdayRange) HasNth() bool { return len(r.Nths) > 0 }

// DaysCount returns the number of days the range spans. A range with no
// end counts one day; ranges wrap past Saturday, so Fr-Mo counts four.
func (r WeekdayRange) DaysCount() int {
	if r.IsEmpty() {
		return 0
	}
	if !r.HasEnd() {
		return 1
	}
	d := int(r.End) - int(r.Start)
	if d < 0 {
		d += 7
	}
	return d + 1
}

// ─── Holidays ─────────────────────────────────────────────────────────────────

// Holiday selects public holidays (Plural, token PH) or school holidays
// (token SH) with an optional day offset; the offset renders only for SH.
type Holiday struct {
	Plural bool
	Offset int
}

func (h Holiday) IsPlural() bool { return h.Plural }

// ─── Day selector ─────────────────────────────────────────────────────────────

// Weekdays is the day selector of a rule: holiday entries plus weekday
// ranges, rendered in that order.
type Weekdays struct {
	Holidays []Holiday
	Ranges   []WeekdayRange
}

func (w Weekdays) IsEmpty() bool {
	return len(w.Ranges) == 0 && len(w.Holidays) == 0
}

func (w Weekdays) HasWeekday() bool { return len(w.Ranges) > 0 }

func (w Weekdays) HasHolidays() bool { return len(w.Holidays) > 0 }
