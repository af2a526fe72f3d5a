package model

// ─── Calendar dates ───────────────────────────────────────────────────────────

// Month enumerates calendar months; the zero value is unset.
type Month uint8

const (
	MonthNone Month = iota
	January
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

// VariableDate marks dates fixed by the movable-feast calendar rather than
// by a month and day number.
type VariableDate uint8

const (
	VariableDateNone VariableDate = iota
	Easter
)

// DateOffset shifts a calendar date to a nearby weekday and/or by a day
// count, written like "+Su" (next Sunday) or "-2 days".
type DateOffset struct {
	WdayOffset Weekday
	// Positive is the direction of the weekday shift: "+Su" versus "-Su".
	Positive bool
	Offset   int
}

func (o DateOffset) IsEmpty() bool {
	return !o.HasWdayOffset() && !o.HasOffset()
}

func (o DateOffset) HasWdayOffset() bool { return o.WdayOffset != WeekdayNone }

func (o DateOffset) HasOffset() bool { return o.Offset != 0 }

// MonthDay is a single calendar date: an optional year, a month and day
// number or a variable date, and an optional offset. Any subset of the
// parts may be present.
type MonthDay struct {
	Year     int
	Month    Month
	DayNum   int
	Variable VariableDate
	Offset   DateOffset
}

// IsEmpty reports a date with no year, month, day, or variable part; a
// bare offset does not count as data.
func (m MonthDay) IsEmpty() bool {
	return !m.HasYear() && !m.HasMonth() && !m.HasDayNum() && !m.IsVariable()
}

func (m MonthDay) IsVariable() bool { return m.Variable != VariableDateNone }

func (m MonthDay) HasYear() bool { return m.Year != 0 }

func (m MonthDay) HasMonth() bool { return m.Month != MonthNone }

func (m MonthDay) HasDayNum() bool { return m.DayNum != 0 }

func (m MonthDay) HasOffset() bool { return !m.Offset.IsEmpty() }

// ─── MonthdayRange ────────────────────────────────────────────────────────────

// MonthdayRange is a calendar-date selector: a single date, a date range,
// or an open-ended date with "+", optionally stepped by a day period.
type MonthdayRange struct {
	Start  MonthDay
	End    MonthDay
	Period int
	Plus   bool
}

func (r MonthdayRange) IsEmpty() bool {
	return !r.HasStart() && !r.HasEnd()
}

func (r MonthdayRange) HasStart() bool { return !r.Start.IsEmpty() }

// HasEnd is true when the end is non-empty or carries a bare day number;
// the grammar lets a range close on a day number alone ("Jan 05-10").
func (r MonthdayRange) HasEnd() bool {
	return !r.End.IsEmpty() || r.End.HasDayNum()
}

func (r MonthdayRange) HasPeriod() bool { return r.Period != 0 }

func (r MonthdayRange) HasPlus() bool { return r.Plus }
