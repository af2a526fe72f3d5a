package render

import (
	"strconv"
	"strings"

	"github.com/Anastasialos/osmoh/internal/model"
)

// ─── Calendar-date selectors ──────────────────────────────────────────────────

// MonthName returns the three-letter month abbreviation, or "None" for the
// unset value.
func MonthName(m model.Month) string {
	switch m {
	case model.January:
		return "Jan"
	case model.February:
		return "Feb"
	case model.March:
		return "Mar"
	case model.April:
		return "Apr"
	case model.May:
		return "May"
	case model.June:
		return "Jun"
	case model.July:
		return "Jul"
	case model.August:
		return "Aug"
	case model.September:
		return "Sep"
	case model.October:
		return "Oct"
	case model.November:
		return "Nov"
	case model.December:
		return "Dec"
	}
	return "None"
}

func variableDateName(v model.VariableDate) string {
	if v == model.Easter {
		return "easter"
	}
	return "none"
}

// DateOffset writes the weekday shift first ("+Su", "-Fr"), then the day
// count, space-separated only when the weekday shift was emitted.
func DateOffset(b *strings.Builder, o model.DateOffset) {
	if o.HasWdayOffset() {
		if o.Positive {
			b.WriteByte('+')
		} else {
			b.WriteByte('-')
		}
		b.WriteString(WeekdayName(o.WdayOffset))
	}
	DayOffset(b, o.Offset, o.HasWdayOffset())
}

// MonthDay writes the parts present in fixed order, space-joined: year,
// then the variable-date name or month and two-digit day number, then the
// offset suffix.
func MonthDay(b *strings.Builder, m model.MonthDay) {
	space := false
	putSpace := func() {
		if space {
			b.WriteByte(' ')
		}
		space = true
	}

	if m.HasYear() {
		putSpace()
		b.WriteString(strconv.Itoa(m.Year))
	}
	if m.IsVariable() {
		putSpace()
		b.WriteString(variableDateName(m.Variable))
	} else {
		if m.HasMonth() {
			putSpace()
			b.WriteString(MonthName(m.Month))
		}
		if m.HasDayNum() {
			putSpace()
			Padded(b, m.DayNum, 2)
		}
	}
	if m.HasOffset() {
		b.WriteByte(' ')
		DateOffset(b, m.Offset)
	}
}

// MonthdayRange writes "start", "start-end", or "start-end/period"; an
// open range without an end may close with "+" instead.
func MonthdayRange(b *strings.Builder, r model.MonthdayRange) {
	if r.HasStart() {
		MonthDay(b, r.Start)
	}
	if r.HasEnd() {
		b.WriteByte('-')
		MonthDay(b, r.End)
		if r.HasPeriod() {
			b.WriteByte('/')
			b.WriteString(strconv.Itoa(r.Period))
		}
	} else if r.HasPlus() {
		b.WriteByte('+')
	}
}

// MonthdayRanges writes a comma-joined calendar-date selector list.
func MonthdayRanges(b *strings.Builder, ranges []model.MonthdayRange) {
	for i, r := range ranges {
		if i > 0 {
			b.WriteString(", ")
		}
		MonthdayRange(b, r)
	}
}

// ─── Year and week selectors ──────────────────────────────────────────────────

// YearRange writes "2024", "2024-2026", "2024-2044/4", or "2024+"; empty
// ranges write nothing.
func YearRange(b *strings.Builder, r model.YearRange) {
	if r.IsEmpty() {
		return
	}
	b.WriteString(strconv.Itoa(r.Start))
	if r.HasEnd() {
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(r.End))
		if r.HasPeriod() {
			b.WriteByte('/')
			b.WriteString(strconv.Itoa(r.Period))
		}
	} else if r.HasPlus() {
		b.WriteByte('+')
	}
}

// YearRanges writes a comma-joined year selector list.
func YearRanges(b *strings.Builder, ranges []model.YearRange) {
	for i, r := range ranges {
		if i > 0 {
			b.WriteString(", ")
		}
		YearRange(b, r)
	}
}

// WeekRange writes two-digit week numbers: "05", "01-36", "01-53/2"; empty
// ranges write nothing.
func WeekRange(b *strings.Builder, r model.WeekRange) {
	if r.IsEmpty() {
		return
	}
	Padded(b, r.Start, 2)
	if r.HasEnd() {
		b.WriteByte('-')
		Padded(b, r.End, 2)
		if r.HasPeriod() {
			b.WriteByte('/')
			b.WriteString(strconv.Itoa(r.Period))
		}
	}
}

// WeekRanges writes the "week " keyword followed by the comma-joined list.
func WeekRanges(b *strings.Builder, ranges []model.WeekRange) {
	b.WriteString("week ")
	for i, r := range ranges {
		if i > 0 {
			b.WriteString(", ")
		}
		WeekRange(b, r)
	}
}
