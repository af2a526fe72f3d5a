package document

import (
	"strings"

	"github.com/Anastasialos/osmoh/internal/model"
	"github.com/Anastasialos/osmoh/internal/render"
)

// ─── Model to document ────────────────────────────────────────────────────────

// FromRules converts rules to their normalized document form, the same
// shape Encode writes. Callers that persist documents store this form so
// saved schedules round-trip independently of the input's field order.
func FromRules(rules model.Rules) Document {
	doc := Document{Rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		doc.Rules = append(doc.Rules, fromRule(r))
	}
	return doc
}

func fromRule(r model.RuleSequence) Rule {
	out := Rule{
		TwentyFourSeven:  r.TwentyFourHours,
		Comment:          r.Comment,
		ReadabilityColon: r.SeparatorForReadability,
		Modifier:         modifierName(r.Modifier),
		ModifierComment:  r.ModifierComment,
	}
	for _, y := range r.Years {
		out.Years = append(out.Years, YearRange{Start: y.Start, End: y.End, Period: y.Period, Plus: y.Plus})
	}
	for _, m := range r.Months {
		out.Months = append(out.Months, fromMonthdayRange(m))
	}
	for _, w := range r.Weeks {
		out.Weeks = append(out.Weeks, WeekRange{Start: w.Start, End: w.End, Period: w.Period})
	}
	for _, h := range r.Weekdays.Holidays {
		out.Holidays = append(out.Holidays, fromHoliday(h))
	}
	for _, w := range r.Weekdays.Ranges {
		out.Weekdays = append(out.Weekdays, fromWeekdayRange(w))
	}
	for _, ts := range r.Times {
		out.Times = append(out.Times, Timespan{
			Start:  timeScalar(ts.Start),
			End:    timeScalar(ts.End),
			Period: timeScalar(ts.Period),
			Plus:   ts.Plus,
		})
	}
	// The ";" default never needs spelling out.
	if r.Separator != "" && r.Separator != ";" {
		out.Separator = r.Separator
	}
	return out
}

func modifierName(m model.Modifier) string {
	switch m {
	case model.ModifierOpen:
		return "open"
	case model.ModifierClosed:
		return "closed"
	case model.ModifierUnknown:
		return "unknown"
	case model.ModifierComment:
		return "comment"
	}
	return ""
}

// ─── Scalar encoding ──────────────────────────────────────────────────────────

func timeScalar(t model.Time) Scalar {
	if !t.HasValue() && !t.IsEvent() {
		return ""
	}
	var b strings.Builder
	render.Time(&b, t)
	return Scalar(b.String())
}

func weekdayScalar(wd model.Weekday) string {
	if wd == model.WeekdayNone {
		return ""
	}
	return render.WeekdayName(wd)
}

func fromWeekdayRange(r model.WeekdayRange) WeekdayRange {
	out := WeekdayRange{
		Start:  weekdayScalar(r.Start),
		End:    weekdayScalar(r.End),
		Offset: r.Offset,
	}
	for _, n := range r.Nths {
		var b strings.Builder
		render.NthWeekdayOfMonth(&b, n)
		out.Nths = append(out.Nths, Scalar(b.String()))
	}
	return out
}

func fromHoliday(h model.Holiday) Holiday {
	kind := "SH"
	if h.IsPlural() {
		kind = "PH"
	}
	return Holiday{Kind: kind, Offset: h.Offset}
}

// ─── Calendar dates ───────────────────────────────────────────────────────────

func fromMonthdayRange(r model.MonthdayRange) MonthdayRange {
	return MonthdayRange{
		Start:  fromMonthDay(r.Start),
		End:    fromMonthDay(r.End),
		Period: r.Period,
		Plus:   r.Plus,
	}
}

func fromMonthDay(m model.MonthDay) *MonthDay {
	if m.IsEmpty() && !m.HasOffset() {
		return nil
	}
	out := &MonthDay{Year: m.Year, Day: m.DayNum}
	if m.HasMonth() {
		out.Month = render.MonthName(m.Month)
	}
	if m.IsVariable() {
		out.Variable = "easter"
	}
	if m.HasOffset() {
		out.Offset = fromDateOffset(m.Offset)
	}
	return out
}

func fromDateOffset(o model.DateOffset) *DateOffset {
	out := &DateOffset{Days: o.Offset}
	if o.HasWdayOffset() {
		sign := "-"
		if o.Positive {
			sign = "+"
		}
		out.Weekday = sign + render.WeekdayName(o.WdayOffset)
	}
	return out
}
