package document

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Anastasialos/osmoh/internal/model"
	"github.com/Anastasialos/osmoh/internal/util"
)

// ─── Document to model ────────────────────────────────────────────────────────

// ToRules converts the document's rules to model values. Every field
// problem is collected, so one pass reports them all.
func (d Document) ToRules() (model.Rules, error) {
	var errs util.MultiError
	rules := make(model.Rules, 0, len(d.Rules))
	for i, r := range d.Rules {
		rules = append(rules, r.toModel(fmt.Sprintf("rules[%d]", i), &errs))
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r Rule) toModel(path string, errs *util.MultiError) model.RuleSequence {
	out := model.RuleSequence{
		TwentyFourHours:         r.TwentyFourSeven,
		Comment:                 r.Comment,
		SeparatorForReadability: r.ReadabilityColon,
	}

	for _, y := range r.Years {
		out.Years = append(out.Years, model.YearRange{
			Start: y.Start, End: y.End, Plus: y.Plus, Period: y.Period,
		})
	}
	for j, m := range r.Months {
		out.Months = append(out.Months, decodeMonthdayRange(m, fmt.Sprintf("%s.months[%d]", path, j), errs))
	}
	for _, w := range r.Weeks {
		out.Weeks = append(out.Weeks, model.WeekRange{Start: w.Start, End: w.End, Period: w.Period})
	}
	for j, h := range r.Holidays {
		out.Weekdays.Holidays = append(out.Weekdays.Holidays,
			decodeHoliday(h, fmt.Sprintf("%s.holidays[%d]", path, j), errs))
	}
	for j, w := range r.Weekdays {
		out.Weekdays.Ranges = append(out.Weekdays.Ranges,
			decodeWeekdayRange(w, fmt.Sprintf("%s.weekdays[%d]", path, j), errs))
	}
	for j, ts := range r.Times {
		out.Times = append(out.Times, decodeTimespan(ts, fmt.Sprintf("%s.times[%d]", path, j), errs))
	}

	out.Modifier = decodeModifier(r.Modifier, r.ModifierComment, path, errs)
	out.ModifierComment = r.ModifierComment
	out.Separator = decodeSeparator(r.Separator, path, errs)
	return out
}

// ─── Selector pieces ──────────────────────────────────────────────────────────

func decodeTimespan(ts Timespan, path string, errs *util.MultiError) model.Timespan {
	return model.Timespan{
		Start:  decodeTime(string(ts.Start), path+".start", errs),
		End:    decodeTime(string(ts.End), path+".end", errs),
		Period: decodeTime(string(ts.Period), path+".period", errs),
		Plus:   ts.Plus,
	}
}

func decodeTime(s, path string, errs *util.MultiError) model.Time {
	t, err := parseTimeScalar(s)
	if err != nil {
		errs.Addf("%s: %v", path, err)
	}
	return t
}

// parseTimeScalar reads one time literal. Empty text and the "hh:mm"
// placeholder both mean the unset time.
func parseTimeScalar(s string) (model.Time, error) {
	switch {
	case s == "" || s == "hh:mm":
		return model.Time{}, nil
	case strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"):
		return parseEventOffset(s[1 : len(s)-1])
	}
	if ev, ok := util.ParseEvent(s); ok {
		return model.EventTime(ev), nil
	}
	if !strings.Contains(s, ":") {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return model.Time{}, fmt.Errorf("invalid time %q", s)
		}
		return model.TimeFromMinutes(n), nil
	}
	h, m, err := util.ParseClock(s)
	if err != nil {
		return model.Time{}, err
	}
	return model.NewTime(h, m), nil
}

func parseEventOffset(inner string) (model.Time, error) {
	i := strings.IndexAny(inner, "+-")
	if i < 0 {
		return model.Time{}, fmt.Errorf("invalid event offset %q: expected (event±HH:MM)", inner)
	}
	ev, ok := util.ParseEvent(inner[:i])
	if !ok {
		return model.Time{}, fmt.Errorf("unknown event %q", inner[:i])
	}
	h, m, err := util.ParseClock(inner[i+1:])
	if err != nil {
		return model.Time{}, err
	}
	offset := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
	if inner[i] == '-' {
		offset = -offset
	}
	return model.EventOffsetTime(ev, offset), nil
}

func decodeWeekdayRange(w WeekdayRange, path string, errs *util.MultiError) model.WeekdayRange {
	out := model.WeekdayRange{Offset: w.Offset}
	if w.Start == "" {
		errs.Addf("%s.start: missing weekday", path)
	} else {
		out.Start = decodeWeekday(w.Start, path+".start", errs)
	}
	if w.End != "" {
		out.End = decodeWeekday(w.End, path+".end", errs)
	}
	for k, n := range w.Nths {
		nth, err := parseNth(string(n))
		if err != nil {
			errs.Addf("%s.nth[%d]: %v", path, k, err)
			continue
		}
		out.Nths = append(out.Nths, nth)
	}
	return out
}

func decodeWeekday(s, path string, errs *util.MultiError) model.Weekday {
	wd, ok := parseWeekday(s)
	if !ok {
		errs.Addf("%s: unknown weekday %q", path, s)
	}
	return wd
}

func parseWeekday(s string) (model.Weekday, bool) {
	switch s {
	case "Su":
		return model.Sunday, true
	case "Mo":
		return model.Monday, true
	case "Tu":
		return model.Tuesday, true
	case "We":
		return model.Wednesday, true
	case "Th":
		return model.Thursday, true
	case "Fr":
		return model.Friday, true
	case "Sa":
		return model.Saturday, true
	}
	return model.WeekdayNone, false
}

func parseNth(s string) (model.NthWeekdayOfMonth, error) {
	var nth model.NthWeekdayOfMonth
	start, end, ranged := strings.Cut(s, "-")
	v, err := strconv.Atoi(start)
	if err != nil || v < 1 || v > 5 {
		return nth, fmt.Errorf("invalid nth %q: expected an ordinal 1-5", s)
	}
	nth.Start = model.NthDayOfMonth(v)
	if ranged {
		v, err = strconv.Atoi(end)
		if err != nil || v < 1 || v > 5 {
			return nth, fmt.Errorf("invalid nth %q: expected an ordinal 1-5", s)
		}
		nth.End = model.NthDayOfMonth(v)
	}
	return nth, nil
}

func decodeHoliday(h Holiday, path string, errs *util.MultiError) model.Holiday {
	switch h.Kind {
	case "PH":
		return model.Holiday{Plural: true, Offset: h.Offset}
	case "SH":
		return model.Holiday{Offset: h.Offset}
	}
	errs.Addf("%s.kind: expected PH or SH, got %q", path, h.Kind)
	return model.Holiday{}
}

// ─── Calendar dates ───────────────────────────────────────────────────────────

func decodeMonthdayRange(r MonthdayRange, path string, errs *util.MultiError) model.MonthdayRange {
	return model.MonthdayRange{
		Start:  decodeMonthDay(r.Start, path+".start", errs),
		End:    decodeMonthDay(r.End, path+".end", errs),
		Period: r.Period,
		Plus:   r.Plus,
	}
}

func decodeMonthDay(m *MonthDay, path string, errs *util.MultiError) model.MonthDay {
	if m == nil {
		return model.MonthDay{}
	}
	out := model.MonthDay{Year: m.Year, DayNum: m.Day}
	if m.Month != "" {
		month, ok := parseMonth(m.Month)
		if !ok {
			errs.Addf("%s.month: unknown month %q", path, m.Month)
		}
		out.Month = month
	}
	if m.Variable != "" {
		if m.Variable != "easter" {
			errs.Addf("%s.variable: unknown variable date %q", path, m.Variable)
		} else {
			out.Variable = model.Easter
		}
	}
	if m.Offset != nil {
		out.Offset = decodeDateOffset(*m.Offset, path+".offset", errs)
	}
	return out
}

func parseMonth(s string) (model.Month, bool) {
	switch s {
	case "Jan":
		return model.January, true
	case "Feb":
		return model.February, true
	case "Mar":
		return model.March, true
	case "Apr":
		return model.April, true
	case "May":
		return model.May, true
	case "Jun":
		return model.June, true
	case "Jul":
		return model.July, true
	case "Aug":
		return model.August, true
	case "Sep":
		return model.September, true
	case "Oct":
		return model.October, true
	case "Nov":
		return model.November, true
	case "Dec":
		return model.December, true
	}
	return model.MonthNone, false
}

func decodeDateOffset(o DateOffset, path string, errs *util.MultiError) model.DateOffset {
	out := model.DateOffset{Offset: o.Days}
	if o.Weekday == "" {
		return out
	}
	if len(o.Weekday) < 2 || (o.Weekday[0] != '+' && o.Weekday[0] != '-') {
		errs.Addf("%s.weekday: expected a signed weekday such as %q, got %q", path, "+Su", o.Weekday)
		return out
	}
	out.Positive = o.Weekday[0] == '+'
	out.WdayOffset = decodeWeekday(o.Weekday[1:], path+".weekday", errs)
	return out
}

// ─── Rule trailers ────────────────────────────────────────────────────────────

// decodeModifier maps the modifier keyword. A bare modifier comment with no
// keyword stands alone in the rendered rule, which is the comment modifier.
func decodeModifier(s, comment, path string, errs *util.MultiError) model.Modifier {
	switch s {
	case "":
		if comment != "" {
			return model.ModifierComment
		}
		return model.ModifierDefaultOpen
	case "open":
		return model.ModifierOpen
	case "closed", "off":
		return model.ModifierClosed
	case "unknown":
		return model.ModifierUnknown
	case "comment":
		return model.ModifierComment
	}
	errs.Addf("%s.modifier: expected open, closed, unknown, or comment, got %q", path, s)
	return model.ModifierDefaultOpen
}

func decodeSeparator(s, path string, errs *util.MultiError) string {
	switch s {
	case "":
		return ";"
	case ";", ",", "||":
		return s
	}
	errs.Addf("%s.separator: expected %q, %q, or %q, got %q", path, ";", ",", "||", s)
	return ";"
}
