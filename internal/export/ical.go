// Package export writes rule lists as iCalendar documents. Each (rule,
// timespan) pair becomes one VEVENT whose recurrence rule transcribes the
// rule's selectors: weekday ranges become BYDAY entries, nth-of-month
// qualifiers become numbered BYDAY entries, plain month ranges become
// BYMONTH, week selectors become BYWEEKNO, and year ranges become UNTIL.
// The transcription is structural. Rules never interact, later rules never
// override earlier ones, and anything without an iCalendar form (sun
// events, variable dates, offsets, holidays, periods) is skipped and
// reported rather than approximated.
package export

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/Anastasialos/osmoh/internal/model"
	"github.com/Anastasialos/osmoh/internal/render"
)

const productID = "-//osmoh//opening hours export//EN"

// Options controls calendar generation.
type Options struct {
	// Name labels the generated events; empty falls back to the open state.
	Name string
	// Start anchors the schedule. Every event's DTSTART falls on the first
	// day at or after Start that matches the rule's weekdays. Zero means
	// the current time.
	Start time.Time
	// Weeks caps recurrences at this many weeks after Start; zero means
	// unbounded. A rule whose year selector sets its own end keeps it.
	Weeks int
}

// Skipped records a rule left out of the calendar.
type Skipped struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Result is a serialized calendar plus the rules it could not express.
type Result struct {
	Calendar string
	Events   int
	Skipped  []Skipped
}

// Calendar transcribes rules into an iCalendar document.
func Calendar(rules model.Rules, opts Options) (Result, error) {
	if len(rules) == 0 {
		return Result{}, fmt.Errorf("export: no rules to transcribe")
	}
	if opts.Start.IsZero() {
		opts.Start = time.Now()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	var res Result
	for idx, r := range rules {
		if reason := inexpressible(r); reason != "" {
			res.Skipped = append(res.Skipped, Skipped{Index: idx, Text: ruleText(r), Reason: reason})
			continue
		}
		res.Events += addRule(cal, idx, r, opts)
	}

	res.Calendar = cal.Serialize()
	return res, nil
}

// ─── Expressibility ───────────────────────────────────────────────────────────

// inexpressible returns the reason a rule has no iCalendar form, or "".
func inexpressible(r model.RuleSequence) string {
	if r.HasComment() {
		return "comment only"
	}
	if r.IsEmpty() {
		return "empty rule"
	}
	if r.IsTwentyFourHours() {
		return ""
	}
	for _, s := range r.Times {
		if s.Start.IsEvent() || s.End.IsEvent() {
			return "sun event times"
		}
		if s.HasPeriod() {
			return "time periods"
		}
	}
	if r.Weekdays.HasHolidays() {
		return "holiday selectors"
	}
	hasNths := false
	for _, wr := range r.Weekdays.Ranges {
		if wr.HasOffset() {
			return "weekday day offsets"
		}
		if wr.HasNth() {
			hasNths = true
		}
	}
	if hasNths && r.HasWeeks() {
		return "nth weekdays combined with week selectors"
	}
	for _, mr := range r.Months {
		if mr.Start.IsVariable() || mr.End.IsVariable() {
			return "variable dates"
		}
		if mr.Start.HasOffset() || mr.End.HasOffset() {
			return "date offsets"
		}
		if mr.HasPeriod() {
			return "date periods"
		}
		if mr.Start.HasYear() || mr.End.HasYear() {
			return "dated month ranges"
		}
		if mr.Start.HasDayNum() && mr.HasEnd() && mr.End.HasMonth() && mr.End.Month != mr.Start.Month {
			return "day ranges across months"
		}
	}
	if len(r.Years) > 1 {
		return "multiple year ranges"
	}
	if len(r.Years) == 1 && r.Years[0].HasPeriod() {
		return "year periods"
	}
	return ""
}

// ─── Event generation ─────────────────────────────────────────────────────────

// addRule emits one VEVENT per timespan and returns how many were added.
// A rule without times covers its whole days, midnight to midnight.
func addRule(cal *ical.Calendar, idx int, r model.RuleSequence, opts Options) int {
	days := ruleDays(r)
	first := firstMatchingDay(opts.Start, days)
	recurrence := ruleRecurrence(r, days, opts)

	spans := r.Times
	if r.IsTwentyFourHours() || len(spans) == 0 {
		spans = []model.Timespan{{Start: model.NewTime(0, 0), End: model.NewTime(24, 0)}}
	}

	added := 0
	for si, span := range spans {
		if !span.HasStart() {
			continue
		}
		start := clockOn(first, span.Start)
		end := start
		switch {
		case span.HasEnd():
			end = clockOn(first, span.End)
			if !end.After(start) {
				end = end.AddDate(0, 0, 1)
			}
		case span.HasPlus():
			end = clockOn(first, model.NewTime(24, 0))
		}

		uid := fmt.Sprintf("rule%d-span%d-%s@osmoh", idx, si, first.Format("20060102"))
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(opts.Start.UTC())
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(summaryFor(r, opts.Name))
		ev.SetDescription(ruleText(r))
		ev.AddRrule(recurrence)
		added++
	}
	return added
}

// ruleRecurrence builds the RRULE value for a rule. The string never
// carries DTSTART; the anchor lives in the event itself.
func ruleRecurrence(r model.RuleSequence, days []model.Weekday, opts Options) string {
	opt := rrule.ROption{Freq: rrule.DAILY}

	byday := make([]rrule.Weekday, 0, len(days))
	nthDays := nthWeekdays(r)
	switch {
	case len(nthDays) > 0:
		opt.Freq = rrule.MONTHLY
		byday = nthDays
	case len(days) > 0:
		opt.Freq = rrule.WEEKLY
		for _, d := range days {
			byday = append(byday, rruleDay(d))
		}
	}

	// BYWEEKNO is only valid under a yearly frequency; every selected
	// weekday then needs an explicit BYDAY entry.
	if r.HasWeeks() && !r.IsTwentyFourHours() {
		opt.Freq = rrule.YEARLY
		opt.Byweekno = weekNumbers(r.Weeks)
		if len(byday) == 0 {
			byday = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU}
		}
	}
	opt.Byweekday = byday

	if r.HasMonths() && !r.IsTwentyFourHours() {
		opt.Bymonth, opt.Bymonthday = monthNumbers(r.Months)
	}
	if len(r.Years) == 1 && !r.IsTwentyFourHours() {
		yr := r.Years[0]
		switch {
		case yr.HasEnd():
			opt.Until = time.Date(yr.End, 12, 31, 23, 59, 59, 0, time.UTC)
		case !yr.HasPlus():
			opt.Until = time.Date(yr.Start, 12, 31, 23, 59, 59, 0, time.UTC)
		}
	}
	if opt.Until.IsZero() && opts.Weeks > 0 {
		opt.Until = opts.Start.AddDate(0, 0, 7*opts.Weeks)
	}
	return opt.RRuleString()
}

// nthWeekdays expands nth-of-month qualifiers into numbered BYDAY entries,
// "Sa[1]" becoming +1SA.
func nthWeekdays(r model.RuleSequence) []rrule.Weekday {
	var out []rrule.Weekday
	for _, wr := range r.Weekdays.Ranges {
		for _, nth := range wr.Nths {
			if !nth.HasStart() {
				continue
			}
			last := nth.Start
			if nth.HasEnd() {
				last = nth.End
			}
			day := rruleDay(wr.Start)
			for n := nth.Start; n <= last; n++ {
				out = append(out, day.Nth(int(n)))
			}
		}
	}
	return out
}

// ruleDays expands the rule's weekday ranges into a deduplicated day list;
// ranges written past the end of the week wrap.
func ruleDays(r model.RuleSequence) []model.Weekday {
	var seen [8]bool
	var out []model.Weekday
	add := func(d model.Weekday) {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	for _, wr := range r.Weekdays.Ranges {
		if !wr.HasStart() {
			continue
		}
		if !wr.HasEnd() {
			add(wr.Start)
			continue
		}
		for d := wr.Start; ; d = nextDay(d) {
			add(d)
			if d == wr.End {
				break
			}
		}
	}
	return out
}

func nextDay(d model.Weekday) model.Weekday {
	if d == model.Saturday {
		return model.Sunday
	}
	return d + 1
}

func rruleDay(d model.Weekday) rrule.Weekday {
	switch d {
	case model.Monday:
		return rrule.MO
	case model.Tuesday:
		return rrule.TU
	case model.Wednesday:
		return rrule.WE
	case model.Thursday:
		return rrule.TH
	case model.Friday:
		return rrule.FR
	case model.Saturday:
		return rrule.SA
	}
	return rrule.SU
}

// monthNumbers flattens plain month ranges into BYMONTH values, plus
// BYMONTHDAY values when a range carries day numbers inside one month.
func monthNumbers(ranges []model.MonthdayRange) (months, days []int) {
	var seen [13]bool
	addMonth := func(m model.Month) {
		if m == model.MonthNone || seen[m] {
			return
		}
		seen[m] = true
		months = append(months, int(m))
	}
	for _, r := range ranges {
		if r.Start.HasDayNum() {
			addMonth(r.Start.Month)
			last := r.Start.DayNum
			if r.HasEnd() && r.End.HasDayNum() {
				last = r.End.DayNum
			}
			for d := r.Start.DayNum; d <= last; d++ {
				days = append(days, d)
			}
			continue
		}
		switch {
		case r.HasEnd():
			for m := r.Start.Month; ; m = nextMonth(m) {
				addMonth(m)
				if m == r.End.Month {
					break
				}
			}
		case r.HasPlus():
			for m := r.Start.Month; m <= model.December; m++ {
				addMonth(m)
			}
		default:
			addMonth(r.Start.Month)
		}
	}
	return months, days
}

func nextMonth(m model.Month) model.Month {
	if m == model.December {
		return model.January
	}
	return m + 1
}

// weekNumbers expands week ranges, honoring a step period.
func weekNumbers(ranges []model.WeekRange) []int {
	var out []int
	for _, r := range ranges {
		step := r.Period
		if step == 0 {
			step = 1
		}
		last := r.Start
		if r.HasEnd() {
			last = r.End
		}
		for w := r.Start; w <= last; w += step {
			out = append(out, w)
		}
	}
	return out
}

// ─── Anchoring ────────────────────────────────────────────────────────────────

// firstMatchingDay returns the first day at or after start whose weekday
// appears in days; an empty list matches immediately.
func firstMatchingDay(start time.Time, days []model.Weekday) time.Time {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	if len(days) == 0 {
		return day
	}
	for i := 0; i < 7; i++ {
		for _, wd := range days {
			if day.Weekday() == time.Weekday(int(wd)-1) {
				return day
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// clockOn places a clock time on a calendar day; hours past 24 roll into
// the following days.
func clockOn(day time.Time, t model.Time) time.Time {
	return day.Add(time.Duration(t.Hours())*time.Hour + time.Duration(t.Minutes())*time.Minute)
}

func summaryFor(r model.RuleSequence, name string) string {
	var state string
	switch r.Modifier {
	case model.ModifierClosed:
		state = "Closed"
	case model.ModifierUnknown:
		state = "Possibly open"
	case model.ModifierComment:
		state = r.ModifierComment
	default:
		state = "Open"
	}
	if state == "" {
		state = "Open"
	}
	if name == "" {
		return state
	}
	return name + ": " + state
}

func ruleText(r model.RuleSequence) string {
	var b strings.Builder
	render.Rule(&b, r)
	return b.String()
}
