// Package describe turns rule lists into plain English, one sentence per
// rule. The wording is deterministic, so output is stable across runs and
// suitable for snapshots and diffs.
package describe

import (
	"fmt"
	"strings"

	"github.com/Anastasialos/osmoh/internal/model"
	"github.com/Anastasialos/osmoh/internal/render"
)

// ─── Entry points ─────────────────────────────────────────────────────────────

// Rules describes every rule. Rules following a "||" separator read as
// alternatives and start with "Otherwise".
func Rules(rules model.Rules) []string {
	out := make([]string, 0, len(rules))
	for i, r := range rules {
		sentence := Rule(r)
		if i > 0 && rules[i-1].Separator == "||" {
			sentence = "Otherwise, " + lowerFirst(sentence)
		}
		out = append(out, sentence)
	}
	return out
}

// Rule describes one rule as a single sentence.
func Rule(r model.RuleSequence) string {
	if r.IsTwentyFourHours() {
		return sentence(verb(r.Modifier) + " around the clock" + trailer(r))
	}
	if r.HasComment() {
		return sentence(r.Comment)
	}

	hasSelectors := r.HasTimes() || !r.Weekdays.IsEmpty() || r.HasMonths() || r.HasWeeks() || r.HasYears()
	if r.Modifier == model.ModifierComment && !hasSelectors {
		return sentence(r.ModifierComment)
	}

	parts := []string{verb(r.Modifier)}
	if r.HasTimes() {
		parts = append(parts, timesPhrase(r.Times))
	}
	if !r.Weekdays.IsEmpty() {
		parts = append(parts, daysPhrase(r.Weekdays))
	}
	if r.HasMonths() {
		parts = append(parts, "in "+listPhrase(monthRangePhrases(r.Months)))
	}
	if r.HasWeeks() {
		parts = append(parts, "in "+listPhrase(weekRangePhrases(r.Weeks)))
	}
	if r.HasYears() {
		parts = append(parts, "in "+listPhrase(yearRangePhrases(r.Years)))
	}
	if len(parts) == 1 {
		parts = append(parts, "at all times")
	}
	return sentence(strings.Join(parts, " ") + trailer(r))
}

// ─── Sentence assembly ────────────────────────────────────────────────────────

func verb(m model.Modifier) string {
	switch m {
	case model.ModifierClosed:
		return "closed"
	case model.ModifierUnknown:
		return "possibly open"
	}
	return "open"
}

func trailer(r model.RuleSequence) string {
	if r.HasModifierComment() {
		return fmt.Sprintf(" (%s)", r.ModifierComment)
	}
	return ""
}

func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return upperFirst(s) + "."
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// listPhrase joins items with commas and a final "and".
func listPhrase(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}

// ─── Times ────────────────────────────────────────────────────────────────────

func timesPhrase(spans []model.Timespan) string {
	phrases := make([]string, 0, len(spans))
	for _, s := range spans {
		phrases = append(phrases, spanPhrase(s))
	}
	return listPhrase(phrases)
}

func spanPhrase(s model.Timespan) string {
	switch {
	case s.IsOpen() && s.HasPlus():
		return "from " + timePhrase(s.Start) + " onwards"
	case s.IsOpen():
		return "at " + timePhrase(s.Start)
	}
	phrase := "from " + timePhrase(s.Start) + " to " + timePhrase(s.End)
	if s.HasPeriod() {
		phrase += " every " + periodPhrase(s.Period)
	}
	return phrase
}

func timePhrase(t model.Time) string {
	switch {
	case t.IsEventOffset():
		return eventOffsetPhrase(t)
	case t.IsEvent():
		return t.Event().String()
	case !t.HasValue():
		return "an unspecified time"
	}
	var b strings.Builder
	render.Time(&b, t)
	return b.String()
}

// eventOffsetPhrase words a shifted event: "(sunset-01:00)" reads as
// "1 hour before sunset".
func eventOffsetPhrase(t model.Time) string {
	hours, minutes := t.Hours(), t.Minutes()
	direction := "after"
	if hours < 0 || minutes < 0 {
		direction = "before"
		hours, minutes = -hours, -minutes
	}
	return fmt.Sprintf("%s %s %s", durationPhrase(hours, minutes), direction, t.Event())
}

func durationPhrase(hours, minutes int) string {
	var parts []string
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 || hours == 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	return strings.Join(parts, " ")
}

func periodPhrase(t model.Time) string {
	if t.IsMinutes() {
		return plural(t.Minutes(), "minute")
	}
	return durationPhrase(t.Hours(), t.Minutes())
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// ─── Days ─────────────────────────────────────────────────────────────────────

var weekdayWords = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func weekdayWord(wd model.Weekday) string {
	if wd < model.Sunday || wd > model.Saturday {
		return "an unknown day"
	}
	return weekdayWords[wd-model.Sunday]
}

func daysPhrase(w model.Weekdays) string {
	var phrases []string
	for _, h := range w.Holidays {
		phrases = append(phrases, holidayPhrase(h))
	}
	for _, r := range w.Ranges {
		phrases = append(phrases, weekdayRangePhrase(r))
	}
	return "on " + listPhrase(phrases)
}

func holidayPhrase(h model.Holiday) string {
	if h.IsPlural() {
		return "public holidays"
	}
	phrase := "school holidays"
	if h.Offset != 0 {
		phrase += " " + dayShiftPhrase(h.Offset)
	}
	return phrase
}

func weekdayRangePhrase(r model.WeekdayRange) string {
	var phrase string
	switch {
	case r.HasEnd():
		phrase = weekdayWord(r.Start) + " through " + weekdayWord(r.End)
	case r.HasNth():
		phrase = "the " + listPhrase(nthPhrases(r.Nths)) + " " + weekdayWord(r.Start) + " of the month"
	default:
		phrase = weekdayWord(r.Start)
	}
	if !r.HasEnd() && r.HasOffset() {
		phrase += " " + dayShiftPhrase(r.Offset)
	}
	return phrase
}

func nthPhrases(nths []model.NthWeekdayOfMonth) []string {
	ordinals := [...]string{"first", "second", "third", "fourth", "fifth"}
	out := make([]string, 0, len(nths))
	for _, n := range nths {
		if !n.HasStart() || n.Start > model.Fifth {
			continue
		}
		phrase := ordinals[n.Start-model.First]
		if n.HasEnd() && n.End <= model.Fifth {
			phrase += " through " + ordinals[n.End-model.First]
		}
		out = append(out, phrase)
	}
	return out
}

func dayShiftPhrase(days int) string {
	if days < 0 {
		return plural(-days, "day") + " earlier"
	}
	return plural(days, "day") + " later"
}

// ─── Dates ────────────────────────────────────────────────────────────────────

var monthWords = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func monthWord(m model.Month) string {
	if m < model.January || m > model.December {
		return "an unknown month"
	}
	return monthWords[m-model.January]
}

func monthRangePhrases(ranges []model.MonthdayRange) []string {
	out := make([]string, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, monthRangePhrase(r))
	}
	return out
}

func monthRangePhrase(r model.MonthdayRange) string {
	start := monthDayPhrase(r.Start)
	if r.HasEnd() {
		return start + " through " + monthDayPhrase(r.End)
	}
	if r.HasPlus() {
		return start + " onwards"
	}
	return start
}

func monthDayPhrase(m model.MonthDay) string {
	var parts []string
	if m.IsVariable() {
		parts = append(parts, "Easter")
	} else if m.HasMonth() {
		if m.HasDayNum() {
			parts = append(parts, fmt.Sprintf("%s %d", monthWord(m.Month), m.DayNum))
		} else {
			parts = append(parts, monthWord(m.Month))
		}
	} else if m.HasDayNum() {
		parts = append(parts, fmt.Sprintf("day %d", m.DayNum))
	}
	if m.HasYear() {
		parts = append(parts, fmt.Sprintf("%d", m.Year))
	}
	if m.Offset.HasWdayOffset() {
		direction := "previous"
		if m.Offset.Positive {
			direction = "next"
		}
		parts = append(parts, "then the "+direction+" "+weekdayWord(m.Offset.WdayOffset))
	}
	if m.Offset.HasOffset() {
		parts = append(parts, dayShiftPhrase(m.Offset.Offset))
	}
	if len(parts) == 0 {
		return "an unspecified date"
	}
	return strings.Join(parts, " ")
}

func weekRangePhrases(ranges []model.WeekRange) []string {
	out := make([]string, 0, len(ranges))
	for _, r := range ranges {
		if r.HasEnd() {
			out = append(out, fmt.Sprintf("weeks %d to %d", r.Start, r.End))
		} else {
			out = append(out, fmt.Sprintf("week %d", r.Start))
		}
	}
	return out
}

func yearRangePhrases(ranges []model.YearRange) []string {
	out := make([]string, 0, len(ranges))
	for _, r := range ranges {
		switch {
		case r.HasEnd():
			out = append(out, fmt.Sprintf("%d to %d", r.Start, r.End))
		case r.HasPlus():
			out = append(out, fmt.Sprintf("%d onwards", r.Start))
		default:
			out = append(out, fmt.Sprintf("%d", r.Start))
		}
	}
	return out
}
