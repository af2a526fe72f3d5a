// Package inspect computes structural summaries over rule lists: what each
// rule selects, which features the value uses, and how rules group into
// fallback alternatives. All functions are pure; no I/O.
package inspect

import (
	"strings"

	"github.com/Anastasialos/osmoh/internal/model"
	"github.com/Anastasialos/osmoh/internal/render"
	"github.com/Anastasialos/osmoh/internal/transform"
)

// ─── Reports ──────────────────────────────────────────────────────────────────

// RuleInfo describes the structure of one rule.
type RuleInfo struct {
	Index    int    `json:"index" yaml:"index"`
	Text     string `json:"text" yaml:"text"`
	Kind     string `json:"kind" yaml:"kind"` // "24/7", "comment", or "selector"
	Modifier string `json:"modifier,omitempty" yaml:"modifier,omitempty"`

	YearCount    int `json:"year_count,omitempty" yaml:"year_count,omitempty"`
	MonthCount   int `json:"month_count,omitempty" yaml:"month_count,omitempty"`
	WeekCount    int `json:"week_count,omitempty" yaml:"week_count,omitempty"`
	WeekdayCount int `json:"weekday_count,omitempty" yaml:"weekday_count,omitempty"`
	HolidayCount int `json:"holiday_count,omitempty" yaml:"holiday_count,omitempty"`
	SpanCount    int `json:"span_count,omitempty" yaml:"span_count,omitempty"`

	// DaysCovered counts distinct weekdays the day selector reaches,
	// 0 when the rule has no weekday ranges.
	DaysCovered int  `json:"days_covered,omitempty" yaml:"days_covered,omitempty"`
	UsesEvents  bool `json:"uses_events,omitempty" yaml:"uses_events,omitempty"`
	HasComment  bool `json:"has_comment,omitempty" yaml:"has_comment,omitempty"`

	Separator string `json:"separator,omitempty" yaml:"separator,omitempty"`
}

// Summary aggregates structure over a whole rule list.
type Summary struct {
	RuleCount     int    `json:"rule_count" yaml:"rule_count"`
	Canonical     string `json:"canonical" yaml:"canonical"`
	FallbackCount int    `json:"fallback_count" yaml:"fallback_count"`
	AroundClock   bool   `json:"around_clock,omitempty" yaml:"around_clock,omitempty"`
	UsesEvents    bool   `json:"uses_events,omitempty" yaml:"uses_events,omitempty"`
	UsesHolidays  bool   `json:"uses_holidays,omitempty" yaml:"uses_holidays,omitempty"`

	// Modifiers counts rules per explicit modifier keyword; rules in the
	// default open state are not counted.
	Modifiers map[string]int `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`

	Rules []RuleInfo `json:"rules" yaml:"rules"`
}

// ─── Summarize ────────────────────────────────────────────────────────────────

// Summarize inspects every rule and aggregates the findings.
func Summarize(rules model.Rules) Summary {
	s := Summary{
		RuleCount:     len(rules),
		Canonical:     render.String(rules),
		FallbackCount: len(transform.FallbackGroups(rules)),
	}
	for i, r := range rules {
		info := ruleInfo(i, r)
		s.AroundClock = s.AroundClock || r.IsTwentyFourHours()
		s.UsesEvents = s.UsesEvents || info.UsesEvents
		s.UsesHolidays = s.UsesHolidays || len(r.Weekdays.Holidays) > 0
		if info.Modifier != "" {
			if s.Modifiers == nil {
				s.Modifiers = map[string]int{}
			}
			s.Modifiers[info.Modifier]++
		}
		s.Rules = append(s.Rules, info)
	}
	return s
}

func ruleInfo(idx int, r model.RuleSequence) RuleInfo {
	var b strings.Builder
	render.Rule(&b, r)

	info := RuleInfo{
		Index:        idx,
		Text:         b.String(),
		Kind:         ruleKind(r),
		Modifier:     modifierName(r.Modifier),
		YearCount:    len(r.Years),
		MonthCount:   len(r.Months),
		WeekCount:    len(r.Weeks),
		WeekdayCount: len(r.Weekdays.Ranges),
		HolidayCount: len(r.Weekdays.Holidays),
		SpanCount:    len(r.Times),
		DaysCovered:  daysCovered(r.Weekdays.Ranges),
		UsesEvents:   usesEvents(r.Times),
		HasComment:   r.HasComment(),
		Separator:    r.Separator,
	}
	return info
}

func ruleKind(r model.RuleSequence) string {
	switch {
	case r.IsTwentyFourHours():
		return "24/7"
	case r.HasComment():
		return "comment"
	}
	return "selector"
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

func daysCovered(ranges []model.WeekdayRange) int {
	count := 0
	for wd := model.Sunday; wd <= model.Saturday; wd++ {
		for _, r := range ranges {
			if r.HasWday(wd) {
				count++
				break
			}
		}
	}
	return count
}

func usesEvents(spans []model.Timespan) bool {
	for _, s := range spans {
		if s.Start.IsEvent() || s.End.IsEvent() || s.Period.IsEvent() {
			return true
		}
	}
	return false
}
