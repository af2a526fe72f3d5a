package model

// ─── Rules ────────────────────────────────────────────────────────────────────

// Modifier states what a rule asserts about the intervals it selects.
type Modifier uint8

const (
	// ModifierDefaultOpen is the unwritten open state of a rule carrying no
	// modifier keyword; it renders nothing.
	ModifierDefaultOpen Modifier = iota
	ModifierOpen
	ModifierClosed
	ModifierUnknown
	// ModifierComment marks a rule whose meaning is carried entirely by its
	// comment text; like DefaultOpen it renders no keyword.
	ModifierComment
)

// RuleSequence is one complete rule: date and day selectors, a time list
// or the 24/7 flag, a modifier with optional comments, and the separator
// joining the rule to its successor.
type RuleSequence struct {
	Years    []YearRange
	Months   []MonthdayRange
	Weeks    []WeekRange
	Weekdays Weekdays
	Times    []Timespan

	TwentyFourHours bool
	Modifier        Modifier
	Comment         string
	ModifierComment string

	// SeparatorForReadability records a colon written between the wide
	// selectors and the weekday/time part ("Jan-Mar: Mo-Fr 10:00-20:00").
	SeparatorForReadability bool
	// Separator joins this rule to the one after it, ";" in the common
	// case; the final rule's separator is never rendered.
	Separator string
}

// IsEmpty reports a rule with no selectors at all and the 24/7 flag unset.
func (r RuleSequence) IsEmpty() bool {
	return !r.HasYears() && !r.HasMonths() &&
		!r.HasWeeks() && !r.HasWeekdays() &&
		!r.HasTimes() && !r.TwentyFourHours
}

func (r RuleSequence) IsTwentyFourHours() bool { return r.TwentyFourHours }

func (r RuleSequence) HasYears() bool { return len(r.Years) > 0 }

func (r RuleSequence) HasMonths() bool { return len(r.Months) > 0 }

func (r RuleSequence) HasWeeks() bool { return len(r.Weeks) > 0 }

func (r RuleSequence) HasWeekdays() bool { return !r.Weekdays.IsEmpty() }

func (r RuleSequence) HasTimes() bool { return len(r.Times) > 0 }

func (r RuleSequence) HasComment() bool { return r.Comment != "" }

func (r RuleSequence) HasModifierComment() bool { return r.ModifierComment != "" }

func (r RuleSequence) HasSeparatorForReadability() bool {
	return r.SeparatorForReadability
}

// Rules is a complete opening_hours value: an ordered rule list where each
// element's Separator attaches it to the next.
type Rules []RuleSequence
