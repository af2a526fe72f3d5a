package render

import (
	"io"
	"strings"

	"github.com/Anastasialos/osmoh/internal/model"
)

// ─── Rules ────────────────────────────────────────────────────────────────────

func modifierKeyword(m model.Modifier) string {
	switch m {
	case model.ModifierOpen:
		return "open"
	case model.ModifierClosed:
		return "closed"
	case model.ModifierUnknown:
		return "unknown"
	}
	return ""
}

// Rule writes one complete rule. Parts are space-joined only where an
// earlier part was emitted: "24/7" short-circuits every selector, a rule
// comment short-circuits them with "comment:", otherwise years, months,
// weeks, the optional readability colon, weekdays, and times appear in
// order. The modifier keyword and the quoted modifier comment follow on
// every branch; DefaultOpen and Comment modifiers write no keyword.
func Rule(b *strings.Builder, r model.RuleSequence) {
	space := false
	putSpace := func() {
		if space {
			b.WriteByte(' ')
		}
		space = true
	}

	if r.IsTwentyFourHours() {
		putSpace()
		b.WriteString("24/7")
	} else if r.HasComment() {
		b.WriteString(r.Comment)
		b.WriteByte(':')
	} else {
		if r.HasYears() {
			putSpace()
			YearRanges(b, r.Years)
		}
		if r.HasMonths() {
			putSpace()
			MonthdayRanges(b, r.Months)
		}
		if r.HasWeeks() {
			putSpace()
			WeekRanges(b, r.Weeks)
		}
		if r.HasSeparatorForReadability() {
			b.WriteByte(':')
		}
		if r.HasWeekdays() {
			putSpace()
			Weekdays(b, r.Weekdays)
		}
		if r.HasTimes() {
			putSpace()
			Timespans(b, r.Times)
		}
	}
	if r.Modifier != model.ModifierDefaultOpen && r.Modifier != model.ModifierComment {
		putSpace()
		b.WriteString(modifierKeyword(r.Modifier))
	}
	if r.HasModifierComment() {
		putSpace()
		b.WriteByte('"')
		b.WriteString(r.ModifierComment)
		b.WriteByte('"')
	}
}

// Rules writes the whole rule list; each element's separator attaches it
// to its successor, "||" spaced on both sides, every other separator
// followed by a single space.
func Rules(b *strings.Builder, rules model.Rules) {
	for i, r := range rules {
		if i > 0 {
			sep := rules[i-1].Separator
			if sep == "||" {
				b.WriteString(" || ")
			} else {
				b.WriteString(sep)
				b.WriteByte(' ')
			}
		}
		Rule(b, r)
	}
}

// String renders a complete opening_hours value to canonical text.
func String(rules model.Rules) string {
	var b strings.Builder
	Rules(&b, rules)
	return b.String()
}

// WriteTo renders rules to w in a single write; the write error, if any,
// is the only failure path in this package.
func WriteTo(w io.Writer, rules model.Rules) error {
	_, err := io.WriteString(w, String(rules))
	return err
}
