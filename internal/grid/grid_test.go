package grid_test

import (
	"strings"
	"testing"

	"github.com/Anastasialos/osmoh/internal/grid"
	"github.com/Anastasialos/osmoh/internal/model"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

func hoursRule(start, end model.Weekday, spans ...model.Timespan) model.RuleSequence {
	return model.RuleSequence{
		Weekdays: model.Weekdays{Ranges: []model.WeekdayRange{{Start: start, End: end}}},
		Times:    spans,
	}
}

func span(sh, sm, eh, em int) model.Timespan {
	return model.Timespan{Start: model.NewTime(sh, sm), End: model.NewTime(eh, em)}
}

// dayRow returns the 48 cell runes of a day's row. The row label occupies
// the first five characters.
func dayRow(t *testing.T, out, day string) []rune {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, day+" ") {
			cells := []rune(line)[5:]
			if len(cells) != 48 {
				t.Fatalf("%s row has %d cells, expected 48: %q", day, len(cells), line)
			}
			return cells
		}
	}
	t.Fatalf("no %s row in output:\n%s", day, out)
	return nil
}

func renderWeek(t *testing.T, rules model.Rules, opts grid.Options) string {
	t.Helper()
	var buf strings.Builder
	if err := grid.Week(&buf, rules, opts); err != nil {
		t.Fatalf("Week returned error: %v", err)
	}
	return buf.String()
}

// ─── Tests ────────────────────────────────────────────────────────────────────

func TestWeekBasic(t *testing.T) {
	rules := model.Rules{hoursRule(model.Monday, model.Friday, span(9, 0, 18, 0))}
	out := renderWeek(t, rules, grid.Options{})

	// Axis labels on the header line.
	header := strings.Split(out, "\n")[0]
	for _, label := range []string{"00", "06", "12", "18", "24"} {
		if !strings.Contains(header, label) {
			t.Errorf("axis missing hour label %s: %q", label, header)
		}
	}

	// 09:00 is cell 18, 18:00 exclusive ends at cell 36.
	mo := dayRow(t, out, "Mo")
	if mo[17] != '·' || mo[18] != '█' || mo[35] != '█' || mo[36] != '·' {
		t.Errorf("Mo row edges wrong: %q", string(mo))
	}
	for _, day := range []string{"Tu", "We", "Th", "Fr"} {
		if row := dayRow(t, out, day); row[20] != '█' {
			t.Errorf("%s row not covered at 10:00: %q", day, string(row))
		}
	}
	for _, day := range []string{"Sa", "Su"} {
		if row := dayRow(t, out, day); strings.ContainsRune(string(row), '█') {
			t.Errorf("%s row should be empty: %q", day, string(row))
		}
	}

	if !strings.Contains(out, "not covered") {
		t.Error("legend missing")
	}
}

func TestWeekNoRules(t *testing.T) {
	var buf strings.Builder
	err := grid.Week(&buf, nil, grid.Options{})
	if err == nil {
		t.Fatal("expected error for empty rule list, got nil")
	}
	if !strings.Contains(err.Error(), "no rules") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestWeekTwentyFourSeven(t *testing.T) {
	rules := model.Rules{{TwentyFourHours: true}}
	out := renderWeek(t, rules, grid.Options{})
	for _, day := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		row := string(dayRow(t, out, day))
		if strings.ContainsRune(row, '·') {
			t.Errorf("%s row has gaps under 24/7: %q", day, row)
		}
	}
}

func TestWeekClosedRulesPaintNothing(t *testing.T) {
	rules := model.Rules{{TwentyFourHours: true, Modifier: model.ModifierClosed}}
	out := renderWeek(t, rules, grid.Options{})
	for _, day := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		if row := dayRow(t, out, day); strings.ContainsRune(string(row), '█') {
			t.Errorf("closed rule painted cells on %s: %q", day, string(row))
		}
	}
}

func TestWeekUnknownGlyphLosesToOpen(t *testing.T) {
	open := hoursRule(model.Monday, model.WeekdayNone, span(9, 0, 18, 0))
	unknown := model.RuleSequence{
		Weekdays: model.Weekdays{Ranges: []model.WeekdayRange{{Start: model.Monday}}},
		Modifier: model.ModifierUnknown,
	}
	out := renderWeek(t, model.Rules{open, unknown}, grid.Options{})

	mo := dayRow(t, out, "Mo")
	if mo[0] != '░' {
		t.Errorf("expected unknown glyph at midnight, got %q", mo[0])
	}
	if mo[20] != '█' {
		t.Errorf("open cell repainted by unknown rule: %q", mo[20])
	}
}

func TestWeekSpanWrapsPastMidnight(t *testing.T) {
	rules := model.Rules{hoursRule(model.Friday, model.WeekdayNone, span(20, 0, 2, 0))}
	out := renderWeek(t, rules, grid.Options{})

	fr := dayRow(t, out, "Fr")
	if fr[40] != '█' || fr[47] != '█' {
		t.Errorf("Fr evening not covered: %q", string(fr))
	}
	sa := dayRow(t, out, "Sa")
	if sa[0] != '█' || sa[3] != '█' || sa[4] != '·' {
		t.Errorf("Sa early morning wrong: %q", string(sa))
	}
}

func TestWeekWrappingWeekdayRange(t *testing.T) {
	rules := model.Rules{hoursRule(model.Friday, model.Monday, span(10, 0, 12, 0))}
	out := renderWeek(t, rules, grid.Options{})

	for _, day := range []string{"Fr", "Sa", "Su", "Mo"} {
		if row := dayRow(t, out, day); row[20] != '█' {
			t.Errorf("%s should be covered by Fr-Mo: %q", day, string(row))
		}
	}
	for _, day := range []string{"Tu", "We", "Th"} {
		if row := dayRow(t, out, day); strings.ContainsRune(string(row), '█') {
			t.Errorf("%s should not be covered by Fr-Mo: %q", day, string(row))
		}
	}
}

func TestWeekEventSpansReported(t *testing.T) {
	rules := model.Rules{{
		Weekdays: model.Weekdays{Ranges: []model.WeekdayRange{{Start: model.Saturday}}},
		Times: []model.Timespan{
			{Start: model.EventTime(model.Sunrise), End: model.EventTime(model.Sunset)},
		},
	}}
	out := renderWeek(t, rules, grid.Options{})

	if !strings.Contains(out, "1 time span(s) use sun events") {
		t.Errorf("missing skipped-span note:\n%s", out)
	}
	if sa := dayRow(t, out, "Sa"); strings.ContainsRune(string(sa), '█') {
		t.Errorf("event span should not paint cells: %q", string(sa))
	}
}

func TestWeekHolidaySelectorHasNoRow(t *testing.T) {
	rules := model.Rules{{
		Weekdays: model.Weekdays{Holidays: []model.Holiday{{Plural: true}}},
		Times:    []model.Timespan{span(10, 0, 16, 0)},
	}}
	out := renderWeek(t, rules, grid.Options{})
	for _, day := range []string{"Mo", "Sa", "Su"} {
		if row := dayRow(t, out, day); strings.ContainsRune(string(row), '█') {
			t.Errorf("holiday-only selector painted %s cells: %q", day, string(row))
		}
	}
}

func TestWeekNoDaySelectorCoversEveryDay(t *testing.T) {
	rules := model.Rules{{Times: []model.Timespan{span(8, 0, 10, 0)}}}
	out := renderWeek(t, rules, grid.Options{})
	for _, day := range []string{"Mo", "Su"} {
		if row := dayRow(t, out, day); row[16] != '█' {
			t.Errorf("%s should be covered at 08:00: %q", day, string(row))
		}
	}
}

func TestWeekHalfHourResolution(t *testing.T) {
	rules := model.Rules{hoursRule(model.Monday, model.WeekdayNone, span(9, 0, 9, 30))}
	out := renderWeek(t, rules, grid.Options{})
	mo := dayRow(t, out, "Mo")
	if mo[18] != '█' || mo[19] != '·' {
		t.Errorf("09:00-09:30 should fill exactly one cell: %q", string(mo))
	}
}

func TestWeekOpenEndedSpan(t *testing.T) {
	rules := model.Rules{hoursRule(model.Monday, model.WeekdayNone,
		model.Timespan{Start: model.NewTime(17, 0), Plus: true})}
	out := renderWeek(t, rules, grid.Options{})
	mo := dayRow(t, out, "Mo")
	if mo[33] != '·' || mo[34] != '█' || mo[47] != '█' {
		t.Errorf("17:00+ should run to midnight: %q", string(mo))
	}
}

func TestWeekTitle(t *testing.T) {
	rules := model.Rules{{TwentyFourHours: true}}
	out := renderWeek(t, rules, grid.Options{Title: "Mo-Fr 09:00-18:00"})
	if !strings.HasPrefix(out, "Mo-Fr 09:00-18:00\n") {
		t.Errorf("title missing from first line:\n%s", out)
	}
}
