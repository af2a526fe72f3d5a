// Package grid renders an ASCII week grid for a rule list: one row per
// weekday, one column per half hour, a filled cell wherever a rule's
// weekday and time selectors touch. The grid shows selector coverage
// only. Rule order, separators, and closed rules never subtract cells,
// so it is a reading aid, not an open/closed evaluation.
package grid

import (
	"fmt"
	"io"
	"strings"

	"github.com/Anastasialos/osmoh/internal/model"
	"github.com/Anastasialos/osmoh/internal/render"
)

const (
	// cellsPerDay is the horizontal resolution, one cell per half hour.
	cellsPerDay = 48

	rowLabelWidth = 5

	cellEmpty   = '·'
	cellOpen    = '█'
	cellUnknown = '░'
)

// displayDays lists the grid rows top to bottom, Monday first.
var displayDays = [7]model.Weekday{
	model.Monday, model.Tuesday, model.Wednesday, model.Thursday,
	model.Friday, model.Saturday, model.Sunday,
}

// Options controls week grid rendering.
type Options struct {
	// Title is printed above the grid. Empty prints no title line.
	Title string
}

// Week renders the coverage grid for rules to w.
//
// Output example:
//
//	     00    03    06    09    12    15    18    21    24
//	Mo   ··················██████████████████············
//	Tu   ··················██████████████████············
//	...
//
//	     █ open   ░ unknown   · not covered
func Week(w io.Writer, rules model.Rules, opts Options) error {
	if len(rules) == 0 {
		return fmt.Errorf("grid: no rules to draw")
	}

	cells, skipped := buildCells(rules)

	if opts.Title != "" {
		fmt.Fprintf(w, "%s\n\n", opts.Title)
	}
	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", rowLabelWidth), hourAxis())
	for row, day := range displayDays {
		fmt.Fprintf(w, "%-*s%s\n", rowLabelWidth, render.WeekdayName(day), string(cells[row][:]))
	}
	fmt.Fprintf(w, "\n%s%c open   %c unknown   %c not covered\n",
		strings.Repeat(" ", rowLabelWidth), cellOpen, cellUnknown, cellEmpty)
	if skipped > 0 {
		fmt.Fprintf(w, "%d time span(s) use sun events and are not shown\n", skipped)
	}
	return nil
}

// ─── Cell building ────────────────────────────────────────────────────────────

// segment is a painted cell run [lo, hi); hi past cellsPerDay spills onto
// the following row.
type segment struct {
	lo, hi int
}

// buildCells marks every cell touched by an open or unknown rule. Closed
// and comment-only rules paint nothing; skipped counts event-based spans,
// which have no fixed place on the clock axis.
func buildCells(rules model.Rules) (cells [7][cellsPerDay]rune, skipped int) {
	for row := range cells {
		for col := range cells[row] {
			cells[row][col] = cellEmpty
		}
	}

	for _, r := range rules {
		if r.Modifier == model.ModifierClosed || r.HasComment() {
			continue
		}
		glyph := cellOpen
		if r.Modifier == model.ModifierUnknown {
			glyph = cellUnknown
		}

		var segs []segment
		if r.IsTwentyFourHours() || !r.HasTimes() {
			segs = []segment{{0, cellsPerDay}}
		} else {
			for _, span := range r.Times {
				seg, ok := spanCells(span)
				if !ok {
					skipped++
					continue
				}
				segs = append(segs, seg)
			}
		}

		for row, day := range displayDays {
			if !coversDay(r, day) {
				continue
			}
			for _, seg := range segs {
				paint(&cells, row, seg, glyph)
			}
		}
	}
	return cells, skipped
}

// coversDay reports whether the rule's day selector includes day. A rule
// with no day selector runs every day; holiday selectors have no weekday
// row and cover nothing here.
func coversDay(r model.RuleSequence, day model.Weekday) bool {
	if r.Weekdays.IsEmpty() {
		return true
	}
	for _, wr := range r.Weekdays.Ranges {
		if wr.HasWday(day) {
			return true
		}
		// Ranges written past the end of the week, like Fr-Mo, select
		// both ends.
		if wr.HasEnd() && wr.End < wr.Start && (day >= wr.Start || day <= wr.End) {
			return true
		}
	}
	return false
}

// spanCells maps a timespan onto cell indices. ok is false for spans with
// event endpoints. An end at or before the start wraps past midnight, as
// do extended-hours clock values like 26:00.
func spanCells(s model.Timespan) (segment, bool) {
	if s.Start.IsEvent() || s.End.IsEvent() {
		return segment{}, false
	}
	if !s.HasStart() {
		return segment{}, true
	}

	lo := cellOf(s.Start)
	var hi int
	switch {
	case s.HasEnd():
		hi = s.End.Hours()*2 + (s.End.Minutes()+29)/30
		if hi <= lo {
			hi += cellsPerDay
		}
	case s.HasPlus():
		hi = cellsPerDay
	default:
		hi = lo + 1
	}

	// Normalize extended starts onto the clock axis, keeping the length.
	if lo >= cellsPerDay {
		lo -= cellsPerDay
		hi -= cellsPerDay
	}
	if lo < 0 {
		lo = 0
	}
	if hi > 2*cellsPerDay {
		hi = 2 * cellsPerDay
	}
	return segment{lo, hi}, true
}

func cellOf(t model.Time) int {
	return t.Hours()*2 + t.Minutes()/30
}

// paint fills the segment on row, spilling past midnight onto the next
// row. Open cells keep their glyph when an unknown rule repaints them.
func paint(cells *[7][cellsPerDay]rune, row int, seg segment, glyph rune) {
	for c := seg.lo; c < seg.hi; c++ {
		r, col := row, c
		if col >= cellsPerDay {
			r, col = (row+1)%len(displayDays), col-cellsPerDay
		}
		if cells[r][col] == cellOpen {
			continue
		}
		cells[r][col] = glyph
	}
}

// ─── Axis ─────────────────────────────────────────────────────────────────────

// hourAxis builds the header line, an hour label every three hours.
func hourAxis() string {
	buf := []rune(strings.Repeat(" ", cellsPerDay+2))
	for hour := 0; hour <= 24; hour += 3 {
		for i, ch := range fmt.Sprintf("%02d", hour) {
			buf[hour*2+i] = ch
		}
	}
	return string(buf)
}
