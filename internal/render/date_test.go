package render_test

import (
	"strings"
	"testing"

	"github.com/Anastasialos/osmoh/internal/model"
	"github.com/Anastasialos/osmoh/internal/render"
)

func renderDateOffset(o model.DateOffset) string {
	var b strings.Builder
	render.DateOffset(&b, o)
	return b.String()
}

func renderMonthDay(m model.MonthDay) string {
	var b strings.Builder
	render.MonthDay(&b, m)
	return b.String()
}

func renderMonthdayRange(r model.MonthdayRange) string {
	var b strings.Builder
	render.MonthdayRange(&b, r)
	return b.String()
}

func renderYearRange(r model.YearRange) string {
	var b strings.Builder
	render.YearRange(&b, r)
	return b.String()
}

func renderWeekRanges(ranges []model.WeekRange) string {
	var b strings.Builder
	render.WeekRanges(&b, ranges)
	return b.String()
}

// ─── Date offsets ─────────────────────────────────────────────────────────────

func TestDateOffsetForms(t *testing.T) {
	cases := []struct {
		name string
		o    model.DateOffset
		want string
	}{
		{"empty", model.DateOffset{}, ""},
		{"days only", model.DateOffset{Offset: -1}, "-1 day"},
		{"weekday only", model.DateOffset{WdayOffset: model.Sunday, Positive: true}, "+Su"},
		{"weekday back", model.DateOffset{WdayOffset: model.Friday}, "-Fr"},
		{
			"weekday and days",
			model.DateOffset{WdayOffset: model.Sunday, Positive: true, Offset: 2},
			"+Su +2 days",
		},
	}
	for _, tc := range cases {
		if got := renderDateOffset(tc.o); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

// ─── Month days ───────────────────────────────────────────────────────────────

func TestMonthDayForms(t *testing.T) {
	cases := []struct {
		name string
		m    model.MonthDay
		want string
	}{
		{"month only", model.MonthDay{Month: model.January}, "Jan"},
		{"month and day", model.MonthDay{Month: model.January, DayNum: 5}, "Jan 05"},
		{"full date", model.MonthDay{Year: 2024, Month: model.December, DayNum: 31}, "2024 Dec 31"},
		{"year only", model.MonthDay{Year: 2024}, "2024"},
		{"day only", model.MonthDay{DayNum: 10}, "10"},
		{"variable", model.MonthDay{Variable: model.Easter}, "easter"},
		{"variable with year", model.MonthDay{Year: 2024, Variable: model.Easter}, "2024 easter"},
		{
			"variable with offset",
			model.MonthDay{Variable: model.Easter, Offset: model.DateOffset{Offset: 1}},
			"easter +1 day",
		},
		{
			"date with weekday offset",
			model.MonthDay{
				Month:  model.January,
				DayNum: 1,
				Offset: model.DateOffset{WdayOffset: model.Sunday, Positive: true},
			},
			"Jan 01 +Su",
		},
	}
	for _, tc := range cases {
		if got := renderMonthDay(tc.m); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

// ─── Month-day ranges ─────────────────────────────────────────────────────────

func TestMonthdayRangeForms(t *testing.T) {
	jan := model.MonthDay{Month: model.January}
	mar := model.MonthDay{Month: model.March}

	cases := []struct {
		name string
		r    model.MonthdayRange
		want string
	}{
		{"single month", model.MonthdayRange{Start: jan}, "Jan"},
		{"month range", model.MonthdayRange{Start: jan, End: mar}, "Jan-Mar"},
		{
			"day range inside month",
			model.MonthdayRange{
				Start: model.MonthDay{Month: model.January, DayNum: 5},
				End:   model.MonthDay{DayNum: 10},
			},
			"Jan 05-10",
		},
		{"open with plus", model.MonthdayRange{Start: jan, Plus: true}, "Jan+"},
		{
			"with period",
			model.MonthdayRange{
				Start:  model.MonthDay{Month: model.January, DayNum: 1},
				End:    model.MonthDay{Month: model.December, DayNum: 31},
				Period: 10,
			},
			"Jan 01-Dec 31/10",
		},
	}
	for _, tc := range cases {
		if got := renderMonthdayRange(tc.r); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestMonthdayRangesJoin(t *testing.T) {
	ranges := []model.MonthdayRange{
		{Start: model.MonthDay{Month: model.January}},
		{Start: model.MonthDay{Month: model.July}, End: model.MonthDay{Month: model.August}},
	}
	var b strings.Builder
	render.MonthdayRanges(&b, ranges)
	if got := b.String(); got != "Jan, Jul-Aug" {
		t.Fatalf("expected Jan, Jul-Aug, got %q", got)
	}
}

// ─── Year ranges ──────────────────────────────────────────────────────────────

func TestYearRangeForms(t *testing.T) {
	cases := []struct {
		name string
		r    model.YearRange
		want string
	}{
		{"empty", model.YearRange{}, ""},
		{"single", model.YearRange{Start: 2024}, "2024"},
		{"range", model.YearRange{Start: 2024, End: 2026}, "2024-2026"},
		{"range with period", model.YearRange{Start: 2024, End: 2044, Period: 4}, "2024-2044/4"},
		{"open", model.YearRange{Start: 2024, Plus: true}, "2024+"},
	}
	for _, tc := range cases {
		if got := renderYearRange(tc.r); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

// ─── Week ranges ──────────────────────────────────────────────────────────────

func TestWeekRangesKeywordAndPadding(t *testing.T) {
	cases := []struct {
		name   string
		ranges []model.WeekRange
		want   string
	}{
		{"single", []model.WeekRange{{Start: 5}}, "week 05"},
		{"range", []model.WeekRange{{Start: 1, End: 36}}, "week 01-36"},
		{"range with period", []model.WeekRange{{Start: 1, End: 53, Period: 2}}, "week 01-53/2"},
		{"list", []model.WeekRange{{Start: 1, End: 10}, {Start: 40}}, "week 01-10, 40"},
	}
	for _, tc := range cases {
		if got := renderWeekRanges(tc.ranges); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
