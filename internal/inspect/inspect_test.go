package inspect_test

import (
	"testing"

	"github.com/Anastasialos/osmoh/internal/inspect"
	"github.com/Anastasialos/osmoh/internal/model"
)

func shopHours() model.Rules {
	weekdays := model.RuleSequence{
		Weekdays: model.Weekdays{Ranges: []model.WeekdayRange{{Start: model.Monday, End: model.Friday}}},
		Times: []model.Timespan{
			{Start: model.NewTime(9, 0), End: model.NewTime(13, 0)},
			{Start: model.NewTime(14, 0), End: model.NewTime(18, 0)},
		},
		Separator: ";",
	}
	saturday := model.RuleSequence{
		Weekdays: model.Weekdays{
			Holidays: []model.Holiday{{Plural: true}},
			Ranges:   []model.WeekdayRange{{Start: model.Saturday}},
		},
		Times:     []model.Timespan{{Start: model.NewTime(10, 0), End: model.EventTime(model.Sunset)}},
		Separator: "||",
	}
	fallback := model.RuleSequence{Modifier: model.ModifierComment, ModifierComment: "by appointment"}
	return model.Rules{weekdays, saturday, fallback}
}

func TestSummarize(t *testing.T) {
	s := inspect.Summarize(shopHours())
	if s.RuleCount != 3 {
		t.Fatalf("expected 3 rules, got %d", s.RuleCount)
	}
	if s.FallbackCount != 2 {
		t.Fatalf("expected 2 fallback groups, got %d", s.FallbackCount)
	}
	if !s.UsesEvents || !s.UsesHolidays || s.AroundClock {
		t.Fatalf("feature flags wrong: %+v", s)
	}
	want := `Mo-Fr 09:00-13:00, 14:00-18:00; PH, Sa 10:00-sunset || "by appointment"`
	if s.Canonical != want {
		t.Fatalf("expected %q, got %q", want, s.Canonical)
	}
}

func TestSummarizeRuleInfo(t *testing.T) {
	s := inspect.Summarize(shopHours())
	first := s.Rules[0]
	if first.Kind != "selector" || first.SpanCount != 2 || first.WeekdayCount != 1 {
		t.Fatalf("unexpected first rule info: %+v", first)
	}
	if first.DaysCovered != 5 {
		t.Fatalf("Mo-Fr should cover 5 days, got %d", first.DaysCovered)
	}
	if first.Text != "Mo-Fr 09:00-13:00, 14:00-18:00" {
		t.Fatalf("unexpected rule text: %q", first.Text)
	}

	second := s.Rules[1]
	if !second.UsesEvents || second.HolidayCount != 1 || second.DaysCovered != 1 {
		t.Fatalf("unexpected second rule info: %+v", second)
	}

	third := s.Rules[2]
	if third.Modifier != "comment" || third.Kind != "selector" {
		t.Fatalf("unexpected third rule info: %+v", third)
	}
}

func TestSummarizeKinds(t *testing.T) {
	s := inspect.Summarize(model.Rules{
		{TwentyFourHours: true},
		{Comment: "on request"},
	})
	if s.Rules[0].Kind != "24/7" || s.Rules[1].Kind != "comment" {
		t.Fatalf("unexpected kinds: %q, %q", s.Rules[0].Kind, s.Rules[1].Kind)
	}
	if !s.AroundClock {
		t.Fatal("expected the around-the-clock flag")
	}
	if s.Rules[0].Text != "24/7" {
		t.Fatalf("unexpected text: %q", s.Rules[0].Text)
	}
}

func TestSummarizeModifierDistribution(t *testing.T) {
	rules := append(shopHours(), model.RuleSequence{
		Weekdays: model.Weekdays{Holidays: []model.Holiday{{}}},
		Modifier: model.ModifierClosed,
	})
	s := inspect.Summarize(rules)
	if s.Modifiers["comment"] != 1 || s.Modifiers["closed"] != 1 {
		t.Fatalf("unexpected modifier distribution: %v", s.Modifiers)
	}
	if len(s.Modifiers) != 2 {
		t.Fatalf("default open rules should not be counted: %v", s.Modifiers)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := inspect.Summarize(nil)
	if s.RuleCount != 0 || s.Canonical != "" || len(s.Rules) != 0 {
		t.Fatalf("unexpected summary for no rules: %+v", s)
	}
	if s.FallbackCount != 0 {
		t.Fatalf("expected 0 fallback groups, got %d", s.FallbackCount)
	}
}
