// Package transform implements stateless operators that take a rule list
// and return a new one. Each operator is a pure function; no side effects,
// no I/O. Input slices are never modified in place.
package transform

import (
	"fmt"

	"github.com/Anastasialos/osmoh/internal/model"
)

// ─── Pruning ──────────────────────────────────────────────────────────────────

// DropEmpty removes rules that select nothing and say nothing: no
// selectors, no comment, no modifier. Such rules render as empty text and
// only add separators.
func DropEmpty(rules model.Rules) model.Rules {
	out := make(model.Rules, 0, len(rules))
	for _, r := range rules {
		if r.IsEmpty() && !r.HasComment() && r.Modifier == model.ModifierDefaultOpen && !r.HasModifierComment() {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ─── Event resolution ─────────────────────────────────────────────────────────

// StaticResolver resolves events from a fixed table, one clock time per
// event. Events missing from the table resolve to the unset time.
type StaticResolver map[model.Event]model.Time

func (s StaticResolver) ResolveEvent(ev model.Event) model.Time {
	return s[ev]
}

// ResolveEvents replaces every event time with the concrete clock time the
// resolver supplies, applying stored offsets. Rules without event times
// pass through unchanged. Resolving fails when the resolver has no time
// for an event a rule uses.
func ResolveEvents(rules model.Rules, res model.EventResolver) (model.Rules, error) {
	if res == nil {
		return nil, fmt.Errorf("resolve-events: a resolver is required")
	}
	out := make(model.Rules, len(rules))
	copy(out, rules)
	for i, r := range out {
		if !r.HasTimes() {
			continue
		}
		spans := make([]model.Timespan, len(r.Times))
		copy(spans, r.Times)
		for j := range spans {
			var err error
			if spans[j].Start, err = resolveTime(spans[j].Start, res); err != nil {
				return nil, fmt.Errorf("resolve-events: rules[%d].times[%d].start: %w", i, j, err)
			}
			if spans[j].End, err = resolveTime(spans[j].End, res); err != nil {
				return nil, fmt.Errorf("resolve-events: rules[%d].times[%d].end: %w", i, j, err)
			}
		}
		out[i].Times = spans
	}
	return out, nil
}

func resolveTime(t model.Time, res model.EventResolver) (model.Time, error) {
	if !t.IsEvent() {
		return t, nil
	}
	if !res.ResolveEvent(t.Event()).HasValue() {
		return t, fmt.Errorf("no time for event %v", t.Event())
	}
	return model.NewTime(t.HoursIn(res), t.MinutesIn(res)), nil
}

// ─── Fallback groups ──────────────────────────────────────────────────────────

// FallbackGroups splits a rule list at its "||" separators. Each group is
// a self-contained alternative; consumers try groups in order and use the
// first that applies.
func FallbackGroups(rules model.Rules) []model.Rules {
	if len(rules) == 0 {
		return nil
	}
	var groups []model.Rules
	start := 0
	for i := range rules {
		if i < len(rules)-1 && rules[i].Separator == "||" {
			groups = append(groups, rules[start:i+1])
			start = i + 1
		}
	}
	return append(groups, rules[start:])
}
