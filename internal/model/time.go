// Package model defines the value types of the OpenStreetMap opening_hours
// mini-language: times, timespans, weekday and calendar-date selectors, and
// the rule sequences that combine them. Values are built by the document
// codec (or by test code) and are read-only afterwards; rendering,
// validation, and export never mutate them.
package model

import "time"

// ─── Events ───────────────────────────────────────────────────────────────────

// Event identifies an astronomical time point used in place of a clock time.
type Event uint8

const (
	EventNone Event = iota
	Sunrise
	Sunset
	Dawn
	Dusk
)

// String returns the event's name as it appears in the opening_hours text.
func (e Event) String() string {
	switch e {
	case Sunrise:
		return "sunrise"
	case Sunset:
		return "sunset"
	case Dawn:
		return "dawn"
	case Dusk:
		return "dusk"
	}
	return "none"
}

// EventResolver supplies a concrete time of day for an astronomical event.
// Implementations that depend on a date or location close over them; a
// resolver is cheap to construct per day. Time's accessor methods consult a
// resolver, the canonical serializer never does, so rendered text always
// preserves written event offsets.
type EventResolver interface {
	ResolveEvent(ev Event) Time
}

// placeholderResolver maps every event to the zero time. It stands in
// wherever no real resolver is supplied.
type placeholderResolver struct{}

func (placeholderResolver) ResolveEvent(Event) Time { return Time{} }

// ─── Time ─────────────────────────────────────────────────────────────────────

// Time is a single point in time: a fixed hour:minute value, a bare minute
// count, an astronomical event, or an event shifted by a clock offset.
// The zero value is the unset time, rendered as the placeholder "hh:mm".
//
// Which of those a value is follows from the event tag and two presence
// flags maintained by SetHours and SetMinutes; the underlying duration is
// meaningful only when a flag says so.
type Time struct {
	dur        time.Duration
	hasHours   bool
	hasMinutes bool
	event      Event
}

// NewTime returns a fixed time of day, such as NewTime(9, 30) for 09:30.
func NewTime(hours, minutes int) Time {
	var t Time
	t.SetHours(hours)
	t.SetMinutes(hours*60 + minutes)
	return t
}

// TimeFromMinutes returns a bare minute count. Counts beyond one hour gain
// an hour component, so TimeFromMinutes(90) renders "01:30" while
// TimeFromMinutes(45) renders "45".
func TimeFromMinutes(minutes int) Time {
	var t Time
	t.SetMinutes(minutes)
	return t
}

// EventTime returns an unshifted astronomical event.
func EventTime(ev Event) Time {
	var t Time
	t.SetEvent(ev)
	return t
}

// EventOffsetTime returns an event shifted by a clock offset, such as
// EventOffsetTime(Sunset, -time.Hour) for one hour before sunset, rendered
// "(sunset-01:00)". The shift is stored as the amount by which the event
// precedes the represented time, hence the negation.
func EventOffsetTime(ev Event, offset time.Duration) Time {
	var t Time
	t.SetEvent(ev)
	t.setDuration(-offset)
	return t
}

// SetHours sets the underlying duration to a whole number of hours and
// marks both the hour and minute components present.
func (t *Time) SetHours(hours int) {
	t.hasHours = true
	t.hasMinutes = true
	t.dur = time.Duration(hours) * time.Hour
}

// SetMinutes sets the underlying duration to a minute count and marks the
// minute component present; the hour component is additionally marked when
// the magnitude exceeds one hour, so 90 minutes displays as hours+minutes.
func (t *Time) SetMinutes(minutes int) {
	t.setDuration(time.Duration(minutes) * time.Minute)
}

func (t *Time) setDuration(d time.Duration) {
	t.hasMinutes = true
	t.dur = d
	if d > time.Hour || d < -time.Hour {
		t.hasHours = true
	}
}

// SetEvent tags the value with an astronomical event.
func (t *Time) SetEvent(ev Event) {
	t.event = ev
}

// Event returns the astronomical event tag, EventNone for plain times.
func (t Time) Event() Event {
	return t.event
}

// Hours returns the hour component of the represented duration, resolving
// events through the placeholder resolver.
func (t Time) Hours() int { return t.HoursIn(nil) }

// Minutes returns the minute component of the represented duration,
// resolving events through the placeholder resolver.
func (t Time) Minutes() int { return t.MinutesIn(nil) }

// HoursIn returns the hour component, resolving events through r. An event
// with an offset represents the resolved event time minus the stored
// shift, so the shift is subtracted. A nil r is the placeholder resolver.
func (t Time) HoursIn(r EventResolver) int {
	if t.IsEventOffset() {
		return t.resolveIn(r).Sub(t).HoursIn(r)
	}
	if t.IsEvent() {
		return t.resolveIn(r).HoursIn(r)
	}
	return int(t.dur / time.Hour)
}

// MinutesIn returns the minute component, resolving events through r.
// The sign follows the duration: -90 minutes yields hours -1, minutes -30.
func (t Time) MinutesIn(r EventResolver) int {
	if t.IsEventOffset() {
		return t.resolveIn(r).Sub(t).MinutesIn(r)
	}
	if t.IsEvent() {
		return t.resolveIn(r).MinutesIn(r)
	}
	return int(t.dur/time.Minute) - int(t.dur/time.Hour)*60
}

func (t Time) resolveIn(r EventResolver) Time {
	if r == nil {
		r = placeholderResolver{}
	}
	return r.ResolveEvent(t.event)
}

// IsEvent reports whether the value carries an event tag, with or without
// an offset.
func (t Time) IsEvent() bool {
	return t.event != EventNone
}

// IsEventOffset reports an event tag combined with a stored shift.
func (t Time) IsEventOffset() bool {
	return t.IsEvent() && (t.hasHours || t.hasMinutes)
}

// IsHoursMinutes reports a plain time with both components present.
func (t Time) IsHoursMinutes() bool {
	return !t.IsEvent() && t.hasHours && t.hasMinutes
}

// IsMinutes reports a plain time with only the minute component present.
func (t Time) IsMinutes() bool {
	return !t.IsEvent() && t.hasMinutes && !t.hasHours
}

// IsTime reports a full point in time: hours+minutes or an event.
func (t Time) IsTime() bool {
	return t.IsHoursMinutes() || t.IsEvent()
}

// HasValue reports whether the value carries any data at all. Unset times
// render as the "hh:mm" placeholder.
func (t Time) HasValue() bool {
	return t.IsTime() || t.IsMinutes()
}

// Add returns the sum of the two underlying durations. Flags are re-derived
// from the result, so the sum always has at least minute precision.
func (t Time) Add(u Time) Time {
	out := t
	out.setDuration(t.dur + u.dur)
	return out
}

// Sub returns the difference of the two underlying durations, flags
// re-derived like Add.
func (t Time) Sub(u Time) Time {
	out := t
	out.setDuration(t.dur - u.dur)
	return out
}

// Neg returns t with the underlying duration negated; flags and the event
// tag are untouched.
func (t Time) Neg() Time {
	out := t
	out.dur = -out.dur
	return out
}
