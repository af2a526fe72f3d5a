package model

// Timespan is an interval between two Times with an optional repeat period
// and an open-ended "+" marker. The grammar lets "+" coexist with an
// explicit end ("10:00-16:00+"); the model keeps that representable and
// the validator flags it.
type Timespan struct {
	Start  Time
	End    Time
	Period Time
	Plus   bool
}

// IsEmpty reports a span with neither endpoint set.
func (s Timespan) IsEmpty() bool {
	return !s.HasStart() && !s.HasEnd()
}

// IsOpen reports a span with a start and no end, such as "10:00+".
func (s Timespan) IsOpen() bool {
	return s.HasStart() && !s.HasEnd()
}

func (s Timespan) HasStart() bool { return s.Start.HasValue() }

func (s Timespan) HasEnd() bool { return s.End.HasValue() }

func (s Timespan) HasPlus() bool { return s.Plus }

func (s Timespan) HasPeriod() bool { return s.Period.HasValue() }
