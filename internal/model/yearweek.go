package model

// YearRange is a year selector: a single year, a range, an open-ended
// "2020+", or a stepped range like "2020-2030/2".
type YearRange struct {
	Start  int
	End    int
	Plus   bool
	Period int
}

func (r YearRange) IsEmpty() bool { return !r.HasStart() && !r.HasEnd() }

func (r YearRange) IsOpen() bool { return r.HasStart() && !r.HasEnd() }

func (r YearRange) HasStart() bool { return r.Start != 0 }

func (r YearRange) HasEnd() bool { return r.End != 0 }

func (r YearRange) HasPlus() bool { return r.Plus }

func (r YearRange) HasPeriod() bool { return r.Period != 0 }

// WeekRange is an ISO-week selector, weeks numbered 1..53, optionally
// stepped: "week 01-53/2".
type WeekRange struct {
	Start  int
	End    int
	Period int
}

func (r WeekRange) IsEmpty() bool { return !r.HasStart() && !r.HasEnd() }

func (r WeekRange) IsOpen() bool { return r.HasStart() && !r.HasEnd() }

func (r WeekRange) HasStart() bool { return r.Start != 0 }

func (r WeekRange) HasEnd() bool { return r.End != 0 }

func (r WeekRange) HasPeriod() bool { return r.Period != 0 }
