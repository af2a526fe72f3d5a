package document

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ─── Scalar ───────────────────────────────────────────────────────────────────

// Scalar is a string that decodes from any YAML or JSON scalar, so bare
// numbers such as a minute count or an nth ordinal need no quoting in the
// source document.
type Scalar string

func (s *Scalar) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", value.Line)
	}
	*s = Scalar(value.Value)
	return nil
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Scalar(str)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = Scalar(strconv.Itoa(n))
		return nil
	}
	return fmt.Errorf("expected a string or number, got %s", data)
}

// ─── Wire schema ──────────────────────────────────────────────────────────────

// Document is the top-level structured form of an opening_hours value.
// Name is free-form venue metadata: schedule save records it and calendar
// export uses it for event summaries. It never reaches the tag text.
type Document struct {
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	Rules []Rule `yaml:"rules" json:"rules"`
}

// Rule mirrors one rule of the tag. Absent fields take the format's
// defaults: an empty modifier means plainly open, an empty separator joins
// to the next rule with ";".
type Rule struct {
	TwentyFourSeven bool   `yaml:"twenty_four_seven,omitempty" json:"twenty_four_seven,omitempty"`
	Comment         string `yaml:"comment,omitempty" json:"comment,omitempty"`

	Years    []YearRange     `yaml:"years,omitempty" json:"years,omitempty"`
	Months   []MonthdayRange `yaml:"months,omitempty" json:"months,omitempty"`
	Weeks    []WeekRange     `yaml:"weeks,omitempty" json:"weeks,omitempty"`
	Holidays []Holiday       `yaml:"holidays,omitempty" json:"holidays,omitempty"`
	Weekdays []WeekdayRange  `yaml:"weekdays,omitempty" json:"weekdays,omitempty"`
	Times    []Timespan      `yaml:"times,omitempty" json:"times,omitempty"`

	ReadabilityColon bool   `yaml:"readability_colon,omitempty" json:"readability_colon,omitempty"`
	Modifier         string `yaml:"modifier,omitempty" json:"modifier,omitempty"`
	ModifierComment  string `yaml:"modifier_comment,omitempty" json:"modifier_comment,omitempty"`
	Separator        string `yaml:"separator,omitempty" json:"separator,omitempty"`
}

// Timespan carries time literals: "HH:MM", a bare minute count, an event
// name, or "(event±HH:MM)".
type Timespan struct {
	Start  Scalar `yaml:"start,omitempty" json:"start,omitempty"`
	End    Scalar `yaml:"end,omitempty" json:"end,omitempty"`
	Plus   bool   `yaml:"plus,omitempty" json:"plus,omitempty"`
	Period Scalar `yaml:"period,omitempty" json:"period,omitempty"`
}

// WeekdayRange names days by their two-letter abbreviations. Nths hold
// bracket entries, "1" or "2-4".
type WeekdayRange struct {
	Start  string   `yaml:"start,omitempty" json:"start,omitempty"`
	End    string   `yaml:"end,omitempty" json:"end,omitempty"`
	Nths   []Scalar `yaml:"nth,omitempty" json:"nth,omitempty"`
	Offset int      `yaml:"offset,omitempty" json:"offset,omitempty"`
}

// Holiday is "PH" or "SH", school holidays optionally shifted by days.
type Holiday struct {
	Kind   string `yaml:"kind" json:"kind"`
	Offset int    `yaml:"offset,omitempty" json:"offset,omitempty"`
}

// DateOffset shifts a date to a nearby weekday and/or by whole days. The
// weekday carries its direction as a sign prefix: "+Su", "-Fr".
type DateOffset struct {
	Weekday string `yaml:"weekday,omitempty" json:"weekday,omitempty"`
	Days    int    `yaml:"days,omitempty" json:"days,omitempty"`
}

// MonthDay is one calendar date, as full or partial as the tag allows.
type MonthDay struct {
	Year     int         `yaml:"year,omitempty" json:"year,omitempty"`
	Month    string      `yaml:"month,omitempty" json:"month,omitempty"`
	Day      int         `yaml:"day,omitempty" json:"day,omitempty"`
	Variable string      `yaml:"variable,omitempty" json:"variable,omitempty"`
	Offset   *DateOffset `yaml:"offset,omitempty" json:"offset,omitempty"`
}

// MonthdayRange spans calendar dates; Period repeats in day steps.
type MonthdayRange struct {
	Start  *MonthDay `yaml:"start,omitempty" json:"start,omitempty"`
	End    *MonthDay `yaml:"end,omitempty" json:"end,omitempty"`
	Period int       `yaml:"period,omitempty" json:"period,omitempty"`
	Plus   bool      `yaml:"plus,omitempty" json:"plus,omitempty"`
}

// YearRange spans years; Period repeats in year steps.
type YearRange struct {
	Start  int  `yaml:"start,omitempty" json:"start,omitempty"`
	End    int  `yaml:"end,omitempty" json:"end,omitempty"`
	Period int  `yaml:"period,omitempty" json:"period,omitempty"`
	Plus   bool `yaml:"plus,omitempty" json:"plus,omitempty"`
}

// WeekRange spans ISO week numbers; Period repeats in week steps.
type WeekRange struct {
	Start  int `yaml:"start,omitempty" json:"start,omitempty"`
	End    int `yaml:"end,omitempty" json:"end,omitempty"`
	Period int `yaml:"period,omitempty" json:"period,omitempty"`
}
