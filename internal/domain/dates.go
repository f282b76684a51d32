package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DateField holds a date that the seed document may give either as a whole
// number of days relative to today or as a literal string. Once normalized,
// only Literal is set.
type DateField struct {
	Days    *int
	Literal string
}

// RelativeDays returns a DateField expressed as an offset in days.
func RelativeDays(n int) DateField {
	return DateField{Days: &n}
}

// LiteralDate returns a DateField holding an already formatted date.
func LiteralDate(s string) DateField {
	return DateField{Literal: s}
}

// IsRelative reports whether the field still needs normalizing.
func (d DateField) IsRelative() bool {
	return d.Days != nil
}

// String returns the literal form, or the raw offset for unnormalized values.
func (d DateField) String() string {
	if d.Days != nil {
		return strconv.Itoa(*d.Days)
	}
	return d.Literal
}

// Time parses the literal as YYYY-MM-DD. Relative or malformed values report
// ok=false.
func (d DateField) Time() (time.Time, bool) {
	if d.Days != nil || d.Literal == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, d.Literal)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (d DateField) MarshalJSON() ([]byte, error) {
	if d.Days != nil {
		return json.Marshal(*d.Days)
	}
	return json.Marshal(d.Literal)
}

func (d *DateField) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*d = RelativeDays(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a day offset or a string: %w", err)
	}
	*d = LiteralDate(s)
	return nil
}

func (d *DateField) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", node.Line)
	}
	if node.Tag == "!!int" {
		n, err := strconv.Atoi(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*d = RelativeDays(n)
		return nil
	}
	*d = LiteralDate(node.Value)
	return nil
}
