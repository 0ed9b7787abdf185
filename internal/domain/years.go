package domain

import (
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

const infinityLiteral = "Infinity"

// Years is a duration in (possibly fractional) years. +Inf means the balance never depletes.
type Years float64

// Unlimited is the sentinel for a balance that never runs out
var Unlimited = Years(math.Inf(1))

// IsUnlimited reports whether y is the never-depletes sentinel
func (y Years) IsUnlimited() bool {
	return math.IsInf(float64(y), 1)
}

func (y Years) String() string {
	if y.IsUnlimited() {
		return infinityLiteral
	}
	return strconv.FormatFloat(float64(y), 'f', 1, 64)
}

// MarshalJSON encodes +Inf as the string "Infinity" since JSON has no infinity literal
func (y Years) MarshalJSON() ([]byte, error) {
	if y.IsUnlimited() {
		return []byte(`"` + infinityLiteral + `"`), nil
	}
	return []byte(strconv.FormatFloat(float64(y), 'f', -1, 64)), nil
}

// UnmarshalJSON accepts numbers and the "Infinity" string
func (y *Years) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `"`+infinityLiteral+`"` {
		*y = Unlimited
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*y = Years(v)
	return nil
}

// MarshalYAML mirrors MarshalJSON
func (y Years) MarshalYAML() (interface{}, error) {
	if y.IsUnlimited() {
		return infinityLiteral, nil
	}
	return float64(y), nil
}

// UnmarshalYAML mirrors UnmarshalJSON
func (y *Years) UnmarshalYAML(value *yaml.Node) error {
	if value.Value == infinityLiteral {
		*y = Unlimited
		return nil
	}
	v, err := strconv.ParseFloat(value.Value, 64)
	if err != nil {
		return err
	}
	*y = Years(v)
	return nil
}
