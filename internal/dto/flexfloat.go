package dto

import (
	"bytes"
	"strconv"
)

// FlexFloat is a float64 that tolerates the upstream feeds sending numbers as
// JSON strings. A value that cannot be coerced decodes as 0 instead of
// failing the whole document.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = 0

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			return nil
		}
		data = []byte(unquoted)
	}

	parsed, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return nil
	}

	*f = FlexFloat(parsed)
	return nil
}

// Float64 returns the underlying value, treating a nil receiver as 0.
func (f *FlexFloat) Float64() float64 {
	if f == nil {
		return 0
	}
	return float64(*f)
}

// FlexString is a string that tolerates JSON numbers, used for identifiers
// the feeds send in either form.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	*s = ""

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			return nil
		}
		*s = FlexString(unquoted)
		return nil
	}

	*s = FlexString(data)
	return nil
}
