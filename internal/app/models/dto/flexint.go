package dto

import (
	"bytes"
	"strconv"
)

// FlexInt is an integer field that tolerates the value arriving as a JSON
// number, a numeric string, null, or garbage. Clients of the legacy API send
// grade references in all of these shapes; anything unparseable is recorded
// as invalid rather than failing the whole payload.
type FlexInt struct {
	Value int64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler. It never returns an error for
// scalar content; unparseable values simply leave the field invalid.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		f.Valid = false
		return nil
	}

	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f.Valid = false
		return nil
	}

	f.Value = v
	f.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}
