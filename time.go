package jwt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// maxNumericDate is 9999-12-31T23:59:59Z, the largest timestamp RFC
// 3339 can still represent.
const maxNumericDate = 253402300799

// NumericDate represents a JSON numeric date value as specified in
// RFC 7519: seconds since the Unix epoch. The zero value marshals as
// null and is treated as unset.
type NumericDate struct {
	time.Time
}

// NewNumericDate creates a NumericDate from a time.Time.
func NewNumericDate(t time.Time) NumericDate {
	return NumericDate{Time: t}
}

// MarshalJSON implements json.Marshaler.
func (d *NumericDate) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, d.Unix(), 10), nil
}

// UnmarshalJSON implements json.Unmarshaler. Integer timestamps are
// accepted bare or quoted; null and the empty string mean unset.
func (d *NumericDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	unix, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid time format: expected unix timestamp, got %s", s)
	}
	if unix < 0 || unix > maxNumericDate {
		return fmt.Errorf("invalid unix timestamp: %d", unix)
	}

	d.Time = time.Unix(unix, 0).UTC()
	return nil
}
