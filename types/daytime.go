package types

import (
	"fmt"
	"time"
)

// DateTime wraps a time.Time struct, allowing for improved dateTime JSON compatibility.
// The remote API expects RFC3339 in UTC.
type DateTime struct {
	time.Time
}

// NewDateTime Creates a new DateTime struct, embedding a time.Time struct.
func NewDateTime(time time.Time) *DateTime {
	return &DateTime{Time: time}
}

func (dt DateTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", dt.UTC().Format(time.RFC3339))), nil
}

func (dt *DateTime) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid datetime value %s", string(data))
	}
	t, err := time.Parse(time.RFC3339, string(data[1:len(data)-1]))
	if err != nil {
		return err
	}
	dt.Time = t
	return nil
}
