package response

import (
	"encoding/json"
	"time"
)

// Resp is the standard JSON envelope for every API response.
type Resp struct {
	ErrorCode int      `json:"error_code"`
	Message   string   `json:"message"`
	Data      any      `json:"data,omitempty"`
	Errors    any      `json:"errors,omitempty"`
	Timestamp DateTime `json:"timestamp"`
}

// DateTime is the envelope timestamp; it marshals as DateTimeFormat in
// local time.
type DateTime time.Time

// MarshalJSON implements json.Marshaler for DateTime.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Local().Format(DateTimeFormat))
}

// UnmarshalJSON implements json.Unmarshaler for DateTime.
func (d *DateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.ParseInLocation(DateTimeFormat, s, time.Local)
	if err != nil {
		return err
	}
	*d = DateTime(t)
	return nil
}
