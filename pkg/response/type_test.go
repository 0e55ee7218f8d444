package response_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"disaster-safety-assistant/pkg/response"
)

func TestDateTimeRoundTrip(t *testing.T) {
	tm := time.Date(2026, 8, 29, 15, 30, 45, 0, time.Local)
	dt := response.DateTime(tm)

	b, err := json.Marshal(dt)
	if err != nil {
		t.Fatalf("unexpected error marshaling DateTime: %v", err)
	}
	if !strings.HasPrefix(string(b), `"`) || !strings.HasSuffix(string(b), `"`) {
		t.Errorf("expected string JSON format, got %s", b)
	}

	var back response.DateTime
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unexpected error unmarshaling DateTime: %v", err)
	}
	if !time.Time(back).Equal(tm) {
		t.Errorf("round trip mismatch: want %v, got %v", tm, time.Time(back))
	}
}

func TestDateTimeUnmarshalRejectsGarbage(t *testing.T) {
	var dt response.DateTime
	if err := json.Unmarshal([]byte(`"not a timestamp"`), &dt); err == nil {
		t.Error("expected an error for a malformed timestamp")
	}
}
