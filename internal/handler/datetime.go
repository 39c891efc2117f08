package handler

import (
	"fmt"
	"strings"
	"time"
)

// ISOTime wraps time.Time so request payloads may carry a due date either as
// an RFC 3339 timestamp or as the timezone-less ISO-8601 text many clients
// produce. Timezone-less values are read as UTC. Serialization is plain
// RFC 3339 via the embedded time.Time.
type ISOTime struct {
	time.Time
}

// Layouts tried in order; time.Parse accepts fractional seconds after the
// seconds field even when the layout omits them.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *ISOTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range isoLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as an ISO-8601 timestamp", s)
}

// TimePtr returns the wrapped time as *time.Time, nil when the receiver is
// nil (field absent or null in the payload).
func (t *ISOTime) TimePtr() *time.Time {
	if t == nil {
		return nil
	}
	tt := t.Time
	return &tt
}
