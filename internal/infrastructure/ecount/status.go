package ecount

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Status is the upstream result code. The API returns it inconsistently as
// either a JSON number (200) or a string ("200"), so it is coerced to a
// string before comparison.
type Status string

// StatusOK is the only success value the upstream documents.
const StatusOK Status = "200"

func (s *Status) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("unmarshal status string: %w", err)
		}
		*s = Status(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("unmarshal status number: %w", err)
	}
	*s = Status(num.String())
	return nil
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// OK reports whether the upstream accepted the request.
func (s Status) OK() bool {
	return s == StatusOK
}
