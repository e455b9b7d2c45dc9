package projection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidPayload is returned when a request body is not a JSON object.
var ErrInvalidPayload = errors.New("request body must be a JSON object")

// Input holds the raw values of a request body, restricted to a write group.
// A key is present only if the client sent it.
type Input map[string]json.RawMessage

// Restrict decodes body and drops every key the write group does not list.
func Restrict(g Group, body []byte) (Input, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, ErrInvalidPayload
	}
	in := make(Input, len(raw))
	for k, v := range raw {
		if Contains(g, k) {
			in[k] = v
		}
	}
	return in, nil
}

// Has reports whether the client sent the field.
func (in Input) Has(field string) bool {
	_, ok := in[field]
	return ok
}

// IsNull reports whether the client sent the field as a JSON null.
func (in Input) IsNull(field string) bool {
	return bytes.Equal(bytes.TrimSpace(in[field]), []byte("null"))
}

// String decodes a string field. A JSON null yields the empty string.
func (in Input) String(field string) (string, error) {
	if in.IsNull(field) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(in[field], &s); err != nil {
		return "", fmt.Errorf("%s must be a string", field)
	}
	return s, nil
}

// Date decodes a calendar date given as YYYY-MM-DD or RFC 3339. A JSON null
// yields the zero time.
func (in Input) Date(field string) (time.Time, error) {
	s, err := in.String(field)
	if err != nil || s == "" {
		return time.Time{}, err
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := ts.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%s must be a date (YYYY-MM-DD)", field)
}

// Ref decodes a reference to another record, given either as its id or as an
// object carrying an "id" key. A JSON null yields 0.
func (in Input) Ref(field string) (int64, error) {
	if in.IsNull(field) {
		return 0, nil
	}
	raw := in[field]

	var id int64
	if err := json.Unmarshal(raw, &id); err == nil {
		return id, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			return id, nil
		}
	}
	var obj struct {
		ID *int64 `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.ID != nil {
		return *obj.ID, nil
	}
	return 0, fmt.Errorf("%s must be an id or an object with an id", field)
}
