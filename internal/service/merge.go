package service

import (
	"strings"
	"time"

	"videogames-be/internal/projection"
	"videogames-be/internal/validation"
)

// merger copies the fields present in a write payload onto an existing
// record. Absent fields keep their previous value; fields that cannot be
// decoded are recorded as violations and left untouched.
type merger struct {
	in         projection.Input
	violations []validation.Violation
}

func newMerger(in projection.Input) *merger {
	return &merger{in: in}
}

func (m *merger) fail(field, rule, message string) {
	m.violations = append(m.violations, validation.Violation{Field: field, Rule: rule, Message: message})
}

func (m *merger) string(field string, dst *string) {
	if !m.in.Has(field) {
		return
	}
	s, err := m.in.String(field)
	if err != nil {
		m.fail(field, "type", err.Error())
		return
	}
	*dst = strings.TrimSpace(s)
}

// secret decodes a string field as sent, without trimming. Absent and null
// fields yield the empty string.
func (m *merger) secret(field string) string {
	if !m.in.Has(field) {
		return ""
	}
	s, err := m.in.String(field)
	if err != nil {
		m.fail(field, "type", err.Error())
		return ""
	}
	return s
}

func (m *merger) date(field string, dst *time.Time) {
	if !m.in.Has(field) {
		return
	}
	d, err := m.in.Date(field)
	if err != nil {
		m.fail(field, "type", err.Error())
		return
	}
	*dst = d
}

// ref returns the referenced id and whether the payload carried the field
// in a decodable form. A null reference yields id 0.
func (m *merger) ref(field string) (int64, bool) {
	if !m.in.Has(field) {
		return 0, false
	}
	id, err := m.in.Ref(field)
	if err != nil {
		m.fail(field, "type", err.Error())
		return 0, false
	}
	return id, true
}

// check validates the merged record and returns a ValidationError when the
// merge or the entity constraints failed. Constraint failures on a field that
// already failed to merge are not reported twice.
func (m *merger) check(v *validation.Validator, record any) error {
	violations := m.violations
	reported := make(map[string]bool, len(violations))
	for _, vi := range violations {
		reported[vi.Field] = true
	}
	for _, vi := range v.Struct(record) {
		root, _, _ := strings.Cut(vi.Field, ".")
		if reported[root] {
			continue
		}
		violations = append(violations, vi)
	}
	if len(violations) > 0 {
		return newValidationError(violations...)
	}
	return nil
}
