package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"videogames-be/internal/projection"
	"videogames-be/internal/validation"
)

func payload(t *testing.T, g projection.Group, body string) projection.Input {
	t.Helper()
	in, err := projection.Restrict(g, []byte(body))
	require.NoError(t, err)
	return in
}

// requireViolation asserts err is a ValidationError carrying a violation of
// rule on field, and returns all violations.
func requireViolation(t *testing.T, err error, field, rule string) []validation.Violation {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, v := range verr.Violations {
		if v.Field == field && v.Rule == rule {
			return verr.Violations
		}
	}
	t.Fatalf("no %s violation on %s in %v", rule, field, verr.Violations)
	return nil
}
