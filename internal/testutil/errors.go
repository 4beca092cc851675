package testutil

import (
	"testing"

	"github.com/cockroachdb/errors"
)

// ErrorIs fails the test unless err matches target in errors.Is terms.
func ErrorIs(t testing.TB, err error, target error) {
	t.Helper()
	ErrorIsf(t, err, target, "expected error %v, got %v", target, err)
}

// ErrorIsf is ErrorIs with a custom message. The full error chain,
// stack included, is logged on failure.
func ErrorIsf(t testing.TB, err error, target error, format string, args ...any) {
	t.Helper()

	if errors.Is(err, target) {
		return
	}

	t.Logf(format, args...)
	if err != nil {
		t.Logf("%+v", err)
	}
	t.FailNow()
}
