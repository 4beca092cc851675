package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vdftool/vdf/internal/document"
	"github.com/vdftool/vdf/internal/types"
)

// MakeMap creates a map from a JSON object.
// Key order is kept.
func MakeMap(t testing.TB, jsonDoc string) *types.MapValue {
	t.Helper()

	m, err := document.FromJSON([]byte(jsonDoc))
	require.NoError(t, err)

	return m
}

// MakeValue creates a single value from a JSON value.
func MakeValue(t testing.TB, jsonValue string) types.Value {
	t.Helper()

	m := MakeMap(t, `{"v": `+jsonValue+`}`)
	v, err := m.Get("v")
	require.NoError(t, err)

	return v
}

// RequireMapEqual fails the test if both trees differ, printing a diff.
// Children order matters.
func RequireMapEqual(t testing.TB, want, got *types.MapValue) {
	t.Helper()

	RequireValueEqual(t, want, got)
}

// RequireValueEqual fails the test if both values differ, printing a diff.
func RequireValueEqual(t testing.TB, want, got types.Value) {
	t.Helper()

	if diff := cmp.Diff(plain(want), plain(got)); diff != "" {
		require.Failf(t, "mismatched values, (-want, +got)", "%s", diff)
	}
}

type entry struct {
	Name  string
	Value any
}

// plain turns a tree into plain Go values that cmp can walk.
func plain(v types.Value) any {
	switch x := v.(type) {
	case *types.MapValue:
		if x == nil {
			return nil
		}
		entries := make([]entry, 0, x.Len())
		_ = x.Iterate(func(name string, v types.Value) error {
			entries = append(entries, entry{name, plain(v)})
			return nil
		})
		return entries
	case types.StringValue:
		return string(x)
	case types.IntegerValue:
		return uint32(x)
	}

	return v
}
