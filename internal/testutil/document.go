// Package testutil provides helpers to build and compare documents in tests.
package testutil

import (
	"testing"

	"github.com/chaisql/bsonmap/internal/testutil/assert"
	"github.com/chaisql/bsonmap/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// MakeDocument creates a document from a json string.
func MakeDocument(t testing.TB, jsonDoc string) types.Document {
	t.Helper()

	d, err := types.ParseJSON([]byte(jsonDoc))
	assert.NoError(t, err)

	return d
}

// MakeArray creates an array from values.
func MakeArray(t testing.TB, values ...types.Value) types.Array {
	t.Helper()

	a, err := types.NewArrayFromValues(values...)
	assert.NoError(t, err)

	return a
}

// BuildDocument calls Build on b and fails the test if an error occurred.
func BuildDocument(t testing.TB, b *types.Builder) types.Document {
	t.Helper()

	d, err := b.Build()
	assert.NoError(t, err)

	return d
}

// RequireDocEqual fails the test if want and got are not equal,
// printing a diff of their JSON representation.
func RequireDocEqual(t testing.TB, want, got types.Document) {
	t.Helper()

	if want.Equal(got) {
		return
	}

	tWant, err := want.MarshalJSON()
	require.NoError(t, err)
	tGot, err := got.MarshalJSON()
	require.NoError(t, err)

	if diff := cmp.Diff(string(tWant), string(tGot)); diff != "" {
		require.Failf(t, "mismatched documents, (-want, +got)", "%s", diff)
	}

	require.Fail(t, "documents are not equal", "%s", tWant)
}

// RequireValueEqual fails the test if want and got are not equal.
func RequireValueEqual(t testing.TB, want, got types.Value) {
	t.Helper()

	if types.Equal(want, got) {
		return
	}

	require.Failf(t, "mismatched values", "want %v, got %v", want, got)
}
