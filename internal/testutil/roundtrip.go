package testutil

import (
	"testing"

	"github.com/chaisql/bsonmap"
	"github.com/chaisql/bsonmap/internal/testutil/assert"
	"github.com/stretchr/testify/require"
)

// RequireRoundTrip encodes x, decodes the result and fails the test
// if the decoded value differs from x. It returns the encoded value.
func RequireRoundTrip[T any](t testing.TB, x T) bsonmap.Value {
	t.Helper()

	v, err := bsonmap.Construct(x)
	assert.NoError(t, err)

	got, err := bsonmap.Extract[T](v)
	assert.NoError(t, err)
	require.Equal(t, x, got)

	// encoding the decoded value must give back the same document
	again, err := bsonmap.Construct(got)
	assert.NoError(t, err)
	RequireDocEqual(t, v.View(), again.View())

	return v
}
