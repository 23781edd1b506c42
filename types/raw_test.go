package types_test

import (
	"testing"

	"github.com/chaisql/bsonmap/internal/testutil"
	"github.com/chaisql/bsonmap/internal/testutil/assert"
	"github.com/chaisql/bsonmap/types"
	"github.com/stretchr/testify/require"
)

func TestFromRaw(t *testing.T) {
	for _, v := range sampleValues(t) {
		t.Run(v.Type().String(), func(t *testing.T) {
			d := testutil.BuildDocument(t, types.NewBuilder().
				Append("first", types.NewNullValue()).
				Append("key", v))
			raw := d.Bytes()

			// first element starts after the length prefix,
			// its header is 1 type byte and "first\x00"
			offset := uint32(4 + 1 + len("first") + 1 + 0)
			got, err := types.FromRaw(raw, uint32(len(raw)), offset, uint32(len("key")))
			assert.NoError(t, err)
			require.Equal(t, v.Type(), got.Type())
			testutil.RequireValueEqual(t, v, got)

			// the value doesn't reference the buffer
			for i := range raw {
				raw[i] = 0
			}
			testutil.RequireValueEqual(t, v, got)
		})
	}
}

func TestFromRawErrors(t *testing.T) {
	d := testutil.BuildDocument(t, types.NewBuilder().Append("a", types.NewStringValue("hello")))
	raw := d.Bytes()

	t.Run("unsupported type", func(t *testing.T) {
		bad := append([]byte(nil), raw...)
		bad[4] = 0x20
		_, err := types.FromRaw(bad, uint32(len(bad)), 4, 1)
		assert.ErrorIs(t, err, types.ErrMalformedWireData)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := types.FromRaw(raw, 10, 4, 1)
		assert.ErrorIs(t, err, types.ErrMalformedWireData)
	})

	t.Run("length exceeds buffer", func(t *testing.T) {
		_, err := types.FromRaw(raw, uint32(len(raw)+1), 4, 1)
		assert.ErrorIs(t, err, types.ErrMalformedWireData)
	})

	t.Run("wrong key length", func(t *testing.T) {
		_, err := types.FromRaw(raw, uint32(len(raw)), 4, 2)
		assert.ErrorIs(t, err, types.ErrMalformedWireData)
	})

	t.Run("invalid UTF-8", func(t *testing.T) {
		bad := append([]byte(nil), raw...)
		// first byte of "hello"
		bad[4+1+2+4] = 0xff
		_, err := types.FromRaw(bad, uint32(len(bad)), 4, 1)
		assert.ErrorIs(t, err, types.ErrMalformedWireData)

		_, err = types.NewDocument(bad)
		assert.ErrorIs(t, err, types.ErrMalformedWireData)
	})

	t.Run("invalid embedded document", func(t *testing.T) {
		sub := testutil.MakeDocument(t, `{"x": 1}`)
		d := testutil.BuildDocument(t, types.NewBuilder().AppendDocument("s", sub))
		bad := d.Bytes()
		// corrupt the type byte of the embedded field "x"
		bad[4+1+2+4] = 0x42
		_, err := types.FromRaw(bad, uint32(len(bad)), 4, 1)
		assert.ErrorIs(t, err, types.ErrMalformedWireData)
	})
}
