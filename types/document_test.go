package types_test

import (
	"encoding/json"
	"testing"

	"github.com/chaisql/bsonmap/internal/testutil"
	"github.com/chaisql/bsonmap/internal/testutil/assert"
	"github.com/chaisql/bsonmap/types"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		d := testutil.BuildDocument(t, types.NewBuilder())
		require.True(t, d.IsEmpty())
		require.Equal(t, 0, d.Len())
		require.True(t, d.Equal(types.Document{}))
		require.Equal(t, []byte{5, 0, 0, 0, 0}, d.Bytes())
	})

	t.Run("keys in order", func(t *testing.T) {
		d := testutil.BuildDocument(t, types.NewBuilder().
			Append("first_name", types.NewStringValue("Lelouch")).
			Append("last_name", types.NewStringValue("Lamperouge")).
			Append("age", types.NewInt32Value(18)))

		require.Equal(t, []string{"first_name", "last_name", "age"}, d.Keys())
		require.Equal(t, 3, d.Len())

		v, err := d.Lookup("last_name")
		assert.NoError(t, err)
		testutil.RequireValueEqual(t, types.NewStringValue("Lamperouge"), v)

		_, err = d.Lookup("favorite_colors")
		assert.ErrorIs(t, err, types.ErrFieldNotFound)
	})

	t.Run("build is a snapshot", func(t *testing.T) {
		b := types.NewBuilder().Append("a", types.NewInt32Value(1))
		d1 := testutil.BuildDocument(t, b)
		b.Append("b", types.NewInt32Value(2))
		d2 := testutil.BuildDocument(t, b)

		require.Equal(t, 1, d1.Len())
		require.Equal(t, 2, d2.Len())
		require.Equal(t, 2, b.Len())
	})

	t.Run("duplicate keys", func(t *testing.T) {
		d := testutil.BuildDocument(t, types.NewBuilder().
			Append("a", types.NewInt32Value(1)).
			Append("a", types.NewInt32Value(2)))

		v, err := d.Lookup("a")
		assert.NoError(t, err)
		testutil.RequireValueEqual(t, types.NewInt32Value(1), v)
	})

	t.Run("nil value is null", func(t *testing.T) {
		d := testutil.BuildDocument(t, types.NewBuilder().Append("a", nil))
		v, err := d.Lookup("a")
		assert.NoError(t, err)
		require.Equal(t, types.TypeNull, v.Type())
	})

	t.Run("NUL in key", func(t *testing.T) {
		b := types.NewBuilder().Append("a\x00b", types.NewInt32Value(1)).Append("c", types.NewInt32Value(1))
		assert.Error(t, b.Err())
		_, err := b.Build()
		assert.Error(t, err)
	})

	t.Run("NUL in regex", func(t *testing.T) {
		_, err := types.NewBuilder().Append("r", types.NewRegexValue("a\x00", "")).Build()
		assert.Error(t, err)
	})

	t.Run("invalid UTF-8", func(t *testing.T) {
		for _, v := range []types.Value{
			types.NewStringValue("a\xff"),
			types.NewCodeValue("a\xff"),
			types.NewSymbolValue("a\xff"),
		} {
			_, err := types.NewBuilder().Append("s", v).Build()
			assert.Error(t, err)
		}

		d := testutil.BuildDocument(t, types.NewBuilder().Append("s", types.NewStringValue("héllo")))
		require.Equal(t, `{"s":"héllo"}`, d.String())
	})

	t.Run("reset", func(t *testing.T) {
		b := types.NewBuilder().Append("a\x00", types.NewInt32Value(1))
		b.Reset()
		assert.NoError(t, b.Err())
		d := testutil.BuildDocument(t, b.Append("a", types.NewInt32Value(1)))
		require.Equal(t, []string{"a"}, d.Keys())
	})
}

func TestDocumentEqual(t *testing.T) {
	a := testutil.MakeDocument(t, `{"first_name": "Lelouch", "last_name": "Lamperouge", "age": 18}`)
	b := testutil.BuildDocument(t, types.NewBuilder().
		Append("first_name", types.NewStringValue("Lelouch")).
		Append("last_name", types.NewStringValue("Lamperouge")).
		Append("age", types.NewInt32Value(18)))
	reordered := testutil.BuildDocument(t, types.NewBuilder().
		Append("age", types.NewInt32Value(18)).
		Append("first_name", types.NewStringValue("Lelouch")).
		Append("last_name", types.NewStringValue("Lamperouge")))
	otherType := testutil.BuildDocument(t, types.NewBuilder().
		Append("first_name", types.NewStringValue("Lelouch")).
		Append("last_name", types.NewStringValue("Lamperouge")).
		Append("age", types.NewInt64Value(18)))

	require.True(t, a.Equal(a))
	require.True(t, a.Equal(b))
	require.True(t, b.Equal(a))
	require.False(t, a.Equal(reordered))
	require.False(t, reordered.Equal(a))
	require.False(t, a.Equal(otherType))
	require.False(t, a.Equal(types.Document{}))

	t.Run("nested", func(t *testing.T) {
		x := testutil.MakeDocument(t, `{"a": {"b": [1, {"c": null}]}}`)
		y := testutil.MakeDocument(t, `{"a": {"b": [1, {"c": null}]}}`)
		z := testutil.MakeDocument(t, `{"a": {"b": [1, {"c": false}]}}`)
		require.True(t, x.Equal(y))
		require.False(t, x.Equal(z))
	})
}

func TestNewDocument(t *testing.T) {
	d := testutil.MakeDocument(t, `{"a": 1}`)
	raw := d.Bytes()

	got, err := types.NewDocument(raw)
	assert.NoError(t, err)
	require.True(t, d.Equal(got))

	// the document owns its bytes
	raw[len(raw)-2] = 9
	require.True(t, d.Equal(got))

	_, err = types.NewDocument(raw[:len(raw)-1])
	assert.ErrorIs(t, err, types.ErrMalformedWireData)

	_, err = types.NewDocument(nil)
	assert.ErrorIs(t, err, types.ErrMalformedWireData)
}

func TestArray(t *testing.T) {
	a := testutil.MakeArray(t, types.NewInt32Value(1), types.NewStringValue("two"), types.NewNullValue())

	require.Equal(t, 3, a.Len())
	require.Equal(t, []string{"0", "1", "2"}, a.Document().Keys())

	v, err := a.Index(1)
	assert.NoError(t, err)
	testutil.RequireValueEqual(t, types.NewStringValue("two"), v)

	_, err = a.Index(3)
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)

	var got []types.Value
	err = a.Iterate(func(i int, v types.Value) error {
		require.Equal(t, len(got), i)
		got = append(got, v)
		return nil
	})
	assert.NoError(t, err)
	require.Len(t, got, 3)

	b := testutil.MakeArray(t, types.NewInt32Value(1), types.NewStringValue("two"), types.NewNullValue())
	c := testutil.MakeArray(t, types.NewInt32Value(1), types.NewStringValue("two"))
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))

	data, err := a.MarshalJSON()
	assert.NoError(t, err)
	require.Equal(t, `[1,"two",null]`, string(data))
}

func TestParseJSON(t *testing.T) {
	d := testutil.MakeDocument(t, `{"a": 1, "b": 1.5, "c": 10000000000, "d": "x", "e": true, "f": null, "g": [1, "y"], "h": {"i": -1}}`)

	expected := testutil.BuildDocument(t, types.NewBuilder().
		Append("a", types.NewInt32Value(1)).
		Append("b", types.NewDoubleValue(1.5)).
		Append("c", types.NewInt64Value(10000000000)).
		Append("d", types.NewStringValue("x")).
		Append("e", types.NewBooleanValue(true)).
		Append("f", types.NewNullValue()).
		AppendArray("g", testutil.MakeArray(t, types.NewInt32Value(1), types.NewStringValue("y"))).
		AppendDocument("h", testutil.BuildDocument(t, types.NewBuilder().Append("i", types.NewInt32Value(-1)))))

	testutil.RequireDocEqual(t, expected, d)

	t.Run("invalid", func(t *testing.T) {
		_, err := types.ParseJSON([]byte(`[1, 2]`))
		assert.Error(t, err)

		_, err = types.ParseJSON([]byte(`{"a": [1, }`))
		assert.Error(t, err)
	})

	t.Run("json.Unmarshal", func(t *testing.T) {
		var got struct {
			Doc types.Document `json:"doc"`
		}
		err := json.Unmarshal([]byte(`{"doc": {"a": 1, "b": "c"}}`), &got)
		assert.NoError(t, err)
		testutil.RequireDocEqual(t, testutil.MakeDocument(t, `{"a": 1, "b": "c"}`), got.Doc)
	})

	t.Run("round trip", func(t *testing.T) {
		data, err := d.MarshalJSON()
		assert.NoError(t, err)
		got := testutil.MakeDocument(t, string(data))
		testutil.RequireDocEqual(t, d, got)
	})
}
