package bsonmap_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/chaisql/bsonmap"
	"github.com/chaisql/bsonmap/internal/testutil"
	"github.com/chaisql/bsonmap/internal/testutil/assert"
	"github.com/chaisql/bsonmap/types"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

type Celsius struct {
	Degrees float64
}

type Room struct {
	Name string  `bson:"name"`
	Temp Celsius `bson:"temp"`
}

func celsiusCodec() bsonmap.Codec[Celsius] {
	return bsonmap.CodecFuncs[Celsius]{
		Encode: func(c Celsius) (types.Document, error) {
			return types.NewBuilder().Append("c", types.NewDoubleValue(c.Degrees)).Build()
		},
		Decode: func(d types.Document) (Celsius, error) {
			v, err := d.Lookup("c")
			if err != nil {
				return Celsius{}, err
			}

			f, err := types.Get[types.DoubleValue](v)
			if err != nil {
				return Celsius{}, err
			}

			return Celsius{Degrees: float64(f)}, nil
		},
	}
}

// Version is stored as a single string.
type Version struct {
	Major, Minor int
}

func (v Version) MarshalDocument(b *types.Builder) error {
	b.Append("v", types.NewStringValue(fmt.Sprintf("%d.%d", v.Major, v.Minor)))
	return b.Err()
}

func (v *Version) UnmarshalDocument(d types.Document) error {
	x, err := d.Lookup("v")
	if err != nil {
		return err
	}

	s, err := types.Get[types.StringValue](x)
	if err != nil {
		return err
	}

	_, err = fmt.Sscanf(string(s), "%d.%d", &v.Major, &v.Minor)
	return err
}

type Release struct {
	Name    string   `bson:"name"`
	Version Version  `bson:"version"`
	Prev    *Version `bson:"prev"`
}

func TestRegistry(t *testing.T) {
	r := bsonmap.NewRegistry()
	bsonmap.Register(r, celsiusCodec())

	t.Run("registered codec", func(t *testing.T) {
		v, err := bsonmap.ConstructWith(r, Celsius{Degrees: 21.5})
		assert.NoError(t, err)
		testutil.RequireDocEqual(t, testutil.MakeDocument(t, `{"c": 21.5}`), v.View())

		c, err := bsonmap.ExtractWith[Celsius](r, v)
		assert.NoError(t, err)
		require.Equal(t, Celsius{Degrees: 21.5}, c)
	})

	t.Run("default registry uses reflection", func(t *testing.T) {
		v, err := bsonmap.Construct(Celsius{Degrees: 21.5})
		assert.NoError(t, err)
		testutil.RequireDocEqual(t, testutil.MakeDocument(t, `{"degrees": 21.5}`), v.View())
	})

	t.Run("nested", func(t *testing.T) {
		room := Room{Name: "lab", Temp: Celsius{Degrees: 19.5}}

		v, err := bsonmap.ConstructWith(r, room)
		assert.NoError(t, err)
		testutil.RequireDocEqual(t, testutil.MakeDocument(t, `{"name": "lab", "temp": {"c": 19.5}}`), v.View())

		got, err := bsonmap.ExtractWith[Room](r, v)
		assert.NoError(t, err)
		require.Equal(t, room, got)

		_, err = bsonmap.ExtractWith[Room](r, bsonmap.NewValueFromDocument(testutil.MakeDocument(t, `{"name": "lab", "temp": {"degrees": 19.5}}`)))
		assert.ErrorIs(t, err, types.ErrFieldNotFound)
		require.Contains(t, err.Error(), "temp")
	})

	t.Run("codec errors", func(t *testing.T) {
		errBoom := errors.New("boom")
		r := bsonmap.NewRegistry()
		bsonmap.Register[Celsius](r, bsonmap.CodecFuncs[Celsius]{
			Encode: func(Celsius) (types.Document, error) { return types.Document{}, errBoom },
			Decode: func(types.Document) (Celsius, error) { return Celsius{}, errBoom },
		})

		_, err := bsonmap.ConstructWith(r, Room{})
		assert.ErrorIs(t, err, errBoom)

		room, err := bsonmap.ExtractWith[Room](r, bsonmap.NewValueFromDocument(testutil.MakeDocument(t, `{"name": "lab", "temp": {}}`)))
		assert.ErrorIs(t, err, errBoom)
		require.Equal(t, Room{}, room)
	})

	t.Run("concurrent use", func(t *testing.T) {
		r := bsonmap.NewRegistry()

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				bsonmap.Register(r, celsiusCodec())
				_, err := bsonmap.ConstructWith(r, Room{Name: "lab"})
				if err != nil {
					t.Error(err)
				}
			}()
		}
		wg.Wait()
	})
}

func TestMarshaler(t *testing.T) {
	rel := Release{Name: "stable", Version: Version{Major: 1, Minor: 2}, Prev: &Version{Major: 1, Minor: 1}}

	v, err := bsonmap.Construct(rel)
	assert.NoError(t, err)
	testutil.RequireDocEqual(t, testutil.MakeDocument(t, `{"name": "stable", "version": {"v": "1.2"}, "prev": {"v": "1.1"}}`), v.View())

	got, err := bsonmap.Extract[Release](v)
	assert.NoError(t, err)
	require.Equal(t, rel, got)
	require.NotSame(t, rel.Prev, got.Prev)

	t.Run("top level", func(t *testing.T) {
		v, err := bsonmap.Construct(&Version{Major: 3})
		assert.NoError(t, err)
		testutil.RequireDocEqual(t, testutil.MakeDocument(t, `{"v": "3.0"}`), v.View())

		ver, err := bsonmap.Extract[*Version](v)
		assert.NoError(t, err)
		require.Equal(t, &Version{Major: 3}, ver)
	})

	t.Run("codec takes precedence", func(t *testing.T) {
		r := bsonmap.NewRegistry()
		bsonmap.Register[Version](r, bsonmap.CodecFuncs[Version]{
			Encode: func(v Version) (types.Document, error) {
				return types.NewBuilder().
					Append("major", types.NewInt32Value(int32(v.Major))).
					Append("minor", types.NewInt32Value(int32(v.Minor))).
					Build()
			},
			Decode: func(d types.Document) (Version, error) {
				return bsonmap.GetWith[Version](bsonmap.NewRegistry(), d)
			},
		})

		v, err := bsonmap.ConstructWith(r, Version{Major: 1, Minor: 2})
		assert.NoError(t, err)
		testutil.RequireDocEqual(t, testutil.MakeDocument(t, `{"major": 1, "minor": 2}`), v.View())

		// the inner registry has no codec, so the Unmarshaler is used and fails
		_, err = bsonmap.ExtractWith[Version](r, v)
		assert.ErrorIs(t, err, types.ErrFieldNotFound)
	})

	t.Run("unmarshaler error", func(t *testing.T) {
		d := testutil.MakeDocument(t, `{"name": "stable", "version": {"v": 12}, "prev": null}`)

		rel, err := bsonmap.Get[Release](d)
		assert.ErrorIs(t, err, types.ErrWrongType)
		require.Contains(t, err.Error(), "version")
		require.Equal(t, Release{}, rel)
	})
}
