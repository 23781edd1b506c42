package bsonmap_test

import (
	"testing"

	"github.com/chaisql/bsonmap"
	"github.com/chaisql/bsonmap/internal/testutil"
	"github.com/chaisql/bsonmap/internal/testutil/assert"
	"github.com/stretchr/testify/require"
)

type Garage struct {
	Owner string             `bson:"owner"`
	Car   bsonmap.Owned[Car] `bson:"car"`
}

func TestOwned(t *testing.T) {
	car := &Car{Model: "Lancelot", Year: 2017}
	g := Garage{Owner: "Suzaku", Car: bsonmap.NewOwned(car)}
	require.Same(t, car, g.Car.Get())

	v, err := bsonmap.Construct(g)
	assert.NoError(t, err)
	testutil.RequireDocEqual(t, testutil.MakeDocument(t, `{"owner": "Suzaku", "car": {"model": "Lancelot", "year": 2017}}`), v.View())

	got, err := bsonmap.Extract[Garage](v)
	assert.NoError(t, err)
	require.NotNil(t, got.Car.Get())
	require.Equal(t, *car, *got.Car.Get())
	require.NotSame(t, car, got.Car.Get())

	t.Run("released", func(t *testing.T) {
		g := g
		g.Car.Release()
		require.Nil(t, g.Car.Get())
		require.NotNil(t, car)

		v, err := bsonmap.Construct(g)
		assert.NoError(t, err)
		testutil.RequireDocEqual(t, testutil.MakeDocument(t, `{"owner": "Suzaku", "car": null}`), v.View())

		got, err := bsonmap.Extract[Garage](v)
		assert.NoError(t, err)
		require.Nil(t, got.Car.Get())
	})

	t.Run("round trip", func(t *testing.T) {
		testutil.RequireRoundTrip(t, g)
		testutil.RequireRoundTrip(t, Garage{Owner: "nobody"})
	})

	t.Run("missing", func(t *testing.T) {
		got, err := bsonmap.Get[Garage](testutil.MakeDocument(t, `{"owner": "Suzaku", "car": {"model": "Lancelot"}}`))
		assert.ErrorIs(t, err, bsonmap.ErrMissingField)
		require.Nil(t, got.Car.Get())
	})
}
