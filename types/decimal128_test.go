package types_test

import (
	"testing"

	"github.com/chaisql/bsonmap/internal/testutil/assert"
	"github.com/chaisql/bsonmap/types"
	"github.com/stretchr/testify/require"
)

func TestDecimal128(t *testing.T) {
	tests := []struct {
		in, text   string
		high, low  uint64
		checkWords bool
	}{
		{"0", "0", 0x3040000000000000, 0, true},
		{"-0", "-0", 0xB040000000000000, 0, true},
		{"1", "1", 0x3040000000000000, 1, true},
		{"-1", "-1", 0xB040000000000000, 1, true},
		{"1.5", "1.5", 0x303E000000000000, 15, true},
		{"0.001", "0.001", 0x303A000000000000, 1, true},
		{"12345678901234567890", "12345678901234567890", 0x3040000000000000, 12345678901234567890, true},
		{"NaN", "NaN", 0x7C00000000000000, 0, true},
		{"Infinity", "Infinity", 0x7800000000000000, 0, true},
		{"-Infinity", "-Infinity", 0xF800000000000000, 0, true},
		{"1E+3", "1E+3", 0, 0, false},
		{"9999999999999999999999999999999999", "9999999999999999999999999999999999", 0, 0, false},
	}

	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			d, err := types.ParseDecimal128(test.in)
			assert.NoError(t, err)
			if test.checkWords {
				require.Equal(t, test.high, d.High, "high word %x", d.High)
				require.Equal(t, test.low, d.Low)
			}
			require.Equal(t, test.text, d.Text())
		})
	}

	t.Run("invalid", func(t *testing.T) {
		for _, s := range []string{"", "abc", "1.2.3"} {
			_, err := types.ParseDecimal128(s)
			assert.ErrorIs(t, err, types.ErrInvalidDecimal)
		}
	})

	t.Run("too many digits", func(t *testing.T) {
		_, err := types.ParseDecimal128("12345678901234567890123456789012345")
		assert.ErrorIs(t, err, types.ErrInvalidDecimal)
	})

	t.Run("trailing zeros folded into the exponent", func(t *testing.T) {
		d, err := types.ParseDecimal128("1234567890123456789012345678901234000")
		assert.NoError(t, err)
		require.Equal(t, "1.234567890123456789012345678901234E+36", d.Text())

		same, err := types.ParseDecimal128("1234567890123456789012345678901234E+3")
		assert.NoError(t, err)
		require.Equal(t, same, d)

		_, err = types.ParseDecimal128("12345678901234567890123456789012341")
		assert.ErrorIs(t, err, types.ErrInvalidDecimal)
	})

	t.Run("exponent clamped without loss", func(t *testing.T) {
		d, err := types.ParseDecimal128("1E+6112")
		assert.NoError(t, err)
		require.Equal(t, "1.0E+6112", d.Text())
	})

	t.Run("json", func(t *testing.T) {
		d, err := types.ParseDecimal128("-12.50")
		assert.NoError(t, err)
		data, err := d.MarshalJSON()
		assert.NoError(t, err)
		require.Equal(t, `{"$numberDecimal":"-12.50"}`, string(data))
	})
}
