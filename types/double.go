package types

import (
	"math"
	"strconv"

	"github.com/chaisql/bsonmap/internal/encoding"
)

var _ Value = NewDoubleValue(0)

type DoubleValue float64

// NewDoubleValue returns a 64-bit floating point value.
func NewDoubleValue(x float64) DoubleValue {
	return DoubleValue(x)
}

func (v DoubleValue) V() any {
	return float64(v)
}

func (v DoubleValue) Type() Type {
	return TypeDouble
}

func (v DoubleValue) String() string {
	return stringOf(v)
}

func (v DoubleValue) MarshalJSON() ([]byte, error) {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return []byte(`{"$numberDouble":"NaN"}`), nil
	case math.IsInf(f, 1):
		return []byte(`{"$numberDouble":"Infinity"}`), nil
	case math.IsInf(f, -1):
		return []byte(`{"$numberDouble":"-Infinity"}`), nil
	}

	abs := math.Abs(f)
	fmt := byte('f')
	if abs != 0 {
		if abs < 1e-6 || abs >= 1e21 {
			fmt = 'e'
		}
	}

	// By default the precision is -1 to use the smallest number of digits.
	// See https://pkg.go.dev/strconv#FormatFloat
	prec := -1
	// if the number is round, add .0
	if float64(int64(f)) == f && fmt == 'f' {
		prec = 1
	}

	return strconv.AppendFloat(nil, f, fmt, prec, 64), nil
}

func (v DoubleValue) appendPayload(dst []byte) []byte {
	return encoding.AppendDouble(dst, float64(v))
}
