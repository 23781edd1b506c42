package types

import (
	"math"
	"strconv"

	"github.com/chaisql/bsonmap/internal/encoding"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

var _ Value = NewInt32Value(0)

type Int32Value int32

// NewInt32Value returns a 32-bit signed integer value.
func NewInt32Value(x int32) Int32Value {
	return Int32Value(x)
}

func (v Int32Value) V() any {
	return int32(v)
}

func (v Int32Value) Type() Type {
	return TypeInt32
}

func (v Int32Value) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v Int32Value) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(v), 10), nil
}

func (v Int32Value) appendPayload(dst []byte) []byte {
	return encoding.AppendInt32(dst, int32(v))
}

var _ Value = NewInt64Value(0)

type Int64Value int64

// NewInt64Value returns a 64-bit signed integer value.
func NewInt64Value(x int64) Int64Value {
	return Int64Value(x)
}

func (v Int64Value) V() any {
	return int64(v)
}

func (v Int64Value) Type() Type {
	return TypeInt64
}

func (v Int64Value) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v Int64Value) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(v), 10), nil
}

func (v Int64Value) appendPayload(dst []byte) []byte {
	return encoding.AppendInt64(dst, int64(v))
}

// NewIntegerValue returns an int32 value if x fits in 32 bits,
// an int64 value otherwise.
func NewIntegerValue[T constraints.Signed](x T) Value {
	i := int64(x)
	if i >= math.MinInt32 && i <= math.MaxInt32 {
		return Int32Value(i)
	}

	return Int64Value(i)
}

// AsInteger returns the integer held by v, converted to T.
// v must be an int32 or an int64 and its value must fit in T.
func AsInteger[T constraints.Integer](v Value) (T, error) {
	var i int64
	switch x := v.(type) {
	case Int32Value:
		i = int64(x)
	case Int64Value:
		i = int64(x)
	default:
		return 0, wrongType(v, TypeInt64)
	}

	t := T(i)
	if int64(t) != i || (i < 0) != (t < 0) {
		return 0, errors.Wrapf(ErrWrongType, "integer %d overflows %T", i, t)
	}

	return t, nil
}
