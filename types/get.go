package types

import "github.com/cockroachdb/errors"

// Get returns v as a T.
// It returns ErrWrongType if v doesn't hold a T, it never converts between types.
//
//	s, err := types.Get[types.StringValue](v)
func Get[T Value](v Value) (T, error) {
	x, ok := v.(T)
	if !ok {
		var zero T
		if any(zero) == nil {
			return zero, errors.Wrapf(ErrWrongType, "cannot read %s value", typeOf(v))
		}
		return zero, wrongType(v, zero.Type())
	}

	return x, nil
}

// Extractable lists the native types ExtractInto can write to.
type Extractable interface {
	string | int32 | int64 | float64 | bool | Decimal128Value
}

// ExtractInto writes the payload of v to dst.
// Strings can be extracted from string, code and symbol values.
// Other types must match exactly: an int32 value cannot be extracted into an int64.
// If the payload doesn't match the shape of dst, ErrWrongType is returned
// and dst is left untouched.
func ExtractInto[T Extractable](v Value, dst *T) error {
	switch p := any(dst).(type) {
	case *string:
		switch x := v.(type) {
		case StringValue:
			*p = string(x)
		case CodeValue:
			*p = string(x)
		case SymbolValue:
			*p = string(x)
		default:
			return wrongType(v, TypeString)
		}
	case *int32:
		x, err := Get[Int32Value](v)
		if err != nil {
			return err
		}
		*p = int32(x)
	case *int64:
		x, err := Get[Int64Value](v)
		if err != nil {
			return err
		}
		*p = int64(x)
	case *float64:
		x, err := Get[DoubleValue](v)
		if err != nil {
			return err
		}
		*p = float64(x)
	case *bool:
		x, err := Get[BooleanValue](v)
		if err != nil {
			return err
		}
		*p = bool(x)
	case *Decimal128Value:
		x, err := Get[Decimal128Value](v)
		if err != nil {
			return err
		}
		*p = x
	}

	return nil
}

// ExtractPairInto writes the two fields of a regex (pattern, options) to a and b
// when T is a string, or the two fields of a timestamp (increment, seconds)
// when T is a uint32.
// If the payload doesn't match, ErrWrongType is returned and a and b are left untouched.
func ExtractPairInto[T string | uint32](v Value, a, b *T) error {
	switch pa := any(a).(type) {
	case *string:
		x, err := Get[RegexValue](v)
		if err != nil {
			return err
		}
		*pa = x.Pattern
		*any(b).(*string) = x.Options
	case *uint32:
		x, err := Get[TimestampValue](v)
		if err != nil {
			return err
		}
		*pa = x.Increment
		*any(b).(*uint32) = x.Seconds
	}

	return nil
}
