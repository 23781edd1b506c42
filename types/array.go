package types

import (
	"bytes"

	"github.com/chaisql/bsonmap/internal/encoding"
	"github.com/cockroachdb/errors"
)

// An Array is a document whose keys are the ascending indexes "0", "1", ...
// Values are read by position. The zero value is an empty array.
type Array struct {
	doc Document
}

// NewArray validates raw and returns an array holding a copy of it.
func NewArray(raw []byte) (Array, error) {
	d, err := NewDocument(raw)
	if err != nil {
		return Array{}, err
	}

	return Array{doc: d}, nil
}

// Document returns the array as a document keyed by index.
func (a Array) Document() Document {
	return a.doc
}

// Bytes returns a copy of the encoded array.
func (a Array) Bytes() []byte {
	return a.doc.Bytes()
}

// Iterate goes through all the values of the array and calls the given function by passing each one of them.
// If the given function returns an error, the iteration stops.
func (a Array) Iterate(fn func(i int, v Value) error) error {
	var i int
	return a.doc.Iterate(func(_ string, v Value) error {
		err := fn(i, v)
		i++
		return err
	})
}

// Index returns the value at position i.
// It returns ErrIndexOutOfRange if the array has fewer than i+1 values.
func (a Array) Index(i int) (Value, error) {
	raw := a.doc.bytes()

	var found *encoding.Element
	var n int
	err := encoding.Iterate(raw, func(e encoding.Element) error {
		if n == i {
			found = &e
			return errStop
		}
		n++
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, err
	}
	if found == nil {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", i, n)
	}

	v, err := decodeElement(raw, *found)
	if err != nil {
		return nil, err
	}

	return v, nil
}

// Len returns the number of values of the array.
func (a Array) Len() int {
	return a.doc.Len()
}

// Equal reports whether a and other hold equal values in the same order.
// Keys are not compared. As with Document.Equal, arrays with identical
// encodings are always equal, even if they hold NaN.
func (a Array) Equal(other Array) bool {
	if bytes.Equal(a.doc.bytes(), other.doc.bytes()) {
		return true
	}

	var x, y []Value
	if a.Iterate(func(_ int, v Value) error { x = append(x, v); return nil }) != nil {
		return false
	}
	if other.Iterate(func(_ int, v Value) error { y = append(y, v); return nil }) != nil {
		return false
	}
	if len(x) != len(y) {
		return false
	}

	for i := range x {
		if !Equal(x[i], y[i]) {
			return false
		}
	}

	return true
}

func (a Array) String() string {
	data, err := a.MarshalJSON()
	if err != nil {
		return err.Error()
	}

	return string(data)
}

func (a Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('[')
	err := a.Iterate(func(i int, v Value) error {
		if i > 0 {
			buf.WriteByte(',')
		}

		data, err := v.MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte(']')

	return buf.Bytes(), nil
}

var _ Value = NewArrayValue(Array{})

// ArrayValue is an embedded array.
type ArrayValue struct {
	Array
}

func NewArrayValue(a Array) ArrayValue {
	return ArrayValue{Array: a}
}

func (v ArrayValue) V() any {
	return v.Array
}

func (v ArrayValue) Type() Type {
	return TypeArray
}

func (v ArrayValue) appendPayload(dst []byte) []byte {
	return append(dst, v.doc.bytes()...)
}
