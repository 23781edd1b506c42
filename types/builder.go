package types

import (
	"bytes"
	"strconv"
	"unicode/utf8"

	"github.com/chaisql/bsonmap/internal/encoding"
	"github.com/cockroachdb/errors"
)

// A Builder creates a document by appending fields to it.
// The zero value is ready to use.
type Builder struct {
	buf []byte
	n   int
	err error
}

// NewBuilder creates a Builder.
func NewBuilder() *Builder {
	return new(Builder)
}

// Append a field to the document. Once an error occurred,
// subsequent calls are ignored and the error is returned by Build.
func (b *Builder) Append(key string, v Value) *Builder {
	if b.err != nil {
		return b
	}

	if v == nil {
		v = NewNullValue()
	}

	if err := checkAppend(key, v); err != nil {
		b.err = err
		return b
	}

	if b.buf == nil {
		b.buf, _ = encoding.BeginDocument(nil)
	}

	b.buf = encoding.AppendElementHeader(b.buf, byte(v.Type()), key)
	b.buf = v.appendPayload(b.buf)
	b.n++
	return b
}

// AppendDocument appends an embedded document.
func (b *Builder) AppendDocument(key string, d Document) *Builder {
	return b.Append(key, NewDocumentValue(d))
}

// AppendArray appends an embedded array.
func (b *Builder) AppendArray(key string, a Array) *Builder {
	return b.Append(key, NewArrayValue(a))
}

func checkAppend(key string, v Value) error {
	if !encoding.ValidCString(key) {
		return errors.Errorf("key %q contains a NUL byte", key)
	}

	var str string
	switch x := v.(type) {
	case RegexValue:
		if !encoding.ValidCString(x.Pattern) || !encoding.ValidCString(x.Options) {
			return errors.Errorf("regex of field %q contains a NUL byte", key)
		}
		return nil
	case StringValue:
		str = string(x)
	case CodeValue:
		str = string(x)
	case SymbolValue:
		str = string(x)
	case DBPointerValue:
		str = x.Ref
	case CodeWithScopeValue:
		str = x.Code
	default:
		return nil
	}

	if !utf8.ValidString(str) {
		return errors.Errorf("string of field %q is not valid UTF-8", key)
	}

	return nil
}

// Err returns the first error that occurred while appending.
func (b *Builder) Err() error {
	return b.err
}

// Len returns the number of fields appended so far.
func (b *Builder) Len() int {
	return b.n
}

// Reset the builder.
func (b *Builder) Reset() {
	b.buf = nil
	b.n = 0
	b.err = nil
}

// Build returns the document made of the fields appended so far.
// The document owns its bytes: the builder can still be used afterwards.
func (b *Builder) Build() (Document, error) {
	if b.err != nil {
		return Document{}, b.err
	}

	if b.buf == nil {
		return Document{raw: encoding.EmptyDocument()}, nil
	}

	raw := bytes.Clone(b.buf)
	return Document{raw: encoding.EndDocument(raw, 0)}, nil
}

// An ArrayBuilder creates an array by appending values to it.
// Keys are the ascending indexes of the values.
type ArrayBuilder struct {
	b Builder
}

// NewArrayBuilder creates an ArrayBuilder.
func NewArrayBuilder() *ArrayBuilder {
	return new(ArrayBuilder)
}

// Append a value to the array.
func (a *ArrayBuilder) Append(v Value) *ArrayBuilder {
	a.b.Append(strconv.Itoa(a.b.n), v)
	return a
}

// Len returns the number of values appended so far.
func (a *ArrayBuilder) Len() int {
	return a.b.Len()
}

// Build returns the array made of the values appended so far.
func (a *ArrayBuilder) Build() (Array, error) {
	d, err := a.b.Build()
	if err != nil {
		return Array{}, err
	}

	return Array{doc: d}, nil
}

// NewArrayFromValues returns an array holding values, in order.
func NewArrayFromValues(values ...Value) (Array, error) {
	var ab ArrayBuilder
	for _, v := range values {
		ab.Append(v)
	}

	return ab.Build()
}
