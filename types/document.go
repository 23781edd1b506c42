package types

import (
	"bytes"

	"github.com/chaisql/bsonmap/internal/encoding"
	"github.com/cockroachdb/errors"
)

// A Document is an ordered sequence of key value pairs, stored in its encoded form.
// Documents are immutable and own their bytes. The zero value is an empty document.
// Keys are not required to be unique; lookups return the first match.
type Document struct {
	raw []byte
}

// NewDocument validates raw and returns a document holding a copy of it.
func NewDocument(raw []byte) (Document, error) {
	if err := encoding.Validate(raw); err != nil {
		return Document{}, err
	}

	return Document{raw: bytes.Clone(raw)}, nil
}

// Bytes returns a copy of the encoded document.
func (d Document) Bytes() []byte {
	if d.raw == nil {
		return encoding.EmptyDocument()
	}

	return bytes.Clone(d.raw)
}

func (d Document) bytes() []byte {
	if d.raw == nil {
		return encoding.EmptyDocument()
	}

	return d.raw
}

// Iterate goes through all the fields of the document and calls the given function by passing each one of them.
// If the given function returns an error, the iteration stops.
func (d Document) Iterate(fn func(key string, v Value) error) error {
	raw := d.bytes()

	return encoding.Iterate(raw, func(e encoding.Element) error {
		v, err := decodeElement(raw, e)
		if err != nil {
			return err
		}

		return fn(e.Key, v)
	})
}

// Lookup returns the value of the first field named key.
// It returns ErrFieldNotFound if there is none.
func (d Document) Lookup(key string) (Value, error) {
	raw := d.bytes()

	var found *encoding.Element
	err := encoding.Iterate(raw, func(e encoding.Element) error {
		if e.Key == key {
			found = &e
			return errStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, err
	}
	if found == nil {
		return nil, errors.Wrapf(ErrFieldNotFound, "%q not found", key)
	}

	return FromRaw(raw, uint32(len(raw)), uint32(found.Offset), uint32(len(key)))
}

// Keys returns the keys of the document, in order.
func (d Document) Keys() []string {
	var keys []string
	_ = encoding.Iterate(d.bytes(), func(e encoding.Element) error {
		keys = append(keys, e.Key)
		return nil
	})
	return keys
}

// Len returns the number of fields of the document.
func (d Document) Len() int {
	var n int
	_ = encoding.Iterate(d.bytes(), func(e encoding.Element) error {
		n++
		return nil
	})
	return n
}

// IsEmpty returns true if the document has no fields.
func (d Document) IsEmpty() bool {
	return len(d.raw) <= encoding.MinDocumentLen
}

// Equal reports whether d and other hold the same keys, in the same order,
// associated with equal values.
// Documents with identical encodings are always equal: unlike Equal on two
// NaN doubles, a document holding a NaN is equal to itself.
func (d Document) Equal(other Document) bool {
	if bytes.Equal(d.bytes(), other.bytes()) {
		return true
	}

	a, err := fields(d)
	if err != nil {
		return false
	}
	b, err := fields(other)
	if err != nil {
		return false
	}
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].key != b[i].key || !Equal(a[i].value, b[i].value) {
			return false
		}
	}

	return true
}

type field struct {
	key   string
	value Value
}

func fields(d Document) ([]field, error) {
	var fs []field
	err := d.Iterate(func(key string, v Value) error {
		fs = append(fs, field{key, v})
		return nil
	})
	return fs, err
}

func (d Document) String() string {
	data, err := d.MarshalJSON()
	if err != nil {
		return err.Error()
	}

	return string(data)
}

// MarshalJSON renders the document as relaxed extended JSON.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')
	var notFirst bool
	err := d.Iterate(func(key string, v Value) error {
		if notFirst {
			buf.WriteByte(',')
		}
		notFirst = true

		k, err := NewStringValue(key).MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')

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
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

var errStop = errors.New("stop")

var _ Value = NewDocumentValue(Document{})

// DocumentValue is an embedded document.
type DocumentValue struct {
	Document
}

func NewDocumentValue(d Document) DocumentValue {
	return DocumentValue{Document: d}
}

func (v DocumentValue) V() any {
	return v.Document
}

func (v DocumentValue) Type() Type {
	return TypeDocument
}

func (v DocumentValue) appendPayload(dst []byte) []byte {
	return append(dst, v.bytes()...)
}

var _ Value = NewCodeWithScopeValue("", Document{})

// CodeWithScopeValue is JavaScript code associated with a scope document.
type CodeWithScopeValue struct {
	Code  string
	Scope Document
}

func NewCodeWithScopeValue(code string, scope Document) CodeWithScopeValue {
	return CodeWithScopeValue{Code: code, Scope: scope}
}

func (v CodeWithScopeValue) V() any {
	return v
}

func (v CodeWithScopeValue) Type() Type {
	return TypeCodeWithScope
}

func (v CodeWithScopeValue) String() string {
	return stringOf(v)
}

func (v CodeWithScopeValue) MarshalJSON() ([]byte, error) {
	code, err := NewStringValue(v.Code).MarshalJSON()
	if err != nil {
		return nil, err
	}
	scope, err := v.Scope.MarshalJSON()
	if err != nil {
		return nil, err
	}

	buf := []byte(`{"$code":`)
	buf = append(buf, code...)
	buf = append(buf, `,"$scope":`...)
	buf = append(buf, scope...)
	return append(buf, '}'), nil
}

func (v CodeWithScopeValue) appendPayload(dst []byte) []byte {
	return encoding.AppendCodeWithScope(dst, v.Code, v.Scope.bytes())
}
