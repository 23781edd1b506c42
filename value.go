package bsonmap

import (
	"reflect"

	"github.com/chaisql/bsonmap/types"
)

// A Value owns a document created from a Go value.
// The zero value holds an empty document.
type Value struct {
	doc types.Document
}

// NewValueFromDocument returns a Value holding d.
func NewValueFromDocument(d types.Document) Value {
	return Value{doc: d}
}

// View returns the document held by v.
func (v Value) View() types.Document {
	return v.doc
}

// Equal reports whether v and other hold equal documents.
// Key order matters.
func (v Value) Equal(other Value) bool {
	return v.doc.Equal(other.doc)
}

// Bytes returns a copy of the encoded document.
func (v Value) Bytes() []byte {
	return v.doc.Bytes()
}

func (v Value) String() string {
	return v.doc.String()
}

func (v Value) MarshalJSON() ([]byte, error) {
	return v.doc.MarshalJSON()
}

// Construct encodes t into a new Value using the default registry.
func Construct[T any](t T) (Value, error) {
	return ConstructWith(DefaultRegistry, t)
}

// ConstructWith encodes t into a new Value using the codecs of r.
// T must be mapped to a document: a struct, a map with string keys,
// a type with a registered codec or a Marshaler.
func ConstructWith[T any](r *Registry, t T) (Value, error) {
	e := encoder{r: r}

	d, err := e.encodeDocument(reflect.ValueOf(&t).Elem())
	if err != nil {
		return Value{}, err
	}

	return Value{doc: d}, nil
}

// Extract decodes v into a new T using the default registry.
func Extract[T any](v Value) (T, error) {
	return ExtractWith[T](DefaultRegistry, v)
}

// ExtractWith decodes v into a new T using the codecs of r.
func ExtractWith[T any](r *Registry, v Value) (T, error) {
	return GetWith[T](r, v.doc)
}

// Get decodes d into a new T using the default registry.
func Get[T any](d types.Document) (T, error) {
	return GetWith[T](DefaultRegistry, d)
}

// GetWith decodes d into a new T using the codecs of r.
// If an error occurs, the zero value of T is returned.
func GetWith[T any](r *Registry, d types.Document) (T, error) {
	var t T

	dec := decoder{r: r}
	if err := dec.decodeDocument(d, reflect.ValueOf(&t).Elem(), ""); err != nil {
		var zero T
		return zero, err
	}

	return t, nil
}
