package bsonmap

import (
	"github.com/chaisql/bsonmap/types"
)

// A Codec converts values of type T to and from documents.
type Codec[T any] interface {
	EncodeDocument(T) (types.Document, error)
	DecodeDocument(types.Document) (T, error)
}

// CodecFuncs is a Codec made of two functions.
type CodecFuncs[T any] struct {
	Encode func(T) (types.Document, error)
	Decode func(types.Document) (T, error)
}

func (c CodecFuncs[T]) EncodeDocument(t T) (types.Document, error) {
	return c.Encode(t)
}

func (c CodecFuncs[T]) DecodeDocument(d types.Document) (T, error) {
	return c.Decode(d)
}

// A Marshaler can write itself to a document.
type Marshaler interface {
	MarshalDocument(b *types.Builder) error
}

// An Unmarshaler can read itself from a document.
// It is always called on a zero value.
type Unmarshaler interface {
	UnmarshalDocument(d types.Document) error
}
