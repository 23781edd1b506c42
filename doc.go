/*
Package bsonmap maps Go values to BSON documents and back.

Documents and scalar values are defined in the types package. This package converts user
defined types to and from those documents, without requiring them to embed or implement
anything.

# Construct and Extract

Construct encodes a Go value into a Value, Extract decodes it back:

	type Person struct {
		FirstName string `bson:"first_name"`
		LastName  string `bson:"last_name"`
		Age       int32  `bson:"age"`
		Car       *Car   `bson:"car"`
	}

	v, err := bsonmap.Construct(Person{FirstName: "Lelouch", LastName: "Lamperouge", Age: 18})
	p, err := bsonmap.Extract[Person](v)

By default structs are mapped using reflection. Each exported field is stored under the
key given by its bson tag, or under its lowercased name if it has none. Fields are encoded
in declaration order. A field tagged with "-" is ignored.

Decoding is all or nothing: a missing key returns ErrMissingField, a value of the wrong type
returns types.ErrWrongType, and the zero value is returned alongside any error.
Pointer fields are always decoded into freshly allocated values.

# Custom mappings

The reflection mapping can be replaced for a given type in two ways. The type can implement
Marshaler and Unmarshaler, or a Codec can be registered for it:

	bsonmap.Register[Point](bsonmap.DefaultRegistry, bsonmap.CodecFuncs[Point]{
		Encode: encodePoint,
		Decode: decodePoint,
	})

Registered codecs take precedence over Marshaler and Unmarshaler implementations,
which take precedence over reflection.
*/
package bsonmap
