package types

import (
	"encoding/hex"

	"github.com/chaisql/bsonmap/internal/encoding"
	"github.com/cockroachdb/errors"
)

var _ Value = ObjectIDValue{}

// ObjectIDValue is a 12-byte identifier.
type ObjectIDValue [encoding.ObjectIDLen]byte

func NewObjectIDValue(id [encoding.ObjectIDLen]byte) ObjectIDValue {
	return ObjectIDValue(id)
}

// ParseObjectID parses the 24 characters hexadecimal representation of an ObjectID.
func ParseObjectID(s string) (ObjectIDValue, error) {
	var id ObjectIDValue
	if len(s) != 2*len(id) {
		return id, errors.Errorf("invalid objectid %q: expected %d hexadecimal characters", s, 2*len(id))
	}

	_, err := hex.Decode(id[:], []byte(s))
	if err != nil {
		return id, errors.Wrapf(err, "invalid objectid %q", s)
	}

	return id, nil
}

func (v ObjectIDValue) Hex() string {
	return hex.EncodeToString(v[:])
}

func (v ObjectIDValue) V() any {
	return [encoding.ObjectIDLen]byte(v)
}

func (v ObjectIDValue) Type() Type {
	return TypeObjectID
}

func (v ObjectIDValue) String() string {
	return stringOf(v)
}

func (v ObjectIDValue) MarshalJSON() ([]byte, error) {
	return marshalWrapped("$oid", v.Hex())
}

func (v ObjectIDValue) appendPayload(dst []byte) []byte {
	return append(dst, v[:]...)
}

var _ Value = DBPointerValue{}

// DBPointerValue is a deprecated reference to a document of another collection.
type DBPointerValue struct {
	Ref string
	ID  ObjectIDValue
}

func NewDBPointerValue(ref string, id ObjectIDValue) DBPointerValue {
	return DBPointerValue{Ref: ref, ID: id}
}

func (v DBPointerValue) V() any {
	return v
}

func (v DBPointerValue) Type() Type {
	return TypeDBPointer
}

func (v DBPointerValue) String() string {
	return stringOf(v)
}

func (v DBPointerValue) MarshalJSON() ([]byte, error) {
	ref, err := NewStringValue(v.Ref).MarshalJSON()
	if err != nil {
		return nil, err
	}
	id, err := v.ID.MarshalJSON()
	if err != nil {
		return nil, err
	}

	buf := []byte(`{"$dbPointer":{"$ref":`)
	buf = append(buf, ref...)
	buf = append(buf, `,"$id":`...)
	buf = append(buf, id...)
	return append(buf, "}}"...), nil
}

func (v DBPointerValue) appendPayload(dst []byte) []byte {
	dst = encoding.AppendString(dst, v.Ref)
	return append(dst, v.ID[:]...)
}
