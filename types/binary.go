package types

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/chaisql/bsonmap/internal/encoding"
)

// Binary subtypes.
const (
	BinaryGeneric     byte = 0x00
	BinaryFunction    byte = 0x01
	BinaryUUID        byte = 0x04
	BinaryMD5         byte = 0x05
	BinaryUserDefined byte = 0x80
)

var _ Value = NewBinaryValue(BinaryGeneric, nil)

type BinaryValue struct {
	Subtype byte
	Data    []byte
}

// NewBinaryValue returns a binary value. Data is not copied.
func NewBinaryValue(subtype byte, data []byte) BinaryValue {
	return BinaryValue{Subtype: subtype, Data: data}
}

func (v BinaryValue) V() any {
	return v.Data
}

func (v BinaryValue) Type() Type {
	return TypeBinary
}

func (v BinaryValue) String() string {
	return stringOf(v)
}

func (v BinaryValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"$binary": map[string]string{
			"base64":  base64.StdEncoding.EncodeToString(v.Data),
			"subType": fmt.Sprintf("%02x", v.Subtype),
		},
	})
}

func (v BinaryValue) appendPayload(dst []byte) []byte {
	return encoding.AppendBinary(dst, v.Subtype, v.Data)
}
