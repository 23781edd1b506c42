package types

import (
	"encoding/json"

	"github.com/chaisql/bsonmap/internal/encoding"
)

var _ Value = NewStringValue("")

// StringValue is a UTF-8 string.
type StringValue string

func NewStringValue(x string) StringValue {
	return StringValue(x)
}

func (v StringValue) V() any {
	return string(v)
}

func (v StringValue) Type() Type {
	return TypeString
}

func (v StringValue) String() string {
	return stringOf(v)
}

func (v StringValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

func (v StringValue) appendPayload(dst []byte) []byte {
	return encoding.AppendString(dst, string(v))
}

var _ Value = NewCodeValue("")

// CodeValue holds JavaScript code.
type CodeValue string

func NewCodeValue(x string) CodeValue {
	return CodeValue(x)
}

func (v CodeValue) V() any {
	return string(v)
}

func (v CodeValue) Type() Type {
	return TypeCode
}

func (v CodeValue) String() string {
	return stringOf(v)
}

func (v CodeValue) MarshalJSON() ([]byte, error) {
	return marshalWrapped("$code", string(v))
}

func (v CodeValue) appendPayload(dst []byte) []byte {
	return encoding.AppendString(dst, string(v))
}

var _ Value = NewSymbolValue("")

// SymbolValue is a deprecated kind of string.
type SymbolValue string

func NewSymbolValue(x string) SymbolValue {
	return SymbolValue(x)
}

func (v SymbolValue) V() any {
	return string(v)
}

func (v SymbolValue) Type() Type {
	return TypeSymbol
}

func (v SymbolValue) String() string {
	return stringOf(v)
}

func (v SymbolValue) MarshalJSON() ([]byte, error) {
	return marshalWrapped("$symbol", string(v))
}

func (v SymbolValue) appendPayload(dst []byte) []byte {
	return encoding.AppendString(dst, string(v))
}

// marshalWrapped returns {"<key>": <x>}.
func marshalWrapped(key string, x any) ([]byte, error) {
	data, err := json.Marshal(x)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, len(key)+len(data)+5)
	buf = append(buf, `{"`...)
	buf = append(buf, key...)
	buf = append(buf, `":`...)
	buf = append(buf, data...)
	return append(buf, '}'), nil
}
