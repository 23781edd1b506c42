// Package types defines the values of the document wire format.
//
// Every element of a document is represented by a Value. The set of values is
// closed: there is exactly one Go type per wire type, and Type always reports
// the wire type matching the dynamic type of the Value.
package types

import (
	"fmt"

	"github.com/chaisql/bsonmap/internal/encoding"
	"github.com/cockroachdb/errors"
)

var (
	// ErrWrongType is returned when a value is read as a type it doesn't hold.
	ErrWrongType = errors.New("wrong type")

	// ErrFieldNotFound is returned by Document.Lookup when the key doesn't exist.
	ErrFieldNotFound = errors.New("field not found")

	// ErrIndexOutOfRange is returned by Array.Index.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidDecimal is returned when a string cannot be represented as a 128-bit decimal.
	ErrInvalidDecimal = errors.New("invalid decimal128")

	// ErrMalformedWireData is returned when raw bytes cannot be decoded.
	ErrMalformedWireData = encoding.ErrMalformedWireData
)

// Type represents a wire type. Its value is the type byte used by the wire format.
type Type uint8

// List of supported types.
const (
	TypeDouble        = Type(encoding.DoubleValue)
	TypeString        = Type(encoding.StringValue)
	TypeDocument      = Type(encoding.DocumentValue)
	TypeArray         = Type(encoding.ArrayValue)
	TypeBinary        = Type(encoding.BinaryValue)
	TypeUndefined     = Type(encoding.UndefinedValue)
	TypeObjectID      = Type(encoding.ObjectIDValue)
	TypeBoolean       = Type(encoding.BooleanValue)
	TypeDateTime      = Type(encoding.DateTimeValue)
	TypeNull          = Type(encoding.NullValue)
	TypeRegex         = Type(encoding.RegexValue)
	TypeDBPointer     = Type(encoding.DBPointerValue)
	TypeCode          = Type(encoding.CodeValue)
	TypeSymbol        = Type(encoding.SymbolValue)
	TypeCodeWithScope = Type(encoding.CodeWithScopeValue)
	TypeInt32         = Type(encoding.Int32Value)
	TypeTimestamp     = Type(encoding.TimestampValue)
	TypeInt64         = Type(encoding.Int64Value)
	TypeDecimal128    = Type(encoding.Decimal128Value)
	TypeMinKey        = Type(encoding.MinKeyValue)
	TypeMaxKey        = Type(encoding.MaxKeyValue)
)

func (t Type) String() string {
	switch t {
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeDocument:
		return "document"
	case TypeArray:
		return "array"
	case TypeBinary:
		return "binary"
	case TypeUndefined:
		return "undefined"
	case TypeObjectID:
		return "objectid"
	case TypeBoolean:
		return "boolean"
	case TypeDateTime:
		return "datetime"
	case TypeNull:
		return "null"
	case TypeRegex:
		return "regex"
	case TypeDBPointer:
		return "dbpointer"
	case TypeCode:
		return "code"
	case TypeSymbol:
		return "symbol"
	case TypeCodeWithScope:
		return "codewithscope"
	case TypeInt32:
		return "int32"
	case TypeTimestamp:
		return "timestamp"
	case TypeInt64:
		return "int64"
	case TypeDecimal128:
		return "decimal128"
	case TypeMinKey:
		return "minkey"
	case TypeMaxKey:
		return "maxkey"
	}

	return fmt.Sprintf("type(0x%02x)", uint8(t))
}

// IsNumber returns true if t is one of the numeric types.
func (t Type) IsNumber() bool {
	return t == TypeDouble || t == TypeInt32 || t == TypeInt64 || t == TypeDecimal128
}

// IsInteger returns true if t is either an int32 or an int64.
func (t Type) IsInteger() bool {
	return t == TypeInt32 || t == TypeInt64
}

// A Value holds exactly one element payload of one wire type.
type Value interface {
	Type() Type
	// V returns the payload as a native Go value.
	V() any
	String() string
	MarshalJSON() ([]byte, error)

	// appendPayload writes the wire payload, without type or key.
	appendPayload(dst []byte) []byte
}

func typeOf(v Value) string {
	if v == nil {
		return "nil"
	}

	return v.Type().String()
}

func wrongType(v Value, want Type) error {
	return errors.Wrapf(ErrWrongType, "cannot read %s value as %s", typeOf(v), want)
}

func stringOf(v Value) string {
	data, _ := v.MarshalJSON()
	return string(data)
}

// IsNull returns true if v is nil or holds a null value.
func IsNull(v Value) bool {
	return v == nil || v.Type() == TypeNull
}
