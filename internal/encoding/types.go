package encoding

// Element types of the wire format.
// Each element starts with one of these bytes, followed by a NUL-terminated key
// and a type-specific payload.
const (
	DoubleValue        byte = 0x01
	StringValue        byte = 0x02
	DocumentValue      byte = 0x03
	ArrayValue         byte = 0x04
	BinaryValue        byte = 0x05
	UndefinedValue     byte = 0x06
	ObjectIDValue      byte = 0x07
	BooleanValue       byte = 0x08
	DateTimeValue      byte = 0x09
	NullValue          byte = 0x0A
	RegexValue         byte = 0x0B
	DBPointerValue     byte = 0x0C
	CodeValue          byte = 0x0D
	SymbolValue        byte = 0x0E
	CodeWithScopeValue byte = 0x0F
	Int32Value         byte = 0x10
	TimestampValue     byte = 0x11
	Int64Value         byte = 0x12
	Decimal128Value    byte = 0x13
	MinKeyValue        byte = 0xFF
	MaxKeyValue        byte = 0x7F
)

// Sizes of the fixed width payloads.
const (
	ObjectIDLen = 12

	// smallest possible document: length prefix and trailing NUL
	MinDocumentLen = 5
)

// IsValidType reports whether t is an element type known to this package.
func IsValidType(t byte) bool {
	switch t {
	case DoubleValue, StringValue, DocumentValue, ArrayValue, BinaryValue,
		UndefinedValue, ObjectIDValue, BooleanValue, DateTimeValue, NullValue,
		RegexValue, DBPointerValue, CodeValue, SymbolValue, CodeWithScopeValue,
		Int32Value, TimestampValue, Int64Value, Decimal128Value,
		MinKeyValue, MaxKeyValue:
		return true
	}

	return false
}
