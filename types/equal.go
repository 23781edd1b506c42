package types

import (
	"bytes"
)

// Equal reports whether a and b hold the same type and the same payload.
// Values of different types are never equal, even if they represent the same number.
// Doubles are compared with ==, so NaN is not equal to itself.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Type() != b.Type() {
		return false
	}

	switch x := a.(type) {
	case DoubleValue:
		return x == b.(DoubleValue)
	case StringValue:
		return x == b.(StringValue)
	case DocumentValue:
		return x.Document.Equal(b.(DocumentValue).Document)
	case ArrayValue:
		return x.Array.Equal(b.(ArrayValue).Array)
	case BinaryValue:
		y := b.(BinaryValue)
		return x.Subtype == y.Subtype && bytes.Equal(x.Data, y.Data)
	case UndefinedValue, NullValue, MinKeyValue, MaxKeyValue:
		return true
	case ObjectIDValue:
		return x == b.(ObjectIDValue)
	case BooleanValue:
		return x == b.(BooleanValue)
	case DateTimeValue:
		return x == b.(DateTimeValue)
	case RegexValue:
		return x == b.(RegexValue)
	case DBPointerValue:
		return x == b.(DBPointerValue)
	case CodeValue:
		return x == b.(CodeValue)
	case SymbolValue:
		return x == b.(SymbolValue)
	case CodeWithScopeValue:
		y := b.(CodeWithScopeValue)
		return x.Code == y.Code && x.Scope.Equal(y.Scope)
	case Int32Value:
		return x == b.(Int32Value)
	case TimestampValue:
		return x == b.(TimestampValue)
	case Int64Value:
		return x == b.(Int64Value)
	case Decimal128Value:
		return x == b.(Decimal128Value)
	}

	return false
}

// Copy returns a copy of v that shares no mutable memory with it.
// Binary payloads and embedded documents are cloned, other payloads
// are plain Go values and are copied by assignment.
func Copy(v Value) Value {
	switch x := v.(type) {
	case BinaryValue:
		if x.Data != nil {
			x.Data = bytes.Clone(x.Data)
		}
		return x
	case DocumentValue:
		return NewDocumentValue(cloneDocument(x.Document))
	case ArrayValue:
		return NewArrayValue(Array{doc: cloneDocument(x.doc)})
	case CodeWithScopeValue:
		x.Scope = cloneDocument(x.Scope)
		return x
	}

	return v
}

func cloneDocument(d Document) Document {
	if d.raw == nil {
		return d
	}

	return Document{raw: bytes.Clone(d.raw)}
}
