package types

import (
	"bytes"

	"github.com/chaisql/bsonmap/internal/encoding"
	"github.com/cockroachdb/errors"
)

// FromRaw decodes the element found at offset in the first length bytes of buf.
// If keyLength is non-zero, the key of the element must be keyLength bytes long.
// The returned value never references buf.
// It returns ErrMalformedWireData if the element cannot be decoded.
func FromRaw(buf []byte, length, offset, keyLength uint32) (Value, error) {
	if int(length) > len(buf) {
		return nil, errors.Wrapf(ErrMalformedWireData, "length %d exceeds buffer of %d bytes", length, len(buf))
	}
	buf = buf[:length]

	e, err := encoding.ReadElement(buf, int(offset), int(keyLength))
	if err != nil {
		return nil, err
	}

	v, err := decodeElement(buf, e)
	if err != nil {
		return nil, err
	}

	return v, nil
}

func decodeElement(buf []byte, e encoding.Element) (Value, error) {
	b := e.Value(buf)

	switch e.Type {
	case encoding.DoubleValue:
		x, err := encoding.ReadDouble(b)
		return NewDoubleValue(x), err
	case encoding.StringValue:
		x, _, err := encoding.ReadString(b)
		return NewStringValue(x), err
	case encoding.CodeValue:
		x, _, err := encoding.ReadString(b)
		return NewCodeValue(x), err
	case encoding.SymbolValue:
		x, _, err := encoding.ReadString(b)
		return NewSymbolValue(x), err
	case encoding.DocumentValue:
		d, err := NewDocument(b)
		if err != nil {
			return nil, err
		}
		return NewDocumentValue(d), nil
	case encoding.ArrayValue:
		a, err := NewArray(b)
		if err != nil {
			return nil, err
		}
		return NewArrayValue(a), nil
	case encoding.BinaryValue:
		st, data, _, err := encoding.ReadBinary(b)
		return NewBinaryValue(st, data), err
	case encoding.UndefinedValue:
		return NewUndefinedValue(), nil
	case encoding.ObjectIDValue:
		id, err := encoding.ReadObjectID(b)
		return NewObjectIDValue(id), err
	case encoding.BooleanValue:
		x, err := encoding.ReadBoolean(b)
		return NewBooleanValue(x), err
	case encoding.DateTimeValue:
		x, err := encoding.ReadInt64(b)
		return NewDateTimeValueMillis(x), err
	case encoding.NullValue:
		return NewNullValue(), nil
	case encoding.RegexValue:
		p, o, _, err := encoding.ReadRegex(b)
		return NewRegexValue(p, o), err
	case encoding.DBPointerValue:
		ref, n, err := encoding.ReadString(b)
		if err != nil {
			return nil, err
		}
		id, err := encoding.ReadObjectID(b[n:])
		return NewDBPointerValue(ref, id), err
	case encoding.CodeWithScopeValue:
		code, scope, err := encoding.ReadCodeWithScope(b)
		if err != nil {
			return nil, err
		}
		return NewCodeWithScopeValue(code, Document{raw: bytes.Clone(scope)}), nil
	case encoding.Int32Value:
		x, err := encoding.ReadInt32(b)
		return NewInt32Value(x), err
	case encoding.TimestampValue:
		inc, sec, err := encoding.ReadTimestamp(b)
		return NewTimestampValue(inc, sec), err
	case encoding.Int64Value:
		x, err := encoding.ReadInt64(b)
		return NewInt64Value(x), err
	case encoding.Decimal128Value:
		h, l, err := encoding.ReadDecimal128(b)
		return NewDecimal128Value(h, l), err
	case encoding.MinKeyValue:
		return NewMinKeyValue(), nil
	case encoding.MaxKeyValue:
		return NewMaxKeyValue(), nil
	}

	return nil, errors.Wrapf(ErrMalformedWireData, "unsupported element type 0x%02x", e.Type)
}
