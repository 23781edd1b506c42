package encoding

// An Element describes one element of an encoded document.
type Element struct {
	Type byte
	Key  string
	// Offset of the element type byte in the document.
	Offset int
	// Offset of the payload in the document.
	ValueOffset int
	// Size of the payload.
	ValueSize int
}

// End returns the offset of the byte following the element.
func (e Element) End() int {
	return e.ValueOffset + e.ValueSize
}

// Value returns the payload bytes of the element within doc.
func (e Element) Value(doc []byte) []byte {
	return doc[e.ValueOffset:e.End()]
}

// BeginDocument reserves room for the length prefix of a new document
// and returns the offset to pass to EndDocument.
func BeginDocument(dst []byte) ([]byte, int) {
	return append(dst, 0, 0, 0, 0), len(dst)
}

// EndDocument writes the trailing NUL byte and patches the length prefix
// of the document started at start.
func EndDocument(dst []byte, start int) []byte {
	dst = append(dst, 0)
	l := uint32(len(dst) - start)
	dst[start] = byte(l)
	dst[start+1] = byte(l >> 8)
	dst[start+2] = byte(l >> 16)
	dst[start+3] = byte(l >> 24)
	return dst
}

// EmptyDocument returns the encoding of a document without elements.
func EmptyDocument() []byte {
	return []byte{MinDocumentLen, 0, 0, 0, 0}
}

// AppendElementHeader writes the type byte and the key of an element.
func AppendElementHeader(dst []byte, t byte, key string) []byte {
	dst = append(dst, t)
	return AppendCString(dst, key)
}

// ReadElement decodes the header of the element starting at offset and
// computes the size of its payload. If keyLen is non-zero, the key
// must be exactly keyLen bytes long.
func ReadElement(doc []byte, offset, keyLen int) (Element, error) {
	if offset < 0 || offset >= len(doc) {
		return Element{}, malformed("offset %d out of range", offset)
	}

	t := doc[offset]
	if !IsValidType(t) {
		return Element{}, malformed("unsupported element type 0x%02x at offset %d", t, offset)
	}

	key, n, err := ReadCString(doc[offset+1:])
	if err != nil {
		return Element{}, err
	}
	if keyLen != 0 && len(key) != keyLen {
		return Element{}, malformed("expected key of length %d, got %q", keyLen, key)
	}

	e := Element{
		Type:        t,
		Key:         key,
		Offset:      offset,
		ValueOffset: offset + 1 + n,
	}

	e.ValueSize, err = ValueSize(t, doc[e.ValueOffset:])
	if err != nil {
		return Element{}, err
	}

	return e, nil
}

// ValueSize returns the size of the payload of type t found at the start of b.
func ValueSize(t byte, b []byte) (int, error) {
	var n int

	switch t {
	case UndefinedValue, NullValue, MinKeyValue, MaxKeyValue:
		return 0, nil
	case BooleanValue:
		n = 1
	case Int32Value:
		n = 4
	case DoubleValue, DateTimeValue, TimestampValue, Int64Value:
		n = 8
	case ObjectIDValue:
		n = ObjectIDLen
	case Decimal128Value:
		n = 16
	case StringValue, CodeValue, SymbolValue:
		_, n, err := ReadString(b)
		return n, err
	case DBPointerValue:
		_, n, err := ReadString(b)
		if err != nil {
			return 0, err
		}
		n += ObjectIDLen
		if n > len(b) {
			return 0, malformed("truncated db pointer")
		}
		return n, nil
	case BinaryValue:
		_, _, n, err := ReadBinary(b)
		return n, err
	case RegexValue:
		_, _, n, err := ReadRegex(b)
		return n, err
	case DocumentValue, ArrayValue, CodeWithScopeValue:
		l, err := ReadInt32(b)
		if err != nil {
			return 0, err
		}
		if l < MinDocumentLen {
			return 0, malformed("invalid length %d", l)
		}
		n = int(l)
	default:
		return 0, malformed("unsupported element type 0x%02x", t)
	}

	if n > len(b) {
		return 0, malformed("payload of %d bytes exceeds buffer of %d bytes", n, len(b))
	}

	return n, nil
}

// Iterate calls fn for each element of the encoded document doc, in order.
// The document must have been checked with Validate.
// If fn returns an error, the iteration stops and the error is returned.
func Iterate(doc []byte, fn func(e Element) error) error {
	end := len(doc) - 1
	for off := 4; off < end; {
		e, err := ReadElement(doc, off, 0)
		if err != nil {
			return err
		}

		if err := fn(e); err != nil {
			return err
		}

		off = e.End()
	}

	return nil
}

// Validate checks that doc is a complete, well-formed document,
// recursively validating embedded documents and arrays.
func Validate(doc []byte) error {
	l, err := ReadInt32(doc)
	if err != nil {
		return err
	}
	if l < MinDocumentLen || int(l) != len(doc) {
		return malformed("document length prefix %d does not match buffer length %d", l, len(doc))
	}
	if doc[len(doc)-1] != 0 {
		return malformed("document is not NUL-terminated")
	}

	end := len(doc) - 1
	off := 4
	for off < end {
		e, err := ReadElement(doc[:end], off, 0)
		if err != nil {
			return err
		}

		switch e.Type {
		case DocumentValue, ArrayValue:
			if err := Validate(e.Value(doc)); err != nil {
				return err
			}
		case CodeWithScopeValue:
			if err := validateCodeWithScope(e.Value(doc)); err != nil {
				return err
			}
		}

		off = e.End()
	}

	if off != end {
		return malformed("element overruns document end")
	}

	return nil
}

func validateCodeWithScope(b []byte) error {
	_, _, err := ReadCodeWithScope(b)
	return err
}

// ReadCodeWithScope returns the code and the scope document of a
// code-with-scope payload.
func ReadCodeWithScope(b []byte) (code string, scope []byte, err error) {
	l, err := ReadInt32(b)
	if err != nil {
		return "", nil, err
	}
	if int(l) > len(b) || l < 4+MinDocumentLen {
		return "", nil, malformed("invalid code with scope length %d", l)
	}
	b = b[:l]

	code, n, err := ReadString(b[4:])
	if err != nil {
		return "", nil, err
	}

	scope = b[4+n:]
	if err := Validate(scope); err != nil {
		return "", nil, err
	}

	return code, scope, nil
}

// AppendCodeWithScope writes the total length, the code string and the scope document.
func AppendCodeWithScope(dst []byte, code string, scope []byte) []byte {
	start := len(dst)
	dst = append(dst, 0, 0, 0, 0)
	dst = AppendString(dst, code)
	dst = append(dst, scope...)
	l := uint32(len(dst) - start)
	dst[start] = byte(l)
	dst[start+1] = byte(l >> 8)
	dst[start+2] = byte(l >> 16)
	dst[start+3] = byte(l >> 24)
	return dst
}
