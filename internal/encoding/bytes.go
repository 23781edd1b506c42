package encoding

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// AppendCString writes s followed by a NUL byte.
// s must not contain NUL bytes, which is checked by the caller.
func AppendCString(dst []byte, s string) []byte {
	dst = append(dst, s...)
	return append(dst, 0)
}

// ReadCString returns the NUL-terminated string at the start of b
// and the number of bytes read, including the terminator.
func ReadCString(b []byte) (string, int, error) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return "", 0, malformed("unterminated cstring")
	}

	return string(b[:i]), i + 1, nil
}

// ValidCString reports whether s can be written as a cstring.
func ValidCString(s string) bool {
	return strings.IndexByte(s, 0) < 0
}

// AppendString writes the int32 length (including the terminator), s and a NUL byte.
func AppendString(dst []byte, s string) []byte {
	dst = AppendInt32(dst, int32(len(s)+1))
	dst = append(dst, s...)
	return append(dst, 0)
}

// ReadString returns the length-prefixed string at the start of b
// and the number of bytes read. The string must be valid UTF-8.
func ReadString(b []byte) (string, int, error) {
	l, err := ReadInt32(b)
	if err != nil {
		return "", 0, err
	}
	if l < 1 {
		return "", 0, malformed("invalid string length %d", l)
	}

	end := 4 + int(l)
	if end > len(b) {
		return "", 0, malformed("string length %d exceeds buffer", l)
	}
	if b[end-1] != 0 {
		return "", 0, malformed("string is not NUL-terminated")
	}
	if !utf8.Valid(b[4 : end-1]) {
		return "", 0, malformed("string is not valid UTF-8")
	}

	return string(b[4 : end-1]), end, nil
}

// AppendBinary writes the int32 length of data, the subtype and data.
func AppendBinary(dst []byte, subtype byte, data []byte) []byte {
	dst = AppendInt32(dst, int32(len(data)))
	dst = append(dst, subtype)
	return append(dst, data...)
}

// ReadBinary returns a copy of the binary payload at the start of b.
func ReadBinary(b []byte) (subtype byte, data []byte, n int, err error) {
	l, err := ReadInt32(b)
	if err != nil {
		return 0, nil, 0, err
	}
	if l < 0 || 5+int(l) > len(b) {
		return 0, nil, 0, malformed("invalid binary length %d", l)
	}

	data = make([]byte, l)
	copy(data, b[5:5+int(l)])
	return b[4], data, 5 + int(l), nil
}

func ReadObjectID(b []byte) (id [ObjectIDLen]byte, err error) {
	if len(b) < ObjectIDLen {
		return id, malformed("expected %d bytes, got %d", ObjectIDLen, len(b))
	}

	copy(id[:], b)
	return id, nil
}

// AppendRegex writes the pattern and the options as two cstrings.
func AppendRegex(dst []byte, pattern, options string) []byte {
	dst = AppendCString(dst, pattern)
	return AppendCString(dst, options)
}

func ReadRegex(b []byte) (pattern, options string, n int, err error) {
	pattern, n1, err := ReadCString(b)
	if err != nil {
		return "", "", 0, err
	}

	options, n2, err := ReadCString(b[n1:])
	if err != nil {
		return "", "", 0, err
	}

	return pattern, options, n1 + n2, nil
}
