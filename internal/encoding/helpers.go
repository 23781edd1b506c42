// Package encoding reads and writes the binary document wire format.
// All multi-byte integers are little-endian. Functions prefixed with Append
// write to the end of dst and return the extended slice; functions prefixed
// with Read never panic on short input and return ErrMalformedWireData instead.
package encoding

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
)

// ErrMalformedWireData is returned when a buffer cannot be decoded:
// unknown element type, truncated payload or inconsistent lengths.
var ErrMalformedWireData = errors.New("malformed wire data")

func malformed(format string, args ...any) error {
	return errors.Wrapf(ErrMalformedWireData, format, args...)
}

func write4(dst []byte, n uint32) []byte {
	return append(
		dst,
		byte(n),
		byte(n>>8),
		byte(n>>16),
		byte(n>>24),
	)
}

func write8(dst []byte, n uint64) []byte {
	return append(
		dst,
		byte(n),
		byte(n>>8),
		byte(n>>16),
		byte(n>>24),
		byte(n>>32),
		byte(n>>40),
		byte(n>>48),
		byte(n>>56),
	)
}

func read4(b []byte) (uint32, error) {
	if len(b) < 4 {
		return 0, malformed("expected 4 bytes, got %d", len(b))
	}

	return binary.LittleEndian.Uint32(b), nil
}

func read8(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, malformed("expected 8 bytes, got %d", len(b))
	}

	return binary.LittleEndian.Uint64(b), nil
}

func AppendInt32(dst []byte, n int32) []byte {
	return write4(dst, uint32(n))
}

func ReadInt32(b []byte) (int32, error) {
	x, err := read4(b)
	return int32(x), err
}

func AppendUint32(dst []byte, n uint32) []byte {
	return write4(dst, n)
}

func ReadUint32(b []byte) (uint32, error) {
	return read4(b)
}

func AppendInt64(dst []byte, n int64) []byte {
	return write8(dst, uint64(n))
}

func ReadInt64(b []byte) (int64, error) {
	x, err := read8(b)
	return int64(x), err
}

func AppendUint64(dst []byte, n uint64) []byte {
	return write8(dst, n)
}

func ReadUint64(b []byte) (uint64, error) {
	return read8(b)
}

func AppendDouble(dst []byte, x float64) []byte {
	return write8(dst, math.Float64bits(x))
}

func ReadDouble(b []byte) (float64, error) {
	x, err := read8(b)
	return math.Float64frombits(x), err
}

func AppendBoolean(dst []byte, x bool) []byte {
	if x {
		return append(dst, 1)
	}

	return append(dst, 0)
}

func ReadBoolean(b []byte) (bool, error) {
	if len(b) < 1 {
		return false, malformed("missing boolean payload")
	}

	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}

	return false, malformed("invalid boolean byte 0x%02x", b[0])
}

// AppendDecimal128 writes the low word first, as required by the wire format.
func AppendDecimal128(dst []byte, high, low uint64) []byte {
	dst = write8(dst, low)
	return write8(dst, high)
}

func ReadDecimal128(b []byte) (high, low uint64, err error) {
	if len(b) < 16 {
		return 0, 0, malformed("expected 16 bytes, got %d", len(b))
	}

	low = binary.LittleEndian.Uint64(b)
	high = binary.LittleEndian.Uint64(b[8:])
	return high, low, nil
}

// AppendTimestamp writes the increment first, then the seconds.
func AppendTimestamp(dst []byte, increment, seconds uint32) []byte {
	dst = write4(dst, increment)
	return write4(dst, seconds)
}

func ReadTimestamp(b []byte) (increment, seconds uint32, err error) {
	if len(b) < 8 {
		return 0, 0, malformed("expected 8 bytes, got %d", len(b))
	}

	increment = binary.LittleEndian.Uint32(b)
	seconds = binary.LittleEndian.Uint32(b[4:])
	return increment, seconds, nil
}
