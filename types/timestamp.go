package types

import (
	"strconv"

	"github.com/chaisql/bsonmap/internal/encoding"
)

var _ Value = NewTimestampValue(0, 0)

// TimestampValue is the internal replication timestamp of the wire format.
// It is not meant to represent dates, use DateTimeValue instead.
type TimestampValue struct {
	Increment uint32
	Seconds   uint32
}

func NewTimestampValue(increment, seconds uint32) TimestampValue {
	return TimestampValue{Increment: increment, Seconds: seconds}
}

func (v TimestampValue) V() any {
	return v
}

func (v TimestampValue) Type() Type {
	return TypeTimestamp
}

func (v TimestampValue) String() string {
	return stringOf(v)
}

func (v TimestampValue) MarshalJSON() ([]byte, error) {
	buf := []byte(`{"$timestamp":{"t":`)
	buf = strconv.AppendUint(buf, uint64(v.Seconds), 10)
	buf = append(buf, `,"i":`...)
	buf = strconv.AppendUint(buf, uint64(v.Increment), 10)
	return append(buf, "}}"...), nil
}

func (v TimestampValue) appendPayload(dst []byte) []byte {
	return encoding.AppendTimestamp(dst, v.Increment, v.Seconds)
}
