package types

import (
	"strconv"
	"time"

	"github.com/chaisql/bsonmap/internal/encoding"
)

var _ Value = NewDateTimeValueMillis(0)

// DateTimeValue is a UTC datetime stored as milliseconds since the Unix epoch.
type DateTimeValue int64

// NewDateTimeValue returns a datetime value. t is truncated to the millisecond.
func NewDateTimeValue(t time.Time) DateTimeValue {
	return DateTimeValue(t.UnixMilli())
}

func NewDateTimeValueMillis(ms int64) DateTimeValue {
	return DateTimeValue(ms)
}

// Time returns v as a UTC time.Time.
func (v DateTimeValue) Time() time.Time {
	return time.UnixMilli(int64(v)).UTC()
}

func (v DateTimeValue) V() any {
	return v.Time()
}

func (v DateTimeValue) Type() Type {
	return TypeDateTime
}

func (v DateTimeValue) String() string {
	return stringOf(v)
}

func (v DateTimeValue) MarshalJSON() ([]byte, error) {
	t := v.Time()
	if t.Year() >= 1970 && t.Year() <= 9999 {
		return marshalWrapped("$date", t.Format("2006-01-02T15:04:05.000Z07:00"))
	}

	buf := []byte(`{"$date":{"$numberLong":"`)
	buf = strconv.AppendInt(buf, int64(v), 10)
	return append(buf, `"}}`...), nil
}

func (v DateTimeValue) appendPayload(dst []byte) []byte {
	return encoding.AppendInt64(dst, int64(v))
}
