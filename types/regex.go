package types

import (
	"github.com/chaisql/bsonmap/internal/encoding"
)

var _ Value = NewRegexValue("", "")

// RegexValue is a regular expression made of a pattern and its options.
type RegexValue struct {
	Pattern string
	Options string
}

func NewRegexValue(pattern, options string) RegexValue {
	return RegexValue{Pattern: pattern, Options: options}
}

func (v RegexValue) V() any {
	return v
}

func (v RegexValue) Type() Type {
	return TypeRegex
}

func (v RegexValue) String() string {
	return stringOf(v)
}

func (v RegexValue) MarshalJSON() ([]byte, error) {
	p, err := NewStringValue(v.Pattern).MarshalJSON()
	if err != nil {
		return nil, err
	}
	o, err := NewStringValue(v.Options).MarshalJSON()
	if err != nil {
		return nil, err
	}

	buf := []byte(`{"$regularExpression":{"pattern":`)
	buf = append(buf, p...)
	buf = append(buf, `,"options":`...)
	buf = append(buf, o...)
	return append(buf, "}}"...), nil
}

func (v RegexValue) appendPayload(dst []byte) []byte {
	return encoding.AppendRegex(dst, v.Pattern, v.Options)
}
