package types

import (
	"math"

	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
)

// ParseJSON creates a document from a JSON object.
// Numbers without a fractional part become int32 or int64 values depending on their magnitude,
// other numbers become doubles. Objects and arrays become embedded documents and arrays.
// Extended JSON wrappers such as {"$oid": ...} are not interpreted.
func ParseJSON(data []byte) (Document, error) {
	var b Builder

	err := jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		v, err := parseJSONValue(dataType, value)
		if err != nil {
			return err
		}

		b.Append(string(key), v)
		return nil
	})
	if err != nil {
		return Document{}, errors.Wrap(err, "invalid JSON object")
	}

	return b.Build()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := ParseJSON(data)
	if err != nil {
		return err
	}

	*d = doc
	return nil
}

func parseJSONArray(data []byte) (Array, error) {
	var ab ArrayBuilder
	var err error

	_, perr := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, _ error) {
		if err != nil {
			return
		}

		var v Value
		v, err = parseJSONValue(dataType, value)
		if err != nil {
			return
		}

		ab.Append(v)
	})
	if err != nil {
		return Array{}, err
	}
	if perr != nil {
		return Array{}, errors.Wrap(perr, "invalid JSON array")
	}

	return ab.Build()
}

func parseJSONValue(dataType jsonparser.ValueType, data []byte) (v Value, err error) {
	switch dataType {
	case jsonparser.Null:
		return NewNullValue(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return nil, err
		}
		return NewBooleanValue(b), nil
	case jsonparser.Number:
		i, err := jsonparser.ParseInt(data)
		if err != nil {
			// if it's too big to fit in an int64 or has a fractional part,
			// let's try parsing this as a floating point number
			f, err := jsonparser.ParseFloat(data)
			if err != nil {
				return nil, err
			}

			return NewDoubleValue(f), nil
		}

		if i < math.MinInt32 || i > math.MaxInt32 {
			return NewInt64Value(i), nil
		}

		return NewInt32Value(int32(i)), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return nil, err
		}
		return NewStringValue(s), nil
	case jsonparser.Object:
		d, err := ParseJSON(data)
		if err != nil {
			return nil, err
		}
		return NewDocumentValue(d), nil
	case jsonparser.Array:
		a, err := parseJSONArray(data)
		if err != nil {
			return nil, err
		}
		return NewArrayValue(a), nil
	default:
		return nil, errors.Errorf("unsupported JSON type: %v", dataType)
	}
}
