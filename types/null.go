package types

var _ Value = NewNullValue()

type NullValue struct{}

// NewNullValue returns a null value.
func NewNullValue() NullValue {
	return NullValue{}
}

func (v NullValue) V() any {
	return nil
}

func (v NullValue) Type() Type {
	return TypeNull
}

func (v NullValue) String() string {
	return "null"
}

func (v NullValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (v NullValue) appendPayload(dst []byte) []byte {
	return dst
}

var _ Value = NewUndefinedValue()

// UndefinedValue is deprecated by the wire format but can still be read.
type UndefinedValue struct{}

func NewUndefinedValue() UndefinedValue {
	return UndefinedValue{}
}

func (v UndefinedValue) V() any {
	return nil
}

func (v UndefinedValue) Type() Type {
	return TypeUndefined
}

func (v UndefinedValue) String() string {
	return stringOf(v)
}

func (v UndefinedValue) MarshalJSON() ([]byte, error) {
	return []byte(`{"$undefined":true}`), nil
}

func (v UndefinedValue) appendPayload(dst []byte) []byte {
	return dst
}

var _ Value = NewMinKeyValue()

// MinKeyValue compares lower than all other values.
type MinKeyValue struct{}

func NewMinKeyValue() MinKeyValue {
	return MinKeyValue{}
}

func (v MinKeyValue) V() any {
	return nil
}

func (v MinKeyValue) Type() Type {
	return TypeMinKey
}

func (v MinKeyValue) String() string {
	return stringOf(v)
}

func (v MinKeyValue) MarshalJSON() ([]byte, error) {
	return []byte(`{"$minKey":1}`), nil
}

func (v MinKeyValue) appendPayload(dst []byte) []byte {
	return dst
}

var _ Value = NewMaxKeyValue()

// MaxKeyValue compares higher than all other values.
type MaxKeyValue struct{}

func NewMaxKeyValue() MaxKeyValue {
	return MaxKeyValue{}
}

func (v MaxKeyValue) V() any {
	return nil
}

func (v MaxKeyValue) Type() Type {
	return TypeMaxKey
}

func (v MaxKeyValue) String() string {
	return stringOf(v)
}

func (v MaxKeyValue) MarshalJSON() ([]byte, error) {
	return []byte(`{"$maxKey":1}`), nil
}

func (v MaxKeyValue) appendPayload(dst []byte) []byte {
	return dst
}
