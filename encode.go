package bsonmap

import (
	"math"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/chaisql/bsonmap/types"
	"github.com/cockroachdb/errors"
)

var (
	valueType       = reflect.TypeOf((*types.Value)(nil)).Elem()
	marshalerType   = reflect.TypeOf((*Marshaler)(nil)).Elem()
	unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	documentType    = reflect.TypeOf(types.Document{})
	arrayType       = reflect.TypeOf(types.Array{})
	containerType   = reflect.TypeOf(Value{})
	timeType        = reflect.TypeOf(time.Time{})
)

type encoder struct {
	r *Registry
}

// encodeDocument encodes rv, which must be represented as a document.
func (e encoder) encodeDocument(rv reflect.Value) (types.Document, error) {
	tp := rv.Type()
	if c, ok := e.r.lookup(tp); ok {
		return c.encode(rv)
	}

	switch tp.Kind() {
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return types.Document{}, unsupported(tp, "cannot encode nil as a document")
		}
		return e.encodeDocument(rv.Elem())
	}

	if m, ok := asMarshaler(rv); ok {
		var b types.Builder
		if err := m.MarshalDocument(&b); err != nil {
			return types.Document{}, err
		}
		return b.Build()
	}

	switch tp {
	case documentType:
		return rv.Interface().(types.Document), nil
	case containerType:
		return rv.Interface().(Value).View(), nil
	}

	switch {
	case tp.Kind() == reflect.Struct && !isSpecialStruct(tp):
		return e.encodeStruct(rv)
	case tp.Kind() == reflect.Map:
		return e.encodeMap(rv)
	}

	return types.Document{}, unsupported(tp, "cannot encode as a document")
}

func (e encoder) encodeStruct(rv reflect.Value) (types.Document, error) {
	var b types.Builder

	err := e.appendFields(&b, rv)
	if err != nil {
		return types.Document{}, err
	}

	return b.Build()
}

func (e encoder) appendFields(b *types.Builder, rv reflect.Value) error {
	tp := rv.Type()

	for i := 0; i < tp.NumField(); i++ {
		key, embedded, ok := e.r.fieldKey(tp.Field(i))
		if !ok {
			continue
		}

		f := rv.Field(i)
		if embedded {
			if err := e.appendFields(b, f); err != nil {
				return err
			}
			continue
		}

		v, err := e.encodeValue(f)
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}

		b.Append(key, v)
	}

	return nil
}

// encodeMap encodes a map with string keys. Keys are sorted to keep the output deterministic.
func (e encoder) encodeMap(rv reflect.Value) (types.Document, error) {
	tp := rv.Type()
	if tp.Key().Kind() != reflect.String {
		return types.Document{}, unsupported(tp, "map keys must be strings")
	}

	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(a.String(), b.String())
	})

	var b types.Builder
	for _, k := range keys {
		v, err := e.encodeValue(rv.MapIndex(k))
		if err != nil {
			return types.Document{}, errors.Wrapf(err, "key %q", k.String())
		}

		b.Append(k.String(), v)
	}

	return b.Build()
}

func (e encoder) encodeValue(rv reflect.Value) (types.Value, error) {
	tp := rv.Type()
	if c, ok := e.r.lookup(tp); ok {
		d, err := c.encode(rv)
		if err != nil {
			return nil, err
		}
		return types.NewDocumentValue(d), nil
	}

	switch tp.Kind() {
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return types.NewNullValue(), nil
		}
		return e.encodeValue(rv.Elem())
	}

	if tp.Implements(valueType) {
		return rv.Interface().(types.Value), nil
	}

	switch tp {
	case timeType:
		return types.NewDateTimeValue(rv.Interface().(time.Time)), nil
	case arrayType:
		return types.NewArrayValue(rv.Interface().(types.Array)), nil
	}

	if isOwned(tp) {
		p := rv.Interface().(ownedReader).pointee()
		if !p.IsValid() {
			return types.NewNullValue(), nil
		}
		return e.encodeValue(p)
	}

	if _, ok := asMarshaler(rv); ok {
		d, err := e.encodeDocument(rv)
		if err != nil {
			return nil, err
		}
		return types.NewDocumentValue(d), nil
	}

	switch tp.Kind() {
	case reflect.Bool:
		return types.NewBooleanValue(rv.Bool()), nil
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return types.NewInt32Value(int32(rv.Int())), nil
	case reflect.Int:
		return types.NewIntegerValue(rv.Int()), nil
	case reflect.Int64:
		return types.NewInt64Value(rv.Int()), nil
	case reflect.Uint8, reflect.Uint16:
		return types.NewInt32Value(int32(rv.Uint())), nil
	case reflect.Uint32:
		return types.NewInt64Value(int64(rv.Uint())), nil
	case reflect.Uint, reflect.Uint64:
		x := rv.Uint()
		if x > math.MaxInt64 {
			return nil, errors.Newf("cannot encode unsigned integer %d: out of range", x)
		}
		return types.NewInt64Value(int64(x)), nil
	case reflect.Float32, reflect.Float64:
		return types.NewDoubleValue(rv.Float()), nil
	case reflect.String:
		return types.NewStringValue(rv.String()), nil
	case reflect.Struct, reflect.Map:
		if tp.Kind() == reflect.Map && rv.IsNil() {
			return types.NewNullValue(), nil
		}
		d, err := e.encodeDocument(rv)
		if err != nil {
			return nil, err
		}
		return types.NewDocumentValue(d), nil
	case reflect.Array:
		return e.encodeArray(rv)
	case reflect.Slice:
		if rv.IsNil() {
			return types.NewNullValue(), nil
		}
		if tp.Elem().Kind() == reflect.Uint8 {
			return types.NewBinaryValue(types.BinaryGeneric, rv.Bytes()), nil
		}
		return e.encodeArray(rv)
	}

	return nil, unsupported(tp, "no BSON representation")
}

func (e encoder) encodeArray(rv reflect.Value) (types.Value, error) {
	var ab types.ArrayBuilder

	for i := 0; i < rv.Len(); i++ {
		v, err := e.encodeValue(rv.Index(i))
		if err != nil {
			return nil, errors.Wrapf(err, "index %d", i)
		}

		ab.Append(v)
	}

	a, err := ab.Build()
	if err != nil {
		return nil, err
	}

	return types.NewArrayValue(a), nil
}

func asMarshaler(rv reflect.Value) (Marshaler, bool) {
	tp := rv.Type()
	if tp.Implements(marshalerType) {
		return rv.Interface().(Marshaler), true
	}

	if !reflect.PointerTo(tp).Implements(marshalerType) {
		return nil, false
	}

	if rv.CanAddr() {
		return rv.Addr().Interface().(Marshaler), true
	}

	p := reflect.New(tp)
	p.Elem().Set(rv)
	return p.Interface().(Marshaler), true
}

// isSpecialStruct reports whether tp is a struct type with its own mapping.
func isSpecialStruct(tp reflect.Type) bool {
	switch tp {
	case timeType, documentType, arrayType, containerType:
		return true
	}

	return tp.Implements(valueType) || isOwned(tp)
}

// isPlainStruct reports whether tp is a struct mapped field by field.
func (r *Registry) isPlainStruct(tp reflect.Type) bool {
	if tp.Kind() != reflect.Struct || isSpecialStruct(tp) {
		return false
	}

	ptp := reflect.PointerTo(tp)
	if ptp.Implements(marshalerType) || ptp.Implements(unmarshalerType) {
		return false
	}

	_, ok := r.lookup(tp)
	return !ok
}

// fieldKey returns the key under which a struct field is stored.
// embedded is true for untagged embedded structs, whose fields are promoted to the parent document.
func (r *Registry) fieldKey(sf reflect.StructField) (key string, embedded bool, ok bool) {
	name, _, _ := strings.Cut(sf.Tag.Get("bson"), ",")
	if name == "-" {
		return "", false, false
	}

	if sf.Anonymous && name == "" && r.isPlainStruct(sf.Type) {
		return "", true, true
	}

	if !sf.IsExported() {
		return "", false, false
	}

	if name != "" {
		return name, false, true
	}

	return strings.ToLower(sf.Name), false, true
}
