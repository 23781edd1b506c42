package bsonmap

import (
	"reflect"

	"github.com/chaisql/bsonmap/types"
	"github.com/cockroachdb/errors"
)

type decoder struct {
	r *Registry
}

// errArrayFull stops the iteration of an array once a fixed size Go array is filled.
var errArrayFull = errors.New("array full")

// decodeDocument decodes doc into rv, which must be settable and hold a zero value.
func (d decoder) decodeDocument(doc types.Document, rv reflect.Value, path string) error {
	tp := rv.Type()
	if c, ok := d.r.lookup(tp); ok {
		return atPath(c.decode(doc, rv), path)
	}

	switch tp.Kind() {
	case reflect.Pointer:
		p := reflect.New(tp.Elem())
		if err := d.decodeDocument(doc, p.Elem(), path); err != nil {
			return err
		}
		rv.Set(p)
		return nil
	case reflect.Interface:
		if tp.NumMethod() != 0 && tp != valueType {
			return unsupported(tp, "cannot decode into a non-empty interface")
		}
		rv.Set(reflect.ValueOf(types.NewDocumentValue(doc)))
		return nil
	}

	if u, ok := asUnmarshaler(rv); ok {
		return atPath(u.UnmarshalDocument(doc), path)
	}

	switch tp {
	case documentType:
		rv.Set(reflect.ValueOf(doc))
		return nil
	case containerType:
		rv.Set(reflect.ValueOf(NewValueFromDocument(doc)))
		return nil
	}

	switch {
	case tp.Kind() == reflect.Struct && !isSpecialStruct(tp):
		return d.decodeStruct(doc, rv, path)
	case tp.Kind() == reflect.Map:
		return d.decodeMap(doc, rv, path)
	}

	return unsupported(tp, "cannot decode a document")
}

func (d decoder) decodeStruct(doc types.Document, rv reflect.Value, path string) error {
	tp := rv.Type()

	for i := 0; i < tp.NumField(); i++ {
		key, embedded, ok := d.r.fieldKey(tp.Field(i))
		if !ok {
			continue
		}

		f := rv.Field(i)
		if embedded {
			if err := d.decodeStruct(doc, f, path); err != nil {
				return err
			}
			continue
		}

		fpath := joinPath(path, key)
		v, err := doc.Lookup(key)
		if errors.Is(err, types.ErrFieldNotFound) {
			return errors.Wrapf(ErrMissingField, "%q", fpath)
		}
		if err != nil {
			return atPath(err, fpath)
		}

		if err := d.decodeValue(v, f, fpath); err != nil {
			return err
		}
	}

	return nil
}

func (d decoder) decodeMap(doc types.Document, rv reflect.Value, path string) error {
	tp := rv.Type()
	if tp.Key().Kind() != reflect.String {
		return unsupported(tp, "map keys must be strings")
	}

	m := reflect.MakeMapWithSize(tp, doc.Len())
	err := doc.Iterate(func(key string, v types.Value) error {
		ev := reflect.New(tp.Elem()).Elem()
		if err := d.decodeValue(v, ev, joinPath(path, key)); err != nil {
			return err
		}

		m.SetMapIndex(reflect.ValueOf(key).Convert(tp.Key()), ev)
		return nil
	})
	if err != nil {
		return err
	}

	rv.Set(m)
	return nil
}

// decodeValue decodes v into rv, which must be settable and hold a zero value.
func (d decoder) decodeValue(v types.Value, rv reflect.Value, path string) error {
	tp := rv.Type()
	if _, ok := d.r.lookup(tp); ok {
		return d.decodeEmbedded(v, rv, path)
	}

	switch tp.Kind() {
	case reflect.Pointer:
		if types.IsNull(v) {
			return nil
		}
		p := reflect.New(tp.Elem())
		if err := d.decodeValue(v, p.Elem(), path); err != nil {
			return err
		}
		rv.Set(p)
		return nil
	case reflect.Interface:
		if types.IsNull(v) {
			return nil
		}
		x := reflect.ValueOf(v)
		if !x.Type().AssignableTo(tp) {
			return atPath(errors.Wrapf(types.ErrWrongType, "cannot decode %s value into %s", v.Type(), tp), path)
		}
		rv.Set(x)
		return nil
	}

	if tp.Implements(valueType) {
		if reflect.TypeOf(v) != tp {
			return atPath(errors.Wrapf(types.ErrWrongType, "cannot decode %s value into %s", v.Type(), tp), path)
		}
		rv.Set(reflect.ValueOf(v))
		return nil
	}

	switch tp {
	case timeType:
		dt, err := types.Get[types.DateTimeValue](v)
		if err != nil {
			return atPath(err, path)
		}
		rv.Set(reflect.ValueOf(dt.Time()))
		return nil
	case arrayType:
		a, err := types.Get[types.ArrayValue](v)
		if err != nil {
			return atPath(err, path)
		}
		rv.Set(reflect.ValueOf(a.Array))
		return nil
	}

	if isOwned(tp) {
		if types.IsNull(v) {
			return nil
		}
		return d.decodeValue(v, rv.Addr().Interface().(ownedWriter).adopt(), path)
	}

	if _, ok := asUnmarshaler(rv); ok {
		return d.decodeEmbedded(v, rv, path)
	}

	switch tp.Kind() {
	case reflect.Bool:
		b, err := types.Get[types.BooleanValue](v)
		if err != nil {
			return atPath(err, path)
		}
		rv.SetBool(bool(b))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := types.AsInteger[int64](v)
		if err != nil {
			return atPath(err, path)
		}
		if rv.OverflowInt(i) {
			return atPath(errors.Wrapf(types.ErrWrongType, "integer %d overflows %s", i, tp), path)
		}
		rv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := types.AsInteger[uint64](v)
		if err != nil {
			return atPath(err, path)
		}
		if rv.OverflowUint(u) {
			return atPath(errors.Wrapf(types.ErrWrongType, "integer %d overflows %s", u, tp), path)
		}
		rv.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := types.Get[types.DoubleValue](v)
		if err != nil {
			return atPath(err, path)
		}
		rv.SetFloat(float64(f))
	case reflect.String:
		s, err := types.Get[types.StringValue](v)
		if err != nil {
			return atPath(err, path)
		}
		rv.SetString(string(s))
	case reflect.Struct, reflect.Map:
		if tp.Kind() == reflect.Map && types.IsNull(v) {
			return nil
		}
		return d.decodeEmbedded(v, rv, path)
	case reflect.Array:
		return d.decodeArray(v, rv, path)
	case reflect.Slice:
		if types.IsNull(v) {
			return nil
		}
		if tp.Elem().Kind() == reflect.Uint8 {
			b, err := types.Get[types.BinaryValue](v)
			if err != nil {
				return atPath(err, path)
			}
			rv.SetBytes(b.Data)
			return nil
		}
		return d.decodeSlice(v, rv, path)
	default:
		return unsupported(tp, "no BSON representation")
	}

	return nil
}

// decodeEmbedded decodes an embedded document into rv.
func (d decoder) decodeEmbedded(v types.Value, rv reflect.Value, path string) error {
	dv, err := types.Get[types.DocumentValue](v)
	if err != nil {
		return atPath(err, path)
	}

	return d.decodeDocument(dv.Document, rv, path)
}

// decodeArray fills a Go array. The source must have at least as many elements,
// extra elements are ignored.
func (d decoder) decodeArray(v types.Value, rv reflect.Value, path string) error {
	a, err := types.Get[types.ArrayValue](v)
	if err != nil {
		return atPath(err, path)
	}

	n := rv.Len()
	if l := a.Len(); l < n {
		return errors.Wrapf(ErrArrayLength, "field %q has %d elements, expected %d", path, l, n)
	}

	err = a.Iterate(func(i int, ev types.Value) error {
		if i >= n {
			return errArrayFull
		}

		return d.decodeValue(ev, rv.Index(i), indexPath(path, i))
	})
	if err != nil && !errors.Is(err, errArrayFull) {
		return err
	}

	return nil
}

func (d decoder) decodeSlice(v types.Value, rv reflect.Value, path string) error {
	a, err := types.Get[types.ArrayValue](v)
	if err != nil {
		return atPath(err, path)
	}

	s := reflect.MakeSlice(rv.Type(), a.Len(), a.Len())
	err = a.Iterate(func(i int, ev types.Value) error {
		return d.decodeValue(ev, s.Index(i), indexPath(path, i))
	})
	if err != nil {
		return err
	}

	rv.Set(s)
	return nil
}

func asUnmarshaler(rv reflect.Value) (Unmarshaler, bool) {
	if !rv.CanAddr() || !reflect.PointerTo(rv.Type()).Implements(unmarshalerType) {
		return nil, false
	}

	return rv.Addr().Interface().(Unmarshaler), true
}
