package bsonmap

import "reflect"

// Owned holds a pointer to a T exclusively owned by the value containing it.
// Decoding an Owned field always allocates a new T, and encoding it writes the pointee,
// or null if the handle is empty.
type Owned[T any] struct {
	p *T
}

// NewOwned returns a handle taking ownership of p.
func NewOwned[T any](p *T) Owned[T] {
	return Owned[T]{p: p}
}

// Get returns the owned pointer, or nil if the handle is empty.
func (o Owned[T]) Get() *T {
	return o.p
}

// Release empties the handle.
func (o *Owned[T]) Release() {
	o.p = nil
}

func (o Owned[T]) pointee() reflect.Value {
	if o.p == nil {
		return reflect.Value{}
	}

	return reflect.ValueOf(o.p).Elem()
}

func (o *Owned[T]) adopt() reflect.Value {
	o.p = new(T)
	return reflect.ValueOf(o.p).Elem()
}

type ownedReader interface {
	pointee() reflect.Value
}

// ownedWriter is implemented by every *Owned[T].
type ownedWriter interface {
	adopt() reflect.Value
}

var ownedWriterType = reflect.TypeOf((*ownedWriter)(nil)).Elem()

func isOwned(tp reflect.Type) bool {
	return tp.Kind() == reflect.Struct && reflect.PointerTo(tp).Implements(ownedWriterType)
}
