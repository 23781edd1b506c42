package bsonmap

import (
	"reflect"
	"sync"

	"github.com/chaisql/bsonmap/types"
)

// DefaultRegistry is used by Construct, Extract and Get.
var DefaultRegistry = NewRegistry()

// A Registry holds the codecs of a set of Go types.
// Codecs are usually registered during initialization,
// a Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[reflect.Type]codec
}

// codec is a Codec with its type parameter erased.
type codec struct {
	encode func(reflect.Value) (types.Document, error)
	decode func(types.Document, reflect.Value) error
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[reflect.Type]codec),
	}
}

// Register c as the codec of T in r. It replaces any codec previously registered for T.
func Register[T any](r *Registry, c Codec[T]) {
	tp := reflect.TypeOf((*T)(nil)).Elem()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[tp] = codec{
		encode: func(rv reflect.Value) (types.Document, error) {
			var t T
			if x := rv.Interface(); x != nil {
				t = x.(T)
			}
			return c.EncodeDocument(t)
		},
		decode: func(d types.Document, rv reflect.Value) error {
			t, err := c.DecodeDocument(d)
			if err != nil {
				return err
			}

			rv.Set(reflect.ValueOf(&t).Elem())
			return nil
		},
	}
}

func (r *Registry) lookup(tp reflect.Type) (codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.codecs[tp]
	return c, ok
}
