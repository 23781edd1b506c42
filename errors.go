package bsonmap

import (
	"reflect"
	"strconv"

	"github.com/cockroachdb/errors"
)

var (
	// ErrMissingField is returned when a key expected by a Go type is not in the document.
	ErrMissingField = errors.New("missing field")

	// ErrArrayLength is returned when decoding an array with fewer elements than
	// the length of the target Go array.
	ErrArrayLength = errors.New("array too short")

	// ErrUnsupportedType is returned when a Go type cannot be mapped to a document or a value.
	ErrUnsupportedType = errors.New("unsupported type")
)

func unsupported(t reflect.Type, reason string) error {
	return errors.Wrapf(ErrUnsupportedType, "%s: %s", t, reason)
}

// atPath adds the location of a field to a decoding error.
func atPath(err error, path string) error {
	if path == "" {
		return err
	}

	return errors.Wrapf(err, "field %q", path)
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

func indexPath(path string, i int) string {
	return joinPath(path, strconv.Itoa(i))
}
