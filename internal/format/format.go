// Package format provides interchangeable byte encodings for records.
package format

import (
	"errors"
	"fmt"
	"strings"
)

// Format encodes values to bytes and back. Unmarshal must be given a pointer.
type Format interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// WireMarshaler appends the value's protobuf wire encoding to b.
// Field numbers must be stable across releases.
type WireMarshaler interface {
	AppendWire(b []byte) []byte
}

// WireUnmarshaler decodes the output of AppendWire into the receiver.
type WireUnmarshaler interface {
	UnmarshalWire(b []byte) error
}

// Compatible is the set of values every Format in this package can
// round-trip: a stable field-order wire encoding and value equality. The
// symmetric decode on *T is required separately by Decodable. Borsh and
// JSON encode exported struct fields in declaration order.
type Compatible[T any] interface {
	WireMarshaler
	Equal(other T) bool
}

// Decodable constrains PT to *T implementing WireUnmarshaler, so a type
// without a wire decoder is rejected at compile time.
type Decodable[T any] interface {
	*T
	WireUnmarshaler
}

// FormatError reports an encode or decode failure and the format that produced it.
type FormatError struct {
	Format string
	Err    error
}

func (e *FormatError) Error() string { return e.Format + " error: " + e.Err.Error() }

func (e *FormatError) Unwrap() error { return e.Err }

func formatErr(name string, err error) error {
	return &FormatError{Format: name, Err: err}
}

// guard converts a panic raised inside a codec library into a FormatError.
func guard(name string, err *error) {
	if r := recover(); r != nil {
		*err = formatErr(name, fmt.Errorf("panic: %v", r))
	}
}

// Encode marshals v with f.
func Encode[T Compatible[T]](f Format, v T) ([]byte, error) {
	return f.Marshal(v)
}

// Decode unmarshals data produced by f into a new T.
func Decode[T Compatible[T], PT Decodable[T]](f Format, data []byte) (T, error) {
	var v T
	if err := f.Unmarshal(data, PT(&v)); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

var ErrUnknownFormat = errors.New("unknown format")

// All returns one instance of every format, compact binary first.
func All() []Format {
	return []Format{Borsh{}, Wire{}, JSON{}}
}

// ByName looks a format up by its case-insensitive name.
func ByName(name string) (Format, error) {
	for _, f := range All() {
		if strings.EqualFold(f.Name(), strings.TrimSpace(name)) {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}
