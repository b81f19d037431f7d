package format

import (
	"fmt"
	"reflect"

	"github.com/near/borsh-go"
)

// Borsh is the compact binary format: little-endian fixed-width integers,
// u32 length-prefixed strings and sequences, fields in declaration order.
type Borsh struct{}

func (Borsh) Name() string { return "borsh" }

// Marshal encodes v. Pointers are encoded by borsh as optional values, so
// a pointer is dereferenced first.
func (b Borsh) Marshal(v any) (out []byte, err error) {
	defer guard(b.Name(), &err)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, formatErr(b.Name(), fmt.Errorf("nil %T", v))
		}
		v = rv.Elem().Interface()
	}
	out, err = borsh.Serialize(v)
	if err != nil {
		return nil, formatErr(b.Name(), err)
	}
	return out, nil
}

func (b Borsh) Unmarshal(data []byte, v any) (err error) {
	defer guard(b.Name(), &err)
	if rv := reflect.ValueOf(v); rv.Kind() != reflect.Pointer || rv.IsNil() {
		return formatErr(b.Name(), fmt.Errorf("decode target must be a non-nil pointer, got %T", v))
	}
	if err := borsh.Deserialize(v, data); err != nil {
		return formatErr(b.Name(), err)
	}
	// Deserialize stops once v is filled. The encoding is canonical, so the
	// re-encoded length is the number of bytes consumed.
	used, err := borsh.Serialize(reflect.ValueOf(v).Elem().Interface())
	if err != nil {
		return formatErr(b.Name(), err)
	}
	if extra := len(data) - len(used); extra != 0 {
		return formatErr(b.Name(), fmt.Errorf("not all bytes read: %d trailing bytes", extra))
	}
	return nil
}
