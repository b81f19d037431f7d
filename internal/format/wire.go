package format

import "fmt"

// Wire is the schema-based binary format. Values describe their own schema
// through stable protobuf field numbers (see WireMarshaler) and are encoded
// with google.golang.org/protobuf/encoding/protowire.
type Wire struct{}

func (Wire) Name() string { return "wire" }

func (w Wire) Marshal(v any) (out []byte, err error) {
	defer guard(w.Name(), &err)
	m, ok := v.(WireMarshaler)
	if !ok {
		return nil, formatErr(w.Name(), fmt.Errorf("%T does not implement WireMarshaler", v))
	}
	return m.AppendWire(nil), nil
}

func (w Wire) Unmarshal(data []byte, v any) (err error) {
	defer guard(w.Name(), &err)
	u, ok := v.(WireUnmarshaler)
	if !ok {
		return formatErr(w.Name(), fmt.Errorf("%T does not implement WireUnmarshaler", v))
	}
	if err := u.UnmarshalWire(data); err != nil {
		return formatErr(w.Name(), err)
	}
	return nil
}
