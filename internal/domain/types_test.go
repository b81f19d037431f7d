package domain

import (
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestTaskWireRoundTrip(t *testing.T) {
	in := Task{ID: 42, Description: "Pay bills", CreatedAt: 1_700_000_000}

	var out Task
	if err := out.UnmarshalWire(in.AppendWire(nil)); err != nil {
		t.Fatalf("UnmarshalWire() error = %v", err)
	}
	if !out.Equal(in) {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestPersonWireSkipsUnknownFields(t *testing.T) {
	b := Person{Name: "Andre", Age: 30}.AppendWire(nil)
	b = protowire.AppendTag(b, 9, protowire.BytesType)
	b = protowire.AppendString(b, "ignored")

	var p Person
	if err := p.UnmarshalWire(b); err != nil {
		t.Fatalf("UnmarshalWire() error = %v", err)
	}
	if p != (Person{Name: "Andre", Age: 30}) {
		t.Fatalf("got %+v", p)
	}
}

func TestPersonWireRejectsBadInput(t *testing.T) {
	overflow := protowire.AppendTag(nil, 2, protowire.VarintType)
	overflow = protowire.AppendVarint(overflow, 300)

	wrongType := protowire.AppendTag(nil, 1, protowire.VarintType)
	wrongType = protowire.AppendVarint(wrongType, 1)

	truncated := Person{Name: "Andre", Age: 30}.AppendWire(nil)
	truncated = truncated[:3]

	cases := map[string][]byte{
		"age overflow": overflow,
		"wrong type":   wrongType,
		"truncated":    truncated,
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			p := Person{Name: "keep"}
			if err := p.UnmarshalWire(b); err == nil {
				t.Fatalf("UnmarshalWire() error = nil, want error")
			}
			if p.Name != "keep" {
				t.Fatalf("receiver modified on failure: %+v", p)
			}
		})
	}
}

func TestTaskCreated(t *testing.T) {
	task := Task{CreatedAt: 86400}
	if got := task.Created().Format("2006-01-02"); got != "1970-01-02" {
		t.Fatalf("Created() = %s, want 1970-01-02", got)
	}
}
