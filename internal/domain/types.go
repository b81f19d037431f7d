package domain

import (
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// Task is a single queued todo item. Field order is part of the persisted format.
type Task struct {
	ID          uint64 `json:"id"`
	Description string `json:"description"`
	CreatedAt   uint64 `json:"created_at"` // unix seconds
}

// Created returns CreatedAt as a time in UTC.
func (t Task) Created() time.Time {
	if t.CreatedAt > math.MaxInt64 {
		return time.Unix(math.MaxInt64, 0).UTC()
	}
	return time.Unix(int64(t.CreatedAt), 0).UTC()
}

func (t Task) Equal(other Task) bool { return t == other }

// Wire fields: 1 id (varint), 2 description (bytes), 3 created_at (varint).
func (t Task) AppendWire(b []byte) []byte {
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, t.ID)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, t.Description)
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, t.CreatedAt)
	return b
}

func (t *Task) UnmarshalWire(b []byte) error {
	var out Task
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			if err := wantType(num, typ, protowire.VarintType); err != nil {
				return 0, err
			}
			v, n := protowire.ConsumeVarint(b)
			out.ID = v
			return n, nil
		case 2:
			if err := wantType(num, typ, protowire.BytesType); err != nil {
				return 0, err
			}
			v, n := protowire.ConsumeString(b)
			out.Description = v
			return n, nil
		case 3:
			if err := wantType(num, typ, protowire.VarintType); err != nil {
				return 0, err
			}
			v, n := protowire.ConsumeVarint(b)
			out.CreatedAt = v
			return n, nil
		}
		return 0, nil
	})
	if err != nil {
		return err
	}
	*t = out
	return nil
}

// Person is the sample record used by the serializer comparison.
type Person struct {
	Name string `json:"name"`
	Age  uint8  `json:"age"`
}

func (p Person) Equal(other Person) bool { return p == other }

// Wire fields: 1 name (bytes), 2 age (varint).
func (p Person) AppendWire(b []byte) []byte {
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, p.Name)
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.Age))
	return b
}

func (p *Person) UnmarshalWire(b []byte) error {
	var out Person
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			if err := wantType(num, typ, protowire.BytesType); err != nil {
				return 0, err
			}
			v, n := protowire.ConsumeString(b)
			out.Name = v
			return n, nil
		case 2:
			if err := wantType(num, typ, protowire.VarintType); err != nil {
				return 0, err
			}
			v, n := protowire.ConsumeVarint(b)
			if n >= 0 && v > math.MaxUint8 {
				return 0, fmt.Errorf("age %d overflows uint8", v)
			}
			out.Age = uint8(v)
			return n, nil
		}
		return 0, nil
	})
	if err != nil {
		return err
	}
	*p = out
	return nil
}
