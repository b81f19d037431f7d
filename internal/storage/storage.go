// Package storage keeps a single serialized value bound to one format.
package storage

import (
	"bytes"
	"errors"

	"github.com/rs/zerolog/log"

	"localstash/internal/format"
)

var ErrEmptyStorage = errors.New("storage has no data")

// Store holds at most one encoded T. The value type is fixed by the type
// parameter; the format is chosen at construction.
type Store[T format.Compatible[T], PT format.Decodable[T]] struct {
	format format.Format
	data   []byte // nil until the first successful Save
}

func New[T format.Compatible[T], PT format.Decodable[T]](f format.Format) *Store[T, PT] {
	return &Store[T, PT]{format: f}
}

// Save encodes v and replaces any previous payload. On error the previous
// payload is kept.
func (s *Store[T, PT]) Save(v T) error {
	b, err := format.Encode(s.format, v)
	if err != nil {
		return err
	}
	if b == nil {
		b = []byte{}
	}
	s.data = b
	log.Debug().Str("format", s.format.Name()).Int("bytes", len(b)).Msg("stored value")
	return nil
}

// Load decodes the stored payload. It returns ErrEmptyStorage if nothing
// was saved.
func (s *Store[T, PT]) Load() (T, error) {
	if s.data == nil {
		var zero T
		return zero, ErrEmptyStorage
	}
	return format.Decode[T, PT](s.format, s.data)
}

func (s *Store[T, PT]) HasData() bool { return s.data != nil }

func (s *Store[T, PT]) Format() format.Format { return s.format }

// Bytes returns a copy of the stored payload, or nil when empty.
func (s *Store[T, PT]) Bytes() []byte {
	if s.data == nil {
		return nil
	}
	return bytes.Clone(s.data)
}

// ConvertTo re-encodes the stored value into a new, independent store
// using f. s is not modified.
func (s *Store[T, PT]) ConvertTo(f format.Format) (*Store[T, PT], error) {
	v, err := s.Load()
	if err != nil {
		return nil, err
	}
	dst := New[T, PT](f)
	if err := dst.Save(v); err != nil {
		return nil, err
	}
	return dst, nil
}
