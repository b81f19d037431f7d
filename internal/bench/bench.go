// Package bench compares the record formats on size, speed and fidelity.
package bench

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"localstash/internal/domain"
	"localstash/internal/format"
	"localstash/internal/storage"
)

var ErrNoFormats = errors.New("no formats to compare")

// Result is the outcome for one format within a run.
type Result struct {
	Format      string
	Bytes       int
	EncodeNs    int64 // mean per operation
	DecodeNs    int64 // mean per operation
	RoundTrip   bool
	Conversions int // formats the value converted to without loss
}

type Run struct {
	ID         string
	StartedAt  time.Time
	Iterations int
	NameBytes  int
	Results    []Result
}

// OK reports whether every format round-tripped and converted losslessly
// into every other format.
func (r Run) OK() bool {
	for _, res := range r.Results {
		if !res.RoundTrip || res.Conversions != len(r.Results)-1 {
			return false
		}
	}
	return true
}

// SamplePerson returns the benchmark record with a name of nameBytes bytes.
func SamplePerson(nameBytes int) domain.Person {
	return domain.Person{Name: strings.Repeat("a", max(nameBytes, 0)), Age: 30}
}

// Compare encodes and decodes sample iterations times with each format.
// m may be nil.
func Compare(ctx context.Context, formats []format.Format, sample domain.Person, iterations int, m *Metrics) (Run, error) {
	if len(formats) == 0 {
		return Run{}, ErrNoFormats
	}
	if iterations <= 0 {
		return Run{}, fmt.Errorf("iterations must be positive, got %d", iterations)
	}

	run := Run{
		ID:         "run_" + uuid.NewString(),
		StartedAt:  time.Now().UTC(),
		Iterations: iterations,
		NameBytes:  len(sample.Name),
	}
	for _, f := range formats {
		if err := ctx.Err(); err != nil {
			return Run{}, err
		}
		res, err := compareOne(f, formats, sample, iterations, m)
		if err != nil {
			return Run{}, err
		}
		log.Debug().
			Str("run_id", run.ID).
			Str("format", res.Format).
			Int("bytes", res.Bytes).
			Int64("encode_ns", res.EncodeNs).
			Int64("decode_ns", res.DecodeNs).
			Msg("format measured")
		run.Results = append(run.Results, res)
	}
	if m != nil {
		m.Runs.Inc()
	}
	return run, nil
}

func compareOne(f format.Format, all []format.Format, sample domain.Person, iterations int, m *Metrics) (Result, error) {
	res := Result{Format: f.Name()}
	s := storage.New[domain.Person](f)

	var encodeTotal time.Duration
	for i := 0; i < iterations; i++ {
		start := time.Now()
		err := s.Save(sample)
		d := time.Since(start)
		if err != nil {
			return Result{}, err
		}
		encodeTotal += d
		if m != nil {
			m.EncodeDuration.WithLabelValues(f.Name()).Observe(d.Seconds())
		}
	}
	res.Bytes = len(s.Bytes())
	res.EncodeNs = encodeTotal.Nanoseconds() / int64(iterations)

	var decodeTotal time.Duration
	var loaded domain.Person
	for i := 0; i < iterations; i++ {
		start := time.Now()
		v, err := s.Load()
		d := time.Since(start)
		if err != nil {
			return Result{}, err
		}
		decodeTotal += d
		loaded = v
		if m != nil {
			m.DecodeDuration.WithLabelValues(f.Name()).Observe(d.Seconds())
		}
	}
	res.DecodeNs = decodeTotal.Nanoseconds() / int64(iterations)
	res.RoundTrip = loaded.Equal(sample)

	for _, other := range all {
		if other.Name() == f.Name() {
			continue
		}
		converted, err := s.ConvertTo(other)
		if err != nil {
			return Result{}, fmt.Errorf("convert %s to %s: %w", f.Name(), other.Name(), err)
		}
		v, err := converted.Load()
		if err != nil {
			return Result{}, fmt.Errorf("load converted %s: %w", other.Name(), err)
		}
		if v.Equal(sample) {
			res.Conversions++
		}
	}

	if m != nil {
		m.EncodedBytes.WithLabelValues(f.Name()).Set(float64(res.Bytes))
	}
	return res, nil
}
