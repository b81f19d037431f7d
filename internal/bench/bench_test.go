package bench

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"localstash/internal/domain"
	"localstash/internal/format"
)

func TestCompareAllFormats(t *testing.T) {
	sample := SamplePerson(368)
	run, err := Compare(context.Background(), format.All(), sample, 20, nil)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(run.Results) != 3 {
		t.Fatalf("len(Results) = %d, want 3", len(run.Results))
	}
	if run.NameBytes != 368 || run.Iterations != 20 {
		t.Fatalf("run = %+v", run)
	}
	if !run.OK() {
		t.Fatalf("run not OK: %+v", run.Results)
	}
	for _, res := range run.Results {
		if res.Bytes == 0 {
			t.Fatalf("%s: Bytes = 0", res.Format)
		}
		if res.Conversions != 2 {
			t.Fatalf("%s: Conversions = %d, want 2", res.Format, res.Conversions)
		}
	}
	// 4-byte length prefix, the name, one age byte.
	if got := run.Results[0]; got.Format != "borsh" || got.Bytes != 4+368+1 {
		t.Fatalf("borsh result = %+v, want 373 bytes", got)
	}
}

func TestCompareRejectsBadInput(t *testing.T) {
	if _, err := Compare(context.Background(), nil, SamplePerson(1), 10, nil); !errors.Is(err, ErrNoFormats) {
		t.Fatalf("Compare(nil formats) error = %v, want ErrNoFormats", err)
	}
	if _, err := Compare(context.Background(), format.All(), SamplePerson(1), 0, nil); err == nil {
		t.Fatalf("Compare(0 iterations) error = nil, want error")
	}
}

func TestCompareHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Compare(ctx, format.All(), SamplePerson(8), 10, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("Compare() error = %v, want context.Canceled", err)
	}
}

func TestCompareRecordsMetrics(t *testing.T) {
	m := NewMetrics("test")
	formats := []format.Format{format.Borsh{}, format.JSON{}}
	if _, err := Compare(context.Background(), formats, SamplePerson(10), 5, m); err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if got := testutil.ToFloat64(m.Runs); got != 1 {
		t.Fatalf("runs_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.EncodedBytes.WithLabelValues("borsh")); got != 15 {
		t.Fatalf("encoded_bytes{borsh} = %v, want 15", got)
	}
	if n := testutil.CollectAndCount(m.EncodeDuration); n != 2 {
		t.Fatalf("encode histograms = %d, want 2", n)
	}
	if n := testutil.CollectAndCount(m.DecodeDuration); n != 2 {
		t.Fatalf("decode histograms = %d, want 2", n)
	}
}

func TestSamplePerson(t *testing.T) {
	p := SamplePerson(5)
	if p.Name != "aaaaa" || p.Age != 30 {
		t.Fatalf("SamplePerson(5) = %+v", p)
	}
	if p := SamplePerson(-1); p.Name != "" {
		t.Fatalf("SamplePerson(-1).Name = %q, want empty", p.Name)
	}
}

func BenchmarkSerialize(b *testing.B) {
	sample := SamplePerson(368)
	for _, f := range format.All() {
		b.Run(f.Name(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := format.Encode(f, sample); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDeserialize(b *testing.B) {
	sample := SamplePerson(368)
	for _, f := range format.All() {
		data, err := format.Encode(f, sample)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(f.Name(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				if _, err := format.Decode[domain.Person](f, data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSerializeNameLength(b *testing.B) {
	for _, n := range []int{0, 64, 1024, 16384} {
		sample := SamplePerson(n)
		for _, f := range format.All() {
			b.Run(fmt.Sprintf("%s/%d", f.Name(), n), func(b *testing.B) {
				b.SetBytes(int64(n))
				for i := 0; i < b.N; i++ {
					if _, err := format.Encode(f, sample); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
