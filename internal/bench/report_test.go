package bench

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"localstash/internal/format"
)

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats(" JSON, ,borsh,")
	if err != nil {
		t.Fatalf("ParseFormats() error = %v", err)
	}
	if len(got) != 2 || got[0].Name() != "json" || got[1].Name() != "borsh" {
		t.Fatalf("ParseFormats() = %v, want [json borsh]", got)
	}
}

func TestParseFormatsErrors(t *testing.T) {
	if _, err := ParseFormats("borsh,yaml"); !errors.Is(err, format.ErrUnknownFormat) {
		t.Fatalf("ParseFormats(yaml) error = %v, want ErrUnknownFormat", err)
	}
	for _, raw := range []string{"", " , ,"} {
		if _, err := ParseFormats(raw); !errors.Is(err, ErrNoFormats) {
			t.Fatalf("ParseFormats(%q) error = %v, want ErrNoFormats", raw, err)
		}
	}
}

func TestWriteTable(t *testing.T) {
	run := Run{
		ID:         "run_x",
		StartedAt:  time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Iterations: 10,
		NameBytes:  4,
		Results: []Result{
			{Format: "borsh", Bytes: 9, EncodeNs: 100, DecodeNs: 200, RoundTrip: true, Conversions: 1},
			{Format: "json", Bytes: 24, EncodeNs: 900, DecodeNs: 1500, RoundTrip: false, Conversions: 0},
		},
	}
	var buf bytes.Buffer
	if err := WriteTable(&buf, run); err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if want := "run_x  2024-05-01 12:30:00  iterations=10 name=4B"; lines[0] != want {
		t.Fatalf("header = %q, want %q", lines[0], want)
	}
	if !strings.HasPrefix(lines[1], "FORMAT") {
		t.Fatalf("column header = %q", lines[1])
	}
	if f := strings.Fields(lines[2]); strings.Join(f, " ") != "borsh 9 100 200 true 1/1" {
		t.Fatalf("borsh row = %q", lines[2])
	}
	if f := strings.Fields(lines[3]); strings.Join(f, " ") != "json 24 900 1500 false 0/1" {
		t.Fatalf("json row = %q", lines[3])
	}
}
