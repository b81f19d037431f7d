package bench

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"localstash/internal/format"
)

// ParseFormats resolves a comma-separated list of format names. Blank
// entries are skipped.
func ParseFormats(raw string) ([]format.Format, error) {
	var out []format.Format
	for _, name := range strings.Split(raw, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		f, err := format.ByName(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, ErrNoFormats
	}
	return out, nil
}

// WriteTable prints run as a header line followed by one row per format.
func WriteTable(w io.Writer, run Run) error {
	fmt.Fprintf(w, "%s  %s  iterations=%d name=%dB\n",
		run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), run.Iterations, run.NameBytes)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FORMAT\tBYTES\tENCODE ns/op\tDECODE ns/op\tROUND TRIP\tCONVERSIONS")
	for _, res := range run.Results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%t\t%d/%d\n",
			res.Format, res.Bytes, res.EncodeNs, res.DecodeNs, res.RoundTrip, res.Conversions, len(run.Results)-1)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
