// Package export renders a materialized table as a downloadable document.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Table is a fully materialized list: one header row and any number of
// string rows of the same width.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Encoder writes a Table in one document format.
type Encoder interface {
	Encode(w io.Writer, t Table) error
	ContentType() string
	Extension() string
}

var encoders = map[string]Encoder{
	"csv":   CSV{},
	"xlsx":  XLSX{},
	"excel": XLSX{},
	"pdf":   PDF{},
}

// ForFormat returns the encoder registered under format, ignoring case.
func ForFormat(format string) (Encoder, error) {
	enc, ok := encoders[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return enc, nil
}

// Filename builds "<base>.<ext>" for a download.
func Filename(base string, enc Encoder) string {
	return base + "." + enc.Extension()
}

func (t Table) validate() error {
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("export: row %d has %d cells, want %d", i, len(row), len(t.Headers))
		}
	}
	return nil
}
