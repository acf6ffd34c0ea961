package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

type CSV struct{}

func (CSV) ContentType() string { return "text/csv" }

func (CSV) Extension() string { return "csv" }

func (CSV) Encode(w io.Writer, t Table) error {
	if err := t.validate(); err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("export csv: write header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("export csv: write records: %w", err)
	}
	return nil
}
