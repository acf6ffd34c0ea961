package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const defaultSheetName = "Sheet1"

type XLSX struct{}

func (XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSX) Extension() string { return "xlsx" }

func (XLSX) Encode(w io.Writer, t Table) error {
	if err := t.validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(t.Title)
	if sheet != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, sheet); err != nil {
			return fmt.Errorf("export xlsx: rename sheet: %w", err)
		}
	}

	if err := f.SetSheetRow(sheet, "A1", &t.Headers); err != nil {
		return fmt.Errorf("export xlsx: write header: %w", err)
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export xlsx: write row %d: %w", i, err)
		}
	}

	if len(t.Headers) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("export xlsx: header style: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return fmt.Errorf("export xlsx: header style: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export xlsx: write: %w", err)
	}
	return nil
}

// SheetName turns a title into a legal worksheet name: at most 31
// characters and none of : \ / ? * [ ].
func SheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(title))

	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	if name == "" {
		return defaultSheetName
	}
	return name
}
