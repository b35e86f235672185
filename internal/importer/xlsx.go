package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"paydesk/internal/mapping"
	"paydesk/internal/payroll"
)

// Sheet is the first worksheet of an imported workbook, read in positional
// mode: a rectangle of raw cell strings plus named-cell access for the
// period metadata cells.
type Sheet struct {
	Rows  [][]string
	cells map[string]string
}

// Cell returns the raw value at a spreadsheet reference like "B2", or ""
// when the cell is absent or empty.
func (s *Sheet) Cell(ref string) string { return s.cells[ref] }

// ReadSheet reads the first sheet of an xlsx workbook from r.
//
// Raw cell values are used throughout (no number formatting applied), so
// numeric cells round-trip through strconv/decimal parsing and date cells
// surface as their serial values.
func ReadSheet(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return firstSheet(f)
}

// ReadFile reads the first sheet of the xlsx workbook at path.
func ReadFile(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	return firstSheet(f)
}

func firstSheet(f *excelize.File) (*Sheet, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}

	s := &Sheet{Rows: rows, cells: make(map[string]string)}
	for ri, row := range rows {
		for ci, v := range row {
			if v == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			if err != nil {
				continue
			}
			s.cells[ref] = v
		}
	}
	return s, nil
}

// SheetPeriod resolves the payroll period for an imported sheet.
//
// When both period cells are configured and populated, the period comes from
// the file. Otherwise fallback is used (callers pass the previous calendar
// month) and the period stays marked system-derived.
func SheetPeriod(s *Sheet, cfg mapping.Config, fallback payroll.Period) payroll.Period {
	if cfg.MonthCell != "" && cfg.YearCell != "" {
		if p, ok := ParsePeriod(s.Cell(cfg.MonthCell), s.Cell(cfg.YearCell)); ok {
			return p
		}
	}
	return fallback
}
