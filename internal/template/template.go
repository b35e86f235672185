// Package template generates the downloadable blank payroll workbook: the
// structural inverse of the importer.
//
// It consumes the same mapping.Config the importer reads, so the header
// order a user fills in is by construction the order extraction expects.
package template

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"paydesk/internal/mapping"
)

// SheetName is the single sheet of the generated workbook.
const SheetName = "Template"

// Build produces a workbook with one header row in column entry order and
// one illustrative data row. Display-only columns get an empty placeholder.
func Build(cfg mapping.Config) (*excelize.File, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Columns) == 0 {
		return nil, fmt.Errorf("template: mapping has no columns")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("template: name sheet: %w", err)
	}

	for i, col := range cfg.Columns {
		headerRef, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("template: column %d: %w", i, err)
		}
		if err := f.SetCellValue(SheetName, headerRef, col.Header); err != nil {
			f.Close()
			return nil, fmt.Errorf("template: write header %q: %w", col.Header, err)
		}

		exampleRef, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("template: column %d: %w", i, err)
		}
		if err := f.SetCellValue(SheetName, exampleRef, col.Field.Example()); err != nil {
			f.Close()
			return nil, fmt.Errorf("template: write example for %q: %w", col.Header, err)
		}
	}

	return f, nil
}

// Write builds the template workbook and writes it to w.
func Write(cfg mapping.Config, w io.Writer) error {
	f, err := Build(cfg)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("template: write workbook: %w", err)
	}
	return nil
}

// WriteFile builds the template workbook and saves it at path.
func WriteFile(cfg mapping.Config, path string) error {
	f, err := Build(cfg)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("template: save %s: %w", path, err)
	}
	return nil
}
