// Package archive renders payslips for a set of employees and packs them
// into a single zip for offline distribution.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"paydesk/internal/payroll"
	"paydesk/internal/payslip"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// FolderName is the top-level directory inside the zip, also the suggested
// base name for the zip file itself.
func FolderName(period payroll.Period) string {
	return fmt.Sprintf("Payslips_%s_%s", period.Month, period.Year)
}

// fileName builds the per-employee entry name. Blank names fall back to
// "Employee"; anything outside [a-zA-Z0-9] becomes an underscore.
func fileName(name string) string {
	if name == "" {
		name = "Employee"
	}
	return "Payslip_" + unsafeChars.ReplaceAllString(name, "_") + ".pdf"
}

// Build renders every record and writes the zip to w.
//
// Semantics:
//   - Rendering is sequential and all-or-nothing: the first render error
//     aborts the archive, since a partial bundle silently missing
//     employees is worse than no bundle.
//   - Employees whose safe names collide get a numeric suffix so no zip
//     entry is overwritten.
//
// Errors:
//   - Wraps render and zip I/O errors with the employee position.
func Build(ctx context.Context, w io.Writer, recs []*payroll.Record, period payroll.Period, renderer payslip.Renderer, branding payslip.Branding) error {
	zw := zip.NewWriter(w)
	folder := FolderName(period)
	used := make(map[string]int, len(recs))

	for i, rec := range recs {
		if err := ctx.Err(); err != nil {
			return err
		}

		doc, err := renderer.Render(rec, period, branding)
		if err != nil {
			return fmt.Errorf("archive: render %d/%d (%q): %w", i+1, len(recs), rec.Name(), err)
		}

		name := fileName(rec.Name())
		if n := used[name]; n > 0 {
			used[name] = n + 1
			name = "Payslip_" + unsafeChars.ReplaceAllString(rec.Name(), "_") + "_" + strconv.Itoa(n+1) + ".pdf"
		} else {
			used[name] = 1
		}

		f, err := zw.Create(folder + "/" + name)
		if err != nil {
			return fmt.Errorf("archive: create entry %q: %w", name, err)
		}
		if _, err := f.Write(doc); err != nil {
			return fmt.Errorf("archive: write entry %q: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("archive: finalize zip: %w", err)
	}
	return nil
}
