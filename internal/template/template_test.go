package template

import (
	"bytes"
	"testing"

	"paydesk/internal/importer"
	"paydesk/internal/mapping"
	"paydesk/internal/payroll"
)

func TestBuildRejectsBadConfig(t *testing.T) {
	t.Parallel()

	if _, err := Build(mapping.Config{}); err == nil {
		t.Fatalf("Build accepted a mapping with no columns")
	}
	if _, err := Build(mapping.Config{TitleRows: -1, Columns: mapping.DefaultColumns()}); err == nil {
		t.Fatalf("Build accepted negative title_rows")
	}
}

// TestRoundTrip generates the template, then imports it with the same
// mapping config. The example row must come back as one well-formed record:
// the template and the extractor agree on column order by construction.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := mapping.Config{Columns: mapping.DefaultColumns()}

	var buf bytes.Buffer
	if err := Write(cfg, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	sheet, err := importer.ReadSheet(&buf)
	if err != nil {
		t.Fatalf("ReadSheet: %v", err)
	}

	// Header row + example row.
	if len(sheet.Rows) != 2 {
		t.Fatalf("rows=%d, want 2", len(sheet.Rows))
	}
	if sheet.Rows[0][1] != "EMP CODE" {
		t.Fatalf("header[1]=%q, want EMP CODE", sheet.Rows[0][1])
	}

	recs, err := importer.Extract(sheet.Rows, cfg)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("records=%d, want 1", len(recs))
	}

	rec := recs[0]
	if rec.Name() != "John Doe" || rec.Email() != "john@example.com" {
		t.Fatalf("record=%+v", rec.Values)
	}
	if got := rec.Num(payroll.FieldBasic); got.String() != "50000" {
		t.Fatalf("basic=%s, want 50000", got)
	}
	if got := rec.Text(payroll.FieldEmpCode); got != "EMP001" {
		t.Fatalf("emp code=%q", got)
	}
}
