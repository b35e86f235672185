package payslip

import (
	"bytes"
	"testing"

	"paydesk/internal/payroll"
	"paydesk/internal/reconcile"
)

func sampleRecord() *payroll.Record {
	rec := payroll.NewRecord(1)
	rec.Values[payroll.FieldEmpCode] = "EMP001"
	rec.Values[payroll.FieldName] = "Asha Verma"
	rec.Values[payroll.FieldEmail] = "asha@example.com"
	rec.Values[payroll.FieldDesignation] = "Developer"
	rec.Values[payroll.FieldBasic] = "30000"
	rec.Values[payroll.FieldHRA] = "12000"
	rec.Values[payroll.FieldProvFund] = "1800"
	rec.Values[payroll.FieldNetSalary] = "40200"
	rec.Values[payroll.FieldDaysPaid] = "30"
	reconcile.Record(rec)
	return rec
}

func TestPDFRendererRender(t *testing.T) {
	t.Parallel()

	doc, err := PDFRenderer{}.Render(sampleRecord(), payroll.Period{Month: "January", Year: "2025"}, Branding{
		CompanyName: "Acme Industries",
		Address:     "42 MG Road, Bengaluru",
		BrandColor:  "#4f46e5",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatalf("output is not a PDF (starts %q)", doc[:min(8, len(doc))])
	}
	if len(doc) < 500 {
		t.Fatalf("suspiciously small PDF: %d bytes", len(doc))
	}
}

// TestPDFRendererSparseRecord: records with almost nothing filled in still
// render; empty amounts are simply absent from the table.
func TestPDFRendererSparseRecord(t *testing.T) {
	t.Parallel()

	rec := payroll.NewRecord(2)
	rec.Values[payroll.FieldName] = "Ravi Kumar"
	reconcile.Record(rec)

	doc, err := PDFRenderer{}.Render(rec, payroll.Period{Month: "February", Year: "2025"}, Branding{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestHexColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		r, g, b int
	}{
		{name: "valid", in: "#4f46e5", r: 0x4f, g: 0x46, b: 0xe5},
		{name: "no_hash", in: "4f46e5", r: 0x4f, g: 0x46, b: 0xe5},
		{name: "malformed_falls_back", in: "blue", r: 79, g: 70, b: 229},
		{name: "empty_falls_back", in: "", r: 79, g: 70, b: 229},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r, g, b := hexColor(tc.in)
			if r != tc.r || g != tc.g || b != tc.b {
				t.Fatalf("hexColor(%q)=(%d,%d,%d), want (%d,%d,%d)", tc.in, r, g, b, tc.r, tc.g, tc.b)
			}
		})
	}
}

func TestPositiveItems(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()
	earnings := positiveItems(rec, payroll.Earnings())
	if len(earnings) != 2 {
		t.Fatalf("earnings=%d items, want 2 (basic, hra)", len(earnings))
	}
	if earnings[0].label != "BASIC" || earnings[1].label != "HRA" {
		t.Fatalf("labels=%q,%q", earnings[0].label, earnings[1].label)
	}

	deductions := positiveItems(rec, payroll.Deductions())
	if len(deductions) != 1 || deductions[0].label != "PROV.FUND" {
		t.Fatalf("deductions=%+v", deductions)
	}
}
