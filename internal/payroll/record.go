package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Record is one canonical employee row produced by an import.
//
// Values holds the raw cell text keyed by canonical field; Extra holds
// display-only columns keyed by their raw header label (these never enter
// financial computation). The derived financials are filled in by the
// reconciler.
type Record struct {
	Serial int

	Values map[Field]string
	Extra  map[string]string

	GrossPay        decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	ComputedNet     decimal.Decimal
	Mismatch        bool
}

// NewRecord returns an empty record with the given 1-based serial.
func NewRecord(serial int) *Record {
	return &Record{
		Serial: serial,
		Values: make(map[Field]string),
		Extra:  make(map[string]string),
	}
}

// Text returns the raw value for f, trimmed. Missing fields read as "".
func (r *Record) Text(f Field) string {
	return strings.TrimSpace(r.Values[f])
}

// Num returns the numeric value for f. Unparseable or absent cells coerce
// to zero; a row is never rejected for a bad numeric cell.
func (r *Record) Num(f Field) decimal.Decimal {
	s := r.Text(f)
	if s == "" {
		return decimal.Zero
	}
	// Tolerate thousands separators left in by spreadsheet formatting.
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Name returns the employee display name, or "" when unmapped.
func (r *Record) Name() string { return r.Text(FieldName) }

// Email returns the employee email address, or "" when unmapped.
func (r *Record) Email() string { return r.Text(FieldEmail) }

// Identifiable reports whether the record carries at least one of the
// fields that mark a real data row: net pay, name, or employee code.
// Rows failing this are spacer/blank rows and are dropped on import.
func (r *Record) Identifiable() bool {
	return r.Text(FieldNetSalary) != "" || r.Name() != "" || r.Text(FieldEmpCode) != ""
}
