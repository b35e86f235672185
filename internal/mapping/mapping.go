// Package mapping defines the user-configurable association between source
// spreadsheet columns and canonical payroll fields.
//
// All extraction is positional: a column participates only through its
// SourceIndex. Header text is display metadata — real-world payroll files
// duplicate and misspell headers too often for name-based lookup.
package mapping

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"paydesk/internal/payroll"
)

// Column is one (source column -> canonical field) association.
//
// SourceIndex is the zero-based position in the source row; nil means the
// column has no source position yet (freshly added in settings).
// Field == "" means the column is ignored for computation; if
// ShowOnDashboard is set its raw value is still surfaced under Header.
type Column struct {
	ID              string        `json:"id"`
	Header          string        `json:"header"`
	SourceIndex     *int          `json:"source_index,omitempty"`
	Field           payroll.Field `json:"field,omitempty"`
	ShowOnDashboard bool          `json:"show_on_dashboard"`
}

// Config aggregates the column mapping with the structural import
// parameters: rows to skip above the header, and optional fixed cell
// locations holding the payroll period.
type Config struct {
	Columns   []Column `json:"columns"`
	TitleRows int      `json:"title_rows"`
	MonthCell string   `json:"month_cell,omitempty"`
	YearCell  string   `json:"year_cell,omitempty"`
}

// Report is the outcome of validating a Config against a required field set.
//
// Missing fields are hard problems: imports will silently zero them.
// Duplicates are warnings only — mapping the same field twice is permitted,
// the first matching entry wins at extraction time.
type Report struct {
	Missing    []string
	Duplicates []string
}

// OK reports whether the configuration satisfies every required field.
func (r Report) OK() bool { return len(r.Missing) == 0 }

// Validate checks cfg against the required canonical fields.
//
// A required field is missing when no column maps to it. Duplicate mappings
// are collected as warnings, never failures. Pure function, no side effects.
func Validate(cfg Config, required []payroll.Field) Report {
	counts := make(map[payroll.Field]int, len(cfg.Columns))
	for _, c := range cfg.Columns {
		if c.Field != "" {
			counts[c.Field]++
		}
	}

	var rep Report
	for _, f := range required {
		if counts[f] == 0 {
			rep.Missing = append(rep.Missing, f.Label())
		}
	}
	for _, f := range payroll.All() {
		if counts[f] > 1 {
			rep.Duplicates = append(rep.Duplicates, f.Label())
		}
	}
	return rep
}

// Validate checks the structural invariants of the configuration itself.
func (c Config) Validate() error {
	if c.TitleRows < 0 {
		return fmt.Errorf("mapping: title_rows must be >= 0, got %d", c.TitleRows)
	}
	for i, col := range c.Columns {
		if col.SourceIndex != nil && *col.SourceIndex < 0 {
			return fmt.Errorf("mapping: column %q (entry %d): source_index must be >= 0", col.Header, i)
		}
	}
	return nil
}

// IndexOf returns the source column index mapped to f, or -1 when f is
// unmapped or its column has no source position. When f is mapped more than
// once the first entry wins.
func (c Config) IndexOf(f payroll.Field) int {
	for _, col := range c.Columns {
		if col.Field == f && col.SourceIndex != nil {
			return *col.SourceIndex
		}
	}
	return -1
}

// Load reads and validates a mapping configuration JSON file.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read mapping file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse mapping json: %w", err)
	}
	if len(cfg.Columns) == 0 {
		return Config{}, fmt.Errorf("mapping file has no columns")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func col(header string, idx int, f payroll.Field, show bool) Column {
	i := idx
	return Column{
		ID:              uuid.NewString(),
		Header:          header,
		SourceIndex:     &i,
		Field:           f,
		ShowOnDashboard: show,
	}
}

// DefaultColumns returns the stock 35-column layout matching the bundled
// template. Companies adjust it in settings; imports always go through
// whatever layout the profile carries.
func DefaultColumns() []Column {
	return []Column{
		col("S.No.", 0, "", false),
		col("EMP CODE", 1, payroll.FieldEmpCode, true),
		col("EMPLOYEE NAME", 2, payroll.FieldName, true),
		col("ACCOUNT NUMBER", 3, payroll.FieldBankAccount, false),
		col("BANK NAME", 4, "", false),
		col("BRANCH NAME", 5, "", false),
		col("IFSC CODE", 6, payroll.FieldIFSC, false),
		col("DESIGNATION", 7, payroll.FieldDesignation, true),
		col("DEPARTMENT", 8, payroll.FieldDepartment, true),
		col("DOJ", 9, payroll.FieldDOJ, true),
		col("LOCATION", 10, payroll.FieldLocation, true),
		col("EMAIL", 11, payroll.FieldEmail, true),
		col("ESI IP NO.", 12, payroll.FieldESICNo, false),
		col("PF NO.", 13, payroll.FieldPFNo, false),
		col("UAN NO.", 14, payroll.FieldUANNo, false),
		col("BASIC", 15, payroll.FieldBasic, false),
		col("DA", 16, payroll.FieldDA, false),
		col("HRA", 17, payroll.FieldHRA, false),
		col("CONV ALW", 18, payroll.FieldConvAlw, false),
		col("MED ALW", 19, payroll.FieldMedAlw, false),
		col("OTHER ALW", 20, payroll.FieldOtherAlw, false),
		col("DIST ALW", 21, payroll.FieldDistAlw, false),
		col("ARREARS", 22, payroll.FieldArrears, false),
		col("PRESENT DAYS", 23, payroll.FieldDaysPaid, false),
		col("EARNED SALARY", 24, payroll.FieldGrossSalary, false),
		col("PROV.FUND", 25, payroll.FieldProvFund, false),
		col("VPF", 26, payroll.FieldVPF, false),
		col("P.TAX", 27, payroll.FieldPTax, false),
		col("ESI", 28, payroll.FieldESI, false),
		col("TDS", 29, payroll.FieldTDS, false),
		col("STAFF LOAN", 30, payroll.FieldStaffLoan, false),
		col("SAL ADV", 31, payroll.FieldSalAdvance, false),
		col("LWF", 32, payroll.FieldLWF, false),
		col("MOBILE/ OTHER DED", 33, payroll.FieldMobileDed, false),
		col("OTHER DEDUCTION", 34, payroll.FieldOtherDed, false),
		col("MEDICAL INSURANCE", 35, payroll.FieldMedicalIns, false),
		col("TTL DED", 36, payroll.FieldTotalDed, false),
		col("NET SALARY", 37, payroll.FieldNetSalary, true),
	}
}

// RequiredFields is the minimal set an import cannot proceed without:
// a way to identify the employee, an address to deliver to, and the
// authoritative net figure.
func RequiredFields() []payroll.Field {
	return []payroll.Field{
		payroll.FieldEmpCode,
		payroll.FieldName,
		payroll.FieldEmail,
		payroll.FieldNetSalary,
	}
}
