package importer

import (
	"errors"
	"testing"
	"time"

	"paydesk/internal/mapping"
	"paydesk/internal/payroll"
)

func idx(i int) *int { return &i }

// minimalConfig maps four columns: name, email, basic, net salary, with no
// title rows (header at row 0, data from row 1).
func minimalConfig() mapping.Config {
	return mapping.Config{Columns: []mapping.Column{
		{ID: "1", Header: "Name", SourceIndex: idx(0), Field: payroll.FieldName},
		{ID: "2", Header: "Email", SourceIndex: idx(1), Field: payroll.FieldEmail},
		{ID: "3", Header: "BASIC", SourceIndex: idx(2), Field: payroll.FieldBasic},
		{ID: "4", Header: "NET SALARY", SourceIndex: idx(3), Field: payroll.FieldNetSalary},
	}}
}

// TestExtractSingleEmployee walks one fully mapped row end to end.
func TestExtractSingleEmployee(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Name", "Email", "BASIC", "NET SALARY"},
		{"Asha", "asha@x.com", "50000", "48000"},
	}

	recs, err := Extract(rows, minimalConfig())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("records=%d, want 1", len(recs))
	}

	rec := recs[0]
	if rec.Serial != 1 || rec.Name() != "Asha" || rec.Email() != "asha@x.com" {
		t.Fatalf("record=%+v", rec)
	}
	if got := rec.Num(payroll.FieldBasic); got.String() != "50000" {
		t.Fatalf("basic=%s", got)
	}
	if got := rec.Num(payroll.FieldNetSalary); got.String() != "48000" {
		t.Fatalf("net=%s", got)
	}
}

func TestExtractEmptyData(t *testing.T) {
	t.Parallel()

	t.Run("header_only", func(t *testing.T) {
		t.Parallel()
		rows := [][]string{{"Name", "Email", "BASIC", "NET SALARY"}}
		if _, err := Extract(rows, minimalConfig()); !errors.Is(err, ErrEmptyData) {
			t.Fatalf("err=%v, want ErrEmptyData", err)
		}
	})

	t.Run("title_rows_consume_everything", func(t *testing.T) {
		t.Parallel()
		cfg := minimalConfig()
		cfg.TitleRows = 3
		rows := [][]string{{"Big Title"}, {}, {"Header"}, {"Data?"}}
		if _, err := Extract(rows, cfg); !errors.Is(err, ErrEmptyData) {
			t.Fatalf("err=%v, want ErrEmptyData", err)
		}
	})
}

// TestExtractDropsSpacersKeepsSerials verifies blank-row filtering and that
// serials count dropped rows (they reflect sheet position, not output
// position).
func TestExtractDropsSpacersKeepsSerials(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Name", "Email", "BASIC", "NET SALARY"},
		{"Asha", "asha@x.com", "50000", "48000"},
		{"", "", "", ""}, // spacer
		{"Ravi", "ravi@x.com", "40000", "38000"},
	}

	recs, err := Extract(rows, minimalConfig())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records=%d, want 2", len(recs))
	}
	if recs[0].Serial != 1 || recs[1].Serial != 3 {
		t.Fatalf("serials=%d,%d, want 1,3", recs[0].Serial, recs[1].Serial)
	}
}

// TestExtractOrderAndLength: every identifiable input row yields exactly one
// record, in input order.
func TestExtractOrderAndLength(t *testing.T) {
	t.Parallel()

	rows := [][]string{{"Name", "Email", "BASIC", "NET SALARY"}}
	names := []string{"E1", "E2", "E3", "E4", "E5"}
	for _, n := range names {
		rows = append(rows, []string{n, n + "@x.com", "100", "90"})
	}

	recs, err := Extract(rows, minimalConfig())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(recs) != len(names) {
		t.Fatalf("records=%d, want %d", len(recs), len(names))
	}
	for i, rec := range recs {
		if rec.Name() != names[i] {
			t.Fatalf("record[%d]=%q, want %q", i, rec.Name(), names[i])
		}
	}
}

// TestExtractDuplicateMappingFirstWins: two columns mapped to net salary,
// the earlier column entry supplies the value.
func TestExtractDuplicateMappingFirstWins(t *testing.T) {
	t.Parallel()

	cfg := minimalConfig()
	cfg.Columns = append(cfg.Columns, mapping.Column{
		ID: "5", Header: "NET COPY", SourceIndex: idx(4), Field: payroll.FieldNetSalary,
	})
	rows := [][]string{
		{"Name", "Email", "BASIC", "NET SALARY", "NET COPY"},
		{"Asha", "asha@x.com", "50000", "48000", "99999"},
	}

	recs, err := Extract(rows, cfg)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := recs[0].Num(payroll.FieldNetSalary); got.String() != "48000" {
		t.Fatalf("net=%s, want first-mapped column value 48000", got)
	}
}

// TestExtractShortRows: rows narrower than the mapping read as empty cells.
func TestExtractShortRows(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Name", "Email", "BASIC", "NET SALARY"},
		{"Asha"},
	}
	recs, err := Extract(rows, minimalConfig())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(recs) != 1 || recs[0].Email() != "" {
		t.Fatalf("records=%+v", recs)
	}
}

// TestExtractDisplayColumns: unmapped dashboard columns surface under their
// raw header in Extra.
func TestExtractDisplayColumns(t *testing.T) {
	t.Parallel()

	cfg := minimalConfig()
	cfg.Columns = append(cfg.Columns, mapping.Column{
		ID: "5", Header: "BANK NAME", SourceIndex: idx(4), ShowOnDashboard: true,
	})
	rows := [][]string{
		{"Name", "Email", "BASIC", "NET SALARY", "BANK NAME"},
		{"Asha", "asha@x.com", "50000", "48000", "HDFC"},
	}

	recs, err := Extract(rows, cfg)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := recs[0].Extra["BANK NAME"]; got != "HDFC" {
		t.Fatalf("Extra=%v", recs[0].Extra)
	}
}

func TestParsePeriod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		month     string
		year      string
		wantMonth string
		wantOK    bool
	}{
		{name: "numeric_month", month: "1", year: "2025", wantMonth: "January", wantOK: true},
		{name: "numeric_month_december", month: "12", year: "2024", wantMonth: "December", wantOK: true},
		{name: "verbatim_name", month: " March ", year: " 2025 ", wantMonth: "March", wantOK: true},
		{name: "out_of_range", month: "13", year: "2025", wantOK: false},
		{name: "zero_month", month: "0", year: "2025", wantOK: false},
		{name: "empty_month", month: "", year: "2025", wantOK: false},
		{name: "empty_year", month: "5", year: "", wantOK: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p, ok := ParsePeriod(tc.month, tc.year)
			if ok != tc.wantOK {
				t.Fatalf("ok=%v, want %v", ok, tc.wantOK)
			}
			if ok && (p.Month != tc.wantMonth || !p.FromSource) {
				t.Fatalf("period=%+v, want month %q from source", p, tc.wantMonth)
			}
		})
	}
}

// TestDefaultPeriod verifies the previous-month fallback, including the
// month-length edge where naive arithmetic lands in the wrong month.
func TestDefaultPeriod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		now       time.Time
		wantMonth string
		wantYear  string
	}{
		{name: "mid_month", now: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), wantMonth: "May", wantYear: "2025"},
		{name: "march_31", now: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), wantMonth: "February", wantYear: "2025"},
		{name: "january_rolls_year", now: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), wantMonth: "December", wantYear: "2024"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := DefaultPeriod(tc.now)
			if p.Month != tc.wantMonth || p.Year != tc.wantYear || p.FromSource {
				t.Fatalf("DefaultPeriod=%+v, want %s %s system-derived", p, tc.wantMonth, tc.wantYear)
			}
		})
	}
}
