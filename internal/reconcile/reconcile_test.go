package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"

	"paydesk/internal/payroll"
)

func rec(values map[payroll.Field]string) *payroll.Record {
	r := payroll.NewRecord(1)
	for f, v := range values {
		r.Values[f] = v
	}
	return r
}

// TestRecordComputesTotals: gross from earning lines, deductions from
// deduction lines, computed net as the difference, declared net verbatim.
func TestRecordComputesTotals(t *testing.T) {
	t.Parallel()

	r := rec(map[payroll.Field]string{
		payroll.FieldBasic:     "30000",
		payroll.FieldHRA:       "12000",
		payroll.FieldConvAlw:   "3000",
		payroll.FieldProvFund:  "1800",
		payroll.FieldPTax:      "200",
		payroll.FieldNetSalary: "43000",
	})
	Record(r)

	if r.GrossPay.String() != "45000" {
		t.Fatalf("gross=%s, want 45000", r.GrossPay)
	}
	if r.TotalDeductions.String() != "2000" {
		t.Fatalf("deductions=%s, want 2000", r.TotalDeductions)
	}
	if r.ComputedNet.String() != "43000" {
		t.Fatalf("computed=%s, want 43000", r.ComputedNet)
	}
	if r.NetPay.String() != "43000" || r.Mismatch {
		t.Fatalf("net=%s mismatch=%v", r.NetPay, r.Mismatch)
	}
}

// TestMismatchToleranceBoundary: a gap of exactly one unit is not a
// mismatch; anything beyond is.
func TestMismatchToleranceBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		declared string
		want     bool
	}{
		{name: "exact", declared: "50000", want: false},
		{name: "gap_of_one", declared: "49999", want: false},
		{name: "gap_over_one", declared: "49998.99", want: true},
		{name: "declared_above_computed", declared: "50001.50", want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := rec(map[payroll.Field]string{
				payroll.FieldBasic:     "50000",
				payroll.FieldNetSalary: tc.declared,
			})
			Record(r)
			if r.Mismatch != tc.want {
				t.Fatalf("mismatch=%v, want %v (computed=%s declared=%s)",
					r.Mismatch, tc.want, r.ComputedNet, r.NetPay)
			}
		})
	}
}

// TestDeclaredTotalsOverride: positive declared gross and total-deduction
// cells replace the computed sums; zero or absent declared totals do not.
func TestDeclaredTotalsOverride(t *testing.T) {
	t.Parallel()

	t.Run("positive_overrides", func(t *testing.T) {
		t.Parallel()
		r := rec(map[payroll.Field]string{
			payroll.FieldBasic:       "30000",
			payroll.FieldGrossSalary: "31000", // payroll system already rounded
			payroll.FieldProvFund:    "1800",
			payroll.FieldTotalDed:    "2000",
			payroll.FieldNetSalary:   "29000",
		})
		Record(r)
		if r.GrossPay.String() != "31000" || r.TotalDeductions.String() != "2000" {
			t.Fatalf("gross=%s deductions=%s, want declared 31000/2000", r.GrossPay, r.TotalDeductions)
		}
		if r.ComputedNet.String() != "29000" || r.Mismatch {
			t.Fatalf("computed=%s mismatch=%v", r.ComputedNet, r.Mismatch)
		}
	})

	t.Run("zero_declared_keeps_computed", func(t *testing.T) {
		t.Parallel()
		r := rec(map[payroll.Field]string{
			payroll.FieldBasic:       "30000",
			payroll.FieldGrossSalary: "0",
			payroll.FieldNetSalary:   "30000",
		})
		Record(r)
		if r.GrossPay.String() != "30000" {
			t.Fatalf("gross=%s, want computed 30000", r.GrossPay)
		}
	})
}

// TestNetAlwaysDeclared: net pay is never derived; a missing declared net
// reads as zero and flags a mismatch against the computed value.
func TestNetAlwaysDeclared(t *testing.T) {
	t.Parallel()

	r := rec(map[payroll.Field]string{payroll.FieldBasic: "30000"})
	Record(r)
	if !r.NetPay.Equal(decimal.Zero) {
		t.Fatalf("net=%s, want declared zero", r.NetPay)
	}
	if !r.Mismatch {
		t.Fatalf("zero declared net against 30000 computed did not flag")
	}
}

// TestApplyIdempotent: reconciling twice yields identical derived values.
func TestApplyIdempotent(t *testing.T) {
	t.Parallel()

	recs := []*payroll.Record{
		rec(map[payroll.Field]string{
			payroll.FieldBasic:     "30000",
			payroll.FieldProvFund:  "1800",
			payroll.FieldNetSalary: "28200",
		}),
		rec(map[payroll.Field]string{
			payroll.FieldBasic:     "10000",
			payroll.FieldNetSalary: "5000",
		}),
	}

	Apply(recs)
	first := make([]payroll.Record, len(recs))
	for i, r := range recs {
		first[i] = *r
	}

	Apply(recs)
	for i, r := range recs {
		if !r.GrossPay.Equal(first[i].GrossPay) ||
			!r.TotalDeductions.Equal(first[i].TotalDeductions) ||
			!r.NetPay.Equal(first[i].NetPay) ||
			!r.ComputedNet.Equal(first[i].ComputedNet) ||
			r.Mismatch != first[i].Mismatch {
			t.Fatalf("second Apply changed record %d: %+v vs %+v", i, r, first[i])
		}
	}
}

// TestAshaScenario mirrors a hand-checked single-employee sheet: basic
// 50000, declared net 48000, no deduction lines. Computed net stays 50000,
// so the record is a mismatch with the declared figure kept.
func TestAshaScenario(t *testing.T) {
	t.Parallel()

	r := rec(map[payroll.Field]string{
		payroll.FieldName:      "Asha",
		payroll.FieldEmail:     "asha@x.com",
		payroll.FieldBasic:     "50000",
		payroll.FieldNetSalary: "48000",
	})
	Record(r)

	if r.GrossPay.String() != "50000" || r.NetPay.String() != "48000" {
		t.Fatalf("gross=%s net=%s", r.GrossPay, r.NetPay)
	}
	if r.ComputedNet.String() != "50000" || !r.Mismatch {
		t.Fatalf("computed=%s mismatch=%v, want 50000/true", r.ComputedNet, r.Mismatch)
	}
}
