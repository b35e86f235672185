// Package reconcile derives per-employee financial totals and flags
// discrepancies between declared and computed net pay.
//
// Reconciliation never fails: malformed numeric cells coerce to zero and
// surface as mismatches rather than aborting an import. Running it again
// over its own output yields identical results.
package reconcile

import (
	"github.com/shopspring/decimal"

	"paydesk/internal/payroll"
)

// Tolerance absorbs upstream rounding: a computed-vs-declared net gap of up
// to one currency unit is not a mismatch.
var Tolerance = decimal.NewFromInt(1)

// Apply fills in the derived financials for every record, in place.
func Apply(records []*payroll.Record) {
	for _, r := range records {
		Record(r)
	}
}

// Record derives GrossPay, TotalDeductions, NetPay, ComputedNet, and the
// Mismatch flag for one record.
//
// Precedence: a positive declared gross or declared total-deductions value
// overrides the computed sum — upstream payroll systems may have already
// applied rounding or policy adjustments the importer must not recompute.
// Net pay is always the declared value; it is never derived from gross
// minus deductions.
func Record(r *payroll.Record) {
	gross := sum(r, payroll.Earnings())
	if declared := r.Num(payroll.FieldGrossSalary); declared.IsPositive() {
		gross = declared
	}

	deductions := sum(r, payroll.Deductions())
	if declared := r.Num(payroll.FieldTotalDed); declared.IsPositive() {
		deductions = declared
	}

	net := r.Num(payroll.FieldNetSalary)
	computed := gross.Sub(deductions)

	r.GrossPay = gross
	r.TotalDeductions = deductions
	r.NetPay = net
	r.ComputedNet = computed
	r.Mismatch = computed.Sub(net).Abs().GreaterThan(Tolerance)
}

func sum(r *payroll.Record, fields []payroll.Field) decimal.Decimal {
	total := decimal.Zero
	for _, f := range fields {
		total = total.Add(r.Num(f))
	}
	return total
}
