// Package payslip renders one canonical employee record into a payslip
// document.
//
// The rest of the system treats rendering as an opaque capability behind
// the Renderer interface; PDFRenderer is the default implementation.
package payslip

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"paydesk/internal/payroll"
)

// Branding carries the company presentation settings a payslip needs.
type Branding struct {
	CompanyName string
	Address     string
	LogoPath    string
	BrandColor  string // "#rrggbb"
}

// Renderer turns one employee record plus period and branding into a
// document artifact.
type Renderer interface {
	Render(rec *payroll.Record, period payroll.Period, b Branding) ([]byte, error)
}

// PDFRenderer produces an A4 payslip PDF.
type PDFRenderer struct{}

type lineItem struct {
	label  string
	amount decimal.Decimal
}

// shortLabels override the canonical labels where the payslip table uses a
// compact form.
var shortLabels = map[payroll.Field]string{
	payroll.FieldBasic:      "BASIC",
	payroll.FieldDA:         "D A",
	payroll.FieldHRA:        "HRA",
	payroll.FieldConvAlw:    "CONV ALW",
	payroll.FieldMedAlw:     "MED ALW",
	payroll.FieldOtherAlw:   "OTHER ALW",
	payroll.FieldDistAlw:    "DIST ALW",
	payroll.FieldArrears:    "ARREARS",
	payroll.FieldProvFund:   "PROV.FUND",
	payroll.FieldPTax:       "P.Tax",
	payroll.FieldESI:        "ESI",
	payroll.FieldTDS:        "TDS",
	payroll.FieldVPF:        "VPF",
	payroll.FieldStaffLoan:  "Staff Loan",
	payroll.FieldSalAdvance: "Salary Advance",
	payroll.FieldLWF:        "LWF",
	payroll.FieldMobileDed:  "Mobile/Other",
	payroll.FieldOtherDed:   "Other Ded.",
	payroll.FieldMedicalIns: "Med. Insurance",
}

// positiveItems collects the fields with amounts > 0, in payslip order.
// Zero and unparseable values are omitted from the table entirely.
func positiveItems(rec *payroll.Record, fields []payroll.Field) []lineItem {
	items := make([]lineItem, 0, len(fields))
	for _, f := range fields {
		if v := rec.Num(f); v.IsPositive() {
			items = append(items, lineItem{label: shortLabels[f], amount: v})
		}
	}
	return items
}

// hexColor parses "#rrggbb"; malformed input falls back to the default
// indigo used before a brand color is configured.
func hexColor(s string) (r, g, b int) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 6 {
		if v, err := strconv.ParseUint(s, 16, 32); err == nil {
			return int(v >> 16), int(v >> 8 & 0xff), int(v & 0xff)
		}
	}
	return 79, 70, 229
}

// Render lays out the payslip: company header, employee grid, attendance
// strip, earnings/deductions table with totals, and the amount-in-words box.
func (PDFRenderer) Render(rec *payroll.Record, period payroll.Period, b Branding) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	const margin = 15.0
	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 2*margin

	// Company header. The logo, when present, sits left of the name block.
	textX := margin
	if b.LogoPath != "" {
		pdf.ImageOptions(b.LogoPath, margin, 15, 40, 25, false,
			fpdf.ImageOptions{ReadDpi: true}, 0, "")
		textX = margin + 45
	}

	br, bg, bb := hexColor(b.BrandColor)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(br, bg, bb)
	pdf.Text(textX, 26, strings.ToUpper(b.CompanyName))

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(70, 70, 70)
	pdf.Text(textX, 31, b.Address)

	// Employee details grid: three label/value column pairs.
	y := 45.0
	grid := [][2]string{
		{"PaySlip", strconv.Itoa(rec.Serial)},
		{"Payslip for the month", period.Month + " - " + period.Year},
		{"Branch", rec.Text(payroll.FieldLocation)},
		{"Emp Code", rec.Text(payroll.FieldEmpCode)},
		{"Employee Name", rec.Name()},
		{"AC No.", rec.Text(payroll.FieldBankAccount)},
		{"Department", rec.Text(payroll.FieldDepartment)},
		{"Designation", rec.Text(payroll.FieldDesignation)},
		{"", ""},
		{"ESIC No", rec.Text(payroll.FieldESICNo)},
		{"PF No", rec.Text(payroll.FieldPFNo)},
		{"DOJ", rec.Text(payroll.FieldDOJ)},
	}
	cellW := usable / 3
	for i, kv := range grid {
		colIdx := i % 3
		x := margin + float64(colIdx)*cellW
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetTextColor(70, 70, 70)
		pdf.Text(x, y, kv[0])
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(40, 40, 40)
		pdf.Text(x+32, y, kv[1])
		if colIdx == 2 {
			y += 6
		}
	}

	// Separator and attendance strip.
	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(margin, y, pageWidth-margin, y)
	y += 5

	attendance := [][2]string{
		{"Days Paid", orDefault(rec.Text(payroll.FieldDaysPaid), "0.00")},
		{"Pd.Off", orDefault(rec.Text(payroll.FieldPaidOff), "0.00")},
		{"LWP/Absent", orDefault(rec.Text(payroll.FieldLWPAbsent), "0.00")},
	}
	x := margin
	for _, kv := range attendance {
		pdf.SetFont("Helvetica", "B", 7)
		pdf.SetTextColor(60, 60, 60)
		pdf.Text(x, y, kv[0])
		pdf.SetFont("Helvetica", "", 7)
		pdf.Text(x+22, y, kv[1])
		x += 60
	}
	y += 6

	// Earnings / deductions table.
	earnings := positiveItems(rec, payroll.Earnings())
	deductions := positiveItems(rec, payroll.Deductions())

	colW := [4]float64{usable * 0.28, usable * 0.22, usable * 0.28, usable * 0.22}
	pdf.SetY(y)
	pdf.SetX(margin)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(colW[0], 6, "Earnings", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colW[1], 6, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colW[2], 6, "Deductions & Recoveries", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colW[3], 6, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(40, 40, 40)
	rows := len(earnings)
	if len(deductions) > rows {
		rows = len(deductions)
	}
	for i := 0; i < rows; i++ {
		var e, d lineItem
		var eAmt, dAmt string
		if i < len(earnings) {
			e = earnings[i]
			eAmt = FormatAmount(e.amount)
		}
		if i < len(deductions) {
			d = deductions[i]
			dAmt = FormatAmount(d.amount)
		}
		pdf.SetX(margin)
		pdf.CellFormat(colW[0], 5, e.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[1], 5, eAmt, "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[2], 5, d.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], 5, dAmt, "1", 1, "R", false, 0, "")
	}

	// Totals come from the reconciler, which already applied any declared
	// gross/deduction overrides from the source file.
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetX(margin)
	pdf.CellFormat(colW[0], 6, "Amount Total :", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colW[1], 6, FormatAmount(rec.GrossPay), "1", 0, "R", false, 0, "")
	pdf.CellFormat(colW[2], 6, "Amount Total :", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colW[3], 6, FormatAmount(rec.TotalDeductions), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetX(margin)
	pdf.CellFormat(colW[0]+colW[1], 7, "", "1", 0, "L", false, 0, "")
	pdf.CellFormat(colW[2], 7, "Net Pay :", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colW[3], 7, FormatAmount(rec.NetPay), "1", 1, "R", false, 0, "")

	// Amount in words.
	y = pdf.GetY() + 4
	pdf.Rect(margin, y, usable, 7, "D")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(margin+2, y+5, "Net Pay : "+AmountInWords(rec.NetPay))

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render payslip for %q: %w", rec.Name(), err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip for %q: %w", rec.Name(), err)
	}
	return buf.Bytes(), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
