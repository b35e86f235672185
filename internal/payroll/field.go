// Package payroll defines the canonical payroll fields and the employee
// record type the rest of the system operates on.
//
// The field set is closed: every attribute the importer, reconciler,
// renderer, and dispatcher understand is a Field constant. Source files map
// arbitrary column layouts onto these fields; nothing downstream ever looks
// up a record by free-form header text.
package payroll

// Field identifies one canonical payroll attribute.
type Field string

// Identity and contact fields.
const (
	FieldEmpCode     Field = "EMP_CODE"
	FieldName        Field = "NAME"
	FieldEmail       Field = "EMAIL"
	FieldDepartment  Field = "DEPARTMENT"
	FieldDesignation Field = "DESIGNATION"
	FieldLocation    Field = "LOCATION"
	FieldBankAccount Field = "BANK_ACCOUNT"
	FieldIFSC        Field = "IFSC"
	FieldESICNo      Field = "ESIC_NO"
	FieldPFNo        Field = "PF_NO"
	FieldUANNo       Field = "UAN_NO"
	FieldDOJ         Field = "DOJ"
)

// Earning fields. GrossSalary is a declared total, not an earning line.
const (
	FieldBasic       Field = "BASIC"
	FieldDA          Field = "DA"
	FieldHRA         Field = "HRA"
	FieldConvAlw     Field = "CONV_ALW"
	FieldMedAlw      Field = "MED_ALW"
	FieldOtherAlw    Field = "OTHER_ALW"
	FieldDistAlw     Field = "DIST_ALW"
	FieldArrears     Field = "ARREARS"
	FieldGrossSalary Field = "GROSS_SALARY"
)

// Deduction fields. TotalDed is a declared total, not a deduction line.
const (
	FieldProvFund   Field = "PROV_FUND"
	FieldVPF        Field = "VPF"
	FieldPTax       Field = "P_TAX"
	FieldESI        Field = "ESI"
	FieldTDS        Field = "TDS"
	FieldStaffLoan  Field = "STAFF_LOAN"
	FieldSalAdvance Field = "SAL_ADV"
	FieldLWF        Field = "LWF"
	FieldMobileDed  Field = "MOBILE_DED"
	FieldOtherDed   Field = "OTHER_DED"
	FieldMedicalIns Field = "MEDICAL_INS"
	FieldTotalDed   Field = "TTL_DED"
)

// Net pay and attendance fields.
const (
	FieldNetSalary Field = "NET_SALARY"
	FieldDaysPaid  Field = "DAYS_PAID"
	FieldPaidOff   Field = "PD_OFF"
	FieldLWPAbsent Field = "LWP_ABSENT"
)

// Earnings lists the fields summed into gross pay, in payslip order.
func Earnings() []Field {
	return []Field{
		FieldBasic, FieldDA, FieldHRA, FieldConvAlw,
		FieldMedAlw, FieldOtherAlw, FieldDistAlw, FieldArrears,
	}
}

// Deductions lists the fields summed into total deductions, in payslip order.
func Deductions() []Field {
	return []Field{
		FieldProvFund, FieldPTax, FieldESI, FieldTDS,
		FieldVPF, FieldStaffLoan, FieldSalAdvance, FieldLWF,
		FieldMobileDed, FieldOtherDed, FieldMedicalIns,
	}
}

// All lists every canonical field in a stable display order.
func All() []Field {
	return []Field{
		FieldEmpCode, FieldName, FieldEmail, FieldDepartment,
		FieldDesignation, FieldLocation, FieldBankAccount, FieldIFSC,
		FieldESICNo, FieldPFNo, FieldUANNo, FieldDOJ,
		FieldBasic, FieldDA, FieldHRA, FieldConvAlw, FieldMedAlw,
		FieldOtherAlw, FieldDistAlw, FieldArrears, FieldGrossSalary,
		FieldProvFund, FieldVPF, FieldPTax, FieldESI, FieldTDS,
		FieldStaffLoan, FieldSalAdvance, FieldLWF, FieldMobileDed,
		FieldOtherDed, FieldMedicalIns, FieldTotalDed, FieldNetSalary,
		FieldDaysPaid, FieldPaidOff, FieldLWPAbsent,
	}
}

var labels = map[Field]string{
	FieldEmpCode:     "Employee Code",
	FieldName:        "Employee Name",
	FieldEmail:       "Email",
	FieldDepartment:  "Department",
	FieldDesignation: "Designation",
	FieldLocation:    "Location",
	FieldBankAccount: "Bank Account Number",
	FieldIFSC:        "IFSC Code",
	FieldESICNo:      "ESIC Number",
	FieldPFNo:        "PF Number",
	FieldUANNo:       "UAN Number",
	FieldDOJ:         "Joining Date",
	FieldBasic:       "Basic Salary",
	FieldDA:          "Dearness Allowance (D.A.)",
	FieldHRA:         "HRA",
	FieldConvAlw:     "Conveyance Allowance",
	FieldMedAlw:      "Medical Allowance",
	FieldOtherAlw:    "Other Allowance",
	FieldDistAlw:     "Distance Allowance",
	FieldArrears:     "Arrears",
	FieldGrossSalary: "Earned Salary (Gross)",
	FieldProvFund:    "Provident Fund",
	FieldVPF:         "Voluntary PF (VPF)",
	FieldPTax:        "Professional Tax",
	FieldESI:         "ESI",
	FieldTDS:         "TDS/Income Tax",
	FieldStaffLoan:   "Staff Loan",
	FieldSalAdvance:  "Salary Advance",
	FieldLWF:         "Labour Welfare Fund (LWF)",
	FieldMobileDed:   "Mobile/Other Deduction",
	FieldOtherDed:    "Other Deduction",
	FieldMedicalIns:  "Medical Insurance",
	FieldTotalDed:    "Total Deductions",
	FieldNetSalary:   "Net Salary",
	FieldDaysPaid:    "Days Paid",
	FieldPaidOff:     "Paid Offs",
	FieldLWPAbsent:   "LWP/Absent",
}

// Label returns the human-readable name for f, or the raw field value for
// unknown fields.
func (f Field) Label() string {
	if l, ok := labels[f]; ok {
		return l
	}
	return string(f)
}

// Known reports whether f is one of the canonical fields.
func (f Field) Known() bool {
	_, ok := labels[f]
	return ok
}

// exampleValues backs the template generator: one illustrative value per
// canonical field. Unknown/custom fields get an empty placeholder.
var exampleValues = map[Field]any{
	FieldEmpCode:     "EMP001",
	FieldName:        "John Doe",
	FieldEmail:       "john@example.com",
	FieldDepartment:  "IT",
	FieldDesignation: "Developer",
	FieldLocation:    "Headquarters",
	FieldBankAccount: "1234567890",
	FieldIFSC:        "BANK000123",
	FieldESICNo:      "ESIC001",
	FieldPFNo:        "PF001",
	FieldUANNo:       "100000000000",
	FieldDOJ:         "12/01/2026",
	FieldBasic:       50000,
	FieldDA:          2000,
	FieldHRA:         20000,
	FieldConvAlw:     5000,
	FieldMedAlw:      2000,
	FieldOtherAlw:    3000,
	FieldDistAlw:     1500,
	FieldArrears:     500,
	FieldProvFund:    1800,
	FieldPTax:        200,
	FieldESI:         500,
	FieldTDS:         1000,
	FieldDaysPaid:    30,
	FieldPaidOff:     0,
	FieldLWPAbsent:   0,
}

// Example returns an illustrative cell value for f, or "" when none exists.
func (f Field) Example() any {
	if v, ok := exampleValues[f]; ok {
		return v
	}
	return ""
}
