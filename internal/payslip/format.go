package payslip

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatAmount renders a money value with Indian digit grouping and two
// decimal places, e.g. 123456.5 -> "1,23,456.50". No currency symbol: the
// payslip and email templates add their own.
func FormatAmount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return inr.Sprint(number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
