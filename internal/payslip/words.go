package payslip

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	onesWords = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teenWords = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tensWords = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

func belowThousand(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 10:
		return onesWords[n]
	case n < 20:
		return teenWords[n-10]
	case n < 100:
		w := tensWords[n/10]
		if n%10 != 0 {
			w += " " + onesWords[n%10]
		}
		return w
	default:
		w := onesWords[n/100] + " Hundred"
		if n%100 != 0 {
			w += " " + belowThousand(n%100)
		}
		return w
	}
}

// integerWords spells n in the Indian numbering system (crore/lakh/thousand).
func integerWords(n int64) string {
	if n == 0 {
		return "Zero"
	}

	var b strings.Builder
	if crore := n / 10000000; crore > 0 {
		b.WriteString(belowThousand(crore) + " Crore ")
	}
	if lakh := (n % 10000000) / 100000; lakh > 0 {
		b.WriteString(belowThousand(lakh) + " Lakh ")
	}
	if thousand := (n % 100000) / 1000; thousand > 0 {
		b.WriteString(belowThousand(thousand) + " Thousand ")
	}
	if rem := n % 1000; rem > 0 {
		b.WriteString(belowThousand(rem))
	}
	return strings.TrimSpace(b.String())
}

// AmountInWords spells a currency amount for the payslip words box.
//
//	48000    -> "Forty Eight Thousand Rupees"
//	48000.25 -> "Forty Eight Thousand Rupees and Twenty Five Paise"
//
// Zero paise produce no "and ... Paise" suffix. Negative amounts do not
// occur on payslips; the sign is ignored.
func AmountInWords(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	rupees, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		rupees = 0
	}
	paise, _ := strconv.ParseInt(fracPart, 10, 64)

	out := integerWords(rupees) + " Rupees"
	if paise > 0 {
		out += " and " + integerWords(paise) + " Paise"
	}
	return out
}
