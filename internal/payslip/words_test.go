package payslip

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func TestAmountInWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{name: "thousands", amount: "48000", want: "Forty Eight Thousand Rupees"},
		{name: "zero", amount: "0", want: "Zero Rupees"},
		{name: "single_digit", amount: "7", want: "Seven Rupees"},
		{name: "teens", amount: "15", want: "Fifteen Rupees"},
		{name: "hundreds", amount: "365", want: "Three Hundred Sixty Five Rupees"},
		{name: "lakh", amount: "123456", want: "One Lakh Twenty Three Thousand Four Hundred Fifty Six Rupees"},
		{name: "crore", amount: "10000000", want: "One Crore Rupees"},
		{name: "crore_mixed", amount: "23456789", want: "Two Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine Rupees"},
		{name: "with_paise", amount: "48000.25", want: "Forty Eight Thousand Rupees and Twenty Five Paise"},
		{name: "paise_rounding", amount: "100.999", want: "One Hundred One Rupees"},
		{name: "zero_paise_no_suffix", amount: "500.00", want: "Five Hundred Rupees"},
		{name: "negative_sign_ignored", amount: "-42", want: "Forty Two Rupees"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := AmountInWords(dec(t, tc.amount)); got != tc.want {
				t.Fatalf("AmountInWords(%s)=%q, want %q", tc.amount, got, tc.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{name: "indian_grouping", amount: "123456.5", want: "1,23,456.50"},
		{name: "thousands", amount: "48000", want: "48,000.00"},
		{name: "small", amount: "500", want: "500.00"},
		{name: "zero", amount: "0", want: "0.00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatAmount(dec(t, tc.amount)); got != tc.want {
				t.Fatalf("FormatAmount(%s)=%q, want %q", tc.amount, got, tc.want)
			}
		})
	}
}
