package mailer

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Subject builds the notification subject line.
func Subject(d Delivery) string {
	return fmt.Sprintf("Payslip for %s %s - %s", d.Month, d.Year, d.EmployeeName)
}

// AttachmentName builds the PDF filename, with whitespace in the employee
// name collapsed to underscores.
func AttachmentName(d Delivery) string {
	name := regexp.MustCompile(`\s+`).ReplaceAllString(d.EmployeeName, "_")
	return fmt.Sprintf("Payslip_%s_%s_%s.pdf", name, d.Month, d.Year)
}

// BuildHTML renders the notification email body.
//
// Edge cases:
//   - Empty CompanyName falls back to "Your Company Name".
//   - Empty BrandColor falls back to the default slate heading color.
func BuildHTML(d Delivery) string {
	company := d.CompanyName
	if company == "" {
		company = "Your Company Name"
	}
	color := d.BrandColor
	if color == "" {
		color = "#1e293b"
	}

	esc := html.EscapeString
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; border: 1px solid #eee; padding: 20px;">`)
	fmt.Fprintf(&b, `<h2 style="color: %s;">Salary Payslip</h2>`, esc(color))
	fmt.Fprintf(&b, `<p>Dear <b>%s</b>,</p>`, esc(d.EmployeeName))
	fmt.Fprintf(&b, `<p>Please find attached your payslip for the month of <b>%s %s</b>.</p>`, esc(d.Month), esc(d.Year))
	b.WriteString(`<table style="width: 100%; border-collapse: collapse; margin: 20px 0;">`)
	b.WriteString(`<tr style="background: #f9fafb;">`)
	b.WriteString(`<td style="padding: 10px; border: 1px solid #eee;"><b>Net Salary Credited</b></td>`)
	fmt.Fprintf(&b, `<td style="padding: 10px; border: 1px solid #eee;">&#8377; %s</td>`, esc(d.NetSalary))
	b.WriteString(`</tr></table>`)
	b.WriteString(`<p style="font-size: 12px; color: #666;">This is an automated email. Please contact the HR department for any discrepancies.</p>`)
	b.WriteString(`<hr style="border: none; border-top: 1px solid #eee;" />`)
	fmt.Fprintf(&b, `<p style="text-align: center; font-size: 11px; color: #999;">&copy; %s %s</p>`, esc(d.Year), esc(company))
	b.WriteString(`</div>`)
	return b.String()
}

// TextAlternative derives a text/plain part from an HTML body, so clients
// that refuse HTML still show the message.
//
// Edge cases:
//   - Unparseable HTML returns the input unchanged.
//   - Block elements become line breaks; runs of whitespace collapse.
func TextAlternative(htmlBody string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return htmlBody
	}

	var lines []string
	doc.Find("h1, h2, h3, p, td, li").Each(func(_ int, sel *goquery.Selection) {
		if t := normalizeSpace(sel.Text()); t != "" {
			lines = append(lines, t)
		}
	})
	if len(lines) == 0 {
		return normalizeSpace(doc.Text())
	}
	return strings.Join(lines, "\n")
}

var spaceRe = regexp.MustCompile(`\s+`)

func normalizeSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
