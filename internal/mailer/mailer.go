// Package mailer delivers one rendered payslip to one employee.
//
// The dispatcher depends only on Transport; EndpointTransport posts to an
// HTTP relay that owns the SMTP credentials, SMTPTransport speaks SMTP
// directly. Both send the same message content (see body.go).
package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Delivery is everything needed to send one payslip email.
type Delivery struct {
	EmployeeName  string
	EmployeeEmail string

	// Document is the rendered payslip PDF.
	Document []byte

	Month string
	Year  string

	// NetSalary is pre-formatted for display (Indian digit grouping).
	NetSalary string

	BrandColor  string
	CompanyName string
}

// Transport sends one delivery. Implementations must be safe for
// concurrent use: the dispatcher sends a batch of deliveries in parallel.
type Transport interface {
	Send(ctx context.Context, d Delivery) error
}

// endpointRequest is the JSON body EndpointTransport posts. Field names are
// the relay's wire contract.
type endpointRequest struct {
	EmployeeName  string `json:"employeeName"`
	EmployeeEmail string `json:"employeeEmail"`
	PDFBase64     string `json:"pdfBase64"`
	Month         string `json:"month"`
	Year          string `json:"year"`
	NetSalary     string `json:"netSalary"`
	BrandColor    string `json:"brandColor"`
	CompanyName   string `json:"companyName"`
}

type endpointError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// EndpointTransport posts deliveries as JSON to an HTTP mail relay.
type EndpointTransport struct {
	// URL is the relay endpoint, e.g. "https://host/api/send-email".
	URL string

	// Client defaults to an http.Client with a 30s timeout.
	Client *http.Client
}

func (t *EndpointTransport) client() *http.Client {
	if t.Client != nil {
		return t.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// Send posts the delivery and treats any non-2xx status as an error.
//
// Errors:
//   - Wraps request construction, network, and status errors.
//   - A relay error body ({"error": ..., "details": ...}) is folded into
//     the returned error when present.
func (t *EndpointTransport) Send(ctx context.Context, d Delivery) error {
	body, err := json.Marshal(endpointRequest{
		EmployeeName:  d.EmployeeName,
		EmployeeEmail: d.EmployeeEmail,
		PDFBase64:     base64.StdEncoding.EncodeToString(d.Document),
		Month:         d.Month,
		Year:          d.Year,
		NetSalary:     d.NetSalary,
		BrandColor:    d.BrandColor,
		CompanyName:   d.CompanyName,
	})
	if err != nil {
		return fmt.Errorf("mailer: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mailer: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client().Do(req)
	if err != nil {
		return fmt.Errorf("mailer: post %s: %w", t.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Best-effort decode of the relay's error body.
	var ee endpointError
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(raw, &ee) == nil && ee.Error != "" {
		if ee.Details != "" {
			return fmt.Errorf("mailer: relay status %d: %s: %s", resp.StatusCode, ee.Error, ee.Details)
		}
		return fmt.Errorf("mailer: relay status %d: %s", resp.StatusCode, ee.Error)
	}
	return fmt.Errorf("mailer: relay status %d", resp.StatusCode)
}

var _ Transport = (*EndpointTransport)(nil)
