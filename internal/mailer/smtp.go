package mailer

import (
	"bytes"
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"
)

// SMTPConfig holds direct SMTP delivery settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string

	// Secure selects implicit TLS (SMTPS, usually port 465). When false
	// the client negotiates STARTTLS opportunistically on port 587.
	Secure bool
}

// SMTPTransport sends payslip mail directly over SMTP.
//
// The underlying client is created per transport and reused across sends,
// which matches the batch size of the dispatcher: one connection pool
// serves one run.
type SMTPTransport struct {
	cfg SMTPConfig
}

// NewSMTPTransport validates the config and builds a transport.
//
// Errors:
//   - Returns an error when the host is empty.
func NewSMTPTransport(cfg SMTPConfig) (*SMTPTransport, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("mailer: smtp host is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPTransport{cfg: cfg}, nil
}

// Send composes the payslip message and delivers it.
//
// The message carries a text/plain part derived from the HTML body, the
// HTML body itself, and the PDF attachment.
func (t *SMTPTransport) Send(ctx context.Context, d Delivery) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(d.CompanyName+" HR", t.cfg.Username); err != nil {
		return fmt.Errorf("mailer: set sender: %w", err)
	}
	if err := msg.To(d.EmployeeEmail); err != nil {
		return fmt.Errorf("mailer: set recipient %q: %w", d.EmployeeEmail, err)
	}
	msg.Subject(Subject(d))

	htmlBody := BuildHTML(d)
	msg.SetBodyString(mail.TypeTextPlain, TextAlternative(htmlBody))
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)
	msg.AttachReadSeeker(AttachmentName(d), bytes.NewReader(d.Document),
		mail.WithFileContentType(mail.ContentType("application/pdf")))

	opts := []mail.Option{
		mail.WithPort(t.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.cfg.Username),
		mail.WithPassword(t.cfg.Password),
	}
	if t.cfg.Secure {
		opts = append(opts, mail.WithSSLPort(false))
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(t.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("mailer: smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mailer: send to %q: %w", d.EmployeeEmail, err)
	}
	return nil
}

var _ Transport = (*SMTPTransport)(nil)
