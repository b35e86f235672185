// Package config loads and validates the company profile: branding, mail
// delivery settings, the column mapping, and state storage selection.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"paydesk/internal/mapping"
)

// Severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one validation finding. Path points at the offending field
// using dotted JSON notation, e.g. "smtp.host".
type Issue struct {
	Severity Severity
	Path     string
	Message  string
}

// SMTP holds direct-delivery settings.
type SMTP struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Secure   bool   `json:"secure"`
}

// Storage selects the state backend.
type Storage struct {
	// Kind: "sqlite" (default), "postgres", or "sqlserver".
	Kind string `json:"kind"`
	DSN  string `json:"dsn"`
}

// Dispatch overrides delivery tuning. Zero values keep the defaults.
type Dispatch struct {
	BatchSize        int `json:"batch_size"`
	MaxAttempts      int `json:"max_attempts"`
	BackoffMS        int `json:"backoff_ms"`
	BatchPauseMS     int `json:"batch_pause_ms"`
	AttemptTimeoutMS int `json:"attempt_timeout_ms"`
}

// Profile is the company configuration file.
type Profile struct {
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	LogoPath    string `json:"logo_path"`
	BrandColor  string `json:"brand_color"` // "#rrggbb"
	SenderName  string `json:"sender_name"`

	// Mailer: "smtp" delivers directly, "endpoint" posts to EndpointURL.
	Mailer      string `json:"mailer"`
	SMTP        SMTP   `json:"smtp"`
	EndpointURL string `json:"endpoint_url"`

	Mapping  mapping.Config `json:"mapping"`
	Storage  Storage        `json:"storage"`
	Dispatch Dispatch       `json:"dispatch"`
}

// Load reads a profile from a JSON file.
//
// Errors:
//   - Wraps open and decode errors with the path.
func Load(path string) (Profile, error) {
	var p Profile
	f, err := os.Open(path)
	if err != nil {
		return p, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return p, nil
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate reports every problem with the profile rather than stopping at
// the first, so an operator can fix a config file in one pass.
//
// Severity semantics:
//   - error: the profile cannot be used for the operation it configures.
//   - warning: the profile works but something looks off.
func Validate(p Profile) []Issue {
	var issues []Issue
	errf := func(path, format string, v ...any) {
		issues = append(issues, Issue{Severity: SeverityError, Path: path, Message: fmt.Sprintf(format, v...)})
	}
	warnf := func(path, format string, v ...any) {
		issues = append(issues, Issue{Severity: SeverityWarning, Path: path, Message: fmt.Sprintf(format, v...)})
	}

	if strings.TrimSpace(p.CompanyName) == "" {
		warnf("company_name", "empty; payslips and mail will show a placeholder name")
	}
	if p.BrandColor != "" && !hexColorRe.MatchString(p.BrandColor) {
		warnf("brand_color", "%q is not #rrggbb; the default color will be used", p.BrandColor)
	}
	if p.LogoPath != "" {
		if _, err := os.Stat(p.LogoPath); err != nil {
			warnf("logo_path", "cannot read %q; payslips will omit the logo", p.LogoPath)
		}
	}

	switch p.Mailer {
	case "", "smtp":
		if p.SMTP.Host == "" {
			errf("smtp.host", "required for smtp delivery")
		}
		if p.SMTP.Port < 0 || p.SMTP.Port > 65535 {
			errf("smtp.port", "%d is out of range", p.SMTP.Port)
		}
		if p.SMTP.Username == "" {
			warnf("smtp.username", "empty; most relays reject unauthenticated senders")
		}
	case "endpoint":
		if p.EndpointURL == "" {
			errf("endpoint_url", "required for endpoint delivery")
		} else if u, err := url.Parse(p.EndpointURL); err != nil || u.Scheme == "" || u.Host == "" {
			errf("endpoint_url", "%q is not an absolute URL", p.EndpointURL)
		}
	default:
		errf("mailer", "unknown kind %q (want smtp or endpoint)", p.Mailer)
	}

	if err := p.Mapping.Validate(); err != nil {
		errf("mapping", "%v", err)
	}
	if len(p.Mapping.Columns) > 0 {
		report := mapping.Validate(p.Mapping, mapping.RequiredFields())
		for _, f := range report.Missing {
			errf("mapping.columns", "required field %q is not mapped", f)
		}
		for _, f := range report.Duplicates {
			warnf("mapping.columns", "field %q mapped more than once; the first mapping wins", f)
		}
	}

	switch p.Storage.Kind {
	case "", "sqlite", "postgres", "sqlserver":
		if (p.Storage.Kind == "postgres" || p.Storage.Kind == "sqlserver") && p.Storage.DSN == "" {
			errf("storage.dsn", "required for %s", p.Storage.Kind)
		}
	default:
		errf("storage.kind", "unknown kind %q", p.Storage.Kind)
	}

	d := p.Dispatch
	for _, c := range []struct {
		path string
		v    int
	}{
		{"dispatch.batch_size", d.BatchSize},
		{"dispatch.max_attempts", d.MaxAttempts},
		{"dispatch.backoff_ms", d.BackoffMS},
		{"dispatch.batch_pause_ms", d.BatchPauseMS},
		{"dispatch.attempt_timeout_ms", d.AttemptTimeoutMS},
	} {
		if c.v < 0 {
			errf(c.path, "must not be negative")
		}
	}

	return issues
}

// HasError reports whether any issue has error severity.
func HasError(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}
