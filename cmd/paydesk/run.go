package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"paydesk/internal/archive"
	"paydesk/internal/config"
	"paydesk/internal/dispatch"
	"paydesk/internal/importer"
	"paydesk/internal/mailer"
	"paydesk/internal/mapping"
	"paydesk/internal/metrics"
	"paydesk/internal/payslip"
	"paydesk/internal/reconcile"
	"paydesk/internal/state"
	"paydesk/internal/template"
)

type app struct {
	profile config.Profile
	metrics metrics.Backend
	verbose bool
	logger  *log.Logger
}

func (a *app) mappingConfig() mapping.Config {
	cfg := a.profile.Mapping
	if len(cfg.Columns) == 0 {
		cfg.Columns = mapping.DefaultColumns()
	}
	return cfg
}

func (a *app) branding() payslip.Branding {
	return payslip.Branding{
		CompanyName: a.profile.CompanyName,
		Address:     a.profile.Address,
		LogoPath:    a.profile.LogoPath,
		BrandColor:  a.profile.BrandColor,
	}
}

func (a *app) openState(ctx context.Context) (state.Repository, error) {
	cfg := state.Config{Kind: a.profile.Storage.Kind, DSN: a.profile.Storage.DSN}
	if cfg.Kind == "" {
		cfg.Kind = "sqlite"
	}
	if cfg.Kind == "sqlite" && cfg.DSN == "" {
		cfg.DSN = "paydesk.db"
	}

	repo, err := state.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := repo.Init(ctx); err != nil {
		repo.Close()
		return nil, fmt.Errorf("init state store: %w", err)
	}
	return repo, nil
}

func (a *app) transport() (mailer.Transport, error) {
	switch a.profile.Mailer {
	case "endpoint":
		return &mailer.EndpointTransport{URL: a.profile.EndpointURL}, nil
	case "", "smtp":
		return mailer.NewSMTPTransport(mailer.SMTPConfig{
			Host:     a.profile.SMTP.Host,
			Port:     a.profile.SMTP.Port,
			Username: a.profile.SMTP.Username,
			Password: a.profile.SMTP.Password,
			Secure:   a.profile.SMTP.Secure,
		})
	default:
		return nil, fmt.Errorf("unknown mailer kind %q", a.profile.Mailer)
	}
}

func (a *app) dispatchOptions() dispatch.Options {
	d := a.profile.Dispatch
	return dispatch.Options{
		BatchSize:      d.BatchSize,
		MaxAttempts:    d.MaxAttempts,
		Backoff:        time.Duration(d.BackoffMS) * time.Millisecond,
		BatchPause:     time.Duration(d.BatchPauseMS) * time.Millisecond,
		AttemptTimeout: time.Duration(d.AttemptTimeoutMS) * time.Millisecond,
		OnProgress: func(p dispatch.Progress) {
			a.logger.Printf("progress processed=%d total=%d sent=%d failed=%d", p.Processed, p.Total, p.Sent, p.Failed)
		},
		Logger:  a.logger,
		Metrics: a.metrics,
	}
}

// writeTemplate builds a blank import workbook matching the profile's
// column mapping.
func (a *app) writeTemplate(path string) error {
	if err := template.WriteFile(a.mappingConfig(), path); err != nil {
		return err
	}
	a.logger.Printf("template written path=%s", path)
	return nil
}

// importSheet reads a payroll workbook, extracts and reconciles its
// records, and saves the session for later -send or -archive runs.
func (a *app) importSheet(ctx context.Context, path string) error {
	cfg := a.mappingConfig()

	sheet, err := importer.ReadFile(path)
	if err != nil {
		return err
	}

	recs, err := importer.Extract(sheet.Rows, cfg)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	reconcile.Apply(recs)

	period := importer.SheetPeriod(sheet, cfg, importer.DefaultPeriod(time.Now()))

	mismatches := 0
	missingEmail := 0
	for _, r := range recs {
		if r.Mismatch {
			mismatches++
			if a.verbose {
				a.logger.Printf("mismatch serial=%d name=%q declared=%s computed=%s",
					r.Serial, r.Name(), r.NetPay, r.ComputedNet)
			}
		}
		if r.Email() == "" {
			missingEmail++
		}
	}

	repo, err := a.openState(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	snap := &state.Snapshot{
		SavedAt:   time.Now(),
		Period:    period,
		Employees: recs,
	}
	if err := repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	a.logger.Printf("import done file=%s employees=%d period=%q mismatches=%d missing_email=%d",
		path, len(recs), period.String(), mismatches, missingEmail)
	return nil
}

// resetSession clears the saved session.
func (a *app) resetSession(ctx context.Context) error {
	repo, err := a.openState(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.logger.Printf("session cleared")
	return nil
}

// loadSession fetches the saved snapshot and applies its selection.
func (a *app) loadSession(ctx context.Context) (*state.Snapshot, error) {
	repo, err := a.openState(ctx)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	snap, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session (run -import first): %w", err)
	}
	if len(snap.Selection) > 0 {
		picked := snap.Employees[:0:0]
		for _, i := range snap.Selection {
			if i >= 0 && i < len(snap.Employees) {
				picked = append(picked, snap.Employees[i])
			}
		}
		snap.Employees = picked
	}
	return snap, nil
}

// sendPayslips renders and emails a payslip to every employee in the
// saved session.
func (a *app) sendPayslips(ctx context.Context) error {
	snap, err := a.loadSession(ctx)
	if err != nil {
		return err
	}

	transport, err := a.transport()
	if err != nil {
		return err
	}

	d := dispatch.New(payslip.PDFRenderer{}, transport, a.dispatchOptions())
	report, err := d.Run(ctx, snap.Employees, snap.Period, a.branding())

	a.logger.Printf("dispatch done period=%q sent=%d failed=%d", snap.Period.String(), report.Sent, report.Failed)
	for _, f := range report.Failures {
		fmt.Fprintf(os.Stderr, "failed: %s\n", f)
	}
	return err
}

// archivePayslips writes a zip of rendered payslips for the saved session.
func (a *app) archivePayslips(ctx context.Context, path string) error {
	snap, err := a.loadSession(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	start := time.Now()
	if err := archive.Build(ctx, f, snap.Employees, snap.Period, payslip.PDFRenderer{}, a.branding()); err != nil {
		_ = os.Remove(path)
		return err
	}
	a.metrics.ObserveDuration("archive.duration", time.Since(start))

	a.logger.Printf("archive written path=%s employees=%d folder=%s",
		path, len(snap.Employees), archive.FolderName(snap.Period))
	return nil
}
