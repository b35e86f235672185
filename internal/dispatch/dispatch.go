// Package dispatch sends rendered payslips to every employee in a run,
// batch by batch, with per-delivery retries.
//
// Delivery order inside a batch is concurrent; batches themselves run
// sequentially with a pause between them so a shared SMTP relay is never
// hammered. The failure report preserves sheet order regardless of which
// goroutine finished first.
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"paydesk/internal/mailer"
	"paydesk/internal/metrics"
	"paydesk/internal/payroll"
	"paydesk/internal/payslip"
)

// Logger is the minimal logging surface this package needs.
type Logger interface {
	Printf(format string, v ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Progress is reported after each completed batch.
type Progress struct {
	// Processed counts employees handled so far (sent + failed).
	Processed int
	Total     int
	Sent      int
	Failed    int
}

// Status of one delivery.
type Status string

const (
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)

// Result records the outcome for one employee, in sheet order.
type Result struct {
	Serial   int
	Name     string
	Email    string
	Status   Status
	Reason   string // "Missing Email" or "SMTP Failed"; empty when sent
	Attempts int
}

// Report summarizes a dispatch run.
type Report struct {
	Sent    int
	Failed  int
	Results []Result

	// Failures lists failed employees as "<Name> (<Reason>)", with
	// "Unknown" standing in for a blank name.
	Failures []string
}

// Options tunes a dispatch run. The zero value gets sensible defaults.
type Options struct {
	// BatchSize is the number of concurrent deliveries. Default 5.
	BatchSize int

	// MaxAttempts per delivery. Default 3.
	MaxAttempts int

	// Backoff is the base wait after a failed attempt; attempt n waits
	// n*Backoff. Default 2s.
	Backoff time.Duration

	// BatchPause is the wait between batches. Default 1s.
	BatchPause time.Duration

	// AttemptTimeout bounds each send attempt. Default 30s; 0 disables
	// the per-attempt deadline.
	AttemptTimeout time.Duration

	// OnProgress, when set, is called after each batch completes.
	OnProgress func(Progress)

	Logger  Logger
	Metrics metrics.Backend
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = 5
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.Backoff <= 0 {
		o.Backoff = 2 * time.Second
	}
	if o.BatchPause <= 0 {
		o.BatchPause = time.Second
	}
	if o.AttemptTimeout == 0 {
		o.AttemptTimeout = 30 * time.Second
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
	if o.Metrics == nil {
		o.Metrics = metrics.Nop{}
	}
	return o
}

// Dispatcher renders and emails payslips.
type Dispatcher struct {
	renderer  payslip.Renderer
	transport mailer.Transport
	opts      Options

	// sleep is a test seam; production uses sleepCtx.
	sleep func(context.Context, time.Duration) error
}

// New builds a Dispatcher. Options zero values become defaults.
func New(renderer payslip.Renderer, transport mailer.Transport, opts Options) *Dispatcher {
	return &Dispatcher{
		renderer:  renderer,
		transport: transport,
		opts:      opts.withDefaults(),
		sleep:     sleepCtx,
	}
}

// Run delivers payslips for every record.
//
// Semantics:
//   - Records with a blank email fail immediately with "Missing Email";
//     no render or network attempt is made for them.
//   - Each remaining record is rendered once, then sent with retries.
//   - Any render or send failure is reported as "SMTP Failed".
//   - Run never fails the whole run because individual deliveries failed;
//     the Report carries those. The returned error is non-nil only when
//     ctx is canceled, in which case the Report covers the batches that
//     completed before cancellation.
func (d *Dispatcher) Run(ctx context.Context, recs []*payroll.Record, period payroll.Period, branding payslip.Branding) (Report, error) {
	total := len(recs)
	results := make([]Result, total)

	var sent, failed, processed int
	report := func() Report {
		r := Report{Sent: sent, Failed: failed, Results: results[:processed]}
		for _, res := range results[:processed] {
			if res.Status == StatusFailed {
				name := res.Name
				if name == "" {
					name = "Unknown"
				}
				r.Failures = append(r.Failures, fmt.Sprintf("%s (%s)", name, res.Reason))
			}
		}
		return r
	}

	for start := 0; start < total; start += d.opts.BatchSize {
		if err := ctx.Err(); err != nil {
			return report(), err
		}

		end := start + d.opts.BatchSize
		if end > total {
			end = total
		}
		batch := recs[start:end]

		var wg sync.WaitGroup
		wg.Add(len(batch))
		for i, rec := range batch {
			go func(idx int, rec *payroll.Record) {
				defer wg.Done()
				results[idx] = d.deliver(ctx, rec, period, branding)
			}(start+i, rec)
		}
		wg.Wait()

		for _, res := range results[start:end] {
			switch res.Status {
			case StatusSent:
				sent++
				d.opts.Metrics.IncCounter("payslips.sent", 1)
			case StatusFailed:
				failed++
				d.opts.Metrics.IncCounter("payslips.failed", 1)
			}
		}
		processed = end

		d.opts.Logger.Printf("dispatch batch done batch_end=%d total=%d sent=%d failed=%d", end, total, sent, failed)
		if d.opts.OnProgress != nil {
			d.opts.OnProgress(Progress{Processed: processed, Total: total, Sent: sent, Failed: failed})
		}

		if end < total {
			if err := d.sleep(ctx, d.opts.BatchPause); err != nil {
				return report(), err
			}
		}
	}

	return report(), ctx.Err()
}

// deliver handles one employee: render once, send with retries.
func (d *Dispatcher) deliver(ctx context.Context, rec *payroll.Record, period payroll.Period, branding payslip.Branding) Result {
	res := Result{
		Serial: rec.Serial,
		Name:   rec.Name(),
		Email:  rec.Email(),
		Status: StatusFailed,
	}

	if res.Email == "" {
		res.Reason = "Missing Email"
		return res
	}

	doc, err := d.renderer.Render(rec, period, branding)
	if err != nil {
		d.opts.Logger.Printf("dispatch render failed serial=%d name=%q err=%v", rec.Serial, res.Name, err)
		res.Reason = "SMTP Failed"
		return res
	}

	delivery := mailer.Delivery{
		EmployeeName:  res.Name,
		EmployeeEmail: res.Email,
		Document:      doc,
		Month:         period.Month,
		Year:          period.Year,
		NetSalary:     payslip.FormatAmount(rec.NetPay),
		BrandColor:    branding.BrandColor,
		CompanyName:   branding.CompanyName,
	}

	start := time.Now()
	attempts, err := retry(ctx, d.opts.MaxAttempts, d.opts.Backoff, d.sleep, func(ctx context.Context) error {
		if d.opts.AttemptTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d.opts.AttemptTimeout)
			defer cancel()
		}
		return d.transport.Send(ctx, delivery)
	})
	d.opts.Metrics.ObserveDuration("send.duration", time.Since(start))

	res.Attempts = attempts
	if err != nil {
		d.opts.Logger.Printf("dispatch send failed serial=%d name=%q attempts=%d err=%v", rec.Serial, res.Name, attempts, err)
		res.Reason = "SMTP Failed"
		return res
	}

	res.Status = StatusSent
	return res
}
