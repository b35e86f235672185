// Package datadog implements a Datadog backend for the internal/metrics
// package.
//
// Dispatch runs can take minutes for large sheets, so submitting only once
// at process exit would render as a single spike on a dashboard. The backend
// therefore:
//   - buffers metrics in-memory (fast, lock-protected)
//   - periodically flushes on a ticker (default: once per minute)
//   - flushes one final time on Close()
//
// Concurrency model:
//   - delivery goroutines can call IncCounter/ObserveDuration at any time
//   - Flush snapshots+resets buffers under a mutex, then submits out-of-lock
//   - the flush loop calls Flush() periodically; Close() stops the loop
package datadog

import (
	"context"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"paydesk/internal/metrics"

	dd "github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

// Options controls Datadog backend configuration.
type Options struct {
	// JobName becomes tag "job:<name>" on every metric.
	// If empty, defaults to "paydesk".
	JobName string

	// Tags are extra Datadog tags (e.g. []string{"env:prod"}).
	Tags []string

	// FlushEvery controls how often buffered metrics are submitted.
	// If <= 0, defaults to 60 seconds.
	FlushEvery time.Duration

	// Unexported test seams. Production code never sets them; unit tests
	// use them to avoid real submission and nondeterministic tickers.
	now       func() time.Time
	newTicker func(d time.Duration) *time.Ticker
	submitter metricsSubmitter
}

// metricsSubmitter is the minimal surface needed to submit metrics. The SDK
// exposes a concrete *datadogV2.MetricsApi which cannot be stubbed without
// real HTTP; depending on this interface lets tests inject a fake.
type metricsSubmitter interface {
	SubmitMetrics(ctx context.Context, body datadogV2.MetricPayload, params ...datadogV2.SubmitMetricsOptionalParameters) (datadogV2.IntakePayloadAccepted, *http.Response, error)
}

// Backend implements metrics.Backend for Datadog.
type Backend struct {
	api metricsSubmitter
	ctx context.Context

	flushEvery time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}

	baseTags []string

	// now and newTicker are injected for deterministic tests. Production
	// uses time.Now and time.NewTicker.
	now       func() time.Time
	newTicker func(d time.Duration) *time.Ticker

	mu sync.Mutex

	counters  map[string]float64
	durations map[string][]float64 // name -> samples in seconds
}

func resolveEnvTag() string {
	if v := strings.TrimSpace(os.Getenv("ENV")); v != "" {
		return "env:" + v
	}
	if v := strings.TrimSpace(os.Getenv("DD_ENV")); v != "" {
		return "env:" + v
	}
	return "env:unknown"
}

// NewBackend constructs a Datadog backend using the official client.
//
// When to use:
//   - Configure this backend when you want Datadog metrics for dispatch and
//     archive runs. Suitable for both long runs (periodic flush) and
//     short-lived commands (final flush on Close).
//
// Edge cases:
//   - If opts.FlushEvery <= 0, defaults to 60s.
//   - If opts.JobName is empty, defaults to "paydesk".
//   - Environment tag selection uses ENV then DD_ENV, otherwise env:unknown.
//
// Errors:
//   - Client construction is not expected to fail under normal conditions;
//     network errors surface from Flush().
func NewBackend(parent context.Context, opts Options) (*Backend, error) {
	job := opts.JobName
	if job == "" {
		job = "paydesk"
	}

	flushEvery := opts.FlushEvery
	if flushEvery <= 0 {
		flushEvery = 60 * time.Second
	}

	baseTags := make([]string, 0, 2+len(opts.Tags))
	baseTags = append(baseTags, resolveEnvTag(), "job:"+job)
	baseTags = append(baseTags, opts.Tags...)

	nowFn := opts.now
	if nowFn == nil {
		nowFn = time.Now
	}
	newTicker := opts.newTicker
	if newTicker == nil {
		newTicker = time.NewTicker
	}

	submitter := opts.submitter
	if submitter == nil {
		cfg := dd.NewConfiguration()
		client := dd.NewAPIClient(cfg)
		submitter = datadogV2.NewMetricsApi(client)
	}

	b := &Backend{
		api:        submitter,
		ctx:        dd.NewDefaultContext(parent),
		flushEvery: flushEvery,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),

		baseTags: baseTags,

		now:       nowFn,
		newTicker: newTicker,

		counters:  make(map[string]float64),
		durations: make(map[string][]float64),
	}

	go b.loop()
	return b, nil
}

func (b *Backend) loop() {
	defer close(b.doneCh)

	t := b.newTicker(b.flushEvery)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			_ = b.Flush(b.ctx)
		case <-b.stopCh:
			return
		}
	}
}

// IncCounter implements metrics.Backend.
func (b *Backend) IncCounter(name string, delta float64) {
	if delta <= 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.counters[name] += delta
}

// ObserveDuration implements metrics.Backend.
func (b *Backend) ObserveDuration(name string, d time.Duration) {
	if d < 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.durations[name] = append(b.durations[name], d.Seconds())
}

// snapshot is the buffered metric state used to build one flush payload.
// Flush() must reset buffers under a lock but submit out-of-lock; snapshot
// separates collect+reset from payload building+submission.
type snapshot struct {
	counters  map[string]float64
	durations map[string][]float64
}

func (s snapshot) isEmpty() bool {
	return len(s.counters) == 0 && len(s.durations) == 0
}

// snapshotAndReset grabs current buffered metrics and resets the buffers.
// Must be called with no lock held; takes the lock internally and returns
// detached maps.
func (b *Backend) snapshotAndReset() snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := snapshot{counters: b.counters, durations: b.durations}
	b.counters = make(map[string]float64)
	b.durations = make(map[string][]float64)
	return s
}

// Flush submits buffered metrics to Datadog and resets local buffers.
//
// Errors:
//   - Returns any error from Datadog submission.
//   - Returns nil if there is nothing to submit.
//
// Edge cases:
//   - Safe to call concurrently with IncCounter/ObserveDuration.
//   - Buffers are reset even if submission fails, so a flaky Datadog
//     endpoint never blocks the delivery path.
func (b *Backend) Flush(ctx context.Context) error {
	snap := b.snapshotAndReset()
	if snap.isEmpty() {
		return nil
	}

	series := b.buildSeries(snap, b.now().Unix())
	payload := datadogV2.MetricPayload{Series: series}

	_, _, err := b.api.SubmitMetrics(ctx, payload, *datadogV2.NewSubmitMetricsOptionalParameters())
	return err
}

// Close stops the background flush loop and performs one final Flush.
//
// Errors:
//   - Returns any error from the final submission.
//   - Calling Close twice panics (stopCh is closed twice); this mirrors
//     the usual "close once" semantics for process-lifetime backends.
func (b *Backend) Close(ctx context.Context) error {
	close(b.stopCh)
	<-b.doneCh
	return b.Flush(ctx)
}

// buildSeries constructs Datadog series for a snapshot at a fixed timestamp.
// It is pure (no locks, no network, no clocks), which keeps it unit-testable,
// and it centralizes the naming/tagging contract.
func (b *Backend) buildSeries(s snapshot, nowUnix int64) []datadogV2.MetricSeries {
	series := make([]datadogV2.MetricSeries, 0, len(s.counters)+6*len(s.durations))

	for name, v := range s.counters {
		if v == 0 {
			continue
		}
		series = append(series, datadogV2.MetricSeries{
			Metric: metricName(name),
			Type:   datadogV2.METRICINTAKETYPE_COUNT.Ptr(),
			Points: []datadogV2.MetricPoint{
				{Timestamp: dd.PtrInt64(nowUnix), Value: dd.PtrFloat64(v)},
			},
			Tags: b.baseTags,
		})
	}

	for name, samples := range s.durations {
		if len(samples) == 0 {
			continue
		}
		cp := append([]float64(nil), samples...)
		sort.Float64s(cp)

		prefix := metricName(name)
		series = append(series,
			gaugeSeries(prefix+".p50", percentileNearestRank(cp, 0.50), b.baseTags, nowUnix),
			gaugeSeries(prefix+".p90", percentileNearestRank(cp, 0.90), b.baseTags, nowUnix),
			gaugeSeries(prefix+".p95", percentileNearestRank(cp, 0.95), b.baseTags, nowUnix),
			gaugeSeries(prefix+".p99", percentileNearestRank(cp, 0.99), b.baseTags, nowUnix),
			gaugeSeries(prefix+".max", cp[len(cp)-1], b.baseTags, nowUnix),
			gaugeSeries(prefix+".samples", float64(len(cp)), b.baseTags, nowUnix),
		)
	}

	return series
}

// metricName maps an internal metric name like "payslips.sent" to its
// Datadog name under the paydesk namespace.
func metricName(name string) string {
	if strings.HasPrefix(name, "paydesk.") {
		return name
	}
	return "paydesk." + name
}

func gaugeSeries(metric string, value float64, tags []string, nowUnix int64) datadogV2.MetricSeries {
	return datadogV2.MetricSeries{
		Metric: metric,
		Type:   datadogV2.METRICINTAKETYPE_GAUGE.Ptr(),
		Points: []datadogV2.MetricPoint{
			{Timestamp: dd.PtrInt64(nowUnix), Value: dd.PtrFloat64(value)},
		},
		Tags: tags,
	}
}

func percentileNearestRank(s []float64, p float64) float64 {
	n := len(s)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return s[0]
	}
	if p >= 1 {
		return s[n-1]
	}
	idx := int(p*float64(n-1) + 0.5)
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return s[idx]
}

var _ metrics.Backend = (*Backend)(nil)

// ParseTagsCSV parses comma-separated tags like "env:prod,team:payroll".
func ParseTagsCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
