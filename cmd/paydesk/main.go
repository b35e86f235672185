package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"paydesk/internal/config"
	"paydesk/internal/metrics"
	"paydesk/internal/metrics/datadog"

	// register all state backends with the repository factory.
	// config specifies which to use but we need to build in support for all of them.
	_ "paydesk/internal/state/all"
)

// main is the entry point for the paydesk binary. It loads the company
// profile, optionally initializes a metrics backend, and runs the requested
// operation: import, template generation, dispatch, or archive.
func main() {
	var (
		profilePath       string
		importPath        string
		templatePath      string
		archivePath       string
		send              bool
		reset             bool
		validate          bool
		metricsBackendFlg string
	)

	flag.StringVar(&profilePath, "profile", "profile.json", "company profile JSON path")
	flag.StringVar(&importPath, "import", "", "import a payroll xlsx and save the session")
	flag.StringVar(&templatePath, "template", "", "write a blank import template xlsx to this path")
	flag.BoolVar(&send, "send", false, "email payslips for the saved session")
	flag.BoolVar(&reset, "reset", false, "clear the saved session")
	flag.StringVar(&archivePath, "archive", "", "write a zip of payslips for the saved session to this path")
	flag.BoolVar(&validate, "validate", false, "validate the profile and exit")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use (datadog, none)")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	profile, err := config.Load(profilePath)
	if err != nil {
		fatalf("%v", err)
	}

	issues := config.Validate(profile)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasError(issues) {
		log.Printf("Profile is invalid: %v", profilePath)
		os.Exit(1)
	}
	if validate {
		log.Printf("Profile is valid: %v", profilePath)
		os.Exit(0)
	}

	// Decide metrics backend: flag -> env -> default (none).
	backend := metrics.Backend(metrics.Nop{})
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "datadog":
		extraTags := datadog.ParseTagsCSV(os.Getenv("METRICS_TAGS"))
		b, err := datadog.NewBackend(context.Background(), datadog.Options{
			JobName: "paydesk",
			Tags:    extraTags,
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
		} else {
			log.Printf("metrics: backend=%v tags=%v", backendName, extraTags)
			backend = b
			defer func() {
				if err := b.Close(context.Background()); err != nil {
					log.Printf("metrics: datadog close/flush error: %v", err)
				}
			}()
		}
	case "", "none":
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}
	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	a := &app{
		profile: profile,
		metrics: backend,
		verbose: *verbose,
		logger:  log.Default(),
	}

	ctx := context.Background()
	start := time.Now()

	switch {
	case templatePath != "":
		err = a.writeTemplate(templatePath)
	case importPath != "":
		err = a.importSheet(ctx, importPath)
	case send:
		err = a.sendPayslips(ctx)
	case archivePath != "":
		err = a.archivePayslips(ctx, archivePath)
	case reset:
		err = a.resetSession(ctx)
	default:
		fatalf("nothing to do: pass -import, -template, -send, -archive, or -reset (or -validate)")
	}
	if err != nil {
		log.Fatalf("%v", err)
	}

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
