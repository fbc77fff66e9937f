// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"

	"github.com/imamik/onboard/internal/config"
	"github.com/imamik/onboard/internal/logging"
	"github.com/imamik/onboard/internal/metrics"
	"github.com/imamik/onboard/internal/onboarding"
	"github.com/imamik/onboard/internal/sink"
)

// Factory function variables - can be replaced in tests.
var (
	// loadConfig reads and validates the configuration file.
	loadConfig = config.Load

	newWebhookSink = func(url string, timeout time.Duration) (sink.Sink, error) {
		return sink.NewWebhook(url, timeout)
	}

	newArchiveSink = func(ctx context.Context, cfg sink.ArchiveConfig) (sink.Sink, error) {
		return sink.NewArchive(ctx, cfg)
	}

	newWorkbookSink = func(path string) (sink.Sink, error) {
		return sink.NewWorkbook(path)
	}

	// isTerminal reports whether stdout is an interactive terminal.
	isTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// environment is what every command needs once configuration is loaded.
type environment struct {
	cfg     *config.Config
	log     logr.Logger
	metrics *metrics.Recorder
	fanout  *sink.Fanout
	close   func()
}

// logTarget selects where logs go. File logging keeps the terminal clean
// while the full-screen interface is running.
type logTarget struct {
	toFile bool
	file   string
}

func setup(ctx context.Context, configPath string, target logTarget) (*environment, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logOpts := logging.Options{Level: cfg.Log.Level, Development: cfg.Log.Development}
	var log logr.Logger
	var closeLog func()
	if target.toFile {
		file := target.file
		if file == "" {
			file = cfg.Log.File
		}
		log, closeLog, err = logging.NewFile(file, logOpts)
	} else {
		log, closeLog, err = logging.New(logOpts)
	}
	if err != nil {
		return nil, err
	}

	sinks, err := buildSinks(ctx, cfg)
	if err != nil {
		closeLog()
		return nil, err
	}

	rec := metrics.New()
	fanout := sink.NewFanout(sinks,
		sink.WithMetrics(rec),
		sink.WithLogger(log.WithName("sink")),
	)
	log.V(1).Info("configured sinks", "sinks", fanout.Sinks())

	return &environment{
		cfg:     cfg,
		log:     log,
		metrics: rec,
		fanout:  fanout,
		close:   closeLog,
	}, nil
}

// buildSinks creates the webhook unless disabled, plus the optional
// archive and workbook sinks.
func buildSinks(ctx context.Context, cfg *config.Config) ([]sink.Sink, error) {
	var sinks []sink.Sink

	if !cfg.Webhook.Disabled {
		s, err := newWebhookSink(cfg.Webhook.URL, cfg.Webhook.Timeout)
		if err != nil {
			return nil, fmt.Errorf("webhook sink: %w", err)
		}
		sinks = append(sinks, s)
	}

	if cfg.S3.Enabled() {
		s, err := newArchiveSink(ctx, sink.ArchiveConfig{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			Prefix:    cfg.S3.Prefix,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PathStyle: cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 sink: %w", err)
		}
		sinks = append(sinks, s)
	}

	if cfg.XLSX.Path != "" {
		s, err := newWorkbookSink(cfg.XLSX.Path)
		if err != nil {
			return nil, fmt.Errorf("xlsx sink: %w", err)
		}
		sinks = append(sinks, s)
	}

	return sinks, nil
}

// newWizard builds a wizard delivering through the fan-out and counting
// transitions.
func (e *environment) newWizard(opts ...onboarding.Option) *onboarding.Wizard {
	base := []onboarding.Option{
		onboarding.WithSubmitDelay(e.cfg.Submit.Delay),
		onboarding.WithLogger(e.log.WithName("wizard")),
		onboarding.WithTransitionHook(func(_, _ onboarding.Step, dir onboarding.Direction) {
			e.metrics.Transition(string(dir))
		}),
	}
	return onboarding.NewWizard(e.fanout, append(base, opts...)...)
}
