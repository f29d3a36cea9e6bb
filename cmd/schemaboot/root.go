package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"schemaboot/internal/config"
	"schemaboot/internal/logging"
	"schemaboot/internal/metrics"
	"schemaboot/internal/metrics/datadog"
	"schemaboot/internal/metrics/prompush"
	"schemaboot/internal/schema"
	"schemaboot/internal/storage"
	_ "schemaboot/internal/storage/all"
)

// app is shared by the subcommands; PersistentPreRunE fills it.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger

	closeLog func() error
	metrics  metrics.Backend
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "schemaboot",
		Short: "Create missing tables for an entity catalog",
		Long: `schemaboot reads entity definitions and creates every table that does
not exist yet, in one transaction committed once. Existing tables are
left untouched; nothing is ever migrated or dropped.

Configuration comes from --config, SCHEMABOOT_* environment variables
(and a .env file), and the flags below, in increasing precedence.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "path to config file (YAML, JSON or TOML)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")
	pf.String("storage-kind", "", "storage backend ("+strings.Join(storage.Kinds(), ", ")+")")
	pf.String("dsn", "", "backend connection string")
	pf.String("catalog", "", "path to the entity catalog (.json or .toml)")
	pf.Duration("timeout", 0, "overall run timeout, e.g. 30s (0 disables it)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.init(cmd)
	}

	root.AddCommand(newBootstrapCmd(a))
	root.AddCommand(newPlanCmd(a))
	root.AddCommand(newValidateCmd(a))

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	logger, closeLog, err := logging.Setup(logging.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		File:      cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
		MaxFiles:  cfg.Log.MaxFiles,
		Writer:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	a.logger = logger
	a.closeLog = closeLog

	if err := a.initMetrics(); err != nil {
		return fmt.Errorf("setting up metrics: %w", err)
	}
	return nil
}

func (a *app) initMetrics() error {
	m := a.cfg.Metrics
	switch m.Backend {
	case "pushgateway":
		b, err := prompush.NewBackend(m.Job, m.PushgatewayURL)
		if err != nil {
			return err
		}
		a.metrics = b
	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{
			Addr:       m.DatadogAddr,
			GlobalTags: []string{"job:" + m.Job},
		})
		if err != nil {
			return err
		}
		a.metrics = b
	default:
		return nil
	}
	metrics.SetBackend(a.metrics)
	a.logger.Debug("metrics enabled", "backend", m.Backend)
	return nil
}

func (a *app) shutdown() {
	if a.metrics != nil {
		if err := metrics.Flush(); err != nil {
			a.logger.Warn("metrics flush failed", "err", err)
		}
		a.metrics = nil
	}
	if a.closeLog != nil {
		if err := a.closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
		}
		a.closeLog = nil
	}
}

// requireConfig reports config issues. skip drops issues a command does not
// care about; warnings are only logged.
func (a *app) requireConfig(skip func(config.Issue) bool) error {
	issues := a.cfg.Validate()
	for _, iss := range issues {
		if iss.Severity == config.SeverityWarning {
			a.logger.Warn("config", "path", iss.Path, "msg", iss.Message)
		}
	}
	if err := config.Err(issues, skip); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (a *app) loadCatalog() (*schema.Catalog, error) {
	cat, err := schema.LoadFile(a.cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	a.logger.Debug("catalog loaded", "path", a.cfg.Catalog.Path, "entities", cat.Len())
	return cat, nil
}

// runContext applies the configured timeout on top of ctx.
func (a *app) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, a.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

// run executes one command line. Metrics are flushed and the log file is
// closed whether or not the command succeeds.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	defer a.shutdown()
	return root.ExecuteContext(ctx)
}

// Execute is the entry point called by main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(exitCode(err))
	}
}
