package config

// This file adds a lightweight validator for Config values. It reports every
// problem at once so the CLI can print them together.

import (
	"errors"
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is the config key, e.g.
// "storage.dsn".
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

var metricsBackends = map[string]struct{}{
	"":            {},
	"none":        {},
	"pushgateway": {},
	"datadog":     {},
}

// Validate checks the keys a bootstrap run needs. Commands that never connect
// (plan, validate) only need catalog.path and storage.kind; they filter the
// storage.dsn issue via NeedsConnection.
func (c *Config) Validate() []Issue {
	var issues []Issue

	if strings.TrimSpace(c.Storage.Kind) == "" {
		issues = append(issues, Issue{SeverityError, "storage.kind", "storage.kind must be set (postgres, sqlite, mssql, mysql)"})
	}
	if strings.TrimSpace(c.Storage.DSN) == "" {
		issues = append(issues, Issue{SeverityError, "storage.dsn", "storage.dsn must be set"})
	}
	if strings.TrimSpace(c.Catalog.Path) == "" {
		issues = append(issues, Issue{SeverityError, "catalog.path", "catalog.path must point at an entity definitions file"})
	}
	if c.Timeout < 0 {
		issues = append(issues, Issue{SeverityError, "timeout", "timeout must not be negative"})
	}

	if _, ok := metricsBackends[c.Metrics.Backend]; !ok {
		issues = append(issues, Issue{SeverityError, "metrics.backend", fmt.Sprintf("unknown metrics backend %q (none, pushgateway, datadog)", c.Metrics.Backend)})
	}
	if c.Metrics.Backend == "pushgateway" && strings.TrimSpace(c.Metrics.PushgatewayURL) == "" {
		issues = append(issues, Issue{SeverityError, "metrics.pushgateway_url", "metrics.pushgateway_url is required for the pushgateway backend"})
	}
	if c.Timeout == 0 {
		issues = append(issues, Issue{SeverityWarning, "timeout", "no timeout; a hung backend blocks the run indefinitely"})
	}

	return issues
}

// NeedsConnection reports whether an issue only matters to commands that
// open the backend.
func (i Issue) NeedsConnection() bool {
	return i.Path == "storage.dsn"
}

// Err joins error-severity issues, ignoring the ones rejected by skip.
func Err(issues []Issue, skip func(Issue) bool) error {
	var errs []error
	for _, i := range issues {
		if i.Severity != SeverityError {
			continue
		}
		if skip != nil && skip(i) {
			continue
		}
		errs = append(errs, i)
	}
	return errors.Join(errs...)
}
