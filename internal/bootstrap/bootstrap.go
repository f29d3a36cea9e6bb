// Package bootstrap makes sure every entity of a catalog has a table.
//
// A run renders all statements first, then probes and creates the missing
// tables inside one transaction that is committed once. Existing tables are
// left alone; their shape is never compared. On backends whose DDL cannot be
// rolled back the tables created by a failed run are dropped again.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"schemaboot/internal/metrics"
	"schemaboot/internal/schema"
	"schemaboot/internal/storage"
)

const defaultJob = "schemaboot"

// Bootstrapper runs schema bootstraps. The zero value logs to slog.Default
// and needs Dialect set before calling Run.
type Bootstrapper struct {
	// Dialect renders statements for Run. RunConfig looks it up by kind.
	Dialect storage.Dialect
	Logger  *slog.Logger
	// Job labels emitted metrics.
	Job string
}

// New returns a Bootstrapper for d.
func New(d storage.Dialect, logger *slog.Logger, job string) *Bootstrapper {
	return &Bootstrapper{Dialect: d, Logger: logger, Job: job}
}

// Result describes a finished run. Created and Existing list table names in
// the order they were handled.
type Result struct {
	RunID       string        `json:"run_id"`
	Dialect     string        `json:"dialect"`
	Created     []string      `json:"created"`
	Existing    []string      `json:"existing"`
	Fingerprint string        `json:"fingerprint"`
	Duration    time.Duration `json:"duration_ns"`
}

// opener yields a repository and the function that releases it.
type opener func(ctx context.Context) (storage.Repository, func(), error)

// Run bootstraps cat on repo. repo is borrowed and stays open.
func (b *Bootstrapper) Run(ctx context.Context, repo storage.Repository, cat *schema.Catalog) (Result, error) {
	if b.Dialect == nil {
		return Result{}, fmt.Errorf("bootstrap: no dialect configured")
	}
	if repo == nil {
		return Result{}, fmt.Errorf("bootstrap: nil repository")
	}
	return b.run(ctx, b.Dialect, cat, func(ctx context.Context) (storage.Repository, func(), error) {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	})
}

// RunConfig opens the backend named by cfg.Kind, bootstraps cat, and closes
// the backend again. A catalog that fails to render opens no connection.
func (b *Bootstrapper) RunConfig(ctx context.Context, cfg storage.Config, cat *schema.Catalog) (Result, error) {
	d, err := storage.DialectFor(cfg.Kind)
	if err != nil {
		return Result{}, fmt.Errorf("bootstrap: %w", err)
	}
	return b.run(ctx, d, cat, func(ctx context.Context) (storage.Repository, func(), error) {
		repo, err := storage.New(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	})
}

func (b *Bootstrapper) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

func (b *Bootstrapper) job() string {
	if b.Job != "" {
		return b.Job
	}
	return defaultJob
}

func (b *Bootstrapper) run(ctx context.Context, d storage.Dialect, cat *schema.Catalog, open opener) (Result, error) {
	start := time.Now()
	res := Result{
		RunID:    uuid.NewString(),
		Dialect:  d.Name(),
		Created:  []string{},
		Existing: []string{},
	}
	log := b.logger().With("run_id", res.RunID, "dialect", res.Dialect)

	stepStart := time.Now()
	stmts, err := Plan(d, cat)
	metrics.RecordStep(b.job(), OpPlan, err, time.Since(stepStart))
	if err != nil {
		res.Duration = time.Since(start)
		log.Error("bootstrap plan failed", "err", err)
		return res, err
	}
	res.Fingerprint = Fingerprint(stmts)
	log.Debug("bootstrap planned", "tables", len(stmts), "fingerprint", res.Fingerprint)

	stepStart = time.Now()
	repo, release, err := open(ctx)
	if err != nil {
		berr := classify(d, OpConnect, "", err)
		metrics.RecordStep(b.job(), OpConnect, berr, time.Since(stepStart))
		res.Duration = time.Since(start)
		log.Error("bootstrap connect failed", "err", berr)
		return res, berr
	}
	defer release()
	metrics.RecordStep(b.job(), OpConnect, nil, time.Since(stepStart))

	stepStart = time.Now()
	err = b.apply(ctx, log, d, repo, stmts, &res)
	metrics.RecordStep(b.job(), "apply", err, time.Since(stepStart))
	res.Duration = time.Since(start)
	if err != nil {
		res.Created = []string{}
		log.Error("bootstrap failed", "err", err, "duration", res.Duration)
		return res, err
	}

	metrics.RecordTables(b.job(), metrics.OutcomeCreated, len(res.Created))
	metrics.RecordTables(b.job(), metrics.OutcomeExisting, len(res.Existing))
	log.Info("bootstrap complete",
		"created", len(res.Created),
		"existing", len(res.Existing),
		"fingerprint", res.Fingerprint,
		"duration", res.Duration,
	)
	return res, nil
}

// apply probes and creates inside one transaction. Any exit before a
// successful commit rolls the transaction back.
func (b *Bootstrapper) apply(ctx context.Context, log *slog.Logger, d storage.Dialect, repo storage.Repository, stmts []Statement, res *Result) error {
	tx, err := repo.Begin(ctx)
	if err != nil {
		return classify(d, OpBegin, "", err)
	}

	var created []Statement
	committed := false
	defer func() {
		if !committed {
			b.abort(ctx, log, d, tx, created)
		}
	}()

	for _, s := range stmts {
		obj, err := tx.Probe(ctx, s.Table)
		if err != nil {
			return classify(d, OpProbe, s.Entity, err)
		}

		switch obj.Kind {
		case storage.ObjectTable:
			res.Existing = append(res.Existing, s.Table)
			log.Debug("table exists", "entity", s.Entity, "table", s.Table, "outcome", metrics.OutcomeExisting)
			continue
		case storage.ObjectOther:
			return &Error{
				Kind:   storage.KindConflict,
				Op:     OpProbe,
				Entity: s.Entity,
				Err:    fmt.Errorf("name %s is taken by a %s, not a table", s.Table, obj.Type),
			}
		}

		if err := tx.Exec(ctx, s.SQL); err != nil {
			return classify(d, OpExec, s.Entity, err)
		}
		created = append(created, s)
		res.Created = append(res.Created, s.Table)
		log.Debug("table created", "entity", s.Entity, "table", s.Table, "outcome", metrics.OutcomeCreated)
	}

	if err := tx.Commit(ctx); err != nil {
		return classify(d, OpCommit, "", err)
	}
	committed = true
	return nil
}

// abort undoes a failed run. Dialects without transactional DDL drop the
// tables this run created, newest first, before the transaction is released.
// Cleanup outlives a cancelled ctx.
func (b *Bootstrapper) abort(ctx context.Context, log *slog.Logger, d storage.Dialect, tx storage.Tx, created []Statement) {
	ctx = context.WithoutCancel(ctx)

	if !d.TransactionalDDL() {
		if c, ok := d.(storage.Compensator); ok {
			for i := len(created) - 1; i >= 0; i-- {
				s := created[i]
				if err := tx.Exec(ctx, c.BuildDropTableSQL(s.Table)); err != nil {
					log.Warn("compensating drop failed", "entity", s.Entity, "table", s.Table, "err", err)
					continue
				}
				log.Debug("compensating drop", "entity", s.Entity, "table", s.Table)
			}
		}
	}

	if err := tx.Rollback(ctx); err != nil {
		log.Warn("rollback failed", "err", err)
	}
}
