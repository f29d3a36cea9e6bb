package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"schemaboot/internal/bootstrap"
	"schemaboot/internal/config"
	"schemaboot/internal/storage"
)

func newPlanCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the statements bootstrap would issue",
		Long: `Plan renders the "create if absent" statement of every catalog entity for
the configured backend, referenced tables first. It never connects.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlan(cmd, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print statements as JSON")
	return cmd
}

type planOutput struct {
	Dialect     string                `json:"dialect"`
	Fingerprint string                `json:"fingerprint"`
	Statements  []bootstrap.Statement `json:"statements"`
}

func (a *app) runPlan(cmd *cobra.Command, asJSON bool) error {
	if err := a.requireConfig(config.Issue.NeedsConnection); err != nil {
		return err
	}
	d, err := storage.DialectFor(a.cfg.Storage.Kind)
	if err != nil {
		return err
	}
	cat, err := a.loadCatalog()
	if err != nil {
		return err
	}

	stmts, err := bootstrap.Plan(d, cat)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		printJSON(out, planOutput{Dialect: d.Name(), Fingerprint: bootstrap.Fingerprint(stmts), Statements: stmts})
		return nil
	}

	for _, s := range stmts {
		fmt.Fprintf(out, "-- %s (%s)\n%s\n\n", s.Entity, s.Table, s.SQL)
	}
	fmt.Fprintf(out, "-- %d statement(s), dialect %s, fingerprint %s\n", len(stmts), d.Name(), bootstrap.Fingerprint(stmts))
	return nil
}
