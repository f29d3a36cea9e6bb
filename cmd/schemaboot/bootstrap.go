package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"schemaboot/internal/bootstrap"
	"schemaboot/internal/storage"
)

func newBootstrapCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the missing tables and exit",
		Long: `Bootstrap creates every catalog table that does not exist yet, inside one
transaction that is committed once. Existing tables are left as they are.

The command prints a JSON result to stdout and exits with
  0 on success,
  2 when the catalog cannot be translated (definition error),
  3 when the backend is unreachable (connection error),
  4 when existing objects collide with the catalog (schema conflict),
  1 on any other failure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBootstrap(cmd)
		},
	}
}

type bootstrapOutput struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	bootstrap.Result
}

func (a *app) runBootstrap(cmd *cobra.Command) error {
	if err := a.requireConfig(nil); err != nil {
		return err
	}
	cat, err := a.loadCatalog()
	if err != nil {
		return err
	}

	ctx, cancel := a.runContext(cmd.Context())
	defer cancel()

	b := &bootstrap.Bootstrapper{Logger: a.logger, Job: a.cfg.Metrics.Job}
	res, err := b.RunConfig(ctx, storage.Config{Kind: a.cfg.Storage.Kind, DSN: a.cfg.Storage.DSN}, cat)
	if err != nil {
		printJSON(cmd.OutOrStdout(), bootstrapOutput{Status: "error", Error: err.Error(), Result: res})
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	printJSON(cmd.OutOrStdout(), bootstrapOutput{Status: "ok", Result: res})
	return nil
}

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(w, `{"status":"error","error":%q}`+"\n", err.Error())
	}
}
