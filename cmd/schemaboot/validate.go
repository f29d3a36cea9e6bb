package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"schemaboot/internal/bootstrap"
	"schemaboot/internal/config"
	"schemaboot/internal/storage"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog and print its issues",
		Long: `Validate lints the entity catalog and prints every error and warning.
When --storage-kind is set it also renders the statements for that backend,
which catches field types the backend cannot store. Exits 2 on errors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd)
		},
	}
}

func (a *app) runValidate(cmd *cobra.Command) error {
	err := a.requireConfig(func(i config.Issue) bool {
		return i.NeedsConnection() || i.Path == "storage.kind"
	})
	if err != nil {
		return err
	}
	cat, err := a.loadCatalog()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	issues := cat.Validate()
	for _, iss := range issues {
		fmt.Fprintln(out, iss.Error())
	}
	if err := issues.Err(); err != nil {
		return fmt.Errorf("%w: %d issue(s)", bootstrap.ErrDefinition, len(issues))
	}

	if a.cfg.Storage.Kind != "" {
		d, err := storage.DialectFor(a.cfg.Storage.Kind)
		if err != nil {
			return err
		}
		if _, err := bootstrap.Plan(d, cat); err != nil {
			fmt.Fprintln(out, err.Error())
			return err
		}
	}

	fmt.Fprintf(out, "catalog ok: %d entities, %d warning(s)\n", cat.Len(), len(issues))
	return nil
}
