package main

import (
	"errors"
	"fmt"
	"testing"

	"schemaboot/internal/bootstrap"
	"schemaboot/internal/storage"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"plain", errors.New("boom"), exitFailure},
		{"definition", &bootstrap.Error{Kind: storage.KindDefinition, Op: bootstrap.OpPlan}, exitDefinition},
		{"connection", &bootstrap.Error{Kind: storage.KindConnection, Op: bootstrap.OpConnect}, exitConnection},
		{"conflict wrapped", fmt.Errorf("bootstrap failed: %w", &bootstrap.Error{Kind: storage.KindConflict, Op: bootstrap.OpExec}), exitConflict},
		{"unknown kind", &bootstrap.Error{Kind: storage.KindUnknown}, exitFailure},
		{"sentinel", fmt.Errorf("%w: 2 issue(s)", bootstrap.ErrDefinition), exitDefinition},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCode(tt.err); got != tt.want {
				t.Fatalf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
