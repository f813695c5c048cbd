// Package store records batch run history in a local ledger.
package store

import (
	"context"

	"github.com/vecta-co/leadgen-cli/internal/model"
)

// Store is the run-history ledger. Ledger failures are advisory: callers log
// them and keep processing, since the snapshot file is the source of truth
// for enrichment state.
type Store interface {
	CreateRun(ctx context.Context, kind model.RunKind, inputPath, outputPath string) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, status model.RunStatus, summary *model.RunSummary) error
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
