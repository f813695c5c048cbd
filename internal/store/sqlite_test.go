package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecta-co/leadgen-cli/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLite(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestCreateAndCompleteRun(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, model.RunKindEnrich, "source.json", "enriched.json")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusRunning, run.Status)

	summary := &model.RunSummary{Processed: 3, Found: 2, NotFound: 1}
	require.NoError(t, s.CompleteRun(ctx, run.ID, model.RunStatusComplete, summary))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, model.RunStatusComplete, runs[0].Status)
	require.NotNil(t, runs[0].Summary)
	assert.Equal(t, 3, runs[0].Summary.Processed)
	assert.NotNil(t, runs[0].FinishedAt)
}

func TestCompleteRunUnknownID(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	err := s.CompleteRun(context.Background(), "no-such-run", model.RunStatusFailed, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListRunsOrderAndLimit(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	for range 5 {
		_, err := s.CreateRun(ctx, model.RunKindOrgs, "in.json", "out.json")
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	runs, err = s.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 5)
}
