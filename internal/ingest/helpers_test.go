package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/sentindex/internal/config"
	"github.com/Aman-CERP/sentindex/internal/segment"
	"github.com/Aman-CERP/sentindex/internal/store"
)

// Fixture corpus facts. Directory order is alpha, beta, delta, gamma.
const (
	corpusDocs            = 4
	corpusSentences       = 13
	lighthouseSentences   = 4 // 1_1, 1_4, 2_1, 3_1
	lighthouseDocuments   = 3
	gammaNewWordsAlone    = 9
	deltaNewWordsAfterGam = 6
	betaNewWordsAfterDel  = 8
)

// copyCorpus copies testdata/corpus into a temp dir and returns it.
func copyCorpus(t *testing.T) string {
	t.Helper()
	dst := t.TempDir()
	entries, err := os.ReadDir(filepath.Join("testdata", "corpus"))
	require.NoError(t, err)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join("testdata", "corpus", e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dst, e.Name()), data, 0o644))
	}
	return dst
}

func newAnalyzer(t *testing.T, opts segment.Options) *segment.Analyzer {
	t.Helper()
	a, err := segment.NewAnalyzer(opts)
	require.NoError(t, err)
	return a
}

// newBackend opens an initialized in-memory SQLite store.
func newBackend(t *testing.T) store.Backend {
	t.Helper()
	b, err := store.OpenSQL(context.Background(), store.SQLConfig{Driver: store.DriverSQLite})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	_, err = b.Initialize(context.Background())
	require.NoError(t, err)
	return b
}

func newSnapshotBackend(t *testing.T) store.Backend {
	t.Helper()
	b, err := store.OpenSnapshot(filepath.Join(t.TempDir(), "index.snap"))
	require.NoError(t, err)
	_, err = b.Initialize(context.Background())
	require.NoError(t, err)
	return b
}

func newController(t *testing.T, b store.Backend, cfg ControllerConfig, observer Observer) *Controller {
	t.Helper()
	if cfg.Commit == "" {
		cfg.Commit = config.CommitBatch
	}
	c, err := NewController(cfg, ControllerDependencies{
		Backend:  b,
		Analyzer: newAnalyzer(t, segment.Options{}),
		Observer: observer,
	})
	require.NoError(t, err)
	return c
}

func stats(t *testing.T, b store.Backend) store.Stats {
	t.Helper()
	tx, err := b.Begin(context.Background())
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()
	s, err := tx.Stats(context.Background())
	require.NoError(t, err)
	return s
}

func postings(t *testing.T, b store.Backend, word string) store.PostingList {
	t.Helper()
	tx, err := b.Begin(context.Background())
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()
	pl, err := tx.Postings(context.Background(), word)
	require.NoError(t, err)
	return pl
}

// recordingObserver keeps every callback for assertions.
type recordingObserver struct {
	started  []string
	finished []DocumentResult
	total    int
	summary  *BatchResult
	batchErr error
}

func (o *recordingObserver) BatchStarted(_ string, total int) { o.total = total }

func (o *recordingObserver) DocumentStarted(_, _ int, path string) {
	o.started = append(o.started, filepath.Base(path))
}

func (o *recordingObserver) DocumentFinished(_, _ int, res DocumentResult, _ error) {
	o.finished = append(o.finished, res)
}

func (o *recordingObserver) BatchFinished(res BatchResult, err error) {
	o.summary = &res
	o.batchErr = err
}
