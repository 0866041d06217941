package ingest

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sierrors "github.com/Aman-CERP/sentindex/internal/errors"
	"github.com/Aman-CERP/sentindex/internal/segment"
	"github.com/Aman-CERP/sentindex/internal/store"
	"github.com/Aman-CERP/sentindex/internal/store/mock_store"
)

func newMockController(t *testing.T, b store.Backend) *Controller {
	t.Helper()
	c, err := NewController(ControllerConfig{}, ControllerDependencies{
		Backend:  b,
		Analyzer: newAnalyzer(t, segment.Options{}),
	})
	require.NoError(t, err)
	return c
}

func TestIngestDocument_StorageErrorRollsBack(t *testing.T) {
	// Given: a store that fails while storing the first sentence
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	backend := mock_store.NewMockBackend(mockCtrl)
	tx := mock_store.NewMockTx(mockCtrl)

	diskFull := sierrors.StorageError("disk full", nil)
	backend.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().DocumentByPath(gomock.Any(), gomock.Any()).Return(store.Document{}, false, nil)
	tx.EXPECT().RegisterDocument(gomock.Any(), gomock.Any()).Return(store.Document{ID: 1, Path: "x"}, nil)
	tx.EXPECT().PutSentence(gomock.Any(), gomock.Any()).Return(diskFull)
	tx.EXPECT().Rollback().Return(nil)
	// No Commit expected.

	c := newMockController(t, backend)

	// When: a document is ingested
	_, err := c.IngestDocument(context.Background(), filepath.Join(copyCorpus(t), "delta.txt"))

	// Then: the storage error surfaces
	assert.True(t, errors.Is(err, sierrors.ErrStorageFailed), "got %v", err)
}

func TestIngestDocument_CommitFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	backend := mock_store.NewMockBackend(mockCtrl)
	tx := mock_store.NewMockTx(mockCtrl)

	busy := sierrors.New(sierrors.ErrCodeStoreBusy, "store busy", nil)
	backend.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().DocumentByPath(gomock.Any(), gomock.Any()).Return(store.Document{}, false, nil)
	tx.EXPECT().RegisterDocument(gomock.Any(), gomock.Any()).Return(store.Document{ID: 1}, nil)
	tx.EXPECT().PutSentence(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	tx.EXPECT().AddPosting(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()
	tx.EXPECT().Commit().Return(busy)
	tx.EXPECT().Rollback().Return(nil)

	c := newMockController(t, backend)
	_, err := c.IngestDocument(context.Background(), filepath.Join(copyCorpus(t), "delta.txt"))

	assert.True(t, errors.Is(err, sierrors.ErrStoreBusy), "got %v", err)
}

func TestIngestDocument_SkippedDoesNotCommit(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	backend := mock_store.NewMockBackend(mockCtrl)
	tx := mock_store.NewMockTx(mockCtrl)

	backend.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().DocumentByPath(gomock.Any(), gomock.Any()).Return(store.Document{ID: 3}, true, nil)
	tx.EXPECT().Rollback().Return(nil)

	c := newMockController(t, backend)
	res, err := c.IngestDocument(context.Background(), filepath.Join(copyCorpus(t), "delta.txt"))

	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.Status)
	assert.Equal(t, store.DocID(3), res.Doc)
}

func TestIngestDirectory_StorageErrorAbortsBatch(t *testing.T) {
	// Given: a store that fails on the second document
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	backend := mock_store.NewMockBackend(mockCtrl)
	tx := mock_store.NewMockTx(mockCtrl)

	backend.EXPECT().Begin(gomock.Any()).Return(tx, nil).Times(1)
	gomock.InOrder(
		tx.EXPECT().DocumentByPath(gomock.Any(), gomock.Any()).Return(store.Document{}, false, nil),
		tx.EXPECT().RegisterDocument(gomock.Any(), gomock.Any()).Return(store.Document{ID: 1}, nil),
	)
	tx.EXPECT().PutSentence(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	tx.EXPECT().AddPosting(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()
	tx.EXPECT().DocumentByPath(gomock.Any(), gomock.Any()).Return(store.Document{}, false, errors.New("connection reset"))
	tx.EXPECT().Rollback().Return(nil)

	obs := &recordingObserver{}
	c, err := NewController(ControllerConfig{}, ControllerDependencies{
		Backend:  backend,
		Analyzer: newAnalyzer(t, segment.Options{}),
		Observer: obs,
	})
	require.NoError(t, err)

	// When: the directory is ingested
	res, err := c.IngestDirectory(context.Background(), copyCorpus(t))

	// Then: the batch stops, nothing was committed, and the observer saw the abort
	require.Error(t, err)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 0, res.Committed)
	require.NotNil(t, obs.summary)
	assert.Error(t, obs.batchErr)
}

func TestIngestDirectory_BeginFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	backend := mock_store.NewMockBackend(mockCtrl)

	backend.EXPECT().Begin(gomock.Any()).Return(nil, sierrors.NotInitializedError())

	c := newMockController(t, backend)
	_, err := c.IngestDirectory(context.Background(), copyCorpus(t))

	assert.True(t, errors.Is(err, sierrors.ErrNotInitialized), "got %v", err)
}

func TestIngestDirectory_AutoInitFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	backend := mock_store.NewMockBackend(mockCtrl)

	backend.EXPECT().Initialize(gomock.Any()).Return(false, sierrors.New(sierrors.ErrCodeStoreLocked, "locked", nil))

	c, err := NewController(ControllerConfig{AutoInit: true}, ControllerDependencies{
		Backend:  backend,
		Analyzer: newAnalyzer(t, segment.Options{}),
	})
	require.NoError(t, err)

	_, err = c.IngestDirectory(context.Background(), copyCorpus(t))
	assert.True(t, errors.Is(err, sierrors.ErrStoreLocked), "got %v", err)
}
