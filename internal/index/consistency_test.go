package index

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sierrors "github.com/Aman-CERP/sentindex/internal/errors"
	"github.com/Aman-CERP/sentindex/internal/store"
	"github.com/Aman-CERP/sentindex/internal/store/mock_store"
)

func sid(doc, seq int) store.SentenceID { return store.SentenceID{Doc: store.DocID(doc), Seq: seq} }

func openBackends(t *testing.T) map[string]store.Backend {
	t.Helper()
	ctx := context.Background()

	sqlBackend, err := store.OpenSQL(ctx, store.SQLConfig{Driver: store.DriverSQLite})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlBackend.Close() })

	snap, err := store.OpenSnapshot(filepath.Join(t.TempDir(), "index.snap"))
	require.NoError(t, err)

	backends := map[string]store.Backend{"sql": sqlBackend, "snapshot": snap}
	for _, b := range backends {
		_, err := b.Initialize(ctx)
		require.NoError(t, err)
	}
	return backends
}

// write runs fn in a committed transaction.
func write(t *testing.T, b store.Backend, fn func(ctx context.Context, tx store.Tx)) {
	t.Helper()
	ctx := context.Background()
	tx, err := b.Begin(ctx)
	require.NoError(t, err)
	fn(ctx, tx)
	require.NoError(t, tx.Commit())
}

func put(t *testing.T, ctx context.Context, tx store.Tx, id store.SentenceID, words ...string) {
	t.Helper()
	require.NoError(t, tx.PutSentence(ctx, store.Sentence{ID: id, Text: "text " + id.String()}))
	for _, w := range words {
		_, err := tx.AddPosting(ctx, w, id)
		require.NoError(t, err)
	}
}

func TestConsistencyChecker_ConsistentIndex(t *testing.T) {
	for name, b := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			// Given: a well-formed index
			write(t, b, func(ctx context.Context, tx store.Tx) {
				_, err := tx.RegisterDocument(ctx, "/a.txt")
				require.NoError(t, err)
				_, err = tx.RegisterDocument(ctx, "/b.txt")
				require.NoError(t, err)
				put(t, ctx, tx, sid(1, 1), "fox", "dog")
				put(t, ctx, tx, sid(1, 2), "fox")
				put(t, ctx, tx, sid(2, 1), "cat")
			})

			// When: checked
			res, err := NewConsistencyChecker(b).Check(context.Background())

			// Then: no issues and correct counts
			require.NoError(t, err)
			assert.True(t, res.OK(), "issues: %+v", res.Inconsistencies)
			assert.Equal(t, 2, res.Documents)
			assert.Equal(t, 3, res.Sentences)
			assert.Equal(t, 3, res.Words)
			assert.Equal(t, 4, res.Postings)
		})
	}
}

func TestConsistencyChecker_EmptyIndex(t *testing.T) {
	for name, b := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			res, err := NewConsistencyChecker(b).Check(context.Background())
			require.NoError(t, err)
			assert.True(t, res.OK())
			assert.Equal(t, 0, res.Documents)
		})
	}
}

func TestConsistencyChecker_DetectsBrokenRelations(t *testing.T) {
	for name, b := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			// Given: a gap in doc 1, a sentence of a missing doc, and a
			// posting to a missing sentence
			write(t, b, func(ctx context.Context, tx store.Tx) {
				_, err := tx.RegisterDocument(ctx, "/a.txt")
				require.NoError(t, err)
				put(t, ctx, tx, sid(1, 1), "fox")
				put(t, ctx, tx, sid(1, 3), "fox")
				put(t, ctx, tx, sid(7, 1))
				_, err = tx.AddPosting(ctx, "ghost", sid(1, 9))
				require.NoError(t, err)
			})

			// When: checked
			res, err := NewConsistencyChecker(b).Check(context.Background())

			// Then: each problem is reported once
			require.NoError(t, err)
			assert.False(t, res.OK())

			kinds := map[InconsistencyType][]string{}
			for _, issue := range res.Inconsistencies {
				kinds[issue.Type] = append(kinds[issue.Type], issue.Subject)
			}
			assert.Equal(t, []string{"1"}, kinds[InconsistencySequenceGap])
			assert.Equal(t, []string{"7_1"}, kinds[InconsistencyOrphanSentence])
			assert.Equal(t, []string{"ghost"}, kinds[InconsistencyDanglingPosting])
			assert.Empty(t, kinds[InconsistencyDuplicatePath])
		})
	}
}

func TestConsistencyChecker_DuplicatePathsAndIDs(t *testing.T) {
	// Duplicate paths cannot be written through either backend, so the
	// listing comes from a mock.
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	backend := mock_store.NewMockBackend(mockCtrl)
	tx := mock_store.NewMockTx(mockCtrl)

	backend.EXPECT().Check(gomock.Any()).Return(nil)
	backend.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().Documents(gomock.Any()).Return([]store.Document{
		{ID: 1, Path: "/a.txt"},
		{ID: 2, Path: "/a.txt"},
		{ID: 4, Path: "/c.txt"},
	}, nil)
	tx.EXPECT().SentenceIDs(gomock.Any()).Return(nil, nil)
	tx.EXPECT().Words(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	res, err := NewConsistencyChecker(backend).Check(context.Background())

	require.NoError(t, err)
	require.Len(t, res.Inconsistencies, 2)
	assert.Equal(t, InconsistencyDuplicatePath, res.Inconsistencies[0].Type)
	assert.Equal(t, "/a.txt", res.Inconsistencies[0].Subject)
	assert.Equal(t, InconsistencyDocumentID, res.Inconsistencies[1].Type)
	assert.Equal(t, "duplicate_path", res.Inconsistencies[0].Kind)
}

func TestConsistencyChecker_StorageFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	backend := mock_store.NewMockBackend(mockCtrl)

	backend.EXPECT().Check(gomock.Any()).Return(sierrors.CorruptError("bad page", nil))

	_, err := NewConsistencyChecker(backend).Check(context.Background())
	assert.True(t, errors.Is(err, sierrors.ErrStorageCorrupt), "got %v", err)
}

func TestConsistencyChecker_NotInitialized(t *testing.T) {
	b, err := store.OpenSQL(context.Background(), store.SQLConfig{Driver: store.DriverSQLite})
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	_, err = NewConsistencyChecker(b).Check(context.Background())
	assert.True(t, errors.Is(err, sierrors.ErrNotInitialized), "got %v", err)
}

func TestInconsistencyType_String(t *testing.T) {
	tests := []struct {
		typ  InconsistencyType
		want string
	}{
		{InconsistencyDanglingPosting, "dangling_posting"},
		{InconsistencyOrphanSentence, "orphan_sentence"},
		{InconsistencyDuplicatePath, "duplicate_path"},
		{InconsistencySequenceGap, "sequence_gap"},
		{InconsistencyDocumentID, "document_id"},
		{InconsistencyType(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.String())
	}
}
