package query

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sierrors "github.com/Aman-CERP/sentindex/internal/errors"
	"github.com/Aman-CERP/sentindex/internal/metrics"
	"github.com/Aman-CERP/sentindex/internal/store"
	"github.com/Aman-CERP/sentindex/internal/store/mock_store"
)

func sid(doc, seq int) store.SentenceID { return store.SentenceID{Doc: store.DocID(doc), Seq: seq} }

// seed builds a store with two documents:
//
//	/a.txt: 1_1 "The fox ran." 1_2 "A dog sat."  1_3 "The fox slept."
//	/b.txt: 2_1 "Another fox."
func seed(t *testing.T) store.Backend {
	t.Helper()
	ctx := context.Background()
	b, err := store.OpenSQL(ctx, store.SQLConfig{Driver: store.DriverSQLite})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	_, err = b.Initialize(ctx)
	require.NoError(t, err)

	tx, err := b.Begin(ctx)
	require.NoError(t, err)
	docs := []struct {
		path      string
		sentences []string
		words     [][]string
	}{
		{"/a.txt", []string{"The fox ran.", "A dog sat.", "The fox slept."}, [][]string{{"The", "fox", "ran"}, {"dog", "sat"}, {"The", "fox", "slept"}}},
		{"/b.txt", []string{"Another fox."}, [][]string{{"Another", "fox"}}},
	}
	for _, d := range docs {
		doc, err := tx.RegisterDocument(ctx, d.path)
		require.NoError(t, err)
		for i, text := range d.sentences {
			id := store.SentenceID{Doc: doc.ID, Seq: i + 1}
			require.NoError(t, tx.PutSentence(ctx, store.Sentence{ID: id, Text: text}))
			for _, w := range d.words[i] {
				_, err := tx.AddPosting(ctx, w, id)
				require.NoError(t, err)
			}
		}
	}
	require.NoError(t, tx.Commit())
	return b
}

func newEngine(t *testing.T, b store.Backend, m *metrics.Metrics) *Engine {
	t.Helper()
	e, err := NewEngine(b, EngineConfig{DocCacheSize: 2}, m)
	require.NoError(t, err)
	return e
}

func TestQueryWord_Found(t *testing.T) {
	// Given: a seeded index
	e := newEngine(t, seed(t), nil)

	// When: querying a word in two documents
	res, err := e.QueryWord(context.Background(), "fox")

	// Then: hits come in posting order with paths and text
	require.NoError(t, err)
	assert.True(t, res.Found())
	assert.Equal(t, "fox", res.Word)
	assert.Equal(t, 3, res.SentenceCount)
	assert.Equal(t, 2, res.DocumentCount)
	assert.Equal(t, 2, res.CorpusDocuments)
	assert.Equal(t, []Hit{
		{SentenceID: sid(1, 1), ID: "1_1", DocPath: "/a.txt", Text: "The fox ran."},
		{SentenceID: sid(1, 3), ID: "1_3", DocPath: "/a.txt", Text: "The fox slept."},
		{SentenceID: sid(2, 1), ID: "2_1", DocPath: "/b.txt", Text: "Another fox."},
	}, res.Hits)
}

func TestQueryWord_CaseSensitive(t *testing.T) {
	e := newEngine(t, seed(t), nil)

	res, err := e.QueryWord(context.Background(), "the")
	require.NoError(t, err)
	assert.False(t, res.Found())

	res, err = e.QueryWord(context.Background(), "The")
	require.NoError(t, err)
	assert.Equal(t, 2, res.SentenceCount)
	assert.Equal(t, 1, res.DocumentCount)
}

func TestQueryWord_AbsentWord(t *testing.T) {
	e := newEngine(t, seed(t), nil)

	for _, word := range []string{"wolf", "fo", "foxes"} {
		res, err := e.QueryWord(context.Background(), word)
		require.NoError(t, err, word)
		assert.Equal(t, 0, res.SentenceCount, word)
		assert.Equal(t, 0, res.DocumentCount, word)
		assert.Empty(t, res.Hits, word)
	}
}

func TestQueryWord_EmptyWord(t *testing.T) {
	e := newEngine(t, seed(t), nil)

	for _, word := range []string{"", "   "} {
		_, err := e.QueryWord(context.Background(), word)
		assert.True(t, errors.Is(err, sierrors.ErrInvalidArgument), "got %v", err)
	}
}

func TestQueryWord_NotInitialized(t *testing.T) {
	b, err := store.OpenSQL(context.Background(), store.SQLConfig{Driver: store.DriverSQLite})
	require.NoError(t, err)
	defer func() { _ = b.Close() }()
	e := newEngine(t, b, nil)

	_, err = e.QueryWord(context.Background(), "fox")
	assert.True(t, errors.Is(err, sierrors.ErrNotInitialized), "got %v", err)
}

func TestQueryWord_EmptyCorpus(t *testing.T) {
	ctx := context.Background()
	b, err := store.OpenSQL(ctx, store.SQLConfig{Driver: store.DriverSQLite})
	require.NoError(t, err)
	defer func() { _ = b.Close() }()
	_, err = b.Initialize(ctx)
	require.NoError(t, err)

	res, err := newEngine(t, b, nil).QueryWord(ctx, "fox")
	require.NoError(t, err)
	assert.Equal(t, 0, res.CorpusDocuments)
	assert.False(t, res.Found())
}

func TestQueryWord_DocCacheAvoidsLookups(t *testing.T) {
	// Given: a transaction whose document lookups are counted
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	backend := mock_store.NewMockBackend(mockCtrl)
	tx := mock_store.NewMockTx(mockCtrl)

	backend.EXPECT().Begin(gomock.Any()).Return(tx, nil).Times(2)
	tx.EXPECT().CountDocuments(gomock.Any()).Return(1, nil).Times(2)
	tx.EXPECT().Postings(gomock.Any(), "fox").Return(store.NewPostingList(sid(1, 1), sid(1, 2)), nil).Times(2)
	tx.EXPECT().Sentence(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id store.SentenceID) (store.Sentence, bool, error) {
			return store.Sentence{ID: id, Text: "fox " + id.String()}, true, nil
		}).Times(4)
	// One document lookup serves both queries.
	tx.EXPECT().Document(gomock.Any(), store.DocID(1)).Return(store.Document{ID: 1, Path: "/a.txt"}, true, nil).Times(1)
	tx.EXPECT().Rollback().Return(nil).Times(2)

	e := newEngine(t, backend, metrics.New())

	// When: the same word is queried twice
	for i := 0; i < 2; i++ {
		res, err := e.QueryWord(context.Background(), "fox")
		require.NoError(t, err)
		assert.Len(t, res.Hits, 2)
		assert.Equal(t, "/a.txt", res.Hits[1].DocPath)
	}
}

func TestQueryWord_DanglingPostingIsCorrupt(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	backend := mock_store.NewMockBackend(mockCtrl)
	tx := mock_store.NewMockTx(mockCtrl)

	backend.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().CountDocuments(gomock.Any()).Return(1, nil)
	tx.EXPECT().Postings(gomock.Any(), "fox").Return(store.NewPostingList(sid(1, 9)), nil)
	tx.EXPECT().Document(gomock.Any(), store.DocID(1)).Return(store.Document{ID: 1, Path: "/a.txt"}, true, nil)
	tx.EXPECT().Sentence(gomock.Any(), sid(1, 9)).Return(store.Sentence{}, false, nil)
	tx.EXPECT().Rollback().Return(nil)

	_, err := newEngine(t, backend, nil).QueryWord(context.Background(), "fox")
	assert.True(t, errors.Is(err, sierrors.ErrStorageCorrupt), "got %v", err)
}

func TestNewEngine_RequiresBackend(t *testing.T) {
	_, err := NewEngine(nil, EngineConfig{}, nil)
	assert.Error(t, err)
}

func TestEngine_Purge(t *testing.T) {
	e := newEngine(t, seed(t), nil)
	_, err := e.QueryWord(context.Background(), "fox")
	require.NoError(t, err)
	assert.Equal(t, 2, e.docs.Len())

	e.Purge()
	assert.Equal(t, 0, e.docs.Len())
}
