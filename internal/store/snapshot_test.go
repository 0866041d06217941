package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sierrors "github.com/Aman-CERP/sentindex/internal/errors"
)

func newSnapshot(t *testing.T) *SnapshotBackend {
	t.Helper()
	b, err := OpenSnapshot(filepath.Join(t.TempDir(), "nested", "index.snap"))
	require.NoError(t, err)
	_, err = b.Initialize(context.Background())
	require.NoError(t, err)
	return b
}

func TestOpenSnapshot_EmptyPath(t *testing.T) {
	_, err := OpenSnapshot("")
	require.Error(t, err)
	assert.Equal(t, sierrors.ErrCodeConfigInvalid, sierrors.GetCode(err))
}

func TestSnapshot_InitializeCreatesFile(t *testing.T) {
	b := newSnapshot(t)

	data, err := os.ReadFile(b.Path())
	require.NoError(t, err)
	assert.Equal(t, snapshotMagic, string(data[:4]))
}

func TestSnapshot_CorruptHeader(t *testing.T) {
	// Given: a snapshot file without the magic bytes
	b := newSnapshot(t)
	require.NoError(t, os.WriteFile(b.Path(), []byte("not a snapshot at all"), 0o644))

	// When/Then: loading reports corruption
	_, err := b.Begin(context.Background())
	assert.Equal(t, sierrors.ErrCodeStorageCorrupt, sierrors.GetCode(err))
	assert.Equal(t, sierrors.ErrCodeStorageCorrupt, sierrors.GetCode(b.Check(context.Background())))
}

func TestSnapshot_TruncatedFile(t *testing.T) {
	b := newSnapshot(t)
	require.NoError(t, os.WriteFile(b.Path(), []byte("SI"), 0o644))

	_, err := b.Begin(context.Background())
	assert.Equal(t, sierrors.ErrCodeStorageCorrupt, sierrors.GetCode(err))
}

func TestSnapshot_ChecksumMismatch(t *testing.T) {
	// Given: a committed snapshot with one flipped payload byte
	ctx := context.Background()
	b := newSnapshot(t)
	tx, err := b.Begin(ctx)
	require.NoError(t, err)
	addDocument(t, tx, "/a.txt", map[int][]string{1: {"word"}}, "Word.")
	require.NoError(t, tx.Commit())

	data, err := os.ReadFile(b.Path())
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(b.Path(), data, 0o644))

	// Then: the damage is detected
	err = b.Check(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum")
}

func TestSnapshot_UnsupportedVersion(t *testing.T) {
	b := newSnapshot(t)
	data, err := os.ReadFile(b.Path())
	require.NoError(t, err)
	data[5] = 99
	require.NoError(t, os.WriteFile(b.Path(), data, 0o644))

	err = b.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestSnapshot_EncodingIsDeterministic(t *testing.T) {
	// Given: the same content built in two different insertion orders
	build := func(words []string) []byte {
		st := newMemState()
		tx := &snapshotTx{state: st}
		ctx := context.Background()
		_, err := tx.RegisterDocument(ctx, "/a.txt")
		require.NoError(t, err)
		require.NoError(t, tx.PutSentence(ctx, Sentence{ID: sid(1, 2), Text: "Two."}))
		require.NoError(t, tx.PutSentence(ctx, Sentence{ID: sid(1, 1), Text: "One."}))
		for _, w := range words {
			_, err := tx.AddPosting(ctx, w, sid(1, 1))
			require.NoError(t, err)
		}
		data, err := encodeSnapshot(st)
		require.NoError(t, err)
		return data
	}

	// Then: the bytes are identical
	assert.Equal(t, build([]string{"b", "a", "c"}), build([]string{"c", "b", "a"}))
}

func TestSnapshot_CheckDetectsUnsortedPostings(t *testing.T) {
	ctx := context.Background()
	b := newSnapshot(t)

	st := newMemState()
	st.words["fox"] = &PostingList{ids: []SentenceID{sid(2, 1), sid(1, 1)}}
	require.NoError(t, b.write(st))

	err := b.Check(ctx)
	require.Error(t, err)
	assert.Equal(t, sierrors.ErrCodeStorageCorrupt, sierrors.GetCode(err))
}

func TestSnapshot_UncommittedTxIsInvisible(t *testing.T) {
	ctx := context.Background()
	b := newSnapshot(t)

	writer, err := b.Begin(ctx)
	require.NoError(t, err)
	addDocument(t, writer, "/a.txt", nil, "Pending.")

	reader, err := b.Begin(ctx)
	require.NoError(t, err)
	n, err := reader.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, writer.Commit())
	assert.Error(t, writer.Commit(), "a finished transaction cannot commit twice")
}

func TestSnapshot_PathIsDirectory(t *testing.T) {
	dir := t.TempDir()
	b, err := OpenSnapshot(dir)
	require.NoError(t, err)

	_, err = b.Initialized(context.Background())
	assert.Equal(t, sierrors.ErrCodeStorageCorrupt, sierrors.GetCode(err))
}
