package store

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"hash/crc32"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"

	"github.com/google/renameio"

	sierrors "github.com/Aman-CERP/sentindex/internal/errors"
)

// Snapshot file layout: magic, format version, CRC32 (IEEE) of the payload,
// then the gob-encoded payload.
const (
	snapshotMagic   = "SIDX"
	snapshotVersion = uint16(1)
	headerSize      = len(snapshotMagic) + 2 + 4
)

// SnapshotBackend keeps the whole index in one file. A transaction loads
// the file, mutates the copy in memory and commits by atomically replacing
// the file.
type SnapshotBackend struct {
	path string
	// mu serializes commits from this process; other processes are kept
	// out by the writer lock.
	mu sync.Mutex
}

var _ Backend = (*SnapshotBackend)(nil)

// OpenSnapshot returns a backend for the snapshot file at path.
// The file is not touched until Initialize or Begin.
func OpenSnapshot(path string) (*SnapshotBackend, error) {
	if path == "" {
		return nil, sierrors.ConfigError("snapshot path must not be empty", nil)
	}
	return &SnapshotBackend{path: path}, nil
}

// Path returns the snapshot file.
func (b *SnapshotBackend) Path() string { return b.path }

// Initialize writes an empty snapshot if none exists.
func (b *SnapshotBackend) Initialize(ctx context.Context) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ok, err := b.exists()
	if err != nil || ok {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return false, sierrors.StorageError("failed to create snapshot directory", err)
	}
	if err := b.write(newMemState()); err != nil {
		return false, err
	}
	slog.Info("store_initialized", slog.String("backend", "snapshot"), slog.String("path", b.path))
	return true, nil
}

// Initialized reports whether the snapshot file exists.
func (b *SnapshotBackend) Initialized(ctx context.Context) (bool, error) {
	return b.exists()
}

// Reset replaces the snapshot with an empty one.
func (b *SnapshotBackend) Reset(ctx context.Context) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ok, err := b.exists()
	if err != nil || !ok {
		return false, err
	}
	st, err := b.load()
	if err != nil {
		return false, err
	}
	stats := st.stats()
	if stats.Empty() {
		return false, nil
	}
	if err := b.write(newMemState()); err != nil {
		return false, err
	}
	slog.Info("reset_complete",
		slog.Int("documents", stats.Documents),
		slog.Int("sentences", stats.Sentences),
		slog.Int("words", stats.Words))
	return true, nil
}

// Begin loads the snapshot into a private in-memory transaction.
func (b *SnapshotBackend) Begin(ctx context.Context) (Tx, error) {
	ok, err := b.exists()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, sierrors.NotInitializedError()
	}
	st, err := b.load()
	if err != nil {
		return nil, err
	}
	return &snapshotTx{backend: b, state: st}, nil
}

// Check decodes the snapshot, verifying header and checksum, and confirms
// every posting list is strictly ordered.
func (b *SnapshotBackend) Check(ctx context.Context) error {
	ok, err := b.exists()
	if err != nil {
		return err
	}
	if !ok {
		return sierrors.NotInitializedError()
	}
	st, err := b.load()
	if err != nil {
		return err
	}
	for word, pl := range st.words {
		if !slices.IsSortedFunc(pl.ids, SentenceID.Compare) {
			return sierrors.CorruptError(fmt.Sprintf("postings of %q are not sorted", word), nil)
		}
	}
	return nil
}

// Close is a no-op; nothing is held open between transactions.
func (b *SnapshotBackend) Close() error { return nil }

func (b *SnapshotBackend) exists() (bool, error) {
	info, err := os.Stat(b.path)
	switch {
	case err == nil:
		if info.IsDir() {
			return false, sierrors.CorruptError(fmt.Sprintf("snapshot path %s is a directory", b.path), nil)
		}
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, sierrors.StorageError("failed to stat snapshot", err)
	}
}

// snapshotPayload is the gob-encoded body. Slices, not maps, keep the
// encoding deterministic.
type snapshotPayload struct {
	Documents []Document
	Sentences []snapshotSentence
	Words     []snapshotWord
}

type snapshotSentence struct {
	Doc  DocID
	Seq  int
	Text string
}

type snapshotWord struct {
	Word     string
	Postings []SentenceID
}

func (b *SnapshotBackend) load() (*memState, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return nil, sierrors.StorageError("failed to read snapshot", err)
	}
	return decodeSnapshot(data)
}

func (b *SnapshotBackend) write(st *memState) error {
	data, err := encodeSnapshot(st)
	if err != nil {
		return sierrors.InternalError("failed to encode snapshot", err)
	}
	if err := renameio.WriteFile(b.path, data, 0o644); err != nil {
		return sierrors.StorageError("failed to write snapshot", err)
	}
	return nil
}

func encodeSnapshot(st *memState) ([]byte, error) {
	p := snapshotPayload{Documents: slices.Clone(st.docs)}

	for id, text := range st.sentences {
		p.Sentences = append(p.Sentences, snapshotSentence{Doc: id.Doc, Seq: id.Seq, Text: text})
	}
	sort.Slice(p.Sentences, func(i, j int) bool {
		a, b := p.Sentences[i], p.Sentences[j]
		return SentenceID{a.Doc, a.Seq}.Compare(SentenceID{b.Doc, b.Seq}) < 0
	})

	for _, word := range st.sortedWords() {
		p.Words = append(p.Words, snapshotWord{Word: word, Postings: st.words[word].IDs()})
	}

	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(&p); err != nil {
		return nil, err
	}

	out := make([]byte, headerSize, headerSize+payload.Len())
	copy(out, snapshotMagic)
	binary.BigEndian.PutUint16(out[4:6], snapshotVersion)
	binary.BigEndian.PutUint32(out[6:10], crc32.ChecksumIEEE(payload.Bytes()))
	return append(out, payload.Bytes()...), nil
}

func decodeSnapshot(data []byte) (*memState, error) {
	if len(data) < headerSize || string(data[:4]) != snapshotMagic {
		return nil, sierrors.CorruptError("snapshot header is missing or invalid", nil)
	}
	if v := binary.BigEndian.Uint16(data[4:6]); v != snapshotVersion {
		return nil, sierrors.CorruptError(fmt.Sprintf("unsupported snapshot version %d", v), nil)
	}
	payload := data[headerSize:]
	if crc32.ChecksumIEEE(payload) != binary.BigEndian.Uint32(data[6:10]) {
		return nil, sierrors.CorruptError("snapshot checksum mismatch", nil)
	}

	var p snapshotPayload
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&p); err != nil {
		return nil, sierrors.CorruptError("failed to decode snapshot", err)
	}

	st := newMemState()
	for i, doc := range p.Documents {
		if doc.ID != DocID(i+1) {
			return nil, sierrors.CorruptError(fmt.Sprintf("document %d stored out of order", doc.ID), nil)
		}
		st.docs = append(st.docs, doc)
		st.byPath[doc.Path] = doc.ID
	}
	for _, s := range p.Sentences {
		st.sentences[SentenceID{Doc: s.Doc, Seq: s.Seq}] = s.Text
	}
	for _, w := range p.Words {
		// Kept verbatim so Check can see ordering defects.
		st.words[w.Word] = &PostingList{ids: w.Postings}
	}
	return st, nil
}

// memState is the fully loaded index.
type memState struct {
	docs      []Document
	byPath    map[string]DocID
	sentences map[SentenceID]string
	words     map[string]*PostingList
}

func newMemState() *memState {
	return &memState{
		byPath:    make(map[string]DocID),
		sentences: make(map[SentenceID]string),
		words:     make(map[string]*PostingList),
	}
}

func (st *memState) sortedWords() []string {
	words := make([]string, 0, len(st.words))
	for w := range st.words {
		words = append(words, w)
	}
	slices.Sort(words)
	return words
}

func (st *memState) stats() Stats {
	s := Stats{Documents: len(st.docs), Sentences: len(st.sentences), Words: len(st.words)}
	for _, pl := range st.words {
		s.Postings += pl.Len()
	}
	return s
}

// snapshotTx implements Tx over a loaded memState.
type snapshotTx struct {
	backend *SnapshotBackend
	state   *memState
	done    bool
}

func (t *snapshotTx) CountDocuments(ctx context.Context) (int, error) {
	return len(t.state.docs), nil
}

func (t *snapshotTx) DocumentByPath(ctx context.Context, path string) (Document, bool, error) {
	id, ok := t.state.byPath[path]
	if !ok {
		return Document{}, false, nil
	}
	return t.state.docs[id-1], true, nil
}

func (t *snapshotTx) RegisterDocument(ctx context.Context, path string) (Document, error) {
	if _, ok := t.state.byPath[path]; ok {
		return Document{}, alreadyIndexed(path)
	}
	doc := Document{ID: DocID(len(t.state.docs) + 1), Path: path}
	t.state.docs = append(t.state.docs, doc)
	t.state.byPath[path] = doc.ID
	return doc, nil
}

func (t *snapshotTx) Document(ctx context.Context, id DocID) (Document, bool, error) {
	if id < 1 || int(id) > len(t.state.docs) {
		return Document{}, false, nil
	}
	return t.state.docs[id-1], true, nil
}

func (t *snapshotTx) Documents(ctx context.Context) ([]Document, error) {
	return slices.Clone(t.state.docs), nil
}

func (t *snapshotTx) PutSentence(ctx context.Context, s Sentence) error {
	if _, ok := t.state.sentences[s.ID]; ok {
		return sierrors.StorageError(fmt.Sprintf("sentence %s already stored", s.ID), nil)
	}
	t.state.sentences[s.ID] = s.Text
	return nil
}

func (t *snapshotTx) Sentence(ctx context.Context, id SentenceID) (Sentence, bool, error) {
	text, ok := t.state.sentences[id]
	if !ok {
		return Sentence{}, false, nil
	}
	return Sentence{ID: id, Text: text}, true, nil
}

func (t *snapshotTx) Sentences(ctx context.Context, doc DocID) ([]Sentence, error) {
	var out []Sentence
	for id, text := range t.state.sentences {
		if id.Doc == doc {
			out = append(out, Sentence{ID: id, Text: text})
		}
	}
	slices.SortFunc(out, func(a, b Sentence) int { return a.ID.Compare(b.ID) })
	return out, nil
}

func (t *snapshotTx) SentenceIDs(ctx context.Context) ([]SentenceID, error) {
	ids := make([]SentenceID, 0, len(t.state.sentences))
	for id := range t.state.sentences {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, SentenceID.Compare)
	return ids, nil
}

func (t *snapshotTx) AddPosting(ctx context.Context, word string, id SentenceID) (bool, error) {
	pl, ok := t.state.words[word]
	if !ok {
		pl = &PostingList{}
		t.state.words[word] = pl
	}
	pl.Add(id)
	return !ok, nil
}

func (t *snapshotTx) Postings(ctx context.Context, word string) (PostingList, error) {
	pl, ok := t.state.words[word]
	if !ok {
		return PostingList{}, nil
	}
	return PostingList{ids: pl.IDs()}, nil
}

func (t *snapshotTx) Words(ctx context.Context, fn func(string, PostingList) error) error {
	for _, word := range t.state.sortedWords() {
		if err := fn(word, PostingList{ids: t.state.words[word].IDs()}); err != nil {
			return err
		}
	}
	return nil
}

func (t *snapshotTx) Stats(ctx context.Context) (Stats, error) {
	return t.state.stats(), nil
}

func (t *snapshotTx) Commit() error {
	if t.done {
		return sierrors.StorageError("transaction already finished", nil)
	}
	t.done = true

	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()
	return t.backend.write(t.state)
}

func (t *snapshotTx) Rollback() error {
	t.done = true
	return nil
}
