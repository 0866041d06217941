// Package query answers word lookups against the index.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	sierrors "github.com/Aman-CERP/sentindex/internal/errors"
	"github.com/Aman-CERP/sentindex/internal/metrics"
	"github.com/Aman-CERP/sentindex/internal/store"
)

// DefaultDocCacheSize is the number of document paths kept in memory.
const DefaultDocCacheSize = 256

// Hit is one sentence containing the queried word.
type Hit struct {
	SentenceID store.SentenceID `json:"-"`
	ID         string           `json:"id"`
	DocPath    string           `json:"doc_path"`
	Text       string           `json:"text"`
}

// Result is the answer to a word query.
type Result struct {
	Word          string `json:"word"`
	SentenceCount int    `json:"sentence_count"`
	DocumentCount int    `json:"document_count"`
	Hits          []Hit  `json:"hits"`

	// CorpusDocuments is the number of documents in the index when the
	// query ran.
	CorpusDocuments int `json:"corpus_documents"`
}

// Found reports whether the word occurs anywhere.
func (r *Result) Found() bool { return r.SentenceCount > 0 }

// EngineConfig configures an Engine.
type EngineConfig struct {
	// DocCacheSize bounds the document path cache. Zero selects
	// DefaultDocCacheSize.
	DocCacheSize int
}

// Engine resolves words to the sentences and documents containing them.
type Engine struct {
	backend store.Backend
	docs    *lru.Cache[store.DocID, string]
	metrics *metrics.Metrics
}

// NewEngine creates an Engine over backend. m may be nil.
func NewEngine(backend store.Backend, cfg EngineConfig, m *metrics.Metrics) (*Engine, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	size := cfg.DocCacheSize
	if size <= 0 {
		size = DefaultDocCacheSize
	}
	cache, err := lru.New[store.DocID, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create document cache: %w", err)
	}
	return &Engine{backend: backend, docs: cache, metrics: m}, nil
}

// QueryWord returns every sentence containing word, matched literally and
// case-sensitively. An unknown word yields an empty result.
func (e *Engine) QueryWord(ctx context.Context, word string) (*Result, error) {
	start := time.Now()
	if strings.TrimSpace(word) == "" {
		return nil, sierrors.InvalidArgumentError("query word must not be empty", nil)
	}

	res, err := e.query(ctx, word)
	elapsed := time.Since(start)
	if err != nil {
		e.metrics.ObserveQuery(metrics.QueryError, 0, elapsed)
		return nil, err
	}

	resultType := metrics.QueryMiss
	if res.Found() {
		resultType = metrics.QueryHit
	}
	e.metrics.ObserveQuery(resultType, res.SentenceCount, elapsed)

	slog.Info("query_complete",
		slog.String("word", word),
		slog.Int("sentences", res.SentenceCount),
		slog.Int("documents", res.DocumentCount),
		slog.Duration("duration", elapsed))
	return res, nil
}

func (e *Engine) query(ctx context.Context, word string) (*Result, error) {
	tx, err := e.backend.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	corpus, err := tx.CountDocuments(ctx)
	if err != nil {
		return nil, err
	}

	postings, err := tx.Postings(ctx, word)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Word:            word,
		SentenceCount:   postings.Len(),
		DocumentCount:   postings.DocumentCount(),
		Hits:            make([]Hit, 0, postings.Len()),
		CorpusDocuments: corpus,
	}

	for id := range postings.All() {
		path, err := e.documentPath(ctx, tx, id.Doc)
		if err != nil {
			return nil, err
		}
		s, found, err := tx.Sentence(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, sierrors.CorruptError(fmt.Sprintf("posting of %q references missing sentence %s", word, id), nil)
		}
		res.Hits = append(res.Hits, Hit{SentenceID: id, ID: id.String(), DocPath: path, Text: s.Text})
	}
	return res, nil
}

func (e *Engine) documentPath(ctx context.Context, tx store.Tx, id store.DocID) (string, error) {
	if path, ok := e.docs.Get(id); ok {
		e.metrics.ObserveDocCache(true)
		return path, nil
	}
	e.metrics.ObserveDocCache(false)

	doc, found, err := tx.Document(ctx, id)
	if err != nil {
		return "", err
	}
	if !found {
		return "", sierrors.CorruptError(fmt.Sprintf("sentence references missing document %d", id), nil)
	}
	e.docs.Add(id, doc.Path)
	return doc.Path, nil
}

// Purge empties the document path cache. Call it after a reset.
func (e *Engine) Purge() {
	e.docs.Purge()
}
