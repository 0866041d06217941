package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/sentindex/internal/config"
	sierrors "github.com/Aman-CERP/sentindex/internal/errors"
	"github.com/Aman-CERP/sentindex/internal/metrics"
	"github.com/Aman-CERP/sentindex/internal/segment"
	"github.com/Aman-CERP/sentindex/internal/store"
)

// ControllerConfig tunes ingestion.
type ControllerConfig struct {
	// Commit is config.CommitBatch (one transaction per directory) or
	// config.CommitDocument (one per indexed document).
	Commit string

	// ReadAhead is how many files are read concurrently ahead of the
	// sequential indexing loop. Values below 1 read one file at a time.
	ReadAhead int

	// AutoInit initializes the store before the first write.
	AutoInit bool
}

// ControllerDependencies are the collaborators of a Controller.
type ControllerDependencies struct {
	// Backend is the index store (required).
	Backend store.Backend

	// Analyzer segments documents (required).
	Analyzer *segment.Analyzer

	// Metrics may be nil.
	Metrics *metrics.Metrics

	// Observer receives directory progress. May be nil.
	Observer Observer
}

// Controller ingests documents and directories into a store.
type Controller struct {
	backend   store.Backend
	analyzer  *segment.Analyzer
	metrics   *metrics.Metrics
	observer  Observer
	commit    string
	readAhead int
	autoInit  bool
}

// NewController creates a Controller.
func NewController(cfg ControllerConfig, deps ControllerDependencies) (*Controller, error) {
	if deps.Backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	if deps.Analyzer == nil {
		return nil, fmt.Errorf("analyzer is required")
	}

	commit := cfg.Commit
	switch commit {
	case "":
		commit = config.CommitBatch
	case config.CommitBatch, config.CommitDocument:
	default:
		return nil, fmt.Errorf("unknown commit mode %q", cfg.Commit)
	}

	observer := deps.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	return &Controller{
		backend:   deps.Backend,
		analyzer:  deps.Analyzer,
		metrics:   deps.Metrics,
		observer:  observer,
		commit:    commit,
		readAhead: max(cfg.ReadAhead, 1),
		autoInit:  cfg.AutoInit,
	}, nil
}

// DirOption configures IngestDirectory.
type DirOption func(*dirOptions)

type dirOptions struct {
	maxDocs    int
	maxDocsSet bool
}

// WithMaxDocs limits the batch to the first n directory entries.
func WithMaxDocs(n int) DirOption {
	return func(o *dirOptions) {
		o.maxDocs = n
		o.maxDocsSet = true
	}
}

// IngestDocument indexes the file at path.
//
// A path that is not a readable UTF-8 file yields StatusNotFound and an
// ErrNotFound error. A path that is already registered yields
// StatusSkipped and no error. Nothing is written in either case.
func (c *Controller) IngestDocument(ctx context.Context, path string) (DocumentResult, error) {
	text, err := readDocument(path)
	if err != nil {
		c.metrics.ObserveDocument(metrics.StatusNotFound, 0, 0, 0)
		return DocumentResult{Path: path, Status: StatusNotFound}, err
	}

	if err := c.ensureInitialized(ctx); err != nil {
		return DocumentResult{Path: path}, err
	}

	tx, err := c.backend.Begin(ctx)
	if err != nil {
		return DocumentResult{Path: path}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := c.index(ctx, tx, path, text)
	if err != nil {
		return res, err
	}
	if res.Status == StatusIndexed {
		if err := c.commitTx(tx); err != nil {
			return res, err
		}
	}
	return res, nil
}

// IngestDirectory indexes the entries of dir in lexical order.
//
// Entries that are missing, unreadable or not regular files are recorded
// in BatchResult.Failures and the batch continues. Already indexed entries
// are skipped. A storage error stops the batch; with batch commits nothing
// of the batch is kept, with per-document commits the documents committed
// so far stay.
func (c *Controller) IngestDirectory(ctx context.Context, dir string, opts ...DirOption) (BatchResult, error) {
	start := time.Now()
	result := BatchResult{Dir: dir}

	var o dirOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxDocsSet && o.maxDocs < 0 {
		return result, sierrors.InvalidArgumentError(fmt.Sprintf("max docs must not be negative, got %d", o.maxDocs), nil)
	}

	paths, err := listDirectory(dir)
	if err != nil {
		return result, err
	}
	if o.maxDocsSet && o.maxDocs < len(paths) {
		paths = paths[:o.maxDocs]
	}
	result.Considered = len(paths)

	if err := c.ensureInitialized(ctx); err != nil {
		return result, err
	}

	slog.Info("ingest_started",
		slog.String("dir", dir),
		slog.Int("entries", len(paths)),
		slog.String("commit", c.commit))
	c.observer.BatchStarted(dir, len(paths))

	err = c.ingestPaths(ctx, paths, &result)
	result.Duration = time.Since(start)
	c.metrics.ObserveBatch(result.Duration)

	if err != nil {
		slog.Error("batch_aborted",
			slog.String("dir", dir),
			slog.Int("committed", result.Committed),
			slog.String("error", err.Error()))
	} else {
		slog.Info("batch_complete",
			slog.String("dir", dir),
			slog.Int("added", result.Added),
			slog.Int("skipped", result.Skipped),
			slog.Int("not_found", result.NotFound),
			slog.Int("new_words", result.NewWords),
			slog.Duration("duration", result.Duration))
	}
	c.observer.BatchFinished(result, err)
	return result, err
}

// loaded is a file read ahead of indexing.
type loaded struct {
	text string
	err  error
}

func (c *Controller) ingestPaths(ctx context.Context, paths []string, result *BatchResult) error {
	var tx store.Tx
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	// pending counts indexed documents in the open transaction.
	pending := 0
	total := len(paths)

	for base := 0; base < total; base += c.readAhead {
		window := paths[base:min(base+c.readAhead, total)]
		files, err := c.readWindow(ctx, window)
		if err != nil {
			return err
		}

		for i, path := range window {
			index := base + i + 1
			c.observer.DocumentStarted(index, total, path)
			slog.Debug("reading_document",
				slog.String("path", path),
				slog.Int("index", index),
				slog.Int("total", total))

			if files[i].err != nil {
				res := DocumentResult{Path: path, Status: StatusNotFound}
				c.metrics.ObserveDocument(metrics.StatusNotFound, 0, 0, 0)
				result.record(res, files[i].err)
				c.observer.DocumentFinished(index, total, res, files[i].err)
				continue
			}

			if tx == nil {
				if tx, err = c.backend.Begin(ctx); err != nil {
					return err
				}
			}

			res, err := c.index(ctx, tx, path, files[i].text)
			if err != nil {
				return err
			}
			result.record(res, nil)
			if res.Status == StatusIndexed {
				pending++
			}

			if c.commit == config.CommitDocument && res.Status == StatusIndexed {
				err := c.commitTx(tx)
				tx = nil
				if err != nil {
					return err
				}
				result.Committed += pending
				pending = 0
			}
			c.observer.DocumentFinished(index, total, res, nil)
		}
	}

	if tx != nil {
		if pending == 0 {
			return nil
		}
		err := c.commitTx(tx)
		tx = nil
		if err != nil {
			return err
		}
		result.Committed += pending
	}
	return nil
}

// readWindow reads the files of one window concurrently. Read failures are
// returned per file; only cancellation fails the window.
func (c *Controller) readWindow(ctx context.Context, paths []string) ([]loaded, error) {
	files := make([]loaded, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.readAhead)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := readDocument(path)
			files[i] = loaded{text: text, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// index records one document inside tx.
func (c *Controller) index(ctx context.Context, tx store.Tx, path, text string) (DocumentResult, error) {
	start := time.Now()
	res := DocumentResult{Path: path}

	existing, found, err := tx.DocumentByPath(ctx, path)
	if err != nil {
		return res, err
	}
	if found {
		res.Doc = existing.ID
		res.Status = StatusSkipped
		c.metrics.ObserveDocument(metrics.StatusSkipped, 0, 0, 0)
		slog.Info("document_skipped", slog.String("path", path), slog.Int("doc_id", int(existing.ID)))
		return res, nil
	}

	doc, err := tx.RegisterDocument(ctx, path)
	if err != nil {
		return res, err
	}
	res.Doc = doc.ID

	prepared := c.analyzer.Prepare(path, text)
	res.Paragraphs = countParagraphs(prepared)

	for seq, sentence := range c.analyzer.Sentences(prepared) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		id := store.SentenceID{Doc: doc.ID, Seq: seq}
		if err := tx.PutSentence(ctx, store.Sentence{ID: id, Text: sentence}); err != nil {
			return res, err
		}
		res.Sentences++

		for term := range c.analyzer.Terms(sentence) {
			isNew, err := tx.AddPosting(ctx, term, id)
			if err != nil {
				return res, err
			}
			if isNew {
				res.NewWords++
			}
		}
	}

	res.Status = StatusIndexed
	res.Duration = time.Since(start)
	c.metrics.ObserveDocument(res.Status.metricLabel(), res.Sentences, res.NewWords, res.Duration)
	slog.Info("document_indexed",
		slog.String("path", path),
		slog.Int("doc_id", int(doc.ID)),
		slog.Int("paragraphs", res.Paragraphs),
		slog.Int("sentences", res.Sentences),
		slog.Int("new_words", res.NewWords))
	return res, nil
}

func (c *Controller) commitTx(tx store.Tx) error {
	err := tx.Commit()
	c.metrics.ObserveCommit(err)
	return err
}

func (c *Controller) ensureInitialized(ctx context.Context) error {
	if !c.autoInit {
		return nil
	}
	_, err := c.backend.Initialize(ctx)
	return err
}

// readDocument returns the contents of a regular UTF-8 file.
func readDocument(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", sierrors.NotFoundError(path, err)
	}
	if !info.Mode().IsRegular() {
		return "", sierrors.NotFoundError(path, fmt.Errorf("%s is not a regular file", path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", sierrors.NotFoundError(path, err)
	}
	if !utf8.Valid(data) {
		return "", sierrors.NotFoundError(path, fmt.Errorf("%s is not valid UTF-8", path))
	}
	return string(data), nil
}

// listDirectory returns the entries of dir joined with dir, sorted by name.
func listDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, sierrors.NotFoundError(dir, err)
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = filepath.Join(dir, e.Name())
	}
	return paths, nil
}

func countParagraphs(text string) int {
	n := 0
	for _, p := range segment.Paragraphs(text) {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}
