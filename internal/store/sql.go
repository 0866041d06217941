package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	sierrors "github.com/Aman-CERP/sentindex/internal/errors"
)

// SQLConfig configures a SQL backend.
type SQLConfig struct {
	// Driver is one of DriverSQLite, DriverSQLite3, DriverPostgres, DriverMySQL.
	Driver string
	// DSN is the data source. For the SQLite drivers it is a file path and
	// empty means an in-memory database.
	DSN string
	// BusyTimeout is how long SQLite waits on a locked database.
	BusyTimeout time.Duration
	// Retry governs retries of transient busy errors.
	Retry sierrors.RetryConfig
}

// SQLBackend stores the index in three relational tables.
type SQLBackend struct {
	db      *sqlx.DB
	dialect dialect
	retry   sierrors.RetryConfig

	mu          sync.Mutex
	initialized bool
}

var _ Backend = (*SQLBackend)(nil)

// OpenSQL opens a SQL backend. It does not create the schema; call
// Initialize for that.
func OpenSQL(ctx context.Context, cfg SQLConfig) (*SQLBackend, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, sierrors.ConfigError(err.Error(), err)
	}
	if cfg.Retry.MaxRetries == 0 && cfg.Retry.InitialDelay == 0 {
		cfg.Retry = sierrors.DefaultRetryConfig()
	}

	dsn := cfg.DSN
	if d.sqlite {
		if dsn == "" {
			dsn = ":memory:"
		} else if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, sierrors.StorageError(fmt.Sprintf("failed to create directory for %s", dsn), err)
		}
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, sierrors.StorageError("failed to open database", err)
	}

	if d.sqlite {
		// One connection: a single writer, and an in-memory database
		// survives as long as the backend.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)

		busy := cfg.BusyTimeout
		if busy <= 0 {
			busy = 5 * time.Second
		}
		pragmas := []string{
			"PRAGMA journal_mode = WAL",
			fmt.Sprintf("PRAGMA busy_timeout = %d", busy.Milliseconds()),
			"PRAGMA synchronous = NORMAL",
			"PRAGMA temp_store = MEMORY",
		}
		for _, pragma := range pragmas {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				_ = db.Close()
				return nil, classify("failed to set pragma", err)
			}
		}
	} else if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, classify("failed to connect", err)
	}

	slog.Debug("store_opened",
		slog.String("backend", "sql"),
		slog.String("driver", cfg.Driver))

	return &SQLBackend{db: db, dialect: d, retry: cfg.Retry}, nil
}

// Initialize creates the tables that do not exist yet.
func (b *SQLBackend) Initialize(ctx context.Context) (bool, error) {
	tx, err := b.beginTx(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	created := false
	for _, table := range append(slices.Clone(dataTables), "schema_version") {
		exists, err := b.tableExists(ctx, tx, table)
		if err != nil {
			return false, err
		}
		if exists {
			continue
		}
		if _, err := tx.ExecContext(ctx, b.dialect.ddl[table]); err != nil {
			return false, classify("failed to create table "+table, err)
		}
		created = true
	}

	insert := tx.Rebind(b.dialect.insertIgnore("schema_version", "version", "?"))
	if _, err := tx.ExecContext(ctx, insert, schemaVersion); err != nil {
		return false, classify("failed to record schema version", err)
	}

	if err := tx.Commit(); err != nil {
		return false, classify("failed to commit schema", err)
	}

	b.mu.Lock()
	b.initialized = true
	b.mu.Unlock()

	if created {
		slog.Info("store_initialized", slog.String("driver", b.dialect.name))
	}
	return created, nil
}

// Initialized reports whether all data tables exist.
func (b *SQLBackend) Initialized(ctx context.Context) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return true, nil
	}

	for _, table := range dataTables {
		exists, err := b.tableExists(ctx, b.db, table)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, nil
		}
	}
	b.initialized = true
	return true, nil
}

// Reset deletes every row in one transaction. The tables stay.
func (b *SQLBackend) Reset(ctx context.Context) (bool, error) {
	ok, err := b.Initialized(ctx)
	if err != nil || !ok {
		return false, err
	}

	tx, err := b.beginTx(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	t := &sqlTx{tx: tx, dialect: b.dialect}
	stats, err := t.Stats(ctx)
	if err != nil {
		return false, err
	}
	if stats.Empty() {
		return false, nil
	}

	// Postings first so that no posting outlives its sentence mid-way.
	for _, table := range []string{"postings", "sentences", "documents"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return false, classify("failed to clear "+table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, classify("failed to commit reset", err)
	}

	slog.Info("reset_complete",
		slog.Int("documents", stats.Documents),
		slog.Int("sentences", stats.Sentences),
		slog.Int("words", stats.Words))
	return true, nil
}

// Begin opens a transaction over the index.
func (b *SQLBackend) Begin(ctx context.Context) (Tx, error) {
	ok, err := b.Initialized(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, sierrors.NotInitializedError()
	}

	tx, err := b.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &sqlTx{tx: tx, dialect: b.dialect, known: make(map[string]bool)}, nil
}

// Check runs the engine's integrity check where one exists.
func (b *SQLBackend) Check(ctx context.Context) error {
	ok, err := b.Initialized(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return sierrors.NotInitializedError()
	}

	if b.dialect.sqlite {
		var results []string
		if err := b.db.SelectContext(ctx, &results, "PRAGMA integrity_check"); err != nil {
			return classify("integrity check failed", err)
		}
		if len(results) != 1 || results[0] != "ok" {
			return sierrors.CorruptError("database integrity check failed: "+strings.Join(results, "; "), nil)
		}
		return nil
	}

	for _, table := range dataTables {
		var n int
		if err := b.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
			return classify("failed to read "+table, err)
		}
	}
	return nil
}

// Close closes the database handle.
func (b *SQLBackend) Close() error {
	return b.db.Close()
}

func (b *SQLBackend) beginTx(ctx context.Context) (*sqlx.Tx, error) {
	var tx *sqlx.Tx
	err := sierrors.Retry(ctx, b.retry, func() error {
		var err error
		tx, err = b.db.BeginTxx(ctx, nil)
		return classify("failed to begin transaction", err)
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (b *SQLBackend) tableExists(ctx context.Context, q sqlx.QueryerContext, table string) (bool, error) {
	var n int
	if err := sqlx.GetContext(ctx, q, &n, sqlx.Rebind(sqlx.BindType(b.dialect.name), b.dialect.tableExists), table); err != nil {
		return false, classify("failed to inspect schema", err)
	}
	return n > 0, nil
}

// classify converts a driver error into an IndexError.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := sierrors.As(err); ok {
		return err
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "sqlite_busy"),
		strings.Contains(msg, "database table is locked"):
		return sierrors.New(sierrors.ErrCodeStoreBusy, op+": store busy", err)
	case strings.Contains(msg, "file is not a database"),
		strings.Contains(msg, "malformed"):
		return sierrors.CorruptError(op+": "+err.Error(), err)
	}
	return sierrors.StorageError(op+": "+err.Error(), err)
}

// sqlTx implements Tx on a database transaction.
type sqlTx struct {
	tx      *sqlx.Tx
	dialect dialect
	// known caches words confirmed to have an entry.
	known map[string]bool
}

func (t *sqlTx) CountDocuments(ctx context.Context) (int, error) {
	var n int
	if err := t.tx.GetContext(ctx, &n, "SELECT COUNT(*) FROM documents"); err != nil {
		return 0, classify("failed to count documents", err)
	}
	return n, nil
}

func (t *sqlTx) DocumentByPath(ctx context.Context, path string) (Document, bool, error) {
	var doc Document
	err := t.tx.GetContext(ctx, &doc, t.tx.Rebind("SELECT id, path FROM documents WHERE path = ?"), path)
	return lookup(doc, err, "failed to look up document")
}

func (t *sqlTx) RegisterDocument(ctx context.Context, path string) (Document, error) {
	if _, found, err := t.DocumentByPath(ctx, path); err != nil {
		return Document{}, err
	} else if found {
		return Document{}, alreadyIndexed(path)
	}

	n, err := t.CountDocuments(ctx)
	if err != nil {
		return Document{}, err
	}
	doc := Document{ID: DocID(n + 1), Path: path}
	if _, err := t.tx.ExecContext(ctx, t.tx.Rebind("INSERT INTO documents (id, path) VALUES (?, ?)"), doc.ID, doc.Path); err != nil {
		return Document{}, classify("failed to register document", err)
	}
	return doc, nil
}

func (t *sqlTx) Document(ctx context.Context, id DocID) (Document, bool, error) {
	var doc Document
	err := t.tx.GetContext(ctx, &doc, t.tx.Rebind("SELECT id, path FROM documents WHERE id = ?"), id)
	return lookup(doc, err, "failed to look up document")
}

func (t *sqlTx) Documents(ctx context.Context) ([]Document, error) {
	var docs []Document
	if err := t.tx.SelectContext(ctx, &docs, "SELECT id, path FROM documents ORDER BY id"); err != nil {
		return nil, classify("failed to list documents", err)
	}
	return docs, nil
}

func (t *sqlTx) PutSentence(ctx context.Context, s Sentence) error {
	_, err := t.tx.ExecContext(ctx, t.tx.Rebind("INSERT INTO sentences (doc_id, seq, text) VALUES (?, ?, ?)"),
		s.ID.Doc, s.ID.Seq, s.Text)
	return classify("failed to store sentence "+s.ID.String(), err)
}

func (t *sqlTx) Sentence(ctx context.Context, id SentenceID) (Sentence, bool, error) {
	var text string
	err := t.tx.GetContext(ctx, &text, t.tx.Rebind("SELECT text FROM sentences WHERE doc_id = ? AND seq = ?"), id.Doc, id.Seq)
	if stderrors.Is(err, sql.ErrNoRows) {
		return Sentence{}, false, nil
	}
	if err != nil {
		return Sentence{}, false, classify("failed to look up sentence "+id.String(), err)
	}
	return Sentence{ID: id, Text: text}, true, nil
}

type sentenceRow struct {
	Seq  int    `db:"seq"`
	Text string `db:"text"`
}

func (t *sqlTx) Sentences(ctx context.Context, doc DocID) ([]Sentence, error) {
	var rows []sentenceRow
	if err := t.tx.SelectContext(ctx, &rows, t.tx.Rebind("SELECT seq, text FROM sentences WHERE doc_id = ? ORDER BY seq"), doc); err != nil {
		return nil, classify("failed to list sentences", err)
	}
	out := make([]Sentence, len(rows))
	for i, r := range rows {
		out[i] = Sentence{ID: SentenceID{Doc: doc, Seq: r.Seq}, Text: r.Text}
	}
	return out, nil
}

type sentenceKey struct {
	Doc int `db:"doc_id"`
	Seq int `db:"seq"`
}

func (t *sqlTx) SentenceIDs(ctx context.Context) ([]SentenceID, error) {
	var rows []sentenceKey
	if err := t.tx.SelectContext(ctx, &rows, "SELECT doc_id, seq FROM sentences ORDER BY doc_id, seq"); err != nil {
		return nil, classify("failed to list sentences", err)
	}
	ids := make([]SentenceID, len(rows))
	for i, r := range rows {
		ids[i] = SentenceID{Doc: DocID(r.Doc), Seq: r.Seq}
	}
	return ids, nil
}

func (t *sqlTx) AddPosting(ctx context.Context, word string, id SentenceID) (bool, error) {
	isNew := false
	if !t.known[word] {
		var n int
		if err := t.tx.GetContext(ctx, &n, t.tx.Rebind("SELECT COUNT(*) FROM postings WHERE word = ?"), word); err != nil {
			return false, classify("failed to look up word", err)
		}
		isNew = n == 0
		t.known[word] = true
	}

	insert := t.tx.Rebind(t.dialect.insertIgnore("postings", "word, doc_id, seq", "?, ?, ?"))
	if _, err := t.tx.ExecContext(ctx, insert, word, id.Doc, id.Seq); err != nil {
		return false, classify("failed to add posting", err)
	}
	return isNew, nil
}

type postingRow struct {
	Word string `db:"word"`
	Doc  int    `db:"doc_id"`
	Seq  int    `db:"seq"`
}

func (t *sqlTx) Postings(ctx context.Context, word string) (PostingList, error) {
	var rows []postingRow
	query := t.tx.Rebind("SELECT word, doc_id, seq FROM postings WHERE word = ? ORDER BY doc_id, seq")
	if err := t.tx.SelectContext(ctx, &rows, query, word); err != nil {
		return PostingList{}, classify("failed to read postings", err)
	}
	var pl PostingList
	for _, r := range rows {
		pl.Add(SentenceID{Doc: DocID(r.Doc), Seq: r.Seq})
	}
	return pl, nil
}

func (t *sqlTx) Words(ctx context.Context, fn func(string, PostingList) error) error {
	// Rows are read in full before fn runs; some drivers cannot issue a
	// query while another result set is open on the same transaction.
	var rows []postingRow
	if err := t.tx.SelectContext(ctx, &rows, "SELECT word, doc_id, seq FROM postings ORDER BY word, doc_id, seq"); err != nil {
		return classify("failed to read postings", err)
	}

	for i := 0; i < len(rows); {
		word := rows[i].Word
		var pl PostingList
		for ; i < len(rows) && rows[i].Word == word; i++ {
			pl.Add(SentenceID{Doc: DocID(rows[i].Doc), Seq: rows[i].Seq})
		}
		if err := fn(word, pl); err != nil {
			return err
		}
	}
	return nil
}

func (t *sqlTx) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	counts := []struct {
		dest  *int
		query string
	}{
		{&s.Documents, "SELECT COUNT(*) FROM documents"},
		{&s.Sentences, "SELECT COUNT(*) FROM sentences"},
		{&s.Words, "SELECT COUNT(DISTINCT word) FROM postings"},
		{&s.Postings, "SELECT COUNT(*) FROM postings"},
	}
	for _, c := range counts {
		if err := t.tx.GetContext(ctx, c.dest, c.query); err != nil {
			return Stats{}, classify("failed to count rows", err)
		}
	}
	return s, nil
}

func (t *sqlTx) Commit() error {
	return classify("failed to commit", t.tx.Commit())
}

func (t *sqlTx) Rollback() error {
	err := t.tx.Rollback()
	if stderrors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return classify("failed to roll back", err)
}

func lookup(doc Document, err error, op string) (Document, bool, error) {
	if stderrors.Is(err, sql.ErrNoRows) {
		return Document{}, false, nil
	}
	if err != nil {
		return Document{}, false, classify(op, err)
	}
	return doc, true, nil
}

func alreadyIndexed(path string) error {
	return sierrors.New(sierrors.ErrCodeAlreadyIndexed, fmt.Sprintf("document %s already indexed", path), nil).
		WithDetail("path", path)
}
