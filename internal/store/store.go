package store

import (
	"context"
)

//go:generate mockgen -source=store.go -destination=mock_store/mock_store.go -package=mock_store

// CorpusStore registers documents.
type CorpusStore interface {
	// CountDocuments returns the number of registered documents.
	CountDocuments(ctx context.Context) (int, error)

	// DocumentByPath looks a document up by its path.
	DocumentByPath(ctx context.Context, path string) (Document, bool, error)

	// RegisterDocument stores path under ID CountDocuments()+1.
	// A path that is already registered fails with ErrAlreadyIndexed.
	RegisterDocument(ctx context.Context, path string) (Document, error)

	// Document looks a document up by ID.
	Document(ctx context.Context, id DocID) (Document, bool, error)

	// Documents returns every document ordered by ID.
	Documents(ctx context.Context) ([]Document, error)
}

// SentenceStore holds the literal text of every sentence.
type SentenceStore interface {
	// PutSentence stores a sentence. Sentence IDs are never overwritten.
	PutSentence(ctx context.Context, s Sentence) error

	// Sentence looks a sentence up by ID.
	Sentence(ctx context.Context, id SentenceID) (Sentence, bool, error)

	// Sentences returns the sentences of one document ordered by position.
	Sentences(ctx context.Context, doc DocID) ([]Sentence, error)

	// SentenceIDs returns the id of every stored sentence in order.
	SentenceIDs(ctx context.Context) ([]SentenceID, error)
}

// WordIndex maps words to the sentences containing them.
type WordIndex interface {
	// AddPosting records that word occurs in sentence id and reports
	// whether the word had no entry before.
	AddPosting(ctx context.Context, word string, id SentenceID) (bool, error)

	// Postings returns the sorted posting list of word. An unknown word
	// yields an empty list.
	Postings(ctx context.Context, word string) (PostingList, error)

	// Words calls fn for every word in lexical order.
	Words(ctx context.Context, fn func(word string, postings PostingList) error) error
}

// Tx is a unit of work over all three collections. Nothing written through
// a Tx is visible to other transactions until Commit.
type Tx interface {
	CorpusStore
	SentenceStore
	WordIndex

	// Stats counts what is stored.
	Stats(ctx context.Context) (Stats, error)

	Commit() error
	Rollback() error
}

// Backend owns the persisted index.
type Backend interface {
	// Initialize creates any missing structures and reports whether it
	// created something. It never removes data.
	Initialize(ctx context.Context) (bool, error)

	// Initialized reports whether Initialize has run.
	Initialized(ctx context.Context) (bool, error)

	// Reset empties all collections atomically and reports whether anything
	// was removed. An uninitialized store reports false.
	Reset(ctx context.Context) (bool, error)

	// Begin opens a transaction. It fails with ErrNotInitialized before
	// Initialize has run.
	Begin(ctx context.Context) (Tx, error)

	// Check verifies the physical integrity of the stored data.
	Check(ctx context.Context) error

	// Close releases the backend.
	Close() error
}
