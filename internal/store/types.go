// Package store persists the corpus, its sentences and the word index.
//
// A Backend opens transactions (Tx) that expose the three collections
// together, so a document and everything derived from it is committed or
// rolled back as a unit. Two backends exist: SQL over database/sql (SQLite,
// PostgreSQL, MySQL) and a single-file snapshot.
package store

import (
	"fmt"
	"strconv"
	"strings"
)

// DocID identifies a document. IDs are dense and start at 1.
type DocID int

// Document is a registered source file.
type Document struct {
	ID   DocID  `db:"id"`
	Path string `db:"path"`
}

// SentenceID locates a sentence: its document and its 1-based position
// within that document.
type SentenceID struct {
	Doc DocID
	Seq int
}

// String returns the external form "{doc}_{seq}".
func (id SentenceID) String() string {
	return strconv.Itoa(int(id.Doc)) + "_" + strconv.Itoa(id.Seq)
}

// Compare orders ids by document, then position.
func (id SentenceID) Compare(other SentenceID) int {
	switch {
	case id.Doc < other.Doc:
		return -1
	case id.Doc > other.Doc:
		return 1
	case id.Seq < other.Seq:
		return -1
	case id.Seq > other.Seq:
		return 1
	}
	return 0
}

// ParseSentenceID parses the "{doc}_{seq}" form.
func ParseSentenceID(s string) (SentenceID, error) {
	docPart, seqPart, ok := strings.Cut(s, "_")
	if !ok {
		return SentenceID{}, fmt.Errorf("invalid sentence id %q: missing separator", s)
	}
	doc, err := strconv.Atoi(docPart)
	if err != nil || doc < 1 {
		return SentenceID{}, fmt.Errorf("invalid sentence id %q: bad document part", s)
	}
	seq, err := strconv.Atoi(seqPart)
	if err != nil || seq < 1 {
		return SentenceID{}, fmt.Errorf("invalid sentence id %q: bad sequence part", s)
	}
	return SentenceID{Doc: DocID(doc), Seq: seq}, nil
}

// Sentence is the literal text of one sentence.
type Sentence struct {
	ID   SentenceID
	Text string
}

// Stats summarizes the size of the index.
type Stats struct {
	Documents int `json:"documents"`
	Sentences int `json:"sentences"`
	Words     int `json:"words"`
	Postings  int `json:"postings"`
}

// Empty reports whether nothing is stored.
func (s Stats) Empty() bool {
	return s.Documents == 0 && s.Sentences == 0 && s.Words == 0 && s.Postings == 0
}
