// Package index verifies the logical consistency of a stored index.
package index

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Aman-CERP/sentindex/internal/store"
)

// InconsistencyType categorizes detected issues.
type InconsistencyType int

const (
	// InconsistencyDanglingPosting is a posting whose sentence does not exist.
	InconsistencyDanglingPosting InconsistencyType = iota
	// InconsistencyOrphanSentence is a sentence whose document does not exist.
	InconsistencyOrphanSentence
	// InconsistencyDuplicatePath is a path registered under two documents.
	InconsistencyDuplicatePath
	// InconsistencySequenceGap is a document whose sentence positions are
	// not exactly 1..n.
	InconsistencySequenceGap
	// InconsistencyDocumentID is a document whose id breaks the dense 1..n
	// numbering.
	InconsistencyDocumentID
)

// String returns a short name for the inconsistency type.
func (t InconsistencyType) String() string {
	switch t {
	case InconsistencyDanglingPosting:
		return "dangling_posting"
	case InconsistencyOrphanSentence:
		return "orphan_sentence"
	case InconsistencyDuplicatePath:
		return "duplicate_path"
	case InconsistencySequenceGap:
		return "sequence_gap"
	case InconsistencyDocumentID:
		return "document_id"
	default:
		return "unknown"
	}
}

// Inconsistency is one detected issue.
type Inconsistency struct {
	Type InconsistencyType `json:"-"`
	Kind string            `json:"type"`
	// Subject names the offending item: a word, sentence id, path or
	// document id.
	Subject string `json:"subject"`
	Details string `json:"details"`
}

// CheckResult contains the outcome of a consistency check.
type CheckResult struct {
	Documents       int             `json:"documents"`
	Sentences       int             `json:"sentences"`
	Words           int             `json:"words"`
	Postings        int             `json:"postings"`
	Inconsistencies []Inconsistency `json:"inconsistencies"`
	Duration        time.Duration   `json:"duration_ns"`
}

// OK reports whether no issue was found.
func (r *CheckResult) OK() bool { return len(r.Inconsistencies) == 0 }

// ConsistencyChecker validates the relations between documents, sentences
// and postings:
//
//   - every posting references an existing sentence
//   - every sentence references an existing document
//   - document paths are pairwise distinct
//   - the sentence positions of a document are exactly 1..n
type ConsistencyChecker struct {
	backend store.Backend
}

// NewConsistencyChecker creates a checker over backend.
func NewConsistencyChecker(backend store.Backend) *ConsistencyChecker {
	return &ConsistencyChecker{backend: backend}
}

// Check verifies the physical integrity of the store, then scans all three
// collections. A storage failure is returned as an error; logical issues
// are returned in the result.
func (c *ConsistencyChecker) Check(ctx context.Context) (*CheckResult, error) {
	start := time.Now()

	if err := c.backend.Check(ctx); err != nil {
		return nil, err
	}

	tx, err := c.backend.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var issues []Inconsistency
	report := func(t InconsistencyType, subject, details string) {
		issues = append(issues, Inconsistency{Type: t, Kind: t.String(), Subject: subject, Details: details})
	}

	docs, err := tx.Documents(ctx)
	if err != nil {
		return nil, err
	}
	docIDs := make(map[store.DocID]bool, len(docs))
	paths := make(map[string]store.DocID, len(docs))
	for i, doc := range docs {
		docIDs[doc.ID] = true
		if doc.ID != store.DocID(i+1) {
			report(InconsistencyDocumentID, fmt.Sprint(doc.ID),
				fmt.Sprintf("document at position %d has id %d", i+1, doc.ID))
		}
		if first, ok := paths[doc.Path]; ok {
			report(InconsistencyDuplicatePath, doc.Path,
				fmt.Sprintf("registered as documents %d and %d", first, doc.ID))
			continue
		}
		paths[doc.Path] = doc.ID
	}

	ids, err := tx.SentenceIDs(ctx)
	if err != nil {
		return nil, err
	}
	sentences := make(map[store.SentenceID]bool, len(ids))
	var (
		curDoc  store.DocID
		nextSeq int
		gapped  bool
	)
	for _, id := range ids {
		sentences[id] = true
		if !docIDs[id.Doc] {
			report(InconsistencyOrphanSentence, id.String(),
				fmt.Sprintf("document %d does not exist", id.Doc))
		}
		// ids arrive ordered by document, then position.
		if id.Doc != curDoc {
			curDoc, nextSeq, gapped = id.Doc, 1, false
		}
		if id.Seq != nextSeq && !gapped {
			report(InconsistencySequenceGap, fmt.Sprint(id.Doc),
				fmt.Sprintf("expected sentence %d, found %s", nextSeq, id))
			gapped = true
		}
		nextSeq = id.Seq + 1
	}

	result := &CheckResult{Documents: len(docs), Sentences: len(ids)}
	err = tx.Words(ctx, func(word string, pl store.PostingList) error {
		result.Words++
		result.Postings += pl.Len()
		for id := range pl.All() {
			if !sentences[id] {
				report(InconsistencyDanglingPosting, word,
					fmt.Sprintf("posting %s references a missing sentence", id))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Inconsistencies = issues
	result.Duration = time.Since(start)

	if len(issues) > 0 {
		slog.Warn("consistency_check_failed",
			slog.Int("issues", len(issues)),
			slog.Int("documents", result.Documents),
			slog.Int("sentences", result.Sentences))
	} else {
		slog.Info("consistency_check_passed",
			slog.Int("documents", result.Documents),
			slog.Int("sentences", result.Sentences),
			slog.Int("words", result.Words))
	}
	return result, nil
}
