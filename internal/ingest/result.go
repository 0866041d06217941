package ingest

import (
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/Aman-CERP/sentindex/internal/metrics"
	"github.com/Aman-CERP/sentindex/internal/store"
)

// Skipped is the count reported for a document that was not indexed.
const Skipped = -1

// Status is the outcome of ingesting one document.
type Status int

const (
	// StatusIndexed means the document was registered and segmented.
	StatusIndexed Status = iota
	// StatusSkipped means the path was already registered.
	StatusSkipped
	// StatusNotFound means the path is not a readable UTF-8 file.
	StatusNotFound
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIndexed:
		return "indexed"
	case StatusSkipped:
		return "skipped"
	case StatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

func (s Status) metricLabel() string {
	switch s {
	case StatusIndexed:
		return metrics.StatusIndexed
	case StatusSkipped:
		return metrics.StatusSkipped
	default:
		return metrics.StatusNotFound
	}
}

// DocumentResult describes one ingested document.
type DocumentResult struct {
	Path   string
	Doc    store.DocID
	Status Status
	// NewWords is the number of word entries this document created.
	NewWords   int
	Sentences  int
	Paragraphs int
	Duration   time.Duration
}

// Count returns NewWords for an indexed document and Skipped otherwise.
func (r DocumentResult) Count() int {
	if r.Status != StatusIndexed {
		return Skipped
	}
	return r.NewWords
}

// BatchResult summarizes a directory ingest.
type BatchResult struct {
	Dir string
	// Considered is the number of directory entries attempted.
	Considered int
	// Added counts documents indexed by this batch.
	Added int
	// Committed counts indexed documents whose transaction committed.
	Committed int
	Skipped   int
	NotFound  int
	NewWords  int
	Documents []DocumentResult
	// Failures aggregates the per-file errors that did not stop the batch.
	Failures *multierror.Error
	Duration time.Duration
}

// Err returns the aggregated per-file failures, or nil.
func (b *BatchResult) Err() error {
	return b.Failures.ErrorOrNil()
}

func (b *BatchResult) record(res DocumentResult, err error) {
	b.Documents = append(b.Documents, res)
	switch res.Status {
	case StatusIndexed:
		b.Added++
		b.NewWords += res.NewWords
	case StatusSkipped:
		b.Skipped++
	case StatusNotFound:
		b.NotFound++
	}
	if err != nil {
		b.Failures = multierror.Append(b.Failures, err)
	}
}
