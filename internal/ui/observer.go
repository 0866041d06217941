package ui

import (
	"fmt"
	"path/filepath"

	sierrors "github.com/Aman-CERP/sentindex/internal/errors"
	"github.com/Aman-CERP/sentindex/internal/ingest"
)

// IngestObserver forwards ingest progress to a Renderer.
type IngestObserver struct {
	r Renderer
}

// NewIngestObserver returns an observer that drives r.
func NewIngestObserver(r Renderer) *IngestObserver {
	return &IngestObserver{r: r}
}

// BatchStarted implements ingest.Observer.
func (o *IngestObserver) BatchStarted(dir string, total int) {
	o.r.UpdateProgress(ProgressEvent{Stage: StageReading, Total: total})
}

// DocumentStarted implements ingest.Observer.
func (o *IngestObserver) DocumentStarted(index, total int, path string) {
	o.r.UpdateProgress(ProgressEvent{
		Stage:       StageReading,
		Current:     index - 1,
		Total:       total,
		CurrentFile: path,
		Message: fmt.Sprintf("Reading doc %s in %s (%d of %d)",
			filepath.Base(path), filepath.Dir(path), index, total),
	})
}

// DocumentFinished implements ingest.Observer.
func (o *IngestObserver) DocumentFinished(index, total int, res ingest.DocumentResult, err error) {
	event := ProgressEvent{
		Stage:       StageIndexing,
		Current:     index,
		Total:       total,
		CurrentFile: res.Path,
	}

	switch res.Status {
	case ingest.StatusIndexed:
		event.Message = fmt.Sprintf("Found %d paragraphs\nAdded %d new words", res.Paragraphs, res.NewWords)
		event.Sentences = res.Sentences
		event.NewWords = res.NewWords
	case ingest.StatusSkipped:
		event.Message = fmt.Sprintf("Doc %s skipped, already added", res.Path)
	case ingest.StatusNotFound:
		if err == nil {
			err = sierrors.NotFoundError(res.Path, nil)
		}
		o.r.AddError(ErrorEvent{File: res.Path, Err: err, IsWarn: true})
		event.Message = ""
		event.CurrentFile = ""
	}

	o.r.UpdateProgress(event)
}

// BatchFinished implements ingest.Observer.
func (o *IngestObserver) BatchFinished(res ingest.BatchResult, err error) {
	stats := CompletionStats{
		Documents: res.Added,
		Skipped:   res.Skipped,
		NewWords:  res.NewWords,
		Duration:  res.Duration,
		Warnings:  res.NotFound,
	}
	for _, doc := range res.Documents {
		if doc.Status == ingest.StatusIndexed {
			stats.Sentences += doc.Sentences
		}
	}
	if err != nil {
		stats.Errors = 1
		o.r.AddError(ErrorEvent{File: res.Dir, Err: err})
	}
	o.r.Complete(stats)
}

var _ ingest.Observer = (*IngestObserver)(nil)
