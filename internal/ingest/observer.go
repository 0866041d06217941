package ingest

// Observer receives progress while a directory is ingested. Calls arrive
// from the ingesting goroutine in document order.
type Observer interface {
	// BatchStarted reports how many entries will be attempted.
	BatchStarted(dir string, total int)
	// DocumentStarted is called before a document is processed. index is
	// 1-based.
	DocumentStarted(index, total int, path string)
	// DocumentFinished is called with the outcome of the document. err is
	// non-nil for not found entries.
	DocumentFinished(index, total int, result DocumentResult, err error)
	// BatchFinished is called once with the summary, also after an abort.
	BatchFinished(result BatchResult, err error)
}

type nopObserver struct{}

func (nopObserver) BatchStarted(string, int) {}
func (nopObserver) DocumentStarted(int, int, string) {}
func (nopObserver) DocumentFinished(int, int, DocumentResult, error) {}
func (nopObserver) BatchFinished(BatchResult, error) {}
