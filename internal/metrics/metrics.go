// Package metrics defines the Prometheus collectors recorded by ingestion
// and queries. A command runs once and exits, so metrics are exported by
// writing a node_exporter textfile rather than serving a scrape endpoint.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sentindex"

// Document outcome labels.
const (
	StatusIndexed  = "indexed"
	StatusSkipped  = "skipped"
	StatusNotFound = "not_found"
	StatusFailed   = "failed"
)

// Query outcome labels.
const (
	QueryHit   = "hit"
	QueryMiss  = "miss"
	QueryError = "error"
)

// Metrics holds the collectors of one invocation. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsTotal      *prometheus.CounterVec
	SentencesTotal      prometheus.Counter
	NewWordsTotal       prometheus.Counter
	DocumentDuration    prometheus.Histogram
	BatchDuration       prometheus.Histogram
	CommitsTotal        *prometheus.CounterVec
	QueriesTotal        *prometheus.CounterVec
	QueryLatency        prometheus.Histogram
	QueryResultsCount   prometheus.Histogram
	DocCacheHitsTotal   prometheus.Counter
	DocCacheMissesTotal prometheus.Counter
	StoreDocuments      prometheus.Gauge
	StoreSentences      prometheus.Gauge
	StoreWords          prometheus.Gauge
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		DocumentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_total",
				Help:      "Documents processed by outcome (indexed, skipped, not_found, failed).",
			},
			[]string{"status"},
		),
		SentencesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sentences_indexed_total",
				Help:      "Sentences stored by ingestion.",
			},
		),
		NewWordsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "new_words_total",
				Help:      "Word entries created by ingestion.",
			},
		),
		DocumentDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "document_ingest_seconds",
				Help:      "Time to segment and index one document.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
		),
		BatchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "batch_ingest_seconds",
				Help:      "Time to ingest one directory.",
				Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
			},
		),
		CommitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commits_total",
				Help:      "Store commits by status (ok, error).",
			},
			[]string{"status"},
		),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queries_total",
				Help:      "Word queries by result type (hit, miss, error).",
			},
			[]string{"result_type"},
		),
		QueryLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_latency_seconds",
				Help:      "Word query latency in seconds.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		QueryResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_results_count",
				Help:      "Sentences returned per word query.",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 500},
			},
		),
		DocCacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "doc_cache_hits_total",
				Help:      "Document path lookups served from the cache.",
			},
		),
		DocCacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "doc_cache_misses_total",
				Help:      "Document path lookups that hit the store.",
			},
		),
		StoreDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "store_documents",
				Help:      "Documents in the index.",
			},
		),
		StoreSentences: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "store_sentences",
				Help:      "Sentences in the index.",
			},
		),
		StoreWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "store_words",
				Help:      "Distinct words in the index.",
			},
		),
	}

	m.registry.MustRegister(
		m.DocumentsTotal,
		m.SentencesTotal,
		m.NewWordsTotal,
		m.DocumentDuration,
		m.BatchDuration,
		m.CommitsTotal,
		m.QueriesTotal,
		m.QueryLatency,
		m.QueryResultsCount,
		m.DocCacheHitsTotal,
		m.DocCacheMissesTotal,
		m.StoreDocuments,
		m.StoreSentences,
		m.StoreWords,
	)

	return m
}

// Registry exposes the registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveDocument records the outcome of one document.
func (m *Metrics) ObserveDocument(status string, sentences, newWords int, d time.Duration) {
	if m == nil {
		return
	}
	m.DocumentsTotal.WithLabelValues(status).Inc()
	if status != StatusIndexed {
		return
	}
	m.SentencesTotal.Add(float64(sentences))
	m.NewWordsTotal.Add(float64(newWords))
	m.DocumentDuration.Observe(d.Seconds())
}

// ObserveBatch records the duration of a directory ingest.
func (m *Metrics) ObserveBatch(d time.Duration) {
	if m == nil {
		return
	}
	m.BatchDuration.Observe(d.Seconds())
}

// ObserveCommit counts a commit attempt.
func (m *Metrics) ObserveCommit(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.CommitsTotal.WithLabelValues(status).Inc()
}

// ObserveQuery records a word query.
func (m *Metrics) ObserveQuery(resultType string, sentences int, d time.Duration) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(resultType).Inc()
	m.QueryLatency.Observe(d.Seconds())
	if resultType != QueryError {
		m.QueryResultsCount.Observe(float64(sentences))
	}
}

// ObserveDocCache counts one document path lookup.
func (m *Metrics) ObserveDocCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.DocCacheHitsTotal.Inc()
	} else {
		m.DocCacheMissesTotal.Inc()
	}
}

// SetStoreSize records the size of the index.
func (m *Metrics) SetStoreSize(documents, sentences, words int) {
	if m == nil {
		return
	}
	m.StoreDocuments.Set(float64(documents))
	m.StoreSentences.Set(float64(sentences))
	m.StoreWords.Set(float64(words))
}

// WriteTextfile writes every collector in the Prometheus text format to
// path, atomically. An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
