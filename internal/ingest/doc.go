// Package ingest turns files into index entries.
//
// A Controller reads a document, segments it into sentences and words, and
// records the document, its sentences and the word postings through one
// store transaction. Directories are ingested best effort: files that are
// missing or already indexed are reported and skipped, while a storage
// failure aborts the batch and rolls back what was not yet committed.
package ingest
