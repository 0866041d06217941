package store

import (
	"iter"
	"slices"
	"strings"
)

// PostingList is the set of sentences a word occurs in, kept sorted by
// document then position. The zero value is an empty list.
type PostingList struct {
	ids []SentenceID
}

// NewPostingList builds a list from ids in any order; duplicates collapse.
func NewPostingList(ids ...SentenceID) PostingList {
	var pl PostingList
	for _, id := range ids {
		pl.Add(id)
	}
	return pl
}

// Add inserts id and reports whether it was not already present.
func (pl *PostingList) Add(id SentenceID) bool {
	// Ingestion appends in increasing order, so check the tail first.
	if n := len(pl.ids); n == 0 || pl.ids[n-1].Compare(id) < 0 {
		pl.ids = append(pl.ids, id)
		return true
	}
	i, found := slices.BinarySearchFunc(pl.ids, id, SentenceID.Compare)
	if found {
		return false
	}
	pl.ids = slices.Insert(pl.ids, i, id)
	return true
}

// Contains reports whether id is in the list.
func (pl PostingList) Contains(id SentenceID) bool {
	_, found := slices.BinarySearchFunc(pl.ids, id, SentenceID.Compare)
	return found
}

// Len returns the number of sentences.
func (pl PostingList) Len() int { return len(pl.ids) }

// IDs returns a copy of the sorted ids.
func (pl PostingList) IDs() []SentenceID { return slices.Clone(pl.ids) }

// All yields the ids in order.
func (pl PostingList) All() iter.Seq[SentenceID] { return slices.Values(pl.ids) }

// DocumentCount returns the number of distinct documents.
func (pl PostingList) DocumentCount() int {
	n := 0
	var last DocID
	for _, id := range pl.ids {
		if id.Doc != last {
			n++
			last = id.Doc
		}
	}
	return n
}

// String renders the ids comma separated, e.g. "1_2,1_5,3_1".
func (pl PostingList) String() string {
	parts := make([]string, len(pl.ids))
	for i, id := range pl.ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}
