package store

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sid(doc, seq int) SentenceID { return SentenceID{Doc: DocID(doc), Seq: seq} }

func TestPostingList_ZeroValueIsEmpty(t *testing.T) {
	var pl PostingList
	assert.Equal(t, 0, pl.Len())
	assert.Equal(t, 0, pl.DocumentCount())
	assert.Equal(t, "", pl.String())
	assert.False(t, pl.Contains(sid(1, 1)))
}

func TestPostingList_AddKeepsOrderAndDeduplicates(t *testing.T) {
	// Given: ids added out of order with a duplicate
	var pl PostingList
	assert.True(t, pl.Add(sid(2, 1)))
	assert.True(t, pl.Add(sid(1, 5)))
	assert.True(t, pl.Add(sid(1, 2)))
	assert.False(t, pl.Add(sid(1, 5)), "duplicate is rejected")
	assert.True(t, pl.Add(sid(3, 1)))

	// Then: the list is sorted by document then position
	assert.Equal(t, []SentenceID{sid(1, 2), sid(1, 5), sid(2, 1), sid(3, 1)}, pl.IDs())
	assert.Equal(t, 4, pl.Len())
	assert.Equal(t, "1_2,1_5,2_1,3_1", pl.String())
}

func TestPostingList_DocumentCount(t *testing.T) {
	pl := NewPostingList(sid(1, 1), sid(1, 3), sid(4, 2), sid(7, 1), sid(7, 9))
	assert.Equal(t, 3, pl.DocumentCount())
}

func TestPostingList_Contains(t *testing.T) {
	pl := NewPostingList(sid(1, 1), sid(2, 2))
	assert.True(t, pl.Contains(sid(2, 2)))
	assert.False(t, pl.Contains(sid(2, 1)))
}

func TestPostingList_IDsIsACopy(t *testing.T) {
	pl := NewPostingList(sid(1, 1))
	ids := pl.IDs()
	ids[0] = sid(9, 9)
	assert.Equal(t, sid(1, 1), pl.IDs()[0])
}

func TestPostingList_All(t *testing.T) {
	pl := NewPostingList(sid(2, 1), sid(1, 1))
	assert.Equal(t, []SentenceID{sid(1, 1), sid(2, 1)}, slices.Collect(pl.All()))
}
