package segment

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkupFilter_StripsTagsAndEntities(t *testing.T) {
	f := NewMarkupFilter()

	got := string(f.Filter([]byte("<p>Fish &amp; chips <b>today</b>.</p>")))

	assert.Equal(t, "Fish & chips today.", got)
}

func TestAnalyzer_PrepareOnlyForMarkupExtensions(t *testing.T) {
	// Given: markup stripping enabled for .html
	a, err := NewAnalyzer(Options{StripMarkup: true, MarkupExtensions: []string{".html"}})
	require.NoError(t, err)
	raw := "<em>Bold</em> claim."

	// Then: .html is cleaned, .txt is left alone, extensions match case-insensitively
	assert.Equal(t, "Bold claim.", a.Prepare("page.html", raw))
	assert.Equal(t, "Bold claim.", a.Prepare("PAGE.HTML", raw))
	assert.Equal(t, raw, a.Prepare("notes.txt", raw))
}

func TestAnalyzer_PrepareDisabled(t *testing.T) {
	a, err := NewAnalyzer(Options{MarkupExtensions: []string{".html"}})
	require.NoError(t, err)

	raw := "<em>Bold</em> claim."
	assert.Equal(t, raw, a.Prepare("page.html", raw))
}

func TestAnalyzer_EndToEnd(t *testing.T) {
	// Given: the default pipeline
	a, err := NewAnalyzer(Options{})
	require.NoError(t, err)

	// When: splitting a two-paragraph document
	var sents []string
	for _, s := range a.Sentences("Dr. Who travels. The government acts.\nPeople vote.") {
		sents = append(sents, s)
	}

	// Then: sentences and terms come out as expected
	assert.Equal(t, []string{"Dr. Who travels.", "The government acts.", "People vote."}, sents)
	assert.Equal(t, []string{"Dr", "Who", "travels"}, slices.Collect(a.Terms(sents[0])))
	assert.NotNil(t, a.Segmenter())
	assert.NotNil(t, a.Tokenizer())
}

func TestNewAnalyzer_BadStopwordsFile(t *testing.T) {
	_, err := NewAnalyzer(Options{StopwordsFile: "/nonexistent/stopwords.txt"})

	require.Error(t, err)
}
