package segment

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_SplitsOnNonWordRunes(t *testing.T) {
	// Given: a sentence with punctuation, digits, underscores and accents
	tok := NewTokenizer(DefaultStopwords(), DefaultMinTokenLength)

	// When: tokenizing without filters
	got := slices.Collect(tok.Tokenize("Hello, world! It's 2024_x café."))

	// Then: maximal runs of letters, digits and underscore
	want := []string{"Hello", "world", "It", "s", "2024_x", "café"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
	}
}

func TestTerms_Filters(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "stopwords dropped",
			input:  "the government of the people",
			expect: []string{"government", "people"},
		},
		{
			name:   "stopwords are case-sensitive",
			input:  "The end",
			expect: []string{"The", "end"},
		},
		{
			name:   "single characters dropped",
			input:  "a I x yy",
			expect: []string{"yy"},
		},
		{
			name:   "contraction fragments dropped",
			input:  "It's done",
			expect: []string{"It", "done"},
		},
		{
			name:   "duplicates kept in order",
			input:  "data and data",
			expect: []string{"data", "data"},
		},
		{
			name:   "nothing qualifies",
			input:  "... , !",
			expect: nil,
		},
	}

	tok := NewTokenizer(DefaultStopwords(), DefaultMinTokenLength)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(tok.Terms(tt.input))
			if diff := cmp.Diff(tt.expect, got); diff != "" {
				t.Errorf("Terms(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTerms_MinLengthCountsRunes(t *testing.T) {
	tok := NewTokenizer(DefaultStopwords(), 4)

	got := slices.Collect(tok.Terms("cat house éèêë"))

	assert.Equal(t, []string{"house", "éèêë"}, got)
}

func TestDefaultStopwords_EnglishList(t *testing.T) {
	sw := DefaultStopwords()

	assert.Len(t, sw, 179)
	assert.True(t, sw["the"])
	assert.True(t, sw["don't"])
	assert.False(t, sw["The"])
	assert.False(t, sw["government"])
}

func TestLoadStopwords_CustomFile(t *testing.T) {
	// Given: a replacement list with a comment line
	path := filepath.Join(t.TempDir(), "stop.txt")
	require.NoError(t, os.WriteFile(path, []byte("# pets\ncat\ndog\n"), 0o644))

	// When: building a tokenizer from it
	sw, err := LoadStopwords(path)
	require.NoError(t, err)
	tok := NewTokenizer(sw, DefaultMinTokenLength)

	// Then: only the custom words are filtered
	assert.Len(t, sw, 2)
	assert.Equal(t, []string{"the", "bird"}, slices.Collect(tok.Terms("the cat dog bird")))
}

func TestLoadStopwords_EmptyPathUsesEmbedded(t *testing.T) {
	sw, err := LoadStopwords("")

	require.NoError(t, err)
	assert.Len(t, sw, 179)
}

func TestLoadStopwords_MissingFile(t *testing.T) {
	_, err := LoadStopwords(filepath.Join(t.TempDir(), "missing.txt"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read stopwords file")
}
