package segment

import (
	"fmt"
	"iter"
	"os"
	"regexp"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/token/length"
	"github.com/blevesearch/bleve/v2/analysis/token/stop"
	regexptokenizer "github.com/blevesearch/bleve/v2/analysis/tokenizer/regexp"

	"github.com/Aman-CERP/sentindex/configs"
)

// DefaultMinTokenLength drops single-character words.
const DefaultMinTokenLength = 2

// wordRE matches maximal runs of letters, digits and underscore.
var wordRE = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenizer extracts index terms from sentences.
type Tokenizer struct {
	tokenizer analysis.Tokenizer
	analyzer  *analysis.DefaultAnalyzer
}

// NewTokenizer builds the term pipeline. Tokens in stopwords (exact,
// case-sensitive match) and tokens shorter than minLength runes are
// dropped by Terms.
func NewTokenizer(stopwords analysis.TokenMap, minLength int) *Tokenizer {
	if minLength < 1 {
		minLength = DefaultMinTokenLength
	}
	tok := regexptokenizer.NewRegexpTokenizer(wordRE)
	return &Tokenizer{
		tokenizer: tok,
		analyzer: &analysis.DefaultAnalyzer{
			Tokenizer: tok,
			TokenFilters: []analysis.TokenFilter{
				stop.NewStopTokensFilter(stopwords),
				length.NewLengthFilter(minLength, 0),
			},
		},
	}
}

// Tokenize yields every word of sentence in order, unfiltered.
func (t *Tokenizer) Tokenize(sentence string) iter.Seq[string] {
	return yieldTerms(t.tokenizer.Tokenize([]byte(sentence)))
}

// Terms yields the words of sentence that qualify for indexing, in order.
// A word occurring twice is yielded twice.
func (t *Tokenizer) Terms(sentence string) iter.Seq[string] {
	return yieldTerms(t.analyzer.Analyze([]byte(sentence)))
}

func yieldTerms(stream analysis.TokenStream) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, tok := range stream {
			if !yield(string(tok.Term)) {
				return
			}
		}
	}
}

// DefaultStopwords returns the embedded English stopword list.
func DefaultStopwords() analysis.TokenMap {
	tm := analysis.NewTokenMap()
	// The embedded list is known to parse.
	_ = tm.LoadBytes(configs.StopwordsEnglish)
	return tm
}

// LoadStopwords reads a stopword file (one word per line, # comments).
// An empty path returns the embedded list.
func LoadStopwords(path string) (analysis.TokenMap, error) {
	if path == "" {
		return DefaultStopwords(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stopwords file %s: %w", path, err)
	}
	tm := analysis.NewTokenMap()
	if err := tm.LoadBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse stopwords file %s: %w", path, err)
	}
	return tm, nil
}
