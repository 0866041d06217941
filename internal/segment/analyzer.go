package segment

import (
	"iter"
	"path/filepath"
	"strings"
)

// Options configures an Analyzer.
type Options struct {
	Abbreviations  []string
	MinTokenLength int
	// StopwordsFile replaces the embedded list when set.
	StopwordsFile string
	// StripMarkup enables the markup filter for MarkupExtensions.
	StripMarkup      bool
	MarkupExtensions []string
}

// Analyzer bundles the segmenter, the tokenizer and the optional markup
// filter into the single pipeline ingestion runs per document.
type Analyzer struct {
	segmenter *Segmenter
	tokenizer *Tokenizer
	markup    *MarkupFilter
	markupExt map[string]bool
}

// NewAnalyzer builds an Analyzer from opts.
func NewAnalyzer(opts Options) (*Analyzer, error) {
	stopwords, err := LoadStopwords(opts.StopwordsFile)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		segmenter: NewSegmenter(opts.Abbreviations),
		tokenizer: NewTokenizer(stopwords, opts.MinTokenLength),
	}
	if opts.StripMarkup {
		a.markup = NewMarkupFilter()
		a.markupExt = make(map[string]bool, len(opts.MarkupExtensions))
		for _, ext := range opts.MarkupExtensions {
			a.markupExt[strings.ToLower(ext)] = true
		}
	}
	return a, nil
}

// Prepare returns the text of the document at path ready for segmentation.
// Markup is stripped only for configured extensions.
func (a *Analyzer) Prepare(path, text string) string {
	if a.markup == nil || !a.markupExt[strings.ToLower(filepath.Ext(path))] {
		return text
	}
	return string(a.markup.Filter([]byte(text)))
}

// Sentences yields the document-wide numbered sentences of text.
func (a *Analyzer) Sentences(text string) iter.Seq2[int, string] {
	return a.segmenter.Segment(text)
}

// Terms yields the indexable words of a sentence.
func (a *Analyzer) Terms(sentence string) iter.Seq[string] {
	return a.tokenizer.Terms(sentence)
}

// Segmenter returns the sentence splitter.
func (a *Analyzer) Segmenter() *Segmenter { return a.segmenter }

// Tokenizer returns the term extractor.
func (a *Analyzer) Tokenizer() *Tokenizer { return a.tokenizer }
