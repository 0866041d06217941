package segment

import (
	"iter"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultAbbreviations are the period-final words that never end a sentence.
var DefaultAbbreviations = []string{"dr", "mr", "i.e", "e.g"}

const (
	closingPunct = `"')]}`
	openingPunct = `"'([{`
	// A token made only of these is a punctuation token.
	punctTokens = ";:,.!?"
)

var numericRE = regexp.MustCompile(`^-?[\.,]?\d[\d,\.-]*\.?$`)

// Segmenter splits text into sentences. It holds no mutable state and is
// safe for concurrent use.
type Segmenter struct {
	abbrevs map[string]struct{}
}

// NewSegmenter creates a segmenter that treats the given words (lowercase,
// without the final period) as abbreviations. Nil selects the defaults.
func NewSegmenter(abbreviations []string) *Segmenter {
	if abbreviations == nil {
		abbreviations = DefaultAbbreviations
	}
	abbrevs := make(map[string]struct{}, len(abbreviations))
	for _, a := range abbreviations {
		abbrevs[strings.ToLower(strings.TrimSuffix(a, "."))] = struct{}{}
	}
	return &Segmenter{abbrevs: abbrevs}
}

// Paragraphs splits raw text into lines. A trailing line break does not
// start an extra paragraph and carriage returns are dropped.
func Paragraphs(raw string) []string {
	if raw == "" {
		return nil
	}
	lines := strings.Split(raw, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Segment yields every sentence of raw with its 1-based position in the
// whole document. Numbering continues across paragraphs.
func (s *Segmenter) Segment(raw string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		seq := 0
		for _, para := range Paragraphs(raw) {
			for _, sent := range s.Sentences(para) {
				seq++
				if !yield(seq, sent) {
					return
				}
			}
		}
	}
}

type chunk struct {
	start, end int
}

// Sentences yields the sentences of a single paragraph with their 1-based
// ordinal. A whitespace-only paragraph yields nothing.
func (s *Segmenter) Sentences(paragraph string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		chunks := splitChunks(paragraph)
		if len(chunks) == 0 {
			return
		}

		n := 0
		start := chunks[0].start
		for i, c := range chunks {
			tok := paragraph[c.start:c.end]
			last := i == len(chunks)-1
			next := ""
			if !last {
				next = paragraph[chunks[i+1].start:chunks[i+1].end]
			}
			if !last && !s.endsSentence(tok, next) {
				continue
			}
			n++
			if !yield(n, paragraph[start:c.end]) {
				return
			}
			if !last {
				start = chunks[i+1].start
			}
		}
	}
}

func splitChunks(text string) []chunk {
	var chunks []chunk
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				chunks = append(chunks, chunk{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		chunks = append(chunks, chunk{start, len(text)})
	}
	return chunks
}

// endsSentence decides whether tok is the last token of a sentence given
// the token that follows it.
func (s *Segmenter) endsSentence(tok, next string) bool {
	core := strings.TrimRight(tok, closingPunct)
	if core == "" {
		return false
	}

	switch core[len(core)-1] {
	case '?', '!':
		return true
	case '.':
	default:
		return false
	}

	word := strings.TrimLeft(core, openingPunct)
	if strings.HasSuffix(word, "..") {
		return false
	}
	if s.isAbbreviation(word) {
		return false
	}
	if isInitial(word) && (startsWith(next, unicode.IsLetter) || isPunctToken(next)) {
		return false
	}
	if numericRE.MatchString(word) && (startsWith(next, unicode.IsLower) || isPunctToken(next)) {
		return false
	}
	return true
}

func (s *Segmenter) isAbbreviation(word string) bool {
	typ := strings.ToLower(strings.TrimSuffix(word, "."))
	if _, ok := s.abbrevs[typ]; ok {
		return true
	}
	if i := strings.LastIndexByte(typ, '-'); i >= 0 {
		_, ok := s.abbrevs[typ[i+1:]]
		return ok
	}
	return false
}

// isInitial reports whether word is a single letter followed by a period.
func isInitial(word string) bool {
	r, size := utf8.DecodeRuneInString(word)
	return unicode.IsLetter(r) && word[size:] == "."
}

func startsWith(s string, pred func(rune) bool) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return s != "" && pred(r)
}

func isPunctToken(s string) bool {
	return s != "" && strings.ContainsRune(punctTokens, rune(s[0]))
}
