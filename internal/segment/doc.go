// Package segment turns raw document text into sentences and index terms.
//
// Text is split into paragraphs on line breaks, paragraphs into sentences
// with Punkt-style boundary rules, and sentences into terms with a bleve
// analysis chain: a regexp tokenizer, a stopword filter and a minimum
// length filter. Matching is literal; no case folding or stemming is done.
package segment
