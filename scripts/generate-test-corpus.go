//go:build ignore

// Package main generates a synthetic plain-text corpus for timing add-dir.
// Usage: go run scripts/generate-test-corpus.go -files 1000 -output testdata/bench
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

var (
	numFiles      = flag.Int("files", 1000, "Number of files to generate")
	paragraphs    = flag.Int("paragraphs", 8, "Paragraphs per file")
	outputDir     = flag.String("output", "testdata/bench", "Output directory")
	seed          = flag.Int64("seed", 42, "Random seed for reproducibility")
	vocabularyLen = flag.Int("vocabulary", 5000, "Number of distinct invented words")
)

var subjects = []string{"The keeper", "A sailor", "The harbor master", "Dr. Hale", "Mr. Brandt", "The council", "A merchant"}

var verbs = []string{"watched", "repaired", "described", "ignored", "recorded", "questioned", "praised"}

var objects = []string{"the lighthouse", "the storm", "the ledger", "the old pier", "the government", "the tide tables"}

func main() {
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	vocab := inventWords(rng, *vocabularyLen)

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for i := range *numFiles {
		path := filepath.Join(*outputDir, fmt.Sprintf("doc%05d.txt", i+1))
		if err := os.WriteFile(path, []byte(document(rng, vocab)), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Generated %d files in %s\n", *numFiles, *outputDir)
}

func inventWords(rng *rand.Rand, n int) []string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	words := make([]string, n)
	for i := range words {
		var b strings.Builder
		for range 4 + rng.Intn(6) {
			b.WriteByte(letters[rng.Intn(len(letters))])
		}
		words[i] = b.String()
	}
	return words
}

func document(rng *rand.Rand, vocab []string) string {
	var b strings.Builder
	for p := range *paragraphs {
		if p > 0 {
			b.WriteString("\n\n")
		}
		for s := range 2 + rng.Intn(5) {
			if s > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(sentence(rng, vocab))
		}
	}
	b.WriteByte('\n')
	return b.String()
}

func sentence(rng *rand.Rand, vocab []string) string {
	parts := []string{
		subjects[rng.Intn(len(subjects))],
		verbs[rng.Intn(len(verbs))],
		objects[rng.Intn(len(objects))],
	}
	for range rng.Intn(6) {
		parts = append(parts, vocab[rng.Intn(len(vocab))])
	}
	end := "."
	if rng.Intn(8) == 0 {
		end = "?"
	}
	return strings.Join(parts, " ") + end
}
