// Package configs provides files embedded into the sentindex binary.
//
// Template files:
//   - project-config.example.yaml: written by `sentindex init --write-config`
//     as .sentindex.yaml in the working directory
//   - stopwords_en.txt: the English stopword list used by the term filter
//     unless segmenter.stopwords_file names a replacement
//
// Configuration hierarchy (see internal/config Load):
//  1. Hardcoded defaults (config.NewConfig)
//  2. User config (~/.config/sentindex/config.yaml)
//  3. Project config (.sentindex.yaml)
//  4. Environment variables (SENTINDEX_*)
package configs

import _ "embed"

// ProjectConfigTemplate is the commented template for .sentindex.yaml.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string

// StopwordsEnglish is one stopword per line. Lines may carry # comments.
//
//go:embed stopwords_en.txt
var StopwordsEnglish []byte
