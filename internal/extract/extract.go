// Package extract turns uploaded book files into clean text plus basic
// metadata. PDF and plain-text files are supported.
package extract

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"bookflow/internal/util"
)

// Result is the outcome of extracting one file.
type Result struct {
	Text      string
	PageCount int
	Title     string
	Author    string
}

// Extractor extracts and normalizes text from book files.
type Extractor struct {
	minChars     int
	wordsPerPage int
}

// New builds an extractor. minChars is the floor below which extracted text is
// rejected as unusable; wordsPerPage sizes the synthetic page count of
// plain-text files.
func New(minChars, wordsPerPage int) *Extractor {
	if minChars <= 0 {
		minChars = 100
	}
	if wordsPerPage <= 0 {
		wordsPerPage = 250
	}
	return &Extractor{minChars: minChars, wordsPerPage: wordsPerPage}
}

// FromFile extracts the file at path, dispatching on its extension.
func (e *Extractor) FromFile(path string) (Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return e.fromPDF(path)
	case ".txt":
		return e.fromText(path)
	default:
		return Result{}, fmt.Errorf("%w: %s", util.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// finish applies the shared post-extraction checks and metadata heuristics.
func (e *Extractor) finish(path, text string, pages int) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, util.ErrNoExtractableText
	}
	if utf8.RuneCountInString(text) < e.minChars {
		return Result{}, fmt.Errorf("%w: %d chars", util.ErrTextTooShort, utf8.RuneCountInString(text))
	}
	title, author := heuristicTitleAuthor(text)
	if title == "" {
		title = titleFromFilename(path)
	}
	if author == "" {
		author = "Unknown author"
	}
	return Result{Text: text, PageCount: pages, Title: title, Author: author}, nil
}

// titleFromFilename derives a readable title when the text itself offers none.
func titleFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return strings.TrimSpace(base)
}

// heuristicTitleAuthor guesses title and author from the first non-empty
// lines. Front matter usually opens with the title, then the author.
func heuristicTitleAuthor(text string) (string, string) {
	s := bufio.NewScanner(strings.NewReader(text))
	nonEmpty := make([]string, 0, 2)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > 120 {
			break
		}
		nonEmpty = append(nonEmpty, line)
		if len(nonEmpty) == 2 {
			break
		}
	}
	title, author := "", ""
	if len(nonEmpty) > 0 {
		title = nonEmpty[0]
	}
	if len(nonEmpty) > 1 {
		author = nonEmpty[1]
	}
	return title, author
}
