package extract

import (
	"fmt"
	"os"

	"bookflow/internal/textproc"
)

// fromText reads a plain-text file. Text files have no physical pages, so the
// page count is synthesized from the word count.
func (e *Extractor) fromText(path string) (Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read text file: %w", err)
	}
	text := textproc.NormalizeText(string(raw))
	words := textproc.CountWords(text)
	pages := (words + e.wordsPerPage - 1) / e.wordsPerPage
	if pages == 0 {
		pages = 1
	}
	return e.finish(path, text, pages)
}
