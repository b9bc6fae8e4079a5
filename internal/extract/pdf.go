package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"bookflow/internal/textproc"
)

// fromPDF extracts the plain text of a PDF and cleans the layout artifacts
// print pagination leaves behind.
func (e *Extractor) fromPDF(path string) (Result, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return Result{}, fmt.Errorf("extract pdf text: %w", err)
	}
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, reader); err != nil {
		return Result{}, fmt.Errorf("read extracted text: %w", err)
	}

	text := textproc.NormalizePDFText(buf.String())
	return e.finish(path, text, r.NumPage())
}
