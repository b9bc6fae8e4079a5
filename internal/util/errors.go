package util

import "errors"

var (
	ErrNoExtractableText = errors.New("no extractable text found in file")
	ErrTextTooShort      = errors.New("extracted text below minimum readable length")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
