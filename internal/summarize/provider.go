package summarize

import "context"

// Request carries one summarization call to a remote model.
type Request struct {
	Text      string
	MaxLength int
	MinLength int
}

// Provider is a remote summarization backend.
type Provider interface {
	Name() string
	Model() string
	Summarize(ctx context.Context, req Request) (string, error)
}
