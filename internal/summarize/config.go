// Package summarize produces book summaries through a chain of remote models
// with an extractive local fallback, so a summary is always available.
package summarize

// band holds the summary shape for one input-length bracket.
type band struct {
	MaxLength int
	MinLength int
	Sentences int
}

// bandFor picks the summary band for a text of length chars. Longer books get
// longer summaries.
func bandFor(chars int) band {
	switch {
	case chars < 5000:
		return band{MaxLength: 80, MinLength: 30, Sentences: 2}
	case chars < 20000:
		return band{MaxLength: 150, MinLength: 60, Sentences: 4}
	case chars < 50000:
		return band{MaxLength: 300, MinLength: 120, Sentences: 6}
	default:
		return band{MaxLength: 500, MinLength: 200, Sentences: 8}
	}
}
