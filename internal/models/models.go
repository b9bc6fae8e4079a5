package models

import "time"

type Shelf struct {
	ShelfID   string    `json:"shelf_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Book is the aggregate produced by the ingestion pipeline and persisted by storage.
type Book struct {
	BookID        string          `json:"book_id"`
	ShelfID       string          `json:"shelf_id"`
	Filename      string          `json:"filename"`
	Title         string          `json:"title,omitempty"`
	Author        string          `json:"author,omitempty"`
	Description   string          `json:"description,omitempty"`
	FileType      string          `json:"file_type"`
	FileSize      int64           `json:"file_size,omitempty"`
	TotalPages    int             `json:"total_pages"`
	ExtractedText string          `json:"extracted_text,omitempty"`
	Summary       string          `json:"summary,omitempty"`
	SummarySource string          `json:"summary_source,omitempty"`
	Chapters      []Section       `json:"chapters,omitempty"`
	Keywords      []string        `json:"keywords,omitempty"`
	Stats         TextStats       `json:"stats"`
	Sentiment     Sentiment       `json:"sentiment"`
	Progress      ReadingProgress `json:"progress"`
	Status        string          `json:"status"`
	FailReason    string          `json:"fail_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Section is a detected chapter or a size-bounded chunk of the normalized text.
// Sections of a book are contiguous, non-overlapping, and numbered 1..n.
type Section struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	StartIndex     int    `json:"start_index"`
	EndIndex       int    `json:"end_index"`
	WordCount      int    `json:"word_count"`
	CharacterCount int    `json:"character_count"`
}

type TextStats struct {
	CharacterCount           int    `json:"character_count"`
	WordCount                int    `json:"word_count"`
	SentenceCount            int    `json:"sentence_count"`
	ParagraphCount           int    `json:"paragraph_count"`
	AverageWordsPerSentence  int    `json:"average_words_per_sentence"`
	AverageWordsPerParagraph int    `json:"average_words_per_paragraph"`
	ReadingTimeMinutes       int    `json:"reading_time_minutes"`
	DetectedLanguage         string `json:"detected_language"`
}

type Sentiment struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type ReadingProgress struct {
	CurrentPage     int       `json:"current_page"`
	CurrentChapter  int       `json:"current_chapter"`
	CurrentPosition int       `json:"current_position"`
	Bookmarks       []int     `json:"bookmarks"`
	Completed       bool      `json:"completed"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewReadingProgress is the record attached to every freshly ingested book.
func NewReadingProgress() ReadingProgress {
	return ReadingProgress{CurrentPage: 1, CurrentChapter: 0, CurrentPosition: 0, Bookmarks: []int{}}
}
