package activities

import "bookflow/internal/models"

type ListUploadsInput struct {
	ShelfID   string `json:"shelf_id"`
	UploadDir string `json:"upload_dir"`
}

type ListUploadsOutput struct {
	Paths []string `json:"paths"`
}

type ComputeBookIDInput struct {
	BookPath string `json:"book_path"`
}

type ComputeBookIDOutput struct {
	BookID string `json:"book_id"`
}

type ExtractTextInput struct {
	BookPath string `json:"book_path"`
}

type ExtractTextOutput struct {
	Text      string `json:"text"`
	PageCount int    `json:"page_count"`
	Title     string `json:"title"`
	Author    string `json:"author"`
}

type ProcessTextInput struct {
	Text                string `json:"text"`
	CustomSummaryLength int    `json:"custom_summary_length,omitempty"`
}

type ProcessTextOutput struct {
	Sections      []models.Section `json:"sections"`
	Stats         models.TextStats `json:"stats"`
	Keywords      []string         `json:"keywords"`
	Sentiment     models.Sentiment `json:"sentiment"`
	Summary       string           `json:"summary"`
	SummarySource string           `json:"summary_source"`
	Provider      string           `json:"provider,omitempty"`
	Model         string           `json:"model,omitempty"`
}

type SaveBookInput struct {
	Book models.Book `json:"book"`
}

type WriteBookArtifactsInput struct {
	ShelfID       string           `json:"shelf_id"`
	BookID        string           `json:"book_id"`
	Metadata      map[string]any   `json:"metadata"`
	Text          string           `json:"text,omitempty"`
	Sections      []models.Section `json:"sections"`
	ProcessingLog map[string]any   `json:"processing_log"`
}

type UpdateBookStatusInput struct {
	BookID     string `json:"book_id"`
	ShelfID    string `json:"shelf_id"`
	Filename   string `json:"filename"`
	FileType   string `json:"file_type"`
	Status     string `json:"status"`
	FailReason string `json:"fail_reason"`
}

type WriteShelfSummaryInput struct {
	ShelfID string         `json:"shelf_id"`
	Summary map[string]any `json:"summary"`
}

type LogSummaryCallInput struct {
	CallID    string `json:"call_id"`
	ShelfID   string `json:"shelf_id"`
	BookID    string `json:"book_id"`
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	Source    string `json:"source"`
	Status    string `json:"status"`
	ErrorType string `json:"error_type"`
}

type ListFailedBooksInput struct {
	ShelfID string `json:"shelf_id"`
}

type FailedBook struct {
	BookID   string `json:"book_id"`
	Filename string `json:"filename"`
}

type ListFailedBooksOutput struct {
	Books []FailedBook `json:"books"`
}
