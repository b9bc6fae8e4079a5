package workflows

type ShelfIngestInput struct {
	ShelfID               string `json:"shelf_id"`
	UploadDir             string `json:"upload_dir,omitempty"`
	MaxConcurrentChildren int    `json:"max_concurrent_children"`
	CustomSummaryLength   int    `json:"custom_summary_length,omitempty"`
}

type BookProcessInput struct {
	ShelfID             string `json:"shelf_id"`
	BookPath            string `json:"book_path"`
	CustomSummaryLength int    `json:"custom_summary_length,omitempty"`
}

type BookStatus struct {
	BookID        string            `json:"book_id"`
	BookPath      string            `json:"book_path"`
	CurrentStep   string            `json:"current_step"`
	Status        string            `json:"status"`
	FailReason    string            `json:"fail_reason,omitempty"`
	SummarySource string            `json:"summary_source,omitempty"`
	Steps         map[string]string `json:"steps"`
}

type ShelfIngestProgress struct {
	ShelfID       string            `json:"shelf_id"`
	Total         int               `json:"total"`
	Done          int               `json:"done"`
	Failed        int               `json:"failed"`
	PerBook       map[string]string `json:"per_book_status"`
	ChildWorkflow map[string]string `json:"child_workflow_ids,omitempty"`
}
