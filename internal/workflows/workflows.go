package workflows

import (
	"path/filepath"
	"strings"
	"time"

	"bookflow/internal/activities"
	"bookflow/internal/models"
	"bookflow/internal/util"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	QueryGetBookStatus = "GetBookStatus"
	QueryGetProgress   = "GetProgress"
)

// ShelfIngestWorkflow processes every supported upload of a shelf through
// child workflows, a bounded batch at a time, and writes a shelf summary
// artifact when the run ends.
func ShelfIngestWorkflow(ctx workflow.Context, input ShelfIngestInput) (string, error) {
	progress := ShelfIngestProgress{
		ShelfID:       input.ShelfID,
		PerBook:       map[string]string{},
		ChildWorkflow: map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetProgress, func() (ShelfIngestProgress, error) {
		return progress, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	var listOut activities.ListUploadsOutput
	if err := workflow.ExecuteActivity(ctx, "ListUploadsActivity", activities.ListUploadsInput{ShelfID: input.ShelfID, UploadDir: input.UploadDir}).Get(ctx, &listOut); err != nil {
		return "", err
	}
	paths := listOut.Paths
	progress.Total = len(paths)
	maxChildren := input.MaxConcurrentChildren
	if maxChildren <= 0 {
		maxChildren = 3
	}

	for i := 0; i < len(paths); i += maxChildren {
		end := i + maxChildren
		if end > len(paths) {
			end = len(paths)
		}
		futures := make([]workflow.ChildWorkflowFuture, 0, end-i)
		childPaths := make([]string, 0, end-i)
		for _, path := range paths[i:end] {
			progress.PerBook[path] = "processing"
			workflowID := "book-" + sanitizeID(input.ShelfID) + "-" + sanitizeID(filepath.Base(path))
			cwo := workflow.ChildWorkflowOptions{WorkflowID: workflowID}
			childCtx := workflow.WithChildOptions(ctx, cwo)
			f := workflow.ExecuteChildWorkflow(childCtx, BookProcessWorkflow, BookProcessInput{
				ShelfID:             input.ShelfID,
				BookPath:            path,
				CustomSummaryLength: input.CustomSummaryLength,
			})
			futures = append(futures, f)
			childPaths = append(childPaths, path)
			progress.ChildWorkflow[path] = workflowID
		}

		for idx, f := range futures {
			var childStatus string
			err := f.Get(ctx, &childStatus)
			path := childPaths[idx]
			if err != nil {
				progress.Failed++
				progress.PerBook[path] = "failed"
				continue
			}
			if childStatus == "failed" {
				progress.Failed++
			}
			progress.Done++
			progress.PerBook[path] = childStatus
		}
	}
	_ = workflow.ExecuteActivity(ctx, "WriteShelfSummaryActivity", activities.WriteShelfSummaryInput{
		ShelfID: input.ShelfID,
		Summary: map[string]any{
			"shelf_id":        input.ShelfID,
			"total":           progress.Total,
			"done":            progress.Done,
			"failed":          progress.Failed,
			"per_book_status": progress.PerBook,
			"generated_at":    workflow.Now(ctx),
		},
	}).Get(ctx, nil)

	return "completed", nil
}

// BookProcessWorkflow runs one book through hash, extraction, analysis and
// persistence. Unusable files (no text, too short, wrong format) fail the book
// gracefully instead of failing the workflow.
func BookProcessWorkflow(ctx workflow.Context, input BookProcessInput) (string, error) {
	status := BookStatus{
		BookPath:    input.BookPath,
		CurrentStep: "init",
		Status:      "processing",
		Steps:       map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetBookStatus, func() (BookStatus, error) {
		return status, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    2,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	filename := filepath.Base(input.BookPath)
	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(input.BookPath)), ".")

	status.CurrentStep = "compute_book_id"
	status.Steps[status.CurrentStep] = "processing"
	var computeOut activities.ComputeBookIDOutput
	if err := workflow.ExecuteActivity(ctx, "ComputeBookIDActivity", activities.ComputeBookIDInput{BookPath: input.BookPath}).Get(ctx, &computeOut); err != nil {
		return "", err
	}
	status.BookID = computeOut.BookID
	status.Steps[status.CurrentStep] = "done"

	_ = workflow.ExecuteActivity(ctx, "UpdateBookStatusActivity", activities.UpdateBookStatusInput{BookID: computeOut.BookID, ShelfID: input.ShelfID, Filename: filename, FileType: fileType, Status: "processing"})

	status.CurrentStep = "extract_text"
	status.Steps[status.CurrentStep] = "processing"
	var textOut activities.ExtractTextOutput
	if err := workflow.ExecuteActivity(ctx, "ExtractTextActivity", activities.ExtractTextInput{BookPath: input.BookPath}).Get(ctx, &textOut); err != nil {
		if isUnusableFileError(err) {
			status.Status = "failed"
			status.FailReason = unusableFileReason(err)
			status.Steps[status.CurrentStep] = "failed"
			_ = workflow.ExecuteActivity(ctx, "UpdateBookStatusActivity", activities.UpdateBookStatusInput{BookID: computeOut.BookID, ShelfID: input.ShelfID, Filename: filename, FileType: fileType, Status: "failed", FailReason: status.FailReason})
			return status.Status, nil
		}
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "process_text"
	status.Steps[status.CurrentStep] = "processing"
	var procOut activities.ProcessTextOutput
	if err := workflow.ExecuteActivity(ctx, "ProcessTextActivity", activities.ProcessTextInput{Text: textOut.Text, CustomSummaryLength: input.CustomSummaryLength}).Get(ctx, &procOut); err != nil {
		return "", err
	}
	status.SummarySource = procOut.SummarySource
	status.Steps[status.CurrentStep] = "done"

	_ = workflow.ExecuteActivity(ctx, "LogSummaryCallActivity", activities.LogSummaryCallInput{
		ShelfID:  input.ShelfID,
		BookID:   computeOut.BookID,
		Provider: procOut.Provider,
		Model:    procOut.Model,
		Source:   procOut.SummarySource,
		Status:   "ok",
	}).Get(ctx, nil)

	status.CurrentStep = "save_book"
	status.Steps[status.CurrentStep] = "processing"
	book := models.Book{
		BookID:        computeOut.BookID,
		ShelfID:       input.ShelfID,
		Filename:      filename,
		Title:         textOut.Title,
		Author:        textOut.Author,
		FileType:      fileType,
		TotalPages:    textOut.PageCount,
		ExtractedText: textOut.Text,
		Summary:       procOut.Summary,
		SummarySource: procOut.SummarySource,
		Chapters:      procOut.Sections,
		Keywords:      procOut.Keywords,
		Stats:         procOut.Stats,
		Sentiment:     procOut.Sentiment,
		Progress:      models.NewReadingProgress(),
		Status:        "processed",
	}
	if err := workflow.ExecuteActivity(ctx, "SaveBookActivity", activities.SaveBookInput{Book: book}).Get(ctx, nil); err != nil {
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "write_artifacts"
	status.Steps[status.CurrentStep] = "processing"
	if err := workflow.ExecuteActivity(ctx, "WriteBookArtifactsActivity", activities.WriteBookArtifactsInput{
		ShelfID: input.ShelfID,
		BookID:  computeOut.BookID,
		Metadata: map[string]any{
			"book_id":        computeOut.BookID,
			"filename":       filename,
			"title":          textOut.Title,
			"author":         textOut.Author,
			"total_pages":    textOut.PageCount,
			"summary":        procOut.Summary,
			"summary_source": procOut.SummarySource,
			"keywords":       procOut.Keywords,
			"stats":          procOut.Stats,
			"sentiment":      procOut.Sentiment,
			"section_count":  len(procOut.Sections),
			"text_preview":   util.Snippet(textOut.Text, 420),
		},
		Text:          textOut.Text,
		Sections:      procOut.Sections,
		ProcessingLog: map[string]any{"status": "processed", "steps": status.Steps, "generated_at": workflow.Now(ctx)},
	}).Get(ctx, nil); err != nil {
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "done"
	status.Status = "processed"
	return status.Status, nil
}

// isUnusableFileError matches extraction failures that are a property of the
// file, not of the system. Retrying cannot help, so the book is marked failed.
func isUnusableFileError(err error) bool {
	e := strings.ToLower(err.Error())
	return strings.Contains(e, "no extractable text") ||
		strings.Contains(e, "below minimum readable length") ||
		strings.Contains(e, "unsupported file format")
}

func unusableFileReason(err error) string {
	e := strings.ToLower(err.Error())
	switch {
	case strings.Contains(e, "unsupported file format"):
		return "unsupported file format (only pdf and txt are readable)"
	case strings.Contains(e, "below minimum readable length"):
		return "extracted text too short to be a readable book"
	default:
		return "no extractable text found (scanned images need OCR)"
	}
}

func sanitizeID(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.ReplaceAll(s, "/", "-")
	return s
}
