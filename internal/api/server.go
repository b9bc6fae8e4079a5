package api

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bookflow/internal/config"
	"bookflow/internal/models"
	"bookflow/internal/storage"
	"bookflow/internal/summarize"
	"bookflow/internal/util"
	"bookflow/internal/workflows"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"
)

type Server struct {
	cfg          config.Config
	db           *storage.DB
	shelfRepo    *storage.ShelfRepo
	bookRepo     *storage.BookRepo
	sectionRepo  *storage.SectionRepo
	progressRepo *storage.ProgressRepo
	summarizer   *summarize.Summarizer
	temporal     tclient.Client
}

func NewServer(cfg config.Config) *Server {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		panic(err)
	}
	tc, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		panic(err)
	}
	return &Server{
		cfg:          cfg,
		db:           db,
		shelfRepo:    storage.NewShelfRepo(db),
		bookRepo:     storage.NewBookRepo(db),
		sectionRepo:  storage.NewSectionRepo(db),
		progressRepo: storage.NewProgressRepo(db),
		summarizer:   summarize.NewFromConfig(cfg),
		temporal:     tc,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/ai/health", s.handleAIHealth)
	mux.HandleFunc("/shelves", s.handleShelves)
	mux.HandleFunc("/shelves/", s.handleShelvesScoped)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// handleAIHealth probes the remote summarization backend. The app keeps
// working without it, so this is informational only.
func (s *Server) handleAIHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()
	writeJSON(w, http.StatusOK, map[string]any{"available": s.summarizer.Ping(ctx)})
}

func (s *Server) handleShelves(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		shelves, err := s.shelfRepo.ListShelves(r.Context())
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"shelves": shelves})
	case http.MethodPost:
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("name is required"))
			return
		}

		shelfID := uuid.NewString()
		if err := s.shelfRepo.CreateShelf(r.Context(), models.Shelf{ShelfID: shelfID, Name: req.Name}); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		if err := util.EnsureDir(filepath.Join(s.cfg.UploadRoot, shelfID)); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		if err := util.EnsureDir(filepath.Join(s.cfg.ArtifactRoot, shelfID)); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"shelf_id": shelfID, "name": req.Name})
	default:
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	}
}

func (s *Server) handleShelvesScoped(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/shelves/"), "/"), "/")
	if len(parts) < 1 || parts[0] == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	shelfID := parts[0]

	if len(parts) == 2 {
		switch parts[1] {
		case "upload":
			if r.Method != http.MethodPost {
				writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
				return
			}
			s.handleUpload(w, r, shelfID)
			return
		case "ingest":
			if r.Method != http.MethodPost {
				writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
				return
			}
			s.handleIngest(w, r, shelfID)
			return
		case "progress":
			if r.Method != http.MethodGet {
				writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
				return
			}
			s.handleIngestProgress(w, r, shelfID)
			return
		case "books":
			if r.Method != http.MethodGet {
				writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
				return
			}
			books, err := s.bookRepo.ListBooksByShelf(r.Context(), shelfID)
			if err != nil {
				writeErr(w, http.StatusInternalServerError, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"books": books})
			return
		}
	}

	if len(parts) >= 3 && parts[1] == "books" {
		s.handleBookScoped(w, r, shelfID, parts[2:])
		return
	}

	writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
}

func (s *Server) handleBookScoped(w http.ResponseWriter, r *http.Request, shelfID string, parts []string) {
	bookID := parts[0]
	if bookID == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		book, err := s.bookRepo.GetBookByID(r.Context(), shelfID, bookID)
		if err != nil {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, book)
		return
	}

	switch parts[1] {
	case "sections":
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		sections, err := s.sectionRepo.ListSectionsByBook(r.Context(), shelfID, bookID)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"sections": sections})
	case "pages":
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		if len(parts) != 3 {
			writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
			return
		}
		n, err := strconv.Atoi(parts[2])
		if err != nil || n < 1 {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid page number"))
			return
		}
		text, err := s.bookRepo.GetBookText(r.Context(), shelfID, bookID)
		if err != nil {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		page, total := util.PageOf(text, n, s.cfg.ReaderWordsPerPage)
		if page == "" && n > total {
			writeErr(w, http.StatusNotFound, fmt.Errorf("page %d beyond end of book (%d pages)", n, total))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"page": n, "total_pages": total, "content": page})
	case "progress":
		switch r.Method {
		case http.MethodGet:
			progress, err := s.progressRepo.GetProgress(r.Context(), shelfID, bookID)
			if err != nil {
				writeErr(w, http.StatusNotFound, err)
				return
			}
			writeJSON(w, http.StatusOK, progress)
		case http.MethodPatch:
			var patch storage.ProgressPatch
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
				return
			}
			if patch.CurrentPage != nil && *patch.CurrentPage < 1 {
				writeErr(w, http.StatusBadRequest, fmt.Errorf("current_page must be at least 1"))
				return
			}
			if patch.CurrentPosition != nil && *patch.CurrentPosition < 0 {
				writeErr(w, http.StatusBadRequest, fmt.Errorf("current_position must not be negative"))
				return
			}
			progress, err := s.progressRepo.UpdateProgress(r.Context(), shelfID, bookID, patch)
			if err != nil {
				writeErr(w, http.StatusNotFound, err)
				return
			}
			writeJSON(w, http.StatusOK, progress)
		default:
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		}
	default:
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
	}
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request, shelfID string) {
	// Optional body; an empty or absent one uses the defaults.
	var req struct {
		CustomSummaryLength int `json:"custom_summary_length"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	wfID := "ingest-" + shelfID
	we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
		ID:                                       wfID,
		TaskQueue:                                s.cfg.TemporalTaskQueue,
		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}, workflows.ShelfIngestWorkflow, workflows.ShelfIngestInput{
		ShelfID:               shelfID,
		UploadDir:             filepath.Join(s.cfg.UploadRoot, shelfID),
		MaxConcurrentChildren: s.cfg.IngestMaxChildren,
		CustomSummaryLength:   req.CustomSummaryLength,
	})
	if err != nil {
		writeErr(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"workflow_id": we.GetID(), "run_id": we.GetRunID()})
}

func (s *Server) handleIngestProgress(w http.ResponseWriter, r *http.Request, shelfID string) {
	var prog workflows.ShelfIngestProgress
	resp, err := s.temporal.QueryWorkflow(r.Context(), "ingest-"+shelfID, "", workflows.QueryGetProgress)
	if err != nil {
		// Fallback to DB-derived progress when no active workflow query is available.
		books, bErr := s.bookRepo.ListBooksByShelf(r.Context(), shelfID)
		if bErr != nil {
			writeErr(w, http.StatusInternalServerError, bErr)
			return
		}
		per := make(map[string]string, len(books))
		done := 0
		failed := 0
		for _, b := range books {
			per[b.Filename] = b.Status
			if b.Status == "processed" {
				done++
			}
			if b.Status == "failed" {
				failed++
			}
		}
		writeJSON(w, http.StatusOK, workflows.ShelfIngestProgress{
			ShelfID: shelfID,
			Total:   len(books),
			Done:    done,
			Failed:  failed,
			PerBook: per,
		})
		return
	}
	if err := resp.Get(&prog); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, prog)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, shelfID string) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("parse multipart: %w", err))
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		if single, ok := firstSingleFile(r.MultipartForm.File); ok {
			files = append(files, single)
		}
	}
	if len(files) == 0 {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("no files provided"))
		return
	}

	inDir := filepath.Join(s.cfg.UploadRoot, shelfID)
	if err := util.EnsureDir(inDir); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	type uploadResult struct {
		Filename string `json:"filename"`
		BookID   string `json:"book_id"`
	}
	out := make([]uploadResult, 0, len(files))

	for _, fh := range files {
		if !supportedUpload(fh.Filename) {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("unsupported file type: %s", filepath.Ext(fh.Filename)))
			return
		}
		if fh.Size > s.cfg.MaxUploadBytes {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("file too large: %s is %d bytes", fh.Filename, fh.Size))
			return
		}
		bookID, savedPath, err := saveUploadedFile(inDir, fh)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		if err := s.bookRepo.MarkBookStatus(r.Context(), models.Book{
			BookID:   bookID,
			ShelfID:  shelfID,
			Filename: filepath.Base(savedPath),
			FileType: strings.TrimPrefix(strings.ToLower(filepath.Ext(savedPath)), "."),
			Status:   "pending",
		}); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		out = append(out, uploadResult{Filename: filepath.Base(savedPath), BookID: bookID})
	}

	writeJSON(w, http.StatusOK, map[string]any{"uploaded": out})
}

func supportedUpload(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".txt":
		return true
	}
	return false
}

func saveUploadedFile(dstDir string, fh *multipart.FileHeader) (bookID, path string, err error) {
	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(dstDir, "upload-*")
	if err != nil {
		return "", "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmp, h), src); err != nil {
		return "", "", fmt.Errorf("write upload: %w", err)
	}

	bookID = fmt.Sprintf("%x", h.Sum(nil))
	finalPath := util.SafeJoin(dstDir, fh.Filename)
	if err := tmp.Close(); err != nil {
		return "", "", err
	}
	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		return "", "", fmt.Errorf("atomic move upload: %w", err)
	}

	return bookID, finalPath, nil
}

func firstSingleFile(m map[string][]*multipart.FileHeader) (*multipart.FileHeader, bool) {
	for _, v := range m {
		if len(v) > 0 {
			return v[0], true
		}
	}
	return nil, false
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "BF-API-4000"
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status >= 500:
		switch {
		case strings.Contains(raw, "relation") && strings.Contains(raw, "does not exist"):
			return apiError{
				Code:    "BF-DB-5001",
				Message: "Database schema is not initialized. Run migrations and retry.",
			}
		case strings.Contains(raw, "connect"), strings.Contains(raw, "dial tcp"), strings.Contains(raw, "connection refused"):
			return apiError{
				Code:    "BF-DB-5002",
				Message: "Database connection is unavailable. Check local services and retry.",
			}
		default:
			return apiError{
				Code:    "BF-API-5000",
				Message: "Internal server error. Please retry or check service logs.",
			}
		}
	case status == http.StatusBadRequest:
		code = "BF-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "BF-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusConflict:
		code = "BF-API-4009"
		msg = "Operation conflicts with current state. Retry after checking status."
	case status == http.StatusMethodNotAllowed:
		code = "BF-API-4005"
		msg = "This endpoint does not support the requested method."
	}

	// For 4xx, keep user-safe validation context only.
	if status >= 400 && status < 500 && err != nil {
		switch {
		case strings.Contains(raw, "name is required"):
			msg = "Shelf name is required."
		case strings.Contains(raw, "no files provided"):
			msg = "No PDF or TXT files were provided."
		case strings.Contains(raw, "unsupported file type"):
			msg = "Only PDF and TXT files can be uploaded."
		case strings.Contains(raw, "file too large"):
			msg = "File exceeds the 50 MB upload limit."
		case strings.Contains(raw, "invalid json"):
			msg = "Malformed JSON request body."
		case strings.Contains(raw, "invalid page number"):
			msg = "Page number must be a positive integer."
		case strings.Contains(raw, "current_page"):
			msg = "Reading page must be at least 1."
		case strings.Contains(raw, "current_position"):
			msg = "Reading position must not be negative."
		case strings.Contains(raw, "beyond end of book"):
			msg = "Requested page is past the end of the book."
		}
	}

	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
