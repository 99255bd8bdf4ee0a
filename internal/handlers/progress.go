package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/cipher-engine/pkg/progress"
	"github.com/jwebster45206/cipher-engine/pkg/storage"
)

type PatchProgressRequest struct {
	Language string `json:"language"`
}

type ProgressHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewProgressHandler(storage storage.Storage, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{
		storage: storage,
		logger:  logger,
	}
}

// ServeHTTP handles HTTP requests for player progress
// Routes:
// POST /v1/progress                - Start a new session
// GET /v1/progress/{id}            - Read progress
// GET /v1/progress/{id}/attempts   - Attempt history, oldest first
// PATCH /v1/progress/{id}          - Update language
// DELETE /v1/progress/{id}         - Delete progress and history
func (h *ProgressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/progress"), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid progress ID", "id", parts[0], "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid progress ID format")
		return
	}

	if len(parts) == 2 && parts[1] == "attempts" && r.Method == http.MethodGet {
		h.handleAttempts(w, r, id)
		return
	}
	if len(parts) != 1 {
		writeError(w, h.logger, http.StatusNotFound, "Unknown progress route")
		return
	}

	switch r.Method {
	case http.MethodGet:
		if p := h.load(w, r, id); p != nil {
			writeJSON(w, h.logger, http.StatusOK, p)
		}
	case http.MethodPatch:
		h.handlePatch(w, r, id)
	case http.MethodDelete:
		if err := h.storage.DeleteProgress(r.Context(), id); err != nil {
			h.logger.Error("Failed to delete progress", "error", err, "id", id.String())
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete progress")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		h.logger.Warn("Method not allowed for progress endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST, GET, PATCH, DELETE")
	}
}

func (h *ProgressHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	p := progress.New()
	if err := h.storage.SaveProgress(r.Context(), p); err != nil {
		h.logger.Error("Failed to save new progress", "error", err, "id", p.ID.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save progress")
		return
	}
	h.logger.Info("Progress created", "id", p.ID.String())
	writeJSON(w, h.logger, http.StatusCreated, p)
}

func (h *ProgressHandler) load(w http.ResponseWriter, r *http.Request, id uuid.UUID) *progress.Progress {
	p, err := h.storage.LoadProgress(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load progress", "error", err, "id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load progress")
		return nil
	}
	if p == nil {
		writeError(w, h.logger, http.StatusNotFound, "Progress not found")
		return nil
	}
	return p
}

func (h *ProgressHandler) handlePatch(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req PatchProgressRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}
	p := h.load(w, r, id)
	if p == nil {
		return
	}
	if req.Language != "" {
		if err := p.SetLanguage(req.Language); err != nil {
			writeError(w, h.logger, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := h.storage.SaveProgress(r.Context(), p); err != nil {
		h.logger.Error("Failed to save progress", "error", err, "id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save progress")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, p)
}

func (h *ProgressHandler) handleAttempts(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if h.load(w, r, id) == nil {
		return
	}
	attempts, err := h.storage.ListAttempts(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list attempts", "error", err, "id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list attempts")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, attempts)
}
