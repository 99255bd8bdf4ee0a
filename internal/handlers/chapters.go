package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/cipher-engine/internal/logger"
	"github.com/jwebster45206/cipher-engine/pkg/chapter"
	"github.com/jwebster45206/cipher-engine/pkg/ciphers"
	"github.com/jwebster45206/cipher-engine/pkg/progress"
	"github.com/jwebster45206/cipher-engine/pkg/storage"
)

type AttemptRequest struct {
	ProgressID string `json:"progress_id"`
	Answer     string `json:"answer"`
}

type AttemptResponse struct {
	Correct bool `json:"correct"`
	// Unlocked is set only on the attempt that first unlocks the cipher
	Unlocked    ciphers.ID         `json:"unlocked,omitempty"`
	Hint        string             `json:"hint,omitempty"`
	NextChapter int                `json:"next_chapter,omitempty"`
	Progress    *progress.Progress `json:"progress"`
}

type AdvanceRequest struct {
	ProgressID string        `json:"progress_id"`
	Event      chapter.Event `json:"event"`
}

type ChapterHandler struct {
	catalog *chapter.Catalog
	storage storage.Storage
	logger  *slog.Logger
}

func NewChapterHandler(catalog *chapter.Catalog, storage storage.Storage, logger *slog.Logger) *ChapterHandler {
	return &ChapterHandler{
		catalog: catalog,
		storage: storage,
		logger:  logger,
	}
}

// ServeHTTP handles chapter requests
// Routes:
// GET  /v1/chapters              - List chapters without solutions
// GET  /v1/chapters/{n}          - One chapter without its solution
// POST /v1/chapters/{n}/attempt  - Submit an answer for a progress session
// POST /v1/chapters/{n}/advance  - Move the chapter phase (begin, start_puzzle, ...)
func (h *ChapterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/chapters"), "/")
	if path == "" {
		if r.Method != http.MethodGet {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
			return
		}
		list := h.catalog.List()
		for i := range list {
			list[i] = list[i].Redacted()
		}
		writeJSON(w, h.logger, http.StatusOK, list)
		return
	}

	parts := strings.Split(path, "/")
	n, err := strconv.Atoi(parts[0])
	if err != nil || len(parts) > 2 {
		writeError(w, h.logger, http.StatusNotFound, "Unknown chapter route")
		return
	}
	ch, err := h.catalog.Get(n)
	if err != nil {
		writeError(w, h.logger, http.StatusNotFound, err.Error())
		return
	}

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
			return
		}
		writeJSON(w, h.logger, http.StatusOK, ch.Redacted())
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}
	switch parts[1] {
	case "attempt":
		h.handleAttempt(w, r, ch)
	case "advance":
		h.handleAdvance(w, r, ch)
	default:
		writeError(w, h.logger, http.StatusNotFound, "Unknown operation: "+parts[1])
	}
}

func (h *ChapterHandler) loadProgress(w http.ResponseWriter, r *http.Request, rawID string) *progress.Progress {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid progress ID format")
		return nil
	}
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

// playLogger is the request logger tagged with the session and chapter.
func (h *ChapterHandler) playLogger(r *http.Request, p *progress.Progress, ch *chapter.Chapter) *slog.Logger {
	log := logger.FromContext(r.Context(), h.logger)
	return logger.WithChapter(logger.WithProgress(log, p.ID), ch.Number)
}

func (h *ChapterHandler) handleAttempt(w http.ResponseWriter, r *http.Request, ch *chapter.Chapter) {
	var req AttemptRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}
	p := h.loadProgress(w, r, req.ProgressID)
	if p == nil {
		return
	}

	log := h.playLogger(r, p, ch)
	correct := ch.Check(req.Answer)
	newlyUnlocked, err := p.RecordAttempt(ch, correct)
	if err != nil {
		if errors.Is(err, progress.ErrChapterLocked) {
			writeError(w, h.logger, http.StatusConflict, err.Error())
			return
		}
		log.Error("Failed to record attempt", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to record attempt")
		return
	}

	if err := h.storage.SaveProgress(r.Context(), p); err != nil {
		log.Error("Failed to save progress", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save progress")
		return
	}
	attempt := storage.Attempt{Chapter: ch.Number, Answer: req.Answer, Correct: correct, At: time.Now()}
	if err := h.storage.AppendAttempt(r.Context(), p.ID, attempt); err != nil {
		// progress is already saved; history is best effort
		log.Warn("Failed to append attempt", "error", err)
	}

	log.Info("Chapter attempt",
		"correct", correct,
		"newly_unlocked", newlyUnlocked)

	resp := AttemptResponse{Correct: correct, Progress: p}
	if newlyUnlocked {
		resp.Unlocked = ch.Cipher
	}
	if correct {
		if next, ok := h.catalog.Next(ch.Number); ok {
			resp.NextChapter = next
		}
	} else {
		resp.Hint = ch.Hint(p.Chapter(ch.Number).Failed)
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

func (h *ChapterHandler) handleAdvance(w http.ResponseWriter, r *http.Request, ch *chapter.Chapter) {
	var req AdvanceRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}
	if req.Event == chapter.EventSolve {
		writeError(w, h.logger, http.StatusBadRequest, "Chapters are solved by submitting a correct attempt")
		return
	}
	p := h.loadProgress(w, r, req.ProgressID)
	if p == nil {
		return
	}

	log := h.playLogger(r, p, ch)
	phase, err := p.Advance(ch, req.Event)
	if err != nil {
		switch {
		case errors.Is(err, progress.ErrChapterLocked), errors.Is(err, chapter.ErrInvalidTransition):
			writeError(w, h.logger, http.StatusConflict, err.Error())
		default:
			log.Error("Failed to advance chapter", "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to advance chapter")
		}
		return
	}

	if err := h.storage.SaveProgress(r.Context(), p); err != nil {
		log.Error("Failed to save progress", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save progress")
		return
	}
	log.Info("Chapter advanced", "event", req.Event, "phase", phase)
	writeJSON(w, h.logger, http.StatusOK, p)
}
