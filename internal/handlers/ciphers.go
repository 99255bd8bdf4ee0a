package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/cipher-engine/internal/logger"
	"github.com/jwebster45206/cipher-engine/pkg/cipher"
	"github.com/jwebster45206/cipher-engine/pkg/cipher/caesar"
	"github.com/jwebster45206/cipher-engine/pkg/cipher/columnar"
	"github.com/jwebster45206/cipher-engine/pkg/cipher/vigenere"
	"github.com/jwebster45206/cipher-engine/pkg/ciphers"
)

type CipherInfo struct {
	ID   ciphers.ID `json:"id"`
	Name string     `json:"name"`
}

// CipherRequest is the body for every per-cipher operation.
type CipherRequest struct {
	Text string `json:"text"`
	Key  string `json:"key"`
	// Decrypt selects the decryption view for visualize.
	Decrypt bool `json:"decrypt,omitempty"`
}

type CipherResponse struct {
	Cipher ciphers.ID `json:"cipher"`
	Result string     `json:"result"`
}

type VisualizeResponse struct {
	Cipher        ciphers.ID `json:"cipher"`
	Visualization string     `json:"visualization"`
}

type GridResponse struct {
	Cipher ciphers.ID  `json:"cipher"`
	Grid   cipher.Grid `json:"grid"`
	// Columnar only
	ColumnOrder []int `json:"column_order,omitempty"`
}

type CipherHandler struct {
	logger *slog.Logger
}

func NewCipherHandler(logger *slog.Logger) *CipherHandler {
	return &CipherHandler{logger: logger}
}

// ServeHTTP handles cipher operations
// Routes:
// GET  /v1/ciphers                       - List ciphers
// GET  /v1/ciphers/vigenere/tableau      - Full 26x26 tableau
// POST /v1/ciphers/caesar/bruteforce     - Rank all 26 shifts
// POST /v1/ciphers/{id}/{operation}      - encrypt, decrypt, validate, visualize, grid
func (h *CipherHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/ciphers"), "/")
	if path == "" {
		if r.Method != http.MethodGet {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
			return
		}
		h.handleList(w)
		return
	}

	parts := strings.Split(path, "/")
	if len(parts) != 2 {
		writeError(w, h.logger, http.StatusNotFound, "Unknown cipher route")
		return
	}

	t, err := ciphers.Lookup(parts[0])
	if err != nil {
		h.logger.Warn("Unknown cipher requested", "cipher", parts[0])
		writeError(w, h.logger, http.StatusNotFound, err.Error())
		return
	}
	op := parts[1]

	if t.ID() == ciphers.Vigenere && op == "tableau" {
		if r.Method != http.MethodGet {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
			return
		}
		writeJSON(w, h.logger, http.StatusOK, GridResponse{Cipher: t.ID(), Grid: vigenere.GenerateTableau()})
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	var req CipherRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	switch op {
	case "encrypt":
		h.respondResult(w, r, t, req, t.Encrypt)
	case "decrypt":
		h.respondResult(w, r, t, req, t.Decrypt)
	case "validate":
		writeJSON(w, h.logger, http.StatusOK, cipher.ValidationOf(t.ValidateKey(req.Key)))
	case "visualize":
		vis, err := ciphers.Visualize(t, req.Text, req.Key, req.Decrypt)
		if err != nil {
			h.keyError(w, r, t, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, VisualizeResponse{Cipher: t.ID(), Visualization: vis})
	case "grid":
		h.handleGrid(w, r, t, req)
	case "bruteforce":
		if t.ID() != ciphers.Caesar {
			writeError(w, h.logger, http.StatusNotFound, "Brute force is only available for caesar")
			return
		}
		writeJSON(w, h.logger, http.StatusOK, caesar.BruteForce(req.Text))
	default:
		writeError(w, h.logger, http.StatusNotFound, "Unknown operation: "+op)
	}
}

func (h *CipherHandler) handleList(w http.ResponseWriter) {
	all := ciphers.All()
	out := make([]CipherInfo, 0, len(all))
	for _, t := range all {
		out = append(out, CipherInfo{ID: t.ID(), Name: t.Name()})
	}
	writeJSON(w, h.logger, http.StatusOK, out)
}

func (h *CipherHandler) respondResult(w http.ResponseWriter, r *http.Request, t ciphers.Transformer, req CipherRequest, fn func(text, key string) (string, error)) {
	result, err := fn(req.Text, req.Key)
	if err != nil {
		h.keyError(w, r, t, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, CipherResponse{Cipher: t.ID(), Result: result})
}

func (h *CipherHandler) handleGrid(w http.ResponseWriter, r *http.Request, t ciphers.Transformer, req CipherRequest) {
	if t.ID() == ciphers.Columnar {
		view := columnar.GetGrid(req.Text, req.Key)
		writeJSON(w, h.logger, http.StatusOK, GridResponse{Cipher: t.ID(), Grid: view.Grid, ColumnOrder: view.ColumnOrder})
		return
	}
	grid, err := t.Grid(req.Text, req.Key)
	if err != nil {
		h.keyError(w, r, t, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, GridResponse{Cipher: t.ID(), Grid: grid})
}

func (h *CipherHandler) keyError(w http.ResponseWriter, r *http.Request, t ciphers.Transformer, err error) {
	log := logger.WithCipher(logger.FromContext(r.Context(), h.logger), t.ID())
	if !errors.Is(err, cipher.ErrInvalidKey) {
		log.Error("Cipher operation failed", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Cipher operation failed")
		return
	}
	log.Debug("Rejected cipher key", "error", err)
	writeError(w, h.logger, http.StatusBadRequest, err.Error())
}
