package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/cipher-engine/pkg/chapter"
	"github.com/jwebster45206/cipher-engine/pkg/storage"
)

// NewRouter registers every API route on a new mux.
func NewRouter(catalog *chapter.Catalog, store storage.Storage, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/health", NewHealthHandler(store, logger))

	cipherHandler := NewCipherHandler(logger)
	mux.Handle("/v1/ciphers", cipherHandler)
	mux.Handle("/v1/ciphers/", cipherHandler)

	chapterHandler := NewChapterHandler(catalog, store, logger)
	mux.Handle("/v1/chapters", chapterHandler)
	mux.Handle("/v1/chapters/", chapterHandler)

	progressHandler := NewProgressHandler(store, logger)
	mux.Handle("/v1/progress", progressHandler)
	mux.Handle("/v1/progress/", progressHandler)

	return mux
}
