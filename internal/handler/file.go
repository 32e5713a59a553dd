package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/steiza/a2docstore/internal/service"
	"github.com/steiza/a2docstore/internal/storage"
)

// downloadChunkSize is the read buffer for streaming stored files back out.
const downloadChunkSize = 1 << 20

type FileHandler struct {
	documentService *service.DocumentService
}

func NewFileHandler(documentService *service.DocumentService) *FileHandler {
	return &FileHandler{
		documentService: documentService,
	}
}

// Download streams a stored file with attachment headers. Unknown files
// 404 and return immediately; nothing else is written afterwards.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	filename := r.PathValue("filename")
	if filename == "" {
		// The trailing wildcard also matches /file/{id}/ with nothing after it
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	f, err := h.documentService.Open(id, filename)
	if errors.Is(err, storage.ErrFileNotFound) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to open stored file", "error", err, "id", id, "filename", filename)
		http.Error(w, "Failed to open file", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	buf := make([]byte, downloadChunkSize)
	_, err = io.CopyBuffer(w, f, buf)
	if err != nil {
		// Headers are already out; all we can do is log
		slog.Warn("download interrupted", "error", err, "id", id, "filename", filename)
	}
}
