package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/tsawler/docxtable"
	"github.com/tsawler/docxtable/format"
	"github.com/tsawler/docxtable/internal/logging"
	"github.com/tsawler/docxtable/internal/wire"
)

// multipartOverhead is allowed on top of MaxUploadBytes for form framing.
const multipartOverhead = 1 << 20

var errTooLarge = errors.New("upload too large")

// handleTables converts an uploaded DOCX into JSON tables. The document is
// either the raw request body or the "file" field of a multipart form.
func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	log := logging.ForRequest(r.Context(), s.log).With("conversion_id", id)
	w.Header().Set("X-Conversion-ID", id)

	data, filename, err := s.readUpload(w, r)
	switch {
	case errors.Is(err, errTooLarge):
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	case err != nil:
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	case len(data) == 0:
		jsonError(w, "request body is empty", http.StatusBadRequest)
		return
	}

	ext := docxtable.FromBytes(data).WithLogger(log)
	if topLevel, _ := strconv.ParseBool(r.URL.Query().Get("top_level")); topLevel {
		ext = ext.TopLevelOnly()
	}

	tables, warnings, err := ext.Tables()
	if err != nil {
		if errors.Is(err, format.ErrNotDOCX) {
			log.Info("rejected upload", "filename", filename, "error", err)
			jsonError(w, err.Error(), http.StatusUnsupportedMediaType)
			return
		}
		log.Warn("could not read document", "filename", filename, "error", err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	for _, warning := range warnings {
		log.Warn(warning.Message, "severity", warning.Severity, "filename", filename)
	}
	log.Info("converted document", "filename", filename, "tables", len(tables), "warnings", len(warnings))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(wire.NewResponse(id, filename, tables, warnings))
}

// readUpload returns the uploaded bytes and, for multipart uploads, the
// sanitized client filename.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	limit := s.cfg.MaxUploadBytes

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
		if err != nil {
			return nil, "", fmt.Errorf("reading body: %w", err)
		}
		if int64(len(data)) > limit {
			return nil, "", errTooLarge
		}
		return data, "", nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, "", errTooLarge
		}
		return nil, "", fmt.Errorf("invalid multipart form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("file is required: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading file: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, "", errTooLarge
	}
	return data, sanitizeFilename(header.Filename), nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
