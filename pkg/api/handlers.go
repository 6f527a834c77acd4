package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/cm3d2save/pkg/docfmt"
	"github.com/ssargent/cm3d2save/pkg/save"
	"github.com/ssargent/cm3d2save/pkg/storage"
)

const contentTypeSave = "application/octet-stream"

// Server holds the API server state
type Server struct {
	codec   *save.Codec
	archive Archive
	config  ServerConfig
	metrics *Metrics
	logger  *slog.Logger
}

// NewServer creates a new API server. archive may be nil, which disables
// the backup endpoints.
func NewServer(config ServerConfig, archive Archive, metrics *Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.Format == "" {
		config.Format = docfmt.JSON
	}
	return &Server{
		codec:   save.NewCodec(save.WithTextEncoding(config.TextEncoding)),
		archive: archive,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{
		"status":      "healthy",
		"min_version": save.FormatVersion(save.MinVersion),
		"max_version": save.FormatVersion(save.MaxVersion),
	})
}

// handleDecode converts a binary save in the request body into a structured
// document
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	format, err := s.requestFormat(r, r.Header.Get("Accept"))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	doc, err := s.codec.Decode(body)
	if err != nil {
		s.codecFailed(w, "decode", start, len(body), err)
		return
	}
	s.metrics.RecordCodecOperation("decode", true, time.Since(start), len(body), doc.Version)

	out, err := docfmt.Marshal(doc, format, s.config.Indent)
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Save-Version", strconv.Itoa(int(doc.Version)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// handleEncode converts a structured document in the request body into a
// binary save
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	format, err := s.requestFormat(r, r.Header.Get("Content-Type"))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := docfmt.Unmarshal(body, format)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	out, err := s.codec.Encode(doc)
	if err != nil {
		s.codecFailed(w, "encode", start, 0, err)
		return
	}
	s.metrics.RecordCodecOperation("encode", true, time.Since(start), len(out), doc.Version)

	w.Header().Set("Content-Type", contentTypeSave)
	w.Header().Set("X-Save-Version", strconv.Itoa(int(doc.Version)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// handleVerify reports whether a binary save survives a round trip
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	start := time.Now()
	res, err := s.codec.Verify(body)
	if err != nil {
		s.codecFailed(w, "verify", start, len(body), err)
		return
	}
	s.metrics.RecordCodecOperation("verify", true, time.Since(start), len(body), res.Version)
	sendSuccess(w, res)
}

// handleInfo returns the summary of a binary save
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	start := time.Now()
	doc, err := s.codec.Decode(body)
	if err != nil {
		s.codecFailed(w, "decode", start, len(body), err)
		return
	}
	s.metrics.RecordCodecOperation("decode", true, time.Since(start), len(body), doc.Version)
	sendSuccess(w, doc.Summary())
}

func (s *Server) handleListBackups(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		sendError(w, "Backup archive is disabled", http.StatusNotFound)
		return
	}
	entries, damaged, err := s.archive.List()
	if err != nil {
		s.logger.Error("failed to list backups", "error", err)
		sendError(w, "Failed to list backups", http.StatusInternalServerError)
		return
	}

	resp := BackupListResponse{Backups: []BackupInfo{}, Damaged: damaged}
	for _, e := range entries {
		resp.Backups = append(resp.Backups, BackupInfo{
			ID:      e.ID.String(),
			Name:    e.Name,
			Version: e.Version,
			Time:    e.Time.UTC().Format(time.RFC3339),
			Size:    e.Size,
		})
	}
	sendSuccess(w, resp)
}

// handleGetBackup returns the raw bytes of an archived save
func (s *Server) handleGetBackup(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		sendError(w, "Backup archive is disabled", http.StatusNotFound)
		return
	}
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid backup ID", http.StatusBadRequest)
		return
	}

	snap, err := s.archive.Read(id)
	if errors.Is(err, storage.ErrNotFound) {
		sendError(w, "Backup not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("failed to read backup", "id", id.String(), "error", err)
		sendError(w, "Failed to read backup", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeSave)
	w.Header().Set("X-Save-Version", strconv.Itoa(int(snap.Version)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(snap.Data)
}

// readBody reads the request body within the configured limit. It writes
// the error response itself and reports whether the caller may continue.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if s.config.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	if len(body) == 0 {
		sendError(w, "Request body is empty", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

// requestFormat picks the structured format from the format query parameter,
// then from the given media type header, then from configuration
func (s *Server) requestFormat(r *http.Request, mediaType string) (docfmt.Format, error) {
	if q := r.URL.Query().Get("format"); q != "" {
		return docfmt.ParseFormat(q)
	}
	if strings.Contains(mediaType, "yaml") {
		return docfmt.YAML, nil
	}
	if strings.Contains(mediaType, "json") {
		return docfmt.JSON, nil
	}
	return s.config.Format, nil
}

func (s *Server) codecFailed(w http.ResponseWriter, op string, start time.Time, size int, err error) {
	s.metrics.RecordCodecOperation(op, false, time.Since(start), size, 0)
	s.logger.Warn("codec operation failed", "operation", op, "bytes", size, "error", err)
	sendError(w, err.Error(), http.StatusUnprocessableEntity)
}
